package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestEmployeeSerializesSnakeCase(t *testing.T) {
	data, err := json.Marshal(Employee{
		ID:         1,
		UserID:     2,
		FirstName:  "Aina",
		LastName:   "Binti",
		ICPassport: "X1",
	})
	if err != nil {
		t.Fatalf("marshaling employee: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding employee: %v", err)
	}
	for _, key := range []string{"id", "user_id", "first_name", "last_name", "ic_passport"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("employee JSON missing %q: %s", key, data)
		}
	}
	if strings.Contains(string(data), "ICPassport") {
		t.Errorf("employee JSON uses Go field names: %s", data)
	}
}

func TestUserNeverSerializesCredentials(t *testing.T) {
	secret := "JBSWY3DPEHPK3PXP"
	data, err := json.Marshal(User{
		ID:           1,
		Username:     "jsmith",
		PasswordHash: "$2a$12$hash",
		RoleID:       RoleEmployee,
		TOTPSecret:   &secret,
		TOTPEnabled:  true,
	})
	if err != nil {
		t.Fatalf("marshaling user: %v", err)
	}

	body := string(data)
	if strings.Contains(body, "$2a$12$hash") || strings.Contains(body, secret) {
		t.Errorf("user JSON leaks credentials: %s", body)
	}
	if !strings.Contains(body, `"username":"jsmith"`) {
		t.Errorf("user JSON missing username: %s", body)
	}
}

func TestDomainTypesSerializeSnakeCase(t *testing.T) {
	reason := "family matters"
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		value    any
		wantKeys []string
	}{
		{
			name:     "leave application",
			value:    LeaveApplication{ID: 1, EmployeeID: 2, Start: now, End: now, TypeID: LeaveTypeAnnual, StatusID: LeaveStatusPending, Reason: &reason},
			wantKeys: []string{"id", "employee_id", "start", "end", "type_id", "status_id", "reason"},
		},
		{
			name:     "training course",
			value:    TrainingCourse{ID: 1, Title: "Onboarding", Capacity: 20},
			wantKeys: []string{"id", "title", "description", "duration_in_hours", "department", "capacity"},
		},
		{
			name:     "benefit plan",
			value:    BenefitPlan{ID: 1, PlanName: "Medical A"},
			wantKeys: []string{"id", "plan_name", "provider", "description", "cost_per_month"},
		},
		{
			name:     "job opening",
			value:    JobOpening{ID: 1, Title: "HR Executive", StatusID: JobStatusOpen},
			wantKeys: []string{"id", "title", "description", "department", "status_id"},
		},
		{
			name:     "applicant",
			value:    Applicant{ID: 1, JobOpeningID: 2, FullName: "Siti Aminah", Email: "siti@example.com", StatusID: ApplicantStatusNew},
			wantKeys: []string{"id", "job_opening_id", "full_name", "email", "phone", "status_id"},
		},
		{
			name:     "course enrollment",
			value:    CourseEnrollment{ID: 1, CourseID: 2, EmployeeID: 3, EnrolledAt: now},
			wantKeys: []string{"id", "course_id", "employee_id", "enrolled_at"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			if err != nil {
				t.Fatalf("marshaling: %v", err)
			}
			var decoded map[string]any
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("decoding: %v", err)
			}
			for _, key := range tt.wantKeys {
				if _, ok := decoded[key]; !ok {
					t.Errorf("missing key %q in %s", key, data)
				}
			}
			if len(decoded) != len(tt.wantKeys) {
				t.Errorf("got %d keys, want %d: %s", len(decoded), len(tt.wantKeys), data)
			}
		})
	}
}
