package model

import "time"

// Role ids seeded by the schema bootstrap.
const (
	RoleHRStaff  = 1
	RoleEmployee = 2
)

// Leave application type ids.
const (
	LeaveTypeAnnual = 1
	LeaveTypeSick   = 2
	LeaveTypeUnpaid = 3
)

// Leave application status ids.
const (
	LeaveStatusPending  = 1
	LeaveStatusApproved = 2
	LeaveStatusRejected = 3
)

// Job opening status ids.
const (
	JobStatusOpen   = 1
	JobStatusClosed = 2
	JobStatusOnHold = 3
)

// Applicant status ids, in pipeline order.
const (
	ApplicantStatusNew = iota + 1
	ApplicantStatusScreening
	ApplicantStatusInterviewing
	ApplicantStatusOffered
	ApplicantStatusHired
	ApplicantStatusRejected
)

// User is never serialized to clients directly; credentials and TOTP
// material stay server-side even if one slips into a response.
type User struct {
	ID           int     `json:"id"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`
	RoleID       int     `json:"role_id"`
	TOTPSecret   *string `json:"-"`
	TOTPEnabled  bool    `json:"totp_enabled"`
}

type Employee struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	ICPassport string `json:"ic_passport"`
}

type Session struct {
	TokenHash string    `json:"-"`
	UserID    int       `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type LeaveApplication struct {
	ID         int       `json:"id"`
	EmployeeID int       `json:"employee_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	TypeID     int       `json:"type_id"`
	StatusID   int       `json:"status_id"`
	Reason     *string   `json:"reason"`
}

type TrainingCourse struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	DurationInHours *int    `json:"duration_in_hours"`
	Department      *string `json:"department"`
	Capacity        int     `json:"capacity"`
}

type CourseEnrollment struct {
	ID         int       `json:"id"`
	CourseID   int       `json:"course_id"`
	EmployeeID int       `json:"employee_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type BenefitPlan struct {
	ID           int      `json:"id"`
	PlanName     string   `json:"plan_name"`
	Provider     *string  `json:"provider"`
	Description  *string  `json:"description"`
	CostPerMonth *float64 `json:"cost_per_month"`
}

type JobOpening struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Department  *string `json:"department"`
	StatusID    int     `json:"status_id"`
}

type Applicant struct {
	ID           int     `json:"id"`
	JobOpeningID int     `json:"job_opening_id"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone"`
	StatusID     int     `json:"status_id"`
}
