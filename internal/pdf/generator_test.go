package pdf

import (
	"strings"
	"testing"
	"time"

	"github.com/bhel/hrm/internal/model"
)

func TestPaperDimensions(t *testing.T) {
	tests := []struct {
		name      string
		paperSize string
		landscape bool
		width     float64
		height    float64
	}{
		{"A4 portrait", "A4", false, 8.27, 11.69},
		{"A4 landscape", "A4", true, 11.69, 8.27},
		{"A3 portrait", "A3", false, 11.69, 16.54},
		{"unknown defaults to A4", "letter", false, 8.27, 11.69},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := paperDimensions(tt.paperSize, tt.landscape)
			if w != tt.width || h != tt.height {
				t.Fatalf("got %vx%v, want %vx%v", w, h, tt.width, tt.height)
			}
		})
	}
}

func TestRenderHTMLSortsByName(t *testing.T) {
	data := RosterData{
		Title: "Employee Roster",
		Employees: []model.Employee{
			{ID: 1, FirstName: "Zed", LastName: "Young", ICPassport: "Z1"},
			{ID: 2, FirstName: "Ann", LastName: "Able", ICPassport: "A1"},
		},
	}

	out := renderHTML(data, PDFOptions{})

	able := strings.Index(out, "Able")
	young := strings.Index(out, "Young")
	if able == -1 || young == -1 {
		t.Fatalf("expected both employees in output")
	}
	if able > young {
		t.Fatal("employees should be sorted by last name")
	}
}

func TestRenderHTMLEscapesFields(t *testing.T) {
	data := RosterData{
		Title: "Roster",
		Employees: []model.Employee{
			{ID: 1, FirstName: "<script>", LastName: "Smith", ICPassport: "X&1"},
		},
	}

	out := renderHTML(data, PDFOptions{})

	if strings.Contains(out, "<script>") {
		t.Fatal("employee fields must be HTML-escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") || !strings.Contains(out, "X&amp;1") {
		t.Fatal("expected escaped employee fields in output")
	}
}

func TestRenderHTMLLeaveColumn(t *testing.T) {
	employees := []model.Employee{{ID: 7, FirstName: "Ann", LastName: "Able", ICPassport: "A1"}}

	without := renderHTML(RosterData{Title: "Roster", Employees: employees}, PDFOptions{})
	if strings.Contains(without, "<th>Leave</th>") {
		t.Fatal("leave column should be absent when no leave data is supplied")
	}

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	with := renderHTML(RosterData{
		Title:     "Roster",
		Employees: employees,
		Leave: map[int][]model.LeaveApplication{
			7: {{ID: 1, EmployeeID: 7, Start: start, End: start.AddDate(0, 0, 2), StatusID: model.LeaveStatusApproved}},
		},
	}, PDFOptions{})

	if !strings.Contains(with, "<th>Leave</th>") {
		t.Fatal("leave column should be present when leave data is supplied")
	}
	if !strings.Contains(with, "2026-03-02") || !strings.Contains(with, "Approved") {
		t.Fatal("expected leave window and status in output")
	}
}
