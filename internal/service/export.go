package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"time"

	"github.com/bhel/hrm/internal/apperr"
	"github.com/bhel/hrm/internal/model"
	"github.com/bhel/hrm/internal/pdf"
	"github.com/bhel/hrm/internal/repository"
)

type ExportService struct {
	queries   *repository.Queries
	generator *pdf.PDFGenerator
	errs      *apperr.Handler
	logger    *slog.Logger
}

func NewExportService(
	queries *repository.Queries,
	generator *pdf.PDFGenerator,
	errs *apperr.Handler,
	logger *slog.Logger,
) *ExportService {
	return &ExportService{queries: queries, generator: generator, errs: errs, logger: logger}
}

// ExportEmployeesCSV generates a CSV export of the employee directory.
func (s *ExportService) ExportEmployeesCSV(ctx context.Context) ([]byte, string, error) {
	employees, err := s.queries.ListEmployees(ctx)
	if err != nil {
		return nil, "", s.errs.HandleOp(err, "export.employees.csv")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"ID", "Last Name", "First Name", "IC/Passport"})
	for _, e := range employees {
		w.Write([]string{
			fmt.Sprint(e.ID),
			e.LastName,
			e.FirstName,
			e.ICPassport,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", s.errs.HandleOp(fmt.Errorf("writing CSV: %w", err), "export.employees.csv")
	}

	filename := fmt.Sprintf("employees-%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportLeaveCSV generates a CSV export of an employee's leave applications.
func (s *ExportService) ExportLeaveCSV(ctx context.Context, employeeID int) ([]byte, string, error) {
	apps, err := s.queries.ListLeaveByEmployee(ctx, employeeID)
	if err != nil {
		return nil, "", s.errs.HandleOp(err, "export.leave.csv")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"ID", "Start", "End", "Type", "Status", "Reason"})
	for _, l := range apps {
		reason := ""
		if l.Reason != nil {
			reason = *l.Reason
		}
		w.Write([]string{
			fmt.Sprint(l.ID),
			l.Start.Format(time.RFC3339),
			l.End.Format(time.RFC3339),
			fmt.Sprint(l.TypeID),
			fmt.Sprint(l.StatusID),
			reason,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", s.errs.HandleOp(fmt.Errorf("writing CSV: %w", err), "export.leave.csv")
	}

	filename := fmt.Sprintf("leave-%d-%s.csv", employeeID, time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

type RosterPDFInput struct {
	PaperSize    string
	Landscape    bool
	IncludeLeave bool
}

// ExportRosterPDF renders the employee roster, optionally with each
// employee's leave applications, to PDF.
func (s *ExportService) ExportRosterPDF(ctx context.Context, input RosterPDFInput) ([]byte, string, error) {
	employees, err := s.queries.ListEmployees(ctx)
	if err != nil {
		return nil, "", s.errs.HandleOp(err, "export.roster.pdf")
	}

	data := pdf.RosterData{
		Title:     "Employee Roster",
		Employees: employees,
	}

	if input.IncludeLeave {
		data.Leave = make(map[int][]model.LeaveApplication, len(employees))
		for _, e := range employees {
			apps, err := s.queries.ListLeaveByEmployee(ctx, e.ID)
			if err != nil {
				return nil, "", s.errs.HandleOp(err, "export.roster.pdf")
			}
			data.Leave[e.ID] = apps
		}
	}

	buf, err := s.generator.Generate(ctx, data, pdf.PDFOptions{
		PaperSize: input.PaperSize,
		Landscape: input.Landscape,
	})
	if err != nil {
		return nil, "", s.errs.HandleOp(err, "export.roster.pdf")
	}

	s.logger.Info("roster PDF generated", "employees", len(employees), "bytes", len(buf))
	filename := fmt.Sprintf("roster-%s.pdf", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}
