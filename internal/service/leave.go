package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bhel/hrm/internal/apperr"
	"github.com/bhel/hrm/internal/database"
	"github.com/bhel/hrm/internal/model"
	"github.com/bhel/hrm/internal/repository"
)

type LeaveService struct {
	queries *repository.Queries
	db      *database.Manager
	errs    *apperr.Handler
	logger  *slog.Logger
}

func NewLeaveService(
	queries *repository.Queries,
	db *database.Manager,
	errs *apperr.Handler,
	logger *slog.Logger,
) *LeaveService {
	return &LeaveService{queries: queries, db: db, errs: errs, logger: logger}
}

type LeaveInput struct {
	EmployeeID int
	Start      time.Time
	End        time.Time
	TypeID     int
	Reason     *string
}

// Apply files a leave application. The overlap check and the insert share a
// unit of work so a concurrent application cannot slip between them.
func (s *LeaveService) Apply(ctx context.Context, input LeaveInput) (model.LeaveApplication, error) {
	ectx := apperr.NewContext("leave.apply").With("employee_id", fmt.Sprint(input.EmployeeID))

	if !input.End.After(input.Start) {
		return model.LeaveApplication{}, s.errs.Handle(
			apperr.NewLeaveRuleViolation("leave end must be after its start"), ectx)
	}
	if input.TypeID != model.LeaveTypeAnnual && input.TypeID != model.LeaveTypeSick && input.TypeID != model.LeaveTypeUnpaid {
		return model.LeaveApplication{}, s.errs.Handle(
			apperr.NewInvalidInput("unknown leave type"), ectx)
	}

	txCtx, err := s.db.Begin(ctx)
	if err != nil {
		return model.LeaveApplication{}, s.errs.Handle(err, ectx)
	}
	defer s.db.Rollback(txCtx)

	overlapping, err := s.queries.CountOverlappingLeave(txCtx, input.EmployeeID, input.Start, input.End)
	if err != nil {
		return model.LeaveApplication{}, s.errs.Handle(err, ectx)
	}
	if overlapping > 0 {
		return model.LeaveApplication{}, s.errs.Handle(
			apperr.NewLeaveRuleViolation("an overlapping leave application already exists"), ectx)
	}

	app := model.LeaveApplication{
		EmployeeID: input.EmployeeID,
		Start:      input.Start,
		End:        input.End,
		TypeID:     input.TypeID,
		StatusID:   model.LeaveStatusPending,
		Reason:     input.Reason,
	}
	id, err := s.queries.CreateLeaveApplication(txCtx, app)
	if err != nil {
		return model.LeaveApplication{}, s.errs.Handle(err, ectx)
	}
	app.ID = id

	if err := s.db.Commit(txCtx); err != nil {
		return model.LeaveApplication{}, s.errs.Handle(err, ectx)
	}

	s.logger.Info("leave application filed",
		"leave_id", id, "employee_id", input.EmployeeID, "type_id", input.TypeID)
	return app, nil
}

func (s *LeaveService) Get(ctx context.Context, id int) (model.LeaveApplication, error) {
	app, err := s.queries.GetLeaveApplicationByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.LeaveApplication{}, s.errs.HandleOp(
				apperr.NewResourceNotFound("leave application", fmt.Sprint(id)), "leave.get")
		}
		return model.LeaveApplication{}, s.errs.HandleOp(err, "leave.get")
	}
	return app, nil
}

func (s *LeaveService) ListByEmployee(ctx context.Context, employeeID int) ([]model.LeaveApplication, error) {
	apps, err := s.queries.ListLeaveByEmployee(ctx, employeeID)
	if err != nil {
		return nil, s.errs.HandleOp(err, "leave.list")
	}
	return apps, nil
}

// Approve moves a pending application to approved. Only pending applications
// may change state.
func (s *LeaveService) Approve(ctx context.Context, id int) error {
	return s.setStatus(ctx, id, model.LeaveStatusApproved, "leave.approve")
}

// Reject moves a pending application to rejected.
func (s *LeaveService) Reject(ctx context.Context, id int) error {
	return s.setStatus(ctx, id, model.LeaveStatusRejected, "leave.reject")
}

func (s *LeaveService) setStatus(ctx context.Context, id, statusID int, operation string) error {
	ectx := apperr.NewContext(operation).With("leave_id", fmt.Sprint(id))

	app, err := s.queries.GetLeaveApplicationByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.errs.Handle(apperr.NewResourceNotFound("leave application", fmt.Sprint(id)), ectx)
		}
		return s.errs.Handle(err, ectx)
	}
	if app.StatusID != model.LeaveStatusPending {
		return s.errs.Handle(
			apperr.NewLeaveRuleViolation("only pending applications can be decided"), ectx)
	}

	affected, err := s.queries.UpdateLeaveStatus(ctx, id, statusID)
	if err != nil {
		return s.errs.Handle(err, ectx)
	}
	if affected == 0 {
		return s.errs.Handle(apperr.NewResourceNotFound("leave application", fmt.Sprint(id)), ectx)
	}

	s.logger.Info("leave application decided", "leave_id", id, "status_id", statusID)
	return nil
}
