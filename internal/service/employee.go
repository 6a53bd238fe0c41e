package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bhel/hrm/internal/apperr"
	"github.com/bhel/hrm/internal/database"
	"github.com/bhel/hrm/internal/model"
	"github.com/bhel/hrm/internal/repository"
)

type EmployeeService struct {
	queries *repository.Queries
	db      *database.Manager
	errs    *apperr.Handler
	logger  *slog.Logger
}

func NewEmployeeService(
	queries *repository.Queries,
	db *database.Manager,
	errs *apperr.Handler,
	logger *slog.Logger,
) *EmployeeService {
	return &EmployeeService{queries: queries, db: db, errs: errs, logger: logger}
}

type EmployeeInput struct {
	UserID     int
	FirstName  string
	LastName   string
	ICPassport string
}

func (s *EmployeeService) List(ctx context.Context) ([]model.Employee, error) {
	employees, err := s.queries.ListEmployees(ctx)
	if err != nil {
		return nil, s.errs.HandleOp(err, "employee.list")
	}
	return employees, nil
}

func (s *EmployeeService) Get(ctx context.Context, id int) (model.Employee, error) {
	emp, err := s.queries.GetEmployeeByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Employee{}, s.errs.HandleOp(
				apperr.NewResourceNotFound("employee", fmt.Sprint(id)), "employee.get")
		}
		return model.Employee{}, s.errs.HandleOp(err, "employee.get")
	}
	return emp, nil
}

func (s *EmployeeService) GetByUserID(ctx context.Context, userID int) (model.Employee, error) {
	emp, err := s.queries.GetEmployeeByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Employee{}, s.errs.HandleOp(
				apperr.NewResourceNotFound("employee", fmt.Sprintf("user %d", userID)), "employee.get")
		}
		return model.Employee{}, s.errs.HandleOp(err, "employee.get")
	}
	return emp, nil
}

// Create inserts an employee record. A duplicate IC/passport number surfaces
// as the context-mapped duplicate failure rather than a raw vendor error.
func (s *EmployeeService) Create(ctx context.Context, input EmployeeInput) (model.Employee, error) {
	ectx := apperr.NewContext("employee.create").With("ic_passport", input.ICPassport)

	if err := validateEmployeeInput(input); err != nil {
		return model.Employee{}, s.errs.Handle(err, ectx)
	}

	emp := model.Employee{
		UserID:     input.UserID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		ICPassport: input.ICPassport,
	}
	id, err := s.queries.CreateEmployee(ctx, emp)
	if err != nil {
		return model.Employee{}, s.errs.Handle(err, ectx)
	}
	emp.ID = id

	s.logger.Info("employee created", "employee_id", id)
	return emp, nil
}

func (s *EmployeeService) Update(ctx context.Context, id int, input EmployeeInput) (model.Employee, error) {
	ectx := apperr.NewContext("employee.update").With("employee_id", fmt.Sprint(id))

	if err := validateEmployeeInput(input); err != nil {
		return model.Employee{}, s.errs.Handle(err, ectx)
	}

	txCtx, err := s.db.Begin(ctx)
	if err != nil {
		return model.Employee{}, s.errs.Handle(err, ectx)
	}
	defer s.db.Rollback(txCtx)

	emp := model.Employee{
		ID:         id,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		ICPassport: input.ICPassport,
	}
	affected, err := s.queries.UpdateEmployee(txCtx, emp)
	if err != nil {
		return model.Employee{}, s.errs.Handle(err, ectx)
	}
	if affected == 0 {
		return model.Employee{}, s.errs.Handle(
			apperr.NewResourceNotFound("employee", fmt.Sprint(id)), ectx)
	}

	updated, err := s.queries.GetEmployeeByID(txCtx, id)
	if err != nil {
		return model.Employee{}, s.errs.Handle(err, ectx)
	}
	if err := s.db.Commit(txCtx); err != nil {
		return model.Employee{}, s.errs.Handle(err, ectx)
	}

	s.logger.Info("employee updated", "employee_id", id)
	return updated, nil
}

// Delete removes an employee. A foreign key violation (leave applications,
// enrollments) is translated to the dependency failure the clients expect.
func (s *EmployeeService) Delete(ctx context.Context, id int) error {
	ectx := apperr.NewContext("employee.delete").With("employee_id", fmt.Sprint(id))

	affected, err := s.queries.DeleteEmployee(ctx, id)
	if err != nil {
		return s.errs.Handle(err, ectx)
	}
	if affected == 0 {
		return s.errs.Handle(apperr.NewResourceNotFound("employee", fmt.Sprint(id)), ectx)
	}

	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

func validateEmployeeInput(input EmployeeInput) error {
	if input.FirstName == "" || input.LastName == "" {
		return apperr.NewInvalidInput("first and last name are required")
	}
	if input.ICPassport == "" {
		return apperr.NewInvalidInput("IC/passport number is required")
	}
	return nil
}
