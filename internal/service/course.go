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

type CourseService struct {
	queries *repository.Queries
	db      *database.Manager
	errs    *apperr.Handler
	logger  *slog.Logger
}

func NewCourseService(
	queries *repository.Queries,
	db *database.Manager,
	errs *apperr.Handler,
	logger *slog.Logger,
) *CourseService {
	return &CourseService{queries: queries, db: db, errs: errs, logger: logger}
}

type CourseInput struct {
	Title           string
	Description     *string
	DurationInHours *int
	Department      *string
	Capacity        int
}

func (s *CourseService) List(ctx context.Context) ([]model.TrainingCourse, error) {
	courses, err := s.queries.ListCourses(ctx)
	if err != nil {
		return nil, s.errs.HandleOp(err, "course.list")
	}
	return courses, nil
}

func (s *CourseService) Get(ctx context.Context, id int) (model.TrainingCourse, error) {
	course, err := s.queries.GetCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TrainingCourse{}, s.errs.HandleOp(
				apperr.NewResourceNotFound("training course", fmt.Sprint(id)), "course.get")
		}
		return model.TrainingCourse{}, s.errs.HandleOp(err, "course.get")
	}
	return course, nil
}

func (s *CourseService) Create(ctx context.Context, input CourseInput) (model.TrainingCourse, error) {
	ectx := apperr.NewContext("course.create").With("title", input.Title)

	if input.Title == "" {
		return model.TrainingCourse{}, s.errs.Handle(apperr.NewInvalidInput("title is required"), ectx)
	}
	if input.Capacity <= 0 {
		return model.TrainingCourse{}, s.errs.Handle(apperr.NewInvalidInput("capacity must be positive"), ectx)
	}

	course := model.TrainingCourse{
		Title:           input.Title,
		Description:     input.Description,
		DurationInHours: input.DurationInHours,
		Department:      input.Department,
		Capacity:        input.Capacity,
	}
	id, err := s.queries.CreateCourse(ctx, course)
	if err != nil {
		return model.TrainingCourse{}, s.errs.Handle(err, ectx)
	}
	course.ID = id

	s.logger.Info("training course created", "course_id", id, "title", input.Title)
	return course, nil
}

// Enroll signs an employee up for a course. The capacity and duplicate checks
// run inside the same unit of work as the insert; the unique index on
// (course_id, employee_id) backstops races between concurrent enrollments.
func (s *CourseService) Enroll(ctx context.Context, courseID, employeeID int) error {
	ectx := apperr.NewContext("course.enroll").
		With("course_id", fmt.Sprint(courseID)).
		With("employee_id", fmt.Sprint(employeeID))

	txCtx, err := s.db.Begin(ctx)
	if err != nil {
		return s.errs.Handle(err, ectx)
	}
	defer s.db.Rollback(txCtx)

	course, err := s.queries.GetCourseByID(txCtx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.errs.Handle(apperr.NewResourceNotFound("training course", fmt.Sprint(courseID)), ectx)
		}
		return s.errs.Handle(err, ectx)
	}

	enrolled, err := s.queries.IsEnrolled(txCtx, courseID, employeeID)
	if err != nil {
		return s.errs.Handle(err, ectx)
	}
	if enrolled {
		return s.errs.Handle(
			apperr.NewEnrollmentFailure("employee is already enrolled in this course"), ectx)
	}

	count, err := s.queries.CountEnrollments(txCtx, courseID)
	if err != nil {
		return s.errs.Handle(err, ectx)
	}
	if count >= int64(course.Capacity) {
		return s.errs.Handle(apperr.NewEnrollmentFailure("course is full"), ectx)
	}

	if err := s.queries.CreateEnrollment(txCtx, courseID, employeeID); err != nil {
		return s.errs.Handle(err, ectx)
	}

	if err := s.db.Commit(txCtx); err != nil {
		return s.errs.Handle(err, ectx)
	}

	s.logger.Info("employee enrolled", "course_id", courseID, "employee_id", employeeID)
	return nil
}
