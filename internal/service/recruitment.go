package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bhel/hrm/internal/apperr"
	"github.com/bhel/hrm/internal/model"
	"github.com/bhel/hrm/internal/repository"
)

type RecruitmentService struct {
	queries *repository.Queries
	errs    *apperr.Handler
	logger  *slog.Logger
}

func NewRecruitmentService(queries *repository.Queries, errs *apperr.Handler, logger *slog.Logger) *RecruitmentService {
	return &RecruitmentService{queries: queries, errs: errs, logger: logger}
}

type JobOpeningInput struct {
	Title       string
	Description *string
	Department  *string
}

type ApplicantInput struct {
	JobOpeningID int
	FullName     string
	Email        string
	Phone        *string
}

func (s *RecruitmentService) ListOpenings(ctx context.Context) ([]model.JobOpening, error) {
	openings, err := s.queries.ListJobOpenings(ctx)
	if err != nil {
		return nil, s.errs.HandleOp(err, "recruitment.openings.list")
	}
	return openings, nil
}

func (s *RecruitmentService) GetOpening(ctx context.Context, id int) (model.JobOpening, error) {
	opening, err := s.queries.GetJobOpeningByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.JobOpening{}, s.errs.HandleOp(
				apperr.NewResourceNotFound("job opening", fmt.Sprint(id)), "recruitment.openings.get")
		}
		return model.JobOpening{}, s.errs.HandleOp(err, "recruitment.openings.get")
	}
	return opening, nil
}

func (s *RecruitmentService) CreateOpening(ctx context.Context, input JobOpeningInput) (model.JobOpening, error) {
	ectx := apperr.NewContext("recruitment.openings.create").With("title", input.Title)

	if input.Title == "" {
		return model.JobOpening{}, s.errs.Handle(apperr.NewInvalidInput("title is required"), ectx)
	}

	opening := model.JobOpening{
		Title:       input.Title,
		Description: input.Description,
		Department:  input.Department,
		StatusID:    model.JobStatusOpen,
	}
	id, err := s.queries.CreateJobOpening(ctx, opening)
	if err != nil {
		return model.JobOpening{}, s.errs.Handle(err, ectx)
	}
	opening.ID = id

	s.logger.Info("job opening created", "opening_id", id, "title", input.Title)
	return opening, nil
}

// CloseOpening marks an opening as closed. Applications against closed
// openings are rejected at Apply.
func (s *RecruitmentService) CloseOpening(ctx context.Context, id int) error {
	ectx := apperr.NewContext("recruitment.openings.close").With("opening_id", fmt.Sprint(id))

	affected, err := s.queries.UpdateJobOpeningStatus(ctx, id, model.JobStatusClosed)
	if err != nil {
		return s.errs.Handle(err, ectx)
	}
	if affected == 0 {
		return s.errs.Handle(apperr.NewResourceNotFound("job opening", fmt.Sprint(id)), ectx)
	}

	s.logger.Info("job opening closed", "opening_id", id)
	return nil
}

func (s *RecruitmentService) ListApplicants(ctx context.Context, jobOpeningID int) ([]model.Applicant, error) {
	applicants, err := s.queries.ListApplicantsByOpening(ctx, jobOpeningID)
	if err != nil {
		return nil, s.errs.HandleOp(err, "recruitment.applicants.list")
	}
	return applicants, nil
}

// Apply registers an applicant against an open position.
func (s *RecruitmentService) Apply(ctx context.Context, input ApplicantInput) (model.Applicant, error) {
	ectx := apperr.NewContext("recruitment.applicants.create").
		With("opening_id", fmt.Sprint(input.JobOpeningID))

	if input.FullName == "" || input.Email == "" {
		return model.Applicant{}, s.errs.Handle(
			apperr.NewInvalidInput("full name and email are required"), ectx)
	}

	opening, err := s.queries.GetJobOpeningByID(ctx, input.JobOpeningID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Applicant{}, s.errs.Handle(
				apperr.NewResourceNotFound("job opening", fmt.Sprint(input.JobOpeningID)), ectx)
		}
		return model.Applicant{}, s.errs.Handle(err, ectx)
	}
	if opening.StatusID != model.JobStatusOpen {
		return model.Applicant{}, s.errs.Handle(
			apperr.NewInvalidInput("job opening is not accepting applications"), ectx)
	}

	applicant := model.Applicant{
		JobOpeningID: input.JobOpeningID,
		FullName:     input.FullName,
		Email:        input.Email,
		Phone:        input.Phone,
		StatusID:     model.ApplicantStatusNew,
	}
	id, err := s.queries.CreateApplicant(ctx, applicant)
	if err != nil {
		return model.Applicant{}, s.errs.Handle(err, ectx)
	}
	applicant.ID = id

	s.logger.Info("applicant registered", "applicant_id", id, "opening_id", input.JobOpeningID)
	return applicant, nil
}

// AdvanceApplicant moves an applicant to the given pipeline stage.
func (s *RecruitmentService) AdvanceApplicant(ctx context.Context, id, statusID int) error {
	ectx := apperr.NewContext("recruitment.applicants.advance").
		With("applicant_id", fmt.Sprint(id))

	if statusID < model.ApplicantStatusNew || statusID > model.ApplicantStatusRejected {
		return s.errs.Handle(apperr.NewInvalidInput("unknown applicant status"), ectx)
	}

	affected, err := s.queries.UpdateApplicantStatus(ctx, id, statusID)
	if err != nil {
		return s.errs.Handle(err, ectx)
	}
	if affected == 0 {
		return s.errs.Handle(apperr.NewResourceNotFound("applicant", fmt.Sprint(id)), ectx)
	}

	s.logger.Info("applicant advanced", "applicant_id", id, "status_id", statusID)
	return nil
}
