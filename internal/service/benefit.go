package service

import (
	"context"
	"log/slog"

	"github.com/bhel/hrm/internal/apperr"
	"github.com/bhel/hrm/internal/model"
	"github.com/bhel/hrm/internal/repository"
)

type BenefitService struct {
	queries *repository.Queries
	errs    *apperr.Handler
	logger  *slog.Logger
}

func NewBenefitService(queries *repository.Queries, errs *apperr.Handler, logger *slog.Logger) *BenefitService {
	return &BenefitService{queries: queries, errs: errs, logger: logger}
}

type BenefitPlanInput struct {
	PlanName     string
	Provider     *string
	Description  *string
	CostPerMonth *float64
}

func (s *BenefitService) List(ctx context.Context) ([]model.BenefitPlan, error) {
	plans, err := s.queries.ListBenefitPlans(ctx)
	if err != nil {
		return nil, s.errs.HandleOp(err, "benefit.list")
	}
	return plans, nil
}

func (s *BenefitService) Create(ctx context.Context, input BenefitPlanInput) (model.BenefitPlan, error) {
	ectx := apperr.NewContext("benefit.create").With("plan_name", input.PlanName)

	if input.PlanName == "" {
		return model.BenefitPlan{}, s.errs.Handle(
			apperr.NewInvalidInput("plan name is required"), ectx)
	}
	if input.CostPerMonth != nil && *input.CostPerMonth < 0 {
		return model.BenefitPlan{}, s.errs.Handle(
			apperr.NewInvalidInput("cost per month cannot be negative"), ectx)
	}

	plan := model.BenefitPlan{
		PlanName:     input.PlanName,
		Provider:     input.Provider,
		Description:  input.Description,
		CostPerMonth: input.CostPerMonth,
	}
	id, err := s.queries.CreateBenefitPlan(ctx, plan)
	if err != nil {
		return model.BenefitPlan{}, s.errs.Handle(err, ectx)
	}
	plan.ID = id

	s.logger.Info("benefit plan created", "plan_id", id, "plan_name", input.PlanName)
	return plan, nil
}
