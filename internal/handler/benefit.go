package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bhel/hrm/internal/apperr"
	"github.com/bhel/hrm/internal/model"
	"github.com/bhel/hrm/internal/service"
)

type BenefitHandler struct {
	benefitService *service.BenefitService
}

func NewBenefitHandler(benefitService *service.BenefitService) *BenefitHandler {
	return &BenefitHandler{benefitService: benefitService}
}

type benefitPlanRequest struct {
	PlanName     string   `json:"plan_name"`
	Provider     *string  `json:"provider"`
	Description  *string  `json:"description"`
	CostPerMonth *float64 `json:"cost_per_month"`
}

func (h *BenefitHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.benefitService.List(r.Context())
	if err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusOK, plans)
}

func (h *BenefitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req benefitPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		model.WriteError(w, apperr.NewInvalidInput("invalid request body"))
		return
	}

	plan, err := h.benefitService.Create(r.Context(), service.BenefitPlanInput{
		PlanName:     req.PlanName,
		Provider:     req.Provider,
		Description:  req.Description,
		CostPerMonth: req.CostPerMonth,
	})
	if err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusCreated, plan)
}
