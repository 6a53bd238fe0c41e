package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bhel/hrm/internal/apperr"
	"github.com/bhel/hrm/internal/model"
	"github.com/bhel/hrm/internal/service"
)

type RecruitmentHandler struct {
	recruitmentService *service.RecruitmentService
}

func NewRecruitmentHandler(recruitmentService *service.RecruitmentService) *RecruitmentHandler {
	return &RecruitmentHandler{recruitmentService: recruitmentService}
}

type jobOpeningRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Department  *string `json:"department"`
}

type applicantRequest struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
}

type advanceApplicantRequest struct {
	StatusID int `json:"status_id"`
}

func (h *RecruitmentHandler) ListOpenings(w http.ResponseWriter, r *http.Request) {
	openings, err := h.recruitmentService.ListOpenings(r.Context())
	if err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusOK, openings)
}

func (h *RecruitmentHandler) GetOpening(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	opening, err := h.recruitmentService.GetOpening(r.Context(), id)
	if err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusOK, opening)
}

func (h *RecruitmentHandler) CreateOpening(w http.ResponseWriter, r *http.Request) {
	var req jobOpeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		model.WriteError(w, apperr.NewInvalidInput("invalid request body"))
		return
	}

	opening, err := h.recruitmentService.CreateOpening(r.Context(), service.JobOpeningInput{
		Title:       req.Title,
		Description: req.Description,
		Department:  req.Department,
	})
	if err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusCreated, opening)
}

func (h *RecruitmentHandler) CloseOpening(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	if err := h.recruitmentService.CloseOpening(r.Context(), id); err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusOK, map[string]string{"message": "job opening closed"})
}

func (h *RecruitmentHandler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	applicants, err := h.recruitmentService.ListApplicants(r.Context(), id)
	if err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusOK, applicants)
}

func (h *RecruitmentHandler) Apply(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	var req applicantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		model.WriteError(w, apperr.NewInvalidInput("invalid request body"))
		return
	}

	applicant, err := h.recruitmentService.Apply(r.Context(), service.ApplicantInput{
		JobOpeningID: id,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
	})
	if err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusCreated, applicant)
}

func (h *RecruitmentHandler) AdvanceApplicant(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "applicantId")
	if !ok {
		return
	}

	var req advanceApplicantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		model.WriteError(w, apperr.NewInvalidInput("invalid request body"))
		return
	}

	if err := h.recruitmentService.AdvanceApplicant(r.Context(), id, req.StatusID); err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusOK, map[string]string{"message": "applicant advanced"})
}
