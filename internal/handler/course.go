package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bhel/hrm/internal/apperr"
	"github.com/bhel/hrm/internal/model"
	"github.com/bhel/hrm/internal/service"
)

type CourseHandler struct {
	courseService *service.CourseService
}

func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

type courseRequest struct {
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	DurationInHours *int    `json:"duration_in_hours"`
	Department      *string `json:"department"`
	Capacity        int     `json:"capacity"`
}

type enrollRequest struct {
	EmployeeID int `json:"employee_id"`
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.List(r.Context())
	if err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	course, err := h.courseService.Get(r.Context(), id)
	if err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusOK, course)
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		model.WriteError(w, apperr.NewInvalidInput("invalid request body"))
		return
	}

	course, err := h.courseService.Create(r.Context(), service.CourseInput{
		Title:           req.Title,
		Description:     req.Description,
		DurationInHours: req.DurationInHours,
		Department:      req.Department,
		Capacity:        req.Capacity,
	})
	if err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusCreated, course)
}

func (h *CourseHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	courseID, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		model.WriteError(w, apperr.NewInvalidInput("invalid request body"))
		return
	}

	if err := h.courseService.Enroll(r.Context(), courseID, req.EmployeeID); err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusCreated, map[string]string{"message": "enrolled"})
}
