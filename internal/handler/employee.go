package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bhel/hrm/internal/apperr"
	"github.com/bhel/hrm/internal/model"
	"github.com/bhel/hrm/internal/service"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler struct {
	employeeService *service.EmployeeService
}

func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

type employeeRequest struct {
	UserID     int    `json:"user_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	ICPassport string `json:"ic_passport"`
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context())
	if err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	emp, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusOK, emp)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		model.WriteError(w, apperr.NewInvalidInput("invalid request body"))
		return
	}

	emp, err := h.employeeService.Create(r.Context(), service.EmployeeInput{
		UserID:     req.UserID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		ICPassport: req.ICPassport,
	})
	if err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusCreated, emp)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		model.WriteError(w, apperr.NewInvalidInput("invalid request body"))
		return
	}

	emp, err := h.employeeService.Update(r.Context(), id, service.EmployeeInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		ICPassport: req.ICPassport,
	})
	if err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusOK, emp)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusOK, map[string]string{"message": "employee deleted"})
}

// urlParamInt parses an integer chi URL parameter, writing a 400 on failure.
func urlParamInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		model.WriteError(w, apperr.NewInvalidInput("invalid "+name))
		return 0, false
	}
	return v, true
}
