package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bhel/hrm/internal/apperr"
	"github.com/bhel/hrm/internal/model"
	"github.com/bhel/hrm/internal/service"
)

type LeaveHandler struct {
	leaveService *service.LeaveService
}

func NewLeaveHandler(leaveService *service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

type leaveRequest struct {
	EmployeeID int     `json:"employee_id"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	TypeID     int     `json:"type_id"`
	Reason     *string `json:"reason"`
}

func (h *LeaveHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req leaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		model.WriteError(w, apperr.NewInvalidInput("invalid request body"))
		return
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		model.WriteError(w, apperr.NewInvalidInput("start must be RFC3339"))
		return
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		model.WriteError(w, apperr.NewInvalidInput("end must be RFC3339"))
		return
	}

	app, err := h.leaveService.Apply(r.Context(), service.LeaveInput{
		EmployeeID: req.EmployeeID,
		Start:      start,
		End:        end,
		TypeID:     req.TypeID,
		Reason:     req.Reason,
	})
	if err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusCreated, app)
}

func (h *LeaveHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	app, err := h.leaveService.Get(r.Context(), id)
	if err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusOK, app)
}

func (h *LeaveHandler) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := urlParamInt(w, r, "employeeId")
	if !ok {
		return
	}

	apps, err := h.leaveService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusOK, apps)
}

func (h *LeaveHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.leaveService.Approve, "leave approved")
}

func (h *LeaveHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.leaveService.Reject, "leave rejected")
}

func (h *LeaveHandler) decide(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, int) error,
	message string,
) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	if err := fn(r.Context(), id); err != nil {
		model.WriteError(w, err)
		return
	}
	model.JSON(w, http.StatusOK, map[string]string{"message": message})
}
