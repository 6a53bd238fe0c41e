package handler

import (
	"net/http"

	"github.com/bhel/hrm/internal/model"
	"github.com/bhel/hrm/internal/service"
)

type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func (h *ExportHandler) EmployeesCSV(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.exportService.ExportEmployeesCSV(r.Context())
	if err != nil {
		model.WriteError(w, err)
		return
	}
	serveDownload(w, data, filename, "text/csv")
}

func (h *ExportHandler) LeaveCSV(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := urlParamInt(w, r, "employeeId")
	if !ok {
		return
	}

	data, filename, err := h.exportService.ExportLeaveCSV(r.Context(), employeeID)
	if err != nil {
		model.WriteError(w, err)
		return
	}
	serveDownload(w, data, filename, "text/csv")
}

func (h *ExportHandler) RosterPDF(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := service.RosterPDFInput{
		PaperSize:    q.Get("paper"),
		Landscape:    q.Get("landscape") == "true",
		IncludeLeave: q.Get("leave") == "true",
	}

	data, filename, err := h.exportService.ExportRosterPDF(r.Context(), input)
	if err != nil {
		model.WriteError(w, err)
		return
	}
	serveDownload(w, data, filename, "application/pdf")
}

func serveDownload(w http.ResponseWriter, data []byte, filename, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
