package http

import (
	"bytes"
	"net/http"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/report"
	"github.com/cmlabs-hris/hris-timekeeping/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/export"
)

type ReportHandler interface {
	Timesheet(w http.ResponseWriter, r *http.Request)
	ExportTimesheet(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func timesheetRequest(r *http.Request) report.TimesheetRequest {
	return report.TimesheetRequest{
		EmployeeID: queryString(r, "employee_id"),
		Month:      r.URL.Query().Get("month"),
	}
}

// Timesheet implements ReportHandler.
func (h *reportHandlerImpl) Timesheet(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Timesheet(r.Context(), timesheetRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportTimesheet implements ReportHandler. The workbook is buffered so a
// failure can still be answered as JSON.
func (h *reportHandlerImpl) ExportTimesheet(w http.ResponseWriter, r *http.Request) {
	req := timesheetRequest(r)

	var buf bytes.Buffer
	if err := h.reportService.ExportTimesheet(r.Context(), req, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, export.XLSXContentType, "timesheet-"+req.Month+".xlsx", buf.Bytes())
}
