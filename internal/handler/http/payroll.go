package http

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-timekeeping/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/export"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollHandler interface {
	MyPayslip(w http.ResponseWriter, r *http.Request)
	EmployeePayslip(w http.ResponseWriter, r *http.Request)
	Calc(w http.ResponseWriter, r *http.Request)
	ExportMyPayslip(w http.ResponseWriter, r *http.Request)
	ExportEmployeePayslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// decimalQuery collects malformed decimal query parameters as validation errors.
type decimalQuery struct {
	r    *http.Request
	errs validator.ValidationErrors
}

func (q *decimalQuery) get(key string) *decimal.Decimal {
	raw := q.r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		q.errs = append(q.errs, validator.ValidationError{
			Field:   key,
			Message: key + " must be a number",
		})
		return nil
	}
	return &d
}

func (q *decimalQuery) err() error {
	if len(q.errs) > 0 {
		return q.errs
	}
	return nil
}

func payslipRequest(r *http.Request) (payroll.PayslipRequest, error) {
	q := decimalQuery{r: r}
	req := payroll.PayslipRequest{
		EmployeeID:  queryString(r, "employee_id"),
		Month:       queryString(r, "month"),
		BaseSalary:  q.get("base_salary"),
		Allowance:   q.get("allowance"),
		OtRate:      q.get("ot_rate"),
		HolidayRate: q.get("holiday_rate"),
	}
	return req, q.err()
}

// MyPayslip implements PayrollHandler.
func (h *payrollHandlerImpl) MyPayslip(w http.ResponseWriter, r *http.Request) {
	req, err := payslipRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.MyPayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// EmployeePayslip implements PayrollHandler.
func (h *payrollHandlerImpl) EmployeePayslip(w http.ResponseWriter, r *http.Request) {
	req, err := payslipRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.EmployeePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Calc implements PayrollHandler.
func (h *payrollHandlerImpl) Calc(w http.ResponseWriter, r *http.Request) {
	q := decimalQuery{r: r}
	req := payroll.CalcRequest{
		EmployeeID:  r.URL.Query().Get("employee_id"),
		Month:       queryString(r, "month"),
		OtRate:      q.get("ot_rate"),
		HolidayRate: q.get("holiday_rate"),
	}
	if baseRate := q.get("base_rate"); baseRate != nil {
		req.BaseRate = *baseRate
	}
	if err := q.err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.Calc(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ExportMyPayslip implements PayrollHandler.
func (h *payrollHandlerImpl) ExportMyPayslip(w http.ResponseWriter, r *http.Request) {
	req, err := payslipRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.MyPayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.writePDF(w, result)
}

// ExportEmployeePayslip implements PayrollHandler.
func (h *payrollHandlerImpl) ExportEmployeePayslip(w http.ResponseWriter, r *http.Request) {
	req, err := payslipRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.EmployeePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.writePDF(w, result)
}

func (h *payrollHandlerImpl) writePDF(w http.ResponseWriter, p payroll.PayslipResponse) {
	var buf bytes.Buffer
	if err := h.payrollService.WritePayslipPDF(&buf, p); err != nil {
		slog.Error("failed to render payslip pdf", "employee_id", p.EmployeeID, "error", err)
		response.HandleError(w, err)
		return
	}
	response.File(w, export.PDFContentType, "payslip-"+p.EmployeeCode+"-"+p.Month+".pdf", buf.Bytes())
}
