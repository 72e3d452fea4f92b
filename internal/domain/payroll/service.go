package payroll

import (
	"context"
	"io"
)

type PayrollService interface {
	// MyPayslip computes the caller's payslip. EmployeeID in req is ignored.
	MyPayslip(ctx context.Context, req PayslipRequest) (PayslipResponse, error)
	EmployeePayslip(ctx context.Context, req PayslipRequest) (PayslipResponse, error)
	// Calc computes a payslip from an hourly base rate instead of a monthly salary.
	Calc(ctx context.Context, req CalcRequest) (PayslipResponse, error)

	WritePayslipPDF(w io.Writer, p PayslipResponse) error
}
