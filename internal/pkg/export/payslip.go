package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const PDFContentType = "application/pdf"

// PayslipLine is a labelled value rendered in one of the payslip tables.
type PayslipLine struct {
	Label string
	Value string
}

type PayslipDocument struct {
	EmployeeCode string
	EmployeeName string
	Month        string
	Attendance   []PayslipLine
	Earnings     []PayslipLine
	Deductions   []PayslipLine
	NetPay       string
	GeneratedAt  time.Time
}

func writeSection(pdf *gofpdf.Fpdf, title string, lines []PayslipLine) {
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	for _, l := range lines {
		pdf.CellFormat(100, 7, l.Label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(80, 7, l.Value, "B", 0, "R", false, 0, "")
		pdf.Ln(7)
	}
	pdf.Ln(4)
}

// WritePayslipPDF renders a single-page payslip to w.
func WritePayslipPDF(w io.Writer, doc PayslipDocument) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s", doc.EmployeeCode, doc.Month), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 8, fmt.Sprintf("Employee: %s (%s)", doc.EmployeeName, doc.EmployeeCode))
	pdf.Ln(7)
	pdf.Cell(40, 8, fmt.Sprintf("Period: %s", doc.Month))
	pdf.Ln(12)

	writeSection(pdf, "Attendance", doc.Attendance)
	writeSection(pdf, "Earnings", doc.Earnings)
	writeSection(pdf, "Deductions", doc.Deductions)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(100, 9, "Net pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(80, 9, doc.NetPay, "T", 0, "R", false, 0, "")
	pdf.Ln(14)

	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 10, fmt.Sprintf("Generated at %s", doc.GeneratedAt.Format("02 January 2006 15:04:05")))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render payslip pdf: %w", err)
	}
	return nil
}
