package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteTimesheetXLSX(t *testing.T) {
	in := time.Date(2024, 1, 2, 8, 5, 0, 0, time.UTC)
	out := time.Date(2024, 1, 2, 12, 20, 0, 0, time.UTC)

	ts := Timesheet{
		EmployeeCode: "EMP-001",
		EmployeeName: "Alya Putri",
		Month:        "2024-01",
		Rows: []TimesheetRow{
			{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), CheckIn: &in, CheckOut: &out, WorkMinutes: 255, OtMinutes: 15, Status: "Approved"},
			{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), IsHoliday: true, Status: "Pending"},
		},
		Totals: TimesheetTotals{WorkMinutes: 255, OtMinutes: 15, HolidayShifts: 1, PaidLeaveDays: 2},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTimesheetXLSX(&buf, ts))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"2024-01"}, f.GetSheetList())

	title, err := f.GetCellValue("2024-01", "A1")
	require.NoError(t, err)
	assert.Contains(t, title, "Alya Putri")

	rows, err := f.GetRows("2024-01")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 5)
	assert.Equal(t, "Date", rows[2][0])
	assert.Equal(t, []string{"2024-01-02", "Tue", "08:05", "12:20", "255", "0", "0", "15", "", "Approved"}, rows[3])
	assert.Equal(t, "Yes", rows[4][8])
}

func TestWritePayslipPDF(t *testing.T) {
	var buf bytes.Buffer
	err := WritePayslipPDF(&buf, PayslipDocument{
		EmployeeCode: "EMP-001",
		EmployeeName: "Alya Putri",
		Month:        "2024-01",
		Attendance:   []PayslipLine{{Label: "Normal hours", Value: "160.00"}},
		Earnings:     []PayslipLine{{Label: "Base salary", Value: "15,000,000.00"}},
		Deductions:   []PayslipLine{{Label: "Late", Value: "0.00"}},
		NetPay:       "16,500,000.00",
		GeneratedAt:  time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
