package export

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TimesheetRow struct {
	Date         time.Time
	CheckIn      *time.Time
	CheckOut     *time.Time
	WorkMinutes  int
	LateMinutes  int
	EarlyMinutes int
	OtMinutes    int
	IsHoliday    bool
	Status       string
}

type TimesheetTotals struct {
	WorkMinutes     int
	LateMinutes     int
	EarlyMinutes    int
	OtMinutes       int
	HolidayShifts   int
	PaidLeaveDays   int
	UnpaidLeaveDays int
}

type Timesheet struct {
	EmployeeCode string
	EmployeeName string
	Month        string
	Location     *time.Location
	Rows         []TimesheetRow
	Totals       TimesheetTotals
}

var timesheetHeaders = []string{"Date", "Day", "Check In", "Check Out", "Work (min)", "Late (min)", "Early (min)", "OT (min)", "Holiday", "Status"}

func formatClock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("15:04")
}

// WriteTimesheetXLSX renders a monthly timesheet workbook to w.
func WriteTimesheetXLSX(w io.Writer, ts Timesheet) error {
	loc := ts.Location
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close timesheet workbook", "error", err)
		}
	}()

	sheet := ts.Month
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	title := fmt.Sprintf("Timesheet %s - %s (%s)", ts.Month, ts.EmployeeName, ts.EmployeeCode)
	f.SetCellValue(sheet, "A1", title)
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err == nil {
		f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	}
	f.MergeCell(sheet, "A1", "J1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, h := range timesheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A3", "J3", headerStyle)

	holidayStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "#C00000"},
	})

	row := 4
	for _, r := range ts.Rows {
		holiday := ""
		if r.IsHoliday {
			holiday = "Yes"
		}
		values := []interface{}{
			r.Date.Format("2006-01-02"),
			r.Date.Weekday().String()[:3],
			formatClock(r.CheckIn, loc),
			formatClock(r.CheckOut, loc),
			r.WorkMinutes,
			r.LateMinutes,
			r.EarlyMinutes,
			r.OtMinutes,
			holiday,
			r.Status,
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		if r.IsHoliday {
			end, _ := excelize.CoordinatesToCellName(len(values), row)
			f.SetCellStyle(sheet, start, end, holidayStyle)
		}
		row++
	}

	row++
	summary := [][]interface{}{
		{"Total work (min)", ts.Totals.WorkMinutes},
		{"Total late (min)", ts.Totals.LateMinutes},
		{"Total early (min)", ts.Totals.EarlyMinutes},
		{"Total OT (min)", ts.Totals.OtMinutes},
		{"Holiday shifts", ts.Totals.HolidayShifts},
		{"Paid leave days", ts.Totals.PaidLeaveDays},
		{"Unpaid leave days", ts.Totals.UnpaidLeaveDays},
	}
	for _, s := range summary {
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, start, &s); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		row++
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 6)
	f.SetColWidth(sheet, "C", "D", 10)
	f.SetColWidth(sheet, "E", "H", 11)
	f.SetColWidth(sheet, "I", "J", 10)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
