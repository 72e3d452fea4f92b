package report

import (
	"context"
	"io"
)

// ReportService defines the interface for report generation
type ReportService interface {
	Timesheet(ctx context.Context, req TimesheetRequest) (TimesheetReport, error)

	// ExportTimesheet writes the timesheet as an .xlsx workbook.
	ExportTimesheet(ctx context.Context, req TimesheetRequest, w io.Writer) error
}
