package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// FaceCheckIn gates a check-in behind the face matcher and the office geofence.
	FaceCheckIn(ctx context.Context, req FaceCheckInRequest) (AttendanceResponse, error)

	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	Today(ctx context.Context) (TodayAttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters (admin/manager)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	ApproveAttendance(ctx context.Context, req ApproveAttendanceRequest) (AttendanceResponse, error)
	RejectAttendance(ctx context.Context, req RejectAttendanceRequest) (AttendanceResponse, error)
	FixAttendance(ctx context.Context, req FixAttendanceRequest) (AttendanceResponse, error)

	// Face attendance kiosk flow
	FaceToday(ctx context.Context) (FaceTodayResponse, error)
	FaceAttendanceCheckIn(ctx context.Context, req FaceAttendanceRequest) (FaceAttendanceResponse, error)
	FaceAttendanceCheckOut(ctx context.Context, req FaceAttendanceRequest) (FaceAttendanceResponse, error)
}
