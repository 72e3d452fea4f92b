package attendance

import (
	"errors"
	"fmt"
)

var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn      = errors.New("already checked in for this shift today")
	ErrNotCheckedIn          = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut     = errors.New("you have already checked out")
	ErrCheckOutBeforeCheckIn = errors.New("check-out must not be earlier than check-in")
	ErrFaceMismatch          = errors.New("face does not match the registered profile")
	ErrLocationRequired      = errors.New("GPS coordinates are required to check the office location")
	ErrOutsideGeofence       = errors.New("you are outside the allowed attendance area")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// FaceMismatchError carries the similarity a probe scored against the baseline.
// Similarity is nil when the embeddings were not comparable.
type FaceMismatchError struct {
	Similarity *float64
	Threshold  float64
}

func (e *FaceMismatchError) Error() string {
	if e.Similarity == nil {
		return fmt.Sprintf("%s (similarity undefined, threshold %.2f)", ErrFaceMismatch, e.Threshold)
	}
	return fmt.Sprintf("%s (similarity %.2f < %.2f)", ErrFaceMismatch, *e.Similarity, e.Threshold)
}

func (e *FaceMismatchError) Unwrap() error {
	return ErrFaceMismatch
}

// GeofenceError reports how far a punch was from the office.
type GeofenceError struct {
	DistanceMeters float64
	RadiusMeters   int
}

func (e *GeofenceError) Error() string {
	return fmt.Sprintf("%s (distance ~%.0f m, allowed radius %d m)", ErrOutsideGeofence, e.DistanceMeters, e.RadiusMeters)
}

func (e *GeofenceError) Unwrap() error {
	return ErrOutsideGeofence
}
