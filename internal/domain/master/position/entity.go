package position

import "time"

// Position is a job title employees can be assigned to.
type Position struct {
	ID          string
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
