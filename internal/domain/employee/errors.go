package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeCodeExists   = errors.New("employee code already exists")
	ErrEmailExists          = errors.New("email already registered to another employee")
	ErrUserAlreadyLinked    = errors.New("user is already linked to another employee")
	ErrInvalidReference     = errors.New("department or position does not exist")
	ErrFaceEmbeddingMissing = errors.New("employee has no enrolled face embedding")
	ErrUnauthorized         = errors.New("unauthorized to access this employee")
)
