package officelocation

import "errors"

var ErrOfficeLocationNotFound = errors.New("no active office location configured")
