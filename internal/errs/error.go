package errs

import (
	"errors"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrNoSession      = errors.New("session not found")
	ErrSubmitInFlight = errors.New("pengajuan masih diproses")
	ErrDuplicate      = errors.New("duplicate record")
)
