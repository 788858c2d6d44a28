package employee

import "errors"

var (
	ErrNotFound      = errors.New("employee not found")
	ErrDuplicateNo   = errors.New("employee number already exists")
	ErrEmpNoRequired = errors.New("employee number is required")
)
