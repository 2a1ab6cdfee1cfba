package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeExists   = errors.New("employee id already exists")
	ErrInvalidEmployee  = errors.New("employee is missing required fields")
)
