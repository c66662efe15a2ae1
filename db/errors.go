package db

import "errors"

var (
	// ErrSchema is returned when a statement references a table or column
	// layout that does not match the stored schema.
	ErrSchema = errors.New("schema error")

	// ErrColumnNotFound is returned when a statement names a column the
	// schema does not have.
	ErrColumnNotFound = errors.New("column not found")

	// ErrConstraintViolation is returned when a write would break a UNIQUE
	// or NOT NULL constraint.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrTypeMismatch is returned when a value's kind is not storable in
	// its column's declared type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnsafeDelete is returned for DELETE statements without a WHERE
	// clause.
	ErrUnsafeDelete = errors.New("DELETE without WHERE is not allowed")
)
