package sql

import "errors"

var (
	// ErrEmptyQuery is returned when the input contains no statement text.
	ErrEmptyQuery = errors.New("empty query")

	// ErrInvalidQuery is returned when the input matches none of the
	// supported statement shapes.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrSyntax is returned when a recognized statement is malformed.
	ErrSyntax = errors.New("syntax error")

	// ErrUnsupportedOperator is returned when a condition uses an operator
	// outside =, !=, >, <, >=, <=, LIKE.
	ErrUnsupportedOperator = errors.New("unsupported operator")
)
