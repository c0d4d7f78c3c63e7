// Package errors provides custom error types for inventory storage operations.
package errors

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)
