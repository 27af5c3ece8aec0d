// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidPayload signals a remote document or webhook body that
	// cannot be mapped into a domain entity.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrProjectNotFound signals missing project.
	ErrProjectNotFound = errors.New("project not found")
)
