package services

import "fmt"

// Typed service errors. Handlers translate these to the wire envelope once,
// at the boundary; nothing below the handlers writes HTTP responses.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

// ClassificationError means the model produced something outside the closed
// category set. It is terminal: the pipeline never guesses a category.
type ClassificationError struct {
	Output string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("model returned unrecognized project category %q", e.Output)
}

// GatewayError wraps a failed or empty response from the generative model.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string { return fmt.Sprintf("model gateway: %v", e.Err) }

func (e *GatewayError) Unwrap() error { return e.Err }
