package model

import (
	"errors"
	"strings"
)

// ValidationError carries one message per failed field. Always recoverable
// by the caller correcting its input.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, ", ")
}

func Invalid(messages ...string) error {
	return &ValidationError{Errors: messages}
}

// NotFoundError signals an unknown product, cart or cart item.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// ConsistencyError is internal: a total recompute or uniqueness constraint
// was violated. Fatal to the operation that hit it.
type ConsistencyError struct {
	Msg string
}

func (e *ConsistencyError) Error() string {
	return e.Msg
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
