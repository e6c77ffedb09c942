// Package api
// Author: momentics <momentics@gmail.com>
//
// Error taxonomy shared by the slot pool and its surrounding plumbing.

package api

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidConfiguration
	ErrCodeAllocationFailure
	ErrCodePoolExhausted
	ErrCodeForeignSlot
	ErrCodeDoubleReturn
	ErrCodeInitializerFailed
	ErrCodePoolDestroyed
	ErrCodeOutstandingSlots
	ErrCodeNotFound
	ErrCodeAlreadyExists
	ErrCodeInternal
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeInvalidConfiguration:
		return "invalid configuration"
	case ErrCodeAllocationFailure:
		return "allocation failure"
	case ErrCodePoolExhausted:
		return "pool exhausted"
	case ErrCodeForeignSlot:
		return "foreign slot"
	case ErrCodeDoubleReturn:
		return "double return"
	case ErrCodeInitializerFailed:
		return "initializer failed"
	case ErrCodePoolDestroyed:
		return "pool destroyed"
	case ErrCodeOutstandingSlots:
		return "outstanding slots"
	case ErrCodeNotFound:
		return "not found"
	case ErrCodeAlreadyExists:
		return "already exists"
	default:
		return "internal"
	}
}

// Common errors used across the library. Compare with errors.Is; errors
// built by NewError match the sentinel carrying the same code.
var (
	ErrInvalidConfiguration = NewError(ErrCodeInvalidConfiguration, "invalid pool configuration")
	ErrAllocationFailure    = NewError(ErrCodeAllocationFailure, "slot storage allocation failed")
	ErrPoolExhausted        = NewError(ErrCodePoolExhausted, "pool exhausted")
	ErrForeignSlot          = NewError(ErrCodeForeignSlot, "slot does not belong to pool")
	ErrDoubleReturn         = NewError(ErrCodeDoubleReturn, "slot already returned to pool")
	ErrInitializerFailed    = NewError(ErrCodeInitializerFailed, "slot initializer failed")
	ErrPoolDestroyed        = NewError(ErrCodePoolDestroyed, "pool is destroyed")
	ErrOutstandingSlots     = NewError(ErrCodeOutstandingSlots, "pool has outstanding slots")
	ErrNotFound             = NewError(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists        = NewError(ErrCodeAlreadyExists, "resource already exists")
	ErrInternal             = NewError(ErrCodeInternal, "internal error")

	// ErrInvalidReturn matches both ErrForeignSlot and ErrDoubleReturn.
	ErrInvalidReturn = errors.New("invalid slot return")
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if len(e.Context) != 0 {
		msg = fmt.Sprintf("%s (context: %+v)", msg, e.Context)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same code, and ErrInvalidReturn for the
// two return violations.
func (e *Error) Is(target error) bool {
	if target == ErrInvalidReturn {
		return e.Code == ErrCodeForeignSlot || e.Code == ErrCodeDoubleReturn
	}
	var t *Error
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap builds a fresh error of the sentinel's kind around cause.
func Wrap(sentinel *Error, cause error) *Error {
	return &Error{Code: sentinel.Code, Message: sentinel.Message, Err: cause}
}

// WithContext returns a copy of e carrying an extra context entry, so
// sentinels are never mutated.
func (e *Error) WithContext(key string, value any) *Error {
	ctx := make(map[string]any, len(e.Context)+1)
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &Error{Code: e.Code, Message: e.Message, Context: ctx, Err: e.Err}
}

// CodeOf extracts the ErrorCode from err, or ErrCodeInternal when err is
// not one of ours. A nil error yields ErrCodeOK.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}
