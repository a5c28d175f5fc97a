package sim

import (
	"fmt"
)

// ErrorCode represents different types of simulation errors
type ErrorCode int

const (
	// Generic errors
	ErrCodeUnknown ErrorCode = iota
	ErrCodeInternal

	// Policy errors
	ErrCodeUnknownPolicy
	ErrCodeInvalidFrameCount
	ErrCodeInvalidPageCount

	// Reference string errors
	ErrCodeInvalidLength
	ErrCodeInvalidUpperBound
	ErrCodeInvalidPageID

	// Trace errors
	ErrCodeTraceCorrupted
	ErrCodeTraceParseFailed
	ErrCodeTraceReadFailed
	ErrCodeTraceWriteFailed
)

// SimError represents a simulator error with context
type SimError struct {
	Code    ErrorCode
	Message string
	Op      string // Operation that failed
	Err     error  // Underlying error (if any)
}

// Error implements the error interface
func (e *SimError) Error() string {
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *SimError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a specific error code
func (e *SimError) Is(target error) bool {
	if t, ok := target.(*SimError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewSimError creates a new simulator error
func NewSimError(code ErrorCode, op, message string, err error) *SimError {
	return &SimError{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// Helper functions for common errors

func ErrUnknownPolicy(op, algorithm string) *SimError {
	return NewSimError(
		ErrCodeUnknownPolicy,
		op,
		fmt.Sprintf("unknown policy algorithm %q", algorithm),
		nil,
	)
}

func ErrInvalidFrameCount(op string, numFrames int) *SimError {
	return NewSimError(
		ErrCodeInvalidFrameCount,
		op,
		fmt.Sprintf("frame count must be at least 1, got %d", numFrames),
		nil,
	)
}

func ErrInvalidPageCount(op string, numPages int) *SimError {
	return NewSimError(
		ErrCodeInvalidPageCount,
		op,
		fmt.Sprintf("page count must be non-negative, got %d", numPages),
		nil,
	)
}

func ErrInvalidLength(op string, length int) *SimError {
	return NewSimError(
		ErrCodeInvalidLength,
		op,
		fmt.Sprintf("reference string length must be non-negative, got %d", length),
		nil,
	)
}

func ErrInvalidUpperBound(op string, upperBound int) *SimError {
	return NewSimError(
		ErrCodeInvalidUpperBound,
		op,
		fmt.Sprintf("upper bound %d cannot produce an adjacent-distinct reference string", upperBound),
		nil,
	)
}

func ErrInvalidPageID(op string, page int) *SimError {
	return NewSimError(
		ErrCodeInvalidPageID,
		op,
		fmt.Sprintf("page identifier must be a non-negative 32-bit value, got %d", page),
		nil,
	)
}

func ErrTraceCorrupted(op, detail string) *SimError {
	return NewSimError(
		ErrCodeTraceCorrupted,
		op,
		fmt.Sprintf("trace corrupted: %s", detail),
		nil,
	)
}

func ErrTraceParse(op, detail string, err error) *SimError {
	return NewSimError(
		ErrCodeTraceParseFailed,
		op,
		fmt.Sprintf("trace parse failed: %s", detail),
		err,
	)
}

func ErrTraceRead(op, path string, err error) *SimError {
	return NewSimError(
		ErrCodeTraceReadFailed,
		op,
		fmt.Sprintf("failed to read trace %s", path),
		err,
	)
}

func ErrTraceWrite(op, path string, err error) *SimError {
	return NewSimError(
		ErrCodeTraceWriteFailed,
		op,
		fmt.Sprintf("failed to write trace %s", path),
		err,
	)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	if se, ok := err.(*SimError); ok {
		return se.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrCodeUnknown
func GetErrorCode(err error) ErrorCode {
	if se, ok := err.(*SimError); ok {
		return se.Code
	}
	return ErrCodeUnknown
}
