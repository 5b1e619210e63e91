package simmeter

import (
	"errors"
	"fmt"
)

// Simulator errors.
var (
	// ErrNotConnected is returned for requests on a disconnected meter.
	ErrNotConnected = errors.New("meter not connected")

	// ErrInvalidFixture is returned for fixtures that fail validation.
	ErrInvalidFixture = errors.New("invalid fixture")
)

// LoadError reports a fixture that could not be loaded.
type LoadError struct {
	File    string
	Message string
	Cause   error
}

// Error implements error.
func (e *LoadError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the cause.
func (e *LoadError) Unwrap() error {
	return e.Cause
}
