package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned when a document names an attribute the
	// target record does not declare.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidType is returned when a value is neither text nor null.
	ErrInvalidType = errors.New("invalid type")
)

// ValidationError reports a structural mismatch between an input document
// and the record it was applied to.
type ValidationError struct {
	Record string `json:"record"`
	Key    string `json:"key"`
	Err    error  `json:"-"`
	Detail string `json:"detail,omitempty"`
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s %q", e.Record, e.Err, e.Key)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Reason returns the sentinel message ("unknown field", "invalid type").
func (e *ValidationError) Reason() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// withPrefix re-addresses a nested error under its parent key.
func (e *ValidationError) withPrefix(record, prefix string) *ValidationError {
	return &ValidationError{
		Record: record,
		Key:    prefix + "." + e.Key,
		Err:    e.Err,
		Detail: e.Detail,
	}
}
