// Package terrors provides the error types used across Tabwise.
// They mirror the failure taxonomy of the completion core: sources that
// cannot produce data, lines that cannot be parsed, and configuration
// that names things the core does not know.
package terrors

import (
	"errors"
	"fmt"
)

// TabwiseError is the base interface for all Tabwise errors.
type TabwiseError interface {
	error
	// Code returns a unique error code for programmatic error handling.
	Code() string
}

type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// SourceUnavailableError means a backend, provider or helper could not
// produce data (missing binary, unreadable file, timeout). It is always
// recovered locally as an empty contribution and never surfaced to the
// caller of the completion pipeline.
type SourceUnavailableError struct {
	baseError
	Source string
}

// NewSourceUnavailable creates a new source-unavailable error.
func NewSourceUnavailable(source string, message string, cause error) *SourceUnavailableError {
	return &SourceUnavailableError{
		baseError: baseError{
			code:    "SOURCE_UNAVAILABLE",
			message: message,
			cause:   cause,
		},
		Source: source,
	}
}

// MalformedEntryError means a history line or helper output line did not
// match any known format. Recovery is per-line: the offending line is
// treated as a bare legacy entry, the rest of the file is kept.
type MalformedEntryError struct {
	baseError
	Line string
}

// NewMalformedEntry creates a new malformed-entry error.
func NewMalformedEntry(line string, message string, cause error) *MalformedEntryError {
	return &MalformedEntryError{
		baseError: baseError{
			code:    "MALFORMED_ENTRY",
			message: message,
			cause:   cause,
		},
		Line: line,
	}
}

// ConfigMismatchError means the configuration named a backend, history
// mode or ranking strategy the core cannot fulfill. This is the one
// class that is surfaced (at warn level) before falling back to the
// generic behavior.
type ConfigMismatchError struct {
	baseError
	Field string
	Value string
}

// NewConfigMismatch creates a new configuration-mismatch error.
func NewConfigMismatch(field, value string, message string) *ConfigMismatchError {
	return &ConfigMismatchError{
		baseError: baseError{
			code:    "CONFIG_MISMATCH",
			message: message,
		},
		Field: field,
		Value: value,
	}
}

// IsSourceUnavailable reports whether err is (or wraps) a
// SourceUnavailableError.
func IsSourceUnavailable(err error) bool {
	var target *SourceUnavailableError
	return errors.As(err, &target)
}

// IsConfigMismatch reports whether err is (or wraps) a ConfigMismatchError.
func IsConfigMismatch(err error) bool {
	var target *ConfigMismatchError
	return errors.As(err, &target)
}
