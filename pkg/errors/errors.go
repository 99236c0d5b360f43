// Package errors defines the error values shared by strainmap packages.
//
// Input problems, missing library entries and collaborator failures (the
// LLM, the library file, configuration) each have their own type so the CLI
// and the HTTP server can react without matching on strings. Every typed
// error also answers errors.Is for one of the sentinels below.
package errors

import (
	"errors"
	"fmt"
)

// Re-exported from the standard library so callers need one errors import.
var (
	New  = errors.New
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Sentinels.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	ErrAPIKeyRequired = errors.New("API key required")
	ErrAPIKeyInvalid  = errors.New("API key invalid")

	// ErrLLMUnavailable means no LLM candidate could be produced. Imports
	// fall back to the local parser on it.
	ErrLLMUnavailable = errors.New("llm unavailable")
	// ErrNoProfiles means a research reply parsed but listed no profiles.
	ErrNoProfiles  = errors.New("no profiles in response")
	ErrRateLimited = errors.New("rate limited")

	ErrTimeout  = errors.New("operation timed out")
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError reports a missing library entry.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError reports unusable input: empty import text, an incomplete
// template, a bad flag value or a nil option argument.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError creates a ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError is a failed call to the LLM service. StatusCode is zero when the
// request never got an HTTP response.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is matches ErrLLMUnavailable for every APIError, ErrRateLimited for 429
// and ErrAPIKeyInvalid for 401 and 403.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrLLMUnavailable:
		return true
	case ErrRateLimited:
		return e.StatusCode == 429
	case ErrAPIKeyInvalid:
		return e.StatusCode == 401 || e.StatusCode == 403
	}
	return false
}

// NewAPIError creates an APIError without a cause.
func NewAPIError(provider string, statusCode int, message string) *APIError {
	return &APIError{Provider: provider, StatusCode: statusCode, Message: message}
}

// AuthenticationError means the LLM service cannot be used with the
// configured credentials. It matches ErrAPIKeyRequired and, since no
// candidate can be produced, ErrLLMUnavailable.
type AuthenticationError struct {
	Provider string
	Method   string
	Message  string
	Err      error
}

func (e *AuthenticationError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("%s authentication failed: %s", e.Method, e.Message)
	}
	return fmt.Sprintf("%s %s authentication failed: %s", e.Provider, e.Method, e.Message)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAPIKeyRequired || target == ErrLLMUnavailable
}

// ConfigError is a bad or unreadable setting.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "config: " + e.Message
	}
	return fmt.Sprintf("config %s: %s", e.Component, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError creates a ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError is a document or LLM reply that could not be decoded.
type ParseError struct {
	Format  string // json, yaml
	File    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("parse %s: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("parse %s %s: %s", e.Format, e.File, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError creates a ParseError.
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError is a failed file operation on the library or an input file.
type IOError struct {
	Operation string // read, write, create, rename
	Path      string
	Message   string
	Err       error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Operation, e.Path, e.Message)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError creates an IOError whose message is the cause's text.
func NewIOError(operation, path string, err error) *IOError {
	e := &IOError{Operation: operation, Path: path, Err: err}
	if err != nil {
		e.Message = err.Error()
	}
	return e
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidationError reports whether err is or wraps ErrInvalidInput.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsLLMUnavailable reports whether err means no LLM candidate was produced.
func IsLLMUnavailable(err error) bool {
	return errors.Is(err, ErrLLMUnavailable) || errors.Is(err, ErrNoProfiles)
}

// IsAPIKeyError reports a missing or rejected API key.
func IsAPIKeyError(err error) bool {
	return errors.Is(err, ErrAPIKeyRequired) || errors.Is(err, ErrAPIKeyInvalid)
}

// IsTimeout reports whether err is or wraps ErrTimeout.
func IsTimeout(err error) bool { return errors.Is(err, ErrTimeout) }

// WrapIO returns nil for a nil err, an IOError otherwise.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse returns nil for a nil err, a ParseError otherwise.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapAPI returns nil for a nil err, an APIError otherwise.
func WrapAPI(provider string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{Provider: provider, StatusCode: statusCode, Message: err.Error(), Err: err}
}
