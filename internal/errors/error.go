// Package errors provides coded, user-facing errors for the CLI and
// configuration layer. Each code carries a category, a message and a fix
// suggestion so tooling failures tell the operator what to do next.
package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryConfig    Category = "config"
	CategoryTransport Category = "transport"
	CategoryCapture   Category = "capture"
	CategoryCLI       Category = "cli"
)

// Error is a structured error with a stable code and a fix suggestion.
type Error struct {
	// Code is a unique error identifier (e.g. "E101").
	Code string

	// Category is the error type (config, transport, ...).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// Format renders the error for terminal output, one fact per line.
func (e *Error) Format() string {
	out := e.Error()
	if e.Detail != "" {
		out += "\n  " + e.Detail
	}
	if e.Wrapped != nil {
		out += "\n  cause: " + e.Wrapped.Error()
	}
	if e.Suggestion != "" {
		out += "\n  hint: " + e.Suggestion
	}
	return out
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{Code: code, Message: "unknown error"}
	}
	return &Error{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Suggestion: template.Suggestion,
	}
}

// Newf creates an Error with a formatted message and no code.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error under a registered code. A nil err
// returns nil; an *Error passes through unchanged.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*Error); ok {
		return ce
	}
	return New(code).Wrap(err)
}
