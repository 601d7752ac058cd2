// Package errors defines the error kinds produced while turning controller
// and view sources into an application model and generated code.
//
// A build has no partial-success mode: the first ParseError returned by any
// stage aborts the whole build and is reported to the user with its location.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes a ParseError.
type Kind string

const (
	// KindFile wraps a failure to read, stat or write a file.
	KindFile Kind = "file"
	// KindUnexpectedNode reports source whose structure differs from what the
	// parser expected at that position.
	KindUnexpectedNode Kind = "unexpected_node"
)

// Sentinels usable with errors.Is to test the kind of a ParseError.
var (
	ErrFile           = &ParseError{Kind: KindFile}
	ErrUnexpectedNode = &ParseError{Kind: KindUnexpectedNode}
)

// ParseError is the structured error returned by the scanner, parser and
// generator.
type ParseError struct {
	Kind    Kind
	File    string
	Line    int
	Column  int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("[%s]", e.Kind))

	if e.File != "" {
		location := e.File
		if e.Line > 0 {
			location += fmt.Sprintf(":%d", e.Line)
			if e.Column > 0 {
				location += fmt.Sprintf(":%d", e.Column)
			}
		}
		parts = append(parts, location)
	}

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	var t *ParseError
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}

	return false
}

// WithFile sets the file the error refers to.
func (e *ParseError) WithFile(file string) *ParseError {
	e.File = file

	return e
}

// WithLocation adds file location information.
func (e *ParseError) WithLocation(file string, line, column int) *ParseError {
	e.File = file
	e.Line = line
	e.Column = column

	return e
}

// NewFileError wraps an I/O failure on file.
func NewFileError(file string, cause error) *ParseError {
	return &ParseError{
		Kind:  KindFile,
		File:  file,
		Cause: cause,
	}
}

// NewUnexpectedNode creates an unexpected-structure error.
func NewUnexpectedNode(message string) *ParseError {
	return &ParseError{
		Kind:    KindUnexpectedNode,
		Message: message,
	}
}

// Expected creates an unexpected-structure error describing what the parser
// wanted and what it found instead.
func Expected(expected, found string) *ParseError {
	return NewUnexpectedNode(fmt.Sprintf("expected %s, found %s", expected, found))
}

// IsFileError checks if an error is a file-access error.
func IsFileError(err error) bool {
	return errors.Is(err, ErrFile)
}

// IsUnexpectedNode checks if an error is an unexpected-structure error.
func IsUnexpectedNode(err error) bool {
	return errors.Is(err, ErrUnexpectedNode)
}

// Logger interface for error logging.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
}

// Report logs err with its structured location fields. Errors that are not
// ParseErrors are logged as-is.
func Report(ctx context.Context, logger Logger, err error) {
	if err == nil || logger == nil {
		return
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		logger.Error(ctx, err, "Build failed")
		return
	}

	logger.Error(ctx, err, "Build failed",
		"kind", string(pe.Kind),
		"file", pe.File,
		"line", pe.Line,
		"column", pe.Column)
}
