// Package errors defines the typed failures raised while loading the film
// dataset and computing or rendering an analysis section.
package errors

import (
	goerrors "errors"
	"fmt"
	"sort"
	"strings"
)

// Code classifies an AnalysisError.
type Code string

const (
	CodeMissingColumn  Code = "MISSING_COLUMN"
	CodeEmptySelection Code = "EMPTY_SELECTION"
	CodeInvalidInput   Code = "INVALID_INPUT"
	CodeRenderFailed   Code = "RENDER_FAILED"
	CodeLoadFailed     Code = "LOAD_FAILED"
)

// AnalysisError is returned by the loader, the aggregators and the renderers.
type AnalysisError struct {
	Code    Code
	Section string
	Message string
	Details map[string]interface{}
	Cause   error
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(e.Code))
	b.WriteString("]")
	if e.Section != "" {
		b.WriteString(" ")
		b.WriteString(e.Section)
		b.WriteString(":")
	}
	b.WriteString(" ")
	b.WriteString(e.Message)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.Details[k]))
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap allows errors.Is and errors.As to reach the cause
func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Is matches another AnalysisError with the same code, so that
// errors.Is(err, ErrMissingColumn) works for any missing column.
func (e *AnalysisError) Is(target error) bool {
	t, ok := target.(*AnalysisError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Section == "" && t.Code == e.Code
}

// WithDetail adds a key/value pair to the error
func (e *AnalysisError) WithDetail(key string, value interface{}) *AnalysisError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// InSection tags the error with the section that raised it.
func (e *AnalysisError) InSection(section string) *AnalysisError {
	e.Section = section
	return e
}

// Sentinels for errors.Is comparisons by code.
var (
	ErrMissingColumn  = &AnalysisError{Code: CodeMissingColumn}
	ErrEmptySelection = &AnalysisError{Code: CodeEmptySelection}
	ErrInvalidInput   = &AnalysisError{Code: CodeInvalidInput}
	ErrRenderFailed   = &AnalysisError{Code: CodeRenderFailed}
	ErrLoadFailed     = &AnalysisError{Code: CodeLoadFailed}
)

// New creates a new AnalysisError
func New(code Code, message string, cause error) *AnalysisError {
	return &AnalysisError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// MissingColumn reports a column absent from the table.
func MissingColumn(column string) *AnalysisError {
	return New(CodeMissingColumn, fmt.Sprintf("column %q not found", column), nil).
		WithDetail("column", column)
}

// EmptySelection reports a selection that matched nothing.
func EmptySelection(what string) *AnalysisError {
	return New(CodeEmptySelection, fmt.Sprintf("no %s selected", what), nil)
}

// InvalidInput reports malformed input to an aggregator.
func InvalidInput(message string) *AnalysisError {
	return New(CodeInvalidInput, message, nil)
}

// RenderFailed wraps a chart rendering failure.
func RenderFailed(chart string, cause error) *AnalysisError {
	return New(CodeRenderFailed, fmt.Sprintf("failed to render %s", chart), cause)
}

// LoadFailed wraps a dataset loading failure.
func LoadFailed(path string, cause error) *AnalysisError {
	return New(CodeLoadFailed, "failed to load dataset", cause).WithDetail("path", path)
}

// CodeOf returns the code of the first AnalysisError in the chain, or "".
func CodeOf(err error) Code {
	var ae *AnalysisError
	if goerrors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

func IsMissingColumn(err error) bool  { return CodeOf(err) == CodeMissingColumn }
func IsEmptySelection(err error) bool { return CodeOf(err) == CodeEmptySelection }
func IsInvalidInput(err error) bool   { return CodeOf(err) == CodeInvalidInput }
