package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryFile          ErrorCategory = "file"
	CategoryExtraction    ErrorCategory = "extraction"
	CategoryParse         ErrorCategory = "parse"
	CategoryValidation    ErrorCategory = "validation"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryInternal      ErrorCategory = "internal"
)

// ErrorCode represents specific error codes within categories
type ErrorCode string

const (
	// File errors
	CodeFileNotFound   ErrorCode = "file_not_found"
	CodeFilePermission ErrorCode = "file_permission"
	CodeFileCorrupted  ErrorCode = "file_corrupted"

	// Extraction errors. InputUnavailable is the only condition that
	// aborts a document run: no text and no table could be obtained.
	CodeInputUnavailable ErrorCode = "input_unavailable"
	CodeUnsupportedInput ErrorCode = "unsupported_input"

	// Parse errors
	CodeAmbiguousLayout ErrorCode = "ambiguous_layout"
	CodeInvalidFormat   ErrorCode = "invalid_format"

	// Validation errors
	CodeInvalidDate   ErrorCode = "invalid_date"
	CodeInvalidAmount ErrorCode = "invalid_amount"
	CodeMissingField  ErrorCode = "missing_field"

	// Configuration errors
	CodeInvalidConfig ErrorCode = "invalid_config"
	CodeMissingConfig ErrorCode = "missing_config"

	// Internal errors
	CodeUnexpectedError ErrorCode = "unexpected_error"
)

// ParserError is the base error type for all application errors
type ParserError struct {
	Category   ErrorCategory     `json:"category"`
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	Context    Context           `json:"context,omitempty"`
	Cause      error             `json:"-"`
	StackTrace errors.StackTrace `json:"-"`
}

// Context provides additional information about the error
type Context map[string]interface{}

// Error implements the error interface
func (e *ParserError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (suggestion: %s)", e.Message, e.Suggestion)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *ParserError) Unwrap() error {
	return e.Cause
}

// GetExitCode returns an appropriate exit code for the error
func (e *ParserError) GetExitCode() int {
	switch e.Category {
	case CategoryFile:
		return 2
	case CategoryExtraction:
		return 3
	case CategoryParse, CategoryValidation:
		return 4
	case CategoryConfiguration:
		return 5
	case CategoryInternal:
		return 6
	default:
		return 1
	}
}

// WithContext adds context information to the error
func (e *ParserError) WithContext(key string, value interface{}) *ParserError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *ParserError) WithSuggestion(suggestion string) *ParserError {
	e.Suggestion = suggestion
	return e
}

// New creates a new ParserError
func New(category ErrorCategory, code ErrorCode, message string) *ParserError {
	return &ParserError{
		Category:   category,
		Code:       code,
		Message:    message,
		StackTrace: errors.New("").(stackTracer).StackTrace(),
	}
}

// Wrap wraps an existing error with ParserError context
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *ParserError {
	if err == nil {
		return nil
	}

	return &ParserError{
		Category:   category,
		Code:       code,
		Message:    message,
		Cause:      err,
		StackTrace: errors.WithStack(err).(stackTracer).StackTrace(),
	}
}

// stackTracer interface for extracting stack traces
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Specific error constructors

// FileError creates a file-related error
func FileError(code ErrorCode, path string, err error) *ParserError {
	var message string
	var suggestion string

	switch code {
	case CodeFileNotFound:
		message = fmt.Sprintf("file not found: %s", path)
		suggestion = "check if the file path is correct and the file exists"
	case CodeFilePermission:
		message = fmt.Sprintf("permission denied accessing file: %s", path)
		suggestion = "check file permissions and ensure you have read access"
	case CodeFileCorrupted:
		message = fmt.Sprintf("file appears to be corrupted: %s", path)
		suggestion = "verify the file integrity and try using a backup copy"
	default:
		message = fmt.Sprintf("file error: %s", path)
		suggestion = "check the file and try again"
	}

	var result *ParserError
	if err != nil {
		result = Wrap(err, CategoryFile, code, message)
	} else {
		result = New(CategoryFile, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("file_path", path)
}

// ExtractionError creates an extraction-related error. InputUnavailable is
// fatal for the document: neither text nor a table could be obtained.
func ExtractionError(code ErrorCode, source string, err error) *ParserError {
	var message string
	var suggestion string

	switch code {
	case CodeInputUnavailable:
		message = fmt.Sprintf("no text or table content could be obtained from %s", source)
		suggestion = "the document may be image-based or encrypted; run it through the OCR collaborator first"
	case CodeUnsupportedInput:
		message = fmt.Sprintf("unsupported input format: %s", source)
		suggestion = "provide a .pdf, .txt or .json document"
	default:
		message = fmt.Sprintf("extraction error for %s", source)
		suggestion = "check the document and try again"
	}

	var result *ParserError
	if err != nil {
		result = Wrap(err, CategoryExtraction, code, message)
	} else {
		result = New(CategoryExtraction, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("source", source)
}

// LayoutError creates a layout/parse-related error
func LayoutError(code ErrorCode, detail string, err error) *ParserError {
	var message string
	var suggestion string

	switch code {
	case CodeAmbiguousLayout:
		message = fmt.Sprintf("header present but no role keywords matched: %s", detail)
		suggestion = "the affected fields will stay empty; check the header keywords if this is unexpected"
	case CodeInvalidFormat:
		message = fmt.Sprintf("invalid layout: %s", detail)
		suggestion = "check the document structure"
	default:
		message = fmt.Sprintf("layout error: %s", detail)
		suggestion = "check the document structure"
	}

	var result *ParserError
	if err != nil {
		result = Wrap(err, CategoryParse, code, message)
	} else {
		result = New(CategoryParse, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("detail", detail)
}

// ValidationError creates a validation-related error
func ValidationError(code ErrorCode, field string, value interface{}, err error) *ParserError {
	var message string
	var suggestion string

	switch code {
	case CodeInvalidDate:
		message = fmt.Sprintf("invalid date in field '%s': %v", field, value)
		suggestion = "supported formats are day/month/year and year/month/day with '/' or '-' separators"
	case CodeInvalidAmount:
		message = fmt.Sprintf("invalid amount in field '%s': %v", field, value)
		suggestion = "ensure amounts are decimal numbers, optionally with thousands separators"
	case CodeMissingField:
		message = fmt.Sprintf("required field '%s' is missing or empty", field)
		suggestion = "provide a value for this required field"
	default:
		message = fmt.Sprintf("validation error in field '%s': %v", field, value)
		suggestion = "check the field value and format"
	}

	var result *ParserError
	if err != nil {
		result = Wrap(err, CategoryValidation, code, message)
	} else {
		result = New(CategoryValidation, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("field", field).
		WithContext("value", value)
}

// ConfigurationError creates a configuration-related error
func ConfigurationError(code ErrorCode, setting string, value interface{}, err error) *ParserError {
	var message string
	var suggestion string

	switch code {
	case CodeInvalidConfig:
		message = fmt.Sprintf("invalid configuration for '%s': %v", setting, value)
		suggestion = "check the configuration documentation for valid values"
	case CodeMissingConfig:
		message = fmt.Sprintf("missing required configuration: %s", setting)
		suggestion = "provide this configuration setting or use a config file"
	default:
		message = fmt.Sprintf("configuration error: %s", setting)
		suggestion = "check your configuration and try again"
	}

	var result *ParserError
	if err != nil {
		result = Wrap(err, CategoryConfiguration, code, message)
	} else {
		result = New(CategoryConfiguration, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("setting", setting).
		WithContext("value", value)
}

// InternalError creates an internal error
func InternalError(code ErrorCode, operation string, err error) *ParserError {
	message := fmt.Sprintf("unexpected error during %s", operation)

	var result *ParserError
	if err != nil {
		result = Wrap(err, CategoryInternal, code, message)
	} else {
		result = New(CategoryInternal, code, message)
	}

	return result.
		WithSuggestion("this is likely a bug - please report it with the error details").
		WithContext("operation", operation)
}

// Utility functions

// IsParserError checks if an error is a ParserError
func IsParserError(err error) bool {
	_, ok := err.(*ParserError)
	return ok
}

// AsParserError extracts a ParserError from an error chain
func AsParserError(err error) (*ParserError, bool) {
	var parserErr *ParserError
	if errors.As(err, &parserErr) {
		return parserErr, true
	}
	return nil, false
}

// WrapIfNeeded wraps an error if it's not already a ParserError
func WrapIfNeeded(err error, category ErrorCategory, code ErrorCode, message string) *ParserError {
	if err == nil {
		return nil
	}

	if parserErr, ok := AsParserError(err); ok {
		return parserErr
	}

	return Wrap(err, category, code, message)
}

// IsInputUnavailable reports whether err represents a total inability to
// obtain text or table content from a document.
func IsInputUnavailable(err error) bool {
	if parserErr, ok := AsParserError(err); ok {
		return parserErr.Code == CodeInputUnavailable
	}
	return false
}

// FormatCategories renders a category histogram for log messages.
func FormatCategories(counts map[ErrorCategory]int) string {
	if len(counts) == 0 {
		return "no errors"
	}
	var parts []string
	for category, count := range counts {
		parts = append(parts, fmt.Sprintf("%s: %d", category, count))
	}
	return strings.Join(parts, ", ")
}
