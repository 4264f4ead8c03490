package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestParserError_Error(t *testing.T) {
	err := New(CategoryParse, CodeInvalidDate, "bad date")
	if err.Error() != "bad date" {
		t.Errorf("Error() = %q", err.Error())
	}

	err = err.WithSuggestion("use YYYY-MM-DD")
	if !strings.Contains(err.Error(), "use YYYY-MM-DD") {
		t.Errorf("Error() should carry the suggestion: %q", err.Error())
	}
}

func TestParserError_GetExitCode(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		expected int
	}{
		{CategoryFile, 2},
		{CategoryExtraction, 3},
		{CategoryParse, 4},
		{CategoryValidation, 4},
		{CategoryConfiguration, 5},
		{CategoryInternal, 6},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			err := New(tt.category, CodeUnexpectedError, "test")
			if got := err.GetExitCode(); got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := Wrap(cause, CategoryFile, CodeFileNotFound, "wrapped")

	if err.Cause != cause {
		t.Error("Wrap() did not keep the cause")
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should see through the wrapper")
	}

	if Wrap(nil, CategoryFile, CodeFileNotFound, "x") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestWithContext(t *testing.T) {
	err := New(CategoryFile, CodeFileNotFound, "missing").
		WithContext("path", "/tmp/x").
		WithContext("attempt", 2)

	if err.Context["path"] != "/tmp/x" {
		t.Errorf("Context path = %v", err.Context["path"])
	}
	if err.Context["attempt"] != 2 {
		t.Errorf("Context attempt = %v", err.Context["attempt"])
	}
}

func TestFileError(t *testing.T) {
	err := FileError(CodeFileNotFound, "/tmp/statement.pdf", nil)

	if err.Category != CategoryFile {
		t.Errorf("Category = %s", err.Category)
	}
	if !strings.Contains(err.Message, "/tmp/statement.pdf") {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Suggestion == "" {
		t.Error("FileError should carry a suggestion")
	}
	if err.Context["file_path"] != "/tmp/statement.pdf" {
		t.Errorf("Context = %v", err.Context)
	}
}

func TestExtractionError_InputUnavailable(t *testing.T) {
	err := ExtractionError(CodeInputUnavailable, "statement.pdf", nil)

	if err.Category != CategoryExtraction {
		t.Errorf("Category = %s", err.Category)
	}
	if !IsInputUnavailable(err) {
		t.Error("IsInputUnavailable() = false")
	}
}

func TestAsParserError(t *testing.T) {
	parserErr := New(CategoryParse, CodeInvalidAmount, "bad amount")
	wrapped := fmt.Errorf("outer: %w", parserErr)

	got, ok := AsParserError(wrapped)
	if !ok {
		t.Fatal("AsParserError() failed on a wrapped ParserError")
	}
	if got.Code != CodeInvalidAmount {
		t.Errorf("Code = %s", got.Code)
	}

	if _, ok := AsParserError(fmt.Errorf("plain")); ok {
		t.Error("AsParserError() matched a plain error")
	}
}

func TestWrapIfNeeded(t *testing.T) {
	parserErr := New(CategoryParse, CodeInvalidDate, "bad date")
	if got := WrapIfNeeded(parserErr, CategoryInternal, CodeUnexpectedError, "x"); got != parserErr {
		t.Error("WrapIfNeeded should pass an existing ParserError through")
	}

	plain := fmt.Errorf("plain")
	got := WrapIfNeeded(plain, CategoryInternal, CodeUnexpectedError, "wrapped")
	if got.Category != CategoryInternal || got.Cause != plain {
		t.Errorf("WrapIfNeeded wrapped wrong: %+v", got)
	}

	if WrapIfNeeded(nil, CategoryInternal, CodeUnexpectedError, "x") != nil {
		t.Error("WrapIfNeeded(nil) should be nil")
	}
}

func TestIsInputUnavailable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"input unavailable", ExtractionError(CodeInputUnavailable, "x", nil), true},
		{"other parser error", New(CategoryParse, CodeInvalidDate, "x"), false},
		{"plain error", fmt.Errorf("x"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInputUnavailable(tt.err); got != tt.expected {
				t.Errorf("IsInputUnavailable() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFormatCategories(t *testing.T) {
	if got := FormatCategories(nil); got != "no errors" {
		t.Errorf("FormatCategories(nil) = %q", got)
	}

	got := FormatCategories(map[ErrorCategory]int{CategoryParse: 3})
	if got != "parse: 3" {
		t.Errorf("FormatCategories() = %q", got)
	}
}
