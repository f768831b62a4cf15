package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMalformedRecord, "record %d: %s is not numeric", 3, "start_time")

	if err.Code != ErrCodeMalformedRecord {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMalformedRecord)
	}

	if err.Message != "record 3: start_time is not numeric" {
		t.Errorf("Message = %v, want %v", err.Message, "record 3: start_time is not numeric")
	}

	expected := "MALFORMED_RECORD: record 3: start_time is not numeric"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("open ws.csv: no such file")
	err := Wrap(ErrCodeDataSource, cause, "load records")

	if err.Code != ErrCodeDataSource {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDataSource)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "DATA_SOURCE: load records: open ws.csv: no such file"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeEmptyDataset, "no records"),
			code:     ErrCodeEmptyDataset,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeEmptyDataset, "no records"),
			code:     ErrCodeMalformedRecord,
			expected: false,
		},
		{
			name:     "outer code of wrapped error",
			err:      Wrap(ErrCodeDataSource, New(ErrCodeMalformedRecord, "inner"), "outer"),
			code:     ErrCodeDataSource,
			expected: true,
		},
		{
			name:     "inner code of wrapped error",
			err:      Wrap(ErrCodeDataSource, New(ErrCodeMalformedRecord, "inner"), "outer"),
			code:     ErrCodeMalformedRecord,
			expected: true,
		},
		{
			name:     "through fmt wrapping",
			err:      fmt.Errorf("assemble: %w", New(ErrCodeDeadlineNotFound, "fall2016/assignment9")),
			code:     ErrCodeDeadlineNotFound,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeDeadlineNotFound, "test"),
			expected: ErrCodeDeadlineNotFound,
		},
		{
			name:     "wrapped returns outer",
			err:      Wrap(ErrCodeDataSource, New(ErrCodeMalformedRecord, "inner"), "outer"),
			expected: ErrCodeDataSource,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeEmptyDataset, "no work sessions left after windowing"),
			expected: "no work sessions left after windowing",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
