package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestUserFriendlyError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      UserFriendlyError
		contains []string
	}{
		{
			name:     "message only",
			err:      UserFriendlyError{Message: "something broke"},
			contains: []string{"something broke"},
		},
		{
			name: "all fields",
			err: UserFriendlyError{
				Message: "trace failed",
				Reason:  "bad line",
				Hint:    "check format",
				Try:     "ddcdec convert",
				Err:     fmt.Errorf("line 3: unknown I2C command"),
			},
			contains: []string{"trace failed", "Reason: bad line", "Hint: check format", "Try: ddcdec convert", "Details: line 3"},
		},
		{
			name: "no reason",
			err: UserFriendlyError{
				Message: "failed",
				Hint:    "hint here",
			},
			contains: []string{"failed", "Hint: hint here"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("Error() = %q, want to contain %q", msg, s)
				}
			}
		})
	}
}

func TestUserFriendlyError_ErrorOmitsEmptyFields(t *testing.T) {
	err := UserFriendlyError{Message: "msg"}
	msg := err.Error()
	if strings.Contains(msg, "Reason:") || strings.Contains(msg, "Hint:") || strings.Contains(msg, "Try:") || strings.Contains(msg, "Details:") {
		t.Errorf("Error() = %q, should not contain empty fields", msg)
	}
}

func TestWrapNil(t *testing.T) {
	if WrapTraceError(nil, "x") != nil {
		t.Error("WrapTraceError(nil) should be nil")
	}
	if WrapConfigError(nil, "x") != nil {
		t.Error("WrapConfigError(nil) should be nil")
	}
	if WrapCatalogError(nil, "x") != nil {
		t.Error("WrapCatalogError(nil) should be nil")
	}
}

func TestWrapTraceErrorReasons(t *testing.T) {
	tests := []struct {
		err    error
		reason string
	}{
		{fmt.Errorf("open trace: %w", fs.ErrNotExist), "File does not exist"},
		{fmt.Errorf("line 4: unknown I2C command %q", "JUMP"), "Malformed trace line"},
		{fmt.Errorf("capture has link type 1, want 147"), "Capture file does not hold I2C bus events"},
		{fmt.Errorf("event 3: start sample 5 precedes previous event (9)"), "Sample positions are out of order"},
		{fmt.Errorf("something else"), "Trace could not be decoded"},
	}
	for _, tt := range tests {
		wrapped := WrapTraceError(tt.err, "trace.txt")
		var ufe UserFriendlyError
		if !errors.As(wrapped, &ufe) {
			t.Fatalf("WrapTraceError did not return UserFriendlyError")
		}
		if ufe.Reason != tt.reason {
			t.Errorf("Reason for %q = %q, want %q", tt.err, ufe.Reason, tt.reason)
		}
		if !errors.Is(wrapped, tt.err) {
			t.Errorf("wrapped error should unwrap to %v", tt.err)
		}
	}
}

func TestWrapCatalogErrorReasons(t *testing.T) {
	err := WrapCatalogError(fmt.Errorf("validate catalog x: register %q: duplicate offset 0x20", "a"), "x.yaml")
	if !strings.Contains(err.Error(), "Two registers share an offset") {
		t.Errorf("Error() = %q", err)
	}
	err = WrapCatalogError(fmt.Errorf("parse catalog YAML: boom"), "x.yaml")
	if !strings.Contains(err.Error(), "File is not valid YAML") {
		t.Errorf("Error() = %q", err)
	}
}

func TestWrapConfigError(t *testing.T) {
	err := WrapConfigError(fmt.Errorf("output.format: unknown %q", "xml"), "ddcdec.yaml")
	msg := err.Error()
	if !strings.Contains(msg, "Configuration error in ddcdec.yaml") {
		t.Errorf("Error() = %q", msg)
	}
	if !strings.Contains(msg, "ddcdec init") {
		t.Errorf("Error() = %q, want init hint", msg)
	}
}
