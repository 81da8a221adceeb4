package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// UserFriendlyError provides user-friendly error messages with context and hints
type UserFriendlyError struct {
	Message string
	Reason  string
	Hint    string
	Try     string
	Err     error
}

func (e UserFriendlyError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Message)
	if e.Reason != "" {
		buf.WriteString("\n  Reason: " + e.Reason)
	}
	if e.Hint != "" {
		buf.WriteString("\n  Hint: " + e.Hint)
	}
	if e.Try != "" {
		buf.WriteString("\n  Try: " + e.Try)
	}
	if e.Err != nil {
		buf.WriteString("\n  Details: " + e.Err.Error())
	}
	return buf.String()
}

func (e UserFriendlyError) Unwrap() error {
	return e.Err
}

// WrapTraceError wraps failures to read or parse an event trace
func WrapTraceError(err error, path string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Failed to read I2C trace %s", path),
		Reason:  extractTraceReason(err),
		Hint:    "Traces are text (<start>-<end> COMMAND [0xNN]), YAML (events: [...]) or pcap files written by ddcdec",
		Try:     fmt.Sprintf("ddcdec convert --input %s --output trace.txt", path),
		Err:     err,
	}
}

// WrapConfigError wraps configuration errors with user-friendly context
func WrapConfigError(err error, configPath string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Configuration error in %s", configPath),
		Reason:  err.Error(),
		Hint:    "Configuration files may be YAML (.yaml/.yml) or TOML (.toml)",
		Try:     "Generate a default config: ddcdec init --output ddcdec.yaml",
		Err:     err,
	}
}

// WrapCatalogError wraps register catalog load/validation errors
func WrapCatalogError(err error, catalogPath string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Register catalog %s could not be loaded", catalogPath),
		Reason:  extractCatalogReason(err),
		Hint:    "Catalog files need version: 1, a protocol (scdc or hdcp) and unique register offsets",
		Try:     "Export the built-in table as a starting point: ddcdec catalog --export scdc.yaml",
		Err:     err,
	}
}

func extractTraceReason(err error) string {
	errStr := err.Error()

	if errors.Is(err, fs.ErrNotExist) {
		return "File does not exist"
	}
	if errors.Is(err, fs.ErrPermission) {
		return "Permission denied"
	}
	if strings.Contains(errStr, "line ") {
		return "Malformed trace line"
	}
	if strings.Contains(errStr, "link type") {
		return "Capture file does not hold I2C bus events"
	}
	if strings.Contains(errStr, "precedes previous event") || strings.Contains(errStr, "before start sample") {
		return "Sample positions are out of order"
	}

	return "Trace could not be decoded"
}

func extractCatalogReason(err error) string {
	errStr := err.Error()

	if errors.Is(err, fs.ErrNotExist) {
		return "File does not exist"
	}
	if strings.Contains(errStr, "parse catalog YAML") {
		return "File is not valid YAML"
	}
	if strings.Contains(errStr, "duplicate offset") {
		return "Two registers share an offset"
	}
	if strings.Contains(errStr, "unsupported catalog version") {
		return "Unsupported catalog version"
	}

	return "Catalog failed validation"
}
