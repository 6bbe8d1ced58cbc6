package model

import (
	"fmt"
	"strings"
)

// Warning codes emitted by the pipeline.
const (
	WarnMalformedDetection = "malformed_detection"
	WarnUnattachedArrow    = "unattached_arrow"
	WarnUnknownKind        = "unknown_kind"
)

// Warning represents a non-fatal issue encountered during processing.
// Warnings never abort a batch; they are accumulated and returned
// alongside results so callers can decide whether to log or act on them.
type Warning struct {
	// Code is a stable machine-readable identifier
	Code string

	// Message is a human-readable description
	Message string
}

// Warningf constructs a warning with a formatted message
func Warningf(code, format string, args ...interface{}) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}

// String returns "code: message"
func (w Warning) String() string {
	return w.Code + ": " + w.Message
}

// FormatWarnings joins warnings into a single human-readable string,
// one warning per line. Returns "" for an empty slice.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}
