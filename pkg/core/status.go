package core

import "strings"

// TestStatus is the outcome recorded for a test case identifier.
type TestStatus int

const (
	StatusUnrecorded TestStatus = iota // No outcome recorded yet
	StatusPass                         // Test body completed
	StatusFail                         // Test body returned an error or panicked
)

// String returns the tracker representation of TestStatus
func (s TestStatus) String() string {
	switch s {
	case StatusUnrecorded:
		return "Unrecorded"
	case StatusPass:
		return "Pass"
	case StatusFail:
		return "Fail"
	default:
		return "Unknown"
	}
}

// IsRecorded returns true if an outcome has been stored
func (s TestStatus) IsRecorded() bool {
	return s == StatusPass || s == StatusFail
}

// ParseTestStatus converts "Pass"/"Fail" (case-insensitive) to a TestStatus.
func ParseTestStatus(s string) (TestStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pass", "passed":
		return StatusPass, true
	case "fail", "failed":
		return StatusFail, true
	default:
		return StatusUnrecorded, false
	}
}

// ErrorCategory classifies the type of error for better debugging and reporting
type ErrorCategory int

const (
	ErrCategoryNone       ErrorCategory = iota // No error
	ErrCategoryLookup                          // Locator could not be resolved, invalid parent
	ErrCategoryDriver                          // No driver wrapper or driver bound
	ErrCategoryConnection                      // Automation server or tracker unreachable
	ErrCategoryConfig                          // Invalid configuration, missing required field
)

// String returns the string representation of ErrorCategory
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryNone:
		return "none"
	case ErrCategoryLookup:
		return "lookup"
	case ErrCategoryDriver:
		return "driver"
	case ErrCategoryConnection:
		return "connection"
	case ErrCategoryConfig:
		return "config"
	default:
		return "unknown"
	}
}
