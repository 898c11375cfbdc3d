package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorContext provides rich error information for user-friendly error messages
type ErrorContext struct {
	Operation   string                 // The operation that failed
	Component   string                 // The component that failed
	Source      string                 // Page, skeleton or file the failure belongs to
	Line        int                    // Source line, 0 when unknown
	Details     map[string]interface{} // Offending names and values
	Suggestions []string               // Actionable suggestions for the user
}

// Location renders Source and Line as "source:line".
func (ec *ErrorContext) Location() string {
	switch {
	case ec.Source != "" && ec.Line > 0:
		return fmt.Sprintf("%s:%d", ec.Source, ec.Line)
	case ec.Source != "":
		return ec.Source
	case ec.Line > 0:
		return fmt.Sprintf("line %d", ec.Line)
	}
	return ""
}

// Format returns a formatted string representation of the error context
func (ec *ErrorContext) Format() string {
	var sb strings.Builder

	if ec.Operation != "" || ec.Component != "" {
		sb.WriteString("\nWhat happened:\n")
		if ec.Operation != "" && ec.Component != "" {
			sb.WriteString(fmt.Sprintf("  %s failed in %s.\n", ec.Operation, ec.Component))
		} else if ec.Operation != "" {
			sb.WriteString(fmt.Sprintf("  %s failed.\n", ec.Operation))
		} else {
			sb.WriteString(fmt.Sprintf("  Failure in %s.\n", ec.Component))
		}
	}

	if loc := ec.Location(); loc != "" {
		sb.WriteString(fmt.Sprintf("\nWhere:\n  %s\n", loc))
	}

	if len(ec.Details) > 0 {
		keys := make([]string, 0, len(ec.Details))
		for key := range ec.Details {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		sb.WriteString("\nDetails:\n")
		for _, key := range keys {
			sb.WriteString(fmt.Sprintf("  - %s: %v\n", key, ec.Details[key]))
		}
	}

	if len(ec.Suggestions) > 0 {
		sb.WriteString("\nWhat you can do:\n")
		for i, suggestion := range ec.Suggestions {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, suggestion))
		}
	}

	return sb.String()
}
