package errors

import (
	"fmt"
)

// BrokenLinkError is raised when a link points to a missing page, a missing
// anchor or an unreachable remote URL.
type BrokenLinkError struct {
	*DocSiteError
	URL string
}

// NewBrokenLinkError creates a new broken link error
func NewBrokenLinkError(source string, line int, url, reason string) *BrokenLinkError {
	return &BrokenLinkError{
		DocSiteError: &DocSiteError{
			Message: fmt.Sprintf("links to %s, but %s", url, reason),
			Context: &ErrorContext{
				Operation: "Link validation",
				Component: "validation",
				Source:    source,
				Line:      line,
				Details: map[string]interface{}{
					"url": url,
				},
			},
			ExitCode: ExitValidationError,
		},
		URL: url,
	}
}

// IOError is raised when reading sources or writing output fails
type IOError struct {
	*DocSiteError
}

// NewIOError creates a new IO error
func NewIOError(operation, path string, cause error) *IOError {
	return &IOError{
		DocSiteError: &DocSiteError{
			Message: fmt.Sprintf("%s failed: %s", operation, path),
			Cause:   cause,
			Context: &ErrorContext{
				Operation: operation,
				Component: "Filesystem",
				Details: map[string]interface{}{
					"path": path,
				},
				Suggestions: []string{
					"Check that the path exists and is readable",
					"Check file permissions on the output directory",
				},
			},
			ExitCode: ExitIOError,
		},
	}
}
