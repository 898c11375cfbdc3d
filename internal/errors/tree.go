package errors

import (
	"fmt"
)

// StructuralViolationError is raised when content breaks the content model
// of the tree: forbidden children, mismatched end tags, unknown tags or node
// kinds, empty documents and unbalanced traversal stacks.
type StructuralViolationError struct {
	*DocSiteError
}

// NewStructuralViolationError creates a new structural violation error
func NewStructuralViolationError(message string, details map[string]interface{}) *StructuralViolationError {
	return &StructuralViolationError{
		DocSiteError: &DocSiteError{
			Message: message,
			Context: &ErrorContext{
				Operation: "Tree assembly",
				Component: "htmltree",
				Details:   details,
			},
			ExitCode: ExitTemplateError,
		},
	}
}

// DuplicateIdentifierError is raised when an id attribute value is already
// claimed somewhere in the page.
type DuplicateIdentifierError struct {
	*DocSiteError
	ID string
}

// NewDuplicateIdentifierError creates a new duplicate identifier error
func NewDuplicateIdentifierError(id string) *DuplicateIdentifierError {
	return &DuplicateIdentifierError{
		DocSiteError: &DocSiteError{
			Message: fmt.Sprintf("id '%s' already exists in document", id),
			Context: &ErrorContext{
				Operation: "Setting attribute",
				Component: "htmltree",
				Details: map[string]interface{}{
					"id": id,
				},
				Suggestions: []string{
					"Rename one of the headings so their anchors differ",
					"Check the page skeleton for ids that collide with heading anchors",
				},
			},
			ExitCode: ExitContentError,
		},
		ID: id,
	}
}

// DuplicatePlaceholderError is raised when a skeleton declares the same
// placeholder twice.
type DuplicatePlaceholderError struct {
	*DocSiteError
	Name string
}

// NewDuplicatePlaceholderError creates a new duplicate placeholder error
func NewDuplicatePlaceholderError(name string) *DuplicatePlaceholderError {
	return &DuplicatePlaceholderError{
		DocSiteError: &DocSiteError{
			Message: fmt.Sprintf("placeholder %s repeated", name),
			Context: &ErrorContext{
				Operation: "Parsing skeleton",
				Component: "htmltree",
				Details: map[string]interface{}{
					"placeholder": name,
				},
			},
			ExitCode: ExitTemplateError,
		},
		Name: name,
	}
}

// UnboundPlaceholderError is raised at render time when a placeholder has no
// content bound to it.
type UnboundPlaceholderError struct {
	*DocSiteError
	Name string
}

// NewUnboundPlaceholderError creates a new unbound placeholder error
func NewUnboundPlaceholderError(name string) *UnboundPlaceholderError {
	return &UnboundPlaceholderError{
		DocSiteError: &DocSiteError{
			Message: fmt.Sprintf("placeholder %s has no binding", name),
			Context: &ErrorContext{
				Operation: "Rendering",
				Component: "htmltree",
				Details: map[string]interface{}{
					"placeholder": name,
				},
				Suggestions: []string{
					"Remove the placeholder from the skeleton or bind content to it",
				},
			},
			ExitCode: ExitTemplateError,
		},
		Name: name,
	}
}

// HeadingLevelSkipError is raised when a heading is more than one level
// deeper than the heading before it.
type HeadingLevelSkipError struct {
	*DocSiteError
	From int
	To   int
}

// NewHeadingLevelSkipError creates a new heading level skip error
func NewHeadingLevelSkipError(from, to int) *HeadingLevelSkipError {
	return &HeadingLevelSkipError{
		DocSiteError: &DocSiteError{
			Message: fmt.Sprintf("Heading level skipped from %d to %d", from, to),
			Context: &ErrorContext{
				Operation: "Building table of contents",
				Component: "toc",
				Details: map[string]interface{}{
					"from": from,
					"to":   to,
				},
				Suggestions: []string{
					fmt.Sprintf("Use a level %d heading before the level %d one", from+1, to),
				},
			},
			ExitCode: ExitContentError,
		},
		From: from,
		To:   to,
	}
}

// UnknownDeclarationError is raised for any declaration other than a single
// leading <!DOCTYPE html>.
type UnknownDeclarationError struct {
	*DocSiteError
	Declaration string
}

// NewUnknownDeclarationError creates a new unknown declaration error
func NewUnknownDeclarationError(decl, reason string) *UnknownDeclarationError {
	return &UnknownDeclarationError{
		DocSiteError: &DocSiteError{
			Message: fmt.Sprintf("Unexpected declaration: '%s'", decl),
			Context: &ErrorContext{
				Operation: "Parsing skeleton",
				Component: "htmltree",
				Details: map[string]interface{}{
					"declaration": decl,
					"reason":      reason,
				},
				Suggestions: []string{
					"Only <!DOCTYPE html> is accepted, as the very first item",
				},
			},
			ExitCode: ExitTemplateError,
		},
		Declaration: decl,
	}
}

// Locate records the source and line on the first DocSiteError in the chain
// that has no location yet. It returns err unchanged.
func Locate(err error, source string, line int) error {
	var located interface{ locate(string, int) }
	if As(err, &located) {
		located.locate(source, line)
	}
	return err
}

func (e *DocSiteError) locate(source string, line int) {
	if e.Context == nil {
		e.Context = &ErrorContext{}
	}
	if e.Context.Source == "" {
		e.Context.Source = source
		e.Context.Line = line
	}
}
