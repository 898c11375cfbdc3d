package errors

import stderrors "errors"

// As and Is re-export the standard library helpers so callers importing this
// package do not need a second alias.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func New(text string) error {
	return stderrors.New(text)
}
