package errors

import stderrors "errors"

// As forwards to the standard library so callers need a single errors import.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Is forwards to the standard library.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
