package document

import (
	"errors"
	"fmt"
)

// Errors returned by document operations.
var (
	// ErrFileNotFound indicates an operation against an absent document.
	ErrFileNotFound = errors.New("file not found")

	// ErrCorruptDocument indicates the on-disk content is not parseable.
	ErrCorruptDocument = errors.New("corrupt document")
)

// NotFoundError reports which operation hit an absent document.
type NotFoundError struct {
	// Path is the resolved document path.
	Path string
	// Op is the operation that was attempted ("read", "unlink", ...).
	Op string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: file not found", e.Op, e.Path)
}

// Is implements error matching for NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrFileNotFound
}

// CorruptDocumentError reports unparseable on-disk content. It is surfaced
// as a distinct kind rather than silently treated as an empty document.
type CorruptDocumentError struct {
	// Path is the resolved document path.
	Path string
	// Err is the underlying parse error, if any.
	Err error
}

// Error implements the error interface.
func (e *CorruptDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("document %s is not valid JSON: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("document %s is not valid JSON", e.Path)
}

// Unwrap returns the underlying error.
func (e *CorruptDocumentError) Unwrap() error {
	return e.Err
}

// Is implements error matching for CorruptDocumentError.
func (e *CorruptDocumentError) Is(target error) bool {
	return target == ErrCorruptDocument
}
