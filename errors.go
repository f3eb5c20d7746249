package fabrik

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when resolving a key with no registered
	// factory definition.
	ErrNotFound = errors.New("fabrik: factory definition not found")

	// ErrParentNotFound is returned when a definition's declared parent is
	// not registered at resolution time.
	ErrParentNotFound = errors.New("fabrik: parent factory definition not found")

	// ErrCircularInheritance is returned when a parent chain revisits a
	// definition name.
	ErrCircularInheritance = errors.New("fabrik: circular factory inheritance")

	// ErrTypeMismatch is returned when a transient attribute is read with a
	// type different from the stored value's type.
	ErrTypeMismatch = errors.New("fabrik: transient attribute type mismatch")
)

// NotFoundError reports that no factory definition is registered under a key.
type NotFoundError struct {
	key string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("fabrik: no factory definition registered for %q. Register it with ctx.Define before building", e.key)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(err, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Key returns the registry key that was looked up.
func (e *NotFoundError) Key() string {
	return e.key
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// ParentNotFoundError reports that a definition references an unregistered
// parent definition.
type ParentNotFoundError struct {
	parent string
}

// Error returns the error string.
func (e *ParentNotFoundError) Error() string {
	return fmt.Sprintf("fabrik: parent factory definition %q not found. Register it with ctx.DefineAs(%q, ...) before referencing it", e.parent, e.parent)
}

// Is reports whether the target error matches ParentNotFoundError.
func (e *ParentNotFoundError) Is(err error) bool {
	return err == ErrParentNotFound
}

// Parent returns the missing parent definition name.
func (e *ParentNotFoundError) Parent() string {
	return e.parent
}

// IsParentNotFound returns true if the error is a ParentNotFoundError.
func IsParentNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *ParentNotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrParentNotFound)
}

// CircularInheritanceError reports a cycle in a definition's parent chain.
type CircularInheritanceError struct {
	name string
}

// Error returns the error string.
func (e *CircularInheritanceError) Error() string {
	return fmt.Sprintf("fabrik: circular factory inheritance detected: %q forms a cycle", e.name)
}

// Is reports whether the target error matches CircularInheritanceError.
func (e *CircularInheritanceError) Is(err error) bool {
	return err == ErrCircularInheritance
}

// Name returns the definition name that closed the cycle.
func (e *CircularInheritanceError) Name() string {
	return e.name
}

// IsCircularInheritance returns true if the error is a CircularInheritanceError.
func IsCircularInheritance(err error) bool {
	if err == nil {
		return false
	}
	var e *CircularInheritanceError
	return errors.As(err, &e) || errors.Is(err, ErrCircularInheritance)
}

// TypeMismatchError reports a transient attribute read with the wrong type.
type TypeMismatchError struct {
	attr string
	want string
	got  string
}

// Error returns the error string.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("fabrik: transient attribute %q holds %s, not %s", e.attr, e.got, e.want)
}

// Is reports whether the target error matches TypeMismatchError.
func (e *TypeMismatchError) Is(err error) bool {
	return err == ErrTypeMismatch
}

// Attr returns the transient attribute name.
func (e *TypeMismatchError) Attr() string {
	return e.attr
}

// IsTypeMismatch returns true if the error is a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	if err == nil {
		return false
	}
	var e *TypeMismatchError
	return errors.As(err, &e) || errors.Is(err, ErrTypeMismatch)
}
