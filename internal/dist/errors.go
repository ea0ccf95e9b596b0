package dist

import "fmt"

type unknownDistError struct{ name string }

func (e unknownDistError) Error() string { return "unknown distribution: " + e.name }

// ErrUnknownDist constructs an error naming an unrecognized distribution.
func ErrUnknownDist(name string) error { return unknownDistError{name: name} }

// IsUnknownDist reports whether err indicates an unrecognized distribution.
func IsUnknownDist(err error) bool {
	_, ok := err.(unknownDistError)
	return ok
}

type badArityError struct {
	name      string
	want, got int
}

func (e badArityError) Error() string {
	return fmt.Sprintf("distribution %s takes %d parameters, got %d", e.name, e.want, e.got)
}

// ErrBadArity constructs an error for a wrong parameter count.
func ErrBadArity(name string, want, got int) error {
	return badArityError{name: name, want: want, got: got}
}

// IsBadArity reports whether err indicates a wrong parameter count.
func IsBadArity(err error) bool {
	_, ok := err.(badArityError)
	return ok
}
