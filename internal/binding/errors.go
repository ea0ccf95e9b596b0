package binding

import "strings"

// keyNotFoundError names the missing key so callers never see a generic
// lookup failure.
type keyNotFoundError struct{ key string }

func (e keyNotFoundError) Error() string { return "binding key not found: " + e.key }

// ErrKeyNotFound constructs a KeyNotFound error for the given key.
func ErrKeyNotFound(key string) error { return keyNotFoundError{key: key} }

// IsKeyNotFound reports whether err indicates a missing binding key.
func IsKeyNotFound(err error) bool {
	_, ok := err.(keyNotFoundError)
	return ok
}

// keyConflictError carries every key shared by both sides of a merge.
type keyConflictError struct{ keys []string }

func (e keyConflictError) Error() string {
	return "binding key conflict: " + strings.Join(e.keys, ", ")
}

// ErrKeyConflict constructs a KeyConflict error for the given shared keys.
func ErrKeyConflict(keys ...string) error { return keyConflictError{keys: keys} }

// IsKeyConflict reports whether err indicates overlapping keys in a merge.
func IsKeyConflict(err error) bool {
	_, ok := err.(keyConflictError)
	return ok
}
