package engine

// tooBusyError signals queue timeout/overflow for 429 mapping.
type tooBusyError struct{ modelID string }

func (e tooBusyError) Error() string { return "too busy: " + e.modelID }

// IsTooBusy reports whether err indicates backpressure (return 429).
func IsTooBusy(err error) bool {
	_, ok := err.(tooBusyError)
	return ok
}

// notFoundError reports a model id absent from the registry.
type notFoundError struct{ id string }

func (e notFoundError) Error() string { return "model not found: " + e.id }

// ErrNotFound constructs an error for a missing model id.
func ErrNotFound(id string) error { return notFoundError{id: id} }

// IsNotFound reports whether err indicates a missing model id.
func IsNotFound(err error) bool {
	_, ok := err.(notFoundError)
	return ok
}

// duplicateError reports a model id registered twice.
type duplicateError struct{ id string }

func (e duplicateError) Error() string { return "model already registered: " + e.id }

// IsDuplicate reports whether err indicates a repeated registration.
func IsDuplicate(err error) bool {
	_, ok := err.(duplicateError)
	return ok
}
