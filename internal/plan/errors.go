package plan

import "fmt"

type unsupportedLatentSpecError struct {
	strategy Strategy
	reason   string
}

func (e unsupportedLatentSpecError) Error() string {
	return fmt.Sprintf("unsupported latent spec for %s strategy: %s", e.strategy, e.reason)
}

// ErrUnsupportedLatentSpec constructs an UnsupportedLatentSpec error.
func ErrUnsupportedLatentSpec(s Strategy, reason string) error {
	return unsupportedLatentSpecError{strategy: s, reason: reason}
}

// IsUnsupportedLatentSpec reports whether err indicates a latent spec the
// strategy cannot accept against an adapter.
func IsUnsupportedLatentSpec(err error) bool {
	_, ok := err.(unsupportedLatentSpecError)
	return ok
}

type subsamplingUnsupportedError struct{}

func (subsamplingUnsupportedError) Error() string {
	return "adapter declares no subsampling support; per-step data subsampling disabled"
}

// ErrSubsamplingUnsupported constructs a SubsamplingUnsupported error.
func ErrSubsamplingUnsupported() error { return subsamplingUnsupportedError{} }

// IsSubsamplingUnsupported reports whether err indicates a subsampling
// configuration against a full-batch-only adapter.
func IsSubsamplingUnsupported(err error) bool {
	_, ok := err.(subsamplingUnsupportedError)
	return ok
}

type missingLatentBindingError struct{}

func (missingLatentBindingError) Error() string {
	return "predictive check requires the latent binding even when unused"
}

// ErrMissingLatentBinding constructs a MissingLatentBinding error.
func ErrMissingLatentBinding() error { return missingLatentBindingError{} }

// IsMissingLatentBinding reports whether err indicates an omitted latent
// binding in a predictive check.
func IsMissingLatentBinding(err error) bool {
	_, ok := err.(missingLatentBindingError)
	return ok
}
