package legs

import (
	"github.com/pkg/errors"
)

var (

	// ErrNumeric is returned when an input is NaN or infinite. The offending
	// update is dropped and the previous value is kept.
	ErrNumeric = errors.New("numeric validation failed")

	// ErrDomain is returned when an input is finite but outside the domain of
	// the model, and couldn't be clamped.
	ErrDomain = errors.New("input outside model domain")

	// ErrConfig is returned when a controller or model is constructed or
	// invoked with parameters which can never work, e.g. a chain with a single
	// joint or a non-positive gravity.
	ErrConfig = errors.New("invalid configuration")
)

// configError tags a cause from another package with ErrConfig, keeping the
// cause in the chain so either can be matched with errors.Is.
type configError struct {
	cause error
}

func (e configError) Error() string {
	return ErrConfig.Error() + ": " + e.cause.Error()
}

func (e configError) Is(target error) bool {
	return target == ErrConfig
}

func (e configError) Unwrap() error {
	return e.cause
}

func asConfigError(err error) error {
	return configError{cause: err}
}
