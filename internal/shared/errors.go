package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Resolution errors
	ErrEmptyInput          = fmt.Errorf("please enter a YouTube channel URL, @username, or channel ID")
	ErrUnrecognizedInput   = fmt.Errorf("unrecognized input")
	ErrRelayExhausted      = fmt.Errorf("all relays failed")
	ErrExtractionFailed    = fmt.Errorf("no channel ID found in page")
	ErrResolutionExhausted = fmt.Errorf("could not resolve channel")
	ErrBuildFailure        = fmt.Errorf("could not build playlist URL")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// messageError displays msg verbatim while still matching each wrapped error with errors.Is.
type messageError struct {
	msg  string
	errs []error
}

func (e *messageError) Error() string   { return e.msg }
func (e *messageError) Unwrap() []error { return e.errs }

// WithMessage returns an error whose text is exactly msg and which wraps errs.
//
// Nil entries in errs are dropped.
func WithMessage(msg string, errs ...error) error {
	wrapped := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			wrapped = append(wrapped, err)
		}
	}
	return &messageError{msg: msg, errs: wrapped}
}
