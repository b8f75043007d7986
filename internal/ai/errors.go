package ai

import "fmt"

type ErrorKind string

const (
	// KindInvalidResponseShape marks responses that do not parse as JSON or do
	// not conform to the declared plan shape.
	KindInvalidResponseShape ErrorKind = "invalid_response_shape"
	// KindServiceUnavailable marks transport, auth and quota failures from the
	// generation service, including empty responses.
	KindServiceUnavailable ErrorKind = "service_unavailable"
)

// GenerationError is the typed failure surfaced by the plan generator. The
// underlying cause is preserved for user display and logging.
type GenerationError struct {
	Kind ErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func invalidShape(err error) *GenerationError {
	return &GenerationError{Kind: KindInvalidResponseShape, Err: err}
}

func unavailable(err error) *GenerationError {
	return &GenerationError{Kind: KindServiceUnavailable, Err: err}
}
