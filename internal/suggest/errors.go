package suggest

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest  = errors.New("invalid suggestion request")
	ErrInferenceFailed = errors.New("inference failed")
	ErrInvalidResponse = errors.New("invalid suggestion response")
)

// RequestError is returned before any inference call is made.
type RequestError struct {
	Flow string
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Flow, ErrInvalidRequest, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool { return target == ErrInvalidRequest }

// InferenceError wraps a failed call to the inference client.
type InferenceError struct {
	Flow string
	Err  error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Flow, ErrInferenceFailed, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

func (e *InferenceError) Is(target error) bool { return target == ErrInferenceFailed }

// ResponseError reports inference output that is not valid JSON or does not
// conform to the output schema.
type ResponseError struct {
	Flow string
	Err  error
	// Raw is the response as received, kept for debugging.
	Raw []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Flow, ErrInvalidResponse, e.Err)
}

func (e *ResponseError) Unwrap() error { return e.Err }

func (e *ResponseError) Is(target error) bool { return target == ErrInvalidResponse }

const (
	outcomeOK              = "ok"
	outcomeInvalidRequest  = "invalid_request"
	outcomeInferenceFailed = "inference_failed"
	outcomeInvalidResponse = "invalid_response"
	outcomeError           = "error"
)

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrInvalidRequest):
		return outcomeInvalidRequest
	case errors.Is(err, ErrInferenceFailed):
		return outcomeInferenceFailed
	case errors.Is(err, ErrInvalidResponse):
		return outcomeInvalidResponse
	default:
		return outcomeError
	}
}
