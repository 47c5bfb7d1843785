package errors

import "github.com/pkg/errors"

// ErrorTracer carries a message, the error code when the underlying error
// is an ErrorDetails, and a stack-bearing wrapped error.
type ErrorTracer struct {
	Message string
	Code    string
	Err     error
}

// NewTracer creates a new ErrorTracer with the provided message.
func NewTracer(message string) *ErrorTracer {
	return &ErrorTracer{
		Message: message,
	}
}

// TracerFromError wraps an existing error, attaching a stack trace when the
// error does not already carry one and lifting the code off ErrorDetails.
func TracerFromError(err error) *ErrorTracer {
	tracer := NewTracer(err.Error())
	if details, ok := err.(*ErrorDetails); ok {
		tracer.Code = details.Code
	}
	return tracer.Wrap(err)
}

// StackTracer is an interface that requires a StackTrace method.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

func (e *ErrorTracer) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// Wrap wraps an existing error into the ErrorTracer, preserving the stack trace.
func (e *ErrorTracer) Wrap(err error) *ErrorTracer {
	e.Err = err
	_, ok := err.(StackTracer)
	if !ok {
		e.Err = errors.WithStack(err)
	}

	return e
}

// StackTrace returns the stack trace of the underlying error if it implements StackTracer.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	err := e.Unwrap()
	errWithStack, ok := err.(StackTracer)
	if ok {
		return errWithStack.StackTrace()
	}
	return nil
}
