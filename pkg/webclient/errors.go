package webclient

import (
	"fmt"

	"github.com/samvad-hq/samvad-friends-client/pkg/jsonvalue"
)

// ErrorKind classifies a failed request.
type ErrorKind int

const (
	ErrorOther ErrorKind = iota
	ErrorNoConnectivity
	ErrorCustom
	ErrorTransportFailure
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorNoConnectivity:
		return "no_connectivity"
	case ErrorCustom:
		return "custom"
	case ErrorTransportFailure:
		return "transport_failure"
	default:
		return "other"
	}
}

const (
	noConnectivityDescription = "No internet connection"
	otherDescription          = "Something went wrong"
)

// ServiceError is the typed outcome of a failed request. Message is only
// meaningful for ErrorCustom; Cause is set for transport failures and for
// requests that could not be built.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Sentinels for errors.Is comparisons. Matching is by kind only.
var (
	ErrNoConnectivity   = &ServiceError{Kind: ErrorNoConnectivity}
	ErrOther            = &ServiceError{Kind: ErrorOther}
	ErrCustom           = &ServiceError{Kind: ErrorCustom}
	ErrTransportFailure = &ServiceError{Kind: ErrorTransportFailure}
)

func NoConnectivity() *ServiceError { return &ServiceError{Kind: ErrorNoConnectivity} }

func Custom(message string) *ServiceError {
	return &ServiceError{Kind: ErrorCustom, Message: message}
}

func Other() *ServiceError { return &ServiceError{Kind: ErrorOther} }

func TransportFailure(cause error) *ServiceError {
	return &ServiceError{Kind: ErrorTransportFailure, Cause: cause}
}

func otherWithCause(cause error) *ServiceError {
	return &ServiceError{Kind: ErrorOther, Cause: cause}
}

// ErrorFromJSON derives a ServiceError from a failed response payload: a
// string "message" field yields a custom error, anything else ErrorOther.
func ErrorFromJSON(v jsonvalue.Value) *ServiceError {
	obj, ok := v.AsObject()
	if !ok {
		return Other()
	}
	if msg, ok := obj.String("message"); ok {
		return Custom(msg)
	}
	return Other()
}

// Description is the human readable text for the error variant.
func (e *ServiceError) Description() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case ErrorNoConnectivity:
		return noConnectivityDescription
	case ErrorCustom:
		return e.Message
	case ErrorTransportFailure:
		if e.Cause != nil {
			return fmt.Sprintf("Network request failed: %v", e.Cause)
		}
		return "Network request failed"
	default:
		return otherDescription
	}
}

func (e *ServiceError) Error() string { return e.Description() }

func (e *ServiceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches another *ServiceError of the same kind. A custom target with a
// non-empty message also has to match the message.
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	if !ok || e == nil || t == nil {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	if t.Kind == ErrorCustom && t.Message != "" {
		return t.Message == e.Message
	}
	return true
}
