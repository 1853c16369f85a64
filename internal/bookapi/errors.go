package bookapi

import "errors"

// Sentinel errors callers can match with errors.Is.
var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNetwork is returned when the request never produced a response.
	ErrNetwork = errors.New("network error")
	// ErrServer is returned when the server reported a failure.
	ErrServer = errors.New("server error")
)

// ErrorKind classifies a gateway failure.
type ErrorKind int

const (
	KindServer ErrorKind = iota
	KindNetwork
	KindNotFound
)

const genericFailure = "request failed, please try again"

// APIError is the only error type the gateway surfaces. Message is always a
// human-readable string: the server's reported message when one exists,
// otherwise a generic fallback. Raw transport errors stay wrapped underneath
// and never reach display code.
type APIError struct {
	Kind    ErrorKind
	Status  int // HTTP status, 0 when no response arrived
	Message string
	cause   error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return genericFailure
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.cause }

// Is maps error kinds onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrServer:
		return e.Kind == KindServer
	}
	return false
}

func networkError(cause error) *APIError {
	return &APIError{Kind: KindNetwork, Message: "cannot reach the book service", cause: cause}
}

func serverError(status int, message string, cause error) *APIError {
	kind := KindServer
	if status == 404 {
		kind = KindNotFound
	}
	if message == "" {
		message = genericFailure
	}
	return &APIError{Kind: kind, Status: status, Message: message, cause: cause}
}

// ErrorMessage extracts the display string for any error the gateway
// produced. Non-gateway errors fall back to the generic message so raw
// transport detail is never shown.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return genericFailure
}

func kindLabel(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return "other"
	}
	switch apiErr.Kind {
	case KindNetwork:
		return "network"
	case KindNotFound:
		return "not_found"
	default:
		return "server"
	}
}
