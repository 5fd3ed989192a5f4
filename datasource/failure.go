package datasource

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a record does not exist in the source that was
// asked for it. Sources wrap it so callers can test with errors.Is.
var ErrNotFound = errors.New("not found")

// Kind classifies a Failure so callers can pick user-facing behavior
// without inspecting messages.
type Kind int

const (
	// KindUnknown is the zero value; it only appears when a failure was
	// built without a kind, which is a bug in the source.
	KindUnknown Kind = iota

	// KindNetwork: the device is offline and no viable cache fallback
	// existed, or the fallback is disallowed for this entity class.
	KindNetwork

	// KindRemote: the backend was reachable but rejected or errored on
	// the operation.
	KindRemote

	// KindCache: the local source could not satisfy a fallback read or
	// persist a write.
	KindCache

	// KindAuth: the operation needs an authenticated session that is
	// absent or invalid. Retrying against either source will not help.
	KindAuth

	// KindValidation: the record was rejected before any source was
	// consulted.
	KindValidation
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRemote:
		return "remote"
	case KindCache:
		return "cache"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Failure is the typed error every repository operation surfaces. It never
// escapes the repository boundary as anything else: collaborator errors are
// caught and translated into one of these.
type Failure struct {
	Kind       Kind
	Message    string
	StatusCode int // HTTP status when the remote produced one, else 0
	Err        error
}

// Error implements error.
func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s failure: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s failure: %s", f.Kind, f.Message)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (f *Failure) Unwrap() error {
	return f.Err
}

// NewNetworkFailure builds a KindNetwork failure.
func NewNetworkFailure(message string) *Failure {
	return &Failure{Kind: KindNetwork, Message: message}
}

// NewRemoteFailure builds a KindRemote failure wrapping its cause.
func NewRemoteFailure(message string, err error) *Failure {
	return &Failure{Kind: KindRemote, Message: message, Err: err}
}

// NewCacheFailure builds a KindCache failure wrapping its cause.
func NewCacheFailure(message string, err error) *Failure {
	return &Failure{Kind: KindCache, Message: message, Err: err}
}

// NewAuthFailure builds a KindAuth failure.
func NewAuthFailure(message string, status int) *Failure {
	return &Failure{Kind: KindAuth, Message: message, StatusCode: status}
}

// NewValidationFailure builds a KindValidation failure wrapping the
// validator's error.
func NewValidationFailure(err error) *Failure {
	return &Failure{Kind: KindValidation, Message: "invalid record", Err: err}
}

// AsFailure extracts a *Failure from err, wrapping foreign errors under the
// given fallback kind so the taxonomy holds at the repository boundary.
func AsFailure(err error, fallback Kind) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Kind: fallback, Message: err.Error(), Err: err}
}

// KindOf reports the Kind carried by err, or KindUnknown when err is not a
// *Failure.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindUnknown
}
