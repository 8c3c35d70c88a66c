package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected marks an intent whose precondition does not hold. The state is unchanged.
	ErrRejected = errors.New("intent rejected")

	ErrAuthDenied         = errors.New("authorization denied")
	ErrNameConflict       = errors.New("repository name already exists")
	ErrNetworkUnavailable = errors.New("network unavailable")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrPushRejected       = errors.New("push rejected")
)

// ErrorKind classifies a failure at a collaborator boundary
type ErrorKind string

const (
	KindAuthDenied         ErrorKind = "auth_denied"
	KindNameConflict       ErrorKind = "name_conflict"
	KindNetworkUnavailable ErrorKind = "network_unavailable"
	KindPermissionDenied   ErrorKind = "permission_denied"
	KindPushRejected       ErrorKind = "push_rejected"
	KindUnknown            ErrorKind = "unknown"
)

var kindSentinels = map[ErrorKind]error{
	KindAuthDenied:         ErrAuthDenied,
	KindNameConflict:       ErrNameConflict,
	KindNetworkUnavailable: ErrNetworkUnavailable,
	KindPermissionDenied:   ErrPermissionDenied,
	KindPushRejected:       ErrPushRejected,
}

// RemoteError is a failure reported by an external collaborator
type RemoteError struct {
	Err  error
	Kind ErrorKind
	Op   string
}

func (e *RemoteError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error kind, so errors.Is(err, ErrNameConflict) works
// for a RemoteError of kind KindNameConflict even when Err is something else.
func (e *RemoteError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// NewRemoteError wraps err as a RemoteError, classifying it by the sentinel it matches.
func NewRemoteError(op string, err error) *RemoteError {
	return &RemoteError{Err: err, Kind: KindOf(err), Op: op}
}

// KindOf returns the kind of err. Errors that match none of the sentinels are KindUnknown.
func KindOf(err error) ErrorKind {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Kind != "" {
		return remote.Kind
	}
	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindUnknown
}

// Rejected builds an ErrRejected carrying the reason
func Rejected(reason string) error {
	return fmt.Errorf("%w: %s", ErrRejected, reason)
}
