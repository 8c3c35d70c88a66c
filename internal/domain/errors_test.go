package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteError_MatchesKindSentinel(t *testing.T) {
	err := &RemoteError{Kind: KindNameConflict, Op: "create_repository", Err: errors.New("422 unprocessable")}

	assert.ErrorIs(t, err, ErrNameConflict)
	assert.NotErrorIs(t, err, ErrPushRejected)
	assert.Equal(t, "create_repository: 422 unprocessable", err.Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{"wrapped sentinel", fmt.Errorf("push: %w", ErrPushRejected), KindPushRejected},
		{"remote error", &RemoteError{Kind: KindAuthDenied, Op: "exchange"}, KindAuthDenied},
		{"plain error", errors.New("boom"), KindUnknown},
		{"network", ErrNetworkUnavailable, KindNetworkUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestNewRemoteError_ClassifiesWrappedSentinel(t *testing.T) {
	err := NewRemoteError("create_repository", fmt.Errorf("host said: %w", ErrPermissionDenied))

	assert.Equal(t, KindPermissionDenied, err.Kind)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestRejected_WrapsErrRejected(t *testing.T) {
	err := Rejected("organization not selected")

	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "organization not selected")
}
