package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/renato0307/gitlink/internal/domain"
)

type fakeGitHub struct {
	denied bool
	server *httptest.Server
}

func newFakeGitHub(t *testing.T, denied bool) *fakeGitHub {
	t.Helper()
	f := &fakeGitHub{denied: denied}

	mux := http.NewServeMux()
	mux.HandleFunc("/login/device/code", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client-123", r.Form.Get("client_id"))
		writeJSON(w, http.StatusOK, map[string]any{
			"device_code":      "dev-1",
			"user_code":        "ABCD-1234",
			"verification_uri": "https://github.com/login/device",
			"expires_in":       900,
			"interval":         1,
		})
	})
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "dev-1", r.Form.Get("device_code"))
		if f.denied {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "access_denied"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "gho_token",
			"token_type":   "bearer",
			"scope":        "repo",
		})
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer gho_token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"login":      "johndoe",
			"name":       "John Doe",
			"avatar_url": "https://avatars.example.com/u/1",
		})
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeGitHub) config(onCode func(DeviceCode)) Config {
	return Config{
		APIURL:   f.server.URL,
		ClientID: "client-123",
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: f.server.URL + "/login/device/code",
			TokenURL:      f.server.URL + "/login/oauth/access_token",
		},
		HTTPClient: f.server.Client(),
		OnCode:     onCode,
		Scopes:     []string{"repo"},
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestDeviceFlowSignsIn(t *testing.T) {
	gh := newFakeGitHub(t, false)

	var code DeviceCode
	flow, err := NewDeviceFlow(gh.config(func(c DeviceCode) { code = c }))
	require.NoError(t, err)

	ctx := context.Background()
	marker, err := flow.InitiateAuth(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, marker)
	assert.Equal(t, "ABCD-1234", code.UserCode)
	assert.Equal(t, "https://github.com/login/device", code.VerificationURI)

	grant, err := flow.Exchange(ctx, marker)
	require.NoError(t, err)
	assert.Equal(t, "gho_token", grant.Token)
	assert.Equal(t, domain.Account{
		AvatarURI: "https://avatars.example.com/u/1",
		Login:     "johndoe",
		Name:      "John Doe",
	}, grant.Account)

	_, err = flow.Exchange(ctx, marker)
	assert.ErrorIs(t, err, domain.ErrAuthDenied, "markers are single use")
}

func TestDeviceFlowDenied(t *testing.T) {
	gh := newFakeGitHub(t, true)
	flow, err := NewDeviceFlow(gh.config(nil))
	require.NoError(t, err)

	ctx := context.Background()
	marker, err := flow.InitiateAuth(ctx)
	require.NoError(t, err)

	_, err = flow.Exchange(ctx, marker)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthDenied)
	assert.Equal(t, domain.KindAuthDenied, domain.KindOf(err))
}

func TestDeviceFlowNetworkUnavailable(t *testing.T) {
	gh := newFakeGitHub(t, false)
	cfg := gh.config(nil)
	gh.server.Close()

	flow, err := NewDeviceFlow(cfg)
	require.NoError(t, err)

	_, err = flow.InitiateAuth(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.KindNetworkUnavailable, domain.KindOf(err))
}

func TestNewDeviceFlowValidation(t *testing.T) {
	_, err := NewDeviceFlow(Config{})
	assert.EqualError(t, err, "client ID is required")

	flow, err := NewDeviceFlow(Config{ClientID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, flow.apiURL)
	assert.NotEmpty(t, flow.config.Endpoint.DeviceAuthURL)
}
