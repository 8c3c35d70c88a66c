package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/renato0307/gitlink/internal/domain"
	"github.com/renato0307/gitlink/internal/logging"
	"github.com/renato0307/gitlink/internal/ports"
)

// DefaultAPIURL is the REST endpoint the signed-in account is read from
const DefaultAPIURL = "https://api.github.com"

// DeviceCode is what the user has to enter on the verification page
type DeviceCode struct {
	ExpiresAt       time.Time
	UserCode        string
	VerificationURI string
}

// Config holds configuration for the device flow
type Config struct {
	APIURL     string // defaults to DefaultAPIURL
	ClientID   string
	Endpoint   oauth2.Endpoint // defaults to github.Endpoint
	HTTPClient *http.Client    // defaults to a client with a 30s timeout
	// OnCode is called with the code to show the user once the device is registered
	OnCode func(DeviceCode)
	Scopes []string
}

// DeviceFlow is an identity provider backed by the OAuth 2.0 device authorization grant.
// InitiateAuth registers the device and returns a marker; Exchange polls the token
// endpoint until the user approved the device, then loads the account.
type DeviceFlow struct {
	apiURL     string
	config     *oauth2.Config
	httpClient *http.Client
	mu         sync.Mutex
	onCode     func(DeviceCode)
	pending    map[string]*oauth2.DeviceAuthResponse
}

var _ ports.IdentityProvider = (*DeviceFlow)(nil)

// NewDeviceFlow creates a device flow identity provider
func NewDeviceFlow(cfg Config) (*DeviceFlow, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}

	endpoint := cfg.Endpoint
	if endpoint.DeviceAuthURL == "" && endpoint.TokenURL == "" {
		endpoint = github.Endpoint
	}
	if endpoint.DeviceAuthURL == "" {
		return nil, errors.New("device authorization URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	apiURL := strings.TrimSuffix(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	onCode := cfg.OnCode
	if onCode == nil {
		onCode = func(DeviceCode) {}
	}

	return &DeviceFlow{
		apiURL: apiURL,
		config: &oauth2.Config{
			ClientID: cfg.ClientID,
			Endpoint: endpoint,
			Scopes:   cfg.Scopes,
		},
		httpClient: httpClient,
		onCode:     onCode,
		pending:    make(map[string]*oauth2.DeviceAuthResponse),
	}, nil
}

// InitiateAuth implements ports.IdentityProvider
func (d *DeviceFlow) InitiateAuth(ctx context.Context) (string, error) {
	resp, err := d.config.DeviceAuth(d.withClient(ctx))
	if err != nil {
		return "", classify(fmt.Errorf("device authorization: %w", err))
	}

	marker := uuid.NewString()
	d.mu.Lock()
	d.pending[marker] = resp
	d.mu.Unlock()

	logging.Logger.Info("Device registered", "verification_uri", resp.VerificationURI, "expires", resp.Expiry)
	d.onCode(DeviceCode{
		ExpiresAt:       resp.Expiry,
		UserCode:        resp.UserCode,
		VerificationURI: resp.VerificationURI,
	})
	return marker, nil
}

// Exchange implements ports.IdentityProvider. It blocks until the user approved or
// denied the device, the code expired or ctx is done.
func (d *DeviceFlow) Exchange(ctx context.Context, marker string) (domain.AuthGrant, error) {
	d.mu.Lock()
	resp, ok := d.pending[marker]
	delete(d.pending, marker)
	d.mu.Unlock()

	if !ok {
		return domain.AuthGrant{}, fmt.Errorf("unknown redirect marker: %w", domain.ErrAuthDenied)
	}

	ctx = d.withClient(ctx)
	token, err := d.config.DeviceAccessToken(ctx, resp)
	if err != nil {
		return domain.AuthGrant{}, classify(fmt.Errorf("device access token: %w", err))
	}

	account, err := d.fetchAccount(ctx, token)
	if err != nil {
		return domain.AuthGrant{}, err
	}

	logging.Logger.Info("Signed in", "login", account.Login)
	return domain.AuthGrant{Account: account, Token: token.AccessToken}, nil
}

type userResponse struct {
	AvatarURL string `json:"avatar_url"`
	Login     string `json:"login"`
	Name      string `json:"name"`
}

func (d *DeviceFlow) fetchAccount(ctx context.Context, token *oauth2.Token) (domain.Account, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.apiURL+"/user", nil)
	if err != nil {
		return domain.Account{}, fmt.Errorf("build user request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := d.config.Client(ctx, token).Do(req)
	if err != nil {
		return domain.Account{}, classify(fmt.Errorf("fetch user: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.Account{}, fmt.Errorf("fetch user: %s: %w", resp.Status, domain.ErrAuthDenied)
	case resp.StatusCode == http.StatusForbidden:
		return domain.Account{}, fmt.Errorf("fetch user: %s: %w", resp.Status, domain.ErrPermissionDenied)
	case resp.StatusCode >= 300:
		return domain.Account{}, fmt.Errorf("fetch user: unexpected status %s", resp.Status)
	}

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return domain.Account{}, fmt.Errorf("decode user: %w", err)
	}
	return domain.Account{AvatarURI: user.AvatarURL, Login: user.Login, Name: user.Name}, nil
}

func (d *DeviceFlow) withClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, d.httpClient)
}

// classify maps transport and OAuth errors onto the domain error kinds
func classify(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		switch retrieveErr.ErrorCode {
		case "access_denied", "expired_token", "incorrect_client_credentials", "unauthorized_client":
			return fmt.Errorf("%w: %w", domain.ErrAuthDenied, err)
		}
		if retrieveErr.Response != nil && retrieveErr.Response.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: %w", domain.ErrPermissionDenied, err)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", domain.ErrNetworkUnavailable, err)
	}
	return err
}
