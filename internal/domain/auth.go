package domain

// AuthPhase is the position of the identity handshake within the connect flow
type AuthPhase string

const (
	PhaseInitial         AuthPhase = "initial"
	PhaseRedirecting     AuthPhase = "redirecting"
	PhaseLoadingCallback AuthPhase = "loading_callback"
	PhaseAuthenticated   AuthPhase = "authenticated"
)

// InFlight reports whether a handshake step is pending
func (p AuthPhase) InFlight() bool {
	return p == PhaseRedirecting || p == PhaseLoadingCallback
}

// Account is the hosted-service identity returned by the identity provider
type Account struct {
	AvatarURI string
	Login     string
	Name      string
}

// DisplayName returns the human name, falling back to the login
func (a Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Login
}

// AuthGrant is what the identity provider returns after exchanging a redirect marker
type AuthGrant struct {
	Account Account
	Token   string
}
