package identity

import (
	"context"
	"errors"
	"time"
)

// Identity is what the external identity provider asserts about a signed-in
// account. Username is email-shaped and acts as the join key into the user
// collection; first-seen identities are auto-provisioned as employees.
type Identity struct {
	Username string
	Name     string
}

// Credential is a short-lived bearer token for the document-storage API.
// Every remote write acquires a fresh one; nothing caches or refreshes.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

var ErrInvalidCredentials = errors.New("invalid credentials")

// Provider abstracts the identity collaborator. The rest of the system
// never sees how tokens are minted or passwords verified.
type Provider interface {
	// Authenticate resolves a username/password pair to an identity, or
	// ErrInvalidCredentials.
	Authenticate(username, password string) (*Identity, error)

	// AcquireCredential obtains a fresh storage credential for the given
	// scopes. Failure is returned as-is; callers must not retry.
	AcquireCredential(ctx context.Context, scopes []string) (*Credential, error)

	// SignOut invalidates any provider-side session for the username.
	SignOut(username string)
}
