// Package basic provides an HTTP Basic authenticator that verifies
// presented credentials against a credential store.
package basic

import (
	"context"
	"net/http"

	"github.com/shelfd/shelfd/pkg/auth"
	"github.com/shelfd/shelfd/pkg/debug"
)

// Verifier checks a username/password pair. Implemented by *users.Store.
// Implementations must return the same error for an unknown username and a
// wrong password.
type Verifier interface {
	Verify(username, password string) error
}

// Authenticator validates HTTP Basic credentials against a Verifier.
type Authenticator struct {
	verifier Verifier
}

// New creates a Basic authenticator backed by the given Verifier.
func New(v Verifier) *Authenticator {
	return &Authenticator{verifier: v}
}

// Authenticate extracts Basic credentials and verifies them.
// Returns Abstain when no Authorization header (or a non-Basic one) is
// present, No when credentials are present but empty or invalid, and Yes
// with the username as identity otherwise.
func (a *Authenticator) Authenticate(_ context.Context, r *http.Request) auth.AuthResult {
	username, password, ok := r.BasicAuth()
	if !ok {
		return auth.AuthResult{Decision: auth.Abstain}
	}

	if username == "" || password == "" {
		return auth.AuthResult{Decision: auth.No, Err: auth.ErrUnauthenticated}
	}

	if err := a.verifier.Verify(username, password); err != nil {
		// One error class for unknown user and bad password; anything more
		// specific would leak which usernames exist.
		debug.Log("auth", "basic verification failed", "username", username)
		return auth.AuthResult{Decision: auth.No, Err: auth.ErrInvalidCredentials}
	}

	return auth.AuthResult{Decision: auth.Yes, Identity: &auth.Identity{Subject: username}}
}
