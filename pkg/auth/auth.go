package auth

import (
	"context"
	"errors"
	"net/http"
)

// AuthDecision represents the three possible outcomes of authentication.
type AuthDecision int

const (
	// Yes means credentials are valid. The chain stops and the identity is used.
	Yes AuthDecision = iota

	// No means credentials are present but invalid. The chain stops and the
	// request is rejected.
	No

	// Abstain means this authenticator cannot handle the credentials type.
	// The chain continues to the next authenticator.
	Abstain
)

// AuthResult carries the outcome of an authentication attempt.
type AuthResult struct {
	Decision AuthDecision
	Identity *Identity // populated only when Decision == Yes
	Err      error     // populated only when Decision == No
}

// Identity represents an authenticated caller. It is established per
// request and never stored beyond it.
type Identity struct {
	// Subject is the username (required, non-empty).
	Subject string
}

// Authenticator examines request credentials and returns a three-outcome vote.
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) AuthResult
}

// Sentinel errors.
var (
	// ErrUnauthenticated means no usable credentials were presented.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidCredentials means credentials were presented but did not
	// verify. It deliberately does not say whether the username or the
	// password was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrForbidden means the caller is authenticated but does not own the
	// resource it is trying to mutate.
	ErrForbidden = errors.New("not the owner of this resource")

	// ErrTooManyRequests means the caller exceeded its rate limit.
	ErrTooManyRequests = errors.New("rate limit exceeded")
)

// AuthChain evaluates authenticators in order using three-outcome voting.
type AuthChain struct {
	// Authenticators are evaluated left to right.
	Authenticators []Authenticator

	// DefaultDecision is used when all authenticators abstain. shelfd
	// runs with No: a request without credentials carries no identity.
	DefaultDecision AuthDecision
}

// Authenticate runs the chain. Stops on the first Yes or No.
// If all abstain, returns the default decision.
func (c *AuthChain) Authenticate(ctx context.Context, r *http.Request) AuthResult {
	for _, authn := range c.Authenticators {
		result := authn.Authenticate(ctx, r)
		if result.Decision != Abstain {
			return result
		}
	}

	// All abstained: use default.
	if c.DefaultDecision == Yes {
		return AuthResult{
			Decision: Yes,
			Identity: &Identity{Subject: "anonymous"},
		}
	}

	return AuthResult{
		Decision: No,
		Err:      ErrUnauthenticated,
	}
}

// Authorize is the ownership guard: it decides whether the given identity
// may mutate a resource owned by owner. A nil or empty identity yields
// ErrUnauthenticated (defensive; the middleware normally guarantees one),
// a mismatch yields ErrForbidden. Reads never call this.
func Authorize(id *Identity, owner string) error {
	if id == nil || id.Subject == "" {
		return ErrUnauthenticated
	}
	if id.Subject != owner {
		return ErrForbidden
	}
	return nil
}
