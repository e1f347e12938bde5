// Package auth provides pluggable authentication and ownership-based
// authorization for shelfd.
//
// Authentication uses a chain-of-responsibility pattern with three-outcome
// voting: each authenticator returns Yes (identity established), No
// (credentials invalid), or Abstain (can't handle). A configurable default
// voter decides when all authenticators abstain. Every request
// re-authenticates from scratch; there are no sessions or tokens.
//
// Auth is implemented as HTTP middleware applied per protected route,
// keeping it decoupled from handler logic. The middleware injects the
// authenticated identity into the request context, from where handlers
// thread it explicitly into store operations.
//
// Authorization is a single ownership rule: only the identity recorded on
// a book at creation time may mutate or delete it. See [Authorize].
package auth
