// Package admin decides whether a request carries the shared admin secret.
//
// WARNING: when no secret is configured the gate runs in PolicyOpen and
// every admin operation is allowed. This exists for local development
// only; a production deployment must set ADMIN_KEY.
package admin

import (
	"crypto/subtle"

	"github.com/technova/portfolio-api/internal/apperr"
)

// Policy is the gate's configuration state.
type Policy int

const (
	// PolicyOpen allows every request (no secret configured).
	PolicyOpen Policy = iota
	// PolicyKeyRequired allows only requests presenting the secret.
	PolicyKeyRequired
)

func (p Policy) String() string {
	if p == PolicyOpen {
		return "open"
	}
	return "key-required"
}

// Gate is immutable after construction and safe for concurrent use.
type Gate struct {
	policy Policy
	secret string
}

// NewGate returns a PolicyOpen gate for an empty secret and a
// PolicyKeyRequired gate otherwise.
func NewGate(secret string) *Gate {
	if secret == "" {
		return &Gate{policy: PolicyOpen}
	}
	return &Gate{policy: PolicyKeyRequired, secret: secret}
}

func (g *Gate) Policy() Policy { return g.policy }

// Warning is the startup warning for g's policy, empty when a key is
// required.
func (g *Gate) Warning() string {
	if g.policy != PolicyOpen {
		return ""
	}
	return "WARNING: ADMIN_KEY is not set; admin endpoints are OPEN to every caller. Set ADMIN_KEY before exposing this service."
}

// Authorize returns nil when provided is acceptable and apperr.ErrForbidden
// otherwise. An empty provided key never matches a configured secret.
func (g *Gate) Authorize(provided string) error {
	if g.policy == PolicyOpen {
		return nil
	}
	if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(g.secret)) != 1 {
		return apperr.ErrForbidden
	}
	return nil
}
