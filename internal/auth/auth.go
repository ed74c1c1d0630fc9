// Package auth is the yes/no gate consulted before logbook operations.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/worklog/internal/config"
	"github.com/alexanderramin/worklog/internal/domain"
)

// ErrUnauthorized is returned when a caller is unknown or lacks a capability.
var ErrUnauthorized = errors.New("unauthorized")

// Principal is an authenticated caller.
type Principal struct {
	Owner        string
	Capabilities map[domain.Capability]bool
}

// Can reports whether p holds capability c.
func (p Principal) Can(c domain.Capability) bool {
	return p.Capabilities[c]
}

// Authorizer resolves a credential to a principal holding capability c.
type Authorizer interface {
	Authorize(ctx context.Context, credential string, c domain.Capability) (Principal, error)
}

// TokenAuthorizer checks static bearer tokens.
type TokenAuthorizer struct {
	grants []config.TokenGrant
}

func NewTokenAuthorizer(grants []config.TokenGrant) *TokenAuthorizer {
	return &TokenAuthorizer{grants: grants}
}

func (a *TokenAuthorizer) Authorize(_ context.Context, credential string, c domain.Capability) (Principal, error) {
	token := strings.TrimSpace(credential)
	if token == "" {
		return Principal{}, fmt.Errorf("missing credential: %w", ErrUnauthorized)
	}
	for _, g := range a.grants {
		if subtle.ConstantTimeCompare([]byte(g.Token), []byte(token)) != 1 {
			continue
		}
		p := Principal{Owner: g.Owner, Capabilities: make(map[domain.Capability]bool, len(g.Capabilities))}
		for _, gc := range g.Capabilities {
			p.Capabilities[gc] = true
		}
		if !p.Can(c) {
			return Principal{}, fmt.Errorf("%s lacks %s: %w", g.Owner, c, ErrUnauthorized)
		}
		return p, nil
	}
	return Principal{}, fmt.Errorf("unknown token: %w", ErrUnauthorized)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
