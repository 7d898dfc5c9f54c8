package service

import (
	"time"

	"github.com/aussiebroadwan/courier/pkg/jwtx"
)

// TokenService mints access tokens for authenticated usernames. Verification
// lives in the HTTP boundary (httpx.AuthnMiddleware) using the matching
// verifier.
type TokenService struct {
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
}

// Mint signs a token whose subject is the username.
func (s *TokenService) Mint(username string) (string, error) {
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}
	claims := jwtx.NewAccessClaims(username, s.Issuer, ttl, time.Now().UTC())
	return s.Signer.Sign(claims)
}
