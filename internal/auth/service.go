package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"
)

// AdminCredentials is the single configured admin identity
type AdminCredentials struct {
	Email    string
	Password string
}

// Identity is the decoded admin identity attached to authenticated requests
type Identity struct {
	Email     string
	ExpiresAt time.Time
}

// AdminAuthority issues, verifies and revokes admin session tokens
type AdminAuthority struct {
	creds       AdminCredentials
	jwtService  *JWTService
	revocations RevocationStore
}

// NewAdminAuthority creates a new admin authority
func NewAdminAuthority(creds AdminCredentials, jwtService *JWTService, revocations RevocationStore) *AdminAuthority {
	return &AdminAuthority{
		creds:       creds,
		jwtService:  jwtService,
		revocations: revocations,
	}
}

// CheckConfigured returns ErrConfiguration unless the admin credentials and signing secret are all set
func (a *AdminAuthority) CheckConfigured() error {
	if a.creds.Email == "" || a.creds.Password == "" || len(a.jwtService.secret) == 0 {
		return ErrConfiguration
	}
	return nil
}

// Login checks email and password against the configured admin credentials
// and returns a signed token together with its lifetime.
func (a *AdminAuthority) Login(email, password string) (string, time.Duration, error) {
	if err := a.CheckConfigured(); err != nil {
		return "", 0, err
	}
	if email == "" || password == "" {
		return "", 0, ErrValidation
	}

	// Evaluate both comparisons so the response time does not reveal which field differed
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(a.creds.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.creds.Password)) == 1
	if !emailOK || !passwordOK {
		return "", 0, ErrInvalidCredentials
	}

	token, err := a.jwtService.SignAdminToken(email)
	if err != nil {
		return "", 0, err
	}
	return token, a.jwtService.TTL(), nil
}

// Verify checks that the token is present, not revoked, correctly signed and unexpired
func (a *AdminAuthority) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrMissingToken
	}

	revoked, err := a.revocations.Contains(ctx, HashToken(token))
	if err != nil {
		return Identity{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return Identity{}, ErrRevoked
	}

	claims, err := a.jwtService.VerifyToken(token)
	if err != nil {
		return Identity{}, err
	}

	return Identity{Email: claims.Email, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Revoke invalidates the token for all future Verify calls. Revoking twice is a no-op.
func (a *AdminAuthority) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	// Keep the entry at least until the token's own expiry. Unparseable tokens
	// can never verify, so the full TTL is a safe upper bound for them.
	expiresAt := a.jwtService.now().Add(a.jwtService.TTL())
	if claims, err := a.jwtService.VerifyToken(token); err == nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := a.revocations.Add(ctx, HashToken(token), expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
