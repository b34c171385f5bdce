package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrNoSecret   = errors.New("jwtx: signing secret is empty")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrAudience    = errors.New("jwtx: audience mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Signer signs claims into a compact token string.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// Verifier validates a JWT and returns the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256Signer signs tokens with a shared HMAC-SHA256 secret.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 creates an HS256 signer. The secret must be non-empty;
// callers are expected to treat ErrNoSecret as fatal at startup.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &HS256Signer{secret: secret}, nil
}

func (s *HS256Signer) Alg() string { return "HS256" }

func (s *HS256Signer) Sign(c Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.secret)
}

// HS256Verifier verifies HS256 tokens against the shared secret and the
// configured issuer/audience expectations.
type HS256Verifier struct {
	secret   []byte
	issuer   string
	audience []string
}

// NewVerifierHS256 creates a verifier for tokens minted by the paired
// HS256 signer.
func NewVerifierHS256(secret []byte, issuer string, audience []string) (*HS256Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &HS256Verifier{secret: secret, issuer: issuer, audience: audience}, nil
}

func (v *HS256Verifier) Verify(raw string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSig
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, ErrMalformed
		}
	}
	if !token.Valid {
		return Claims{}, ErrInvalidSig
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(v.audience); err != nil {
		return Claims{}, err
	}

	return claims, nil
}
