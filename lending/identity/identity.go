package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid is returned for malformed tokens, wrong signatures and missing claims.
	ErrTokenInvalid = errors.New("token is invalid")

	// ErrTokenExpired is returned for well-formed tokens past their expiry.
	ErrTokenExpired = errors.New("token is expired")

	// ErrEmptySecret is returned when an HS256 verifier or issuer is built without a secret.
	ErrEmptySecret = errors.New("jwt secret must not be empty")

	// ErrNonPositiveTTL is returned when an issuer is configured with a ttl <= 0.
	ErrNonPositiveTTL = errors.New("token ttl must be positive")
)

const defaultIssuer = "library-lending"

// Identity is the caller as asserted by a verified token.
type Identity struct {
	BorrowerID string
	Role       string
}

// Verifier turns a bearer token into an Identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// Claims are the JWT claims of a lending token. user_id names the borrower.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// HS256Verifier validates HMAC-SHA256 signed tokens.
type HS256Verifier struct {
	secret []byte
	clock  func() time.Time
}

// VerifierOption configures an HS256Verifier.
type VerifierOption func(*HS256Verifier)

// WithVerifierClock overrides time.Now for expiry checks.
func WithVerifierClock(clock func() time.Time) VerifierOption {
	return func(v *HS256Verifier) {
		v.clock = clock
	}
}

// NewHS256Verifier creates a verifier for tokens signed with secret.
func NewHS256Verifier(secret []byte, options ...VerifierOption) (*HS256Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	verifier := &HS256Verifier{secret: secret, clock: time.Now}
	for _, option := range options {
		option(verifier)
	}

	return verifier, nil
}

// Verify checks signature, algorithm and expiry and extracts the borrower id.
func (v *HS256Verifier) Verify(ctx context.Context, token string) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}

	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return Identity{}, ErrTokenInvalid
	}

	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(_ *jwt.Token) (any, error) {
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.clock),
		jwt.WithExpirationRequired(),
	)

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Identity{}, errors.Join(ErrTokenExpired, err)
	case err != nil:
		return Identity{}, errors.Join(ErrTokenInvalid, err)
	case !parsed.Valid || claims.UserID == "":
		return Identity{}, ErrTokenInvalid
	}

	return Identity{BorrowerID: claims.UserID, Role: claims.Role}, nil
}

var _ Verifier = (*HS256Verifier)(nil)

// HS256Issuer signs tokens for borrowers; used by the CLI and in tests.
type HS256Issuer struct {
	secret []byte
	ttl    time.Duration
	clock  func() time.Time
}

// NewHS256Issuer creates an issuer whose tokens expire ttl after issuing.
func NewHS256Issuer(secret []byte, ttl time.Duration, clock func() time.Time) (*HS256Issuer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	if ttl <= 0 {
		return nil, ErrNonPositiveTTL
	}

	if clock == nil {
		clock = time.Now
	}

	return &HS256Issuer{secret: secret, ttl: ttl, clock: clock}, nil
}

// Issue signs a token carrying borrowerID as user_id.
func (i *HS256Issuer) Issue(borrowerID, role string) (string, error) {
	now := i.clock()

	claims := Claims{
		UserID: borrowerID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    defaultIssuer,
			Subject:   borrowerID,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}
