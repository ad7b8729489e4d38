package identity_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending/identity"
)

var secret = []byte("test-secret")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func Test_HS256_IssueAndVerify(t *testing.T) {
	// arrange
	now := time.Now()
	issuer, err := identity.NewHS256Issuer(secret, time.Hour, fixedClock(now))
	require.NoError(t, err)
	verifier, err := identity.NewHS256Verifier(secret, identity.WithVerifierClock(fixedClock(now.Add(time.Minute))))
	require.NoError(t, err)

	token, err := issuer.Issue("u-123", "faculty")
	require.NoError(t, err)

	// act
	id, err := verifier.Verify(t.Context(), "Bearer "+token)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "u-123", id.BorrowerID)
	assert.Equal(t, "faculty", id.Role)
}

func Test_HS256Verifier_Expired(t *testing.T) {
	now := time.Now()
	issuer, err := identity.NewHS256Issuer(secret, time.Minute, fixedClock(now))
	require.NoError(t, err)
	verifier, err := identity.NewHS256Verifier(secret, identity.WithVerifierClock(fixedClock(now.Add(time.Hour))))
	require.NoError(t, err)

	token, err := issuer.Issue("u-123", "")
	require.NoError(t, err)

	_, err = verifier.Verify(t.Context(), token)

	assert.ErrorIs(t, err, identity.ErrTokenExpired)
	assert.NotErrorIs(t, err, identity.ErrTokenInvalid)
}

func Test_HS256Verifier_Invalid(t *testing.T) {
	now := time.Now()
	verifier, err := identity.NewHS256Verifier(secret, identity.WithVerifierClock(fixedClock(now)))
	require.NoError(t, err)

	otherIssuer, err := identity.NewHS256Issuer([]byte("other-secret"), time.Hour, fixedClock(now))
	require.NoError(t, err)
	wrongSignature, err := otherIssuer.Issue("u-123", "")
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, identity.Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
	}).SignedString(secret)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, identity.Claims{UserID: "u-123"}).SignedString(secret)
	require.NoError(t, err)

	testCases := map[string]string{
		"empty":           "",
		"garbage":         "not.a.token",
		"wrong signature": wrongSignature,
		"missing user_id": noUser,
		"missing expiry":  noExpiry,
	}

	for name, token := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := verifier.Verify(t.Context(), token)

			assert.ErrorIs(t, err, identity.ErrTokenInvalid)
		})
	}
}

func Test_NewHS256_RejectsBadConfig(t *testing.T) {
	_, err := identity.NewHS256Verifier(nil)
	assert.ErrorIs(t, err, identity.ErrEmptySecret)

	_, err = identity.NewHS256Issuer(secret, 0, nil)
	assert.ErrorIs(t, err, identity.ErrNonPositiveTTL)
}
