package jwt

import (
	"citizens-link/config"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
)

func setConfig(t *testing.T, secret string, expire int64) {
	prev := config.Current()
	config.Set(&config.Config{JWT: config.JWT{AccessSecret: secret, AccessExpire: expire}})
	t.Cleanup(func() { config.Set(prev) })
}

func TestCreateAndParseToken(t *testing.T) {
	setConfig(t, "secret", 3600)

	token := CreateToken(Payload{Username: "admin", RoleID: 1})
	claims, ok := ParseToken(token)
	require.True(t, ok)
	require.Equal(t, "admin", claims.Username)
	require.Equal(t, 1, claims.RoleID)
}

func TestParseTokenRejects(t *testing.T) {
	setConfig(t, "secret", 3600)
	token := CreateToken(Payload{Username: "admin", RoleID: 1})

	_, ok := ParseToken(token + "x")
	require.False(t, ok)

	_, ok = ParseToken("not-a-token")
	require.False(t, ok)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Payload:        Payload{Username: "admin", RoleID: 1},
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Minute).Unix()},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, ok = ParseToken(expired)
	require.False(t, ok)

	setConfig(t, "rotated", 3600)
	_, ok = ParseToken(token)
	require.False(t, ok)
}

func TestParseTokenRejectsMissingExpiry(t *testing.T) {
	setConfig(t, "secret", 3600)

	forever, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Payload: Payload{Username: "admin", RoleID: 1},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, ok := ParseToken(forever)
	require.False(t, ok)
}

func TestEmptySecretRejected(t *testing.T) {
	setConfig(t, "", 3600)
	require.ErrorIs(t, Init(), ErrNoSecret)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Payload:        Payload{Username: "attacker", RoleID: 1},
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
	}).SignedString([]byte(""))
	require.NoError(t, err)
	_, ok := ParseToken(forged)
	require.False(t, ok)

	setConfig(t, "secret", 3600)
	require.NoError(t, Init())
}
