package middleware

import (
	"testing"
	"time"

	"road_watch/config"
	"road_watch/core/common"
	"road_watch/core/global"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func setupTestConfig(t *testing.T) {
	t.Helper()
	previous := global.ServerConfig
	global.ServerConfig = &config.Configuration{JwtSecret: testSecret}
	t.Cleanup(func() { global.ServerConfig = previous })
}

func TestParseToken_ValidClaims(t *testing.T) {
	setupTestConfig(t)

	tokenString := signToken(t, jwt.MapClaims{
		"userId":   "64f000000000000000000001",
		"position": "department head",
		"role":     "user",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	claims, err := parseToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "64f000000000000000000001", claims.userID)
	assert.Equal(t, "department head", claims.position)
	assert.Equal(t, "user", claims.role)
}

func TestParseToken_MissingUserID(t *testing.T) {
	setupTestConfig(t)

	tokenString := signToken(t, jwt.MapClaims{
		"position": "district engineer",
	}, testSecret)

	_, err := parseToken(tokenString)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestParseToken_WrongSecret(t *testing.T) {
	setupTestConfig(t)

	tokenString := signToken(t, jwt.MapClaims{
		"userId": "64f000000000000000000001",
	}, "wrong-secret")

	_, err := parseToken(tokenString)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestParseToken_Expired(t *testing.T) {
	setupTestConfig(t)

	tokenString := signToken(t, jwt.MapClaims{
		"userId": "64f000000000000000000001",
		"exp":    time.Now().Add(-time.Hour).Unix(),
	}, testSecret)

	_, err := parseToken(tokenString)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestParseToken_Garbage(t *testing.T) {
	setupTestConfig(t)

	_, err := parseToken("not.a.token")
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}
