package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTServiceWithConfig(TokenConfig{
		Secret:           []byte("0123456789abcdef0123456789abcdef"),
		ExpiresIn:        15 * time.Minute,
		RefreshExpiresIn: 24 * time.Hour,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	service := newTestJWTService()

	token, expiry, err := service.GenerateAccessToken("alice", 42, "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiry, 5*time.Second)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	service := newTestJWTService()
	other := NewJWTServiceWithConfig(TokenConfig{
		Secret:    []byte("ffffffffffffffffffffffffffffffff"),
		ExpiresIn: 15 * time.Minute,
	})

	token, _, err := service.GenerateAccessToken("alice", 42, "staff")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	service := NewJWTServiceWithConfig(TokenConfig{
		Secret:    []byte("0123456789abcdef0123456789abcdef"),
		ExpiresIn: -time.Minute,
	})

	token, _, err := service.GenerateAccessToken("alice", 42, "staff")
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.Error(t, err)
}

// 非 access 类型的令牌不能当访问令牌用
func TestValidateAccessToken_RejectsWrongType(t *testing.T) {
	service := newTestJWTService()

	claims := jwt.MapClaims{
		"username": "alice",
		"user_id":  float64(42),
		"type":     "refresh",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.ErrorContains(t, err, "not an access token")
}

func TestValidateAccessToken_RejectsNoneAlgorithm(t *testing.T) {
	service := newTestJWTService()

	claims := jwt.MapClaims{
		"username": "alice",
		"user_id":  float64(42),
		"type":     "access",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestGenerateTokens(t *testing.T) {
	service := newTestJWTService()

	pair, err := service.GenerateTokens("bob", 7, "staff")
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.True(t, pair.RefreshTokenExpiry.After(pair.AccessTokenExpiry))
}

// 刷新令牌是不透明随机串，不应被解析为 JWT
func TestGenerateRefreshToken_Opaque(t *testing.T) {
	service := newTestJWTService()

	token, expiry, err := service.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiry.After(time.Now()))

	_, err = service.ParseToken(token)
	assert.Error(t, err)

	again, _, err := service.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, again)
}
