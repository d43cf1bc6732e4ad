package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func TestJWTMaker_CreateAndVerify(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	userID := uuid.New().String()
	signed, payload, err := maker.CreateToken(userID, "user@fitland.dev", "USER", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	require.NotEmpty(t, payload.TokenID)

	verified, err := maker.VerifyToken(signed)
	require.NoError(t, err)
	require.Equal(t, payload.TokenID, verified.TokenID)
	require.Equal(t, userID, verified.UserID)
	require.Equal(t, "user@fitland.dev", verified.Email)
	require.Equal(t, "USER", verified.Role)
	require.WithinDuration(t, time.Now().Add(time.Minute), verified.ExpiresAt.Time, 5*time.Second)
}

func TestJWTMaker_ExpiredToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	signed, _, err := maker.CreateToken(uuid.New().String(), "user@fitland.dev", "USER", -time.Minute)
	require.NoError(t, err)

	payload, err := maker.VerifyToken(signed)
	require.ErrorIs(t, err, ErrExpiredToken)
	require.Nil(t, payload)
}

func TestJWTMaker_WrongKey(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)
	other, err := NewJWTMaker(strings.Repeat("x", 32))
	require.NoError(t, err)

	signed, _, err := maker.CreateToken(uuid.New().String(), "user@fitland.dev", "USER", time.Minute)
	require.NoError(t, err)

	payload, err := other.VerifyToken(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Nil(t, payload)
}

// alg替換攻擊 none演算法必須被拒絕
func TestJWTMaker_RejectsNoneAlgorithm(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	payload := &Payload{
		TokenID: uuid.New().String(),
		UserID:  uuid.New().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	jwtToken := jwt.NewWithClaims(jwt.SigningMethodNone, payload)
	signed, err := jwtToken.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	verified, err := maker.VerifyToken(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Nil(t, verified)
}

func TestNewJWTMaker_KeyTooShort(t *testing.T) {
	maker, err := NewJWTMaker("short")
	require.ErrorIs(t, err, ErrKeyTooShort)
	require.Nil(t, maker)
}
