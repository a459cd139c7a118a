package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func TestJWTMaker(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	userID := uuid.New()
	accessToken, err := maker.CreateToken(userID, "alice", "cashier", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)

	payload, err := maker.VerifyToken(accessToken)
	require.NoError(t, err)
	require.Equal(t, userID, payload.UserID)
	require.Equal(t, "alice", payload.Username)
	require.Equal(t, "cashier", payload.Role)
	require.WithinDuration(t, time.Now(), payload.IssuedAt, time.Second)
	require.WithinDuration(t, time.Now().Add(time.Minute), payload.ExpiredAt, time.Second)
}

func TestJWTMakerShortKey(t *testing.T) {
	_, err := NewJWTMaker("too-short")
	require.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	accessToken, err := maker.CreateToken(uuid.New(), "alice", "cashier", -time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(accessToken)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestInvalidToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	_, err = maker.VerifyToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	//不同key簽出來的token不可通過驗證
	otherMaker, err := NewJWTMaker("ffffffffffffffffffffffffffffffff")
	require.NoError(t, err)
	accessToken, err := otherMaker.CreateToken(uuid.New(), "alice", "cashier", time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(accessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}
