package service

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/constants"
	"github.com/RoyceAzure/lab/pos/internal/errs"
	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/RoyceAzure/lab/pos/internal/token"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testTokenKey = "0123456789abcdef0123456789abcdef"

func newTestAuthService(t *testing.T, store *fakeStore) *AuthService {
	tokenMaker, err := token.NewJWTMaker(testTokenKey)
	require.NoError(t, err)
	return NewAuthService(store, tokenMaker)
}

func addTestUser(store *fakeStore, username, password string) model.UserModel {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	user := model.UserModel{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		HashPassword: string(hashed),
		Role:         "cashier",
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	store.users[username] = user
	return user
}

func TestLoginSuccess(t *testing.T) {
	store := newFakeStore()
	user := addTestUser(store, "alice", "secret123")
	authService := newTestAuthService(t, store)

	result, err := authService.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	require.Equal(t, user.ID, result.User.ID)

	//簽出來的token要能驗回同一個使用者
	tokenMaker, err := token.NewJWTMaker(testTokenKey)
	require.NoError(t, err)
	payload, err := tokenMaker.VerifyToken(result.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, payload.UserID)
	require.Equal(t, "alice", payload.Username)
	require.Equal(t, "cashier", payload.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeStore()
	addTestUser(store, "alice", "secret123")
	authService := newTestAuthService(t, store)

	_, err := authService.Login(context.Background(), "alice", "wrong")

	var appErr *errs.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, errs.UnauthenticatedCode, appErr.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	store := newFakeStore()
	authService := newTestAuthService(t, store)

	_, err := authService.Login(context.Background(), "ghost", "secret123")

	//帳號不存在與密碼錯誤回同一種錯誤
	var appErr *errs.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, errs.UnauthenticatedCode, appErr.Code)
}

func TestMe(t *testing.T) {
	store := newFakeStore()
	user := addTestUser(store, "alice", "secret123")
	authService := newTestAuthService(t, store)

	ctx := context.WithValue(context.Background(), constants.AuthorizationPayloadKey, &token.Payload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})

	got, err := authService.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, "alice", got.Username)
}

func TestMeWithoutPayload(t *testing.T) {
	store := newFakeStore()
	authService := newTestAuthService(t, store)

	_, err := authService.Me(context.Background())

	var appErr *errs.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, errs.UnauthenticatedCode, appErr.Code)
}
