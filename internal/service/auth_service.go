package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/constants"
	"github.com/RoyceAzure/lab/pos/internal/errs"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/RoyceAzure/lab/pos/internal/token"
	"github.com/RoyceAzure/lab/pos/internal/util"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	// Login 帳號密碼登入，成功後簽發access token
	//
	// 可能的錯誤:
	//   - 帳號或密碼錯誤 401
	//   - 數據庫操作錯誤 500
	Login(ctx context.Context, username, password string) (*model.LoginResultModel, error)

	// Me 取得當前登入者資訊，依賴middleware放進context的token payload
	Me(ctx context.Context) (*model.UserModel, error)
}

type AuthService struct {
	dbDao      db.IStore
	tokenMaker token.Maker
}

func NewAuthService(dbDao db.IStore, tokenMaker token.Maker) *AuthService {
	return &AuthService{
		dbDao:      dbDao,
		tokenMaker: tokenMaker,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*model.LoginResultModel, error) {
	user, err := s.dbDao.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			//帳號不存在跟密碼錯誤回同一個錯誤，不洩漏帳號是否存在
			return nil, errs.New(errs.UnauthenticatedCode, "invalid username or password")
		}
		return nil, errs.Wrap(errs.InternalErrorCode, "get user failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashPassword), []byte(password)); err != nil {
		return nil, errs.New(errs.UnauthenticatedCode, "invalid username or password")
	}

	accessToken, err := s.tokenMaker.CreateToken(
		user.ID, user.Username, user.Role,
		time.Duration(constants.AccessTokenDuration)*time.Hour,
	)
	if err != nil {
		return nil, errs.Wrap(errs.InternalErrorCode, "create token failed", err)
	}

	return &model.LoginResultModel{
		AccessToken: accessToken,
		User:        user,
	}, nil
}

func (s *AuthService) Me(ctx context.Context) (*model.UserModel, error) {
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		return nil, errs.New(errs.UnauthenticatedCode, "unauthenticated")
	}

	user, err := s.dbDao.GetUserByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.New(errs.DataNotExistsCode, "user not found")
		}
		return nil, errs.Wrap(errs.InternalErrorCode, "get user failed", err)
	}

	return &user, nil
}

var _ IAuthService = (*AuthService)(nil)
