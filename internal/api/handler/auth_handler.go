package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/api/dto"
	"github.com/RoyceAzure/lab/pos/internal/constants"
	"github.com/RoyceAzure/lab/pos/internal/errs"
	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/RoyceAzure/lab/pos/internal/service"
	"github.com/RoyceAzure/lab/pos/internal/util"
)

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{
		authService: authService,
	}
}

// @Summary login
// @use username and password to login
// @Tags auth
// @Accept json
// @Produce json
// @Param loginInfo body dto.LoginDTO true "username and password"
// @Success 200 {object} util.Response{data=dto.LoginResponse} "success"
// @Failure 401 {object} util.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 500 {object} util.ResponseError{data=string} "Internal server error"
// @Router /auth/login [post]
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginDTO dto.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&loginDTO); err != nil {
		util.ErrorJSON(w, int(errs.BadRequestCode), nil, errs.ErrStrMap[errs.BadRequestCode])
		return
	}

	ctx := r.Context()

	loginRes, err := a.authService.Login(ctx, loginDTO.Username, loginDTO.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.SuccessJSON(w, dto.LoginResponse{
		AccessToken: dto.TokenInfo{
			Value:     loginRes.AccessToken,
			ExpiresIn: int(constants.AccessTokenDuration) * 3600,
		},
		User: convertUserModelToDTO(loginRes.User),
	}, nil)
}

// @Summary get current login user info
// @use get current login user info
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} util.Response{data=dto.UserDTO} "success"
// @Failure 401 {object} util.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 500 {object} util.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /auth/me [get]
func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userModel, err := a.authService.Me(ctx)
	if err != nil || userModel == nil {
		handleServiceError(w, err)
		return
	}

	util.SuccessJSON(w, convertUserModelToDTO(*userModel), nil)
}

// convertUserModelToDTO 將 UserModel 轉換為 UserDTO
func convertUserModelToDTO(model model.UserModel) dto.UserDTO {
	return dto.UserDTO{
		ID:        model.ID.String(),
		Username:  model.Username,
		Email:     model.Email,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Role:      model.Role,
		IsActive:  model.IsActive,
	}
}
