package handler

import (
	"encoding/json"
	"net/http"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/api/dto"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/api"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/er"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/service"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/util"
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

func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var registerDTO dto.RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&registerDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	user, err := a.authService.Register(r.Context(), service.RegisterParams{
		FirstName:   registerDTO.FirstName,
		LastName:    registerDTO.LastName,
		Email:       registerDTO.Email,
		Password:    registerDTO.Password,
		PhoneNumber: registerDTO.PhoneNumber,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.NewUserDTO(user), nil)
}

func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginDTO dto.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&loginDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()
	loginRes, err := a.authService.Login(ctx, loginDTO.Email, loginDTO.Password,
		clientIP(r), util.GetDeviceInfoFromContext(ctx))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, newLoginResponse(loginRes), nil)
}

func (a *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var refreshTokenDTO dto.RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&refreshTokenDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()
	loginRes, err := a.authService.Refresh(ctx, refreshTokenDTO.RefreshToken,
		clientIP(r), util.GetDeviceInfoFromContext(ctx))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, newLoginResponse(loginRes), nil)
}

func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var refreshTokenDTO dto.RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&refreshTokenDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	if err := a.authService.Logout(r.Context(), refreshTokenDTO.RefreshToken); err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, nil, nil)
}

func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	payload, ok := mustPayload(w, r)
	if !ok {
		return
	}

	user, err := a.authService.Me(r.Context(), payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.NewUserDTO(user), nil)
}

func newLoginResponse(loginRes *service.LoginResult) dto.LoginResponse {
	return dto.LoginResponse{
		AccessToken: dto.TokenInfo{
			Value:     loginRes.AccessToken,
			ExpiresIn: int(constants.AccessTokenDuration.Seconds()),
		},
		RefreshToken: dto.TokenInfo{
			Value:     loginRes.RefreshToken,
			ExpiresIn: int(constants.RefreshTokenDuration.Seconds()),
		},
		User: dto.NewUserDTO(loginRes.User),
	}
}
