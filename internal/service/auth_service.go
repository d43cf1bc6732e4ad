package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"reflect"
	"time"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/repository/db"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/er"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/token"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type RegisterParams struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber string
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *model.User
}

type IAuthService interface {
	// Register 註冊新用戶
	//
	// 錯誤:
	//   - er.ConflictCode 409: email已被註冊
	//   - er.InvalidArgumentCode 460: 輸入不合法
	Register(ctx context.Context, params RegisterParams) (*model.User, error)
	// Login 帳號密碼登入 簽發access token與refresh token
	//
	// 錯誤:
	//   - er.UnauthenticatedCode 401: 帳號不存在或密碼錯誤
	Login(ctx context.Context, email, password, ip, device string) (*LoginResult, error)
	// Refresh 以refresh token換發新token (rotation)
	// 舊token作廢 hash比對失敗視為token重用 撤銷該用戶所有refresh token
	//
	// 錯誤:
	//   - er.UnauthorizedCode 403: token無效 過期 已撤銷或重用
	Refresh(ctx context.Context, rawRefreshToken, ip, device string) (*LoginResult, error)
	// Logout 撤銷refresh token
	Logout(ctx context.Context, rawRefreshToken string) error
	// Me 取得當前登入user資訊
	Me(ctx context.Context, userID string) (*model.User, error)
}

type AuthService struct {
	userRepo   db.IUserRepository
	tokenRepo  db.IRefreshTokenRepository
	tokenMaker token.Maker
	logger     *zerolog.Logger
}

func NewAuthService(userRepo db.IUserRepository, tokenRepo db.IRefreshTokenRepository, tokenMaker token.Maker, logger *zerolog.Logger) IAuthService {
	if reflect.ValueOf(userRepo).IsNil() {
		panic("auth service initialization failed: userRepo cannot be nil")
	}
	if reflect.ValueOf(tokenRepo).IsNil() {
		panic("auth service initialization failed: tokenRepo cannot be nil")
	}
	if tokenMaker == nil {
		panic("auth service initialization failed: tokenMaker cannot be nil")
	}

	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		tokenMaker: tokenMaker,
		logger:     logger,
	}
}

// hashRefreshToken jwt長度超過bcrypt 72 bytes上限 先做sha256再進bcrypt
func hashRefreshToken(raw string) ([]byte, error) {
	digest := sha256.Sum256([]byte(raw))
	return bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(digest[:])), bcrypt.DefaultCost)
}

func compareRefreshToken(raw, hash string) error {
	digest := sha256.Sum256([]byte(raw))
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(hex.EncodeToString(digest[:])))
}

func (a *AuthService) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	if params.Email == "" || len(params.Password) < 8 {
		return nil, er.New(er.InvalidArgumentCode, "email is required and password must be at least 8 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:          uuid.New().String(),
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		Email:       params.Email,
		Password:    string(hashed),
		PhoneNumber: params.PhoneNumber,
		Role:        constants.RoleUser,
	}

	if err := a.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			return nil, er.New(er.ConflictCode, "email already registered")
		}
		return nil, err
	}
	return user, nil
}

func (a *AuthService) Login(ctx context.Context, email, password, ip, device string) (*LoginResult, error) {
	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return nil, er.New(er.UnauthenticatedCode, "invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, er.New(er.UnauthenticatedCode, "invalid email or password")
	}

	return a.issueTokens(ctx, user, ip, device)
}

func (a *AuthService) Refresh(ctx context.Context, rawRefreshToken, ip, device string) (*LoginResult, error) {
	payload, err := a.tokenMaker.VerifyToken(rawRefreshToken)
	if err != nil {
		return nil, er.New(er.UnauthorizedCode, "invalid refresh token")
	}

	stored, err := a.tokenRepo.GetTokenByID(ctx, payload.TokenID)
	if err != nil {
		if errors.Is(err, db.ErrRefreshTokenNotFound) {
			return nil, er.New(er.UnauthorizedCode, "invalid refresh token")
		}
		return nil, err
	}

	if stored.Revoked || stored.ExpiresAt.Before(time.Now()) {
		return nil, er.New(er.UnauthorizedCode, "invalid refresh token")
	}

	if err := compareRefreshToken(rawRefreshToken, stored.TokenHash); err != nil {
		// hash不符代表token可能外洩被重放 撤銷該用戶全部refresh token
		if revokeErr := a.tokenRepo.RevokeAllByUser(ctx, stored.UserID); revokeErr != nil {
			return nil, revokeErr
		}
		if a.logger != nil {
			a.logger.Warn().
				Str("user_id", stored.UserID).
				Str("token_id", payload.TokenID).
				Str("ip", ip).
				Msg("refresh token reuse detected")
		}
		return nil, er.New(er.UnauthorizedCode, "invalid refresh token")
	}

	user, err := a.userRepo.GetUserByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	// Rotation: 發新token 舊的同交易內作廢
	newRefresh, newPayload, err := a.tokenMaker.CreateToken(user.ID, user.Email, user.Role, constants.RefreshTokenDuration)
	if err != nil {
		return nil, err
	}
	newHash, err := hashRefreshToken(newRefresh)
	if err != nil {
		return nil, err
	}

	newRecord := &model.RefreshToken{
		ID:        newPayload.TokenID,
		UserID:    user.ID,
		TokenHash: string(newHash),
		IP:        ip,
		Device:    device,
		ExpiresAt: time.Now().Add(constants.RefreshTokenDuration),
	}
	if err := a.tokenRepo.RotateToken(ctx, payload.TokenID, newRecord); err != nil {
		return nil, err
	}

	accessToken, _, err := a.tokenMaker.CreateToken(user.ID, user.Email, user.Role, constants.AccessTokenDuration)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		User:         user,
	}, nil
}

func (a *AuthService) Logout(ctx context.Context, rawRefreshToken string) error {
	payload, err := a.tokenMaker.VerifyToken(rawRefreshToken)
	if err != nil {
		return er.New(er.UnauthorizedCode, "invalid refresh token")
	}
	return a.tokenRepo.RevokeToken(ctx, payload.TokenID)
}

func (a *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := a.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return nil, er.New(er.NotFoundCode, "user not found")
		}
		return nil, err
	}
	return user, nil
}

func (a *AuthService) issueTokens(ctx context.Context, user *model.User, ip, device string) (*LoginResult, error) {
	accessToken, _, err := a.tokenMaker.CreateToken(user.ID, user.Email, user.Role, constants.AccessTokenDuration)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshPayload, err := a.tokenMaker.CreateToken(user.ID, user.Email, user.Role, constants.RefreshTokenDuration)
	if err != nil {
		return nil, err
	}

	hash, err := hashRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	record := &model.RefreshToken{
		ID:        refreshPayload.TokenID,
		UserID:    user.ID,
		TokenHash: string(hash),
		IP:        ip,
		Device:    device,
		ExpiresAt: time.Now().Add(constants.RefreshTokenDuration),
	}
	if err := a.tokenRepo.CreateToken(ctx, record); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
