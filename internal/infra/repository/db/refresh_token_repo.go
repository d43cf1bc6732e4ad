package db

import (
	"context"
	"errors"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"gorm.io/gorm"
)

var (
	// ErrRefreshTokenNotFound refresh token不存在
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)

type RefreshTokenRepo struct {
	db *DbDao
}

func NewRefreshTokenRepo(db *DbDao) *RefreshTokenRepo {
	return &RefreshTokenRepo{db: db}
}

func (s *RefreshTokenRepo) CreateToken(ctx context.Context, token *model.RefreshToken) error {
	return s.db.WithContext(ctx).Create(token).Error
}

func (s *RefreshTokenRepo) GetTokenByID(ctx context.Context, tokenID string) (*model.RefreshToken, error) {
	var token model.RefreshToken
	err := s.db.WithContext(ctx).First(&token, "id = ?", tokenID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRefreshTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// RotateToken 同一交易內寫入新token並撤銷舊token
// 避免rotation途中失敗導致新舊token同時有效
func (s *RefreshTokenRepo) RotateToken(ctx context.Context, oldTokenID string, newToken *model.RefreshToken) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(newToken).Error; err != nil {
			return err
		}
		return tx.Model(&model.RefreshToken{}).
			Where("id = ?", oldTokenID).
			Updates(map[string]interface{}{
				"revoked":        true,
				"replaced_by_id": newToken.ID,
			}).Error
	})
}

// Update - 撤銷單一token
func (s *RefreshTokenRepo) RevokeToken(ctx context.Context, tokenID string) error {
	return s.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("id = ?", tokenID).
		Update("revoked", true).Error
}

// Update - 撤銷用戶所有token 偵測到token重用時的防禦手段
func (s *RefreshTokenRepo) RevokeAllByUser(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("user_id = ?", userID).
		Update("revoked", true).Error
}
