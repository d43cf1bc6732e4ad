package db

import (
	"context"
	"testing"
	"time"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RefreshTokenRepoTestSuite struct {
	suite.Suite
	db        *gorm.DB
	tokenRepo *RefreshTokenRepo
	userRepo  *UserRepo
}

func (suite *RefreshTokenRepoTestSuite) SetupSuite() {
	db, err := GetDbConn("fitland_test", "localhost", "5432", "postgres", "password")
	require.NoError(suite.T(), err)

	dao := NewDbDao(db)
	require.NoError(suite.T(), dao.InitMigrate())

	suite.db = db
	suite.tokenRepo = NewRefreshTokenRepo(dao)
	suite.userRepo = NewUserRepo(dao)
}

func (suite *RefreshTokenRepoTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM refresh_tokens")
	suite.db.Exec("DELETE FROM users")
}

func (suite *RefreshTokenRepoTestSuite) TearDownSuite() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

func (suite *RefreshTokenRepoTestSuite) createUserWithToken() (*model.User, *model.RefreshToken) {
	user := &model.User{
		ID:        uuid.New().String(),
		FirstName: "Token",
		LastName:  "Tester",
		Email:     uuid.New().String() + "@example.com",
		Password:  "hashed",
		Role:      constants.RoleUser,
	}
	require.NoError(suite.T(), suite.userRepo.CreateUser(context.Background(), user))

	token := &model.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: "hash-" + uuid.New().String(),
		ExpiresAt: time.Now().Add(constants.RefreshTokenDuration),
	}
	require.NoError(suite.T(), suite.tokenRepo.CreateToken(context.Background(), token))
	return user, token
}

func (suite *RefreshTokenRepoTestSuite) TestRotateToken() {
	user, oldToken := suite.createUserWithToken()
	ctx := context.Background()

	newToken := &model.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: "hash-" + uuid.New().String(),
		ExpiresAt: time.Now().Add(constants.RefreshTokenDuration),
	}
	require.NoError(suite.T(), suite.tokenRepo.RotateToken(ctx, oldToken.ID, newToken))

	rotated, err := suite.tokenRepo.GetTokenByID(ctx, oldToken.ID)
	require.NoError(suite.T(), err)
	require.True(suite.T(), rotated.Revoked)
	require.NotNil(suite.T(), rotated.ReplacedByID)
	require.Equal(suite.T(), newToken.ID, *rotated.ReplacedByID)

	fresh, err := suite.tokenRepo.GetTokenByID(ctx, newToken.ID)
	require.NoError(suite.T(), err)
	require.False(suite.T(), fresh.Revoked)
}

func (suite *RefreshTokenRepoTestSuite) TestRevokeAllByUser() {
	user, first := suite.createUserWithToken()
	ctx := context.Background()

	second := &model.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: "hash-" + uuid.New().String(),
		ExpiresAt: time.Now().Add(constants.RefreshTokenDuration),
	}
	require.NoError(suite.T(), suite.tokenRepo.CreateToken(ctx, second))

	// 別的用戶的token不受影響
	_, otherToken := suite.createUserWithToken()

	require.NoError(suite.T(), suite.tokenRepo.RevokeAllByUser(ctx, user.ID))

	for _, id := range []string{first.ID, second.ID} {
		token, err := suite.tokenRepo.GetTokenByID(ctx, id)
		require.NoError(suite.T(), err)
		require.True(suite.T(), token.Revoked)
	}

	untouched, err := suite.tokenRepo.GetTokenByID(ctx, otherToken.ID)
	require.NoError(suite.T(), err)
	require.False(suite.T(), untouched.Revoked)
}

func (suite *RefreshTokenRepoTestSuite) TestGetTokenByID_NotFound() {
	_, err := suite.tokenRepo.GetTokenByID(context.Background(), uuid.New().String())
	require.ErrorIs(suite.T(), err, ErrRefreshTokenNotFound)
}

func TestRefreshTokenRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RefreshTokenRepoTestSuite))
}
