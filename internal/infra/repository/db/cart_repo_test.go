package db

import (
	"context"
	"testing"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type CartRepoTestSuite struct {
	suite.Suite
	db       *gorm.DB
	cartRepo *CartRepo
	userRepo *UserRepo
}

func (suite *CartRepoTestSuite) SetupSuite() {
	db, err := GetDbConn("fitland_test", "localhost", "5432", "postgres", "password")
	require.NoError(suite.T(), err)

	dao := NewDbDao(db)
	require.NoError(suite.T(), dao.InitMigrate())

	suite.db = db
	suite.cartRepo = NewCartRepo(dao)
	suite.userRepo = NewUserRepo(dao)
}

func (suite *CartRepoTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM cart_items")
	suite.db.Exec("DELETE FROM carts")
	suite.db.Exec("DELETE FROM product_sizes")
	suite.db.Exec("DELETE FROM products")
	suite.db.Exec("DELETE FROM categories")
	suite.db.Exec("DELETE FROM users")
}

func (suite *CartRepoTestSuite) TearDownSuite() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

func (suite *CartRepoTestSuite) createUser() *model.User {
	user := &model.User{
		ID:        uuid.New().String(),
		FirstName: "Cart",
		LastName:  "Tester",
		Email:     uuid.New().String() + "@example.com",
		Password:  "hashed",
		Role:      constants.RoleUser,
	}
	require.NoError(suite.T(), suite.userRepo.CreateUser(context.Background(), user))
	return user
}

func (suite *CartRepoTestSuite) createProduct() *model.Product {
	category := &model.Category{
		ID:   uuid.New().String(),
		Name: "Category " + uuid.New().String()[:8],
		Slug: "category-" + uuid.New().String()[:8],
	}
	require.NoError(suite.T(), suite.db.Create(category).Error)

	product := &model.Product{
		ID:         uuid.New().String(),
		Name:       "Cart Product " + uuid.New().String()[:8],
		Price:      decimal.NewFromInt(50000),
		Stock:      10,
		IsActive:   true,
		CategoryID: category.ID,
	}
	require.NoError(suite.T(), suite.db.Create(product).Error)
	return product
}

func (suite *CartRepoTestSuite) TestGetOrCreateCart_CreatesOncePerUser() {
	user := suite.createUser()
	ctx := context.Background()

	first, err := suite.cartRepo.GetOrCreateCart(ctx, user.ID)
	require.NoError(suite.T(), err)

	second, err := suite.cartRepo.GetOrCreateCart(ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), first.ID, second.ID)
}

func (suite *CartRepoTestSuite) TestFindItem_MatchesExactVariant() {
	user := suite.createUser()
	product := suite.createProduct()
	ctx := context.Background()

	cart, err := suite.cartRepo.GetOrCreateCart(ctx, user.ID)
	require.NoError(suite.T(), err)

	item := &model.CartItem{
		ID:        uuid.New().String(),
		CartID:    cart.ID,
		ProductID: product.ID,
		Size:      "M",
		Color:     "Black",
		Quantity:  1,
	}
	require.NoError(suite.T(), suite.cartRepo.CreateItem(ctx, item))

	found, err := suite.cartRepo.FindItem(ctx, cart.ID, product.ID, "M", "Black")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), item.ID, found.ID)

	// 不同尺寸視為不同品項
	_, err = suite.cartRepo.FindItem(ctx, cart.ID, product.ID, "L", "Black")
	require.ErrorIs(suite.T(), err, ErrCartItemNotFound)
}

func (suite *CartRepoTestSuite) TestGetItemByID_OwnershipEnforced() {
	owner := suite.createUser()
	other := suite.createUser()
	product := suite.createProduct()
	ctx := context.Background()

	cart, err := suite.cartRepo.GetOrCreateCart(ctx, owner.ID)
	require.NoError(suite.T(), err)

	item := &model.CartItem{
		ID:        uuid.New().String(),
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  1,
	}
	require.NoError(suite.T(), suite.cartRepo.CreateItem(ctx, item))

	_, err = suite.cartRepo.GetItemByID(ctx, other.ID, item.ID)
	require.ErrorIs(suite.T(), err, ErrCartItemNotFound)

	found, err := suite.cartRepo.GetItemByID(ctx, owner.ID, item.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), item.ID, found.ID)
}

func (suite *CartRepoTestSuite) TestUpdateItemQuantity() {
	user := suite.createUser()
	product := suite.createProduct()
	ctx := context.Background()

	cart, err := suite.cartRepo.GetOrCreateCart(ctx, user.ID)
	require.NoError(suite.T(), err)

	item := &model.CartItem{
		ID:        uuid.New().String(),
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  1,
	}
	require.NoError(suite.T(), suite.cartRepo.CreateItem(ctx, item))

	require.NoError(suite.T(), suite.cartRepo.UpdateItemQuantity(ctx, item.ID, 5))

	found, err := suite.cartRepo.GetItemByID(ctx, user.ID, item.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 5, found.Quantity)

	require.ErrorIs(suite.T(), suite.cartRepo.UpdateItemQuantity(ctx, uuid.New().String(), 2), ErrCartItemNotFound)
}

func (suite *CartRepoTestSuite) TestClearByUser() {
	user := suite.createUser()
	product := suite.createProduct()
	ctx := context.Background()

	cart, err := suite.cartRepo.GetOrCreateCart(ctx, user.ID)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.cartRepo.CreateItem(ctx, &model.CartItem{
		ID:        uuid.New().String(),
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  2,
	}))

	require.NoError(suite.T(), suite.cartRepo.ClearByUser(ctx, user.ID))

	var count int64
	suite.db.Model(&model.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count)
	require.Zero(suite.T(), count)

	// 用戶沒有購物車時視為已清空
	noCartUser := suite.createUser()
	require.NoError(suite.T(), suite.cartRepo.ClearByUser(ctx, noCartUser.ID))
}

// 清空後購物車本體仍在 下次讀取沿用同一台車
func (suite *CartRepoTestSuite) TestClearKeepsCartRow() {
	user := suite.createUser()
	ctx := context.Background()

	cart, err := suite.cartRepo.GetOrCreateCart(ctx, user.ID)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.cartRepo.ClearByUser(ctx, user.ID))

	again, err := suite.cartRepo.GetOrCreateCart(ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), cart.ID, again.ID)
}

func TestCartRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CartRepoTestSuite))
}
