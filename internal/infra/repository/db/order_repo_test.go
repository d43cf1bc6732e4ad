package db

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type OrderRepoTestSuite struct {
	suite.Suite
	db        *gorm.DB
	dao       *DbDao
	orderRepo *OrderRepo
	cartRepo  *CartRepo
	userRepo  *UserRepo
}

// SetupSuite 在測試套件開始前執行
func (suite *OrderRepoTestSuite) SetupSuite() {
	db, err := GetDbConn("fitland_test", "localhost", "5432", "postgres", "password")
	require.NoError(suite.T(), err)

	dao := NewDbDao(db)
	require.NoError(suite.T(), dao.InitMigrate())

	suite.db = db
	suite.dao = dao
	suite.orderRepo = NewOrderRepo(dao, 10*time.Second, 5*time.Second)
	suite.cartRepo = NewCartRepo(dao)
	suite.userRepo = NewUserRepo(dao)
}

// SetupTest 在每個測試前執行
func (suite *OrderRepoTestSuite) SetupTest() {
	// 清空資料表
	suite.db.Exec("DELETE FROM order_items")
	suite.db.Exec("DELETE FROM orders")
	suite.db.Exec("DELETE FROM cart_items")
	suite.db.Exec("DELETE FROM carts")
	suite.db.Exec("DELETE FROM product_sizes")
	suite.db.Exec("DELETE FROM product_colors")
	suite.db.Exec("DELETE FROM products")
	suite.db.Exec("DELETE FROM categories")
	suite.db.Exec("DELETE FROM users")
}

// TearDownSuite 在測試套件結束後執行
func (suite *OrderRepoTestSuite) TearDownSuite() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

func (suite *OrderRepoTestSuite) createTestUser() *model.User {
	user := &model.User{
		ID:        uuid.New().String(),
		FirstName: "Test",
		LastName:  "User",
		Email:     uuid.New().String() + "@example.com",
		Password:  "hashed",
		Role:      constants.RoleUser,
	}
	require.NoError(suite.T(), suite.userRepo.CreateUser(context.Background(), user))
	return user
}

func (suite *OrderRepoTestSuite) createTestProduct(price int64, discountPercent int64, stock int, sizes map[string]int) *model.Product {
	category := &model.Category{
		ID:   uuid.New().String(),
		Name: "Category " + uuid.New().String()[:8],
		Slug: "category-" + uuid.New().String()[:8],
	}
	require.NoError(suite.T(), suite.db.Create(category).Error)

	product := &model.Product{
		ID:              uuid.New().String(),
		Name:            "Test Product " + uuid.New().String()[:8],
		Price:           decimal.NewFromInt(price),
		DiscountPercent: decimal.NewFromInt(discountPercent),
		Stock:           stock,
		IsActive:        true,
		CategoryID:      category.ID,
	}
	for size, sizeStock := range sizes {
		product.Sizes = append(product.Sizes, model.ProductSize{
			ID:    uuid.New().String(),
			Size:  size,
			Stock: sizeStock,
		})
	}
	require.NoError(suite.T(), suite.db.Create(product).Error)
	return product
}

func (suite *OrderRepoTestSuite) TestPlaceOrder_TotalUsesDiscountedPrice() {
	user := suite.createTestUser()
	// 100000 打9折 單價90000 兩件共180000
	product := suite.createTestProduct(100000, 10, 10, map[string]int{"42": 5})

	order, err := suite.orderRepo.PlaceOrder(context.Background(), PlaceOrderParams{
		UserID: user.ID,
		Items: []OrderLineParams{
			{ProductID: product.ID, Quantity: 2, Size: "42"},
		},
		Address: "123 Test St",
	})

	require.NoError(suite.T(), err)
	require.True(suite.T(), decimal.NewFromInt(180000).Equal(order.Total))
	require.Len(suite.T(), order.Items, 1)
	require.True(suite.T(), decimal.NewFromInt(90000).Equal(order.Items[0].Price))
	require.Equal(suite.T(), constants.OrderStatusPending, order.Status)
	require.Regexp(suite.T(), regexp.MustCompile(`^\d{8}$`), order.OrderCode)
}

func (suite *OrderRepoTestSuite) TestPlaceOrder_DecrementsStockAndIncrementsSales() {
	user := suite.createTestUser()
	product := suite.createTestProduct(50000, 0, 10, map[string]int{"M": 6})

	_, err := suite.orderRepo.PlaceOrder(context.Background(), PlaceOrderParams{
		UserID: user.ID,
		Items: []OrderLineParams{
			{ProductID: product.ID, Quantity: 4, Size: "M"},
		},
		Address: "123 Test St",
	})
	require.NoError(suite.T(), err)

	var updated model.Product
	require.NoError(suite.T(), suite.db.First(&updated, "id = ?", product.ID).Error)
	require.Equal(suite.T(), 6, updated.Stock)
	require.Equal(suite.T(), 4, updated.SalesCount)

	var updatedSize model.ProductSize
	require.NoError(suite.T(), suite.db.First(&updatedSize, "product_id = ? AND size = ?", product.ID, "M").Error)
	require.Equal(suite.T(), 2, updatedSize.Stock)
}

func (suite *OrderRepoTestSuite) TestPlaceOrder_ClearsCart() {
	user := suite.createTestUser()
	product := suite.createTestProduct(50000, 0, 10, nil)

	ctx := context.Background()
	cart, err := suite.cartRepo.GetOrCreateCart(ctx, user.ID)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.cartRepo.CreateItem(ctx, &model.CartItem{
		ID:        uuid.New().String(),
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  2,
	}))

	_, err = suite.orderRepo.PlaceOrder(ctx, PlaceOrderParams{
		UserID: user.ID,
		Items: []OrderLineParams{
			{ProductID: product.ID, Quantity: 2},
		},
		Address: "123 Test St",
	})
	require.NoError(suite.T(), err)

	var count int64
	suite.db.Model(&model.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count)
	require.Zero(suite.T(), count)
}

func (suite *OrderRepoTestSuite) TestPlaceOrder_InsufficientStock_NoPartialWrites() {
	user := suite.createTestUser()
	okProduct := suite.createTestProduct(50000, 0, 10, nil)
	outProduct := suite.createTestProduct(30000, 0, 1, nil)

	_, err := suite.orderRepo.PlaceOrder(context.Background(), PlaceOrderParams{
		UserID: user.ID,
		Items: []OrderLineParams{
			{ProductID: okProduct.ID, Quantity: 2},
			{ProductID: outProduct.ID, Quantity: 5},
		},
		Address: "123 Test St",
	})

	var stockErr *StockError
	require.ErrorAs(suite.T(), err, &stockErr)
	require.Equal(suite.T(), 1, stockErr.Available)
	require.Equal(suite.T(), 5, stockErr.Requested)

	// 整筆rollback 第一個商品的庫存也不能動
	var orderCount int64
	suite.db.Model(&model.Order{}).Count(&orderCount)
	require.Zero(suite.T(), orderCount)

	var first model.Product
	suite.db.First(&first, "id = ?", okProduct.ID)
	require.Equal(suite.T(), 10, first.Stock)
	require.Equal(suite.T(), 0, first.SalesCount)
}

func (suite *OrderRepoTestSuite) TestPlaceOrder_SizeStockCheckedIndependently() {
	user := suite.createTestUser()
	// 總庫存充足 但指定尺寸只剩1
	product := suite.createTestProduct(50000, 0, 100, map[string]int{"S": 1})

	_, err := suite.orderRepo.PlaceOrder(context.Background(), PlaceOrderParams{
		UserID: user.ID,
		Items: []OrderLineParams{
			{ProductID: product.ID, Quantity: 2, Size: "S"},
		},
		Address: "123 Test St",
	})

	var stockErr *StockError
	require.ErrorAs(suite.T(), err, &stockErr)
	require.Equal(suite.T(), "S", stockErr.Size)
}

func (suite *OrderRepoTestSuite) TestPlaceOrder_InvalidSize() {
	user := suite.createTestUser()
	product := suite.createTestProduct(50000, 0, 10, map[string]int{"M": 5})

	_, err := suite.orderRepo.PlaceOrder(context.Background(), PlaceOrderParams{
		UserID: user.ID,
		Items: []OrderLineParams{
			{ProductID: product.ID, Quantity: 1, Size: "XXL"},
		},
		Address: "123 Test St",
	})

	require.ErrorIs(suite.T(), err, ErrInvalidSize)
}

func (suite *OrderRepoTestSuite) TestPlaceOrder_OneSizeSkipsSizeCheck() {
	user := suite.createTestUser()
	product := suite.createTestProduct(50000, 0, 10, nil)

	_, err := suite.orderRepo.PlaceOrder(context.Background(), PlaceOrderParams{
		UserID: user.ID,
		Items: []OrderLineParams{
			{ProductID: product.ID, Quantity: 1, Size: constants.SizeOneSize},
		},
		Address: "123 Test St",
	})
	require.NoError(suite.T(), err)
}

func (suite *OrderRepoTestSuite) TestPlaceOrder_InactiveProduct() {
	user := suite.createTestUser()
	product := suite.createTestProduct(50000, 0, 10, nil)
	suite.db.Model(&model.Product{}).Where("id = ?", product.ID).Update("is_active", false)

	_, err := suite.orderRepo.PlaceOrder(context.Background(), PlaceOrderParams{
		UserID: user.ID,
		Items: []OrderLineParams{
			{ProductID: product.ID, Quantity: 1},
		},
		Address: "123 Test St",
	})

	require.ErrorIs(suite.T(), err, ErrProductInactive)
}

// 兩個併發請求搶最後一件 row lock保證只有一筆成功
func (suite *OrderRepoTestSuite) TestPlaceOrder_ConcurrentLastItem() {
	userA := suite.createTestUser()
	userB := suite.createTestUser()
	product := suite.createTestProduct(50000, 0, 1, nil)

	var wg sync.WaitGroup
	results := make([]error, 2)
	users := []*model.User{userA, userB}

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = suite.orderRepo.PlaceOrder(context.Background(), PlaceOrderParams{
				UserID: users[i].ID,
				Items: []OrderLineParams{
					{ProductID: product.ID, Quantity: 1},
				},
				Address: "123 Test St",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	var stockErr *StockError
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			require.ErrorAs(suite.T(), err, &stockErr)
		}
	}
	require.Equal(suite.T(), 1, succeeded)

	var updated model.Product
	suite.db.First(&updated, "id = ?", product.ID)
	require.Zero(suite.T(), updated.Stock)
}

func (suite *OrderRepoTestSuite) TestGetOrderByID_ScopedToUser() {
	owner := suite.createTestUser()
	other := suite.createTestUser()
	product := suite.createTestProduct(50000, 0, 10, nil)

	ctx := context.Background()
	order, err := suite.orderRepo.PlaceOrder(ctx, PlaceOrderParams{
		UserID:  owner.ID,
		Items:   []OrderLineParams{{ProductID: product.ID, Quantity: 1}},
		Address: "123 Test St",
	})
	require.NoError(suite.T(), err)

	_, err = suite.orderRepo.GetOrderByID(ctx, order.ID, other.ID)
	require.ErrorIs(suite.T(), err, ErrOrderNotFound)

	found, err := suite.orderRepo.GetOrderByID(ctx, order.ID, owner.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), order.ID, found.ID)
}

func (suite *OrderRepoTestSuite) TestGetOrdersPaginated_StatusFilterAndSort() {
	user := suite.createTestUser()
	product := suite.createTestProduct(50000, 0, 100, nil)

	ctx := context.Background()
	var orderIDs []string
	for i := 0; i < 3; i++ {
		order, err := suite.orderRepo.PlaceOrder(ctx, PlaceOrderParams{
			UserID:  user.ID,
			Items:   []OrderLineParams{{ProductID: product.ID, Quantity: i + 1}},
			Address: "123 Test St",
		})
		require.NoError(suite.T(), err)
		orderIDs = append(orderIDs, order.ID)
	}
	require.NoError(suite.T(), suite.orderRepo.UpdateOrderStatus(ctx, orderIDs[0], constants.OrderStatusPaid))

	paid, total, err := suite.orderRepo.GetOrdersPaginated(ctx, OrderListParams{
		UserID: user.ID, Status: constants.OrderStatusPaid, Page: 1, PageSize: 10,
	})
	require.NoError(suite.T(), err)
	require.EqualValues(suite.T(), 1, total)
	require.Len(suite.T(), paid, 1)

	byTotal, _, err := suite.orderRepo.GetOrdersPaginated(ctx, OrderListParams{
		UserID: user.ID, Sort: "total-high", Page: 1, PageSize: 10,
	})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), byTotal, 3)
	require.True(suite.T(), byTotal[0].Total.GreaterThanOrEqual(byTotal[1].Total))
	require.True(suite.T(), byTotal[1].Total.GreaterThanOrEqual(byTotal[2].Total))
}

func (suite *OrderRepoTestSuite) TestCountOrdersByStatus() {
	user := suite.createTestUser()
	product := suite.createTestProduct(50000, 0, 100, nil)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := suite.orderRepo.PlaceOrder(ctx, PlaceOrderParams{
			UserID:  user.ID,
			Items:   []OrderLineParams{{ProductID: product.ID, Quantity: 1}},
			Address: "123 Test St",
		})
		require.NoError(suite.T(), err)
	}

	stats, err := suite.orderRepo.CountOrdersByStatus(ctx, user.ID)
	require.NoError(suite.T(), err)
	require.EqualValues(suite.T(), 2, stats[constants.OrderStatusPending])
}

func (suite *OrderRepoTestSuite) TestUpdateTrackingNumber_SetsShipped() {
	user := suite.createTestUser()
	product := suite.createTestProduct(50000, 0, 10, nil)

	ctx := context.Background()
	order, err := suite.orderRepo.PlaceOrder(ctx, PlaceOrderParams{
		UserID:  user.ID,
		Items:   []OrderLineParams{{ProductID: product.ID, Quantity: 1}},
		Address: "123 Test St",
	})
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.orderRepo.UpdateTrackingNumber(ctx, order.ID, "FL-0000000001"))

	shipped, err := suite.orderRepo.GetOrderByTrackingNumber(ctx, "FL-0000000001")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), constants.OrderStatusShipped, shipped.Status)
	require.Equal(suite.T(), order.ID, shipped.ID)
}

func TestOrderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoTestSuite))
}

func TestGenerateOrderCode(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{8}$`)
	for i := 0; i < 100; i++ {
		code := generateOrderCode()
		require.Regexp(t, pattern, code)
		require.NotEqual(t, byte('0'), code[0])
	}
}
