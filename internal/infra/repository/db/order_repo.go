package db

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrProductInactive 商品已下架
	ErrProductInactive = errors.New("product is not active")
	// ErrInvalidSize 商品無此尺寸
	ErrInvalidSize = errors.New("invalid size for product")
	// ErrInvalidQuantity 數量必須為正整數
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrOrderNotFound 訂單不存在
	ErrOrderNotFound = errors.New("order not found")
)

// StockError 庫存不足 帶出商品名稱與剩餘數量供前端顯示
type StockError struct {
	ProductName string
	Size        string
	Available   int
	Requested   int
}

func (e *StockError) Error() string {
	if e.Size != "" {
		return fmt.Sprintf("insufficient stock for size %s of %s. Available: %d, Requested: %d",
			e.Size, e.ProductName, e.Available, e.Requested)
	}
	return fmt.Sprintf("insufficient stock for %s. Available: %d, Requested: %d",
		e.ProductName, e.Available, e.Requested)
}

type OrderLineParams struct {
	ProductID string
	Quantity  int
	Size      string
	Color     string
}

type PlaceOrderParams struct {
	UserID        string
	Items         []OrderLineParams
	Address       string
	PaymentMethod string
}

type OrderListParams struct {
	UserID   string
	Status   string
	Sort     string
	Page     int
	PageSize int
}

const orderCodeMaxRetry = 3

type OrderRepo struct {
	db *DbDao

	// 交易時間上限 對應下單交易的maxWait/timeout設定
	txTimeout  time.Duration
	txLockWait time.Duration
}

func NewOrderRepo(db *DbDao, txTimeout, txLockWait time.Duration) *OrderRepo {
	return &OrderRepo{db: db, txTimeout: txTimeout, txLockWait: txLockWait}
}

// generateOrderCode 產生8位數字訂單代碼 全域唯一性由unique constraint保證
func generateOrderCode() string {
	return fmt.Sprintf("%08d", 10000000+rand.Intn(90000000))
}

// PlaceOrder 下單核心交易
// 單一交易內完成: 庫存驗證(row lock) -> 建立訂單與明細(凍結折扣價) -> 扣庫存加銷量 -> 清空購物車
// 任一驗證失敗整筆rollback 不會有部分寫入
func (s *OrderRepo) PlaceOrder(ctx context.Context, params PlaceOrderParams) (*model.Order, error) {
	var orderID string

	err := s.db.ExecTx(ctx, s.txTimeout, s.txLockWait, func(tx *gorm.DB) error {
		total := decimal.Zero
		orderItems := make([]model.OrderItem, 0, len(params.Items))

		type sizeDeduction struct {
			sizeID   string
			quantity int
		}
		sizeDeductions := make([]sizeDeduction, 0)

		for _, item := range params.Items {
			if item.Quantity <= 0 {
				return ErrInvalidQuantity
			}

			// SELECT ... FOR UPDATE 直到commit前其他下單交易讀不到舊庫存
			var product model.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			if err != nil {
				return err
			}

			if !product.IsActive {
				return ErrProductInactive
			}

			if product.Stock < item.Quantity {
				return &StockError{
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   item.Quantity,
				}
			}

			// 尺寸層級庫存獨立驗證 ONE_SIZE為不分尺寸哨兵值
			if item.Size != "" && item.Size != constants.SizeOneSize {
				var productSize model.ProductSize
				err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					First(&productSize, "product_id = ? AND size = ?", item.ProductID, item.Size).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrInvalidSize
				}
				if err != nil {
					return err
				}

				if productSize.Stock < item.Quantity {
					return &StockError{
						ProductName: product.Name,
						Size:        item.Size,
						Available:   productSize.Stock,
						Requested:   item.Quantity,
					}
				}

				sizeDeductions = append(sizeDeductions, sizeDeduction{
					sizeID:   productSize.ID,
					quantity: item.Quantity,
				})
			}

			unitPrice := product.FinalPrice()
			total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))

			orderItems = append(orderItems, model.OrderItem{
				ID:        uuid.New().String(),
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     unitPrice,
				Size:      item.Size,
				Color:     item.Color,
			})
		}

		paymentMethod := params.PaymentMethod
		if paymentMethod == "" {
			paymentMethod = constants.PaymentMethodOnline
		}

		// 訂單代碼先查重再寫入 殘餘race由unique constraint擋下
		orderCode := ""
		for i := 0; i < orderCodeMaxRetry; i++ {
			candidate := generateOrderCode()
			var count int64
			if err := tx.Model(&model.Order{}).Where("order_code = ?", candidate).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				orderCode = candidate
				break
			}
		}
		if orderCode == "" {
			return fmt.Errorf("failed to generate unique order code after %d attempts", orderCodeMaxRetry)
		}

		order := model.Order{
			ID:            uuid.New().String(),
			UserID:        params.UserID,
			Total:         total.Round(2),
			Address:       params.Address,
			Status:        constants.OrderStatusPending,
			OrderCode:     orderCode,
			PaymentMethod: paymentMethod,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		orderID = order.ID

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}

		// 扣總庫存 加銷量
		for _, item := range params.Items {
			err := tx.Model(&model.Product{}).
				Where("id = ?", item.ProductID).
				Updates(map[string]interface{}{
					"stock":       gorm.Expr("stock - ?", item.Quantity),
					"sales_count": gorm.Expr("sales_count + ?", item.Quantity),
				}).Error
			if err != nil {
				return err
			}
		}

		// 扣尺寸庫存
		for _, d := range sizeDeductions {
			err := tx.Model(&model.ProductSize{}).
				Where("id = ?", d.sizeID).
				Update("stock", gorm.Expr("stock - ?", d.quantity)).Error
			if err != nil {
				return err
			}
		}

		// 清空購物車 不論品項是否來自購物車
		var cart model.Cart
		err := tx.First(&cart, "user_id = ?", params.UserID).Error
		if err == nil {
			if err := tx.Unscoped().Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrderByID(ctx, orderID, "")
}

// GetOrderByID 查詢訂單與明細 userID非空時限定擁有者
func (s *OrderRepo) GetOrderByID(ctx context.Context, orderID, userID string) (*model.Order, error) {
	query := s.db.WithContext(ctx).
		Preload("Items.Product.Sizes").
		Preload("Items.Product.Colors").
		Preload("Items.Product.Category")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var order model.Order
	err := query.First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderByTrackingNumber 出貨後才能以物流編號查詢
func (s *OrderRepo) GetOrderByTrackingNumber(ctx context.Context, trackingNumber string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").
		Where("tracking_number = ? AND status IN ?", trackingNumber,
			[]string{constants.OrderStatusShipped, constants.OrderStatusCompleted}).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// 分頁查詢用戶訂單
func (s *OrderRepo) GetOrdersPaginated(ctx context.Context, params OrderListParams) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	query := s.db.WithContext(ctx).Model(&model.Order{}).Where("user_id = ?", params.UserID)
	if params.Status != "" && params.Status != "all" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := "created_at DESC"
	switch params.Sort {
	case "oldest":
		orderBy = "created_at ASC"
	case "total-high":
		orderBy = "total DESC"
	case "total-low":
		orderBy = "total ASC"
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.
		Preload("Items.Product.Sizes").
		Preload("Items.Product.Colors").
		Preload("Items.Product.Category").
		Order(orderBy).
		Offset(offset).
		Limit(params.PageSize).
		Find(&orders).Error

	return orders, total, err
}

// CountOrdersByStatus 各狀態訂單數統計
func (s *OrderRepo) CountOrdersByStatus(ctx context.Context, userID string) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	err := s.db.WithContext(ctx).Model(&model.Order{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int64, len(rows))
	for _, row := range rows {
		stats[row.Status] = row.Count
	}
	return stats, nil
}

// Update - 更新訂單狀態
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	result := s.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// Update - 更新付款方式
func (s *OrderRepo) UpdateOrderPaymentMethod(ctx context.Context, orderID, status, paymentMethod string) error {
	result := s.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":         status,
			"payment_method": paymentMethod,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// UpdateTrackingNumber 出貨時寫入物流編號
func (s *OrderRepo) UpdateTrackingNumber(ctx context.Context, orderID, trackingNumber string) error {
	result := s.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"tracking_number": trackingNumber,
			"status":          constants.OrderStatusShipped,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
