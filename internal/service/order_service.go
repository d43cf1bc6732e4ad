package service

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/producer"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/repository/db"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/er"
	"github.com/rs/zerolog"
)

// OrderStats 訂單數統計 all為總數 其餘依狀態分組
type OrderStats struct {
	All       int64 `json:"all"`
	Pending   int64 `json:"pending"`
	Paid      int64 `json:"paid"`
	Shipped   int64 `json:"shipped"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
	Returned  int64 `json:"returned"`
}

type IOrderService interface {
	// PlaceOrder 下單
	// 整筆交易由repo保證原子性 成功後非同步發送order_created事件
	//
	// 錯誤:
	//   - er.InsufficientStockCode 462: 庫存不足 訊息帶商品名稱與剩餘數量
	//   - er.NotFoundCode 404: 商品不存在
	//   - er.InvalidArgumentCode 460: 商品下架 尺寸無效 數量非正 地址為空
	PlaceOrder(ctx context.Context, params db.PlaceOrderParams) (*model.Order, error)
	// GetOrder 取得訂單 限定擁有者
	GetOrder(ctx context.Context, orderID, userID string) (*model.Order, error)
	// ListOrders 分頁查詢用戶訂單 支援狀態過濾與排序
	ListOrders(ctx context.Context, params db.OrderListParams) ([]model.Order, int64, error)
	// GetOrderStats 用戶各狀態訂單數
	GetOrderStats(ctx context.Context, userID string) (*OrderStats, error)
	// CancelOrder 取消訂單 僅限PENDING狀態
	CancelOrder(ctx context.Context, orderID, userID string) error
	// UpdateOrderStatus 更新訂單狀態 (admin)
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
}

type OrderService struct {
	orderRepo     db.IOrderRepository
	orderProducer producer.IOrderProducer
	logger        *zerolog.Logger
}

func NewOrderService(orderRepo db.IOrderRepository, orderProducer producer.IOrderProducer, logger *zerolog.Logger) IOrderService {
	if reflect.ValueOf(orderRepo).IsNil() {
		panic("order service initialization failed: orderRepo cannot be nil")
	}

	return &OrderService{
		orderRepo:     orderRepo,
		orderProducer: orderProducer,
		logger:        logger,
	}
}

var validOrderStatuses = map[string]bool{
	constants.OrderStatusPending:   true,
	constants.OrderStatusPaid:      true,
	constants.OrderStatusShipped:   true,
	constants.OrderStatusCompleted: true,
	constants.OrderStatusCancelled: true,
	constants.OrderStatusReturned:  true,
}

func (o *OrderService) PlaceOrder(ctx context.Context, params db.PlaceOrderParams) (*model.Order, error) {
	if len(params.Items) == 0 {
		return nil, er.New(er.InvalidArgumentCode, "order must contain at least one item")
	}
	if params.Address == "" {
		return nil, er.New(er.InvalidArgumentCode, "shipping address is required")
	}
	if params.PaymentMethod != "" &&
		params.PaymentMethod != constants.PaymentMethodOnline &&
		params.PaymentMethod != constants.PaymentMethodCashOnDelivery {
		return nil, er.New(er.InvalidArgumentCode, "invalid payment method")
	}

	order, err := o.orderRepo.PlaceOrder(ctx, params)
	if err != nil {
		return nil, o.mapPlaceOrderError(err)
	}

	o.emitEvent(func(ctx context.Context) error {
		return o.orderProducer.ProduceOrderCreated(ctx, order)
	}, order.ID, "order_created")

	return order, nil
}

func (o *OrderService) GetOrder(ctx context.Context, orderID, userID string) (*model.Order, error) {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, db.ErrOrderNotFound) {
			return nil, er.New(er.NotFoundCode, "order not found")
		}
		return nil, err
	}
	return order, nil
}

func (o *OrderService) ListOrders(ctx context.Context, params db.OrderListParams) ([]model.Order, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 10
	}
	if params.Status != "" && params.Status != "all" && !validOrderStatuses[params.Status] {
		return nil, 0, er.New(er.InvalidArgumentCode, "invalid order status filter")
	}
	return o.orderRepo.GetOrdersPaginated(ctx, params)
}

func (o *OrderService) GetOrderStats(ctx context.Context, userID string) (*OrderStats, error) {
	counts, err := o.orderRepo.CountOrdersByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &OrderStats{
		Pending:   counts[constants.OrderStatusPending],
		Paid:      counts[constants.OrderStatusPaid],
		Shipped:   counts[constants.OrderStatusShipped],
		Completed: counts[constants.OrderStatusCompleted],
		Cancelled: counts[constants.OrderStatusCancelled],
		Returned:  counts[constants.OrderStatusReturned],
	}
	for _, count := range counts {
		stats.All += count
	}
	return stats, nil
}

func (o *OrderService) CancelOrder(ctx context.Context, orderID, userID string) error {
	order, err := o.GetOrder(ctx, orderID, userID)
	if err != nil {
		return err
	}
	if order.Status != constants.OrderStatusPending {
		return er.New(er.InvalidArgumentCode, "only pending orders can be cancelled")
	}
	return o.orderRepo.UpdateOrderStatus(ctx, orderID, constants.OrderStatusCancelled)
}

func (o *OrderService) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	if !validOrderStatuses[status] {
		return er.New(er.InvalidArgumentCode, "invalid order status")
	}
	if err := o.orderRepo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, db.ErrOrderNotFound) {
			return er.New(er.NotFoundCode, "order not found")
		}
		return err
	}
	return nil
}

// mapPlaceOrderError repo層錯誤轉業務錯誤碼
func (o *OrderService) mapPlaceOrderError(err error) error {
	var stockErr *db.StockError
	switch {
	case errors.As(err, &stockErr):
		return er.Wrap(er.InsufficientStockCode, stockErr.Error(), err)
	case errors.Is(err, db.ErrProductNotFound):
		return er.New(er.NotFoundCode, "product not found")
	case errors.Is(err, db.ErrProductInactive):
		return er.New(er.InvalidArgumentCode, "product is no longer available")
	case errors.Is(err, db.ErrInvalidSize):
		return er.New(er.InvalidArgumentCode, "selected size is not available")
	case errors.Is(err, db.ErrInvalidQuantity):
		return er.New(er.InvalidArgumentCode, "quantity must be greater than zero")
	case errors.Is(err, context.DeadlineExceeded):
		if o.logger != nil {
			o.logger.Error().Err(err).Msg("order transaction timed out")
		}
		return er.Wrap(er.InternalErrorCode, "order processing timed out, please try again", err)
	default:
		return err
	}
}

// emitEvent 事件發送不阻塞下單流程 失敗只記log
func (o *OrderService) emitEvent(fn func(ctx context.Context) error, orderID, event string) {
	if o.orderProducer == nil || reflect.ValueOf(o.orderProducer).IsNil() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil && o.logger != nil {
			o.logger.Error().Err(err).
				Str("order_id", orderID).
				Str("event", event).
				Msg("failed to produce order event")
		}
	}()
}
