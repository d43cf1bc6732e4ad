package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/producer"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/repository/db"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/er"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PaymentIntent 模擬金流的付款意圖 client secret交給前端完成付款流程
type PaymentIntent struct {
	OrderID      string          `json:"order_id"`
	Amount       decimal.Decimal `json:"amount"`
	ClientSecret string          `json:"client_secret"`
}

type IPaymentService interface {
	// CreateIntent 為PENDING訂單建立付款意圖
	CreateIntent(ctx context.Context, userID, orderID string) (*PaymentIntent, error)
	// Confirm 確認付款 訂單轉PAID並發送order_paid事件
	Confirm(ctx context.Context, userID, orderID string) (*model.Order, error)
	// SetCashOnDelivery 改為貨到付款 訂單維持PENDING
	SetCashOnDelivery(ctx context.Context, userID, orderID string) (*model.Order, error)
}

type PaymentService struct {
	orderRepo     db.IOrderRepository
	orderProducer producer.IOrderProducer
	logger        *zerolog.Logger
}

func NewPaymentService(orderRepo db.IOrderRepository, orderProducer producer.IOrderProducer, logger *zerolog.Logger) IPaymentService {
	if reflect.ValueOf(orderRepo).IsNil() {
		panic("payment service initialization failed: orderRepo cannot be nil")
	}

	return &PaymentService{
		orderRepo:     orderRepo,
		orderProducer: orderProducer,
		logger:        logger,
	}
}

func (p *PaymentService) CreateIntent(ctx context.Context, userID, orderID string) (*PaymentIntent, error) {
	order, err := p.getPendingOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	secret := fmt.Sprintf("pi_%s_secret_%s",
		strings.ReplaceAll(uuid.New().String(), "-", ""),
		strings.ReplaceAll(uuid.New().String(), "-", "")[:16])

	return &PaymentIntent{
		OrderID:      order.ID,
		Amount:       order.Total,
		ClientSecret: secret,
	}, nil
}

func (p *PaymentService) Confirm(ctx context.Context, userID, orderID string) (*model.Order, error) {
	if _, err := p.getPendingOrder(ctx, userID, orderID); err != nil {
		return nil, err
	}

	err := p.orderRepo.UpdateOrderPaymentMethod(ctx, orderID, constants.OrderStatusPaid, constants.PaymentMethodOnline)
	if err != nil {
		return nil, err
	}

	order, err := p.orderRepo.GetOrderByID(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	if p.orderProducer != nil && !reflect.ValueOf(p.orderProducer).IsNil() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := p.orderProducer.ProduceOrderPaid(ctx, order); err != nil && p.logger != nil {
				p.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to produce order_paid event")
			}
		}()
	}
	return order, nil
}

func (p *PaymentService) SetCashOnDelivery(ctx context.Context, userID, orderID string) (*model.Order, error) {
	if _, err := p.getPendingOrder(ctx, userID, orderID); err != nil {
		return nil, err
	}

	err := p.orderRepo.UpdateOrderPaymentMethod(ctx, orderID, constants.OrderStatusPending, constants.PaymentMethodCashOnDelivery)
	if err != nil {
		return nil, err
	}
	return p.orderRepo.GetOrderByID(ctx, orderID, userID)
}

func (p *PaymentService) getPendingOrder(ctx context.Context, userID, orderID string) (*model.Order, error) {
	order, err := p.orderRepo.GetOrderByID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, db.ErrOrderNotFound) {
			return nil, er.New(er.NotFoundCode, "order not found")
		}
		return nil, err
	}
	if order.Status != constants.OrderStatusPending {
		return nil, er.Newf(er.InvalidArgumentCode, "order is already %s", strings.ToLower(order.Status))
	}
	return order, nil
}
