package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"time"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/producer"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/repository/db"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/er"
	"github.com/rs/zerolog"
)

// 配送狀態 依出貨天數推進
const (
	ShippingStatusProcessing     = "PROCESSING"
	ShippingStatusInTransit      = "IN_TRANSIT"
	ShippingStatusOutForDelivery = "OUT_FOR_DELIVERY"
	ShippingStatusDelivered      = "DELIVERED"
)

type Carrier struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	DeliveryDays int    `json:"delivery_days"`
}

// 合作物流清單
var carriers = []Carrier{
	{Code: "tipax", Name: "Tipax", DeliveryDays: 2},
	{Code: "post", Name: "National Post", DeliveryDays: 4},
	{Code: "express", Name: "City Express", DeliveryDays: 1},
}

type TimelineStep struct {
	Status string     `json:"status"`
	Label  string     `json:"label"`
	Done   bool       `json:"done"`
	At     *time.Time `json:"at,omitempty"`
}

// TrackingInfo 物流查詢結果
type TrackingInfo struct {
	TrackingNumber string         `json:"tracking_number"`
	OrderCode      string         `json:"order_code"`
	Status         string         `json:"status"`
	Progress       int            `json:"progress"`
	ShippedAt      time.Time      `json:"shipped_at"`
	Timeline       []TimelineStep `json:"timeline"`
}

type IShippingService interface {
	// Track 以物流編號查詢配送進度 僅SHIPPED/COMPLETED訂單可查
	Track(ctx context.Context, trackingNumber string) (*TrackingInfo, error)
	// Ship 出貨 產生物流編號 訂單轉SHIPPED並發送order_shipped事件 (admin)
	Ship(ctx context.Context, orderID string) (*model.Order, error)
	// GetCarriers 物流商清單
	GetCarriers() []Carrier
}

type ShippingService struct {
	orderRepo     db.IOrderRepository
	orderProducer producer.IOrderProducer
	logger        *zerolog.Logger
	now           func() time.Time
}

func NewShippingService(orderRepo db.IOrderRepository, orderProducer producer.IOrderProducer, logger *zerolog.Logger) IShippingService {
	if reflect.ValueOf(orderRepo).IsNil() {
		panic("shipping service initialization failed: orderRepo cannot be nil")
	}

	return &ShippingService{
		orderRepo:     orderRepo,
		orderProducer: orderProducer,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *ShippingService) Track(ctx context.Context, trackingNumber string) (*TrackingInfo, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, er.New(er.InvalidArgumentCode, "tracking number is required")
	}

	order, err := s.orderRepo.GetOrderByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		if errors.Is(err, db.ErrOrderNotFound) {
			return nil, er.New(er.NotFoundCode, "tracking number not found")
		}
		return nil, err
	}

	// 出貨時間以狀態轉SHIPPED的更新時間為準
	return buildTrackingInfo(order, s.now()), nil
}

func (s *ShippingService) Ship(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID, "")
	if err != nil {
		if errors.Is(err, db.ErrOrderNotFound) {
			return nil, er.New(er.NotFoundCode, "order not found")
		}
		return nil, err
	}
	if order.Status != constants.OrderStatusPaid && order.Status != constants.OrderStatusPending {
		return nil, er.Newf(er.InvalidArgumentCode, "order in status %s cannot be shipped", order.Status)
	}

	trackingNumber := generateTrackingNumber()
	if err := s.orderRepo.UpdateTrackingNumber(ctx, orderID, trackingNumber); err != nil {
		return nil, err
	}

	shipped, err := s.orderRepo.GetOrderByID(ctx, orderID, "")
	if err != nil {
		return nil, err
	}

	if s.orderProducer != nil && !reflect.ValueOf(s.orderProducer).IsNil() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.orderProducer.ProduceOrderShipped(ctx, shipped); err != nil && s.logger != nil {
				s.logger.Error().Err(err).Str("order_id", shipped.ID).Msg("failed to produce order_shipped event")
			}
		}()
	}
	return shipped, nil
}

func (s *ShippingService) GetCarriers() []Carrier {
	out := make([]Carrier, len(carriers))
	copy(out, carriers)
	return out
}

func generateTrackingNumber() string {
	return fmt.Sprintf("FL-%010d", rand.Int63n(10_000_000_000))
}

// buildTrackingInfo 依出貨天數模擬配送進度
// day 0: PROCESSING 25% / day 1: IN_TRANSIT 50% / day 2: OUT_FOR_DELIVERY 75% / day 3+: DELIVERED 100%
func buildTrackingInfo(order *model.Order, now time.Time) *TrackingInfo {
	shippedAt := order.UpdatedAt
	days := int(now.Sub(shippedAt).Hours() / 24)
	if days < 0 {
		days = 0
	}

	steps := []struct {
		status string
		label  string
	}{
		{ShippingStatusProcessing, "Order processed at warehouse"},
		{ShippingStatusInTransit, "Package in transit"},
		{ShippingStatusOutForDelivery, "Out for delivery"},
		{ShippingStatusDelivered, "Delivered"},
	}

	current := days
	if current > 3 {
		current = 3
	}

	timeline := make([]TimelineStep, 0, len(steps))
	for i, step := range steps {
		ts := TimelineStep{
			Status: step.status,
			Label:  step.label,
			Done:   i <= current,
		}
		if ts.Done {
			at := shippedAt.AddDate(0, 0, i)
			ts.At = &at
		}
		timeline = append(timeline, ts)
	}

	return &TrackingInfo{
		TrackingNumber: order.TrackingNumber,
		OrderCode:      order.OrderCode,
		Status:         steps[current].status,
		Progress:       (current + 1) * 25,
		ShippedAt:      shippedAt,
		Timeline:       timeline,
	}
}
