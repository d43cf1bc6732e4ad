package service

import (
	"context"
	"errors"
	"reflect"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/repository/db"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/er"
	"github.com/google/uuid"
)

type ReturnLineParams struct {
	OrderItemID  string
	Quantity     int
	ReturnReason string
}

type CreateReturnParams struct {
	OrderID string
	Reason  string
	Items   []ReturnLineParams
}

type IReturnService interface {
	// CreateReturn 建立退貨申請
	// 訂單須為COMPLETED且無處理中申請 每項退貨數量不得超過購買數量
	//
	// 錯誤:
	//   - er.NotFoundCode 404: 訂單不存在或非本人
	//   - er.ConflictCode 409: 已有處理中的退貨申請
	//   - er.InvalidArgumentCode 460: 訂單未完成 品項無效 數量超過購買數
	CreateReturn(ctx context.Context, userID string, params CreateReturnParams) (*model.ReturnRequest, error)
	// ListReturns 用戶退貨申請分頁
	ListReturns(ctx context.Context, userID, status string, page, pageSize int) ([]model.ReturnRequest, int64, error)
	GetReturn(ctx context.Context, userID, returnID string) (*model.ReturnRequest, error)
	// ApproveReturn 核准退貨 回補庫存並標記訂單RETURNED (admin)
	ApproveReturn(ctx context.Context, returnID string) error
	// RejectReturn 駁回退貨 (admin)
	RejectReturn(ctx context.Context, returnID string) error
}

type ReturnService struct {
	returnRepo db.IReturnRepository
	orderRepo  db.IOrderRepository
}

func NewReturnService(returnRepo db.IReturnRepository, orderRepo db.IOrderRepository) IReturnService {
	if reflect.ValueOf(returnRepo).IsNil() {
		panic("return service initialization failed: returnRepo cannot be nil")
	}
	if reflect.ValueOf(orderRepo).IsNil() {
		panic("return service initialization failed: orderRepo cannot be nil")
	}

	return &ReturnService{
		returnRepo: returnRepo,
		orderRepo:  orderRepo,
	}
}

func (r *ReturnService) CreateReturn(ctx context.Context, userID string, params CreateReturnParams) (*model.ReturnRequest, error) {
	if len(params.Items) == 0 {
		return nil, er.New(er.InvalidArgumentCode, "return request must contain at least one item")
	}

	order, err := r.orderRepo.GetOrderByID(ctx, params.OrderID, userID)
	if err != nil {
		if errors.Is(err, db.ErrOrderNotFound) {
			return nil, er.New(er.NotFoundCode, "order not found")
		}
		return nil, err
	}
	if order.Status != constants.OrderStatusShipped && order.Status != constants.OrderStatusCompleted {
		return nil, er.New(er.InvalidArgumentCode, "only shipped or completed orders can be returned")
	}

	active, err := r.returnRepo.HasActiveReturn(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, er.New(er.ConflictCode, "a return request for this order is already in progress")
	}

	// 退貨品項必須屬於該訂單 數量不超過購買數
	purchased := make(map[string]int, len(order.Items))
	for _, item := range order.Items {
		purchased[item.ID] = item.Quantity
	}

	items := make([]model.ReturnItem, 0, len(params.Items))
	for _, line := range params.Items {
		quantity, ok := purchased[line.OrderItemID]
		if !ok {
			return nil, er.New(er.InvalidArgumentCode, "item does not belong to this order")
		}
		if line.Quantity <= 0 || line.Quantity > quantity {
			return nil, er.Newf(er.InvalidArgumentCode, "return quantity must be between 1 and %d", quantity)
		}
		items = append(items, model.ReturnItem{
			ID:           uuid.New().String(),
			OrderItemID:  line.OrderItemID,
			Quantity:     line.Quantity,
			ReturnReason: line.ReturnReason,
		})
	}

	request := &model.ReturnRequest{
		ID:      uuid.New().String(),
		OrderID: order.ID,
		UserID:  userID,
		Reason:  params.Reason,
		Status:  constants.ReturnStatusPending,
		Items:   items,
	}
	if err := r.returnRepo.CreateReturnRequest(ctx, request); err != nil {
		return nil, err
	}
	return r.returnRepo.GetReturnByID(ctx, request.ID)
}

func (r *ReturnService) ListReturns(ctx context.Context, userID, status string, page, pageSize int) ([]model.ReturnRequest, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}
	return r.returnRepo.GetReturnsByUser(ctx, userID, status, page, pageSize)
}

func (r *ReturnService) GetReturn(ctx context.Context, userID, returnID string) (*model.ReturnRequest, error) {
	request, err := r.returnRepo.GetReturnByID(ctx, returnID)
	if err != nil {
		if errors.Is(err, db.ErrReturnNotFound) {
			return nil, er.New(er.NotFoundCode, "return request not found")
		}
		return nil, err
	}
	if request.UserID != userID {
		return nil, er.New(er.NotFoundCode, "return request not found")
	}
	return request, nil
}

func (r *ReturnService) ApproveReturn(ctx context.Context, returnID string) error {
	request, err := r.returnRepo.GetReturnByID(ctx, returnID)
	if err != nil {
		if errors.Is(err, db.ErrReturnNotFound) {
			return er.New(er.NotFoundCode, "return request not found")
		}
		return err
	}
	if request.Status != constants.ReturnStatusPending {
		return er.Newf(er.InvalidArgumentCode, "return request is already %s", request.Status)
	}
	return r.returnRepo.ApproveReturn(ctx, returnID)
}

func (r *ReturnService) RejectReturn(ctx context.Context, returnID string) error {
	request, err := r.returnRepo.GetReturnByID(ctx, returnID)
	if err != nil {
		if errors.Is(err, db.ErrReturnNotFound) {
			return er.New(er.NotFoundCode, "return request not found")
		}
		return err
	}
	if request.Status != constants.ReturnStatusPending {
		return er.Newf(er.InvalidArgumentCode, "return request is already %s", request.Status)
	}
	return r.returnRepo.RejectReturn(ctx, returnID)
}
