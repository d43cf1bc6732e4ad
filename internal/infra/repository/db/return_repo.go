package db

import (
	"context"
	"errors"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"gorm.io/gorm"
)

var (
	// ErrReturnNotFound 退貨申請不存在
	ErrReturnNotFound = errors.New("return request not found")
)

type ReturnRepo struct {
	db *DbDao
}

func NewReturnRepo(db *DbDao) *ReturnRepo {
	return &ReturnRepo{db: db}
}

func (s *ReturnRepo) CreateReturnRequest(ctx context.Context, request *model.ReturnRequest) error {
	return s.db.WithContext(ctx).Create(request).Error
}

// HasActiveReturn 該訂單是否已有處理中的退貨申請
func (s *ReturnRepo) HasActiveReturn(ctx context.Context, orderID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ReturnRequest{}).
		Where("order_id = ? AND status IN ?", orderID,
			[]string{constants.ReturnStatusPending, constants.ReturnStatusApproved}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *ReturnRepo) GetReturnByID(ctx context.Context, returnID string) (*model.ReturnRequest, error) {
	var request model.ReturnRequest
	err := s.db.WithContext(ctx).
		Preload("Items.OrderItem.Product").
		Preload("Order.Items.Product").
		First(&request, "id = ?", returnID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReturnNotFound
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// 用戶退貨申請分頁
func (s *ReturnRepo) GetReturnsByUser(ctx context.Context, userID, status string, page, pageSize int) ([]model.ReturnRequest, int64, error) {
	var returns []model.ReturnRequest
	var total int64

	query := s.db.WithContext(ctx).Model(&model.ReturnRequest{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Items.OrderItem.Product").
		Preload("Order").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&returns).Error

	return returns, total, err
}

// ApproveReturn 核准退貨 回補庫存並將訂單標記為RETURNED 單一交易
func (s *ReturnRepo) ApproveReturn(ctx context.Context, returnID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request model.ReturnRequest
		err := tx.Preload("Items.OrderItem").First(&request, "id = ?", returnID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReturnNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&model.ReturnRequest{}).
			Where("id = ?", returnID).
			Update("status", constants.ReturnStatusApproved).Error; err != nil {
			return err
		}

		// 回補商品庫存與尺寸庫存
		for _, item := range request.Items {
			if item.OrderItem == nil {
				continue
			}
			err := tx.Model(&model.Product{}).
				Where("id = ?", item.OrderItem.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error
			if err != nil {
				return err
			}

			if item.OrderItem.Size != "" && item.OrderItem.Size != constants.SizeOneSize {
				err := tx.Model(&model.ProductSize{}).
					Where("product_id = ? AND size = ?", item.OrderItem.ProductID, item.OrderItem.Size).
					Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error
				if err != nil {
					return err
				}
			}
		}

		return tx.Model(&model.Order{}).
			Where("id = ?", request.OrderID).
			Update("status", constants.OrderStatusReturned).Error
	})
}

// RejectReturn 駁回退貨申請
func (s *ReturnRepo) RejectReturn(ctx context.Context, returnID string) error {
	result := s.db.WithContext(ctx).Model(&model.ReturnRequest{}).
		Where("id = ?", returnID).
		Update("status", constants.ReturnStatusRejected)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReturnNotFound
	}
	return nil
}
