package constants

import "time"

type ContextKey string

const (
	RequestIDKey            ContextKey = "request_id"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
	DeviceInfoKey           ContextKey = "device_info"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "bearer"
)

// token有效期限
const (
	AccessTokenDuration  = 1 * time.Hour
	RefreshTokenDuration = 7 * 24 * time.Hour
)

// 尺寸哨兵值 表示該商品不分尺寸
const SizeOneSize = "ONE_SIZE"

// 訂單狀態
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
	OrderStatusReturned  = "RETURNED"
)

// 付款方式
const (
	PaymentMethodOnline         = "ONLINE"
	PaymentMethodCashOnDelivery = "CASH_ON_DELIVERY"
)

// 退貨申請狀態
const (
	ReturnStatusPending  = "PENDING"
	ReturnStatusApproved = "APPROVED"
	ReturnStatusRejected = "REJECTED"
)

// 優惠券折扣類型
const (
	CouponTypePercentage = "PERCENTAGE"
	CouponTypeFixed      = "FIXED"
)

// 使用者角色
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
