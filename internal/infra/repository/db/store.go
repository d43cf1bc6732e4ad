package db

import (
	"context"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
)

// IOrderRepository Order 相關操作介面
type IOrderRepository interface {
	PlaceOrder(ctx context.Context, params PlaceOrderParams) (*model.Order, error)
	GetOrderByID(ctx context.Context, orderID, userID string) (*model.Order, error)
	GetOrderByTrackingNumber(ctx context.Context, trackingNumber string) (*model.Order, error)
	GetOrdersPaginated(ctx context.Context, params OrderListParams) ([]model.Order, int64, error)
	CountOrdersByStatus(ctx context.Context, userID string) (map[string]int64, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
	UpdateOrderPaymentMethod(ctx context.Context, orderID, status, paymentMethod string) error
	UpdateTrackingNumber(ctx context.Context, orderID, trackingNumber string) error
}

// IProductRepository Product 相關操作介面
type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID string) (*model.Product, error)
	GetProductsFiltered(ctx context.Context, params ProductFilterParams) ([]model.Product, int64, error)
	GetFeaturedProducts(ctx context.Context, limit int) ([]model.Product, error)
	GetBestSellers(ctx context.Context, limit int) ([]model.Product, error)
	GetRelatedProducts(ctx context.Context, productID, categoryID string, limit int) ([]model.Product, error)
	GetBrands(ctx context.Context) ([]string, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeactivateProduct(ctx context.Context, productID string) error
	CreateProductSize(ctx context.Context, size *model.ProductSize) error
	CreateProductColor(ctx context.Context, color *model.ProductColor) error
	GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	GetAllCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
}

// ICartRepository Cart 相關操作介面
type ICartRepository interface {
	GetOrCreateCart(ctx context.Context, userID string) (*model.Cart, error)
	FindItem(ctx context.Context, cartID, productID, size, color string) (*model.CartItem, error)
	GetItemByID(ctx context.Context, userID, itemID string) (*model.CartItem, error)
	CreateItem(ctx context.Context, item *model.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error
	DeleteItem(ctx context.Context, itemID string) error
	ClearByUser(ctx context.Context, userID string) error
}

// IUserRepository User 相關操作介面
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
}

// IRefreshTokenRepository RefreshToken 相關操作介面
type IRefreshTokenRepository interface {
	CreateToken(ctx context.Context, token *model.RefreshToken) error
	GetTokenByID(ctx context.Context, tokenID string) (*model.RefreshToken, error)
	RotateToken(ctx context.Context, oldTokenID string, newToken *model.RefreshToken) error
	RevokeToken(ctx context.Context, tokenID string) error
	RevokeAllByUser(ctx context.Context, userID string) error
}

// ICouponRepository Coupon 相關操作介面
type ICouponRepository interface {
	CreateCoupon(ctx context.Context, coupon *model.Coupon) error
	GetCouponByCode(ctx context.Context, code string) (*model.Coupon, error)
	HasUserUsedCoupon(ctx context.Context, userID, couponID string) (bool, error)
	MarkCouponUsed(ctx context.Context, userID, couponID string) error
}

// IReviewRepository Review 相關操作介面
type IReviewRepository interface {
	CreateReview(ctx context.Context, review *model.Review) error
	HasUserPurchasedProduct(ctx context.Context, userID, productID string) (bool, error)
	GetReviewsByProduct(ctx context.Context, productID string, page, pageSize int) ([]model.Review, int64, error)
	GetRatingStats(ctx context.Context, productID string) (float64, int64, error)
	GetReviewByID(ctx context.Context, reviewID string) (*model.Review, error)
	UpdateReview(ctx context.Context, review *model.Review) error
	DeleteReview(ctx context.Context, reviewID string) error
	IncrementHelpful(ctx context.Context, reviewID string) error
}

// IReturnRepository ReturnRequest 相關操作介面
type IReturnRepository interface {
	CreateReturnRequest(ctx context.Context, request *model.ReturnRequest) error
	HasActiveReturn(ctx context.Context, orderID string) (bool, error)
	GetReturnByID(ctx context.Context, returnID string) (*model.ReturnRequest, error)
	GetReturnsByUser(ctx context.Context, userID, status string, page, pageSize int) ([]model.ReturnRequest, int64, error)
	ApproveReturn(ctx context.Context, returnID string) error
	RejectReturn(ctx context.Context, returnID string) error
}

// IWishlistRepository Wishlist 相關操作介面
type IWishlistRepository interface {
	GetWishlistByUser(ctx context.Context, userID string) ([]model.WishlistItem, error)
	AddItem(ctx context.Context, item *model.WishlistItem) error
	RemoveItem(ctx context.Context, userID, productID string) error
}
