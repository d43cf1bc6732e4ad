package api

import "github.com/PouyaFakhri/FitLand-BackEnd/internal/api/handler"

type Server struct {
	AuthHandler     *handler.AuthHandler
	ProductHandler  *handler.ProductHandler
	CartHandler     *handler.CartHandler
	OrderHandler    *handler.OrderHandler
	CouponHandler   *handler.CouponHandler
	ReviewHandler   *handler.ReviewHandler
	ReturnHandler   *handler.ReturnHandler
	ShippingHandler *handler.ShippingHandler
	WishlistHandler *handler.WishlistHandler
	PaymentHandler  *handler.PaymentHandler
}

func NewServer(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	couponHandler *handler.CouponHandler,
	reviewHandler *handler.ReviewHandler,
	returnHandler *handler.ReturnHandler,
	shippingHandler *handler.ShippingHandler,
	wishlistHandler *handler.WishlistHandler,
	paymentHandler *handler.PaymentHandler,
) *Server {
	return &Server{
		AuthHandler:     authHandler,
		ProductHandler:  productHandler,
		CartHandler:     cartHandler,
		OrderHandler:    orderHandler,
		CouponHandler:   couponHandler,
		ReviewHandler:   reviewHandler,
		ReturnHandler:   returnHandler,
		ShippingHandler: shippingHandler,
		WishlistHandler: wishlistHandler,
		PaymentHandler:  paymentHandler,
	}
}
