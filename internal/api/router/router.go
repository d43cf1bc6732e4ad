package router

import (
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/api"
	m "github.com/PouyaFakhri/FitLand-BackEnd/internal/api/middleware"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/limiter"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, tokenMaker token.Maker, rateLimiter limiter.ILimiter, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.RateLimitMiddleware(rateLimiter))
	r.Use(m.AuthPayloadMiddleware(tokenMaker))
	r.Use(m.DeviceInfoMiddleware)
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.RecoverMiddleware(logger))

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", server.AuthHandler.Register)
			r.Post("/login", server.AuthHandler.Login)
			r.Post("/refresh-token", server.AuthHandler.Refresh)
			r.Post("/logout", server.AuthHandler.Logout)
			r.With(m.AuthMiddleware).Get("/me", server.AuthHandler.Me)
		})

		// 公開目錄
		r.Route("/products", func(r chi.Router) {
			r.Get("/", server.ProductHandler.List)
			r.Get("/featured", server.ProductHandler.Featured)
			r.Get("/best-sellers", server.ProductHandler.BestSellers)
			r.Get("/brands", server.ProductHandler.Brands)
			r.Get("/{id}", server.ProductHandler.Get)
			r.Get("/{id}/related", server.ProductHandler.Related)
			r.Get("/{productID}/reviews", server.ReviewHandler.List)
			r.With(m.AuthMiddleware).Post("/{productID}/reviews", server.ReviewHandler.Create)
		})
		r.Get("/categories", server.ProductHandler.Categories)

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/{id}/helpful", server.ReviewHandler.MarkHelpful)
			r.Group(func(r chi.Router) {
				r.Use(m.AuthMiddleware)
				r.Put("/{id}", server.ReviewHandler.Update)
				r.Delete("/{id}", server.ReviewHandler.Delete)
			})
		})

		// 物流查詢不需登入
		r.Route("/shipping", func(r chi.Router) {
			r.Get("/carriers", server.ShippingHandler.Carriers)
			r.Get("/track/{trackingNumber}", server.ShippingHandler.Track)
		})

		// 需登入
		r.Group(func(r chi.Router) {
			r.Use(m.AuthMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", server.CartHandler.Get)
				r.Post("/items", server.CartHandler.AddItem)
				r.Put("/items/{itemID}", server.CartHandler.UpdateItem)
				r.Delete("/items/{itemID}", server.CartHandler.RemoveItem)
				r.Delete("/", server.CartHandler.Clear)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", server.OrderHandler.Place)
				r.Get("/", server.OrderHandler.List)
				r.Get("/stats", server.OrderHandler.Stats)
				r.Get("/{id}", server.OrderHandler.Get)
				r.Post("/{id}/cancel", server.OrderHandler.Cancel)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/{orderID}/intent", server.PaymentHandler.CreateIntent)
				r.Post("/{orderID}/confirm", server.PaymentHandler.Confirm)
				r.Post("/{orderID}/cash-on-delivery", server.PaymentHandler.CashOnDelivery)
			})

			r.Post("/coupons/validate", server.CouponHandler.Validate)

			r.Route("/returns", func(r chi.Router) {
				r.Post("/", server.ReturnHandler.Create)
				r.Get("/", server.ReturnHandler.List)
				r.Get("/{id}", server.ReturnHandler.Get)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", server.WishlistHandler.Get)
				r.Post("/", server.WishlistHandler.Add)
				r.Delete("/{productID}", server.WishlistHandler.Remove)
			})
		})

		// 管理後台
		r.Route("/admin", func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Use(m.AdminMiddleware)

			r.Post("/products", server.ProductHandler.Create)
			r.Put("/products/{id}", server.ProductHandler.Update)
			r.Delete("/products/{id}", server.ProductHandler.Deactivate)
			r.Post("/products/{id}/sizes", server.ProductHandler.AddSize)
			r.Post("/products/{id}/colors", server.ProductHandler.AddColor)
			r.Post("/categories", server.ProductHandler.CreateCategory)
			r.Post("/coupons", server.CouponHandler.Create)
			r.Put("/orders/{id}/status", server.OrderHandler.UpdateStatus)
			r.Post("/orders/{orderID}/ship", server.ShippingHandler.Ship)
			r.Post("/returns/{id}/approve", server.ReturnHandler.Approve)
			r.Post("/returns/{id}/reject", server.ReturnHandler.Reject)
		})
	})

	return r
}
