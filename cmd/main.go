package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/api"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/api/handler"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/api/router"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/appcontext"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/config"
)

func main() {
	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal(err)
		return
	}

	// 初始化 handler
	server := api.NewServer(
		handler.NewAuthHandler(app.AuthService),
		handler.NewProductHandler(app.ProductService),
		handler.NewCartHandler(app.CartService),
		handler.NewOrderHandler(app.OrderService),
		handler.NewCouponHandler(app.CouponService),
		handler.NewReviewHandler(app.ReviewService),
		handler.NewReturnHandler(app.ReturnService),
		handler.NewShippingHandler(app.ShippingService),
		handler.NewWishlistHandler(app.WishlistService),
		handler.NewPaymentHandler(app.PaymentService),
	)

	// 設置路由
	r := router.SetupRouter(server, app.TokenMaker, app.RateLimiter, app.Logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", app.Cf.ServerPort),
		Handler: r,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutDownCompleted := make(chan struct{}, 1)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		if err := app.Shutdown(shutdownCtx); err != nil {
			log.Printf("Application shutdown error: %v", err)
		}

		shutDownCompleted <- struct{}{}
	}()

	// 啟動服務
	log.Printf("Server starting on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal(err)
	}
	<-shutDownCompleted
	log.Printf("closed completed")
}
