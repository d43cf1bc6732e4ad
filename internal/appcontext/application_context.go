package appcontext

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/config"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/limiter"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/producer"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/repository/db"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/repository/redis_repo"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/token"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const productCacheTTL = 10 * time.Minute

type ApplicationContext struct {
	Cf     *config.Config
	Logger *zerolog.Logger

	DbConn        *gorm.DB
	DbDao         *db.DbDao
	RedisClient   *redis.Client
	OrderProducer producer.IOrderProducer
	RateLimiter   limiter.ILimiter
	TokenMaker    token.Maker

	AuthService     service.IAuthService
	ProductService  service.IProductService
	CartService     service.ICartService
	OrderService    service.IOrderService
	CouponService   service.ICouponService
	ReviewService   service.IReviewService
	ReturnService   service.IReturnService
	ShippingService service.IShippingService
	WishlistService service.IWishlistService
	PaymentService  service.IPaymentService

	orderRepo    db.IOrderRepository
	productRepo  db.IProductRepository
	cartRepo     db.ICartRepository
	userRepo     db.IUserRepository
	tokenRepo    db.IRefreshTokenRepository
	couponRepo   db.ICouponRepository
	reviewRepo   db.IReviewRepository
	returnRepo   db.IReturnRepository
	wishlistRepo db.IWishlistRepository
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	if err := app.Init(); err != nil {
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	app.setUpLogger()

	if err := app.setUpDbConn(); err != nil {
		return err
	}
	if err := app.setUpRepos(); err != nil {
		return err
	}
	if err := app.setUpRedis(); err != nil {
		return err
	}
	if err := app.setUpTokenMaker(); err != nil {
		return err
	}
	app.setUpProducer()
	app.setUpRateLimiter()
	app.setUpServices()

	return nil
}

func (app *ApplicationContext) setUpLogger() {
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("module", app.Cf.ModulerName).
		Logger()
	app.Logger = &logger
}

func (app *ApplicationContext) setUpDbConn() error {
	log.Printf("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	app.DbDao = db.NewDbDao(conn)

	if err := app.DbDao.InitMigrate(); err != nil {
		return err
	}
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpRepos() error {
	log.Printf("Start setup repositories")
	app.orderRepo = db.NewOrderRepo(app.DbDao, app.Cf.OrderTxTimeout(), app.Cf.OrderTxLockWait())
	app.productRepo = db.NewProductRepo(app.DbDao)
	app.cartRepo = db.NewCartRepo(app.DbDao)
	app.userRepo = db.NewUserRepo(app.DbDao)
	app.tokenRepo = db.NewRefreshTokenRepo(app.DbDao)
	app.couponRepo = db.NewCouponRepo(app.DbDao)
	app.reviewRepo = db.NewReviewRepo(app.DbDao)
	app.returnRepo = db.NewReturnRepo(app.DbDao)
	app.wishlistRepo = db.NewWishlistRepo(app.DbDao)
	log.Printf("Finish setup repositories")
	return nil
}

func (app *ApplicationContext) setUpRedis() error {
	log.Printf("Start setup redis")
	app.RedisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", app.Cf.RedisHost, app.Cf.RedisPort),
		Password: app.Cf.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.RedisClient.Ping(ctx).Err(); err != nil {
		// redis僅用於快取與限流 連不上時降級運行
		app.Logger.Warn().Err(err).Msg("redis unavailable, cache and rate limiting degraded")
	}
	log.Printf("Finish setup redis")
	return nil
}

func (app *ApplicationContext) setUpTokenMaker() error {
	log.Printf("Start setup token maker")
	tokenMaker, err := token.NewJWTMaker(app.Cf.AuthTokenKey)
	if err != nil {
		return err
	}
	app.TokenMaker = tokenMaker
	log.Printf("Finish setup token maker")
	return nil
}

func (app *ApplicationContext) setUpProducer() {
	log.Printf("Start setup kafka producer")
	if app.Cf.KafkaBrokers == "" {
		app.Logger.Warn().Msg("kafka brokers not configured, order events disabled")
		log.Printf("Finish setup kafka producer")
		return
	}

	brokers := strings.Split(app.Cf.KafkaBrokers, ",")
	topic := app.Cf.KafkaOrderTopic
	if topic == "" {
		topic = "fitland.orders"
	}
	app.OrderProducer = producer.NewOrderProducer(brokers, topic)
	log.Printf("Finish setup kafka producer")
}

func (app *ApplicationContext) setUpRateLimiter() {
	log.Printf("Start setup rate limiter")
	cfg := limiter.GetDefaultConfig()
	if app.Cf.RateLimitCapacity > 0 {
		cfg.Capacity = app.Cf.RateLimitCapacity
	}
	if app.Cf.RateLimitPerSec > 0 {
		cfg.RatePS = app.Cf.RateLimitPerSec
	}
	app.RateLimiter = limiter.NewRedisTokenBucket(app.RedisClient, app.Cf.ModulerName+":ratelimit", &cfg)
	log.Printf("Finish setup rate limiter")
}

func (app *ApplicationContext) setUpServices() {
	log.Printf("Start setup services")
	productCache := redis_repo.NewProductCache(app.RedisClient, app.Cf.ModulerName, productCacheTTL)

	app.AuthService = service.NewAuthService(app.userRepo, app.tokenRepo, app.TokenMaker, app.Logger)
	app.ProductService = service.NewProductService(app.productRepo, productCache, app.Logger)
	app.CartService = service.NewCartService(app.cartRepo, app.productRepo)
	app.OrderService = service.NewOrderService(app.orderRepo, app.OrderProducer, app.Logger)
	app.CouponService = service.NewCouponService(app.couponRepo)
	app.ReviewService = service.NewReviewService(app.reviewRepo)
	app.ReturnService = service.NewReturnService(app.returnRepo, app.orderRepo)
	app.ShippingService = service.NewShippingService(app.orderRepo, app.OrderProducer, app.Logger)
	app.WishlistService = service.NewWishlistService(app.wishlistRepo, app.productRepo)
	app.PaymentService = service.NewPaymentService(app.orderRepo, app.OrderProducer, app.Logger)
	log.Printf("Finish setup services")
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		if app.OrderProducer != nil {
			log.Printf("Closing kafka producer...")
			if err := app.OrderProducer.Close(); err != nil {
				log.Printf("kafka producer shutdown error: %v", err)
			}
		}

		if app.RedisClient != nil {
			log.Printf("Closing redis connection...")
			if err := app.RedisClient.Close(); err != nil {
				log.Printf("redis shutdown error: %v", err)
			}
		}

		if app.DbConn != nil {
			log.Printf("Closing database connection...")
			if sqlDB, err := app.DbConn.DB(); err == nil {
				sqlDB.Close()
			}
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}
