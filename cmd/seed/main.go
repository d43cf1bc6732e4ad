package main

import (
	"log"
	"time"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/config"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/repository/db"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 開發環境種子資料 清空後重建
func main() {
	cf := config.GetConfig()

	conn, err := db.GetDbConn(cf.DbName, cf.DbHost, cf.DbPort, cf.DbUser, cf.DbPas)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	dao := db.NewDbDao(conn)
	if err := dao.InitMigrate(); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := wipe(conn); err != nil {
		log.Fatalf("failed to wipe tables: %v", err)
	}

	if err := seed(conn); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}
	log.Println("seed completed")
}

// wipe 依外鍵相依順序清空 子表在前
func wipe(conn *gorm.DB) error {
	tables := []string{
		"return_items",
		"return_requests",
		"order_items",
		"orders",
		"cart_items",
		"carts",
		"reviews",
		"wishlist_items",
		"user_coupons",
		"coupons",
		"product_sizes",
		"product_colors",
		"products",
		"categories",
		"refresh_tokens",
		"users",
	}
	for _, table := range tables {
		if err := conn.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func seed(conn *gorm.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("12345678"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []model.User{
		{
			ID:         uuid.New().String(),
			FirstName:  "Admin",
			LastName:   "FitLand",
			Email:      "admin@fitland.dev",
			Password:   string(hashed),
			Role:       constants.RoleAdmin,
			IsVerified: true,
		},
		{
			ID:         uuid.New().String(),
			FirstName:  "Pouya",
			LastName:   "Fakhri",
			Email:      "user@fitland.dev",
			Password:   string(hashed),
			Role:       constants.RoleUser,
			IsVerified: true,
		},
	}
	if err := conn.Create(&users).Error; err != nil {
		return err
	}

	categories := []model.Category{
		{ID: uuid.New().String(), Name: "Running Shoes", Slug: "running-shoes"},
		{ID: uuid.New().String(), Name: "Sportswear", Slug: "sportswear"},
		{ID: uuid.New().String(), Name: "Accessories", Slug: "accessories"},
	}
	if err := conn.Create(&categories).Error; err != nil {
		return err
	}

	sizes := func(productID string, stocks map[string]int) []model.ProductSize {
		out := make([]model.ProductSize, 0, len(stocks))
		for size, stock := range stocks {
			out = append(out, model.ProductSize{
				ID:        uuid.New().String(),
				ProductID: productID,
				Size:      size,
				Stock:     stock,
			})
		}
		return out
	}

	runnerID := uuid.New().String()
	hoodieID := uuid.New().String()
	bottleID := uuid.New().String()
	products := []model.Product{
		{
			ID:              runnerID,
			Name:            "FitLand Pace Runner",
			Description:     "Lightweight everyday running shoe",
			Brand:           "FitLand",
			Price:           decimal.NewFromInt(100000),
			DiscountPercent: decimal.NewFromInt(10),
			Stock:           40,
			IsActive:        true,
			IsFeatured:      true,
			CategoryID:      categories[0].ID,
			Sizes:           sizes(runnerID, map[string]int{"40": 10, "41": 10, "42": 10, "43": 10}),
			Colors: []model.ProductColor{
				{ID: uuid.New().String(), ProductID: runnerID, Color: "Black", HexCode: "#000000"},
				{ID: uuid.New().String(), ProductID: runnerID, Color: "White", HexCode: "#FFFFFF"},
			},
		},
		{
			ID:              hoodieID,
			Name:            "Training Hoodie",
			Description:     "Fleece hoodie for cold-weather sessions",
			Brand:           "FitLand",
			Price:           decimal.NewFromInt(75000),
			DiscountPercent: decimal.Zero,
			Stock:           25,
			IsActive:        true,
			CategoryID:      categories[1].ID,
			Sizes:           sizes(hoodieID, map[string]int{"S": 5, "M": 10, "L": 10}),
			Colors: []model.ProductColor{
				{ID: uuid.New().String(), ProductID: hoodieID, Color: "Navy", HexCode: "#001F5B"},
			},
		},
		{
			ID:              bottleID,
			Name:            "Steel Water Bottle",
			Description:     "750ml insulated bottle",
			Brand:           "Hydra",
			Price:           decimal.NewFromInt(20000),
			DiscountPercent: decimal.NewFromInt(5),
			Stock:           100,
			IsActive:        true,
			CategoryID:      categories[2].ID,
			Sizes:           sizes(bottleID, map[string]int{constants.SizeOneSize: 100}),
		},
	}
	if err := conn.Create(&products).Error; err != nil {
		return err
	}

	expires := time.Now().AddDate(0, 1, 0)
	coupons := []model.Coupon{
		{
			ID:           uuid.New().String(),
			Code:         "WELCOME10",
			DiscountType: constants.CouponTypePercentage,
			Value:        decimal.NewFromInt(10),
			MinOrder:     decimal.NewFromInt(50000),
			MaxDiscount:  decimal.NewFromInt(30000),
			UsageLimit:   100,
			IsActive:     true,
			ExpiresAt:    &expires,
		},
		{
			ID:           uuid.New().String(),
			Code:         "FLAT20K",
			DiscountType: constants.CouponTypeFixed,
			Value:        decimal.NewFromInt(20000),
			MinOrder:     decimal.NewFromInt(100000),
			UsageLimit:   50,
			IsActive:     true,
			ExpiresAt:    &expires,
		},
	}
	return conn.Create(&coupons).Error
}
