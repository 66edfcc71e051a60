package config

import (
	"fmt"

	"github.com/Adarsh-512/ShopSphere/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection and migrates the schema
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	err = DB.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Category{},
		&models.Supplier{},
		&models.Product{},
		&models.Review{},
		&models.UserOTP{},
		&models.Cart{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.Promotion{},
		&models.PromotionProduct{},
		&models.PromotionCategory{},
		&models.PromotionUsage{},
		&models.UserActivePromotion{},
		&models.Inventory{},
		&models.StockMovement{},
		&models.RefundRequest{},
		&models.Wallet{},
		&models.WalletTransaction{},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}
