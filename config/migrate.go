package config

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ochieng/duka-backend/models"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductImage{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.SellerApplication{},
		&models.Review{},
		&models.WishlistItem{},
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to migrate database schema")
		return err
	}
	return nil
}
