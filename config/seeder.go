package config

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ochieng/duka-backend/models"
	"github.com/ochieng/duka-backend/utils"
)

// SeedAdmin creates the initial admin account if none exists yet.
func SeedAdmin(db *gorm.DB, email, password string) {
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("admin seed lookup failed")
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash admin password")
		return
	}
	admin := models.User{
		Email:    email,
		Name:     "Administrator",
		Password: hash,
		Role:     models.RoleAdmin,
		Active:   true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Error().Err(err).Msg("failed to seed admin user")
		return
	}
	log.Info().Str("email", email).Msg("admin user seeded")
}
