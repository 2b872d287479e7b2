package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	ProductID uint   `gorm:"index;not null;uniqueIndex:idx_reviews_user_product" json:"product_id"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_reviews_user_product" json:"user_id"`
	Rating    int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string `json:"comment"`
	User      User   `json:"user"`
}
