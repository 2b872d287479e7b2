package models

import "gorm.io/gorm"

type WishlistItem struct {
	gorm.Model
	UserID    uint    `gorm:"index;not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	Product   Product `json:"product"`
}
