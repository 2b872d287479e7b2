package models

import "gorm.io/gorm"

// CartItem rows are unique per (user, product, size, color); a repeat add
// merges into the existing row instead of inserting a second one.
type CartItem struct {
	gorm.Model
	UserID    uint    `gorm:"index;not null" json:"user_id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Quantity  int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Price     float64 `json:"price"` // product price captured at add time
	Product   Product `json:"product"`
}
