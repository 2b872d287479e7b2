package models

import "gorm.io/gorm"

type Product struct {
	gorm.Model
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Category    string         `gorm:"index" json:"category"`
	Stock       int            `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	SellerID    uint           `gorm:"index" json:"seller_id"`
	Specs       string         `gorm:"type:text" json:"specs"`
	Rating      float64        `json:"rating"`
	ReviewCount int            `json:"review_count"`
	Images      []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
}

type ProductImage struct {
	gorm.Model
	ProductID uint   `gorm:"index" json:"product_id"`
	URL       string `gorm:"not null" json:"url"`
	Position  int    `json:"position"`
}
