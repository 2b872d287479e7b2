package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ochieng/duka-backend/middleware"
	"github.com/ochieng/duka-backend/models"
)

type WishlistHandler struct {
	DB *gorm.DB
}

func NewWishlistHandler(db *gorm.DB) *WishlistHandler {
	return &WishlistHandler{DB: db}
}

// List - GET /api/wishlist
func (h *WishlistHandler) List(c *gin.Context) {
	var items []models.WishlistItem
	err := h.DB.Preload("Product").Preload("Product.Images").
		Where("user_id = ?", middleware.CurrentUserID(c)).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch wishlist"})
		return
	}
	c.JSON(http.StatusOK, items)
}

type AddWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// Add - POST /api/wishlist (idempotent)
func (h *WishlistHandler) Add(c *gin.Context) {
	var req AddWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.CurrentUserID(c)

	var product models.Product
	err := h.DB.First(&product, req.ProductID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch product"})
		return
	}

	var item models.WishlistItem
	err = h.DB.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&item).Error
	if err == nil {
		c.JSON(http.StatusOK, item)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch wishlist"})
		return
	}

	item = models.WishlistItem{UserID: userID, ProductID: req.ProductID}
	if err := h.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not add to wishlist"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Remove - DELETE /api/wishlist/:productId
func (h *WishlistHandler) Remove(c *gin.Context) {
	res := h.DB.Where("user_id = ? AND product_id = ?",
		middleware.CurrentUserID(c), c.Param("productId")).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update wishlist"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
}
