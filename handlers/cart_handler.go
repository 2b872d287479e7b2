package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ochieng/duka-backend/middleware"
	"github.com/ochieng/duka-backend/models"
)

type CartHandler struct {
	DB *gorm.DB
}

func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{DB: db}
}

// Get - GET /api/cart
func (h *CartHandler) Get(c *gin.Context) {
	var items []models.CartItem
	err := h.DB.Preload("Product").Preload("Product.Images").
		Where("user_id = ?", middleware.CurrentUserID(c)).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch cart"})
		return
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "subtotal": subtotal})
}

type AddCartItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// Add - POST /api/cart
// A repeat add of the same (product, size, color) sums quantities on the
// existing row; the price on the row stays the one captured at first add.
func (h *CartHandler) Add(c *gin.Context) {
	var req AddCartItemRequest
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

	var item models.CartItem
	err = h.DB.Where("user_id = ? AND product_id = ? AND size = ? AND color = ?",
		userID, req.ProductID, req.Size, req.Color).First(&item).Error

	switch {
	case err == nil:
		newQty := item.Quantity + req.Quantity
		if newQty > product.Stock {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough stock"})
			return
		}
		if err := h.DB.Model(&item).Update("quantity", newQty).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update cart"})
			return
		}
		item.Quantity = newQty
		c.JSON(http.StatusOK, item)
	case errors.Is(err, gorm.ErrRecordNotFound):
		if req.Quantity > product.Stock {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough stock"})
			return
		}
		item = models.CartItem{
			UserID:    userID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			Size:      req.Size,
			Color:     req.Color,
			Price:     product.Price,
		}
		if err := h.DB.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not add to cart"})
			return
		}
		c.JSON(http.StatusCreated, item)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch cart"})
	}
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

// UpdateItem - PATCH /api/cart/items/:id
// Quantity zero deletes the row, anything else overwrites it.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, ok := h.ownItem(c)
	if !ok {
		return
	}

	if *req.Quantity == 0 {
		if err := h.DB.Delete(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
		return
	}

	if err := h.DB.Model(&item).Update("quantity", *req.Quantity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update cart"})
		return
	}
	item.Quantity = *req.Quantity
	c.JSON(http.StatusOK, item)
}

// RemoveItem - DELETE /api/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	item, ok := h.ownItem(c)
	if !ok {
		return
	}
	if err := h.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

// Clear - DELETE /api/cart
func (h *CartHandler) Clear(c *gin.Context) {
	err := h.DB.Where("user_id = ?", middleware.CurrentUserID(c)).
		Delete(&models.CartItem{}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

func (h *CartHandler) ownItem(c *gin.Context) (models.CartItem, bool) {
	var item models.CartItem
	err := h.DB.Where("user_id = ?", middleware.CurrentUserID(c)).
		First(&item, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return item, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch cart"})
		return item, false
	}
	return item, true
}
