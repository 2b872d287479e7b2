package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ochieng/duka-backend/middleware"
	"github.com/ochieng/duka-backend/models"
)

type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{DB: db}
}

type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock" binding:"gte=0"`
	Specs       string   `json:"specs"`
	Images      []string `json:"images"`
}

// List - GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	query := h.DB.Model(&models.Product{}).Preload("Images")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if sellerID := c.Query("seller_id"); sellerID != "" {
		query = query.Where("seller_id = ?", sellerID)
	}
	if q := c.Query("q"); q != "" {
		query = query.Where("name LIKE ?", "%"+q+"%")
	}
	if min := c.Query("min_price"); min != "" {
		query = query.Where("price >= ?", min)
	}
	if max := c.Query("max_price"); max != "" {
		query = query.Where("price <= ?", max)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch products"})
		return
	}

	var products []models.Product
	err := query.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// Get - GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	var product models.Product
	err := h.DB.Preload("Images").First(&product, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create - POST /api/products (seller/admin)
func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Specs:       req.Specs,
		SellerID:    middleware.CurrentUserID(c),
	}
	for i, url := range req.Images {
		product.Images = append(product.Images, models.ProductImage{URL: url, Position: i})
	}

	if err := h.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// Update - PUT /api/products/:id (owner seller or admin).
// Images are replaced wholesale inside the same transaction.
func (h *ProductHandler) Update(c *gin.Context) {
	product, ok := h.ownedProduct(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":        req.Name,
			"description": req.Description,
			"price":       req.Price,
			"category":    req.Category,
			"stock":       req.Stock,
			"specs":       req.Specs,
		}
		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		for i, url := range req.Images {
			img := models.ProductImage{ProductID: product.ID, URL: url, Position: i}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update product"})
		return
	}

	var updated models.Product
	if err := h.DB.Preload("Images").First(&updated, product.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch product"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete - DELETE /api/products/:id (owner seller or admin).
// Removes the product along with its images and any cart or
// wishlist rows still referencing it.
func (h *ProductHandler) Delete(c *gin.Context) {
	product, ok := h.ownedProduct(c)
	if !ok {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.WishlistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// MyProducts - GET /api/seller/products
func (h *ProductHandler) MyProducts(c *gin.Context) {
	var products []models.Product
	err := h.DB.Preload("Images").
		Where("seller_id = ?", middleware.CurrentUserID(c)).
		Order("created_at desc").
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// ownedProduct loads the product and enforces the owner-or-admin rule,
// writing the error response itself when the check fails.
func (h *ProductHandler) ownedProduct(c *gin.Context) (models.Product, bool) {
	var product models.Product
	err := h.DB.First(&product, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return product, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch product"})
		return product, false
	}
	role := c.GetString(middleware.CtxRole)
	if role != models.RoleAdmin && product.SellerID != middleware.CurrentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your product"})
		return product, false
	}
	return product, true
}
