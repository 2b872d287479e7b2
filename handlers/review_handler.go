package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ochieng/duka-backend/middleware"
	"github.com/ochieng/duka-backend/models"
)

type ReviewHandler struct {
	DB *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{DB: db}
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// ListForProduct - GET /api/products/:id/reviews
func (h *ReviewHandler) ListForProduct(c *gin.Context) {
	var reviews []models.Review
	err := h.DB.Where("product_id = ?", c.Param("id")).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch reviews"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// Create - POST /api/products/:id/reviews
// One review per user per product; the product's denormalized rating
// is recomputed in the same transaction.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.CurrentUserID(c)

	var product models.Product
	err := h.DB.First(&product, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch product"})
		return
	}

	var existing models.Review
	err = h.DB.Where("product_id = ? AND user_id = ?", product.ID, userID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this product"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch reviews"})
		return
	}

	review := models.Review{
		ProductID: product.ID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return recomputeRating(tx, product.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create review"})
		return
	}
	c.JSON(http.StatusCreated, review)
}

// Update - PUT /api/reviews/:id (author or admin)
func (h *ReviewHandler) Update(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, ok := h.ownReview(c)
	if !ok {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"rating": req.Rating, "comment": req.Comment}
		if err := tx.Model(&review).Updates(updates).Error; err != nil {
			return err
		}
		return recomputeRating(tx, review.ProductID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update review"})
		return
	}
	review.Rating = req.Rating
	review.Comment = req.Comment
	c.JSON(http.StatusOK, review)
}

// Delete - DELETE /api/reviews/:id (author or admin)
func (h *ReviewHandler) Delete(c *gin.Context) {
	review, ok := h.ownReview(c)
	if !ok {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return recomputeRating(tx, review.ProductID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete review"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

func (h *ReviewHandler) ownReview(c *gin.Context) (models.Review, bool) {
	var review models.Review
	err := h.DB.First(&review, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return review, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch review"})
		return review, false
	}
	role := c.GetString(middleware.CtxRole)
	if role != models.RoleAdmin && review.UserID != middleware.CurrentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your review"})
		return review, false
	}
	return review, true
}

// recomputeRating rewrites the product's denormalized rating and review
// count from the current review rows. Zero reviews resets both to zero.
func recomputeRating(tx *gorm.DB, productID uint) error {
	var stats struct {
		Avg   float64
		Count int64
	}
	err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("product_id = ?", productID).
		Scan(&stats).Error
	if err != nil {
		return err
	}
	return tx.Model(&models.Product{}).Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating":       stats.Avg,
			"review_count": stats.Count,
		}).Error
}
