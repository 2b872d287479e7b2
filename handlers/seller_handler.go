package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ochieng/duka-backend/middleware"
	"github.com/ochieng/duka-backend/models"
)

type SellerHandler struct {
	DB *gorm.DB
}

func NewSellerHandler(db *gorm.DB) *SellerHandler {
	return &SellerHandler{DB: db}
}

type ApplyRequest struct {
	Message string `json:"message" binding:"required"`
}

// Apply - POST /api/seller-application (buyer only)
// A user may hold at most one PENDING application; a rejected one stays
// as history and resubmission inserts a fresh row.
func (h *SellerHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.CurrentUserID(c)

	var pending models.SellerApplication
	err := h.DB.Where("user_id = ? AND status = ?", userID, models.ApplicationPending).
		First(&pending).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You already have a pending application"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch applications"})
		return
	}

	app := models.SellerApplication{
		UserID:  userID,
		Status:  models.ApplicationPending,
		Message: req.Message,
	}
	if err := h.DB.Create(&app).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not submit application"})
		return
	}
	c.JSON(http.StatusCreated, app)
}

// MyApplication - GET /api/seller-application
func (h *SellerHandler) MyApplication(c *gin.Context) {
	var app models.SellerApplication
	err := h.DB.Where("user_id = ?", middleware.CurrentUserID(c)).
		Order("created_at desc").
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No application found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch application"})
		return
	}
	c.JSON(http.StatusOK, app)
}

// AdminList - GET /api/admin/seller-applications
func (h *SellerHandler) AdminList(c *gin.Context) {
	query := h.DB.Preload("User").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	var apps []models.SellerApplication
	if err := query.Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch applications"})
		return
	}
	c.JSON(http.StatusOK, apps)
}

type ReviewApplicationRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// Review - POST /api/admin/seller-applications/:id/review
// APPROVED also promotes the applicant to SELLER; the status change and
// the role change commit together or not at all.
func (h *SellerHandler) Review(c *gin.Context) {
	var req ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != models.ApplicationApproved && req.Status != models.ApplicationRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be APPROVED or REJECTED"})
		return
	}
	reviewerID := middleware.CurrentUserID(c)

	var app models.SellerApplication
	err := h.DB.First(&app, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch application"})
		return
	}
	if app.Status != models.ApplicationPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Application has already been reviewed"})
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":       req.Status,
			"reviewer_id":  reviewerID,
			"review_notes": req.Notes,
		}
		if err := tx.Model(&app).Updates(updates).Error; err != nil {
			return err
		}
		if req.Status == models.ApplicationApproved {
			return tx.Model(&models.User{}).Where("id = ?", app.UserID).
				Update("role", models.RoleSeller).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not review application"})
		return
	}

	app.Status = req.Status
	app.ReviewerID = &reviewerID
	app.ReviewNotes = req.Notes
	c.JSON(http.StatusOK, app)
}
