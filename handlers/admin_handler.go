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

type AdminHandler struct {
	DB *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

// Stats - GET /api/admin/stats
// Read-only aggregation: user counts per role, product and order counts,
// and revenue summed over delivered orders.
func (h *AdminHandler) Stats(c *gin.Context) {
	var (
		buyers, sellers, admins   int64
		products, orders, pending int64
		revenue                   float64
	)

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&buyers, h.DB.Model(&models.User{}).Where("role = ?", models.RoleBuyer)},
		{&sellers, h.DB.Model(&models.User{}).Where("role = ?", models.RoleSeller)},
		{&admins, h.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin)},
		{&products, h.DB.Model(&models.Product{})},
		{&orders, h.DB.Model(&models.Order{})},
		{&pending, h.DB.Model(&models.SellerApplication{}).Where("status = ?", models.ApplicationPending)},
	}
	for _, cnt := range counts {
		if err := cnt.query.Count(cnt.dest).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not compute stats"})
			return
		}
	}

	err := h.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusDelivered).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not compute stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": gin.H{
			"buyers":  buyers,
			"sellers": sellers,
			"admins":  admins,
			"total":   buyers + sellers + admins,
		},
		"products":             products,
		"orders":               orders,
		"pending_applications": pending,
		"revenue":              revenue,
	})
}

// ListUsers - GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	query := h.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch users"})
		return
	}

	var users []models.User
	err := query.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": total, "page": page, "limit": limit})
}

type AdminUpdateUserRequest struct {
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

// UpdateUser - PUT /api/admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role != nil && !models.ValidRole(*req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	var user models.User
	err := h.DB.First(&user, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch user"})
		return
	}

	updates := map[string]interface{}{}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, user)
		return
	}

	if err := h.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update user"})
		return
	}
	if err := h.DB.First(&user, user.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser - DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}
	if uint(id) == middleware.CurrentUserID(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account"})
		return
	}

	var user models.User
	err = h.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch user"})
		return
	}

	if err := h.DB.Unscoped().Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
