package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ochieng/duka-backend/middleware"
	"github.com/ochieng/duka-backend/models"
	"github.com/ochieng/duka-backend/utils"
)

type OrderHandler struct {
	DB     *gorm.DB
	Mailer utils.Mailer
}

func NewOrderHandler(db *gorm.DB, mailer utils.Mailer) *OrderHandler {
	return &OrderHandler{DB: db, Mailer: mailer}
}

var (
	errInsufficientStock = errors.New("insufficient stock")
	errEmptyCart         = errors.New("cart is empty")
)

type PlaceOrderRequest struct {
	ShippingName    string `json:"shipping_name" binding:"required"`
	ShippingPhone   string `json:"shipping_phone"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
	PaymentMethod   string `json:"payment_method"`
}

// Place - POST /api/orders
// Turns the caller's cart into an order in a single transaction:
// stock is decremented per line with a conditional update (so it can
// never go negative), line prices are snapshotted from the cart rows,
// and the cart is emptied. Any failure rolls the whole thing back.
func (h *OrderHandler) Place(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.CurrentUserID(c)

	var order models.Order
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return errEmptyCart
		}

		var total float64
		order = models.Order{
			UserID:          userID,
			Number:          uuid.NewString(),
			Status:          models.OrderStatusPending,
			ShippingName:    req.ShippingName,
			ShippingPhone:   req.ShippingPhone,
			ShippingAddress: req.ShippingAddress,
			PaymentMethod:   req.PaymentMethod,
		}

		for _, item := range items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errInsufficientStock
			}

			total += item.Price * float64(item.Quantity)
			order.Items = append(order.Items, models.OrderItem{
				ProductID: item.ProductID,
				Name:      item.Product.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
				Size:      item.Size,
				Color:     item.Color,
			})
		}
		order.Total = total

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, errInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough stock for one or more items"})
		case errors.Is(err, errEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not place order"})
		}
		return
	}

	h.notifyOrderPlaced(userID, order)

	c.JSON(http.StatusCreated, order)
}

// notifyOrderPlaced mails a confirmation after commit, best-effort.
func (h *OrderHandler) notifyOrderPlaced(userID uint, order models.Order) {
	if !h.Mailer.Enabled() {
		return
	}
	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return
	}
	body := fmt.Sprintf("Hi %s,\n\nyour order %s has been placed. Total: %.2f\n",
		user.Name, order.Number, order.Total)
	if err := h.Mailer.Send(user.Email, "Order confirmation", body); err != nil {
		log.Warn().Err(err).Str("order", order.Number).Msg("order confirmation mail failed")
	}
}

// List - GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	var orders []models.Order
	err := h.DB.Preload("Items").
		Where("user_id = ?", middleware.CurrentUserID(c)).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Get - GET /api/orders/:id (owner or admin)
func (h *OrderHandler) Get(c *gin.Context) {
	var order models.Order
	err := h.DB.Preload("Items").First(&order, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch order"})
		return
	}
	role := c.GetString(middleware.CtxRole)
	if role != models.RoleAdmin && order.UserID != middleware.CurrentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus - PATCH /api/admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
		return
	}

	var order models.Order
	err := h.DB.First(&order, c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch order"})
		return
	}

	if err := h.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update order"})
		return
	}
	order.Status = req.Status
	c.JSON(http.StatusOK, order)
}
