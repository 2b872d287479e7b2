package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/ochieng/duka-backend/models"
)

func TestWishlistAddIdempotent(t *testing.T) {
	withTestTransaction(t, func(db *gorm.DB) {
		router := newTestRouter(db)
		seller := createUser(t, db, "wseller@example.com", models.RoleSeller)
		buyer := createUser(t, db, "wbuyer@example.com", models.RoleBuyer)
		product := createProduct(t, db, seller.ID, "Watch", 200, 3)
		token := tokenFor(t, buyer)
		body := map[string]interface{}{"product_id": product.ID}

		w := doJSON(t, router, "POST", "/api/wishlist", token, body)
		assert.Equal(t, http.StatusCreated, w.Code)
		w = doJSON(t, router, "POST", "/api/wishlist", token, body)
		assert.Equal(t, http.StatusOK, w.Code)

		var count int64
		db.Model(&models.WishlistItem{}).Where("user_id = ?", buyer.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})
}

func TestWishlistAddMissingProduct(t *testing.T) {
	withTestTransaction(t, func(db *gorm.DB) {
		router := newTestRouter(db)
		buyer := createUser(t, db, "wmiss@example.com", models.RoleBuyer)

		w := doJSON(t, router, "POST", "/api/wishlist", tokenFor(t, buyer),
			map[string]interface{}{"product_id": 999999})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestWishlistRemove(t *testing.T) {
	withTestTransaction(t, func(db *gorm.DB) {
		router := newTestRouter(db)
		seller := createUser(t, db, "wrseller@example.com", models.RoleSeller)
		buyer := createUser(t, db, "wrbuyer@example.com", models.RoleBuyer)
		product := createProduct(t, db, seller.ID, "Ring", 500, 1)
		db.Create(&models.WishlistItem{UserID: buyer.ID, ProductID: product.ID})
		token := tokenFor(t, buyer)

		w := doJSON(t, router, "DELETE", fmt.Sprintf("/api/wishlist/%d", product.ID), token, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, "DELETE", fmt.Sprintf("/api/wishlist/%d", product.ID), token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
