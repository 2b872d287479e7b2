package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ochieng/duka-backend/models"
)

func TestCreateReviewRecomputesRating(t *testing.T) {
	withTestTransaction(t, func(db *gorm.DB) {
		router := newTestRouter(db)
		seller := createUser(t, db, "rseller@example.com", models.RoleSeller)
		b1 := createUser(t, db, "rb1@example.com", models.RoleBuyer)
		b2 := createUser(t, db, "rb2@example.com", models.RoleBuyer)
		product := createProduct(t, db, seller.ID, "Blender", 70, 5)
		path := fmt.Sprintf("/api/products/%d/reviews", product.ID)

		w := doJSON(t, router, "POST", path, tokenFor(t, b1),
			map[string]interface{}{"rating": 5, "comment": "great"})
		assert.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, router, "POST", path, tokenFor(t, b2),
			map[string]interface{}{"rating": 2, "comment": "meh"})
		assert.Equal(t, http.StatusCreated, w.Code)

		var got models.Product
		require.NoError(t, db.First(&got, product.ID).Error)
		assert.Equal(t, 3.5, got.Rating)
		assert.Equal(t, 2, got.ReviewCount)
	})
}

func TestReviewOncePerUser(t *testing.T) {
	withTestTransaction(t, func(db *gorm.DB) {
		router := newTestRouter(db)
		seller := createUser(t, db, "ronce@example.com", models.RoleSeller)
		buyer := createUser(t, db, "roncebuyer@example.com", models.RoleBuyer)
		product := createProduct(t, db, seller.ID, "Juicer", 45, 5)
		path := fmt.Sprintf("/api/products/%d/reviews", product.ID)
		token := tokenFor(t, buyer)

		w := doJSON(t, router, "POST", path, token, map[string]interface{}{"rating": 4})
		require.Equal(t, http.StatusCreated, w.Code)
		w = doJSON(t, router, "POST", path, token, map[string]interface{}{"rating": 1})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestReviewValidation(t *testing.T) {
	withTestTransaction(t, func(db *gorm.DB) {
		router := newTestRouter(db)
		seller := createUser(t, db, "rval@example.com", models.RoleSeller)
		buyer := createUser(t, db, "rvalbuyer@example.com", models.RoleBuyer)
		product := createProduct(t, db, seller.ID, "Fan", 30, 5)

		w := doJSON(t, router, "POST", fmt.Sprintf("/api/products/%d/reviews", product.ID),
			tokenFor(t, buyer), map[string]interface{}{"rating": 6})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(t, router, "POST", "/api/products/999999/reviews",
			tokenFor(t, buyer), map[string]interface{}{"rating": 3})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateAndDeleteReviewRecompute(t *testing.T) {
	withTestTransaction(t, func(db *gorm.DB) {
		router := newTestRouter(db)
		seller := createUser(t, db, "rupd@example.com", models.RoleSeller)
		buyer := createUser(t, db, "rupdbuyer@example.com", models.RoleBuyer)
		other := createUser(t, db, "rupdother@example.com", models.RoleBuyer)
		product := createProduct(t, db, seller.ID, "Iron", 25, 5)

		review := models.Review{ProductID: product.ID, UserID: buyer.ID, Rating: 2}
		require.NoError(t, db.Create(&review).Error)
		path := fmt.Sprintf("/api/reviews/%d", review.ID)

		// only the author (or an admin) may touch it
		w := doJSON(t, router, "PUT", path, tokenFor(t, other), map[string]interface{}{"rating": 5})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(t, router, "PUT", path, tokenFor(t, buyer), map[string]interface{}{"rating": 4})
		assert.Equal(t, http.StatusOK, w.Code)

		var got models.Product
		require.NoError(t, db.First(&got, product.ID).Error)
		assert.Equal(t, 4.0, got.Rating)
		assert.Equal(t, 1, got.ReviewCount)

		// deletion resets the denormalized values when no reviews remain
		w = doJSON(t, router, "DELETE", path, tokenFor(t, buyer), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, db.First(&got, product.ID).Error)
		assert.Equal(t, 0.0, got.Rating)
		assert.Equal(t, 0, got.ReviewCount)
	})
}
