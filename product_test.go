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

func TestCreateProduct(t *testing.T) {
	withTestTransaction(t, func(db *gorm.DB) {
		router := newTestRouter(db)
		seller := createUser(t, db, "pseller@example.com", models.RoleSeller)

		w := doJSON(t, router, "POST", "/api/products", tokenFor(t, seller), map[string]interface{}{
			"name":   "Kettle",
			"price":  35.5,
			"stock":  12,
			"images": []string{"/public/uploads/a.jpg", "/public/uploads/b.jpg"},
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		var product models.Product
		decodeBody(t, w, &product)
		assert.Equal(t, seller.ID, product.SellerID)
		require.Len(t, product.Images, 2)
		assert.Equal(t, 0, product.Images[0].Position)
		assert.Equal(t, 1, product.Images[1].Position)
	})
}

func TestCreateProductForbiddenForBuyer(t *testing.T) {
	withTestTransaction(t, func(db *gorm.DB) {
		router := newTestRouter(db)
		buyer := createUser(t, db, "pbuyer@example.com", models.RoleBuyer)

		w := doJSON(t, router, "POST", "/api/products", tokenFor(t, buyer), map[string]interface{}{
			"name": "Nope", "price": 1.0,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestUpdateProductReplacesImages(t *testing.T) {
	withTestTransaction(t, func(db *gorm.DB) {
		router := newTestRouter(db)
		seller := createUser(t, db, "pupd@example.com", models.RoleSeller)
		product := createProduct(t, db, seller.ID, "Chair", 60, 4)
		db.Create(&models.ProductImage{ProductID: product.ID, URL: "/old1.jpg", Position: 0})
		db.Create(&models.ProductImage{ProductID: product.ID, URL: "/old2.jpg", Position: 1})

		w := doJSON(t, router, "PUT", fmt.Sprintf("/api/products/%d", product.ID),
			tokenFor(t, seller), map[string]interface{}{
				"name":   "Chair v2",
				"price":  65.0,
				"stock":  4,
				"images": []string{"/new.jpg"},
			})
		assert.Equal(t, http.StatusOK, w.Code)

		var images []models.ProductImage
		require.NoError(t, db.Where("product_id = ?", product.ID).Find(&images).Error)
		require.Len(t, images, 1)
		assert.Equal(t, "/new.jpg", images[0].URL)

		var got models.Product
		require.NoError(t, db.First(&got, product.ID).Error)
		assert.Equal(t, "Chair v2", got.Name)
	})
}

func TestUpdateProductOwnership(t *testing.T) {
	withTestTransaction(t, func(db *gorm.DB) {
		router := newTestRouter(db)
		owner := createUser(t, db, "powner@example.com", models.RoleSeller)
		intruder := createUser(t, db, "pintruder@example.com", models.RoleSeller)
		admin := createUser(t, db, "padmin@example.com", models.RoleAdmin)
		product := createProduct(t, db, owner.ID, "Sofa", 400, 2)
		path := fmt.Sprintf("/api/products/%d", product.ID)
		body := map[string]interface{}{"name": "Sofa", "price": 410.0, "stock": 2}

		assert.Equal(t, http.StatusForbidden, doJSON(t, router, "PUT", path, tokenFor(t, intruder), body).Code)
		assert.Equal(t, http.StatusOK, doJSON(t, router, "PUT", path, tokenFor(t, admin), body).Code)
	})
}

func TestDeleteProductCleansUpReferences(t *testing.T) {
	withTestTransaction(t, func(db *gorm.DB) {
		router := newTestRouter(db)
		seller := createUser(t, db, "pdel@example.com", models.RoleSeller)
		buyer := createUser(t, db, "pdelbuyer@example.com", models.RoleBuyer)
		product := createProduct(t, db, seller.ID, "Headphones", 90, 8)
		db.Create(&models.ProductImage{ProductID: product.ID, URL: "/h.jpg"})
		db.Create(&models.CartItem{UserID: buyer.ID, ProductID: product.ID, Quantity: 1, Price: 90})
		db.Create(&models.WishlistItem{UserID: buyer.ID, ProductID: product.ID})

		w := doJSON(t, router, "DELETE", fmt.Sprintf("/api/products/%d", product.ID),
			tokenFor(t, seller), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var imgCount, cartCount, wishCount int64
		db.Model(&models.ProductImage{}).Where("product_id = ?", product.ID).Count(&imgCount)
		db.Model(&models.CartItem{}).Where("product_id = ?", product.ID).Count(&cartCount)
		db.Model(&models.WishlistItem{}).Where("product_id = ?", product.ID).Count(&wishCount)
		assert.Equal(t, int64(0), imgCount)
		assert.Equal(t, int64(0), cartCount)
		assert.Equal(t, int64(0), wishCount)
	})
}

func TestListProductsFilters(t *testing.T) {
	withTestTransaction(t, func(db *gorm.DB) {
		router := newTestRouter(db)
		seller := createUser(t, db, "plist@example.com", models.RoleSeller)
		db.Create(&models.Product{Name: "Red Shoe", Price: 50, Stock: 1, SellerID: seller.ID, Category: "shoes"})
		db.Create(&models.Product{Name: "Blue Shoe", Price: 150, Stock: 1, SellerID: seller.ID, Category: "shoes"})
		db.Create(&models.Product{Name: "Toaster", Price: 40, Stock: 1, SellerID: seller.ID, Category: "kitchen"})

		var resp struct {
			Products []models.Product `json:"products"`
			Total    int64            `json:"total"`
		}

		w := doJSON(t, router, "GET", "/api/products?category=shoes", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		decodeBody(t, w, &resp)
		assert.Equal(t, int64(2), resp.Total)

		w = doJSON(t, router, "GET", "/api/products?q=Toast", "", nil)
		decodeBody(t, w, &resp)
		require.Len(t, resp.Products, 1)
		assert.Equal(t, "Toaster", resp.Products[0].Name)

		w = doJSON(t, router, "GET", "/api/products?min_price=100", "", nil)
		decodeBody(t, w, &resp)
		require.Len(t, resp.Products, 1)
		assert.Equal(t, "Blue Shoe", resp.Products[0].Name)
	})
}

func TestGetProductNotFound(t *testing.T) {
	withTestTransaction(t, func(db *gorm.DB) {
		router := newTestRouter(db)
		w := doJSON(t, router, "GET", "/api/products/999999", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSellerOwnCatalog(t *testing.T) {
	withTestTransaction(t, func(db *gorm.DB) {
		router := newTestRouter(db)
		s1 := createUser(t, db, "cat1@example.com", models.RoleSeller)
		s2 := createUser(t, db, "cat2@example.com", models.RoleSeller)
		createProduct(t, db, s1.ID, "Mine", 10, 1)
		createProduct(t, db, s2.ID, "Theirs", 10, 1)

		w := doJSON(t, router, "GET", "/api/seller/products", tokenFor(t, s1), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var products []models.Product
		decodeBody(t, w, &products)
		require.Len(t, products, 1)
		assert.Equal(t, "Mine", products[0].Name)
	})
}
