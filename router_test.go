package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ochieng/duka-backend/config"
	"github.com/ochieng/duka-backend/models"
	"github.com/ochieng/duka-backend/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:    "test-secret",
		JWTExpiresIn: "1h",
		UploadDir:    "./testdata/uploads",
	}
}

// Create DB connection for tests
func getTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductImage{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.SellerApplication{},
		&models.Review{},
		&models.WishlistItem{},
	)
	return db
}

// Helper: run a test inside a transaction and roll it back
func withTestTransaction(t *testing.T, testFunc func(tx *gorm.DB)) {
	db := getTestDB()

	tx := db.Begin()
	if tx.Error != nil {
		t.Fatal(tx.Error)
	}
	defer tx.Rollback()

	testFunc(tx)
}

func newTestRouter(db *gorm.DB) *gin.Engine {
	return SetupRouter(db, testConfig(), nil)
}

func createUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	user := models.User{
		Email:    email,
		Name:     "Test User",
		Password: hash,
		Role:     role,
		Active:   true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(testConfig().JWTSecret, user.ID, user.Role, time.Hour)
	require.NoError(t, err)
	return token
}

// doJSON performs a request against the router, marshalling body when
// non-nil and attaching the bearer token when non-empty.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

func createProduct(t *testing.T, db *gorm.DB, sellerID uint, name string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:     name,
		Price:    price,
		Stock:    stock,
		SellerID: sellerID,
		Category: "general",
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}
