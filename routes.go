package main

import (
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/ochieng/duka-backend/config"
	"github.com/ochieng/duka-backend/handlers"
	"github.com/ochieng/duka-backend/middleware"
	"github.com/ochieng/duka-backend/models"
	"github.com/ochieng/duka-backend/utils"
)

// SetupRouter wires every route. Tests drive the returned engine
// directly through httptest.
func SetupRouter(db *gorm.DB, cfg *config.Config, verifier *oidc.IDTokenVerifier) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/public", "./public")

	ttl, err := time.ParseDuration(cfg.JWTExpiresIn)
	if err != nil {
		ttl = 72 * time.Hour
	}

	auth := handlers.NewAuthHandler(db, cfg.JWTSecret, ttl, verifier)
	products := handlers.NewProductHandler(db)
	cart := handlers.NewCartHandler(db)
	orders := handlers.NewOrderHandler(db, utils.Mailer{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		From: cfg.SMTPFrom,
		Pass: cfg.SMTPPass,
	})
	reviews := handlers.NewReviewHandler(db)
	wishlist := handlers.NewWishlistHandler(db)
	seller := handlers.NewSellerHandler(db)
	admin := handlers.NewAdminHandler(db)
	users := handlers.NewUserHandler(db)
	upload := handlers.NewUploadHandler(cfg.UploadDir)

	api := r.Group("/api")

	authn := middleware.RequireAuth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	sellerOrAdmin := middleware.RequireRole(models.RoleSeller, models.RoleAdmin)

	// auth
	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)
	api.POST("/auth/google", auth.GoogleLogin)
	api.GET("/auth/me", authn, auth.Me)

	// products
	api.GET("/products", products.List)
	api.GET("/products/:id", products.Get)
	api.POST("/products", authn, sellerOrAdmin, products.Create)
	api.PUT("/products/:id", authn, sellerOrAdmin, products.Update)
	api.DELETE("/products/:id", authn, sellerOrAdmin, products.Delete)
	api.GET("/seller/products", authn, sellerOrAdmin, products.MyProducts)

	// reviews
	api.GET("/products/:id/reviews", reviews.ListForProduct)
	api.POST("/products/:id/reviews", authn, reviews.Create)
	api.PUT("/reviews/:id", authn, reviews.Update)
	api.DELETE("/reviews/:id", authn, reviews.Delete)

	// cart
	api.GET("/cart", authn, cart.Get)
	api.POST("/cart", authn, cart.Add)
	api.PATCH("/cart/items/:id", authn, cart.UpdateItem)
	api.DELETE("/cart/items/:id", authn, cart.RemoveItem)
	api.DELETE("/cart", authn, cart.Clear)

	// orders
	api.POST("/orders", authn, orders.Place)
	api.GET("/orders", authn, orders.List)
	api.GET("/orders/:id", authn, orders.Get)

	// wishlist
	api.GET("/wishlist", authn, wishlist.List)
	api.POST("/wishlist", authn, wishlist.Add)
	api.DELETE("/wishlist/:productId", authn, wishlist.Remove)

	// seller applications
	api.POST("/seller-application", authn, middleware.RequireRole(models.RoleBuyer), seller.Apply)
	api.GET("/seller-application", authn, seller.MyApplication)

	// profile
	api.GET("/users/me", authn, users.Profile)
	api.PUT("/users/me", authn, users.UpdateProfile)

	// uploads
	api.POST("/upload", authn, upload.UploadImage)

	// admin
	adm := api.Group("/admin", authn, adminOnly)
	adm.GET("/stats", admin.Stats)
	adm.GET("/users", admin.ListUsers)
	adm.PUT("/users/:id", admin.UpdateUser)
	adm.DELETE("/users/:id", admin.DeleteUser)
	adm.GET("/seller-applications", seller.AdminList)
	adm.POST("/seller-applications/:id/review", seller.Review)
	adm.PATCH("/orders/:id/status", orders.UpdateStatus)

	return r
}
