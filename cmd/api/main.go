// @title        Shop Backend API
// @version      1.0
// @description  REST backend for the shop: accounts with roles, category catalog, orders with a status lifecycle, product reviews.
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "shop-backend/docs"
	"shop-backend/internal/category"
	"shop-backend/internal/config"
	"shop-backend/internal/events"
	"shop-backend/internal/httpx"
	"shop-backend/internal/logging"
	"shop-backend/internal/order"
	"shop-backend/internal/policy"
	"shop-backend/internal/product"
	"shop-backend/internal/review"
	"shop-backend/internal/session"
	"shop-backend/internal/user"
)

func main() {
	cfg := config.Load()
	logger := logging.New()

	pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	sessions := session.NewStore(rdb, cfg.SessionTTL)

	users := user.NewPGRepo(pool)
	categories := category.NewPGRepo(pool)
	products := product.NewPGRepo(pool)
	reviews := review.NewPGRepo(pool)
	orders := order.NewPGRepo(pool)

	producer := events.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic, logger)
	defer producer.Close()

	userSvc := user.NewService(users)
	orderSvc := order.NewService(orders, products, producer)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(logger))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api", httpx.Identity(sessions, users))

	// auth
	api.POST("/register", httpx.Require(policy.ResUser, policy.ActCreate), registerHandler(userSvc))
	api.POST("/login", loginHandler(userSvc, sessions))
	api.POST("/logout", logoutHandler(sessions))

	// users
	api.GET("/users/me", httpx.Require(policy.ResUser, policy.ActRead), meHandler())
	api.GET("/users/:id", httpx.Require(policy.ResUser, policy.ActRead), getUserHandler(users))
	api.PATCH("/users/:id", httpx.Require(policy.ResUser, policy.ActUpdate), updateUserHandler(users))
	api.DELETE("/users/:id", httpx.Require(policy.ResUser, policy.ActDelete), deleteUserHandler(users))

	// categories
	api.GET("/categories", httpx.Require(policy.ResCategory, policy.ActRead), listCategoriesHandler(categories))
	api.GET("/categories/:id", httpx.Require(policy.ResCategory, policy.ActRead), getCategoryHandler(categories))
	api.POST("/categories", httpx.Require(policy.ResCategory, policy.ActCreate), createCategoryHandler(categories))
	api.PATCH("/categories/:id", httpx.Require(policy.ResCategory, policy.ActUpdate), updateCategoryHandler(categories))
	api.DELETE("/categories/:id", httpx.Require(policy.ResCategory, policy.ActDelete), deleteCategoryHandler(categories))

	// products
	api.GET("/products", httpx.Require(policy.ResProduct, policy.ActRead), listProductsHandler(products))
	api.GET("/products/:id", httpx.Require(policy.ResProduct, policy.ActRead), getProductHandler(products))
	api.POST("/products", httpx.Require(policy.ResProduct, policy.ActCreate), createProductHandler(products, categories))
	api.PATCH("/products/:id", httpx.Require(policy.ResProduct, policy.ActUpdate), updateProductHandler(products, categories))
	api.DELETE("/products/:id", httpx.Require(policy.ResProduct, policy.ActDelete), deleteProductHandler(products))

	// orders
	api.GET("/orders", httpx.Require(policy.ResOrder, policy.ActRead), listOrdersHandler(orderSvc))
	api.POST("/orders", httpx.Require(policy.ResOrder, policy.ActCreate), createOrderHandler(orderSvc))
	api.GET("/orders/:id", httpx.Require(policy.ResOrder, policy.ActRead), getOrderHandler(orderSvc))
	api.PATCH("/orders/:id", httpx.Require(policy.ResOrder, policy.ActUpdate), updateOrderHandler(orderSvc))
	// one deletion handler, two route bindings
	del := deleteOrderHandler(orderSvc)
	api.DELETE("/orders/:id", httpx.Require(policy.ResOrder, policy.ActDelete), del)
	api.DELETE("/orders/:id/delete_order", httpx.Require(policy.ResOrder, policy.ActDelete), del)
	api.POST("/orders/:id/cancel", httpx.Require(policy.ResOrder, policy.ActUpdate), cancelOrderHandler(orderSvc))

	// reviews
	api.GET("/reviews", httpx.Require(policy.ResReview, policy.ActRead), listReviewsHandler(reviews))
	api.GET("/reviews/:id", httpx.Require(policy.ResReview, policy.ActRead), getReviewHandler(reviews))
	api.POST("/reviews", httpx.Require(policy.ResReview, policy.ActCreate), createReviewHandler(reviews, products))

	// the frontend is served from another origin
	handler := cors.Default().Handler(r)

	logger.Info("api listening", "addr", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, handler))
}
