package main

import (
	"log"
	"net/http"

	"snackshop-admin/internal/config"
	"snackshop-admin/internal/database"
	"snackshop-admin/internal/handlers"
	"snackshop-admin/internal/middlewares"
	"snackshop-admin/internal/queue"
	"snackshop-admin/internal/redis"
	"snackshop-admin/internal/repository"
	"snackshop-admin/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Seed(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// The broker is optional; without it order intake comes only through
	// whatever already sits in the database and no events are published.
	var broker *queue.RabbitMQ
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		broker, err = queue.NewRabbitMQ(cfg.RabbitMQURL, cfg.OrderQueue, cfg.OrderExchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		defer broker.Close()
		if err := broker.Setup(); err != nil {
			log.Fatal("Failed to set up RabbitMQ topology:", err)
		}
		events = broker
	}

	// Initialize services
	authService := services.NewAuthService(userRepo, redisClient, cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo, categoryRepo, redisClient, cfg.LowStockThreshold)
	customerService := services.NewCustomerService(customerRepo, orderRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, customerRepo, events, redisClient)
	reportService := services.NewReportService(orderRepo, productRepo, customerRepo, redisClient, cfg.CacheTTL, cfg.LowStockThreshold, cfg.ReportTimezone)

	// Start consuming checkout orders
	if broker != nil {
		if err := broker.StartOrderConsumer(orderService.IngestOrder); err != nil {
			log.Fatal("Failed to start order consumer:", err)
		}
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Setup routes
	router := gin.Default()
	router.Use(middlewares.PrometheusMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/api/auth/login", authHandler.Login)

	api := router.Group("/api")
	api.Use(middlewares.AuthMiddleware(authService))
	{
		api.GET("/auth/me", authHandler.Me)
		api.POST("/auth/logout", authHandler.Logout)

		api.GET("/users", userHandler.List)
		api.POST("/users", userHandler.Create)
		api.DELETE("/users/:id", userHandler.Deactivate)

		api.GET("/categories", productHandler.Categories)
		api.GET("/products", productHandler.List)
		api.POST("/products", productHandler.Create)
		api.GET("/products/:id", productHandler.Get)
		api.PUT("/products/:id", productHandler.Update)
		api.DELETE("/products/:id", productHandler.Delete)

		api.GET("/customers", customerHandler.List)
		api.POST("/customers", customerHandler.Create)
		api.GET("/customers/:id", customerHandler.Get)
		api.PUT("/customers/:id", customerHandler.Update)
		api.DELETE("/customers/:id", customerHandler.Delete)

		api.GET("/orders", orderHandler.List)
		api.GET("/orders/statuses", orderHandler.Statuses)
		api.GET("/orders/:id", orderHandler.Get)
		api.PUT("/orders/:id/status", orderHandler.UpdateStatus)

		api.GET("/dashboard", reportHandler.Dashboard)
		api.GET("/reports/sales", reportHandler.Sales)
		api.GET("/reports/products", reportHandler.Products)
		api.GET("/reports/customers", reportHandler.Customers)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
