package main

import (
	"log"
	"os"

	_ "tenderdesk/api/swagger" // swagger docs
	"tenderdesk/internal/database"
	"tenderdesk/internal/handler"
	"tenderdesk/internal/middleware"
	"tenderdesk/internal/repository"
	"tenderdesk/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Tenderdesk API
// @version         1.0
// @description     Tender and order management with weekly sales-margin analytics.
// @host            localhost:8080
// @BasePath        /
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "tenderdesk"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	tenderRepo := repository.NewTenderRepository(db)
	productRepo := repository.NewProductRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	tenderService := service.NewTenderService(tenderRepo, productRepo, txManager)
	productService := service.NewProductService(productRepo)
	analyticsService := service.NewAnalyticsService(analyticsRepo)

	tenderHandler := handler.NewTenderHandler(tenderService)
	productHandler := handler.NewProductHandler(productService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	// Set up Gin Router
	router := gin.Default()
	router.Use(middleware.RequestID())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Request-ID"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// Register API Routes
	tenderHandler.RegisterRoutes(router.Group(""))
	productHandler.RegisterRoutes(router.Group(""))
	analyticsHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
