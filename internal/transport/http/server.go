package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appsvc "employee-directory/internal/app"
	"employee-directory/internal/bootstrap"
	"employee-directory/internal/cache"
	"employee-directory/internal/platform/rabbitmq"
	"employee-directory/internal/repository"
	"employee-directory/internal/transport/http/handler"
	"employee-directory/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	cfg := app.Config
	gin.SetMode(cfg.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.App.ClientOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	// Stored photos are served straight from the upload directory.
	router.Static(cfg.Upload.PublicPath, cfg.Upload.Dir)

	userRepo := repository.NewUserRepository(app.MySQL)
	employeeRepo := repository.NewEmployeeRepository(app.MySQL)

	authService := appsvc.NewAuthService(
		userRepo,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.JWTExpireMinute)*time.Minute,
	)

	listCache := cache.NewEmployeeCache(app.Redis, time.Duration(cfg.Redis.ListTTLSeconds)*time.Second)
	cleanupPublisher := rabbitmq.NewCleanupPublisher(app.MQConn, cfg.RabbitMQ.PhotoCleanupQueue)
	employeeService := appsvc.NewEmployeeService(
		employeeRepo,
		app.Photos,
		listCache,
		cleanupPublisher,
		appsvc.MetaOptions{
			Departments:  cfg.Directory.Departments,
			Designations: cfg.Directory.Designations,
			Genders:      cfg.Directory.Genders,
		},
	)

	authHandler := handler.NewAuthHandler(authService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)

	employeeGroup := api.Group("/employees")
	employeeGroup.Use(middleware.AuthJWT(cfg.Auth.JWTSecret))
	employeeGroup.GET("/meta", employeeHandler.Meta)
	employeeGroup.GET("", employeeHandler.List)
	employeeGroup.POST("", employeeHandler.Create)

	return router
}
