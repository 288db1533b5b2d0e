package handlers

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"courseplatform/internal/middleware"
	"courseplatform/internal/usecase"
)

func NewRouter(
	authHandler *AuthHandler,
	courseHandler *CourseHandler,
	paymentHandler *PaymentHandler,
	userHandler *UserHandler,
	auth *usecase.AuthUseCase,
	limiter *middleware.RateLimiter,
	allowedOrigins string,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	if allowedOrigins != "" {
		config.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowCredentials = !config.AllowAllOrigins
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	authRequired := middleware.AuthMiddleware(auth)
	staffOnly := middleware.StaffOnly(auth)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", limiter.Limit("login", 5, 1*time.Minute), authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authHandler.Logout)
		}

		api.GET("/me", authRequired, userHandler.Me)

		courses := api.Group("/courses")
		courses.Use(authRequired)
		{
			courses.GET("", courseHandler.List)
			courses.GET("/:id", courseHandler.GetOne)
			courses.GET("/:id/metrics", courseHandler.Metrics)
			courses.GET("/:id/lessons", courseHandler.ListLessons)
			courses.GET("/:id/groups", courseHandler.ListGroups)

			courses.POST("/:id/pay", limiter.Limit("pay", 10, 1*time.Minute), paymentHandler.Pay)

			// Управление каталогом — только сотрудники
			courses.POST("", staffOnly, courseHandler.Create)
			courses.PUT("/:id", staffOnly, courseHandler.Update)
			courses.DELETE("/:id", staffOnly, courseHandler.Delete)
			courses.POST("/:id/lessons", staffOnly, courseHandler.CreateLesson)
			courses.POST("/:id/groups", staffOnly, courseHandler.CreateGroup)
		}

		admin := api.Group("")
		admin.Use(authRequired, staffOnly)
		{
			admin.GET("/users", userHandler.List)
			admin.GET("/balances/:user_id", paymentHandler.GetBalance)
			admin.POST("/balances/:user_id/increase", paymentHandler.Increase)
			admin.POST("/balances/:user_id/decrease", paymentHandler.Decrease)
		}
	}

	return r
}
