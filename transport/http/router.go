package http

import (
	"github.com/gin-gonic/gin"
	"github.com/janus-auth/janus/service"
)

// SetupRouter sets up the Gin router. The auth endpoints are the allow-list;
// everything else sits behind RequireIdentity.
func SetupRouter(authService *service.AuthService) *gin.Engine {
	router := gin.Default()

	router.Use(Authenticate(authService))

	handlers := NewAuthHandlers(authService)

	auth := router.Group("/api/auth")
	{
		auth.POST("/login", handlers.Login)
		auth.POST("/signup", handlers.Signup)
		auth.POST("/reissue", handlers.Reissue)
		auth.GET("/check-email", handlers.CheckEmail)
		auth.GET("/check-nickname", handlers.CheckNickname)
	}

	api := router.Group("/api", RequireIdentity())
	{
		api.GET("/me", handlers.Me)
	}

	return router
}
