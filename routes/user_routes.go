package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Archit728/Content-Moderation-SaaS/controllers"
	"github.com/Archit728/Content-Moderation-SaaS/middleware"
)

func UserRoutes(r *gin.Engine) {
	r.POST("/users", controllers.CreateUser)
	r.POST("/login", controllers.LoginUser)

	auth := r.Group("/users")
	auth.Use(middleware.RequireAuth())
	{
		auth.GET("/me", controllers.GetCurrentUser)
	}
}
