package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Archit728/Content-Moderation-SaaS/controllers"
	"github.com/Archit728/Content-Moderation-SaaS/middleware"
)

func ModerationRoutes(r *gin.Engine, mc *controllers.ModerationController) {
	auth := r.Group("/moderate")
	auth.Use(middleware.RequireAuth())
	{
		auth.POST("/", mc.Moderate)
		auth.POST("/batch", mc.ModerateBatch)
		auth.GET("/batch/:id", mc.GetBatchJob)
		auth.GET("/history", mc.GetHistory)
	}
}
