package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Archit728/Content-Moderation-SaaS/controllers"
	"github.com/Archit728/Content-Moderation-SaaS/middleware"
)

func ThresholdRoutes(r *gin.Engine, tc *controllers.ThresholdController) {
	auth := r.Group("/thresholds")
	auth.Use(middleware.RequireAuth())
	{
		auth.GET("/", tc.GetThresholds)
		auth.POST("/", tc.UpdateThresholds)
	}
}
