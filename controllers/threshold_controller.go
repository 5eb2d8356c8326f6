package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Archit728/Content-Moderation-SaaS/services"
)

// ThresholdController serves per-user category threshold reads and updates.
type ThresholdController struct {
	Thresholds *services.ThresholdService
}

func NewThresholdController(thresholds *services.ThresholdService) *ThresholdController {
	return &ThresholdController{Thresholds: thresholds}
}

// GetThresholds returns the caller's effective thresholds, fully populated
// with defaults for any label the caller never configured.
func (tc *ThresholdController) GetThresholds(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resolved, err := tc.Thresholds.Resolve(c.Request.Context(), userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch thresholds"})
		return
	}

	c.JSON(http.StatusOK, resolved)
}

// UpdateThresholds upserts the supplied label→value map. Unknown labels are
// ignored; any out-of-range value rejects the request before any write.
func (tc *ThresholdController) UpdateThresholds(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Thresholds map[string]float64 `json:"thresholds"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.Thresholds == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := tc.Thresholds.UpdateMany(c.Request.Context(), userID.(uint), input.Thresholds); err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update thresholds"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
