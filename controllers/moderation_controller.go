package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Archit728/Content-Moderation-SaaS/services"
	"github.com/Archit728/Content-Moderation-SaaS/services/classifier"
)

// ModerationController serves single-text and batch moderation.
type ModerationController struct {
	Moderation *services.ModerationService
	Batch      *services.BatchService
}

func NewModerationController(moderation *services.ModerationService, batch *services.BatchService) *ModerationController {
	return &ModerationController{Moderation: moderation, Batch: batch}
}

func (mc *ModerationController) Moderate(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Text string `json:"text"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	outcome, err := mc.Moderation.Moderate(c.Request.Context(), userID.(uint), input.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, classifier.ErrUnavailable), errors.Is(err, classifier.ErrProtocol):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Classification service failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            outcome.LogID,
		"probabilities": outcome.Verdict.Probabilities,
		"flagged":       outcome.Verdict.Flagged,
		"maxLabel":      outcome.Verdict.MaxLabel,
		"maxScore":      outcome.Verdict.MaxScore,
		"createdAt":     outcome.CreatedAt,
	})
}

func (mc *ModerationController) ModerateBatch(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Texts []string `json:"texts"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := mc.Batch.Run(c.Request.Context(), userID.(uint), input.Texts)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrRepository):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create batch job"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	results := make([]gin.H, len(result.Items))
	for i, item := range result.Items {
		entry := gin.H{"text": item.Text}
		if item.Verdict != nil {
			entry["probabilities"] = item.Verdict.Probabilities
			entry["flagged"] = item.Verdict.Flagged
			entry["maxLabel"] = item.Verdict.MaxLabel
			entry["maxScore"] = item.Verdict.MaxScore
		} else {
			entry["error"] = item.Err
		}
		results[i] = entry
	}

	c.JSON(http.StatusOK, gin.H{
		"batchId":      result.JobID,
		"status":       result.Status,
		"totalTexts":   result.TotalItems,
		"flaggedCount": result.FlaggedItems,
		"results":      results,
	})
}

func (mc *ModerationController) GetBatchJob(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}

	job, err := mc.Batch.Job(c.Request.Context(), userID.(uint), uint(jobID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Batch job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch batch job"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"batchId":        job.ID,
		"status":         job.Status,
		"totalItems":     job.TotalItems,
		"processedItems": job.ProcessedItems,
		"flaggedItems":   job.FlaggedItems,
		"createdAt":      job.CreatedAt,
		"completedAt":    job.CompletedAt,
	})
}

func (mc *ModerationController) GetHistory(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	logs, err := mc.Moderation.History(c.Request.Context(), userID.(uint), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, logs)
}
