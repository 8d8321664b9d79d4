package handlers

import (
	"errors"
	"net/http"

	"go-attackboard/summarization"
	"go-attackboard/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func GetBriefing(c *gin.Context, d *views.Dashboard, briefer *summarization.Briefer) {
	text, err := briefer.Briefing(c.Request.Context(), d)
	if errors.Is(err, summarization.ErrDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Briefing is not configured"})
		return
	}
	if err != nil {
		zap.L().Error("Failed to generate briefing", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to generate briefing",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"briefing": text})
}
