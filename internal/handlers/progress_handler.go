package handlers

import (
	"context"
	"net/http"

	"progress-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	Service *service.ProgressService
}

func NewProgressHandler(s *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{Service: s}
}

// OpenSession starts a lesson session and returns the reconstructed baseline.
func (h *ProgressHandler) OpenSession(c *gin.Context) {
	var req struct {
		LessonID string `json:"lesson_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return
	}

	view, err := h.Service.OpenSession(context.Background(), userID, req.LessonID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Failed to open session",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, view)
}

// RecordEngagement credits one played audio clip to the session.
func (h *ProgressHandler) RecordEngagement(c *gin.Context) {
	var req struct {
		AssetKey string `json:"asset_key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.Service.RecordEngagement(context.Background(), c.Param("id"), req.AssetKey)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// ReportPracticeScore records one practice activity's score. The response
// carries the combined practice outcome only once every activity reported.
func (h *ProgressHandler) ReportPracticeScore(c *gin.Context) {
	var req struct {
		ActivityID string `json:"activity_id" binding:"required"`
		Score      *int   `json:"score" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.Service.ReportPracticeScore(context.Background(), c.Param("id"), req.ActivityID, *req.Score)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// RetryActivity resets one practice activity for the current session.
func (h *ProgressHandler) RetryActivity(c *gin.Context) {
	view, err := h.Service.RetryActivity(c.Param("id"), c.Param("activityId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// Heartbeat recomputes time-driven progress; clients post it on a timer and
// on visibility/foreground transitions.
func (h *ProgressHandler) Heartbeat(c *gin.Context) {
	view, err := h.Service.Heartbeat(context.Background(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// CloseSession flushes a final merge and drops the session state.
func (h *ProgressHandler) CloseSession(c *gin.Context) {
	record, err := h.Service.CloseSession(context.Background(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": record, "message": "Session closed"})
}

// GetSessionStatus returns the live snapshot of an open session.
func (h *ProgressHandler) GetSessionStatus(c *gin.Context) {
	view, err := h.Service.GetSession(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetRecord returns the persisted record for one user and lesson.
func (h *ProgressHandler) GetRecord(c *gin.Context) {
	record, err := h.Service.GetRecord(context.Background(), c.Param("userId"), c.Param("lessonId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetUserRecords returns every lesson record for a user.
func (h *ProgressHandler) GetUserRecords(c *gin.Context) {
	records, err := h.Service.GetUserRecords(context.Background(), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "count": len(records)})
}
