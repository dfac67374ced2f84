package handlers

import (
	"net/http"

	"progress-service/internal/lessons"

	"github.com/gin-gonic/gin"
)

type LessonHandler struct {
	Catalog *lessons.Registry
}

func NewLessonHandler(catalog *lessons.Registry) *LessonHandler {
	return &LessonHandler{Catalog: catalog}
}

func (h *LessonHandler) ListLessons(c *gin.Context) {
	all := h.Catalog.All()
	c.JSON(http.StatusOK, gin.H{"lessons": all, "count": len(all)})
}

func (h *LessonHandler) GetLesson(c *gin.Context) {
	lesson, err := h.Catalog.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}
	c.JSON(http.StatusOK, lesson)
}
