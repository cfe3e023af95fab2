package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TeacherHandler struct {
	dir Directory
	log *zap.Logger
}

func NewTeacherHandler(dir Directory, log *zap.Logger) *TeacherHandler {
	return &TeacherHandler{dir: dir, log: log}
}

func (h *TeacherHandler) GetTeachers(c *gin.Context) {
	teachers, err := h.dir.ListTeachers(c.Request.Context())
	if err != nil {
		h.log.Error("listing teachers failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch teachers"})
		return
	}
	c.JSON(http.StatusOK, teachers)
}
