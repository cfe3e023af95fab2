package handlers

import (
	"errors"
	"net/http"

	"presence_backend/db"
	"presence_backend/middleware"
	"presence_backend/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	accounts Accounts
	log      *zap.Logger
}

func NewUserHandler(accounts Accounts, log *zap.Logger) *UserHandler {
	return &UserHandler{accounts: accounts, log: log}
}

// GetUserInfo returns the profile of the signed-in teacher or admin.
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	profile := models.UserProfile{UserID: p.UserID, Role: p.Role, Name: p.Name}
	ctx := c.Request.Context()

	var err error
	switch p.Role {
	case models.RoleTeacher:
		var t models.Teacher
		if t, err = h.accounts.TeacherByID(ctx, p.UserID); err == nil {
			profile.Name = t.Name
			profile.Teacher = &t
		}
	case models.RoleAdmin:
		var a models.Admin
		if a, err = h.accounts.AdminByID(ctx, p.UserID); err == nil {
			profile.Name = a.Name
			profile.Admin = &a
		}
	}
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		h.log.Error("getting user profile failed", zap.String("user_id", p.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user info"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
