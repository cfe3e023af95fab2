package handlers

import (
	"context"
	"errors"
	"net/http"

	"presence_backend/db"
	"presence_backend/middleware"
	"presence_backend/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenIssuer is implemented by middleware.TokenService.
type TokenIssuer interface {
	GenerateTokens(ctx context.Context, p models.Principal) (models.TokenPair, error)
	ValidateRefreshToken(ctx context.Context, refreshToken string) (models.Role, string, error)
	InvalidateRefreshToken(ctx context.Context, refreshToken string) error
}

// Accounts is the slice of db.DirectoryStore needed for authentication.
type Accounts interface {
	TeacherByID(ctx context.Context, teacherID string) (models.Teacher, error)
	AdminByID(ctx context.Context, adminID string) (models.Admin, error)
	CreateTeacher(ctx context.Context, t models.Teacher) error
	CreateAdmin(ctx context.Context, a models.Admin) error
	SchoolAuthFor(ctx context.Context, teacherID, area, schoolID string) (models.SchoolAuth, error)
}

type AuthHandler struct {
	accounts Accounts
	tokens   TokenIssuer
	log      *zap.Logger
}

func NewAuthHandler(accounts Accounts, tokens TokenIssuer, log *zap.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokens: tokens, log: log}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, ok := models.ParseRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	ctx := c.Request.Context()
	var principal models.Principal
	switch role {
	case models.RoleTeacher:
		t, err := h.accounts.TeacherByID(ctx, req.UserID)
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			h.log.Error("teacher lookup failed", zap.String("teacher_id", req.UserID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify credentials"})
			return
		}
		if err != nil || !middleware.VerifyPassword(t.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid teacher credentials"})
			return
		}
		principal = models.Principal{UserID: t.TeacherID, Role: role, Name: t.Name}

	case models.RoleAdmin:
		a, err := h.accounts.AdminByID(ctx, req.UserID)
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			h.log.Error("admin lookup failed", zap.String("admin_id", req.UserID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify credentials"})
			return
		}
		if err != nil || !middleware.VerifyPassword(a.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin credentials"})
			return
		}
		principal = models.Principal{UserID: a.AdminID, Role: role, Name: a.Name}
	}

	h.issueTokens(c, principal, http.StatusOK)
}

// SchoolLogin authenticates a teacher against the area/school credential table.
func (h *AuthHandler) SchoolLogin(c *gin.Context) {
	var req models.SchoolLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	auth, err := h.accounts.SchoolAuthFor(ctx, req.TeacherID, req.Area, req.SchoolID)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		h.log.Error("school auth lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify credentials"})
		return
	}
	if err != nil || !middleware.VerifyPassword(auth.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Area / School / Teacher credentials"})
		return
	}

	t, err := h.accounts.TeacherByID(ctx, auth.TeacherID)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Teacher not found"})
		return
	}
	if err != nil {
		h.log.Error("teacher lookup failed", zap.String("teacher_id", auth.TeacherID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify credentials"})
		return
	}

	h.issueTokens(c, models.Principal{UserID: t.TeacherID, Role: models.RoleTeacher, Name: t.Name}, http.StatusOK)
}

func (h *AuthHandler) RegisterTeacher(c *gin.Context) {
	var req models.RegisterTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := middleware.HashPassword(req.Password)
	if err != nil {
		h.log.Error("hashing password failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	err = h.accounts.CreateTeacher(c.Request.Context(), models.Teacher{
		TeacherID:    req.TeacherID,
		Name:         req.Name,
		Department:   req.Subject,
		PasswordHash: hashedPassword,
	})
	if errors.Is(err, db.ErrDuplicate) {
		c.JSON(http.StatusConflict, gin.H{"error": "Teacher ID already exists"})
		return
	}
	if err != nil {
		h.log.Error("creating teacher failed", zap.String("teacher_id", req.TeacherID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create teacher"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req models.RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := middleware.HashPassword(req.Password)
	if err != nil {
		h.log.Error("hashing password failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	err = h.accounts.CreateAdmin(c.Request.Context(), models.Admin{
		AdminID:      req.AdminID,
		Name:         req.Name,
		Organization: req.Organization,
		PasswordHash: hashedPassword,
	})
	if errors.Is(err, db.ErrDuplicate) {
		c.JSON(http.StatusConflict, gin.H{"error": "Admin ID exists"})
		return
	}
	if err != nil {
		h.log.Error("creating admin failed", zap.String("admin_id", req.AdminID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create admin"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// RefreshToken rotates a refresh token into a new token pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	role, userID, err := h.tokens.ValidateRefreshToken(ctx, req.RefreshToken)
	if errors.Is(err, middleware.ErrInvalidRefreshToken) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}
	if err != nil {
		h.log.Error("refresh token lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify refresh token"})
		return
	}

	principal := models.Principal{UserID: userID, Role: role}
	switch role {
	case models.RoleTeacher:
		var t models.Teacher
		t, err = h.accounts.TeacherByID(ctx, userID)
		principal.Name = t.Name
	case models.RoleAdmin:
		var a models.Admin
		a, err = h.accounts.AdminByID(ctx, userID)
		principal.Name = a.Name
	default:
		err = db.ErrNotFound
	}
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}
	if err != nil {
		h.log.Error("account lookup failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify refresh token"})
		return
	}

	if err := h.tokens.InvalidateRefreshToken(ctx, req.RefreshToken); err != nil {
		h.log.Warn("invalidating old refresh token failed", zap.Error(err))
	}
	h.issueTokens(c, principal, http.StatusOK)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tokens.InvalidateRefreshToken(c.Request.Context(), req.RefreshToken); err != nil {
		h.log.Error("invalidating refresh token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func (h *AuthHandler) issueTokens(c *gin.Context, p models.Principal, status int) {
	tokens, err := h.tokens.GenerateTokens(c.Request.Context(), p)
	if err != nil {
		h.log.Error("generating tokens failed", zap.String("user_id", p.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}
	c.JSON(status, tokens)
}
