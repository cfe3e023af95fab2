package models

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleTeacher:
		return RoleTeacher, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

type LoginRequest struct {
	Role     string `json:"role" binding:"required"`
	UserID   string `json:"user_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SchoolLoginRequest struct {
	TeacherID string `json:"teacher_id" binding:"required"`
	Area      string `json:"area" binding:"required"`
	SchoolID  string `json:"school_id" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type RegisterTeacherRequest struct {
	Name      string `json:"name" binding:"required"`
	TeacherID string `json:"teacher_id" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Subject   string `json:"subject"`
}

type RegisterAdminRequest struct {
	Name         string `json:"name" binding:"required"`
	AdminID      string `json:"admin_id" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Organization string `json:"organization"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Principal is the authenticated account behind a request.
type Principal struct {
	UserID string
	Role   Role
	Name   string
}

// UserProfile is the signed-in account. Exactly one of Teacher and Admin is set.
type UserProfile struct {
	UserID  string   `json:"user_id"`
	Role    Role     `json:"role"`
	Name    string   `json:"name"`
	Teacher *Teacher `json:"teacher,omitempty"`
	Admin   *Admin   `json:"admin,omitempty"`
}
