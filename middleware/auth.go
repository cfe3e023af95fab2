package middleware

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"presence_backend/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const principalKey = "principal"

var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// AuthMiddleware creates a gin middleware for JWT authentication
func AuthMiddleware(tokens *TokenService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be in the format: Bearer {token}"})
			return
		}

		claims, err := tokens.ParseAccessToken(parts[1])
		if err != nil {
			log.Debug("token validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(principalKey, models.Principal{UserID: claims.UserID, Role: claims.Role, Name: claims.Name})
		c.Next()
	}
}

// RequireRole rejects requests whose principal holds none of roles. It must
// run after AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	}
}

// PrincipalFrom returns the account authenticated by AuthMiddleware.
func PrincipalFrom(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}

// SetPrincipal attaches p to the request context.
func SetPrincipal(c *gin.Context, p models.Principal) {
	c.Set(principalKey, p)
}

// TokenService handles token generation and validation
type TokenService struct {
	DB         *sql.DB
	JWTSecret  []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewTokenService creates a new token service
func NewTokenService(db *sql.DB, jwtSecret []byte, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		DB:         db,
		JWTSecret:  jwtSecret,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
}

// GenerateTokens creates a new access and refresh token pair
func (s *TokenService) GenerateTokens(ctx context.Context, p models.Principal) (models.TokenPair, error) {
	accessToken, err := s.SignAccessToken(p)
	if err != nil {
		return models.TokenPair{}, err
	}

	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return models.TokenPair{}, err
	}
	refreshToken := hex.EncodeToString(bytes)

	if _, err := s.DB.ExecContext(ctx,
		`INSERT INTO refresh_tokens (role, user_id, token, expires_at) VALUES ($1, $2, $3, $4)`,
		string(p.Role), p.UserID, refreshToken, time.Now().Add(s.RefreshTTL),
	); err != nil {
		return models.TokenPair{}, fmt.Errorf("error storing refresh token: %w", err)
	}

	return models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// SignAccessToken issues an HS256 access token for p.
func (s *TokenService) SignAccessToken(p models.Principal) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Claims{
		UserID: p.UserID,
		Role:   p.Role,
		Name:   p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("error signing access token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken validates signature, algorithm and expiry.
func (s *TokenService) ParseAccessToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if _, ok := models.ParseRole(string(claims.Role)); !ok || claims.UserID == "" {
		return nil, errors.New("token is missing principal claims")
	}
	return claims, nil
}

// ValidateRefreshToken checks if a refresh token is valid and returns its owner
func (s *TokenService) ValidateRefreshToken(ctx context.Context, refreshToken string) (models.Role, string, error) {
	var role, userID string
	err := s.DB.QueryRowContext(ctx,
		`SELECT role, user_id FROM refresh_tokens WHERE token = $1 AND expires_at > NOW()`,
		refreshToken,
	).Scan(&role, &userID)

	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrInvalidRefreshToken
	}
	if err != nil {
		return "", "", err
	}

	return models.Role(role), userID, nil
}

// InvalidateRefreshToken invalidates a refresh token
func (s *TokenService) InvalidateRefreshToken(ctx context.Context, refreshToken string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, refreshToken)
	return err
}

// VerifyPassword checks if a password matches the hashed version
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// HashPassword creates a bcrypt hash of a password
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}
