package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tnpcell/portal/internal/app/models/dto"
	"github.com/tnpcell/portal/internal/pkg/auth"
)

// Context keys set by SessionAuth
const (
	CtxUserID     = "userID"
	CtxEmail      = "email"
	CtxRollNumber = "rollNumber"
	CtxName       = "name"
	CtxRole       = "role"
)

// CookieConfig describes the session cookie transport
type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
	MaxAge int
}

// AuthMiddleware validates session tokens and enforces roles
type AuthMiddleware struct {
	jwtService *auth.JWTService
	cookie     CookieConfig
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, cookie CookieConfig) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		cookie:     cookie,
	}
}

// SessionAuth validates the session token. The token normally travels in
// the http-only session cookie; an Authorization header is accepted as a
// fallback for non-browser clients.
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(m.cookie.Name)
		if err != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				abortUnauthorized(c, "Please log in to continue.")
				return
			}
			tokenString, err = auth.ExtractBearerToken(authHeader)
			if err != nil {
				abortUnauthorized(c, "Please log in to continue.")
				return
			}
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
					dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Your session has expired. Please log in again.")))
				return
			}
			abortUnauthorized(c, "Please log in to continue.")
			return
		}

		c.Set(CtxUserID, claims.SubjectID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRollNumber, claims.RollNumber)
		c.Set(CtxName, claims.Name)
		c.Set(CtxRole, claims.Role)

		c.Next()
	}
}

// RoleRequired checks the session role set by SessionAuth
func (m *AuthMiddleware) RoleRequired(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(CtxRole)
		if !exists {
			abortUnauthorized(c, "Please log in to continue.")
			return
		}

		roleStr, ok := role.(string)
		if !ok || roleStr != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeForbidden, "You are not allowed to perform this action.")))
			return
		}

		c.Next()
	}
}

// SetSessionCookie writes the http-only session cookie
func (m *AuthMiddleware) SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(m.cookie.Name, token, m.cookie.MaxAge, "/", m.cookie.Domain, m.cookie.Secure, true)
}

// ClearSessionCookie expires the session cookie
func (m *AuthMiddleware) ClearSessionCookie(c *gin.Context) {
	c.SetCookie(m.cookie.Name, "", -1, "/", m.cookie.Domain, m.cookie.Secure, true)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeUnauthorized, message)))
}
