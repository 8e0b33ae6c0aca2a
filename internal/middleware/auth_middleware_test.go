package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnpcell/portal/internal/app/models"
	"github.com/tnpcell/portal/internal/pkg/auth"
)

func newTestMiddleware(exp time.Duration) (*AuthMiddleware, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		SessionExp:  exp,
		TokenIssuer: "test",
	})
	m := NewAuthMiddleware(jwtService, CookieConfig{Name: "tnp_session", MaxAge: int(exp.Seconds())})
	return m, jwtService
}

func newTestRouter(m *AuthMiddleware, role string) *gin.Engine {
	router := gin.New()
	router.GET("/protected", m.SessionAuth(), m.RoleRequired(role), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.MustGet(CtxUserID)})
	})
	return router
}

func studentToken(t *testing.T, jwtService *auth.JWTService) string {
	t.Helper()
	token, err := jwtService.GenerateToken(42, "asha@college.edu", "CS2021001", "Asha Verma", models.RoleStudent)
	require.NoError(t, err)
	return token
}

func TestSessionAuth_CookieAccepted(t *testing.T) {
	m, jwtService := newTestMiddleware(time.Hour)
	router := newTestRouter(m, models.RoleStudent)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "tnp_session", Value: studentToken(t, jwtService)})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionAuth_BearerFallback(t *testing.T) {
	m, jwtService := newTestMiddleware(time.Hour)
	router := newTestRouter(m, models.RoleStudent)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken(t, jwtService))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionAuth_MissingToken(t *testing.T) {
	m, _ := newTestMiddleware(time.Hour)
	router := newTestRouter(m, models.RoleStudent)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuth_ExpiredToken(t *testing.T) {
	m, jwtService := newTestMiddleware(-1 * time.Second)
	router := newTestRouter(m, models.RoleStudent)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "tnp_session", Value: studentToken(t, jwtService)})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestSessionAuth_GarbageToken(t *testing.T) {
	m, _ := newTestMiddleware(time.Hour)
	router := newTestRouter(m, models.RoleStudent)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "tnp_session", Value: "not.a.jwt"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleRequired_WrongRole(t *testing.T) {
	m, jwtService := newTestMiddleware(time.Hour)
	// Student token against an admin-only route.
	router := newTestRouter(m, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "tnp_session", Value: studentToken(t, jwtService)})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSetAndClearSessionCookie(t *testing.T) {
	m, _ := newTestMiddleware(time.Hour)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	m.SetSessionCookie(c, "token-value")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "tnp_session", cookies[0].Name)
	assert.Equal(t, "token-value", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	m.ClearSessionCookie(c)

	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
