package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"rentdesk/internal/domain"
	"rentdesk/internal/middleware"
	"rentdesk/internal/service"
	"rentdesk/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authRouter(authSvc service.AuthService, roles ...domain.AdminRole) *gin.Engine {
	r := gin.New()
	grp := r.Group("", middleware.AuthMiddleware(authSvc))
	if len(roles) > 0 {
		grp.Use(middleware.RequireRole(roles...))
	}
	grp.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	r := authRouter(authSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	authSvc.On("ValidateToken", "bad-token").Return(nil, domain.ErrUnauthorized)
	r := authRouter(authSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	claims := &service.Claims{AdminID: uuid.New(), Email: "a@b.c", Role: domain.RoleAdmin}
	authSvc.On("ValidateToken", "good-token").Return(claims, nil)
	r := authRouter(authSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRequireRole_Forbidden(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	claims := &service.Claims{AdminID: uuid.New(), Email: "a@b.c", Role: domain.RoleAdmin}
	authSvc.On("ValidateToken", "good-token").Return(claims, nil)
	r := authRouter(authSvc, domain.RoleSuperAdmin)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_Allowed(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	claims := &service.Claims{AdminID: uuid.New(), Email: "root@b.c", Role: domain.RoleSuperAdmin}
	authSvc.On("ValidateToken", "good-token").Return(claims, nil)
	r := authRouter(authSvc, domain.RoleSuperAdmin)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
