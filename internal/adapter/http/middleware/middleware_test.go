package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vermafarm/internal/adapter/http/handlers/mocks"
	"vermafarm/internal/domain/entities"
	"vermafarm/internal/infrastructure/config"
	"vermafarm/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		accounts := mocks.NewMockIAccountUseCase(ctrl)

		r := gin.New()
		r.GET("/me", Auth(accounts), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"success":false,"code":"UNAUTHORIZED","message":"Not authorized to access this route"}`, w.Body.String())
	})

	t.Run("wrong scheme", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		accounts := mocks.NewMockIAccountUseCase(ctrl)

		r := gin.New()
		r.GET("/me", Auth(accounts), func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
	})

	t.Run("deactivated account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		accounts := mocks.NewMockIAccountUseCase(ctrl)
		accounts.EXPECT().Authenticate(gomock.Any(), "tok").Return(entities.User{}, usecase.ErrAccountDeactivated)

		r := gin.New()
		r.GET("/me", Auth(accounts), func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer tok")
		assert.Equal(t, http.StatusForbidden, serve(r, req).Code)
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		accounts := mocks.NewMockIAccountUseCase(ctrl)
		accounts.EXPECT().Authenticate(gomock.Any(), "tok").Return(entities.User{}, errors.New("dynamo down"))

		r := gin.New()
		r.GET("/me", Auth(accounts), func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer tok")
		assert.Equal(t, http.StatusInternalServerError, serve(r, req).Code)
	})

	t.Run("sets caller", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		accounts := mocks.NewMockIAccountUseCase(ctrl)
		accounts.EXPECT().Authenticate(gomock.Any(), "tok").
			Return(entities.User{ID: "u-1", UserType: entities.UserTypeFarmer, IsActive: true}, nil)

		var got entities.Caller
		r := gin.New()
		r.GET("/me", Auth(accounts), func(c *gin.Context) {
			got, _ = CallerFrom(c)
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "bearer  tok ")
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
		assert.Equal(t, entities.Caller{UserID: "u-1", UserType: entities.UserTypeFarmer}, got)
	})
}

func TestRequireRoles(t *testing.T) {
	withUser := func(u entities.User) gin.HandlerFunc {
		return func(c *gin.Context) {
			SetUser(c, u)
			c.Next()
		}
	}

	r := gin.New()
	r.GET("/farmer-only",
		withUser(entities.User{ID: "u-1", UserType: entities.UserTypeBuyer}),
		RequireRoles(entities.UserTypeFarmer),
		func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/sellers",
		withUser(entities.User{ID: "u-2", UserType: entities.UserTypeLandowner}),
		RequireRoles(entities.UserTypeFarmer, entities.UserTypeLandowner),
		func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/anonymous", RequireRoles(entities.UserTypeFarmer), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/farmer-only", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "User role buyer is not authorized to access this route")

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/sellers", nil)).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, httptest.NewRequest(http.MethodGet, "/anonymous", nil)).Code)
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(config.RateLimitConfig{Window: time.Minute, Max: 2})
	rl.now = func() time.Time { return now }

	r := gin.New()
	r.GET("/api/ping", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		return req
	}

	assert.Equal(t, http.StatusOK, serve(r, req()).Code)
	assert.Equal(t, http.StatusOK, serve(r, req()).Code)
	w := serve(r, req())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// One token comes back every window/max.
	now = now.Add(30 * time.Second)
	assert.Equal(t, http.StatusOK, serve(r, req()).Code)
}

func TestRateLimiter_EvictsIdleBuckets(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(config.RateLimitConfig{Window: time.Minute, Max: 5})
	rl.now = func() time.Time { return now }

	rl.GetLimiter("10.0.0.1")
	now = now.Add(2 * time.Minute)
	rl.GetLimiter("10.0.0.2")

	assert.Len(t, rl.limiters, 1)
	_, ok := rl.limiters["10.0.0.2"]
	assert.True(t, ok)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORS(config.ServerConfig{ClientURL: "http://localhost:3000, https://app.vermafarm.in"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.vermafarm.in")
	w := serve(r, req)
	assert.Equal(t, "https://app.vermafarm.in", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	assert.Equal(t, http.StatusForbidden, serve(r, req).Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"code":"INTERNAL_ERROR","message":"Server Error"}`, w.Body.String())
}
