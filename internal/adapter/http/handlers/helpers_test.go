package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"vermafarm/internal/adapter/http/middleware"
	"vermafarm/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

var (
	farmer    = entities.User{ID: "farmer-1", UserType: entities.UserTypeFarmer, IsActive: true}
	landowner = entities.User{ID: "landowner-1", UserType: entities.UserTypeLandowner, IsActive: true}
	buyer     = entities.User{ID: "buyer-1", UserType: entities.UserTypeBuyer, IsActive: true}
)

func asCaller(u entities.User) entities.Caller {
	return entities.Caller{UserID: u.ID, UserType: u.UserType}
}

// authenticated stands in for the auth middleware.
func authenticated(u entities.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetUser(c, u)
		c.Next()
	}
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
	return body
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, w.Code, w.Body.String())
	}
}
