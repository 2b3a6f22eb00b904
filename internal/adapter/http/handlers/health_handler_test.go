package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h := &HealthHandler{startedAt: start, now: func() time.Time { return start.Add(90 * time.Second) }}

	r := gin.New()
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.NoRoute(h.NotFound)

	w := doJSON(r, http.MethodGet, "/", "")
	expectStatus(t, w, http.StatusOK)
	if body := decodeBody(t, w); body["message"] != "VermaFarm API is running" {
		t.Fatalf("unexpected body %v", body)
	}

	w = doJSON(r, http.MethodGet, "/health", "")
	expectStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	if body["status"] != "healthy" || body["uptime"] != float64(90) || body["timestamp"] != "2026-01-01T00:01:30Z" {
		t.Fatalf("unexpected body %v", body)
	}

	w = doJSON(r, http.MethodGet, "/nope", "")
	expectStatus(t, w, http.StatusNotFound)
	if w.Body.String() != `{"message":"Route not found","success":false}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}
