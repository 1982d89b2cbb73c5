package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHasValidAPIKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	v1 := router.Group("/v1")
	v1.Use(HasValidAPIKey([]string{"key-one", "key-two"}))
	v1.GET("/events/upcoming", func(c *gin.Context) { c.Status(http.StatusOK) })
	v1.GET("/registrations", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(path string, apiKey string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if apiKey != "" {
			req.Header.Set("Api-Key", apiKey)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("missing key rejected", func(t *testing.T) {
		if code := do("/v1/events/upcoming", ""); code != http.StatusBadRequest {
			t.Errorf("unexpected status: got %d, want %d", code, http.StatusBadRequest)
		}
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		if code := do("/v1/registrations", "nope"); code != http.StatusBadRequest {
			t.Errorf("unexpected status: got %d, want %d", code, http.StatusBadRequest)
		}
	})

	t.Run("valid key passes on every group route", func(t *testing.T) {
		for _, path := range []string{"/v1/events/upcoming", "/v1/registrations"} {
			if code := do(path, "key-two"); code != http.StatusOK {
				t.Errorf("unexpected status for %s: got %d, want %d", path, code, http.StatusOK)
			}
		}
	})
}
