package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(header string) (uint, bool) {
		var got uint
		var present bool
		r := gin.New()
		r.Use(Principal())
		r.GET("/", func(c *gin.Context) {
			if v, ok := c.Get("userID"); ok {
				got, present = v.(uint), true
			}
			c.Status(http.StatusOK)
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("X-User-ID", header)
		}
		r.ServeHTTP(w, req)
		return got, present
	}

	if id, ok := run("42"); !ok || id != 42 {
		t.Fatalf("expected userID=42, got %d (present=%v)", id, ok)
	}
	if _, ok := run(""); ok {
		t.Fatalf("missing header should stay anonymous")
	}
	if _, ok := run("0"); ok {
		t.Fatalf("zero id should stay anonymous")
	}
	if _, ok := run("abc"); ok {
		t.Fatalf("non-numeric id should stay anonymous")
	}
	if id, ok := run("  7  "); !ok || id != 7 {
		t.Fatalf("whitespace-padded id should parse, got %d (present=%v)", id, ok)
	}
}
