package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Freeeeeet/slotswapper/internal/controller/handlers"
	"github.com/Freeeeeet/slotswapper/internal/model"
	"github.com/Freeeeeet/slotswapper/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func authTestRouter(parser TokenParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequireAuth(parser))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, handlers.UserID(c))
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	auth := service.NewAuthService(nil, "test-secret", zap.NewNop())
	r := authTestRouter(auth)

	token, err := auth.IssueToken(&model.User{ID: "user-42", Name: "Alice", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Token abc", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized, ""},
		{"valid token", "Bearer " + token, http.StatusOK, "user-42"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status: got=%d want=%d", rec.Code, tc.wantStatus)
			}
			if tc.wantBody != "" && rec.Body.String() != tc.wantBody {
				t.Fatalf("body: got=%q want=%q", rec.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(handlers.CtxUserIDKey, "user-1")
	})
	r.Use(RateLimit(1, 2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Fatalf("burst requests must pass: %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Fatalf("third request must be limited: %v", statuses)
	}
}

func TestRateLimitIsPerUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var user string
	r.Use(func(c *gin.Context) {
		c.Set(handlers.CtxUserIDKey, user)
	})
	r.Use(RateLimit(1, 1))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(u string) int {
		user = u
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	if got := do("alice"); got != http.StatusOK {
		t.Fatalf("alice first request: %d", got)
	}
	if got := do("alice"); got != http.StatusTooManyRequests {
		t.Fatalf("alice second request must be limited: %d", got)
	}
	// Лимит Алисы не задевает Боба
	if got := do("bob"); got != http.StatusOK {
		t.Fatalf("bob first request: %d", got)
	}
}
