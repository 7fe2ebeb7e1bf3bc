package controller

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/slotswapper/internal/controller/handlers"
	"github.com/Freeeeeet/slotswapper/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// TokenParser проверяет bearer-токен и достаёт из него claims
type TokenParser interface {
	ParseToken(tokenString string) (*service.Claims, error)
}

// RequireAuth проверяет заголовок Authorization и кладёт subject id в контекст
func RequireAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization format"})
			return
		}

		claims, err := parser.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(handlers.CtxUserIDKey, claims.Subject)
		c.Next()
	}
}

// RequestLog логирует каждый запрос со статусом и длительностью
func RequestLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func (s *limiterStore) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	lim, ok := s.limiters[key]
	if !ok {
		lim = rate.NewLimiter(s.limit, s.burst)
		s.limiters[key] = lim
	}
	return lim
}

// RateLimit ограничивает частоту запросов отдельно по каждому пользователю
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	store := &limiterStore{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
	}

	return func(c *gin.Context) {
		key := handlers.UserID(c)
		if key == "" {
			key = c.ClientIP()
		}

		if !store.get(key).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
