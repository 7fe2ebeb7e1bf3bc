package handlers

import (
	"net/http"

	"github.com/Freeeeeet/slotswapper/internal/apperr"
	"github.com/gin-gonic/gin"
)

// CtxUserIDKey ключ, под которым auth-middleware кладёт subject id в контекст
const CtxUserIDKey = "userID"

// UserID возвращает id аутентифицированного пользователя
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}

// respondError переводит ошибку сервиса в HTTP-ответ вида {"error": "..."}.
// Внутренние ошибки наружу не раскрываем.
func respondError(c *gin.Context, err error) {
	apiErr := apperr.From(err)
	c.JSON(apiErr.Status, gin.H{"error": apiErr.Msg})
}

// HealthCheck простой liveness-ответ
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
