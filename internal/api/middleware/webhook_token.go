package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

// HeaderWebhookToken заголовок с общим секретом платформы
const HeaderWebhookToken = "X-Webhook-Token"

const (
	msgWebhookNotConfigured = "webhook не настроен"
	msgInvalidWebhookToken  = "некорректный токен webhook"
)

// WebhookToken пропускает только запросы с совпадающим секретом
func WebhookToken(secret string, logger Logger) func(http.Handler) http.Handler {
	secret = strings.TrimSpace(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				logger.Warn("%s %s - webhook secret not configured", r.Method, r.URL.Path)
				handlers.RespondServiceUnavailable(w, msgWebhookNotConfigured)
				return
			}

			token := r.Header.Get(HeaderWebhookToken)
			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				logger.Warn("%s %s - invalid webhook token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgInvalidWebhookToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
