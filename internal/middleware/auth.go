package middleware

import (
	"vocadrill/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			// Ensure user exists
			if err := authService.EnsureUserExists(userID); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err))
				return c.Send("Сталася помилка. Спробуйте пізніше.")
			}

			// Check authorization
			authorized, err := authService.IsAuthorized(userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return c.Send("Сталася помилка. Спробуйте пізніше.")
			}

			// Unauthorized users may only use /start and password input,
			// both of which go through the text handler
			if !authorized && c.Callback() != nil {
				return c.Respond(&tele.CallbackResponse{Text: "Спочатку введи пароль"})
			}

			return next(c)
		}
	}
}
