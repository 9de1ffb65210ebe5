package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const msgInternalError = "Сталася помилка. Спробуйте пізніше."
const msgMainMenu = "🏠 Головне меню\n\nОберіть дію:"

// handleStart handles /start command and returns to the main menu
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User opened main menu",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	// Ensure user exists in database
	if err := h.authService.EnsureUserExists(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return c.Send(msgInternalError)
	}

	// Check if authorized
	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgInternalError)
	}

	if !authorized {
		// Request password
		h.ResetState(userID)
		return c.Send("Привіт! Цей бот працює за паролем. Введи його:")
	}

	// Leaving to the menu discards any unfinished drill run
	h.trainingService.Stop(userID)
	h.ResetState(userID)

	if c.Callback() != nil {
		if err := c.Edit(msgMainMenu, mainMenuMarkup()); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(msgMainMenu, mainMenuMarkup())
		}
		return c.Respond()
	}
	return c.Send(msgMainMenu, mainMenuMarkup())
}
