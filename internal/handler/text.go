package handler

import (
	"fmt"
	"strings"

	"vocadrill/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on dialogue state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	// Ensure user exists
	if err := h.authService.EnsureUserExists(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return nil
	}

	// Check authorization first
	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgInternalError)
	}

	// If not authorized, treat the message as a password attempt
	if !authorized {
		if h.authService.CheckPassword(text) {
			if err := h.authService.AuthorizeUser(userID); err != nil {
				h.logger.Error("Failed to authorize user", zap.Error(err))
				return c.Send(msgInternalError)
			}

			h.logger.Info("User authorized", zap.Int64("user_id", userID))
			h.ResetState(userID)
			return c.Send("✅ Доступ відкрито!\n\n"+msgMainMenu, mainMenuMarkup())
		}

		return c.Send("Невірний пароль. Спробуй ще раз:")
	}

	// User is authorized, handle based on state
	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingVocabName:
		return h.handleVocabNameInput(c, userID, text)

	case domain.StateWaitingVocabDesc:
		return h.handleVocabDescInput(c, userID, state, text)

	case domain.StateWaitingPairs:
		return h.handlePairsInput(c, userID, state, text)

	case domain.StateDrilling:
		return h.handleAnswer(c, userID, text)

	case domain.StateConfirmingCancel:
		// Only the yes/no buttons move this state
		return c.Send("Зачекай, спочатку підтвердь завершення тренування кнопкою.")

	default:
		return c.Send("Оберіть дію в меню:", mainMenuMarkup())
	}
}

// handleVocabNameInput validates the new vocabulary's name
func (h *Handler) handleVocabNameInput(c tele.Context, userID int64, text string) error {
	ok, msgs, err := h.vocabService.ValidateName(userID, text)
	if err != nil {
		h.logger.Error("Failed to validate vocabulary name", zap.Error(err))
		return c.Send(msgInternalError)
	}
	if !ok {
		return c.Send("Назва не підходить:\n• "+strings.Join(msgs, "\n• "), cancelMarkup())
	}

	h.SetState(userID, &domain.StateData{
		State:     domain.StateWaitingVocabDesc,
		VocabName: text,
	})

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnSkipDesc), markup.Row(btnCancel))
	return c.Send("Надішли опис словника або пропусти цей крок.", markup)
}

// handleVocabDescInput validates the optional description
func (h *Handler) handleVocabDescInput(c tele.Context, userID int64, state *domain.StateData, text string) error {
	ok, msgs := h.vocabService.ValidateDescription(text)
	if !ok {
		return c.Send("Опис не підходить:\n• "+strings.Join(msgs, "\n• "), cancelMarkup())
	}

	h.SetState(userID, &domain.StateData{
		State:     domain.StateWaitingPairs,
		VocabName: state.VocabName,
		VocabDesc: text,
	})

	return c.Send(h.pairsInstruction(), cancelMarkup())
}

// handlePairsInput parses pair lines; every line is an independent attempt
func (h *Handler) handlePairsInput(c tele.Context, userID int64, state *domain.StateData, text string) error {
	pairs, errors := h.vocabService.ParseLines(text)

	state.PendingPairs = append(state.PendingPairs, pairs...)
	h.SetState(userID, state)

	var reply strings.Builder
	if len(pairs) > 0 {
		fmt.Fprintf(&reply, "✅ Додано пар: %d (всього %d)\n", len(pairs), len(state.PendingPairs))
	}
	if len(errors) > 0 {
		reply.WriteString("⚠️ Помилки:\n• " + strings.Join(errors, "\n• ") + "\n")
	}
	reply.WriteString("\nНадішли ще пари або збережи словник.")

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnDonePairs), markup.Row(btnCancel))
	return c.Send(reply.String(), markup)
}

// handleAnswer checks a typed drill answer and advances the session
func (h *Handler) handleAnswer(c tele.Context, userID int64, text string) error {
	correct, err := h.trainingService.Answer(userID, text)
	if err != nil {
		h.logger.Error("Failed to check answer", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(msgInternalError)
	}

	if correct {
		if err := c.Send("✅ Правильно!"); err != nil {
			return err
		}
	} else {
		if err := c.Send("❌ Неправильно, ця пара ще повернеться."); err != nil {
			return err
		}
	}

	return h.sendNextPrompt(c, userID)
}

func (h *Handler) pairsInstruction() string {
	g := h.vocabService.Grammar()
	return fmt.Sprintf(
		"Тепер надішли пари. Кожен рядок — одна пара у форматі:\n\n"+
			"слово%[3]sтранскрипція%[2]sще слово%[1]sпереклад%[3]sтранскрипція%[1]sанотація\n\n"+
			"Транскрипції та анотація необов'язкові. Приклад:\n"+
			"cat%[3]sкет%[1]sкіт%[1]sтварина",
		g.PairSeparator, g.ItemSeparator, g.TranscriptionSeparator,
	)
}
