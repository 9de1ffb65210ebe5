package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"vocadrill/internal/domain"
	"vocadrill/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified,
// just acknowledge callback. Otherwise, acknowledge callback and return error
// so caller can send new message.
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()
	// If message is not modified, it was already edited by another callback
	if strings.Contains(errStr, "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// editOrSend edits the callback's message, falling back to a new message
func (h *Handler) editOrSend(c tele.Context, userID int64, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil {
		return c.Send(text, markup)
	}
	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// handleCallback handles callback queries with dynamic data
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Info("Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	switch {
	case strings.HasPrefix(data, "vocab_"):
		return h.handleVocabView(c, data)
	case strings.HasPrefix(data, "tvocab_"):
		return h.handleTrainVocabSelection(c, data)
	case strings.HasPrefix(data, "delvocab_"):
		return h.handleDeleteVocab(c, data)
	}

	h.logger.Warn("Unhandled callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleCreateVocab starts the vocabulary creation dialogue
func (h *Handler) handleCreateVocab(c tele.Context) error {
	userID := c.Sender().ID

	h.SetState(userID, &domain.StateData{State: domain.StateWaitingVocabName})
	return h.editOrSend(c, userID, "Як назвемо новий словник?", cancelMarkup())
}

// handleListVocabs shows the user's vocabularies
func (h *Handler) handleListVocabs(c tele.Context) error {
	userID := c.Sender().ID

	vocabs, err := h.vocabService.List(userID)
	if err != nil {
		h.logger.Error("Failed to list vocabularies", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Помилка при завантаженні"})
	}

	if len(vocabs) == 0 {
		return c.Respond(&tele.CallbackResponse{
			Text:      "У тебе поки немає словників",
			ShowAlert: true,
		})
	}

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for _, v := range vocabs {
		btn := markup.Data(v.Name, "vocab_"+strconv.FormatInt(v.ID, 10))
		rows = append(rows, markup.Row(btn))
	}
	rows = append(rows, markup.Row(btnBack))
	markup.Inline(rows...)

	return h.editOrSend(c, userID, "📚 Твої словники:", markup)
}

// handleVocabView shows a vocabulary's pairs
func (h *Handler) handleVocabView(c tele.Context, data string) error {
	userID := c.Sender().ID

	vocabularyID, err := strconv.ParseInt(strings.TrimPrefix(data, "vocab_"), 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Невірний словник"})
	}

	pairs, err := h.vocabService.GetPairs(vocabularyID)
	if err != nil {
		h.logger.Error("Failed to get pairs", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Помилка при завантаженні"})
	}

	if len(pairs) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: "Словник порожній"})
	}

	var text strings.Builder
	fmt.Fprintf(&text, "📖 Пари словника (%d):\n\n", len(pairs))
	for i, pair := range pairs {
		fmt.Fprintf(&text, "%d. %s — %s\n   💡 %s (помилок: %d)\n\n",
			i+1, pair.DisplayWords(), pair.DisplayTranslations(),
			pair.DisplayAnnotation(), pair.ErrorCount)
	}

	markup := &tele.ReplyMarkup{}
	btnDelete := markup.Data("🗑 Видалити словник", "delvocab_"+strconv.FormatInt(vocabularyID, 10))
	markup.Inline(
		markup.Row(btnDelete),
		markup.Row(btnListVocabs, btnMainMenu),
	)

	return h.editOrSend(c, userID, text.String(), markup)
}

// handleDeleteVocab soft-deletes a vocabulary
func (h *Handler) handleDeleteVocab(c tele.Context, data string) error {
	userID := c.Sender().ID

	vocabularyID, err := strconv.ParseInt(strings.TrimPrefix(data, "delvocab_"), 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Невірний словник"})
	}

	if err := h.vocabService.Delete(vocabularyID); err != nil {
		h.logger.Error("Failed to delete vocabulary", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Помилка при видаленні"})
	}

	h.logger.Info("Vocabulary deleted",
		zap.Int64("user_id", userID),
		zap.Int64("vocabulary_id", vocabularyID),
	)
	return h.editOrSend(c, userID, "🗑 Словник видалено.\n\n"+msgMainMenu, mainMenuMarkup())
}

// handleSkipDesc skips the description step of vocabulary creation
func (h *Handler) handleSkipDesc(c tele.Context) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	if state.State != domain.StateWaitingVocabDesc {
		return c.Respond()
	}

	h.SetState(userID, &domain.StateData{
		State:     domain.StateWaitingPairs,
		VocabName: state.VocabName,
	})
	return h.editOrSend(c, userID, h.pairsInstruction(), cancelMarkup())
}

// handleDonePairs saves the vocabulary being created
func (h *Handler) handleDonePairs(c tele.Context) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	if state.State != domain.StateWaitingPairs {
		return c.Respond()
	}

	if len(state.PendingPairs) == 0 {
		return c.Respond(&tele.CallbackResponse{
			Text:      "Додай хоча б одну пару",
			ShowAlert: true,
		})
	}

	vocabularyID, err := h.vocabService.Create(userID, state.VocabName, state.VocabDesc, state.PendingPairs)
	if err != nil {
		h.logger.Error("Failed to create vocabulary", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: "Не вдалося зберегти словник"})
	}

	h.logger.Info("Vocabulary created",
		zap.Int64("user_id", userID),
		zap.Int64("vocabulary_id", vocabularyID),
		zap.Int("pairs", len(state.PendingPairs)),
	)

	h.ResetState(userID)
	text := fmt.Sprintf("✅ Словник %q збережено (%d пар).\n\n%s",
		state.VocabName, len(state.PendingPairs), msgMainMenu)
	return h.editOrSend(c, userID, text, mainMenuMarkup())
}

// handleCancel cancels the current dialogue and returns to the main menu
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID

	h.ResetState(userID)
	return h.editOrSend(c, userID, msgMainMenu, mainMenuMarkup())
}

// handleTrain starts the training flow: pick a vocabulary first
func (h *Handler) handleTrain(c tele.Context) error {
	userID := c.Sender().ID

	vocabs, err := h.vocabService.List(userID)
	if err != nil {
		h.logger.Error("Failed to list vocabularies", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Помилка при завантаженні"})
	}

	if len(vocabs) == 0 {
		return c.Respond(&tele.CallbackResponse{
			Text:      "Спочатку створи словник",
			ShowAlert: true,
		})
	}

	h.SetState(userID, &domain.StateData{State: domain.StateSelectingVocab})

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for _, v := range vocabs {
		btn := markup.Data(v.Name, "tvocab_"+strconv.FormatInt(v.ID, 10))
		rows = append(rows, markup.Row(btn))
	}
	rows = append(rows, markup.Row(btnBack))
	markup.Inline(rows...)

	return h.editOrSend(c, userID, "🎯 Який словник тренуємо?", markup)
}

// handleTrainVocabSelection asks for the drill direction
func (h *Handler) handleTrainVocabSelection(c tele.Context, data string) error {
	userID := c.Sender().ID

	vocabularyID, err := strconv.ParseInt(strings.TrimPrefix(data, "tvocab_"), 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Невірний словник"})
	}

	h.SetState(userID, &domain.StateData{
		State:        domain.StateSelectingMode,
		VocabularyID: vocabularyID,
	})

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnModeDirect),
		markup.Row(btnModeReverse),
		markup.Row(btnBack),
	)
	return h.editOrSend(c, userID, "Обери напрямок тренування:", markup)
}

// handleModeSelection starts the drill run in the chosen mode
func (h *Handler) handleModeSelection(c tele.Context) error {
	userID := c.Sender().ID

	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state := h.GetState(userID)
	if state.State != domain.StateSelectingMode {
		return c.Respond()
	}

	mode := domain.DirectTranslation
	if c.Callback() != nil && c.Callback().Unique == btnModeReverse.Unique {
		mode = domain.ReverseTranslation
	}

	if err := h.trainingService.Start(userID, state.VocabularyID, mode); err != nil {
		if errors.Is(err, service.ErrNoPairs) {
			return c.Respond(&tele.CallbackResponse{
				Text:      "У цьому словнику немає пар",
				ShowAlert: true,
			})
		}
		h.logger.Error("Failed to start training", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: "Не вдалося почати тренування"})
	}

	h.SetState(userID, &domain.StateData{
		State:        domain.StateDrilling,
		VocabularyID: state.VocabularyID,
	})
	return h.sendNextPrompt(c, userID)
}

// sendNextPrompt advances the drill: sends the next prompt, or the final
// summary when the run is exhausted
func (h *Handler) sendNextPrompt(c tele.Context, userID int64) error {
	prompt, session, err := h.trainingService.Next(userID)
	if err != nil {
		h.logger.Error("Failed to advance training", zap.Error(err), zap.Int64("user_id", userID))
		h.ResetState(userID)
		return c.Send(msgInternalError)
	}

	if session != nil {
		h.ResetState(userID)
		return h.sendSummary(c, userID, session)
	}

	run, err := h.trainingService.Run(userID)
	if err != nil {
		return c.Send(msgInternalError)
	}

	text := fmt.Sprintf("➡️ %s\n\nЗалишилось пар: %d", prompt, run.Remaining())
	return c.Send(text, drillMarkup())
}

// sendSummary reports the finished session's statistics
func (h *Handler) sendSummary(c tele.Context, userID int64, session *domain.TrainingSession) error {
	status := "🏁 Тренування завершено!"
	if !session.Completed {
		status = "🛑 Тренування перервано."
	}

	text := fmt.Sprintf(
		"%s\n\n✅ Правильних: %d\n❌ Помилок: %d\n💡 Показано анотацій: %d\n👀 Показано відповідей: %d\n⏱ Час: %s",
		status,
		session.CorrectCount, session.WrongCount,
		session.AnnotationShown, session.TranslationShown,
		session.ElapsedString(),
	)

	if run, err := h.trainingService.Run(userID); err == nil && run.Streak > 0 {
		text += fmt.Sprintf("\n🔥 Повторів поспіль: %d", run.Streak)
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnRepeat),
		markup.Row(btnMainMenu),
	)
	return c.Send(text, markup)
}

// handleSkipPair advances without scoring; refused for the last pair
func (h *Handler) handleSkipPair(c tele.Context) error {
	userID := c.Sender().ID

	if err := h.trainingService.Skip(userID); err != nil {
		if errors.Is(err, service.ErrLastPairSkip) {
			return c.Respond(&tele.CallbackResponse{
				Text:      "Це остання пара, її не можна пропустити",
				ShowAlert: true,
			})
		}
		return c.Respond(&tele.CallbackResponse{Text: "Немає активного тренування"})
	}

	c.Respond()
	return h.sendNextPrompt(c, userID)
}

// handleShowAnnotation reveals the annotation; the same pair is asked again
func (h *Handler) handleShowAnnotation(c tele.Context) error {
	userID := c.Sender().ID

	annotation, err := h.trainingService.ShowAnnotation(userID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Немає активного тренування"})
	}

	c.Respond()
	if err := c.Send("💡 Анотація: " + annotation); err != nil {
		return err
	}
	return h.sendNextPrompt(c, userID)
}

// handleShowTranslation reveals the answer; the pair is resolved unscored
func (h *Handler) handleShowTranslation(c tele.Context) error {
	userID := c.Sender().ID

	answer, err := h.trainingService.ShowTranslation(userID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Немає активного тренування"})
	}

	c.Respond()
	if err := c.Send("👀 Відповідь: " + answer); err != nil {
		return err
	}
	return h.sendNextPrompt(c, userID)
}

// handleStopTraining asks for cancellation confirmation
func (h *Handler) handleStopTraining(c tele.Context) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	if state.State != domain.StateDrilling {
		return c.Respond()
	}

	h.SetState(userID, &domain.StateData{
		State:        domain.StateConfirmingCancel,
		VocabularyID: state.VocabularyID,
	})

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnConfirmStop),
		markup.Row(btnResumeTraining),
	)
	return h.editOrSend(c, userID, "Точно завершити тренування?", markup)
}

// handleConfirmStop finalizes the session as not completed
func (h *Handler) handleConfirmStop(c tele.Context) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	if state.State != domain.StateConfirmingCancel {
		return c.Respond()
	}

	session, err := h.trainingService.Cancel(userID)
	if err != nil {
		h.logger.Error("Failed to cancel training", zap.Error(err), zap.Int64("user_id", userID))
		h.ResetState(userID)
		return c.Send(msgInternalError)
	}

	h.ResetState(userID)
	c.Respond()
	return h.sendSummary(c, userID, session)
}

// handleResumeTraining returns to the same pair after a declined cancel
func (h *Handler) handleResumeTraining(c tele.Context) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	if state.State != domain.StateConfirmingCancel {
		return c.Respond()
	}

	run, err := h.trainingService.Run(userID)
	if err != nil {
		h.ResetState(userID)
		return c.Send(msgInternalError)
	}

	prompt, err := run.Prompt()
	if err != nil {
		h.ResetState(userID)
		return c.Send(msgInternalError)
	}

	h.SetState(userID, &domain.StateData{
		State:        domain.StateDrilling,
		VocabularyID: state.VocabularyID,
	})

	text := fmt.Sprintf("➡️ %s\n\nЗалишилось пар: %d", prompt, run.Remaining())
	return h.editOrSend(c, userID, text, drillMarkup())
}

// handleRepeat restarts the drill over the same vocabulary
func (h *Handler) handleRepeat(c tele.Context) error {
	userID := c.Sender().ID

	if err := h.trainingService.Repeat(userID); err != nil {
		return c.Respond(&tele.CallbackResponse{
			Text:      "Немає тренування для повтору",
			ShowAlert: true,
		})
	}

	run, err := h.trainingService.Run(userID)
	if err != nil {
		return c.Send(msgInternalError)
	}

	h.SetState(userID, &domain.StateData{
		State:        domain.StateDrilling,
		VocabularyID: run.VocabularyID,
	})

	c.Respond()
	return h.sendNextPrompt(c, userID)
}
