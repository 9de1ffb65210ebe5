package handler

import (
	"sync"

	"vocadrill/internal/domain"
	"vocadrill/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot             *tele.Bot
	authService     *service.AuthService
	vocabService    *service.VocabularyService
	trainingService *service.TrainingService
	logger          *zap.Logger

	// User dialogue states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Per-user locks to serialize callback processing
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	vocabService *service.VocabularyService,
	trainingService *service.TrainingService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:             bot,
		authService:     authService,
		vocabService:    vocabService,
		trainingService: trainingService,
		logger:          logger,
		states:          make(map[int64]*domain.StateData),
		callbackLocks:   make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnCreateVocab, h.handleCreateVocab)
	h.bot.Handle(&btnListVocabs, h.handleListVocabs)
	h.bot.Handle(&btnTrain, h.handleTrain)
	h.bot.Handle(&btnSkipDesc, h.handleSkipDesc)
	h.bot.Handle(&btnDonePairs, h.handleDonePairs)
	h.bot.Handle(&btnCancel, h.handleCancel)
	h.bot.Handle(&btnModeDirect, h.handleModeSelection)
	h.bot.Handle(&btnModeReverse, h.handleModeSelection)
	h.bot.Handle(&btnSkipPair, h.handleSkipPair)
	h.bot.Handle(&btnShowAnnotation, h.handleShowAnnotation)
	h.bot.Handle(&btnShowTranslation, h.handleShowTranslation)
	h.bot.Handle(&btnStopTraining, h.handleStopTraining)
	h.bot.Handle(&btnConfirmStop, h.handleConfirmStop)
	h.bot.Handle(&btnResumeTraining, h.handleResumeTraining)
	h.bot.Handle(&btnRepeat, h.handleRepeat)
	h.bot.Handle(&btnBack, h.handleStart)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// userLock returns the per-user mutex serializing callback processing
func (h *Handler) userLock(userID int64) *sync.Mutex {
	h.callbackMux.Lock()
	defer h.callbackMux.Unlock()

	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	return lock
}

// Inline keyboard buttons
var (
	btnCreateVocab = tele.Btn{
		Unique: "create_vocab",
		Text:   "📝 Новий словник",
	}
	btnListVocabs = tele.Btn{
		Unique: "list_vocabs",
		Text:   "📚 Мої словники",
	}
	btnTrain = tele.Btn{
		Unique: "train",
		Text:   "🎯 Тренування",
	}
	btnSkipDesc = tele.Btn{
		Unique: "skip_desc",
		Text:   "⏭ Без опису",
	}
	btnDonePairs = tele.Btn{
		Unique: "done_pairs",
		Text:   "✅ Зберегти словник",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Скасувати",
	}
	btnModeDirect = tele.Btn{
		Unique: "mode_direct",
		Text:   "➡️ Слово → переклад",
	}
	btnModeReverse = tele.Btn{
		Unique: "mode_reverse",
		Text:   "⬅️ Переклад → слово",
	}
	btnSkipPair = tele.Btn{
		Unique: "skip_pair",
		Text:   "⏭ Пропустити",
	}
	btnShowAnnotation = tele.Btn{
		Unique: "show_annotation",
		Text:   "💡 Анотація",
	}
	btnShowTranslation = tele.Btn{
		Unique: "show_translation",
		Text:   "👀 Показати відповідь",
	}
	btnStopTraining = tele.Btn{
		Unique: "stop_training",
		Text:   "🛑 Завершити",
	}
	btnConfirmStop = tele.Btn{
		Unique: "confirm_stop",
		Text:   "Так, завершити",
	}
	btnResumeTraining = tele.Btn{
		Unique: "resume_training",
		Text:   "Ні, продовжити",
	}
	btnRepeat = tele.Btn{
		Unique: "repeat",
		Text:   "🔁 Ще раз",
	}
	btnBack = tele.Btn{
		Unique: "back",
		Text:   "🏠 Назад",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Головне меню",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnCreateVocab),
		menu.Row(btnListVocabs),
		menu.Row(btnTrain),
	)
	return menu
}

// drillMarkup returns the drill keyboard shown with every prompt
func drillMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnSkipPair, btnShowAnnotation),
		markup.Row(btnShowTranslation),
		markup.Row(btnStopTraining),
	)
	return markup
}

// cancelMarkup returns a keyboard with a single cancel button
func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}
