package service

import (
	"fmt"
	"sync"

	"vocadrill/internal/domain"
	"vocadrill/internal/repository"

	"go.uber.org/zap"
)

// TrainingService drives drill sessions: one TrainingRun per user, fed
// from the vocabulary store and persisted once on finish or cancellation.
// An abandoned run simply persists nothing.
type TrainingService struct {
	vocabRepo    repository.VocabularyRepository
	trainingRepo repository.TrainingRepository
	logger       *zap.Logger
	intn         func(int) int

	runMux sync.Mutex
	runs   map[int64]*TrainingRun
}

// NewTrainingService creates a new training service. intn is the random
// source used for pair selection.
func NewTrainingService(
	vocabRepo repository.VocabularyRepository,
	trainingRepo repository.TrainingRepository,
	logger *zap.Logger,
	intn func(int) int,
) *TrainingService {
	return &TrainingService{
		vocabRepo:    vocabRepo,
		trainingRepo: trainingRepo,
		logger:       logger,
		intn:         intn,
		runs:         make(map[int64]*TrainingRun),
	}
}

// Start fetches the vocabulary's pairs once and begins a run for the user
func (s *TrainingService) Start(userID, vocabularyID int64, mode domain.TrainingMode) error {
	pairs, err := s.vocabRepo.GetPairs(vocabularyID)
	if err != nil {
		return fmt.Errorf("failed to fetch pairs: %w", err)
	}
	if len(pairs) == 0 {
		return ErrNoPairs
	}

	s.runMux.Lock()
	s.runs[userID] = newTrainingRun(vocabularyID, mode, pairs, s.intn)
	s.runMux.Unlock()

	s.logger.Info("Training session started",
		zap.Int64("user_id", userID),
		zap.Int64("vocabulary_id", vocabularyID),
		zap.String("mode", string(mode)),
		zap.Int("pairs", len(pairs)),
	)
	return nil
}

// Run returns the user's active run
func (s *TrainingService) Run(userID int64) (*TrainingRun, error) {
	s.runMux.Lock()
	defer s.runMux.Unlock()

	run, exists := s.runs[userID]
	if !exists {
		return nil, ErrNoActiveSession
	}
	return run, nil
}

// Next advances the drill. When pairs remain it returns the next prompt;
// when the run is exhausted it finishes the session, persists the record
// and returns it instead.
func (s *TrainingService) Next(userID int64) (string, *domain.TrainingSession, error) {
	run, err := s.Run(userID)
	if err != nil {
		return "", nil, err
	}

	if !run.Next() {
		session, err := s.finish(userID, run, true)
		if err != nil {
			return "", nil, err
		}
		return "", session, nil
	}

	prompt, err := run.Prompt()
	if err != nil {
		return "", nil, err
	}
	return prompt, nil, nil
}

// Answer checks the user's answer. A wrong answer increments the pair's
// persistent error counter; the pair stays available and may be re-drawn.
func (s *TrainingService) Answer(userID int64, text string) (bool, error) {
	run, err := s.Run(userID)
	if err != nil {
		return false, err
	}

	pair, err := run.CurrentPair()
	if err != nil {
		return false, err
	}

	correct, err := run.Answer(text)
	if err != nil {
		return false, err
	}

	if !correct {
		if err := s.vocabRepo.IncrementPairErrorCount(pair.ID); err != nil {
			return false, fmt.Errorf("failed to increment pair error count: %w", err)
		}
	}
	return correct, nil
}

// Skip requests advancing without scoring. Refused when only one pair
// remains; the caller keeps the same prompt current.
func (s *TrainingService) Skip(userID int64) error {
	run, err := s.Run(userID)
	if err != nil {
		return err
	}
	return run.Skip()
}

// ShowAnnotation reveals the current pair's annotation; the pair is
// re-presented and must still be answered
func (s *TrainingService) ShowAnnotation(userID int64) (string, error) {
	run, err := s.Run(userID)
	if err != nil {
		return "", err
	}
	return run.ShowAnnotation()
}

// ShowTranslation reveals the target side and resolves the pair unscored
func (s *TrainingService) ShowTranslation(userID int64) (string, error) {
	run, err := s.Run(userID)
	if err != nil {
		return "", err
	}
	return run.ShowTranslation()
}

// Cancel finalizes the run as not completed and persists its record
func (s *TrainingService) Cancel(userID int64) (*domain.TrainingSession, error) {
	run, err := s.Run(userID)
	if err != nil {
		return nil, err
	}
	return s.finish(userID, run, false)
}

// Repeat rearms the finished run over the same vocabulary and bumps the
// streak counter
func (s *TrainingService) Repeat(userID int64) error {
	run, err := s.Run(userID)
	if err != nil {
		return err
	}
	run.Streak++
	return nil
}

// Stop discards the user's run without persisting anything
func (s *TrainingService) Stop(userID int64) {
	s.runMux.Lock()
	delete(s.runs, userID)
	s.runMux.Unlock()
}

func (s *TrainingService) finish(userID int64, run *TrainingRun, completed bool) (*domain.TrainingSession, error) {
	session := run.Finish(userID, completed)
	if err := s.trainingRepo.RecordSession(session); err != nil {
		return nil, fmt.Errorf("failed to record training session: %w", err)
	}

	s.logger.Info("Training session finished",
		zap.Int64("user_id", userID),
		zap.Int64("vocabulary_id", session.VocabularyID),
		zap.Bool("completed", completed),
		zap.Int("correct", session.CorrectCount),
		zap.Int("wrong", session.WrongCount),
	)
	return &session, nil
}
