package service

import (
	"vocadrill/internal/repository"

	"go.uber.org/zap"
)

// StatsService reports aggregate training activity
type StatsService struct {
	trainingRepo repository.TrainingRepository
	logger       *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(trainingRepo repository.TrainingRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		trainingRepo: trainingRepo,
		logger:       logger,
	}
}

// LogDailyActivity logs the number of sessions finished in the last day
func (s *StatsService) LogDailyActivity() error {
	const windowHours = 24

	count, err := s.trainingRepo.CountSessionsSince(windowHours)
	if err != nil {
		s.logger.Error("Failed to count recent sessions", zap.Error(err))
		return err
	}

	s.logger.Info("Daily training activity",
		zap.Int("window_hours", windowHours),
		zap.Int("sessions", count),
	)
	return nil
}
