package repository

import (
	"vocadrill/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	IsAuthorized(userID int64) (bool, error)
	AuthorizeUser(userID int64) error
	EnsureUserExists(userID int64) error
}

// VocabularyRepository defines vocabulary and pair data operations
type VocabularyRepository interface {
	// FindByOwner returns the owner's vocabularies, soft-deleted ones excluded
	FindByOwner(userID int64) ([]domain.Vocabulary, error)
	// FindByNameFold looks a vocabulary up by name case-insensitively;
	// returns nil when the owner has no vocabulary with that name
	FindByNameFold(userID int64, name string) (*domain.Vocabulary, error)
	// Create persists a vocabulary with all its pairs and returns the new id
	Create(userID int64, name, description string, pairs []domain.WordPair) (int64, error)
	// GetPairs returns all pairs of a vocabulary including persisted error counters
	GetPairs(vocabularyID int64) ([]domain.WordPair, error)
	// IncrementPairErrorCount bumps a pair's persistent error counter
	IncrementPairErrorCount(pairID int64) error
	// SoftDelete excludes a vocabulary from listings while preserving history
	SoftDelete(vocabularyID int64) error
}

// TrainingRepository defines training session data operations
type TrainingRepository interface {
	// RecordSession persists one finished session record
	RecordSession(session domain.TrainingSession) error
	// CountSessionsSince returns the number of sessions recorded after the cutoff
	CountSessionsSince(hours int) (int, error)
}
