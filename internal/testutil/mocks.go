package testutil

import (
	"vocadrill/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockVocabularyRepository is a mock for VocabularyRepository
type MockVocabularyRepository struct {
	mock.Mock
}

func (m *MockVocabularyRepository) FindByOwner(userID int64) ([]domain.Vocabulary, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vocabulary), args.Error(1)
}

func (m *MockVocabularyRepository) FindByNameFold(userID int64, name string) (*domain.Vocabulary, error) {
	args := m.Called(userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vocabulary), args.Error(1)
}

func (m *MockVocabularyRepository) Create(userID int64, name, description string, pairs []domain.WordPair) (int64, error) {
	args := m.Called(userID, name, description, pairs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVocabularyRepository) GetPairs(vocabularyID int64) ([]domain.WordPair, error) {
	args := m.Called(vocabularyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordPair), args.Error(1)
}

func (m *MockVocabularyRepository) IncrementPairErrorCount(pairID int64) error {
	args := m.Called(pairID)
	return args.Error(0)
}

func (m *MockVocabularyRepository) SoftDelete(vocabularyID int64) error {
	args := m.Called(vocabularyID)
	return args.Error(0)
}

// MockTrainingRepository is a mock for TrainingRepository
type MockTrainingRepository struct {
	mock.Mock
}

func (m *MockTrainingRepository) RecordSession(session domain.TrainingSession) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockTrainingRepository) CountSessionsSince(hours int) (int, error) {
	args := m.Called(hours)
	return args.Int(0), args.Error(1)
}
