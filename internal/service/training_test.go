package service

import (
	"fmt"
	"testing"

	"vocadrill/internal/domain"
	"vocadrill/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestTrainingService(vocabRepo *testutil.MockVocabularyRepository, trainingRepo *testutil.MockTrainingRepository, intn func(int) int) *TrainingService {
	return NewTrainingService(vocabRepo, trainingRepo, testutil.NewTestLogger(), intn)
}

func TestTrainingService_Start(t *testing.T) {
	tests := []struct {
		name          string
		mockPairs     []domain.WordPair
		mockError     error
		expectedError error
	}{
		{
			name:      "starts with pairs",
			mockPairs: []domain.WordPair{testutil.NewTestPair(1, "cat", "кіт")},
		},
		{
			name:          "empty vocabulary",
			mockPairs:     []domain.WordPair{},
			expectedError: ErrNoPairs,
		},
		{
			name:      "store failure",
			mockError: fmt.Errorf("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vocabRepo := new(testutil.MockVocabularyRepository)
			trainingRepo := new(testutil.MockTrainingRepository)
			vocabRepo.On("GetPairs", int64(5)).Return(tt.mockPairs, tt.mockError)

			s := newTestTrainingService(vocabRepo, trainingRepo, testutil.SequenceRand(0))

			err := s.Start(123, 5, domain.DirectTranslation)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else if tt.mockError != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				_, runErr := s.Run(123)
				assert.NoError(t, runErr)
			}

			vocabRepo.AssertExpectations(t)
		})
	}
}

func TestTrainingService_Run_NoSession(t *testing.T) {
	s := newTestTrainingService(new(testutil.MockVocabularyRepository), new(testutil.MockTrainingRepository), testutil.SequenceRand(0))

	_, err := s.Run(123)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestTrainingService_Answer_WrongIncrementsErrorCounter(t *testing.T) {
	vocabRepo := new(testutil.MockVocabularyRepository)
	trainingRepo := new(testutil.MockTrainingRepository)
	vocabRepo.On("GetPairs", int64(5)).Return([]domain.WordPair{testutil.NewTestPair(42, "cat", "кіт")}, nil)
	vocabRepo.On("IncrementPairErrorCount", int64(42)).Return(nil)

	s := newTestTrainingService(vocabRepo, trainingRepo, testutil.SequenceRand(0))
	require.NoError(t, s.Start(123, 5, domain.DirectTranslation))

	_, _, err := s.Next(123)
	require.NoError(t, err)

	correct, err := s.Answer(123, "пес")
	require.NoError(t, err)
	assert.False(t, correct)

	vocabRepo.AssertExpectations(t)
}

func TestTrainingService_Answer_CorrectDoesNotTouchCounter(t *testing.T) {
	vocabRepo := new(testutil.MockVocabularyRepository)
	trainingRepo := new(testutil.MockTrainingRepository)
	vocabRepo.On("GetPairs", int64(5)).Return([]domain.WordPair{testutil.NewTestPair(42, "cat", "кіт")}, nil)

	s := newTestTrainingService(vocabRepo, trainingRepo, testutil.SequenceRand(0))
	require.NoError(t, s.Start(123, 5, domain.DirectTranslation))

	_, _, err := s.Next(123)
	require.NoError(t, err)

	correct, err := s.Answer(123, " Кіт ")
	require.NoError(t, err)
	assert.True(t, correct)

	vocabRepo.AssertNotCalled(t, "IncrementPairErrorCount", mock.Anything)
}

func TestTrainingService_Next_FinishesExhaustedRun(t *testing.T) {
	vocabRepo := new(testutil.MockVocabularyRepository)
	trainingRepo := new(testutil.MockTrainingRepository)
	vocabRepo.On("GetPairs", int64(5)).Return([]domain.WordPair{testutil.NewTestPair(42, "cat", "кіт")}, nil)
	trainingRepo.On("RecordSession", mock.MatchedBy(func(s domain.TrainingSession) bool {
		return s.Completed && s.CorrectCount == 1 && s.WrongCount == 0 && s.UserID == 123
	})).Return(nil)

	s := newTestTrainingService(vocabRepo, trainingRepo, testutil.SequenceRand(0))
	require.NoError(t, s.Start(123, 5, domain.DirectTranslation))

	prompt, session, err := s.Next(123)
	require.NoError(t, err)
	require.Nil(t, session)
	assert.Equal(t, "cat", prompt)

	correct, err := s.Answer(123, "кіт")
	require.NoError(t, err)
	require.True(t, correct)

	_, session, err = s.Next(123)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.True(t, session.Completed)

	trainingRepo.AssertExpectations(t)
}

func TestTrainingService_Cancel(t *testing.T) {
	vocabRepo := new(testutil.MockVocabularyRepository)
	trainingRepo := new(testutil.MockTrainingRepository)
	vocabRepo.On("GetPairs", int64(5)).Return([]domain.WordPair{testutil.NewTestPair(42, "cat", "кіт")}, nil)
	trainingRepo.On("RecordSession", mock.MatchedBy(func(s domain.TrainingSession) bool {
		return !s.Completed
	})).Return(nil)

	s := newTestTrainingService(vocabRepo, trainingRepo, testutil.SequenceRand(0))
	require.NoError(t, s.Start(123, 5, domain.DirectTranslation))

	session, err := s.Cancel(123)
	require.NoError(t, err)
	assert.False(t, session.Completed)

	trainingRepo.AssertExpectations(t)
}

func TestTrainingService_Cancel_RecordFailurePropagates(t *testing.T) {
	vocabRepo := new(testutil.MockVocabularyRepository)
	trainingRepo := new(testutil.MockTrainingRepository)
	vocabRepo.On("GetPairs", int64(5)).Return([]domain.WordPair{testutil.NewTestPair(42, "cat", "кіт")}, nil)
	trainingRepo.On("RecordSession", mock.Anything).Return(fmt.Errorf("db error"))

	s := newTestTrainingService(vocabRepo, trainingRepo, testutil.SequenceRand(0))
	require.NoError(t, s.Start(123, 5, domain.DirectTranslation))

	_, err := s.Cancel(123)
	assert.Error(t, err)
}

func TestTrainingService_Repeat(t *testing.T) {
	vocabRepo := new(testutil.MockVocabularyRepository)
	trainingRepo := new(testutil.MockTrainingRepository)
	vocabRepo.On("GetPairs", int64(5)).Return([]domain.WordPair{testutil.NewTestPair(42, "cat", "кіт")}, nil)
	trainingRepo.On("RecordSession", mock.Anything).Return(nil)

	s := newTestTrainingService(vocabRepo, trainingRepo, testutil.SequenceRand(0))
	require.NoError(t, s.Start(123, 5, domain.DirectTranslation))

	_, err := s.Cancel(123)
	require.NoError(t, err)

	require.NoError(t, s.Repeat(123))

	run, err := s.Run(123)
	require.NoError(t, err)
	assert.Equal(t, 1, run.Streak)
	assert.Equal(t, 1, run.Remaining())
}

func TestTrainingService_Stop(t *testing.T) {
	vocabRepo := new(testutil.MockVocabularyRepository)
	trainingRepo := new(testutil.MockTrainingRepository)
	vocabRepo.On("GetPairs", int64(5)).Return([]domain.WordPair{testutil.NewTestPair(42, "cat", "кіт")}, nil)

	s := newTestTrainingService(vocabRepo, trainingRepo, testutil.SequenceRand(0))
	require.NoError(t, s.Start(123, 5, domain.DirectTranslation))

	s.Stop(123)

	_, err := s.Run(123)
	assert.ErrorIs(t, err, ErrNoActiveSession)
	// Nothing was persisted for the abandoned run
	trainingRepo.AssertNotCalled(t, "RecordSession", mock.Anything)
}
