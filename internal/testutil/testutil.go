package testutil

import (
	"time"

	"vocadrill/internal/config"
	"vocadrill/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// DefaultGrammar returns the default separator configuration
func DefaultGrammar() config.GrammarConfig {
	return config.GrammarConfig{
		PairSeparator:          ":",
		ItemSeparator:          ",",
		TranscriptionSeparator: "|",
	}
}

// DefaultLimits returns the default validation bounds
func DefaultLimits() config.LimitsConfig {
	return config.LimitsConfig{
		MinWordLen:       1,
		MaxWordLen:       50,
		MinItems:         1,
		MaxItems:         5,
		MaxAnnotationLen: 150,
		MinVocabNameLen:  3,
		MaxVocabNameLen:  50,
		MaxVocabDescLen:  200,
	}
}

// NewTestPair builds a pair with a single word and translation
func NewTestPair(id int64, word, translation string) domain.WordPair {
	return domain.WordPair{
		ID:           id,
		Words:        []domain.WordItem{{Text: word}},
		Translations: []domain.WordItem{{Text: translation}},
	}
}

// NewTestVocabulary builds a vocabulary without pairs
func NewTestVocabulary(id, userID int64, name string) domain.Vocabulary {
	return domain.Vocabulary{
		ID:        id,
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}
}

// SequenceRand returns an Intn-shaped function yielding the given values
// in order, wrapping around at the end. Values are clamped into [0, n).
func SequenceRand(values ...int) func(int) int {
	i := 0
	return func(n int) int {
		v := values[i%len(values)]
		i++
		if v >= n {
			v = n - 1
		}
		if v < 0 {
			v = 0
		}
		return v
	}
}
