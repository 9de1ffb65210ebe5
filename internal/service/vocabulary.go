package service

import (
	"fmt"
	"strings"

	"vocadrill/internal/config"
	"vocadrill/internal/domain"
	"vocadrill/internal/parser"
	"vocadrill/internal/repository"
)

// VocabularyService handles vocabulary creation and browsing
type VocabularyService struct {
	vocabRepo repository.VocabularyRepository
	parser    *parser.Parser
}

// NewVocabularyService creates a new vocabulary service
func NewVocabularyService(vocabRepo repository.VocabularyRepository, p *parser.Parser) *VocabularyService {
	return &VocabularyService{
		vocabRepo: vocabRepo,
		parser:    p,
	}
}

// Grammar returns the separator set the parser is configured with, for
// rendering format hints to the user
func (s *VocabularyService) Grammar() config.GrammarConfig {
	return s.parser.Grammar()
}

// ValidateName checks a vocabulary name against length, character and
// per-owner uniqueness rules. Returns all failing messages; the error is
// non-nil only when the store lookup fails.
func (s *VocabularyService) ValidateName(userID int64, name string) (bool, []string, error) {
	errs := &parser.Errors{}
	ok, err := s.parser.ValidateVocabName(name, func(candidate string) (bool, error) {
		existing, err := s.vocabRepo.FindByNameFold(userID, candidate)
		if err != nil {
			return false, err
		}
		return existing != nil, nil
	}, errs)
	if err != nil {
		return false, nil, fmt.Errorf("failed to check name uniqueness: %w", err)
	}
	return ok, errs.Messages(), nil
}

// ValidateDescription checks a description's length bounds
func (s *VocabularyService) ValidateDescription(description string) (bool, []string) {
	errs := &parser.Errors{}
	ok := s.parser.ValidateVocabDescription(description, errs)
	return ok, errs.Messages()
}

// ParseLines parses a multi-line submission into wordpairs. Each line is
// one independent parse attempt: an invalid line collects its errors and
// leaves the other lines unaffected.
func (s *VocabularyService) ParseLines(text string) ([]domain.WordPair, []string) {
	var pairs []domain.WordPair
	var errors []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		result := s.parser.ParseLine(line)
		if !result.Valid {
			for _, msg := range result.Errors {
				errors = append(errors, fmt.Sprintf("%q: %s", line, msg))
			}
			continue
		}
		pairs = append(pairs, result.Pair)
	}

	return pairs, errors
}

// Create persists a vocabulary with its pairs and returns the new id.
// At least one pair is required.
func (s *VocabularyService) Create(userID int64, name, description string, pairs []domain.WordPair) (int64, error) {
	if len(pairs) == 0 {
		return 0, fmt.Errorf("vocabulary must contain at least one pair")
	}
	return s.vocabRepo.Create(userID, strings.TrimSpace(name), strings.TrimSpace(description), pairs)
}

// List returns the user's vocabularies, soft-deleted ones excluded
func (s *VocabularyService) List(userID int64) ([]domain.Vocabulary, error) {
	return s.vocabRepo.FindByOwner(userID)
}

// GetPairs returns all pairs of a vocabulary with their error counters
func (s *VocabularyService) GetPairs(vocabularyID int64) ([]domain.WordPair, error) {
	return s.vocabRepo.GetPairs(vocabularyID)
}

// Delete soft-deletes a vocabulary
func (s *VocabularyService) Delete(vocabularyID int64) error {
	return s.vocabRepo.SoftDelete(vocabularyID)
}
