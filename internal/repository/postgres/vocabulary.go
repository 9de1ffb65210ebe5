package postgres

import (
	"database/sql"
	"fmt"

	"vocadrill/internal/domain"
)

// VocabularyRepo implements repository.VocabularyRepository
type VocabularyRepo struct {
	db *sql.DB
}

// NewVocabularyRepo creates a new vocabulary repository
func NewVocabularyRepo(db *sql.DB) *VocabularyRepo {
	return &VocabularyRepo{db: db}
}

// FindByOwner returns the owner's vocabularies, newest first.
// Soft-deleted vocabularies are excluded.
func (r *VocabularyRepo) FindByOwner(userID int64) ([]domain.Vocabulary, error) {
	query := `
		SELECT id, user_id, name, description, is_deleted, created_at
		FROM vocabularies
		WHERE user_id = $1 AND is_deleted = FALSE
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vocabs []domain.Vocabulary
	for rows.Next() {
		var v domain.Vocabulary
		var description sql.NullString
		if err := rows.Scan(&v.ID, &v.UserID, &v.Name, &description, &v.IsDeleted, &v.CreatedAt); err != nil {
			return nil, err
		}
		if description.Valid {
			v.Description = description.String
		}
		vocabs = append(vocabs, v)
	}

	return vocabs, rows.Err()
}

// FindByNameFold looks a vocabulary up by name case-insensitively
func (r *VocabularyRepo) FindByNameFold(userID int64, name string) (*domain.Vocabulary, error) {
	var v domain.Vocabulary
	var description sql.NullString
	query := `
		SELECT id, user_id, name, description, is_deleted, created_at
		FROM vocabularies
		WHERE user_id = $1 AND LOWER(name) = LOWER($2) AND is_deleted = FALSE
	`
	err := r.db.QueryRow(query, userID, name).Scan(
		&v.ID, &v.UserID, &v.Name, &description, &v.IsDeleted, &v.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if description.Valid {
		v.Description = description.String
	}

	return &v, nil
}

// Create persists a vocabulary with all its pairs and items in one transaction
func (r *VocabularyRepo) Create(userID int64, name, description string, pairs []domain.WordPair) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var vocabularyID int64
	query := `
		INSERT INTO vocabularies (user_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := tx.QueryRow(query, userID, name, nullString(description)).Scan(&vocabularyID); err != nil {
		return 0, fmt.Errorf("failed to insert vocabulary: %w", err)
	}

	for _, pair := range pairs {
		var pairID int64
		pairQuery := `
			INSERT INTO pairs (vocabulary_id, annotation)
			VALUES ($1, $2)
			RETURNING id
		`
		if err := tx.QueryRow(pairQuery, vocabularyID, nullString(pair.Annotation)).Scan(&pairID); err != nil {
			return 0, fmt.Errorf("failed to insert pair: %w", err)
		}

		if err := insertItems(tx, pairID, "word", pair.Words); err != nil {
			return 0, err
		}
		if err := insertItems(tx, pairID, "translation", pair.Translations); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return vocabularyID, nil
}

func insertItems(tx *sql.Tx, pairID int64, kind string, items []domain.WordItem) error {
	query := `
		INSERT INTO pair_items (pair_id, kind, position, text, transcription)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, item := range items {
		if _, err := tx.Exec(query, pairID, kind, i, item.Text, nullString(item.Transcription)); err != nil {
			return fmt.Errorf("failed to insert %s item: %w", kind, err)
		}
	}
	return nil
}

// GetPairs returns all pairs of a vocabulary with their items and
// persisted error counters
func (r *VocabularyRepo) GetPairs(vocabularyID int64) ([]domain.WordPair, error) {
	query := `
		SELECT p.id, p.annotation, p.error_count, i.kind, i.text, i.transcription
		FROM pairs p
		JOIN pair_items i ON i.pair_id = p.id
		WHERE p.vocabulary_id = $1
		ORDER BY p.id, i.kind DESC, i.position
	`

	rows, err := r.db.Query(query, vocabularyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []domain.WordPair
	var current *domain.WordPair
	for rows.Next() {
		var pairID int64
		var annotation, transcription sql.NullString
		var errorCount int
		var kind, text string
		if err := rows.Scan(&pairID, &annotation, &errorCount, &kind, &text, &transcription); err != nil {
			return nil, err
		}

		if current == nil || current.ID != pairID {
			pairs = append(pairs, domain.WordPair{
				ID:         pairID,
				Annotation: annotation.String,
				ErrorCount: errorCount,
			})
			current = &pairs[len(pairs)-1]
		}

		item := domain.WordItem{Text: text, Transcription: transcription.String}
		if kind == "word" {
			current.Words = append(current.Words, item)
		} else {
			current.Translations = append(current.Translations, item)
		}
	}

	return pairs, rows.Err()
}

// IncrementPairErrorCount bumps a pair's persistent error counter.
// Counters only ever grow; no code path resets them.
func (r *VocabularyRepo) IncrementPairErrorCount(pairID int64) error {
	query := `
		UPDATE pairs
		SET error_count = error_count + 1
		WHERE id = $1
	`
	_, err := r.db.Exec(query, pairID)
	return err
}

// SoftDelete excludes a vocabulary from listings while preserving history
func (r *VocabularyRepo) SoftDelete(vocabularyID int64) error {
	query := `
		UPDATE vocabularies
		SET is_deleted = TRUE
		WHERE id = $1
	`
	_, err := r.db.Exec(query, vocabularyID)
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
