package postgres

import (
	"database/sql"

	"vocadrill/internal/domain"
)

// TrainingRepo implements repository.TrainingRepository
type TrainingRepo struct {
	db *sql.DB
}

// NewTrainingRepo creates a new training repository
func NewTrainingRepo(db *sql.DB) *TrainingRepo {
	return &TrainingRepo{db: db}
}

// RecordSession persists one finished session record
func (r *TrainingRepo) RecordSession(s domain.TrainingSession) error {
	query := `
		INSERT INTO training_sessions
			(user_id, vocabulary_id, mode, started_at, finished_at,
			 correct_count, wrong_count, annotation_shown, translation_shown, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(query,
		s.UserID, s.VocabularyID, string(s.Mode), s.StartedAt, s.FinishedAt,
		s.CorrectCount, s.WrongCount, s.AnnotationShown, s.TranslationShown, s.Completed,
	)
	return err
}

// CountSessionsSince returns the number of sessions recorded within the
// last given hours
func (r *TrainingRepo) CountSessionsSince(hours int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM training_sessions
		WHERE finished_at >= NOW() - INTERVAL '1 hour' * $1
	`
	var count int
	err := r.db.QueryRow(query, hours).Scan(&count)
	return count, err
}
