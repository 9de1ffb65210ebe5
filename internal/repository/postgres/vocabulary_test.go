package postgres

import (
	"fmt"
	"testing"
	"time"

	"vocadrill/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabularyRepo_FindByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewVocabularyRepo(db)

	userID := int64(123)
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "description", "is_deleted", "created_at"}).
		AddRow(1, userID, "Тварини", "про тварин", false, time.Now()).
		AddRow(2, userID, "Їжа", nil, false, time.Now())

	mock.ExpectQuery("SELECT id, user_id, name, description, is_deleted, created_at").
		WithArgs(userID).
		WillReturnRows(rows)

	vocabs, err := repo.FindByOwner(userID)

	assert.NoError(t, err)
	assert.Len(t, vocabs, 2)
	assert.Equal(t, "Тварини", vocabs[0].Name)
	assert.Equal(t, "про тварин", vocabs[0].Description)
	assert.Empty(t, vocabs[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabularyRepo_FindByNameFold(t *testing.T) {
	tests := []struct {
		name        string
		mockRows    *sqlmock.Rows
		expectedNil bool
	}{
		{
			name: "vocabulary found",
			mockRows: sqlmock.NewRows([]string{"id", "user_id", "name", "description", "is_deleted", "created_at"}).
				AddRow(1, 123, "Тварини", nil, false, time.Now()),
			expectedNil: false,
		},
		{
			name:        "not found",
			mockRows:    sqlmock.NewRows([]string{"id", "user_id", "name", "description", "is_deleted", "created_at"}),
			expectedNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewVocabularyRepo(db)

			mock.ExpectQuery("WHERE user_id = \\$1 AND LOWER\\(name\\) = LOWER\\(\\$2\\)").
				WithArgs(int64(123), "тварини").
				WillReturnRows(tt.mockRows)

			vocab, err := repo.FindByNameFold(123, "тварини")

			assert.NoError(t, err)
			if tt.expectedNil {
				assert.Nil(t, vocab)
			} else {
				assert.NotNil(t, vocab)
				assert.Equal(t, "Тварини", vocab.Name)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVocabularyRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewVocabularyRepo(db)

	pairs := []domain.WordPair{
		{
			Words:        []domain.WordItem{{Text: "cat", Transcription: "кет"}},
			Translations: []domain.WordItem{{Text: "кіт"}},
			Annotation:   "тварина",
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO vocabularies").
		WithArgs(int64(123), "Тварини", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("INSERT INTO pairs").
		WithArgs(int64(7), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(70))
	mock.ExpectExec("INSERT INTO pair_items").
		WithArgs(int64(70), "word", 0, "cat", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO pair_items").
		WithArgs(int64(70), "translation", 0, "кіт", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	id, err := repo.Create(123, "Тварини", "опис", pairs)

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabularyRepo_Create_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewVocabularyRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO vocabularies").
		WithArgs(int64(123), "Тварини", sqlmock.AnyArg()).
		WillReturnError(fmt.Errorf("insert error"))
	mock.ExpectRollback()

	_, err = repo.Create(123, "Тварини", "", []domain.WordPair{{}})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabularyRepo_GetPairs(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewVocabularyRepo(db)

	rows := sqlmock.NewRows([]string{"id", "annotation", "error_count", "kind", "text", "transcription"}).
		AddRow(70, "тварина", 3, "word", "cat", "кет").
		AddRow(70, "тварина", 3, "translation", "кіт", nil).
		AddRow(71, nil, 0, "word", "dog", nil).
		AddRow(71, nil, 0, "translation", "пес", nil)

	mock.ExpectQuery("SELECT p.id, p.annotation, p.error_count").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	pairs, err := repo.GetPairs(7)

	require.NoError(t, err)
	require.Len(t, pairs, 2)

	assert.Equal(t, int64(70), pairs[0].ID)
	assert.Equal(t, "тварина", pairs[0].Annotation)
	assert.Equal(t, 3, pairs[0].ErrorCount)
	assert.Equal(t, []domain.WordItem{{Text: "cat", Transcription: "кет"}}, pairs[0].Words)
	assert.Equal(t, []domain.WordItem{{Text: "кіт"}}, pairs[0].Translations)

	assert.Equal(t, int64(71), pairs[1].ID)
	assert.Empty(t, pairs[1].Annotation)
	assert.Equal(t, []domain.WordItem{{Text: "dog"}}, pairs[1].Words)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabularyRepo_IncrementPairErrorCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewVocabularyRepo(db)

	mock.ExpectExec("SET error_count = error_count \\+ 1").
		WithArgs(int64(70)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.IncrementPairErrorCount(70)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabularyRepo_SoftDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewVocabularyRepo(db)

	mock.ExpectExec("SET is_deleted = TRUE").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.SoftDelete(7)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
