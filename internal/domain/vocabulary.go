package domain

import "time"

// Vocabulary is a user-owned list of word pairs
type Vocabulary struct {
	ID          int64
	UserID      int64
	Name        string
	Description string // empty means no description
	IsDeleted   bool
	CreatedAt   time.Time
	Pairs       []WordPair
}
