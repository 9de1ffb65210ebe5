package domain

import "time"

// User represents a bot user
type User struct {
	UserID     int64
	Authorized bool
	CreatedAt  time.Time
}

// UserState represents user's current dialogue state
type UserState string

const (
	StateIdle             UserState = "idle"
	StateWaitingVocabName UserState = "waiting_vocab_name"
	StateWaitingVocabDesc UserState = "waiting_vocab_desc"
	StateWaitingPairs     UserState = "waiting_pairs"
	StateSelectingVocab   UserState = "selecting_vocab"
	StateSelectingMode    UserState = "selecting_mode"
	StateDrilling         UserState = "drilling"
	StateConfirmingCancel UserState = "confirming_cancel"
)

// StateData holds temporary data for user's current dialogue state
type StateData struct {
	State        UserState
	VocabName    string
	VocabDesc    string
	PendingPairs []WordPair
	VocabularyID int64
}
