package domain

import (
	"fmt"
	"time"
)

// TrainingMode is the drill direction
type TrainingMode string

const (
	// DirectTranslation shows words and expects a translation
	DirectTranslation TrainingMode = "direct"
	// ReverseTranslation shows translations and expects a word
	ReverseTranslation TrainingMode = "reverse"
)

// TrainingSession is the persisted record of one finished drill run
type TrainingSession struct {
	ID               int64
	UserID           int64
	VocabularyID     int64
	Mode             TrainingMode
	StartedAt        time.Time
	FinishedAt       time.Time
	CorrectCount     int
	WrongCount       int
	AnnotationShown  int
	TranslationShown int
	Completed        bool
}

// Elapsed returns the wall-clock duration of the session
func (s TrainingSession) Elapsed() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// ElapsedString reports elapsed time as whole minutes plus remainder seconds
func (s TrainingSession) ElapsedString() string {
	total := int(s.Elapsed().Seconds())
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d хв %d с", total/60, total%60)
}
