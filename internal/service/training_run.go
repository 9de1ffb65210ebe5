package service

import (
	"errors"
	"strings"
	"time"

	"vocadrill/internal/domain"
)

var (
	// ErrNoActiveSession is returned when a drill action arrives without a run
	ErrNoActiveSession = errors.New("no active training session")
	// ErrNoPairs is returned when a vocabulary has nothing to drill
	ErrNoPairs = errors.New("vocabulary has no pairs")
	// ErrLastPairSkip is returned when skipping would stall the session
	ErrLastPairSkip = errors.New("cannot skip the last remaining pair")
	// ErrNoCurrentPair signals a drill action before any pair was drawn;
	// it indicates a state-machine invariant violation, not user input
	ErrNoCurrentPair = errors.New("no current pair selected")
)

// TrainingRun is the in-memory state of one drill run over a vocabulary's
// pairs. One run belongs to one user and is driven one interaction at a
// time, so it needs no internal locking.
type TrainingRun struct {
	VocabularyID int64
	Mode         domain.TrainingMode
	Streak       int

	pairs     []domain.WordPair
	available []int // not-yet-resolved positions in pairs
	current   int   // position of the pair being drilled, -1 before first draw
	reshow    bool  // present the same pair again on the next draw

	startedAt        time.Time
	correct          int
	wrong            int
	annotationShown  int
	translationShown int

	intn func(int) int
}

// newTrainingRun initializes a run over the full pair list. intn must
// return a uniform value in [0, n); it is injectable so tests can pin the
// selection order.
func newTrainingRun(vocabularyID int64, mode domain.TrainingMode, pairs []domain.WordPair, intn func(int) int) *TrainingRun {
	run := &TrainingRun{
		VocabularyID: vocabularyID,
		Mode:         mode,
		pairs:        pairs,
		current:      -1,
		intn:         intn,
	}
	run.reset()
	return run
}

// reset rearms the run over the same pairs: all indices available again,
// counters zeroed, fresh start timestamp
func (r *TrainingRun) reset() {
	r.available = make([]int, len(r.pairs))
	for i := range r.pairs {
		r.available[i] = i
	}
	r.current = -1
	r.reshow = false
	r.correct = 0
	r.wrong = 0
	r.annotationShown = 0
	r.translationShown = 0
	r.startedAt = time.Now()
}

// Next selects the pair to drill next. Returns false when no indices
// remain and the session is complete. A freshly drawn index never repeats
// the previous one while more than one candidate exists; the reshow flag
// overrides that and repeats the current pair verbatim.
func (r *TrainingRun) Next() bool {
	if len(r.available) == 0 {
		return false
	}

	if r.reshow {
		r.reshow = false
		return true
	}

	next := r.available[r.intn(len(r.available))]
	for len(r.available) > 1 && next == r.current {
		next = r.available[r.intn(len(r.available))]
	}
	r.current = next
	return true
}

// Remaining returns how many pairs are still unresolved
func (r *TrainingRun) Remaining() int {
	return len(r.available)
}

// CurrentPair returns the pair being drilled
func (r *TrainingRun) CurrentPair() (domain.WordPair, error) {
	if r.current < 0 || r.current >= len(r.pairs) {
		return domain.WordPair{}, ErrNoCurrentPair
	}
	return r.pairs[r.current], nil
}

// Prompt formats the source side of the current pair: words in direct
// mode, translations in reverse mode
func (r *TrainingRun) Prompt() (string, error) {
	pair, err := r.CurrentPair()
	if err != nil {
		return "", err
	}
	if r.Mode == domain.ReverseTranslation {
		return pair.DisplayTranslations(), nil
	}
	return pair.DisplayWords(), nil
}

// Answer checks a typed answer against the target side of the current
// pair. Input is trimmed and lowercased; an exact match on any one target
// item text counts as correct. Annotations and transcriptions never match.
// A correct answer resolves the pair; a wrong one leaves it available.
func (r *TrainingRun) Answer(text string) (bool, error) {
	pair, err := r.CurrentPair()
	if err != nil {
		return false, err
	}

	normalized := strings.ToLower(strings.TrimSpace(text))
	for _, item := range r.targetItems(pair) {
		if normalized == strings.ToLower(item.Text) {
			r.correct++
			r.resolveCurrent()
			return true, nil
		}
	}

	r.wrong++
	return false, nil
}

// Skip refuses when exactly one pair remains: there would be nothing else
// to draw and the session would stall
func (r *TrainingRun) Skip() error {
	if len(r.available) == 1 {
		return ErrLastPairSkip
	}
	return nil
}

// ShowAnnotation reveals the current pair's annotation and arms the
// reshow flag so the pair must still be answered
func (r *TrainingRun) ShowAnnotation() (string, error) {
	pair, err := r.CurrentPair()
	if err != nil {
		return "", err
	}
	r.annotationShown++
	r.reshow = true
	return pair.DisplayAnnotation(), nil
}

// ShowTranslation reveals the target side and resolves the current pair
// without scoring it as correct or incorrect
func (r *TrainingRun) ShowTranslation() (string, error) {
	pair, err := r.CurrentPair()
	if err != nil {
		return "", err
	}
	r.translationShown++
	r.resolveCurrent()
	return displayItems(r.targetItems(pair)), nil
}

// Finish builds the persisted session record and rearms the run so the
// user may immediately repeat the same vocabulary
func (r *TrainingRun) Finish(userID int64, completed bool) domain.TrainingSession {
	session := domain.TrainingSession{
		UserID:           userID,
		VocabularyID:     r.VocabularyID,
		Mode:             r.Mode,
		StartedAt:        r.startedAt,
		FinishedAt:       time.Now(),
		CorrectCount:     r.correct,
		WrongCount:       r.wrong,
		AnnotationShown:  r.annotationShown,
		TranslationShown: r.translationShown,
		Completed:        completed,
	}
	r.reset()
	return session
}

func (r *TrainingRun) targetItems(pair domain.WordPair) []domain.WordItem {
	if r.Mode == domain.ReverseTranslation {
		return pair.Words
	}
	return pair.Translations
}

// resolveCurrent removes the current index from the available set
func (r *TrainingRun) resolveCurrent() {
	for i, idx := range r.available {
		if idx == r.current {
			r.available = append(r.available[:i], r.available[i+1:]...)
			return
		}
	}
}

func displayItems(items []domain.WordItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.Display())
	}
	return strings.Join(parts, ", ")
}
