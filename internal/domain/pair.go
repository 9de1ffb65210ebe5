package domain

import "strings"

// WordItem is one word or translation token with an optional
// pronunciation transcription
type WordItem struct {
	Text          string
	Transcription string // empty means no transcription
}

// Display renders the item as "text [transcription]" or bare "text"
func (i WordItem) Display() string {
	if i.Transcription == "" {
		return i.Text
	}
	return i.Text + " [" + i.Transcription + "]"
}

// WordPair is one drill unit: equivalent source words, their translations
// and an optional annotation
type WordPair struct {
	ID           int64
	Words        []WordItem
	Translations []WordItem
	Annotation   string // empty means no annotation
	ErrorCount   int
}

// AnnotationPlaceholder is shown instead of an absent annotation.
// It exists only at render time; the stored value stays empty.
const AnnotationPlaceholder = "–"

// DisplayAnnotation returns the annotation or a placeholder when absent
func (p WordPair) DisplayAnnotation() string {
	if p.Annotation == "" {
		return AnnotationPlaceholder
	}
	return p.Annotation
}

// DisplayWords renders all word items joined by ", "
func (p WordPair) DisplayWords() string {
	return displayItems(p.Words)
}

// DisplayTranslations renders all translation items joined by ", "
func (p WordPair) DisplayTranslations() string {
	return displayItems(p.Translations)
}

func displayItems(items []WordItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.Display())
	}
	return strings.Join(parts, ", ")
}
