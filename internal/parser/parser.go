// Package parser implements the wordpair grammar: one line of user text
// encodes source words, translations and an optional annotation using three
// separator tiers (pair, item, transcription). Validators never return Go
// errors for invalid user input; they report validity plus an accumulated
// message list.
package parser

import (
	"strings"

	"vocadrill/internal/config"
	"vocadrill/internal/domain"
	"vocadrill/internal/filter"
)

// Parser parses and validates wordpair lines and vocabulary metadata.
// Separators and bounds come from configuration; the grammar logic never
// hardcodes them.
type Parser struct {
	grammar config.GrammarConfig
	items   filter.Count

	word          component
	translation   component
	transcription component
	annotation    component
	vocabName     component
	vocabDesc     component
}

// New builds a Parser from the configured grammar and limits
func New(grammar config.GrammarConfig, limits config.LimitsConfig) *Parser {
	return &Parser{
		grammar:       grammar,
		items:         filter.Count{Min: limits.MinItems, Max: limits.MaxItems},
		word:          newComponent("слово", limits.MinWordLen, limits.MaxWordLen),
		translation:   newComponent("переклад", limits.MinWordLen, limits.MaxWordLen),
		transcription: newComponent("транскрипція", limits.MinWordLen, limits.MaxWordLen),
		annotation:    newComponent("анотація", 1, limits.MaxAnnotationLen),
		vocabName:     newComponent("назва", limits.MinVocabNameLen, limits.MaxVocabNameLen),
		vocabDesc:     newComponent("опис", 1, limits.MaxVocabDescLen),
	}
}

// Grammar returns the configured separator set
func (p *Parser) Grammar() config.GrammarConfig {
	return p.grammar
}

// LineResult is the outcome of parsing one wordpair line
type LineResult struct {
	Pair   domain.WordPair
	Valid  bool
	Errors []string
}

// ParseLine parses and validates one line of user text as a wordpair.
// The part-count check gates everything else: without 2 or 3 top-level
// parts the items and annotation cannot be located reliably. Past that
// gate every applicable check runs so all errors surface together.
func (p *Parser) ParseLine(line string) LineResult {
	errs := &Errors{}

	parts := strings.Split(line, p.grammar.PairSeparator)
	if len(parts) < 2 {
		errs.Addf("рядок має містити щонайменше слово і переклад, розділені %q",
			p.grammar.PairSeparator)
		return LineResult{Errors: errs.Messages()}
	}
	if len(parts) > 3 {
		errs.Addf("рядок має містити щонайбільше три частини (слова, переклади, анотація), розділені %q",
			p.grammar.PairSeparator)
		return LineResult{Errors: errs.Messages()}
	}

	pair := domain.WordPair{}

	annotationValid := true
	if len(parts) == 3 {
		annotation := strings.TrimSpace(parts[2])
		annotationValid = p.annotation.validate(annotation, errs)
		if annotationValid {
			pair.Annotation = annotation
		}
	}

	words, wordsValid := p.parseItems(parts[0], p.word, "слів", errs)
	translations, translationsValid := p.parseItems(parts[1], p.translation, "перекладів", errs)

	if !annotationValid || !wordsValid || !translationsValid {
		return LineResult{Errors: errs.Messages()}
	}

	pair.Words = words
	pair.Translations = translations
	return LineResult{Pair: pair, Valid: true}
}

// parseItems splits one part into item tokens, validates the token count
// and every token. A single invalid item invalidates the whole part, but
// every item is still checked so all errors are reported.
func (p *Parser) parseItems(part string, comp component, label string, errs *Errors) ([]domain.WordItem, bool) {
	tokens := strings.Split(part, p.grammar.ItemSeparator)

	ok := true
	if !p.items.Apply(len(tokens)) {
		errs.Addf("кількість %s має бути від %d до %d, отримано %d",
			label, p.items.Min, p.items.Max, len(tokens))
		ok = false
	}

	items := make([]domain.WordItem, 0, len(tokens))
	for _, token := range tokens {
		item, itemOK := p.parseItem(token, comp, errs)
		if !itemOK {
			ok = false
			continue
		}
		items = append(items, item)
	}

	if !ok {
		return nil, false
	}
	return items, true
}

// parseItem splits one item token into text and optional transcription.
// At most one split is attempted: a second transcription separator stays
// inside the transcription value rather than being a syntax error.
func (p *Parser) parseItem(token string, comp component, errs *Errors) (domain.WordItem, bool) {
	components := strings.SplitN(token, p.grammar.TranscriptionSeparator, 2)

	text := strings.TrimSpace(components[0])
	ok := comp.validate(text, errs)

	item := domain.WordItem{Text: text}
	if len(components) == 2 {
		transcription := strings.TrimSpace(components[1])
		if !p.transcription.validate(transcription, errs) {
			ok = false
		}
		item.Transcription = transcription
	}

	return item, ok
}
