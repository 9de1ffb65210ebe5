package parser

import (
	"strings"

	"vocadrill/internal/filter"
)

// NameTakenFunc reports whether the owner already has a vocabulary with the
// given name, compared case-insensitively. Supplied by the persistence
// collaborator; its error is a store failure and is propagated as-is.
type NameTakenFunc func(name string) (bool, error)

// ValidateVocabName runs three independent checks on a vocabulary name:
// length bounds, allowed characters and per-owner uniqueness. All failing
// messages accumulate; the returned error is non-nil only on a store failure.
func (p *Parser) ValidateVocabName(name string, taken NameTakenFunc, errs *Errors) (bool, error) {
	name = strings.TrimSpace(name)

	ok := p.vocabName.validate(name, errs)

	exists, err := taken(name)
	if err != nil {
		return false, err
	}
	if exists {
		errs.Addf("словник з назвою %q вже існує", name)
		ok = false
	}

	return ok, nil
}

// ValidateVocabDescription checks a description's length bounds only; the
// character set is unrestricted. An absent description never reaches this
// validator, but an empty value is still treated as nothing to process.
func (p *Parser) ValidateVocabDescription(description string, errs *Errors) bool {
	description = strings.TrimSpace(description)
	if filter.Empty(description) {
		return true
	}
	if !p.vocabDesc.length.Apply(description) {
		errs.Addf("%s %q має містити від %d до %d символів",
			p.vocabDesc.label, description, p.vocabDesc.length.Min, p.vocabDesc.length.Max)
		return false
	}
	return true
}
