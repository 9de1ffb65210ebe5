package parser

import (
	"vocadrill/internal/filter"
)

// componentExtras are the characters allowed in any component on top of
// letters and digits
const componentExtras = "-_ "

// component validates one atomic string (a word, translation, transcription
// or annotation) against length and allowed-character rules
type component struct {
	label  string
	length filter.Length
	chars  filter.AllowedChars
}

func newComponent(label string, min, max int) component {
	return component{
		label:  label,
		length: filter.Length{Min: min, Max: max},
		chars:  filter.NewAllowedChars(componentExtras),
	}
}

// validate runs every check and accumulates all failures; the messages carry
// the offending value and the allowed bounds so a renderer needs no
// recomputation
func (c component) validate(value string, errs *Errors) bool {
	ok := true
	if !c.length.Apply(value) {
		errs.Addf("%s %q має містити від %d до %d символів",
			c.label, value, c.length.Min, c.length.Max)
		ok = false
	}
	if !c.chars.Apply(value) {
		errs.Addf("%s %q містить недопустимі символи (дозволено літери, цифри та %q)",
			c.label, value, componentExtras)
		ok = false
	}
	return ok
}
