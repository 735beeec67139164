package model

import "strings"

// PersonaKind names who a letter is attributed to.
//
// The set is closed: anything else reaching the template library is treated as
// PersonaFutureSelf. Use ParsePersonaKind at the edges to reject unknown values.
type PersonaKind string

const (
	PersonaFutureSelf PersonaKind = "future-self"
	PersonaCelebrity  PersonaKind = "celebrity"
	PersonaMentor     PersonaKind = "mentor"
	PersonaLovedOne   PersonaKind = "loved-one"
)

// personaAliases maps legacy spellings onto the canonical kind.
var personaAliases = map[string]PersonaKind{
	"famous": PersonaCelebrity,
}

// PersonaKinds lists the canonical kinds in display order.
func PersonaKinds() []PersonaKind {
	return []PersonaKind{PersonaFutureSelf, PersonaCelebrity, PersonaMentor, PersonaLovedOne}
}

// ParsePersonaKind normalizes s (trimmed, case-insensitive, aliases resolved).
// The bool is false when s does not name a known kind.
func ParsePersonaKind(s string) (PersonaKind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if alias, ok := personaAliases[s]; ok {
		return alias, true
	}
	k := PersonaKind(s)
	return k, k.Known()
}

// Known reports whether k is one of the canonical kinds.
func (k PersonaKind) Known() bool {
	switch k {
	case PersonaFutureSelf, PersonaCelebrity, PersonaMentor, PersonaLovedOne:
		return true
	}
	return false
}
