package collections

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/fincockpit/internal/apperrors"
	"github.com/SscSPs/fincockpit/internal/core/domain"
)

// DefaultPersonaName receives reassigned records when no fallback is supplied.
const DefaultPersonaName = "User"

// PersonaDeleteMode decides what happens to records of a deleted persona.
type PersonaDeleteMode string

const (
	PersonaReassign PersonaDeleteMode = "reassign"
	PersonaCascade  PersonaDeleteMode = "cascade"
)

// PersonaPatch carries optional persona attributes changed along with a rename.
type PersonaPatch struct {
	Note  *string `json:"note,omitempty"`
	Emoji *string `json:"emoji,omitempty"`
}

// attributed lists every collection whose rows carry a person.
func attributed() []string {
	names := make([]string, 0, len(domain.CollectionNames)-1)
	for _, name := range domain.CollectionNames {
		if name != domain.CollectionPersonas {
			names = append(names, name)
		}
	}
	return names
}

func requireName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.NewFieldValidation(field, fmt.Sprintf("%s is required.", field))
	}
	return name, nil
}

// SummarizePersonaImpact counts, per collection, the records attributed to name (ignoring case).
func SummarizePersonaImpact(state domain.Snapshot, name string) (domain.PersonaImpact, error) {
	name, err := requireName("name", name)
	if err != nil {
		return domain.PersonaImpact{}, err
	}
	impact := domain.PersonaImpact{Name: name, Counts: make(map[string]int)}
	for _, collection := range attributed() {
		rows, _ := state.Collection(collection)
		n := 0
		for _, r := range rows {
			if strings.EqualFold(strings.TrimSpace(r.Person), name) {
				n++
			}
		}
		impact.Counts[collection] = n
		impact.Total += n
	}
	return impact, nil
}

// rewritePersons applies fn to every attributed collection containing at least one row of
// person; other collections are shared unchanged. fn returns the row and whether to keep it.
func rewritePersons(state domain.Snapshot, person string, fn func(domain.Record) (domain.Record, bool)) domain.Snapshot {
	out := state
	for _, collection := range attributed() {
		rows, ok := state.Collection(collection)
		if !ok || !containsPerson(rows, person) {
			continue
		}
		next := make([]domain.Record, 0, len(rows))
		for _, r := range rows {
			if !strings.EqualFold(strings.TrimSpace(r.Person), person) {
				next = append(next, r)
				continue
			}
			if r, keep := fn(r); keep {
				next = append(next, r)
			}
		}
		out, _ = out.WithCollection(collection, next)
	}
	return out
}

func containsPerson(rows []domain.Record, person string) bool {
	for _, r := range rows {
		if strings.EqualFold(strings.TrimSpace(r.Person), person) {
			return true
		}
	}
	return false
}

// RenamePersona rewrites person from -> to across every collection and updates the matching
// persona entry, applying patch to it.
func RenamePersona(state domain.Snapshot, from, to string, patch PersonaPatch, now time.Time) (domain.Snapshot, error) {
	from, err := requireName("from", from)
	if err != nil {
		return state, err
	}
	to, err = requireName("to", to)
	if err != nil {
		return state, err
	}
	personas, _ := state.Collection(domain.CollectionPersonas)
	for _, p := range personas {
		if strings.EqualFold(p.Name, to) && !strings.EqualFold(p.Name, from) {
			return state, apperrors.NewValidation(
				fmt.Sprintf("A persona named %q already exists.", p.Name),
				map[string]any{"collection": domain.CollectionPersonas, "field": "to"},
			)
		}
	}

	ts := Timestamp(now)
	out := rewritePersons(state, from, func(r domain.Record) (domain.Record, bool) {
		r.Person = to
		r.UpdatedAt = ts
		return r, true
	})

	if personas != nil {
		next := make([]domain.Record, len(personas))
		for i, p := range personas {
			if strings.EqualFold(strings.TrimSpace(p.Name), from) {
				p.Name = to
				if patch.Note != nil {
					p.Note = *patch.Note
				}
				if patch.Emoji != nil {
					p.Emoji = strings.TrimSpace(*patch.Emoji)
				}
				p.UpdatedAt = ts
			}
			next[i] = p
		}
		out, _ = out.WithCollection(domain.CollectionPersonas, next)
	}
	return out, nil
}

// DeletePersona removes the persona entry for name. In reassign mode its records move to
// fallback (DefaultPersonaName when empty); in cascade mode they are removed.
func DeletePersona(state domain.Snapshot, name string, mode PersonaDeleteMode, fallback string, now time.Time) (domain.Snapshot, error) {
	name, err := requireName("name", name)
	if err != nil {
		return state, err
	}

	var out domain.Snapshot
	switch mode {
	case PersonaReassign:
		fallback = strings.TrimSpace(fallback)
		if fallback == "" {
			fallback = DefaultPersonaName
		}
		if strings.EqualFold(fallback, name) {
			return state, apperrors.NewValidation(
				"Records cannot be reassigned to the persona being deleted.",
				map[string]any{"field": "fallback"},
			)
		}
		ts := Timestamp(now)
		out = rewritePersons(state, name, func(r domain.Record) (domain.Record, bool) {
			r.Person = fallback
			r.UpdatedAt = ts
			return r, true
		})
	case PersonaCascade:
		out = rewritePersons(state, name, func(r domain.Record) (domain.Record, bool) {
			return r, false
		})
	default:
		return state, apperrors.NewValidation(
			fmt.Sprintf("Unknown persona delete mode %q.", mode),
			map[string]any{"field": "mode"},
		)
	}

	if personas, ok := state.Collection(domain.CollectionPersonas); ok {
		next := make([]domain.Record, 0, len(personas))
		for _, p := range personas {
			if !strings.EqualFold(strings.TrimSpace(p.Name), name) {
				next = append(next, p)
			}
		}
		out, _ = out.WithCollection(domain.CollectionPersonas, next)
	}
	return out, nil
}
