// Package filter builds composable predicates over the player collection.
//
// A Predicate is a small closed vocabulary (no-op, equality, inclusive range,
// substring contains, conjunction). Storage backends interpret it: the memory
// and redis stores through Match, the sqlite and mongo stores by translating
// it into their own query languages.
package filter

import (
	"fmt"
	"strings"
)

// Field names a filterable player attribute
type Field string

const (
	FieldName       Field = "name"
	FieldTitle      Field = "title"
	FieldRace       Field = "race"
	FieldProfession Field = "profession"
	FieldBirthday   Field = "birthday"
	FieldExperience Field = "experience"
	FieldLevel      Field = "level"
	FieldBanned     Field = "banned"
)

// Kind tags the variant held by a Predicate
type Kind int

const (
	KindNone Kind = iota // matches everything
	KindEq
	KindRange
	KindContains
	KindAnd
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindEq:
		return "eq"
	case KindRange:
		return "range"
	case KindContains:
		return "contains"
	case KindAnd:
		return "and"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Predicate is one node of a filter expression.
//
// Value is set for KindEq and KindContains. Min and Max bound a KindRange
// inclusively; a nil bound is open. Terms holds the children of KindAnd.
type Predicate struct {
	Kind  Kind
	Field Field
	Value any
	Min   any
	Max   any
	Terms []Predicate
}

// None imposes no constraint
func None() Predicate {
	return Predicate{Kind: KindNone}
}

// Eq matches records whose field equals v
func Eq(f Field, v any) Predicate {
	return Predicate{Kind: KindEq, Field: f, Value: v}
}

// Range matches min <= field <= max; nil bounds are open
func Range(f Field, min, max any) Predicate {
	if min == nil && max == nil {
		return None()
	}
	return Predicate{Kind: KindRange, Field: f, Min: min, Max: max}
}

// Contains matches records whose field contains substr (case-sensitive)
func Contains(f Field, substr string) Predicate {
	return Predicate{Kind: KindContains, Field: f, Value: substr}
}

// And combines terms; None terms are dropped and nested conjunctions flattened
func And(terms ...Predicate) Predicate {
	var kept []Predicate
	for _, t := range terms {
		switch t.Kind {
		case KindNone:
			continue
		case KindAnd:
			kept = append(kept, t.Terms...)
		default:
			kept = append(kept, t)
		}
	}

	switch len(kept) {
	case 0:
		return None()
	case 1:
		return kept[0]
	}
	return Predicate{Kind: KindAnd, Terms: kept}
}

// IsNone reports whether p imposes no constraint
func (p Predicate) IsNone() bool {
	return p.Kind == KindNone
}

// String renders p for logs
func (p Predicate) String() string {
	switch p.Kind {
	case KindNone:
		return "true"
	case KindEq:
		return fmt.Sprintf("%s = %v", p.Field, p.Value)
	case KindContains:
		return fmt.Sprintf("%s contains %q", p.Field, p.Value)
	case KindRange:
		switch {
		case p.Min == nil:
			return fmt.Sprintf("%s <= %v", p.Field, p.Max)
		case p.Max == nil:
			return fmt.Sprintf("%s >= %v", p.Field, p.Min)
		}
		return fmt.Sprintf("%v <= %s <= %v", p.Min, p.Field, p.Max)
	case KindAnd:
		parts := make([]string, len(p.Terms))
		for i, t := range p.Terms {
			parts[i] = t.String()
		}
		return "(" + strings.Join(parts, " AND ") + ")"
	}
	return p.Kind.String()
}
