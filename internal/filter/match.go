package filter

import (
	"strings"
	"time"

	"github.com/mcoot/playerroster/internal/model"
)

// Match evaluates p against a single player in process
func Match(p Predicate, pl *model.Player) bool {
	switch p.Kind {
	case KindNone:
		return true
	case KindAnd:
		for _, t := range p.Terms {
			if !Match(t, pl) {
				return false
			}
		}
		return true
	case KindEq:
		c, ok := compare(FieldValue(pl, p.Field), p.Value)
		return ok && c == 0
	case KindContains:
		s, ok := FieldValue(pl, p.Field).(string)
		substr, subOK := p.Value.(string)
		return ok && subOK && strings.Contains(s, substr)
	case KindRange:
		v := FieldValue(pl, p.Field)
		if p.Min != nil {
			if c, ok := compare(v, p.Min); !ok || c < 0 {
				return false
			}
		}
		if p.Max != nil {
			if c, ok := compare(v, p.Max); !ok || c > 0 {
				return false
			}
		}
		return true
	}
	return false
}

// FieldValue returns the typed value of f on pl, or nil for unknown fields
func FieldValue(pl *model.Player, f Field) any {
	switch f {
	case FieldName:
		return pl.Name
	case FieldTitle:
		return pl.Title
	case FieldRace:
		return string(pl.Race)
	case FieldProfession:
		return string(pl.Profession)
	case FieldBirthday:
		return pl.Birthday
	case FieldExperience:
		return pl.Experience
	case FieldLevel:
		return pl.Level
	case FieldBanned:
		return pl.Banned
	}
	return nil
}

// compare orders a against b; ok is false when the types cannot be compared
func compare(a, b any) (c int, ok bool) {
	switch av := a.(type) {
	case string:
		bv, ok := asString(b)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case int:
		bv, ok := b.(int)
		if !ok {
			return 0, false
		}
		return cmpInt(av, bv), true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	case bool:
		bv, ok := b.(bool)
		if !ok || av != bv {
			return 1, ok
		}
		return 0, true
	}
	return 0, false
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case model.Race:
		return string(s), true
	case model.Profession:
		return string(s), true
	}
	return "", false
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
