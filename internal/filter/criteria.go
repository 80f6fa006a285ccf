package filter

import (
	"math"
	"time"

	"github.com/mcoot/playerroster/internal/model"
)

// BirthdayRangeAdjustment is subtracted from the upper bound of a birthday
// filter when both bounds are given. The single-bound cases use the bound
// as-is.
const BirthdayRangeAdjustment = 3_600_001 * time.Millisecond

// Name matches players whose name contains name
func Name(name *string) Predicate {
	if name == nil {
		return None()
	}
	return Contains(FieldName, *name)
}

// Title matches players whose title contains title
func Title(title *string) Predicate {
	if title == nil {
		return None()
	}
	return Contains(FieldTitle, *title)
}

// Race matches players of exactly this race
func Race(race *model.Race) Predicate {
	if race == nil {
		return None()
	}
	return Eq(FieldRace, *race)
}

// Profession matches players of exactly this profession
func Profession(profession *model.Profession) Predicate {
	if profession == nil {
		return None()
	}
	return Eq(FieldProfession, *profession)
}

// Experience bounds experience inclusively
func Experience(min, max *int) Predicate {
	return intRange(FieldExperience, min, max)
}

// Level bounds level inclusively
func Level(min, max *int) Predicate {
	return intRange(FieldLevel, min, max)
}

// Birthday bounds the birthday by epoch-millisecond timestamps
func Birthday(after, before *int64) Predicate {
	switch {
	case after == nil && before == nil:
		return None()
	case after == nil:
		return Range(FieldBirthday, nil, model.FromMillis(*before))
	case before == nil:
		return Range(FieldBirthday, model.FromMillis(*after), nil)
	}
	adj := BirthdayRangeAdjustment.Milliseconds()
	upper := int64(math.MinInt64)
	if *before >= math.MinInt64+adj {
		upper = *before - adj
	}
	return Range(FieldBirthday, model.FromMillis(*after), model.FromMillis(upper))
}

// Banned matches players with exactly this banned flag
func Banned(banned *bool) Predicate {
	if banned == nil {
		return None()
	}
	return Eq(FieldBanned, *banned)
}

func intRange(f Field, min, max *int) Predicate {
	var lo, hi any
	if min != nil {
		lo = *min
	}
	if max != nil {
		hi = *max
	}
	return Range(f, lo, hi)
}

// Criteria holds the raw, independently optional list parameters
type Criteria struct {
	Name          *string
	Title         *string
	Race          *model.Race
	Profession    *model.Profession
	After         *int64 // epoch ms
	Before        *int64 // epoch ms
	MinExperience *int
	MaxExperience *int
	MinLevel      *int
	MaxLevel      *int
	Banned        *bool
}

// Predicate ANDs every fragment; absent parameters contribute nothing
func (c Criteria) Predicate() Predicate {
	return And(
		Name(c.Name),
		Title(c.Title),
		Race(c.Race),
		Profession(c.Profession),
		Experience(c.MinExperience, c.MaxExperience),
		Level(c.MinLevel, c.MaxLevel),
		Birthday(c.After, c.Before),
		Banned(c.Banned),
	)
}
