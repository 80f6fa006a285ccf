package model

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestLevelForFixedPoints(t *testing.T) {
	tests := []struct {
		experience int
		level      int
		untilNext  int
	}{
		{0, 0, 100},
		{99, 0, 1},
		{100, 1, 200},
		{299, 1, 1},
		{300, 2, 300},
		{1000, 4, 500},
		{10_000_000, 446, 12_800},
	}

	for _, tt := range tests {
		level := LevelFor(tt.experience)
		assert.Equal(t, tt.level, level, "level for %d", tt.experience)
		assert.Equal(t, tt.untilNext, UntilNextLevel(tt.experience, level), "until next for %d", tt.experience)
	}
}

func TestLevelForNegativeExperienceIsZero(t *testing.T) {
	// sqrt of a negative number is NaN
	assert.Equal(t, 0, LevelFor(-100))
}

func TestApplyProgression(t *testing.T) {
	p := &Player{Experience: 100, Level: 99, UntilNextLevel: 99}
	p.ApplyProgression()

	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 200, p.UntilNextLevel)
}

func TestLevelingProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("level is non-negative", prop.ForAll(
		func(e int) bool {
			return LevelFor(e) >= 0
		},
		gen.IntRange(0, 10_000_000),
	))

	properties.Property("level is non-decreasing in experience", prop.ForAll(
		func(e, delta int) bool {
			return LevelFor(e) <= LevelFor(e+delta)
		},
		gen.IntRange(0, 10_000_000),
		gen.IntRange(0, 1000),
	))

	properties.Property("until next level is positive", prop.ForAll(
		func(e int) bool {
			return UntilNextLevel(e, LevelFor(e)) > 0
		},
		gen.IntRange(0, 10_000_000),
	))

	properties.Property("experience lies within the level's cumulative band", prop.ForAll(
		func(e int) bool {
			l := LevelFor(e)
			return 50*l*(l+1) <= e && e < 50*(l+1)*(l+2)
		},
		gen.IntRange(0, 10_000_000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
