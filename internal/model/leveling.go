package model

import "math"

// LevelFor returns the level reached with the given experience.
// Cumulative experience needed for level L is 50*L*(L+1).
func LevelFor(experience int) int {
	level := (math.Sqrt(2500+200*float64(experience)) - 50) / 100
	if math.IsNaN(level) {
		return 0
	}
	return int(level)
}

// UntilNextLevel returns the experience still needed to leave level
func UntilNextLevel(experience, level int) int {
	return 50*(level+1)*(level+2) - experience
}

// ApplyProgression recomputes the derived level fields from Experience
func (p *Player) ApplyProgression() {
	p.Level = LevelFor(p.Experience)
	p.UntilNextLevel = UntilNextLevel(p.Experience, p.Level)
}
