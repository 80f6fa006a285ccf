// Package seed generates random valid players for populating a roster.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/mcoot/playerroster/internal/dependencies/clock"
	"github.com/mcoot/playerroster/internal/dependencies/random"
	"github.com/mcoot/playerroster/internal/model"
	"github.com/mcoot/playerroster/internal/services/player"
)

const (
	upperAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerAlphabet = "abcdefghijklmnopqrstuvwxyz"

	minNameLength = 3
	// one in bannedOneIn generated players is banned
	bannedOneIn = 10
)

// Titles are the titles handed out to generated players
var Titles = []string{
	"Wanderer",
	"Keeper of the Gate",
	"Slayer of Trolls",
	"Warden of the North",
	"Last of the Line",
	"Friend of Elves",
	"Scourge of the Marsh",
	"Lorekeeper",
	"Master of Coin",
	"Hand of the Council",
}

var earliestBirthday = time.Date(player.MinBirthYear, 1, 1, 0, 0, 0, 0, time.UTC)

// Generator builds random inputs that pass create validation
type Generator struct {
	random random.Random
	clock  clock.Clock
}

// NewGenerator creates a Generator
func NewGenerator(rnd random.Random, clk clock.Clock) *Generator {
	return &Generator{random: rnd, clock: clk}
}

// Player returns one generated input with every field set
func (g *Generator) Player() model.PlayerInput {
	nameLength := minNameLength + g.random.Intn(player.MaxNameLength-minNameLength+1)
	name := g.random.String(1, upperAlphabet) + g.random.String(nameLength-1, lowerAlphabet)
	title := Titles[g.random.Intn(len(Titles))]
	race := model.Races[g.random.Intn(len(model.Races))]
	profession := model.Professions[g.random.Intn(len(model.Professions))]
	birthday := g.birthday()
	experience := g.random.Intn(player.MaxExperience + 1)
	banned := g.random.Intn(bannedOneIn) == 0

	return model.PlayerInput{
		Name:       &name,
		Title:      &title,
		Race:       &race,
		Profession: &profession,
		Birthday:   &birthday,
		Experience: &experience,
		Banned:     &banned,
	}
}

// birthday falls between 2000-01-01 and now, to the millisecond
func (g *Generator) birthday() time.Time {
	latest := g.clock.Now().UTC()
	if ceiling := time.Date(player.MaxBirthYear, 12, 31, 0, 0, 0, 0, time.UTC); latest.After(ceiling) {
		latest = ceiling
	}
	span := latest.Sub(earliestBirthday).Milliseconds()
	if span <= 0 {
		return earliestBirthday
	}
	return earliestBirthday.Add(time.Duration(g.random.Int63n(span)) * time.Millisecond)
}

// Creator accepts new players; the player service and the HTTP client both satisfy it
type Creator interface {
	Create(ctx context.Context, input model.PlayerInput) (*model.Player, error)
}

// Populate creates n generated players and returns them in creation order
func Populate(ctx context.Context, creator Creator, gen *Generator, n int) ([]*model.Player, error) {
	created := make([]*model.Player, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		p, err := creator.Create(ctx, gen.Player())
		if err != nil {
			return created, fmt.Errorf("seed player %d: %w", i+1, err)
		}
		created = append(created, p)
	}
	return created, nil
}
