package mongo

import (
	"time"

	"github.com/mcoot/playerroster/internal/model"
)

// document is the BSON shape of a stored player
type document struct {
	ID             int64     `bson:"_id"`
	Name           string    `bson:"name"`
	Title          string    `bson:"title"`
	Race           string    `bson:"race"`
	Profession     string    `bson:"profession"`
	Birthday       time.Time `bson:"birthday"`
	Experience     int64     `bson:"experience"`
	Level          int64     `bson:"level"`
	UntilNextLevel int64     `bson:"until_next_level"`
	Banned         bool      `bson:"banned"`
}

func toDocument(p *model.Player) document {
	return document{
		ID:             int64(p.ID),
		Name:           p.Name,
		Title:          p.Title,
		Race:           string(p.Race),
		Profession:     string(p.Profession),
		Birthday:       p.Birthday.UTC().Truncate(time.Millisecond),
		Experience:     int64(p.Experience),
		Level:          int64(p.Level),
		UntilNextLevel: int64(p.UntilNextLevel),
		Banned:         p.Banned,
	}
}

func (d document) player() *model.Player {
	return &model.Player{
		ID:             model.PlayerID(d.ID),
		Name:           d.Name,
		Title:          d.Title,
		Race:           model.Race(d.Race),
		Profession:     model.Profession(d.Profession),
		Birthday:       d.Birthday.UTC(),
		Experience:     int(d.Experience),
		Level:          int(d.Level),
		UntilNextLevel: int(d.UntilNextLevel),
		Banned:         d.Banned,
	}
}
