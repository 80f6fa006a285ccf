package redis

import (
	"github.com/goccy/go-json"

	"github.com/mcoot/playerroster/internal/model"
)

// record is the stored JSON form of a player. Birthday is kept as epoch
// milliseconds; level fields are stored so reads need no recomputation.
type record struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	Race           string `json:"race"`
	Profession     string `json:"profession"`
	Birthday       int64  `json:"birthday"`
	Experience     int    `json:"experience"`
	Level          int    `json:"level"`
	UntilNextLevel int    `json:"until_next_level"`
	Banned         bool   `json:"banned"`
}

func encodePlayer(p *model.Player) ([]byte, error) {
	return json.Marshal(record{
		ID:             int64(p.ID),
		Name:           p.Name,
		Title:          p.Title,
		Race:           string(p.Race),
		Profession:     string(p.Profession),
		Birthday:       model.Millis(p.Birthday),
		Experience:     p.Experience,
		Level:          p.Level,
		UntilNextLevel: p.UntilNextLevel,
		Banned:         p.Banned,
	})
}

func decodePlayer(data []byte) (*model.Player, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &model.Player{
		ID:             model.PlayerID(r.ID),
		Name:           r.Name,
		Title:          r.Title,
		Race:           model.Race(r.Race),
		Profession:     model.Profession(r.Profession),
		Birthday:       model.FromMillis(r.Birthday),
		Experience:     r.Experience,
		Level:          r.Level,
		UntilNextLevel: r.UntilNextLevel,
		Banned:         r.Banned,
	}, nil
}
