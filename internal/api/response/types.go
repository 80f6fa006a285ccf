package response

import (
	"github.com/mcoot/playerroster/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	Race           string `json:"race"`
	Profession     string `json:"profession"`
	Birthday       int64  `json:"birthday"` // epoch ms
	Experience     int    `json:"experience"`
	Level          int    `json:"level"`
	UntilNextLevel int    `json:"until_next_level"`
	Banned         bool   `json:"banned"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
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
	}
}

// PlayersFromModel converts a slice, never returning nil
func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerFromModel(p))
	}
	return out
}

// PlayerPage is the response for the paged list endpoint
type PlayerPage struct {
	Players    []Player `json:"players"`
	Total      int      `json:"total"`
	PageNumber int      `json:"page_number"`
	PageSize   int      `json:"page_size"`
}

// PlayerPageFromModel converts a model.Page
func PlayerPageFromModel(p *model.Page) PlayerPage {
	return PlayerPage{
		Players:    PlayersFromModel(p.Players),
		Total:      p.Total,
		PageNumber: p.Number,
		PageSize:   p.Size,
	}
}

// PlayerList is the response for the unpaged list endpoint
type PlayerList struct {
	Players []Player `json:"players"`
}

// Count is the response for the count endpoint
type Count struct {
	Count int `json:"count"`
}

// Health is the response for the health endpoint
type Health struct {
	Status string `json:"status"`
}
