package storage

import (
	"sort"
	"strings"

	"github.com/mcoot/playerroster/internal/model"
)

// SortPlayers orders players in place; ties fall back to ascending ID
func SortPlayers(players []*model.Player, s model.Sort) {
	desc := s.Direction == model.SortDesc
	sort.SliceStable(players, func(i, j int) bool {
		c := compareBy(players[i], players[j], s.Field)
		if c == 0 {
			return players[i].ID < players[j].ID
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareBy(a, b *model.Player, field model.SortField) int {
	switch field {
	case model.SortByName:
		return strings.Compare(a.Name, b.Name)
	case model.SortByExperience:
		return cmp(a.Experience, b.Experience)
	case model.SortByBirthday:
		return a.Birthday.Compare(b.Birthday)
	case model.SortByLevel:
		return cmp(a.Level, b.Level)
	}
	return cmp(a.ID, b.ID)
}

func cmp[T int | model.PlayerID](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Paginate sorts the full match set and slices out the requested page.
// Backends that filter in process use it to implement FindPage.
func Paginate(matches []*model.Player, req model.PageRequest) *model.Page {
	req = req.Normalize()
	SortPlayers(matches, req.Sort)

	page := &model.Page{
		Players: []*model.Player{},
		Total:   len(matches),
		Number:  req.Number,
		Size:    req.Size,
	}

	start := req.Offset()
	if start < 0 || start >= len(matches) {
		return page
	}
	end := start + req.Size
	if end > len(matches) {
		end = len(matches)
	}
	page.Players = matches[start:end]
	return page
}
