package request

import (
	"fmt"

	"github.com/mcoot/playerroster/internal/model"
)

// PlayerRequest is the body for creating or updating a player.
// Omitted fields stay nil; birthday is epoch milliseconds.
type PlayerRequest struct {
	Name       *string `json:"name,omitempty"`
	Title      *string `json:"title,omitempty"`
	Race       *string `json:"race,omitempty"`
	Profession *string `json:"profession,omitempty"`
	Birthday   *int64  `json:"birthday,omitempty"`
	Experience *int    `json:"experience,omitempty"`
	Banned     *bool   `json:"banned,omitempty"`
}

// ToInput converts the request into service input, resolving enum names
func (r PlayerRequest) ToInput() (model.PlayerInput, error) {
	input := model.PlayerInput{
		Name:       r.Name,
		Title:      r.Title,
		Experience: r.Experience,
		Banned:     r.Banned,
	}
	if r.Race != nil {
		race, err := model.ParseRace(*r.Race)
		if err != nil {
			return model.PlayerInput{}, fmt.Errorf("%w: %q", err, *r.Race)
		}
		input.Race = &race
	}
	if r.Profession != nil {
		profession, err := model.ParseProfession(*r.Profession)
		if err != nil {
			return model.PlayerInput{}, fmt.Errorf("%w: %q", err, *r.Profession)
		}
		input.Profession = &profession
	}
	if r.Birthday != nil {
		birthday := model.FromMillis(*r.Birthday)
		input.Birthday = &birthday
	}
	return input, nil
}
