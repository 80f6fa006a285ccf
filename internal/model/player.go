package model

import (
	"strings"
	"time"
)

// PlayerID uniquely identifies a player; assigned by storage on first save
type PlayerID int64

// Race is the closed set of player races
type Race string

const (
	RaceHuman  Race = "HUMAN"
	RaceDwarf  Race = "DWARF"
	RaceElf    Race = "ELF"
	RaceGiant  Race = "GIANT"
	RaceOrc    Race = "ORC"
	RaceTroll  Race = "TROLL"
	RaceHobbit Race = "HOBBIT"
)

// Races lists every valid race
var Races = []Race{RaceHuman, RaceDwarf, RaceElf, RaceGiant, RaceOrc, RaceTroll, RaceHobbit}

// Profession is the closed set of player professions
type Profession string

const (
	ProfessionWarrior  Profession = "WARRIOR"
	ProfessionRogue    Profession = "ROGUE"
	ProfessionSorcerer Profession = "SORCERER"
	ProfessionCleric   Profession = "CLERIC"
	ProfessionPaladin  Profession = "PALADIN"
	ProfessionNazgul   Profession = "NAZGUL"
	ProfessionWarlock  Profession = "WARLOCK"
	ProfessionDruid    Profession = "DRUID"
)

// Professions lists every valid profession
var Professions = []Profession{
	ProfessionWarrior, ProfessionRogue, ProfessionSorcerer, ProfessionCleric,
	ProfessionPaladin, ProfessionNazgul, ProfessionWarlock, ProfessionDruid,
}

// ParseRace converts a case-insensitive name into a Race
func ParseRace(s string) (Race, error) {
	r := Race(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Races {
		if r == known {
			return r, nil
		}
	}
	return "", ErrUnknownRace
}

// ParseProfession converts a case-insensitive name into a Profession
func ParseProfession(s string) (Profession, error) {
	p := Profession(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Professions {
		if p == known {
			return p, nil
		}
	}
	return "", ErrUnknownProfession
}

// Player is the persisted roster entity
type Player struct {
	ID             PlayerID
	Name           string
	Title          string
	Race           Race
	Profession     Profession
	Birthday       time.Time
	Experience     int
	Level          int // derived from Experience
	UntilNextLevel int // derived from Experience
	Banned         bool
}

// Clone returns a copy that shares no state with p
func (p *Player) Clone() *Player {
	c := *p
	return &c
}

// PlayerInput carries caller-supplied fields; nil means "not provided"
type PlayerInput struct {
	Name       *string
	Title      *string
	Race       *Race
	Profession *Profession
	Birthday   *time.Time
	Experience *int
	Banned     *bool
}

// Millis returns t as milliseconds since the Unix epoch
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts epoch milliseconds into a UTC time
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
