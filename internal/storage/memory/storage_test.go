package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playerroster/internal/filter"
	"github.com/mcoot/playerroster/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func newPlayer(name string, race model.Race, experience int) *model.Player {
	p := &model.Player{
		Name:       name,
		Title:      "Wanderer",
		Race:       race,
		Profession: model.ProfessionWarrior,
		Birthday:   time.Date(2005, 3, 4, 0, 0, 0, 0, time.UTC),
		Experience: experience,
	}
	p.ApplyProgression()
	return p
}

func (s *StorageSuite) TestSaveAssignsSequentialIDs() {
	first, err := s.storage.Save(s.ctx, newPlayer("Alice", model.RaceHuman, 0))
	s.Require().NoError(err)
	second, err := s.storage.Save(s.ctx, newPlayer("Bob", model.RaceElf, 0))
	s.Require().NoError(err)

	s.Equal(model.PlayerID(1), first.ID)
	s.Equal(model.PlayerID(2), second.ID)
}

func (s *StorageSuite) TestSaveAndFindByID() {
	saved, err := s.storage.Save(s.ctx, newPlayer("Alice", model.RaceHuman, 100))
	s.Require().NoError(err)

	retrieved, err := s.storage.FindByID(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(saved, retrieved)
}

func (s *StorageSuite) TestFindByIDNotFound() {
	_, err := s.storage.FindByID(s.ctx, 42)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestSaveOverwritesExisting() {
	saved, _ := s.storage.Save(s.ctx, newPlayer("Alice", model.RaceHuman, 100))

	saved.Name = "Alicia"
	_, err := s.storage.Save(s.ctx, saved)
	s.Require().NoError(err)

	retrieved, err := s.storage.FindByID(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal("Alicia", retrieved.Name)

	all, _ := s.storage.FindAll(s.ctx, filter.None())
	s.Len(all, 1)
}

func (s *StorageSuite) TestReturnedPlayersDoNotAliasStoredState() {
	saved, _ := s.storage.Save(s.ctx, newPlayer("Alice", model.RaceHuman, 100))

	retrieved, _ := s.storage.FindByID(s.ctx, saved.ID)
	retrieved.Name = "Mallory"

	again, _ := s.storage.FindByID(s.ctx, saved.ID)
	s.Equal("Alice", again.Name)
}

func (s *StorageSuite) TestDeleteByID() {
	saved, _ := s.storage.Save(s.ctx, newPlayer("Alice", model.RaceHuman, 100))

	err := s.storage.DeleteByID(s.ctx, saved.ID)
	s.Require().NoError(err)

	_, err = s.storage.FindByID(s.ctx, saved.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestFindAllFilters() {
	_, _ = s.storage.Save(s.ctx, newPlayer("Alice", model.RaceHuman, 50))
	_, _ = s.storage.Save(s.ctx, newPlayer("Alina", model.RaceElf, 150))
	_, _ = s.storage.Save(s.ctx, newPlayer("Bob", model.RaceElf, 500))

	all, err := s.storage.FindAll(s.ctx, filter.None())
	s.Require().NoError(err)
	s.Len(all, 3)

	minExp := 100
	elves, err := s.storage.FindAll(s.ctx, filter.And(
		filter.Experience(&minExp, nil),
		filter.Contains(filter.FieldName, "Ali"),
	))
	s.Require().NoError(err)
	s.Require().Len(elves, 1)
	s.Equal("Alina", elves[0].Name)
}

func (s *StorageSuite) TestFindPage() {
	for _, name := range []string{"Carl", "Anna", "Beth", "Dora"} {
		_, _ = s.storage.Save(s.ctx, newPlayer(name, model.RaceHuman, 0))
	}

	page, err := s.storage.FindPage(s.ctx, filter.None(), model.PageRequest{
		Number: 0,
		Size:   2,
		Sort:   model.Sort{Field: model.SortByName, Direction: model.SortAsc},
	})
	s.Require().NoError(err)
	s.Equal(4, page.Total)
	s.Require().Len(page.Players, 2)
	s.Equal("Anna", page.Players[0].Name)
	s.Equal("Beth", page.Players[1].Name)
}
