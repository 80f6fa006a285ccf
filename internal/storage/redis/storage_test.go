package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playerroster/internal/filter"
	"github.com/mcoot/playerroster/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.KeyPrefix = "test"

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func newPlayer(name string, race model.Race, experience int) *model.Player {
	p := &model.Player{
		Name:       name,
		Title:      "Keeper of Keys",
		Race:       race,
		Profession: model.ProfessionCleric,
		Birthday:   time.Date(2004, 7, 1, 12, 30, 0, 0, time.UTC),
		Experience: experience,
	}
	p.ApplyProgression()
	return p
}

func (s *StorageSuite) TestSaveAssignsIDsFromSequence() {
	first, err := s.storage.Save(s.ctx, newPlayer("Alice", model.RaceHuman, 0))
	s.Require().NoError(err)
	second, err := s.storage.Save(s.ctx, newPlayer("Bob", model.RaceOrc, 0))
	s.Require().NoError(err)

	s.Equal(model.PlayerID(1), first.ID)
	s.Equal(model.PlayerID(2), second.ID)

	seq, err := s.mini.Get("test:seq:player")
	s.Require().NoError(err)
	s.Equal("2", seq)
}

func (s *StorageSuite) TestSaveAndFindByID() {
	saved, err := s.storage.Save(s.ctx, newPlayer("Alice", model.RaceHuman, 1000))
	s.Require().NoError(err)

	retrieved, err := s.storage.FindByID(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(saved, retrieved)
	s.Equal(4, retrieved.Level)
	s.Equal(500, retrieved.UntilNextLevel)
}

func (s *StorageSuite) TestFindByIDNotFound() {
	_, err := s.storage.FindByID(s.ctx, 99)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestSaveWritesIndex() {
	saved, _ := s.storage.Save(s.ctx, newPlayer("Alice", model.RaceHuman, 0))

	s.True(s.mini.Exists(s.storage.keys.player(saved.ID)))
	members, err := s.mini.ZMembers("test:players")
	s.Require().NoError(err)
	s.Equal([]string{"1"}, members)
}

func (s *StorageSuite) TestDeleteByIDRemovesPlayerAndIndexEntry() {
	saved, _ := s.storage.Save(s.ctx, newPlayer("Alice", model.RaceHuman, 0))

	err := s.storage.DeleteByID(s.ctx, saved.ID)
	s.Require().NoError(err)

	_, err = s.storage.FindByID(s.ctx, saved.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	all, err := s.storage.FindAll(s.ctx, filter.None())
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *StorageSuite) TestFindAllEmpty() {
	all, err := s.storage.FindAll(s.ctx, filter.None())
	s.Require().NoError(err)
	s.NotNil(all)
	s.Empty(all)
}

func (s *StorageSuite) TestFindAllFilters() {
	_, _ = s.storage.Save(s.ctx, newPlayer("Alice", model.RaceHuman, 50))
	_, _ = s.storage.Save(s.ctx, newPlayer("Alina", model.RaceElf, 150))
	_, _ = s.storage.Save(s.ctx, newPlayer("Bob", model.RaceElf, 500))

	race := model.RaceElf
	elves, err := s.storage.FindAll(s.ctx, filter.Criteria{Race: &race}.Predicate())
	s.Require().NoError(err)
	s.Len(elves, 2)

	minLevel := 2
	veterans, err := s.storage.FindAll(s.ctx, filter.Criteria{MinLevel: &minLevel}.Predicate())
	s.Require().NoError(err)
	s.Require().Len(veterans, 1)
	s.Equal("Bob", veterans[0].Name)
}

func (s *StorageSuite) TestFindPageSortsAndSlices() {
	for i, name := range []string{"Dora", "Anna", "Carl", "Beth"} {
		_, _ = s.storage.Save(s.ctx, newPlayer(name, model.RaceHuman, i*100))
	}

	page, err := s.storage.FindPage(s.ctx, filter.None(), model.PageRequest{
		Number: 1,
		Size:   3,
		Sort:   model.Sort{Field: model.SortByExperience, Direction: model.SortDesc},
	})
	s.Require().NoError(err)
	s.Equal(4, page.Total)
	s.Require().Len(page.Players, 1)
	s.Equal("Dora", page.Players[0].Name)
}

func (s *StorageSuite) TestUpdateKeepsSingleIndexEntry() {
	saved, _ := s.storage.Save(s.ctx, newPlayer("Alice", model.RaceHuman, 0))
	saved.Banned = true
	_, err := s.storage.Save(s.ctx, saved)
	s.Require().NoError(err)

	banned := true
	all, err := s.storage.FindAll(s.ctx, filter.Banned(&banned))
	s.Require().NoError(err)
	s.Len(all, 1)
}
