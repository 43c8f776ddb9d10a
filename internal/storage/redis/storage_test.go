package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"leaguerank/internal/model"
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

	s.storage = NewWithClient(client, DefaultConfig())
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

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := model.NewPlayer("Alice", "22s", 60100)

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Equal(player.Name, retrieved.Name)
	s.Equal(player.LastActiveDay, retrieved.LastActiveDay)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListPlayers() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, model.NewPlayer("Alice", "22s", 60100)))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, model.NewPlayer("Bob", "23f", 60100)))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
}

func (s *StorageSuite) TestNameIndexRoundTrip() {
	key := model.KeyForName("Alice")
	ids := []model.PlayerID{"id-1", "id-2"}

	s.Require().NoError(s.storage.SaveNameIndex(s.ctx, key, ids))

	got, err := s.storage.GetNameIndex(s.ctx, key)
	s.Require().NoError(err)
	s.Equal(ids, got)
}

func (s *StorageSuite) TestNameIndexMissingKeyIsEmpty() {
	got, err := s.storage.GetNameIndex(s.ctx, model.KeyForName("nobody"))
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *StorageSuite) TestMatchLogPreservesOrder() {
	first := &model.MatchEvent{Day: 60100, Entries: []model.MatchEntry{
		{Rank: 1, Name: "Alice", Cohort: "22s"},
		{Rank: 2, Name: "Bob", Cohort: "23f"},
	}}
	second := &model.MatchEvent{Day: 60107, Entries: []model.MatchEntry{
		{Rank: 1, Name: "Bob", Cohort: "23f"},
		{Rank: 2, Name: "Alice", Cohort: "22s"},
	}}

	s.Require().NoError(s.storage.AppendMatch(s.ctx, first))
	s.Require().NoError(s.storage.AppendMatch(s.ctx, second))

	matches, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(matches, 2)
	s.Equal(60100, matches[0].Day)
	s.Equal(60107, matches[1].Day)
}

func (s *StorageSuite) TestHistoryAppendAndReset() {
	id := model.PlayerID("id-1")
	s.Require().NoError(s.storage.AppendSample(s.ctx, id, model.RatingSample{Day: 60100, Rating: 1500, Deviation: 350, Volatility: 0.06}))
	s.Require().NoError(s.storage.AppendSample(s.ctx, id, model.RatingSample{Day: 60107, Rating: 1520.5, Deviation: 290.25, Volatility: 0.0601}))

	samples, err := s.storage.ListSamples(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(samples, 2)
	s.InDelta(1520.5, samples[1].Rating, 1e-9)

	s.Require().NoError(s.storage.ResetHistory(s.ctx))

	samples, err = s.storage.ListSamples(s.ctx, id)
	s.Require().NoError(err)
	s.Empty(samples)
}

func (s *StorageSuite) TestResetHistoryLeavesMatchLog() {
	s.Require().NoError(s.storage.AppendSample(s.ctx, "id-1", model.RatingSample{Day: 60100, Rating: 1500, Deviation: 350, Volatility: 0.06}))
	s.Require().NoError(s.storage.AppendMatch(s.ctx, &model.MatchEvent{Day: 60100, Entries: []model.MatchEntry{
		{Rank: 1, Name: "Alice", Cohort: "22s"},
		{Rank: 2, Name: "Bob", Cohort: "23f"},
	}}))

	s.Require().NoError(s.storage.ResetHistory(s.ctx))

	matches, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)
	s.Len(matches, 1)
}
