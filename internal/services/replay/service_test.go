package replay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"leaguerank/internal/model"
	"leaguerank/internal/rating"
	"leaguerank/internal/services/match"
	"leaguerank/internal/services/player"
	"leaguerank/internal/storage/memory"
	"leaguerank/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage   *memory.Storage
	players   *player.Store
	processor *match.Processor
	service   *Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.players = player.NewStore(s.storage, player.FailResolver, testutil.NopLogger())
	s.processor = match.NewProcessor(s.players, s.storage, rating.DefaultDecayRate, testutil.NopLogger())
	s.service = New(s.storage, s.processor, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) processLive(day int, entrants ...match.Entrant) {
	_, err := s.processor.Process(s.ctx, match.Request{Day: day, Entrants: entrants})
	s.Require().NoError(err)
}

func (s *ServiceSuite) snapshot() map[model.PlayerID]model.Player {
	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	out := make(map[model.PlayerID]model.Player, len(players))
	for _, p := range players {
		out[p.ID] = *p
	}
	return out
}

func (s *ServiceSuite) seedLeague() {
	s.processLive(60100,
		match.Entrant{Rank: 1, Name: "A", Cohort: "22s"},
		match.Entrant{Rank: 2, Name: "B", Cohort: "22s"},
		match.Entrant{Rank: 3, Name: "C", Cohort: "23f"},
	)
	s.processLive(60130,
		match.Entrant{Rank: 1, Name: "C", Cohort: "23f"},
		match.Entrant{Rank: 1, Name: "B", Cohort: "22s"},
	)
	s.processLive(60200,
		match.Entrant{Rank: 1, Name: "B", Cohort: "22s"},
		match.Entrant{Rank: 2, Name: "A", Cohort: "22s"},
		match.Entrant{Rank: 2, Name: "D", Cohort: ""},
	)
}

func (s *ServiceSuite) TestReplayMatchesLiveProcessing() {
	s.seedLeague()
	live := s.snapshot()

	summary, err := s.service.Run(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, summary.Events)

	replayed := s.snapshot()
	s.Require().Len(replayed, len(live))
	for id, want := range live {
		got, ok := replayed[id]
		s.Require().True(ok, "player %s lost in replay", id)
		s.Equal(want, got)
	}
}

func (s *ServiceSuite) TestReplayIsDeterministic() {
	s.seedLeague()

	_, err := s.service.Run(s.ctx)
	s.Require().NoError(err)
	first := s.snapshot()

	_, err = s.service.Run(s.ctx)
	s.Require().NoError(err)
	second := s.snapshot()

	s.Equal(first, second)
}

func (s *ServiceSuite) TestReplayPreservesMatchLog() {
	s.seedLeague()

	before, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)

	_, err = s.service.Run(s.ctx)
	s.Require().NoError(err)

	after, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)
	s.Equal(before, after)
}

func (s *ServiceSuite) TestReplayRebuildsHistory() {
	s.seedLeague()

	_, err := s.service.Run(s.ctx)
	s.Require().NoError(err)

	// B played all three events. The live registration sample is gone after
	// truncation; the rebuilt trail holds exactly the event samples.
	samples, err := s.storage.ListSamples(s.ctx, model.DerivePlayerID("B", "22s"))
	s.Require().NoError(err)
	s.Len(samples, 3)
}

func (s *ServiceSuite) TestReplayEmptyLog() {
	summary, err := s.service.Run(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, summary.Events)
}

func (s *ServiceSuite) TestReplayResetsDepartedPlayersToPriors() {
	s.seedLeague()

	// E is registered but never plays: replay leaves them at priors with
	// the sentinel epoch.
	registered, err := s.players.Register(s.ctx, "E", "25s", 60250)
	s.Require().NoError(err)

	_, err = s.service.Run(s.ctx)
	s.Require().NoError(err)

	p, err := s.players.Get(s.ctx, registered.ID)
	s.Require().NoError(err)
	s.Equal(model.PriorRating, p.Rating)
	s.Equal(model.PriorDeviation, p.Deviation)
	s.Equal(EpochSentinelDay, p.LastActiveDay)
}
