package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"leaguerank/internal/model"
	"leaguerank/internal/rating"
	"leaguerank/internal/services/player"
	"leaguerank/internal/storage/memory"
	"leaguerank/internal/testutil"
)

type ProcessorSuite struct {
	suite.Suite
	storage   *memory.Storage
	players   *player.Store
	processor *Processor
	ctx       context.Context
}

func TestProcessorSuite(t *testing.T) {
	suite.Run(t, new(ProcessorSuite))
}

func (s *ProcessorSuite) SetupTest() {
	s.storage = memory.New()
	s.players = player.NewStore(s.storage, player.FailResolver, testutil.NopLogger())
	s.processor = NewProcessor(s.players, s.storage, rating.DefaultDecayRate, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ProcessorSuite) request(day int, entrants ...Entrant) Request {
	return Request{Day: day, Entrants: entrants}
}

func (s *ProcessorSuite) TestTwoFreshPlayersMoveSymmetrically() {
	result, err := s.processor.Process(s.ctx, s.request(60100,
		Entrant{Rank: 1, Name: "A", Cohort: "22s"},
		Entrant{Rank: 2, Name: "B", Cohort: "22s"},
	))
	s.Require().NoError(err)
	s.Require().Len(result.Players, 2)

	winner := result.Players[0].After
	loser := result.Players[1].After

	s.Greater(winner.Value, 1500.0)
	s.Less(loser.Value, 1500.0)
	s.InDelta(winner.Value-1500.0, 1500.0-loser.Value, 1e-9)

	s.Less(winner.Deviation, 350.0)
	s.InDelta(winner.Deviation, loser.Deviation, 1e-9)
}

func (s *ProcessorSuite) TestThreeWayTieMovesAllIdentically() {
	result, err := s.processor.Process(s.ctx, s.request(60100,
		Entrant{Rank: 1, Name: "X", Cohort: "22s"},
		Entrant{Rank: 1, Name: "Y", Cohort: "22s"},
		Entrant{Rank: 1, Name: "Z", Cohort: "22s"},
	))
	s.Require().NoError(err)
	s.Require().Len(result.Players, 3)

	first := result.Players[0].After
	for _, pr := range result.Players[1:] {
		s.InDelta(first.Value, pr.After.Value, 1e-9)
		s.InDelta(first.Deviation, pr.After.Deviation, 1e-9)
		s.InDelta(first.Volatility, pr.After.Volatility, 1e-9)
	}
	// All drew all: nobody's rating moves off the shared prior.
	s.InDelta(1500.0, first.Value, 1e-9)
}

func (s *ProcessorSuite) TestPersistsStateHistoryAndLog() {
	_, err := s.processor.Process(s.ctx, s.request(60100,
		Entrant{Rank: 1, Name: "A", Cohort: "22s"},
		Entrant{Rank: 2, Name: "B", Cohort: "22s"},
	))
	s.Require().NoError(err)

	p, err := s.players.Get(s.ctx, model.DerivePlayerID("A", "22s"))
	s.Require().NoError(err)
	s.Equal(60100, p.LastActiveDay)
	s.Greater(p.Rating, 1500.0)

	// Registration sample plus the event sample.
	samples, err := s.players.History(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Len(samples, 2)

	matches, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Equal(60100, matches[0].Day)
	s.Len(matches[0].Entries, 2)
}

func (s *ProcessorSuite) TestInactivityDecayAppliedBeforeUpdate() {
	// One event, then a long gap, then another. The returning player's
	// pre-update deviation must reflect the gap.
	_, err := s.processor.Process(s.ctx, s.request(60100,
		Entrant{Rank: 1, Name: "A", Cohort: "22s"},
		Entrant{Rank: 2, Name: "B", Cohort: "22s"},
	))
	s.Require().NoError(err)

	before, err := s.players.Get(s.ctx, model.DerivePlayerID("A", "22s"))
	s.Require().NoError(err)

	result, err := s.processor.Process(s.ctx, s.request(60100+1000,
		Entrant{Rank: 1, Name: "A", Cohort: "22s"},
		Entrant{Rank: 2, Name: "B", Cohort: "22s"},
	))
	s.Require().NoError(err)

	// 18^2 * 1000 alone exceeds 350^2: the gap pins the deviation to the cap.
	s.Equal(350.0, result.Players[0].Before.Deviation)
	s.Greater(result.Players[0].Before.Deviation, before.Deviation)
}

func (s *ProcessorSuite) TestRejectsSmallRoster() {
	_, err := s.processor.Process(s.ctx, s.request(60100,
		Entrant{Rank: 1, Name: "A", Cohort: "22s"},
	))
	s.ErrorIs(err, model.ErrRosterTooSmall)
}

func (s *ProcessorSuite) TestRejectsDuplicateEntrant() {
	_, err := s.processor.Process(s.ctx, s.request(60100,
		Entrant{Rank: 1, Name: "A", Cohort: "22s"},
		Entrant{Rank: 2, Name: "A", Cohort: "22s"},
	))
	s.ErrorIs(err, model.ErrDuplicateEntrant)
}

func (s *ProcessorSuite) TestRejectsInvalidRank() {
	_, err := s.processor.Process(s.ctx, s.request(60100,
		Entrant{Rank: 0, Name: "A", Cohort: "22s"},
		Entrant{Rank: 1, Name: "B", Cohort: "22s"},
	))
	s.ErrorIs(err, model.ErrInvalidRank)
}

func (s *ProcessorSuite) TestAbortLeavesNoMutation() {
	_, err := s.processor.Process(s.ctx, s.request(60100,
		Entrant{Rank: 1, Name: "A", Cohort: "22s"},
		Entrant{Rank: 2, Name: "B", Cohort: "22s"},
	))
	s.Require().NoError(err)

	snapshotA, err := s.players.Get(s.ctx, model.DerivePlayerID("A", "22s"))
	s.Require().NoError(err)
	snapshotB, err := s.players.Get(s.ctx, model.DerivePlayerID("B", "22s"))
	s.Require().NoError(err)

	// Duplicate roster aborts the event.
	_, err = s.processor.Process(s.ctx, s.request(60200,
		Entrant{Rank: 1, Name: "A", Cohort: "22s"},
		Entrant{Rank: 2, Name: "A", Cohort: "22s"},
	))
	s.Require().ErrorIs(err, model.ErrDuplicateEntrant)

	afterA, err := s.players.Get(s.ctx, model.DerivePlayerID("A", "22s"))
	s.Require().NoError(err)
	afterB, err := s.players.Get(s.ctx, model.DerivePlayerID("B", "22s"))
	s.Require().NoError(err)
	s.Equal(snapshotA, afterA)
	s.Equal(snapshotB, afterB)

	matches, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)
	s.Len(matches, 1)
}

func (s *ProcessorSuite) TestAmbiguousBareNameAborts() {
	_, err := s.players.Register(s.ctx, "A", "22s", 60000)
	s.Require().NoError(err)
	_, err = s.players.Register(s.ctx, "A", "24f", 60000)
	s.Require().NoError(err)

	_, err = s.processor.Process(s.ctx, s.request(60100,
		Entrant{Rank: 1, Name: "A"},
		Entrant{Rank: 2, Name: "B", Cohort: "22s"},
	))
	s.ErrorIs(err, model.ErrAmbiguousName)
}

func (s *ProcessorSuite) TestReapplySkipsMatchLog() {
	_, err := s.processor.Reapply(s.ctx, s.request(60100,
		Entrant{Rank: 1, Name: "A", Cohort: "22s"},
		Entrant{Rank: 2, Name: "B", Cohort: "22s"},
	))
	s.Require().NoError(err)

	matches, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)
	s.Empty(matches)

	// Rating state still moved.
	p, err := s.players.Get(s.ctx, model.DerivePlayerID("A", "22s"))
	s.Require().NoError(err)
	s.Greater(p.Rating, 1500.0)
}
