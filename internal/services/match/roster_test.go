package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaguerank/internal/model"
)

func TestParseRosterCSV(t *testing.T) {
	input := "rank,name,cohort\n1,Ashley,23s\n2,Blair\n3,Casey,21a\n"

	entrants, err := ParseRosterCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entrants, 3)

	assert.Equal(t, Entrant{Rank: 1, Name: "Ashley", Cohort: "23s"}, entrants[0])
	assert.Equal(t, Entrant{Rank: 2, Name: "Blair"}, entrants[1])
	assert.Equal(t, Entrant{Rank: 3, Name: "Casey", Cohort: "21a"}, entrants[2])
}

func TestParseRosterCSVNoHeader(t *testing.T) {
	entrants, err := ParseRosterCSV(strings.NewReader("1,Ashley\n2,Blair\n"))
	require.NoError(t, err)
	assert.Len(t, entrants, 2)
}

func TestParseRosterCSVTiedRanks(t *testing.T) {
	entrants, err := ParseRosterCSV(strings.NewReader("1,Ashley\n1,Blair\n3,Casey\n"))
	require.NoError(t, err)
	require.Len(t, entrants, 3)
	assert.Equal(t, entrants[0].Rank, entrants[1].Rank)
}

func TestParseRosterCSVBlankLines(t *testing.T) {
	entrants, err := ParseRosterCSV(strings.NewReader("1,Ashley\n\n2,Blair\n"))
	require.NoError(t, err)
	assert.Len(t, entrants, 2)
}

func TestParseRosterCSVBadRank(t *testing.T) {
	_, err := ParseRosterCSV(strings.NewReader("first,Ashley\n"))
	assert.ErrorIs(t, err, model.ErrInvalidRank)

	_, err = ParseRosterCSV(strings.NewReader("0,Ashley\n"))
	assert.ErrorIs(t, err, model.ErrInvalidRank)
}

func TestParseRosterCSVEmptyName(t *testing.T) {
	_, err := ParseRosterCSV(strings.NewReader("1, \n"))
	assert.ErrorIs(t, err, model.ErrEmptyName)
}

func TestParseEntrant(t *testing.T) {
	e, err := ParseEntrant("2:Ashley:23s")
	require.NoError(t, err)
	assert.Equal(t, Entrant{Rank: 2, Name: "Ashley", Cohort: "23s"}, e)

	e, err = ParseEntrant("1:Blair")
	require.NoError(t, err)
	assert.Equal(t, Entrant{Rank: 1, Name: "Blair"}, e)
}

func TestParseEntrantMalformed(t *testing.T) {
	_, err := ParseEntrant("Ashley")
	assert.ErrorIs(t, err, model.ErrInvalidRank)

	_, err = ParseEntrant("x:Ashley")
	assert.ErrorIs(t, err, model.ErrInvalidRank)
}
