package match

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"leaguerank/internal/model"
)

// ParseRosterCSV reads a roster file into entrants. Each record is
// rank,name[,cohort]; a header row starting with "rank" is skipped.
func ParseRosterCSV(r io.Reader) ([]Entrant, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var entrants []Entrant
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading roster: %w", err)
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "rank") {
			continue
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		entrant, err := rosterRecord(record)
		if err != nil {
			return nil, fmt.Errorf("roster line %d: %w", line, err)
		}
		entrants = append(entrants, entrant)
	}
	return entrants, nil
}

// ParseEntrant parses the positional rank:name[:cohort] form.
func ParseEntrant(arg string) (Entrant, error) {
	parts := strings.SplitN(arg, ":", 3)
	if len(parts) < 2 {
		return Entrant{}, fmt.Errorf("entrant %q: want rank:name[:cohort]: %w", arg, model.ErrInvalidRank)
	}
	fields := make([]string, 0, 3)
	fields = append(fields, parts[0], parts[1])
	if len(parts) == 3 {
		fields = append(fields, parts[2])
	}
	return rosterRecord(fields)
}

func rosterRecord(fields []string) (Entrant, error) {
	if len(fields) < 2 || len(fields) > 3 {
		return Entrant{}, fmt.Errorf("want rank,name[,cohort], got %d fields: %w", len(fields), model.ErrInvalidRank)
	}
	rank, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Entrant{}, fmt.Errorf("rank %q: %w", fields[0], model.ErrInvalidRank)
	}
	if rank < 1 {
		return Entrant{}, fmt.Errorf("rank %d: %w", rank, model.ErrInvalidRank)
	}
	name := strings.TrimSpace(fields[1])
	if name == "" {
		return Entrant{}, model.ErrEmptyName
	}
	entrant := Entrant{Rank: rank, Name: name}
	if len(fields) == 3 {
		entrant.Cohort = strings.TrimSpace(fields[2])
	}
	return entrant, nil
}
