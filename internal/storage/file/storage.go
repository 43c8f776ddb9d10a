// Package file implements the canonical on-disk storage backend: a JSON
// player table and name index, a CSV append-only match log, and one CSV
// history file per player. Table and index rewrites go through a
// write-new-then-rename replace, so a crash mid-flush leaves the previous
// state fully intact.
package file

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/natefinch/atomic"

	"leaguerank/internal/model"
	"leaguerank/internal/storage"
)

const (
	playersFile   = "players.json"
	nameIndexFile = "name_index.json"
	matchLogFile  = "matches.csv"
	historyDir    = "history"
)

var (
	matchLogHeader = []string{"day", "rank", "name", "cohort", "..."}
	historyHeader  = []string{"day", "rating", "rating_deviation", "volatility"}
)

// Storage is the file-backed implementation of the storage interface. The
// player table and name index live in memory between flushes; the match log
// and history files are written through immediately.
type Storage struct {
	mu  sync.Mutex
	dir string

	players   map[model.PlayerID]*model.Player
	nameIndex map[model.NameKey][]model.PlayerID
	dirty     bool
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Init creates the data directory layout with an empty player table, name
// index and match log. It fails if a player table already exists.
func Init(dir string) error {
	if _, err := os.Stat(filepath.Join(dir, playersFile)); err == nil {
		return fmt.Errorf("league data already present in %s", dir)
	}
	if err := os.MkdirAll(filepath.Join(dir, historyDir), 0o755); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, playersFile), map[model.PlayerID]*model.Player{}); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, nameIndexFile), map[model.NameKey][]model.PlayerID{}); err != nil {
		return err
	}
	return writeCSVHeader(filepath.Join(dir, matchLogFile), matchLogHeader)
}

// New opens the league data in dir, loading the player table and name index
// into memory.
func New(dir string) (*Storage, error) {
	s := &Storage{
		dir:       dir,
		players:   make(map[model.PlayerID]*model.Player),
		nameIndex: make(map[model.NameKey][]model.PlayerID),
	}
	if err := readJSON(filepath.Join(dir, playersFile), &s.players); err != nil {
		return nil, fmt.Errorf("loading player table: %w", err)
	}
	if err := readJSON(filepath.Join(dir, nameIndexFile), &s.nameIndex); err != nil {
		return nil, fmt.Errorf("loading name index: %w", err)
	}
	return s, nil
}

// Player table operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *player
	s.players[player.ID] = &cp
	s.dirty = true
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *player
	return &cp, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Player, 0, len(s.players))
	for _, player := range s.players {
		cp := *player
		out = append(out, &cp)
	}
	return out, nil
}

// Name index operations

func (s *Storage) GetNameIndex(ctx context.Context, key model.NameKey) ([]model.PlayerID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.PlayerID(nil), s.nameIndex[key]...), nil
}

func (s *Storage) SaveNameIndex(ctx context.Context, key model.NameKey, ids []model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nameIndex[key] = append([]model.PlayerID(nil), ids...)
	s.dirty = true
	return nil
}

// Flush atomically replaces the player table and name index files. Each file
// is written to a temp name and renamed into place, so readers only ever see
// the old or the new state. The table is written before the index: an index
// entry pointing at a missing player is the failure mode we refuse, the
// reverse (an unindexed player) is recoverable.
func (s *Storage) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := writeJSON(filepath.Join(s.dir, playersFile), s.players); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(s.dir, nameIndexFile), s.nameIndex); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Match log operations

func (s *Storage) AppendMatch(ctx context.Context, event *model.MatchEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := make([]string, 0, 1+3*len(event.Entries))
	record = append(record, strconv.Itoa(event.Day))
	for _, entry := range event.Entries {
		record = append(record, strconv.Itoa(entry.Rank), entry.Name, entry.Cohort)
	}
	return appendCSV(filepath.Join(s.dir, matchLogFile), matchLogHeader, record)
}

func (s *Storage) ListMatches(ctx context.Context) ([]*model.MatchEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := readCSV(filepath.Join(s.dir, matchLogFile))
	if err != nil {
		return nil, err
	}
	events := make([]*model.MatchEvent, 0, len(records))
	for _, record := range records {
		event, err := parseMatchRecord(record)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func parseMatchRecord(record []string) (*model.MatchEvent, error) {
	if len(record) < 7 || (len(record)-1)%3 != 0 {
		return nil, fmt.Errorf("malformed match log record (%d fields)", len(record))
	}
	day, err := strconv.Atoi(record[0])
	if err != nil {
		return nil, fmt.Errorf("malformed match log day %q: %w", record[0], err)
	}
	event := &model.MatchEvent{Day: day}
	for i := 1; i < len(record); i += 3 {
		rank, err := strconv.Atoi(record[i])
		if err != nil {
			return nil, fmt.Errorf("malformed match log rank %q: %w", record[i], err)
		}
		event.Entries = append(event.Entries, model.MatchEntry{
			Rank:   rank,
			Name:   record[i+1],
			Cohort: record[i+2],
		})
	}
	return event, nil
}

// Rating history operations

func (s *Storage) AppendSample(ctx context.Context, id model.PlayerID, sample model.RatingSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := []string{
		strconv.Itoa(sample.Day),
		strconv.FormatFloat(sample.Rating, 'g', -1, 64),
		strconv.FormatFloat(sample.Deviation, 'g', -1, 64),
		strconv.FormatFloat(sample.Volatility, 'g', -1, 64),
	}
	return appendCSV(s.historyPath(id), historyHeader, record)
}

func (s *Storage) ListSamples(ctx context.Context, id model.PlayerID) ([]model.RatingSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := readCSV(s.historyPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	samples := make([]model.RatingSample, 0, len(records))
	for _, record := range records {
		if len(record) != 4 {
			return nil, fmt.Errorf("malformed history record (%d fields)", len(record))
		}
		day, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, err
		}
		rating, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, err
		}
		deviation, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, err
		}
		volatility, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, err
		}
		samples = append(samples, model.RatingSample{
			Day:        day,
			Rating:     rating,
			Deviation:  deviation,
			Volatility: volatility,
		})
	}
	return samples, nil
}

// ResetHistory truncates every player's history file back to its header.
func (s *Storage) ResetHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := os.ReadDir(filepath.Join(s.dir, historyDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".csv" {
			continue
		}
		path := filepath.Join(s.dir, historyDir, entry.Name())
		if err := writeCSVHeader(path, historyHeader); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) historyPath(id model.PlayerID) string {
	return filepath.Join(s.dir, historyDir, string(id)+".csv")
}

// File helpers

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeCSVHeader(path string, header []string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(buf.Bytes()))
}

func appendCSV(path string, header, record []string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := writeCSVHeader(path, header); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // match log rows vary with roster size

	// Skip the header row.
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	return r.ReadAll()
}
