package factory

import (
	"errors"
	"io"
	"log/slog"

	"leaguerank/internal/dependencies/clock"
	"leaguerank/internal/rating"
	"leaguerank/internal/services/match"
	"leaguerank/internal/services/player"
	"leaguerank/internal/services/replay"
	"leaguerank/internal/services/standings"
	"leaguerank/internal/storage"
	filestorage "leaguerank/internal/storage/file"
	"leaguerank/internal/storage/memory"
	redisstorage "leaguerank/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeFile   = "file"
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	Players   *player.Store
	Matches   *match.Processor
	Replay    *replay.Service
	Standings *standings.Service
}

// Config holds configuration for the application factory
type Config struct {
	// StorageType selects the storage backend ("file", "memory" or "redis")
	// If empty, defaults to "file"
	StorageType string
	// DataDir is the league data directory (required if StorageType is "file")
	DataDir string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// ResolvePolicy selects how bare names that match several players are
	// handled ("fail", "newest" or "oldest"). If empty, defaults to "fail"
	ResolvePolicy string
	// DecayRate overrides the inactivity constant (optional)
	// If zero, defaults to rating.DefaultDecayRate
	DecayRate float64
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeFile
	}

	switch storageType {
	case StorageTypeFile:
		if cfg.DataDir == "" {
			return nil, errors.New("DataDir required when StorageType is file")
		}
		fileStore, err := filestorage.New(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		store = fileStore
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'file', 'memory' or 'redis'")
	}

	resolver, err := player.ResolverForPolicy(cfg.ResolvePolicy)
	if err != nil {
		return nil, err
	}

	decayRate := cfg.DecayRate
	if decayRate == 0 {
		decayRate = rating.DefaultDecayRate
	}

	return newWithDependencies(store, clock.New(), resolver, decayRate, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, resolver player.Resolver, decayRate float64, logger *slog.Logger) *App {
	players := player.NewStore(store, resolver, logger)
	matches := match.NewProcessor(players, store, decayRate, logger)
	replayService := replay.New(store, matches, logger)
	standingsService := standings.New(store, clk, logger)

	return &App{
		Storage:   store,
		Clock:     clk,
		Players:   players,
		Matches:   matches,
		Replay:    replayService,
		Standings: standingsService,
	}
}
