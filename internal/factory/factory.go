package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/bartdebruin-tp/matchmaker/internal/auth"
	"github.com/bartdebruin-tp/matchmaker/internal/dependencies/clock"
	"github.com/bartdebruin-tp/matchmaker/internal/dependencies/ident"
	"github.com/bartdebruin-tp/matchmaker/internal/dependencies/random"
	"github.com/bartdebruin-tp/matchmaker/internal/match"
	"github.com/bartdebruin-tp/matchmaker/internal/model"
	"github.com/bartdebruin-tp/matchmaker/internal/remote"
	"github.com/bartdebruin-tp/matchmaker/internal/remote/memory"
	redisremote "github.com/bartdebruin-tp/matchmaker/internal/remote/redis"
	"github.com/bartdebruin-tp/matchmaker/internal/snapshot"
	"github.com/bartdebruin-tp/matchmaker/internal/store/groups"
	"github.com/bartdebruin-tp/matchmaker/internal/store/players"
	"github.com/bartdebruin-tp/matchmaker/internal/store/subpages"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Remote store capability
	Remote remote.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Ident  ident.Generator

	// Auth
	AuthService *auth.Service

	// Sync stores
	Players  *players.Store
	Groups   *groups.Store
	SubPages *subpages.Store

	// Match generation
	Matches *match.Generator

	// Offline bootstrap snapshot
	Snapshot *snapshot.File
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the remote backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisremote.Config
	// SnapshotPath is the offline bootstrap snapshot file (optional)
	SnapshotPath string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create the remote store based on type
	var store remote.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisremote.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()
	idg := ident.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	snapshotPath := cfg.SnapshotPath
	if snapshotPath == "" {
		snapshotPath = "data/matchmaker-snapshot.json"
	}

	return newWithDependencies(store, clk, rnd, idg, authCfg, snapshotPath, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store remote.Store,
	clk clock.Clock,
	rnd random.Random,
	idg ident.Generator,
	authCfg auth.Config,
	snapshotPath string,
	logger *slog.Logger,
) *App {
	authService := auth.New(store, clk, idg, authCfg, logger)

	return &App{
		Remote:      store,
		Clock:       clk,
		Random:      rnd,
		Ident:       idg,
		AuthService: authService,
		Players:     players.New(store, authService, clk, idg, logger),
		Groups:      groups.New(store, authService, clk, idg, logger),
		SubPages:    subpages.New(store, authService, clk, idg, logger),
		Matches:     match.NewGenerator(clk, idg, rnd),
		Snapshot:    snapshot.NewFile(snapshotPath, logger),
	}
}

// ExportData assembles the offline-bootstrap blob from the local caches
func (a *App) ExportData() model.AppData {
	return model.AppData{
		Players:         a.Players.All(),
		Groups:          a.Groups.All(),
		ActivePlayerIDs: a.Groups.ActivePlayers(),
	}
}
