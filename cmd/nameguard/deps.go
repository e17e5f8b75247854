package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/parcelworks/nameguard/internal/application/handlers"
	"github.com/parcelworks/nameguard/internal/domain/entities"
	"github.com/parcelworks/nameguard/internal/domain/ports"
	"github.com/parcelworks/nameguard/internal/domain/services"
	"github.com/parcelworks/nameguard/internal/infrastructure/config"
	"github.com/parcelworks/nameguard/internal/infrastructure/lexicons"
	"github.com/parcelworks/nameguard/internal/infrastructure/propertyindex/places"
	"github.com/parcelworks/nameguard/internal/infrastructure/propertyindex/qdrant"
	"github.com/parcelworks/nameguard/internal/infrastructure/propertyindex/rediscache"
	"github.com/parcelworks/nameguard/internal/infrastructure/propertyindex/sqlite"
	suggest "github.com/parcelworks/nameguard/internal/infrastructure/suggest/openai"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config            *config.Config
	Log               *logrus.Logger
	ValidateHandler   *handlers.ValidateHandler
	LexiconsHandler   *handlers.LexiconsHandler
	PropertiesHandler *handlers.PropertiesHandler // nil for read-only index providers
}

// withDeps loads config and builds dependencies, then calls the provided
// function. It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.LoadOrDefault(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := newLogger()

	store, err := lexicons.LoadDir(cfg.LexiconsDir(cwd), log)
	if err != nil {
		return fmt.Errorf("loading lexicons: %w", err)
	}

	thresholds := entities.Thresholds{
		Profanity: cfg.Thresholds.Profanity,
		Cultural:  cfg.Thresholds.Cultural,
		Slang:     cfg.Thresholds.Slang,
		Phonetic:  cfg.Thresholds.Phonetic,
		Duplicate: cfg.Thresholds.Duplicate,
	}
	if err := thresholds.Validate(); err != nil {
		return fmt.Errorf("validating thresholds: %w", err)
	}

	screening := services.NewScreeningService(store, services.NewEncoderRegistry(), thresholds)

	index, writer, geocoder, closer, err := buildIndex(ctx, cfg, cwd)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer client.Close()
		ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
		index = rediscache.New(index, client, ttl, log)
		log.WithField("addr", cfg.Redis.Addr).Debug("geo cache enabled")
	}

	duplicates := services.NewDuplicateService(index, thresholds.Duplicate)

	var suggester ports.Suggester
	if cfg.Suggester.APIKey != "" {
		sug, err := suggest.NewSuggester(cfg.Suggester)
		if err != nil {
			return fmt.Errorf("creating suggester: %w", err)
		}
		suggester = sug
	} else {
		log.Debug("no suggester API key configured, suggestions disabled")
	}

	validator := services.NewValidatorService(screening, duplicates, services.NewReportBuilder(), suggester)

	deps := &Deps{
		Config:          cfg,
		Log:             log,
		ValidateHandler: handlers.NewValidateHandler(validator, geocoder),
		LexiconsHandler: handlers.NewLexiconsHandler(store),
	}
	if writer != nil {
		deps.PropertiesHandler = handlers.NewPropertiesHandler(writer, index)
	}

	return fn(deps)
}

// buildIndex constructs the configured property index backend. The writer
// is nil for the read-only places provider; the geocoder is non-nil only
// when a places API is configured.
func buildIndex(ctx context.Context, cfg *config.Config, cwd string) (ports.PropertyIndex, ports.PropertyWriter, ports.Geocoder, io.Closer, error) {
	var geocoder ports.Geocoder
	if cfg.Places.BaseURL != "" && cfg.Places.APIKey != "" {
		client, err := places.NewClient(cfg.Places)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("creating places client: %w", err)
		}
		geocoder = client

		if cfg.Index.Provider == config.IndexPlaces {
			return client, nil, geocoder, nil, nil
		}
	} else if cfg.Index.Provider == config.IndexPlaces {
		return nil, nil, nil, nil, fmt.Errorf("index provider %q requires places base_url and api_key", config.IndexPlaces)
	}

	switch cfg.Index.Provider {
	case config.IndexQdrant:
		repo, err := qdrant.NewRepository(cfg.Qdrant)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("creating qdrant repository: %w", err)
		}
		return repo, repo, geocoder, repo, nil

	case config.IndexSQLite:
		repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: cfg.SQLitePath(cwd)})
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("creating sqlite repository: %w", err)
		}
		if err := repo.Init(ctx); err != nil {
			repo.Close()
			return nil, nil, nil, nil, fmt.Errorf("initializing sqlite schema: %w", err)
		}
		return repo, repo, geocoder, repo, nil

	default:
		return nil, nil, nil, nil, fmt.Errorf("unknown index provider %q", cfg.Index.Provider)
	}
}

// newLogger builds the CLI logger, honoring the global verbose flag.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if globalVerbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}
