package bootstrap

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"passport-extractor/internal/config"
	"passport-extractor/internal/extend"
	"passport-extractor/internal/history"
)

type App struct {
	Config       *config.Config
	Logger       zerolog.Logger
	ExtendClient *extend.Client
	History      *history.Store

	StartedAt time.Time
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:       cfg,
		Logger:       logger,
		ExtendClient: extend.NewClient(time.Duration(cfg.Extend.TimeoutSeconds) * time.Second),
		History:      history.NewStore(),
		StartedAt:    time.Now(),
	}, nil
}

// ExtendDefaults is the vendor configuration requests fall back to when they
// carry no override.
func (a *App) ExtendDefaults() extend.Config {
	return extend.Config{
		BaseURL:     a.Config.Extend.BaseURL,
		APIToken:    a.Config.Extend.APIToken,
		ProcessorID: a.Config.Extend.ProcessorID,
	}
}

// Close drops all session state. There are no external connections to close;
// history is ephemeral and dies with the process.
func (a *App) Close() error {
	if a.History != nil {
		a.History.Reset()
	}
	return nil
}

func newLogger(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level %q failed: %w", cfg.Level, err)
	}

	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger(), nil
}
