package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"passport-extractor/internal/extend"
	"passport-extractor/internal/format"
	"passport-extractor/internal/history"
	"passport-extractor/internal/intake"
	"passport-extractor/internal/model"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrVendorConfig       = errors.New("extend config is invalid")
	ErrExtractionNotFound = errors.New("extraction not found")
)

// VendorOverride lets a request supply its own token or processor id, the way
// the UI sidebar does. Empty values fall back to the configured defaults.
type VendorOverride struct {
	APIToken    string
	ProcessorID string
}

type ExtractInput struct {
	SessionID string
	File      *intake.File
	Override  VendorOverride
}

type ExtractionService struct {
	client   *extend.Client
	store    *history.Store
	defaults extend.Config
	logger   zerolog.Logger
}

func NewExtractionService(client *extend.Client, store *history.Store, defaults extend.Config, logger zerolog.Logger) *ExtractionService {
	return &ExtractionService{
		client:   client,
		store:    store,
		defaults: defaults,
		logger:   logger,
	}
}

// Extract runs one synchronous extraction: vendor upload, processor run,
// flatten, history append. Failed attempts leave the history untouched.
func (s *ExtractionService) Extract(ctx context.Context, input ExtractInput) (*model.ExtractionResult, error) {
	if input.SessionID == "" || input.File == nil {
		return nil, ErrInvalidInput
	}

	cfg, err := s.resolveVendor(input.Override)
	if err != nil {
		return nil, err
	}

	f, err := input.File.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open spooled file: %v", extend.ErrUpload, err)
	}
	defer f.Close()

	started := time.Now()
	run, err := s.client.Extract(ctx, cfg, input.File.Meta.Filename, f)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("session_id", input.SessionID).
			Str("filename", input.File.Meta.Filename).
			Msg("extraction failed")
		return nil, err
	}

	value, _ := run.OutputValue()
	fields, order := format.Flatten(value)

	result := model.ExtractionResult{
		ID:             uuid.New().String(),
		SourceFilename: input.File.Meta.Filename,
		Timestamp:      time.Now(),
		Fields:         fields,
		FieldOrder:     order,
		RawResponse:    run.Raw,
		File:           input.File.Meta,
	}
	s.store.Append(input.SessionID, result)

	s.logger.Info().
		Str("session_id", input.SessionID).
		Str("extraction_id", result.ID).
		Str("run_id", run.ID).
		Str("filename", result.SourceFilename).
		Int("fields", len(fields)).
		Dur("elapsed", time.Since(started)).
		Msg("extraction succeeded")
	return &result, nil
}

// History returns the session's extractions newest first, for display.
func (s *ExtractionService) History(sessionID string) []model.ExtractionResult {
	entries := s.store.List(sessionID)
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

func (s *ExtractionService) Get(sessionID, extractionID string) (model.ExtractionResult, error) {
	result, ok := s.store.Get(sessionID, extractionID)
	if !ok {
		return model.ExtractionResult{}, ErrExtractionNotFound
	}
	return result, nil
}

func (s *ExtractionService) Count(sessionID string) int {
	return s.store.Len(sessionID)
}

func (s *ExtractionService) ClearHistory(sessionID string) {
	s.store.Clear(sessionID)
}

// Settings describes the configuration state the UI settings page shows.
type Settings struct {
	TokenConfigured bool   `json:"token_configured"`
	TokenMasked     string `json:"token_masked,omitempty"`
	ProcessorID     string `json:"processor_id"`
	ExtractionCount int    `json:"extraction_count"`
}

func (s *ExtractionService) SettingsFor(sessionID string) Settings {
	settings := Settings{
		TokenConfigured: s.defaults.APIToken != "",
		ProcessorID:     s.defaults.ProcessorID,
		ExtractionCount: s.store.Len(sessionID),
	}
	if settings.TokenConfigured {
		settings.TokenMasked = maskSecret(s.defaults.APIToken)
	}
	return settings
}

func (s *ExtractionService) resolveVendor(override VendorOverride) (extend.Config, error) {
	cfg := s.defaults
	if token := strings.TrimSpace(override.APIToken); token != "" {
		cfg.APIToken = token
	}
	if id := strings.TrimSpace(override.ProcessorID); id != "" {
		cfg.ProcessorID = id
	}
	if cfg.BaseURL == "" || cfg.APIToken == "" || cfg.ProcessorID == "" {
		return extend.Config{}, ErrVendorConfig
	}
	return cfg, nil
}

func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + strings.Repeat("*", len(secret)-8) + secret[len(secret)-4:]
}
