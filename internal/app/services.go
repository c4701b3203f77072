package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/NALStudio/NDiscoPlus/internal/config"
	"github.com/NALStudio/NDiscoPlus/internal/db"
	"github.com/NALStudio/NDiscoPlus/internal/eventbus"
	"github.com/NALStudio/NDiscoPlus/internal/ledger"
	"github.com/NALStudio/NDiscoPlus/internal/light"
	"github.com/NALStudio/NDiscoPlus/internal/lua/modules"
	"github.com/NALStudio/NDiscoPlus/internal/sink"
	"github.com/NALStudio/NDiscoPlus/internal/storage"
)

// Services is a container for all application services.
// It manages service initialization order and dependencies.
type Services struct {
	cfg *config.Config

	// Core infrastructure
	DB     *db.DB
	Ledger *ledger.Ledger
	Bus    *eventbus.Bus

	// Repositories
	Store    *storage.Store
	Profiles *storage.Profiles
	Exports  *storage.Exports

	// High-level services
	Lua     *LuaService
	Hue     *HueService // nil when disabled
	Player  *PlayerService
	Health  *HealthService
	LogSink *sink.LogSink
}

// NewServices creates all services with proper dependency injection.
func NewServices(cfg *config.Config) (*Services, error) {
	s := &Services{cfg: cfg}

	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	s.DB = database

	s.Ledger = ledger.New(database.DB)
	s.Store = storage.NewStore(database.DB)
	s.Profiles = storage.NewProfiles(s.Store)
	s.Exports = storage.NewExports(s.Store)

	s.Bus = eventbus.NewWithConfig(cfg.EventBus.GetWorkers(), cfg.EventBus.GetQueueSize())
	s.LogSink = sink.NewLogSink(cfg.Player.FPSLogPeriod.Duration())

	s.Lua = NewLuaService(cfg)
	s.Hue = NewHueService(cfg)

	return s, nil
}

// Start connects the lights, prepares the configured track and starts playback.
func (s *Services) Start(ctx context.Context) error {
	var hueLights []light.Light
	if s.Hue != nil {
		if err := s.Hue.Connect(ctx); err != nil {
			return err
		}
		hueLights = s.Hue.Lights()
	}

	roster, err := BuildRoster(s.cfg.Lights.Screen.Count, hueLights)
	if err != nil {
		return err
	}
	if roster.Len() == 0 {
		log.Warn().Msg("No lights configured")
	}

	profile, err := LoadProfile(s.Profiles, s.cfg.Profile)
	if err != nil {
		return err
	}
	records := profile.Apply(roster.Lights())

	palette, err := ResolvePalette(s.cfg.Palette)
	if err != nil {
		return err
	}
	effectCfg, err := s.cfg.Effects.EffectConfig()
	if err != nil {
		return err
	}

	// Load the effect script before starting the worker
	if err := s.Lua.LoadScript(); err != nil {
		return err
	}
	s.Lua.Start(ctx)

	s.LogSink.Register(s.Bus)
	if s.Hue != nil {
		s.Hue.Start(ctx, s.Bus)
	}

	var generator Generator
	if s.Lua.Enabled() {
		generator = s.Lua
	}
	track := modules.Track{
		ID:       s.cfg.Track.ID,
		Duration: s.cfg.Track.Duration.Duration(),
		Seed:     s.cfg.Track.Seed,
	}
	data, err := NewTrackPreparer(generator, s.Exports, s.Ledger, s.Bus).Prepare(ctx, track, palette, effectCfg, records)
	if err != nil {
		return fmt.Errorf("failed to prepare track: %w", err)
	}

	s.Player = NewPlayerService(s.cfg, s.Bus, s.Ledger, records)
	s.Health = NewHealthService(s.cfg, s.Exports, s.Player.Player)

	s.Player.Player.Load(data, track.Duration)
	s.Player.Start(ctx)
	s.Player.Player.Play()
	s.Health.Start(ctx)

	return nil
}

// ClearState clears stored profiles and exports.
func (s *Services) ClearState() error {
	return s.Store.Clear("")
}

// Stop gracefully stops all services.
func (s *Services) Stop() error {
	s.Close()
	return nil
}

// Close releases all resources.
func (s *Services) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.GetShutdownTimeout())
	defer cancel()

	if s.Player != nil {
		s.Player.Wait(ctx)
	}
	if s.Lua != nil {
		s.Lua.Close()
	}
	if s.Bus != nil {
		s.Bus.Close(ctx)
	}
	if s.DB != nil {
		s.DB.Close()
	}
}
