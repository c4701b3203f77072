package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/NALStudio/NDiscoPlus/internal/config"
	luart "github.com/NALStudio/NDiscoPlus/internal/lua"
	"github.com/NALStudio/NDiscoPlus/internal/lua/modules"
)

// LuaService wraps the effect-script runtime.
type LuaService struct {
	cfg     *config.Config
	Runtime *luart.Runtime
}

// NewLuaService creates a new LuaService.
func NewLuaService(cfg *config.Config) *LuaService {
	return &LuaService{
		cfg:     cfg,
		Runtime: luart.NewRuntime(),
	}
}

// Enabled reports whether an effect script is configured.
func (s *LuaService) Enabled() bool {
	return s.cfg.Track.Script != ""
}

// LoadScript loads the effect script.
// Must be called before Start().
func (s *LuaService) LoadScript() error {
	if !s.Enabled() {
		log.Info().Msg("No effect script configured, using colour cycle")
		return nil
	}
	return s.Runtime.LoadScript(s.cfg.Track.Script)
}

// Start begins the Lua worker goroutine.
func (s *LuaService) Start(ctx context.Context) {
	// This is the ONLY goroutine that touches Lua
	go s.Runtime.Run(ctx)
}

// Generate runs the script for session on the Lua worker.
func (s *LuaService) Generate(ctx context.Context, session *modules.Session) error {
	return s.Runtime.Generate(ctx, session)
}

// Close closes the runtime.
func (s *LuaService) Close() {
	s.Runtime.Close()
}
