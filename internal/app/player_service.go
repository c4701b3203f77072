package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NALStudio/NDiscoPlus/internal/config"
	"github.com/NALStudio/NDiscoPlus/internal/eventbus"
	"github.com/NALStudio/NDiscoPlus/internal/ledger"
	"github.com/NALStudio/NDiscoPlus/internal/light"
	"github.com/NALStudio/NDiscoPlus/internal/player"
)

// PlayerService runs the update loop and ledger housekeeping.
type PlayerService struct {
	cfg    *config.Config
	ledger *ledger.Ledger

	Player *player.Player
	done   chan struct{}
}

// NewPlayerService creates the player for records.
func NewPlayerService(cfg *config.Config, bus *eventbus.Bus, l *ledger.Ledger, records []light.Record) *PlayerService {
	return &PlayerService{
		cfg:    cfg,
		ledger: l,
		Player: player.New(
			player.WallClock{},
			bus,
			l,
			records,
			cfg.Player.Interval(),
			cfg.Player.FPSPeriod(),
		),
		done: make(chan struct{}),
	}
}

// Start runs the update loop and the ledger cleanup.
func (s *PlayerService) Start(ctx context.Context) {
	go func() {
		defer close(s.done)
		if err := s.Player.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Player error")
		}
	}()
	go s.runLedgerCleanup(ctx)
}

// Wait blocks until the update loop has exited or ctx is done.
func (s *PlayerService) Wait(ctx context.Context) {
	select {
	case <-s.done:
	case <-ctx.Done():
		log.Warn().Msg("Player shutdown timed out")
	}
}

// runLedgerCleanup periodically cleans up old ledger entries.
func (s *PlayerService) runLedgerCleanup(ctx context.Context) {
	retention := time.Duration(s.cfg.Ledger.RetentionDays) * 24 * time.Hour
	interval := s.cfg.Ledger.CleanupInterval.Duration()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.ledger.DeleteOlderThan(retention)
			if err != nil {
				log.Error().Err(err).Msg("Failed to cleanup old ledger entries")
			} else if deleted > 0 {
				log.Info().Int64("deleted", deleted).Dur("retention", retention).Msg("Cleaned up old ledger entries")
			}
		}
	}
}
