package workers

import (
	"context"
	"errors"
	"log/slog"

	application "revolution/contexts/collective-governance/revolution-engine/application"
	"revolution/contexts/collective-governance/revolution-engine/application/commands"
	domainerrors "revolution/contexts/collective-governance/revolution-engine/domain/errors"
	"revolution/contexts/collective-governance/revolution-engine/ports"
)

// CycleScheduler polls every revolution and advances the ones whose periods
// have closed. Period closure is a time comparison, so each pass is
// non-blocking and safe to rerun on any cadence.
type CycleScheduler struct {
	Revolutions ports.RevolutionRepository
	Lifecycle   commands.LifecycleUseCase
	Logger      *slog.Logger
}

// RunOnce advances all initiated revolutions. A version conflict means a
// concurrent writer got there first; the next pass reconciles, so conflicts
// are logged and skipped rather than failing the sweep.
func (s CycleScheduler) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(s.Logger)
	revolutions, err := s.Revolutions.List(ctx)
	if err != nil {
		logger.Error("cycle sweep list failed",
			"event", "revolution_cycle_sweep_list_failed",
			"module", "collective-governance/revolution-engine",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	graduated := 0
	for _, revolution := range revolutions {
		if !revolution.Initiated() {
			continue
		}
		result, err := s.Lifecycle.AdvanceCycle(ctx, revolution.ID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrConflict) {
				logger.Warn("cycle sweep lost a version race",
					"event", "revolution_cycle_sweep_conflict",
					"module", "collective-governance/revolution-engine",
					"layer", "worker",
					"revolution_id", revolution.ID,
				)
				continue
			}
			logger.Error("cycle sweep advance failed",
				"event", "revolution_cycle_sweep_advance_failed",
				"module", "collective-governance/revolution-engine",
				"layer", "worker",
				"revolution_id", revolution.ID,
				"error", err.Error(),
			)
			return err
		}
		if !result.Report.Empty() {
			graduated++
		}
	}

	logger.Info("cycle sweep finished",
		"event", "revolution_cycle_sweep_finished",
		"module", "collective-governance/revolution-engine",
		"layer", "worker",
		"revolutions", len(revolutions),
		"graduated", graduated,
	)
	return nil
}
