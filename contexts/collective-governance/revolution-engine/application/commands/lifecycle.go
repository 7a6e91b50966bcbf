package commands

import (
	"context"
	"log/slog"
	"strings"

	application "revolution/contexts/collective-governance/revolution-engine/application"
	"revolution/contexts/collective-governance/revolution-engine/domain/entities"
	domainerrors "revolution/contexts/collective-governance/revolution-engine/domain/errors"
	"revolution/contexts/collective-governance/revolution-engine/ports"
)

// CreateRevolutionCommand seeds a new cycle: mission, the three queued period
// configs, and the global governance rates.
type CreateRevolutionCommand struct {
	Mission            string
	SubmissionConfig   entities.SubmissionConfig
	VotingConfig       entities.VotingConfig
	AuctionConfig      entities.AuctionConfig
	MinCreatorRate     float64
	DefaultEntropyRate float64
	EnergyWeight       float64
}

// AdvanceResult reports what one advance call graduated.
type AdvanceResult struct {
	Revolution entities.Revolution
	Report     entities.AdvanceReport
}

// LifecycleUseCase owns revolution creation, initiation, and the cycle
// advance. It is the only writer that constructs new periods.
type LifecycleUseCase struct {
	Revolutions ports.RevolutionRepository
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Outbox      ports.OutboxWriter
	Logger      *slog.Logger
}

func (uc LifecycleUseCase) CreateRevolution(ctx context.Context, cmd CreateRevolutionCommand) (entities.Revolution, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.Mission) == "" {
		return entities.Revolution{}, domainerrors.ErrInvalidInput
	}

	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Revolution{}, err
	}
	now := resolveNow(uc.Clock)
	revolution, err := entities.NewRevolution(
		id,
		cmd.Mission,
		cmd.SubmissionConfig,
		cmd.VotingConfig,
		cmd.AuctionConfig,
		cmd.MinCreatorRate,
		cmd.DefaultEntropyRate,
		cmd.EnergyWeight,
		now,
	)
	if err != nil {
		logger.Warn("revolution create validation failed",
			"event", "revolution_create_validation_failed",
			"module", "collective-governance/revolution-engine",
			"layer", "application",
			"error", err.Error(),
		)
		return entities.Revolution{}, err
	}
	if err := uc.Revolutions.Save(ctx, revolution); err != nil {
		return entities.Revolution{}, err
	}
	if err := appendEvent(ctx, uc.Outbox, uc.IDGen, "revolution.created", revolution.ID, now, map[string]any{
		"mission":              revolution.Mission,
		"min_creator_rate":     revolution.MinCreatorRate,
		"default_entropy_rate": revolution.DefaultEntropyRate,
		"energy_weight":        revolution.EnergyWeight,
	}); err != nil {
		return entities.Revolution{}, err
	}
	logger.Info("revolution created",
		"event", "revolution_created",
		"module", "collective-governance/revolution-engine",
		"layer", "application",
		"revolution_id", revolution.ID,
	)
	return revolution, nil
}

// Initiate opens the first submission period. Fails once any submission
// period exists.
func (uc LifecycleUseCase) Initiate(ctx context.Context, revolutionID string) (entities.Revolution, error) {
	logger := application.ResolveLogger(uc.Logger)
	revolution, err := uc.Revolutions.Get(ctx, strings.TrimSpace(revolutionID))
	if err != nil {
		return entities.Revolution{}, err
	}
	now := resolveNow(uc.Clock)
	if err := revolution.Initiate(now); err != nil {
		return entities.Revolution{}, err
	}
	revolution.Version++
	revolution.UpdatedAt = now
	if err := uc.Revolutions.Save(ctx, revolution); err != nil {
		return entities.Revolution{}, err
	}
	if err := appendEvent(ctx, uc.Outbox, uc.IDGen, "revolution.initiated", revolution.ID, now, map[string]any{
		"submission_period_id": 0,
		"end_date":             revolution.SubmissionPeriods[0].EndDate,
	}); err != nil {
		return entities.Revolution{}, err
	}
	logger.Info("revolution initiated",
		"event", "revolution_initiated",
		"module", "collective-governance/revolution-engine",
		"layer", "application",
		"revolution_id", revolution.ID,
	)
	return revolution, nil
}

// AdvanceCycle graduates votes, then submissions. Both graduations commit in
// one aggregate save; a second advance with no elapsed time changes nothing.
func (uc LifecycleUseCase) AdvanceCycle(ctx context.Context, revolutionID string) (AdvanceResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	revolution, err := uc.Revolutions.Get(ctx, strings.TrimSpace(revolutionID))
	if err != nil {
		return AdvanceResult{}, err
	}
	now := resolveNow(uc.Clock)
	report, err := revolution.Advance(now)
	if err != nil {
		return AdvanceResult{}, err
	}
	if report.Empty() {
		logger.Debug("revolution advance was a timing no-op",
			"event", "revolution_advance_noop",
			"module", "collective-governance/revolution-engine",
			"layer", "application",
			"revolution_id", revolution.ID,
		)
		return AdvanceResult{Revolution: revolution, Report: report}, nil
	}

	revolution.Version++
	revolution.UpdatedAt = now
	if err := uc.Revolutions.Save(ctx, revolution); err != nil {
		return AdvanceResult{}, err
	}

	payload := map[string]any{}
	if report.AuctionPeriodID != nil {
		payload["auction_period_id"] = *report.AuctionPeriodID
	}
	if report.VotingPeriodID != nil {
		payload["voting_period_id"] = *report.VotingPeriodID
	}
	if report.SubmissionPeriodID != nil {
		payload["submission_period_id"] = *report.SubmissionPeriodID
	}
	if err := appendEvent(ctx, uc.Outbox, uc.IDGen, "revolution.advanced", revolution.ID, now, payload); err != nil {
		return AdvanceResult{}, err
	}
	logger.Info("revolution advanced",
		"event", "revolution_advanced",
		"module", "collective-governance/revolution-engine",
		"layer", "application",
		"revolution_id", revolution.ID,
		"graduated_auction_period", report.AuctionPeriodID != nil,
		"graduated_voting_period", report.VotingPeriodID != nil,
	)
	return AdvanceResult{Revolution: revolution, Report: report}, nil
}
