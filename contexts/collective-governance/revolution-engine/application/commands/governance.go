package commands

import (
	"context"
	"log/slog"
	"strings"

	application "revolution/contexts/collective-governance/revolution-engine/application"
	"revolution/contexts/collective-governance/revolution-engine/domain/entities"
	"revolution/contexts/collective-governance/revolution-engine/ports"
)

// GovernanceUpdate is a sparse policy patch; nil fields are left untouched.
type GovernanceUpdate struct {
	Mission            *string
	SubmissionConfig   *entities.SubmissionConfig
	VotingConfig       *entities.VotingConfig
	AuctionConfig      *entities.AuctionConfig
	MinCreatorRate     *float64
	DefaultEntropyRate *float64
	EnergyWeight       *float64
}

// GovernanceUseCase applies collective parameter decisions. The whole patch is
// applied against one loaded aggregate and commits in a single save, so a
// rejected field leaves every other field unapplied. Mutations replace only
// the queued snapshots; in-flight periods are unaffected.
type GovernanceUseCase struct {
	Revolutions ports.RevolutionRepository
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Outbox      ports.OutboxWriter
	Logger      *slog.Logger
}

func (uc GovernanceUseCase) UpdatePolicy(ctx context.Context, revolutionID string, update GovernanceUpdate) error {
	logger := application.ResolveLogger(uc.Logger)
	revolution, err := uc.Revolutions.Get(ctx, strings.TrimSpace(revolutionID))
	if err != nil {
		return err
	}

	applied := make([]string, 0, 7)
	steps := []struct {
		parameter string
		present   bool
		apply     func(*entities.Revolution) error
	}{
		{"mission", update.Mission != nil, func(r *entities.Revolution) error {
			return r.SetMission(*update.Mission)
		}},
		{"submission_config", update.SubmissionConfig != nil, func(r *entities.Revolution) error {
			return r.SetSubmissionConfig(*update.SubmissionConfig)
		}},
		{"voting_config", update.VotingConfig != nil, func(r *entities.Revolution) error {
			return r.SetVotingConfig(*update.VotingConfig)
		}},
		{"auction_config", update.AuctionConfig != nil, func(r *entities.Revolution) error {
			return r.SetAuctionConfig(*update.AuctionConfig)
		}},
		{"min_creator_rate", update.MinCreatorRate != nil, func(r *entities.Revolution) error {
			return r.SetMinCreatorRate(*update.MinCreatorRate)
		}},
		{"default_entropy_rate", update.DefaultEntropyRate != nil, func(r *entities.Revolution) error {
			return r.SetDefaultEntropyRate(*update.DefaultEntropyRate)
		}},
		{"energy_weight", update.EnergyWeight != nil, func(r *entities.Revolution) error {
			return r.SetEnergyWeight(*update.EnergyWeight)
		}},
	}
	for _, step := range steps {
		if !step.present {
			continue
		}
		if err := step.apply(&revolution); err != nil {
			logger.Warn("governance update rejected",
				"event", "revolution_governance_rejected",
				"module", "collective-governance/revolution-engine",
				"layer", "application",
				"revolution_id", revolution.ID,
				"parameter", step.parameter,
				"error", err.Error(),
			)
			return err
		}
		applied = append(applied, step.parameter)
	}
	if len(applied) == 0 {
		return nil
	}

	now := resolveNow(uc.Clock)
	revolution.Version++
	revolution.UpdatedAt = now
	if err := uc.Revolutions.Save(ctx, revolution); err != nil {
		return err
	}
	if err := appendEvent(ctx, uc.Outbox, uc.IDGen, "governance.updated", revolution.ID, now, map[string]any{
		"parameters": applied,
	}); err != nil {
		return err
	}
	logger.Info("governance policy updated",
		"event", "revolution_governance_updated",
		"module", "collective-governance/revolution-engine",
		"layer", "application",
		"revolution_id", revolution.ID,
		"parameters", strings.Join(applied, ","),
	)
	return nil
}
