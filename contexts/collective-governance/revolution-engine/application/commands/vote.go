package commands

import (
	"context"
	"log/slog"
	"strings"

	application "revolution/contexts/collective-governance/revolution-engine/application"
	domainerrors "revolution/contexts/collective-governance/revolution-engine/domain/errors"
	"revolution/contexts/collective-governance/revolution-engine/ports"
)

type CastVoteCommand struct {
	RevolutionID string
	Caller       string
	ChoiceID     int
}

type CastVoteResult struct {
	ChoiceID int
	Weight   float64
	Votes    float64
}

// VoteUseCase accumulates vote weight onto ballot choices. Weight comes from
// the wired strategy; without one every caller counts as 1.
type VoteUseCase struct {
	Revolutions ports.RevolutionRepository
	Strategy    ports.VotingPowerStrategy
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Outbox      ports.OutboxWriter
	Logger      *slog.Logger
}

func (uc VoteUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	if caller == "" {
		return CastVoteResult{}, domainerrors.ErrInvalidInput
	}

	revolution, err := uc.Revolutions.Get(ctx, strings.TrimSpace(cmd.RevolutionID))
	if err != nil {
		return CastVoteResult{}, err
	}
	period, err := revolution.CurrentVotingPeriod()
	if err != nil {
		return CastVoteResult{}, err
	}

	weight := 1.0
	if uc.Strategy != nil {
		weight, err = uc.Strategy.ResolvePower(ctx, caller)
		if err != nil {
			logger.Error("voting power resolution failed",
				"event", "revolution_vote_power_failed",
				"module", "collective-governance/revolution-engine",
				"layer", "application",
				"revolution_id", revolution.ID,
				"caller", caller,
				"error", err.Error(),
			)
			return CastVoteResult{}, err
		}
	}

	now := resolveNow(uc.Clock)
	if err := period.CastVote(cmd.ChoiceID, weight, now); err != nil {
		return CastVoteResult{}, err
	}
	revolution.Version++
	revolution.UpdatedAt = now
	if err := uc.Revolutions.Save(ctx, revolution); err != nil {
		return CastVoteResult{}, err
	}
	if err := appendEvent(ctx, uc.Outbox, uc.IDGen, "vote.cast", revolution.ID, now, map[string]any{
		"voting_period_id": period.ID,
		"choice_id":        cmd.ChoiceID,
		"weight":           weight,
	}); err != nil {
		return CastVoteResult{}, err
	}

	votes := 0.0
	for _, choice := range period.Choices {
		if choice.ID == cmd.ChoiceID {
			votes = choice.Votes
		}
	}
	logger.Info("vote cast",
		"event", "revolution_vote_cast",
		"module", "collective-governance/revolution-engine",
		"layer", "application",
		"revolution_id", revolution.ID,
		"voting_period_id", period.ID,
		"choice_id", cmd.ChoiceID,
		"weight", weight,
	)
	return CastVoteResult{ChoiceID: cmd.ChoiceID, Weight: weight, Votes: votes}, nil
}
