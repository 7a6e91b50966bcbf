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

// AddSubmissionCommand carries the explicit caller identity; the engine never
// reads ambient identity.
type AddSubmissionCommand struct {
	RevolutionID     string
	Caller           string
	Authors          []string
	CulturalArtifact string
	Title            string
	Description      string
}

// SubmissionUseCase appends submissions into the open submission period.
type SubmissionUseCase struct {
	Revolutions ports.RevolutionRepository
	Gate        ports.SubmissionGate
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Outbox      ports.OutboxWriter
	Logger      *slog.Logger
}

func (uc SubmissionUseCase) AddSubmission(ctx context.Context, cmd AddSubmissionCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	if caller == "" {
		return entities.Submission{}, domainerrors.ErrInvalidInput
	}
	authors := cmd.Authors
	if len(authors) == 0 {
		authors = []string{caller}
	}

	revolution, err := uc.Revolutions.Get(ctx, strings.TrimSpace(cmd.RevolutionID))
	if err != nil {
		return entities.Submission{}, err
	}
	period, err := revolution.CurrentSubmissionPeriod()
	if err != nil {
		return entities.Submission{}, err
	}

	if uc.Gate != nil && period.Config.OneSubmissionPerAddress {
		eligible, err := uc.Gate.IsEligible(ctx, caller, period.Submissions)
		if err != nil {
			return entities.Submission{}, err
		}
		if !eligible {
			logger.Warn("submission rejected by gate",
				"event", "revolution_submission_gated",
				"module", "collective-governance/revolution-engine",
				"layer", "application",
				"revolution_id", revolution.ID,
				"caller", caller,
			)
			return entities.Submission{}, domainerrors.ErrDuplicateSubmission
		}
	}

	now := resolveNow(uc.Clock)
	submission, err := period.AddSubmission(now, authors, cmd.CulturalArtifact, cmd.Title, cmd.Description)
	if err != nil {
		return entities.Submission{}, err
	}
	revolution.Version++
	revolution.UpdatedAt = now
	if err := uc.Revolutions.Save(ctx, revolution); err != nil {
		return entities.Submission{}, err
	}
	if err := appendEvent(ctx, uc.Outbox, uc.IDGen, "submission.created", revolution.ID, now, map[string]any{
		"submission_period_id": period.ID,
		"submission_id":        submission.ID,
		"authors":              submission.Authors,
	}); err != nil {
		return entities.Submission{}, err
	}
	logger.Info("submission accepted",
		"event", "revolution_submission_accepted",
		"module", "collective-governance/revolution-engine",
		"layer", "application",
		"revolution_id", revolution.ID,
		"submission_period_id", period.ID,
		"submission_id", submission.ID,
	)
	return submission, nil
}
