package queries

import (
	"context"
	"strings"
	"time"

	"revolution/contexts/collective-governance/revolution-engine/domain/entities"
	"revolution/contexts/collective-governance/revolution-engine/ports"
)

// BoardUseCase serves the read side: cycle summaries, the open submission
// board, ranked voting standings, and auction boards.
type BoardUseCase struct {
	Revolutions ports.RevolutionRepository
	Clock       ports.Clock
}

func (uc BoardUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}

type RevolutionSummary struct {
	Revolution       entities.Revolution
	SubmissionPeriod *entities.SubmissionPeriod
	VotingPeriod     *entities.VotingPeriod
}

type Standing struct {
	Choice entities.VotingChoice
	Rank   int
	Winner bool
}

type VotingStandings struct {
	PeriodID   int
	Closed     bool
	Graduated  bool
	NumWinners int
	Items      []Standing
}

func (uc BoardUseCase) Summary(ctx context.Context, revolutionID string) (RevolutionSummary, error) {
	revolution, err := uc.Revolutions.Get(ctx, strings.TrimSpace(revolutionID))
	if err != nil {
		return RevolutionSummary{}, err
	}
	summary := RevolutionSummary{Revolution: revolution}
	if period, err := revolution.CurrentSubmissionPeriod(); err == nil {
		summary.SubmissionPeriod = period
	}
	if period, err := revolution.CurrentVotingPeriod(); err == nil {
		summary.VotingPeriod = period
	}
	return summary, nil
}

func (uc BoardUseCase) SubmissionBoard(ctx context.Context, revolutionID string) (entities.SubmissionPeriod, error) {
	revolution, err := uc.Revolutions.Get(ctx, strings.TrimSpace(revolutionID))
	if err != nil {
		return entities.SubmissionPeriod{}, err
	}
	period, err := revolution.CurrentSubmissionPeriod()
	if err != nil {
		return entities.SubmissionPeriod{}, err
	}
	return *period, nil
}

// Standings ranks the current ballot with the same comparator graduation
// uses, marking the would-be winners under the period's cutoff.
func (uc BoardUseCase) Standings(ctx context.Context, revolutionID string) (VotingStandings, error) {
	revolution, err := uc.Revolutions.Get(ctx, strings.TrimSpace(revolutionID))
	if err != nil {
		return VotingStandings{}, err
	}
	period, err := revolution.CurrentVotingPeriod()
	if err != nil {
		return VotingStandings{}, err
	}

	now := uc.now()
	ranked := entities.RankChoices(period.Choices)
	standings := VotingStandings{
		PeriodID:   period.ID,
		Closed:     !period.Open(now),
		Graduated:  period.Graduated,
		NumWinners: period.Config.NumWinners,
		Items:      make([]Standing, 0, len(ranked)),
	}
	for i, choice := range ranked {
		standings.Items = append(standings.Items, Standing{
			Choice: choice,
			Rank:   i + 1,
			Winner: i < period.Config.NumWinners,
		})
	}
	return standings, nil
}

func (uc BoardUseCase) AuctionBoard(ctx context.Context, revolutionID string, periodID int) (entities.AuctionPeriod, error) {
	revolution, err := uc.Revolutions.Get(ctx, strings.TrimSpace(revolutionID))
	if err != nil {
		return entities.AuctionPeriod{}, err
	}
	period, err := revolution.AuctionPeriod(periodID)
	if err != nil {
		return entities.AuctionPeriod{}, err
	}
	return *period, nil
}

func (uc BoardUseCase) ListRevolutions(ctx context.Context) ([]entities.Revolution, error) {
	return uc.Revolutions.List(ctx)
}
