package entities

import (
	"strings"
	"time"

	domainerrors "revolution/contexts/collective-governance/revolution-engine/domain/errors"
)

const secondsPerDay = 86400

// Revolution is the aggregate for one recurring submission → voting → auction
// cycle. All mutation flows through its methods; callers persist the whole
// aggregate under an optimistic version so each graduation step becomes
// visible atomically.
type Revolution struct {
	ID      string
	Mission string

	SubmissionConfig SubmissionConfig
	VotingConfig     VotingConfig
	AuctionConfig    AuctionConfig

	MinCreatorRate     float64
	DefaultEntropyRate float64
	EnergyWeight       float64

	SubmissionPeriods []SubmissionPeriod
	VotingPeriods     []VotingPeriod
	AuctionPeriods    []AuctionPeriod

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewRevolution(
	id string,
	mission string,
	submissionConfig SubmissionConfig,
	votingConfig VotingConfig,
	auctionConfig AuctionConfig,
	minCreatorRate float64,
	defaultEntropyRate float64,
	energyWeight float64,
	now time.Time,
) (Revolution, error) {
	if strings.TrimSpace(id) == "" {
		return Revolution{}, domainerrors.ErrInvalidInput
	}
	if err := submissionConfig.Validate(); err != nil {
		return Revolution{}, err
	}
	if err := votingConfig.Validate(); err != nil {
		return Revolution{}, err
	}
	if err := auctionConfig.Validate(); err != nil {
		return Revolution{}, err
	}
	for _, rate := range []float64{minCreatorRate, defaultEntropyRate, energyWeight} {
		if err := validateRate(rate); err != nil {
			return Revolution{}, err
		}
	}
	return Revolution{
		ID:                 id,
		Mission:            mission,
		SubmissionConfig:   submissionConfig,
		VotingConfig:       votingConfig,
		AuctionConfig:      auctionConfig,
		MinCreatorRate:     minCreatorRate,
		DefaultEntropyRate: defaultEntropyRate,
		EnergyWeight:       energyWeight,
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

func (r Revolution) Initiated() bool {
	return len(r.SubmissionPeriods) > 0
}

// Initiate opens the first submission period from the queued config.
func (r *Revolution) Initiate(now time.Time) error {
	if r.Initiated() {
		return domainerrors.ErrAlreadyInitiated
	}
	r.openSubmissionPeriod(now)
	return nil
}

// AdvanceReport lists the periods an advance call created. Nil fields mean
// the corresponding graduation was a timing no-op.
type AdvanceReport struct {
	AuctionPeriodID    *int
	VotingPeriodID     *int
	SubmissionPeriodID *int
}

func (r AdvanceReport) Empty() bool {
	return r.AuctionPeriodID == nil && r.VotingPeriodID == nil && r.SubmissionPeriodID == nil
}

// Advance runs graduate-votes before graduate-submissions. The order keeps a
// voting period created in this very call from being graduated into auctions
// by the same call. Both steps are timing-gated no-ops until their period's
// end date passes, which makes Advance idempotent under no elapsed time.
func (r *Revolution) Advance(now time.Time) (AdvanceReport, error) {
	if !r.Initiated() {
		return AdvanceReport{}, domainerrors.ErrNotInitiated
	}
	report := AdvanceReport{}
	report.AuctionPeriodID = r.graduateVotes(now)
	report.VotingPeriodID, report.SubmissionPeriodID = r.graduateSubmissions(now)
	return report, nil
}

// graduateVotes packages the latest closed, ungraduated ballot into a new
// auction period. One auction per winner, configured from the current
// governance rates and the queued auction config.
func (r *Revolution) graduateVotes(now time.Time) *int {
	if len(r.VotingPeriods) == 0 {
		return nil
	}
	votingPeriod := &r.VotingPeriods[len(r.VotingPeriods)-1]
	if votingPeriod.Graduated || votingPeriod.Open(now) {
		return nil
	}

	winners := TopN(votingPeriod.Choices, votingPeriod.Config.NumWinners)
	auctionDuration := time.Duration(secondsPerDay/r.AuctionConfig.AuctionsPerDay) * time.Second

	auctions := make([]Auction, 0, len(winners))
	for i, winner := range winners {
		auctions = append(auctions, Auction{
			ID:             i,
			Item:           winner.Submission,
			Duration:       auctionDuration,
			EntropyRate:    r.DefaultEntropyRate,
			MinCreatorRate: r.MinCreatorRate,
			EnergyWeight:   r.EnergyWeight,
		})
	}

	id := len(r.AuctionPeriods)
	r.AuctionPeriods = append(r.AuctionPeriods, AuctionPeriod{
		ID:       id,
		EndDate:  now.Add(days(r.AuctionConfig.DurationDays)),
		Auctions: auctions,
	})
	votingPeriod.Graduated = true
	return &id
}

// graduateSubmissions promotes a closed submission period onto a fresh ballot
// and opens its successor in the same step, so a closed submission period is
// never observable without a successor.
func (r *Revolution) graduateSubmissions(now time.Time) (*int, *int) {
	if len(r.SubmissionPeriods) == 0 {
		return nil, nil
	}
	submissionPeriod := &r.SubmissionPeriods[len(r.SubmissionPeriods)-1]
	if submissionPeriod.Open(now) {
		return nil, nil
	}

	choices := make([]VotingChoice, 0, len(submissionPeriod.Submissions))
	for _, submission := range submissionPeriod.Submissions {
		choices = append(choices, VotingChoice{Submission: submission, Votes: 0})
	}

	votingID := len(r.VotingPeriods)
	r.VotingPeriods = append(r.VotingPeriods, VotingPeriod{
		ID:      votingID,
		EndDate: now.Add(days(r.VotingConfig.DurationDays)),
		Config:  r.VotingConfig,
		Choices: choices,
	})

	submissionID := r.openSubmissionPeriod(now)
	return &votingID, &submissionID
}

func (r *Revolution) openSubmissionPeriod(now time.Time) int {
	id := len(r.SubmissionPeriods)
	r.SubmissionPeriods = append(r.SubmissionPeriods, SubmissionPeriod{
		ID:      id,
		EndDate: now.Add(days(r.SubmissionConfig.DurationDays)),
		Config:  r.SubmissionConfig,
	})
	return id
}

// CurrentSubmissionPeriod returns the latest submission period, which is the
// only open one by construction.
func (r *Revolution) CurrentSubmissionPeriod() (*SubmissionPeriod, error) {
	if !r.Initiated() {
		return nil, domainerrors.ErrNotInitiated
	}
	return &r.SubmissionPeriods[len(r.SubmissionPeriods)-1], nil
}

// CurrentVotingPeriod returns the latest ballot, graduated or not.
func (r *Revolution) CurrentVotingPeriod() (*VotingPeriod, error) {
	if len(r.VotingPeriods) == 0 {
		return nil, domainerrors.ErrUnknownPeriod
	}
	return &r.VotingPeriods[len(r.VotingPeriods)-1], nil
}

func (r *Revolution) AuctionPeriod(id int) (*AuctionPeriod, error) {
	for i := range r.AuctionPeriods {
		if r.AuctionPeriods[i].ID == id {
			return &r.AuctionPeriods[i], nil
		}
	}
	return nil, domainerrors.ErrUnknownPeriod
}

// Governance mutations. Each validates before touching state and only
// replaces the queued snapshot; in-flight periods keep theirs.

func (r *Revolution) SetMission(mission string) error {
	if strings.TrimSpace(mission) == "" {
		return domainerrors.ErrInvalidInput
	}
	r.Mission = mission
	return nil
}

func (r *Revolution) SetSubmissionConfig(config SubmissionConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	r.SubmissionConfig = config
	return nil
}

func (r *Revolution) SetVotingConfig(config VotingConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	r.VotingConfig = config
	return nil
}

func (r *Revolution) SetAuctionConfig(config AuctionConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	r.AuctionConfig = config
	return nil
}

func (r *Revolution) SetMinCreatorRate(rate float64) error {
	if err := validateRate(rate); err != nil {
		return err
	}
	r.MinCreatorRate = rate
	return nil
}

func (r *Revolution) SetDefaultEntropyRate(rate float64) error {
	if err := validateRate(rate); err != nil {
		return err
	}
	r.DefaultEntropyRate = rate
	return nil
}

func (r *Revolution) SetEnergyWeight(weight float64) error {
	if err := validateRate(weight); err != nil {
		return err
	}
	r.EnergyWeight = weight
	return nil
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
