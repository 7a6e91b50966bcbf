package entities

import (
	"time"

	domainerrors "revolution/contexts/collective-governance/revolution-engine/domain/errors"
)

type Participant struct {
	Address string
	Amount  float64
}

// Bid is a pooled capital commitment against one auction. Participant order
// is insertion order and feeds the settlement tie-break.
type Bid struct {
	AuctionID    int
	Participants []Participant
	CreatorRate  float64
}

func (b Bid) Total() float64 {
	total := 0.0
	for _, p := range b.Participants {
		total += p.Amount
	}
	return total
}

// Auction sells one curated submission. Created pending start; an explicit
// Start opens the bid window, Settle is terminal.
type Auction struct {
	ID             int
	Item           Submission
	Bids           []Bid
	Duration       time.Duration
	StartDate      *time.Time
	EndDate        *time.Time
	EntropyRate    float64
	MinCreatorRate float64
	EnergyWeight   float64
	Settled        bool
}

func (a Auction) Started() bool {
	return a.StartDate != nil
}

// Start opens the auction. The entropy rate resolves to the override when
// given, else the default queued at creation, else zero.
func (a *Auction) Start(now time.Time, entropyOverride *float64) error {
	if a.Started() || len(a.Bids) > 0 {
		return domainerrors.ErrAlreadyStarted
	}
	if entropyOverride != nil {
		if err := validateRate(*entropyOverride); err != nil {
			return err
		}
		a.EntropyRate = *entropyOverride
	}
	start := now
	end := now.Add(a.Duration)
	a.StartDate = &start
	a.EndDate = &end
	return nil
}

func (a *Auction) AdmitBid(bid Bid, now time.Time) error {
	if bid.CreatorRate < a.MinCreatorRate {
		return domainerrors.ErrCreatorRateTooLow
	}
	if bid.CreatorRate > 1 {
		return domainerrors.ErrCreatorRateTooHigh
	}
	if !a.Started() || now.Before(*a.StartDate) || now.After(*a.EndDate) {
		return domainerrors.ErrAuctionNotOpen
	}
	if len(bid.Participants) == 0 {
		return domainerrors.ErrInvalidInput
	}
	for _, p := range bid.Participants {
		if p.Amount < 0 {
			return domainerrors.ErrInvalidInput
		}
	}
	bid.AuctionID = a.ID
	bid.Participants = append([]Participant(nil), bid.Participants...)
	a.Bids = append(a.Bids, bid)
	return nil
}

// Value scores a bid with the weighted objective: the treasury's retained
// capital weighted by the energy weight, plus the creator's committed share
// weighted by the complement.
func (a Auction) Value(bid Bid) float64 {
	capitalWeight := a.EnergyWeight
	creatorWeight := 1 - a.EnergyWeight

	total := bid.Total()
	daoEnergy := total * (1 - a.EntropyRate)
	creatorEnergy := total * bid.CreatorRate

	return capitalWeight*daoEnergy + creatorWeight*creatorEnergy
}

// Settlement carries everything the custody collaborator needs to mint,
// issue shares, and move cash. The engine itself transfers nothing.
type Settlement struct {
	Winner       Bid
	Authors      []string
	EntropyRate  float64
	CreatorRate  float64
	TreasuryCash float64
	CreatorCash  float64
}

// Settle picks the winning bid and marks the auction settled. Winner is the
// bid maximizing Value; ties go to the bid with more participants (an
// accepted coordination-friendly tradeoff, not a defect), residual ties to
// the earliest-admitted bid.
func (a *Auction) Settle(now time.Time) (Settlement, error) {
	if a.Settled {
		return Settlement{}, domainerrors.ErrAlreadySettled
	}
	if len(a.Bids) == 0 {
		return Settlement{}, domainerrors.ErrNoBids
	}
	if !a.Started() || now.Before(*a.EndDate) {
		return Settlement{}, domainerrors.ErrAuctionNotOver
	}

	winner := a.Bids[0]
	best := a.Value(winner)
	for _, bid := range a.Bids[1:] {
		value := a.Value(bid)
		if value > best ||
			(value == best && len(bid.Participants) > len(winner.Participants)) {
			winner = bid
			best = value
		}
	}

	total := winner.Total()
	a.Settled = true
	return Settlement{
		Winner:       winner,
		Authors:      append([]string(nil), a.Item.Authors...),
		EntropyRate:  a.EntropyRate,
		CreatorRate:  winner.CreatorRate,
		TreasuryCash: total * (1 - a.EntropyRate),
		CreatorCash:  total * a.EntropyRate,
	}, nil
}
