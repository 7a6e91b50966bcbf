package entities

import (
	domainerrors "revolution/contexts/collective-governance/revolution-engine/domain/errors"
)

// Config snapshots are queued on the revolution and copied into a period at
// creation time. Governance mutations replace the queue; in-flight periods
// keep the snapshot they were created with.

type SubmissionConfig struct {
	DurationDays            int
	MandateDescription      string
	OneSubmissionPerAddress bool
	StrategyRef             string
}

func (c SubmissionConfig) Validate() error {
	if c.DurationDays < 1 {
		return domainerrors.ErrInvalidInput
	}
	return nil
}

type VotingConfig struct {
	DurationDays int
	NumWinners   int
	StrategyRef  string
}

func (c VotingConfig) Validate() error {
	if c.DurationDays < 1 || c.NumWinners < 0 {
		return domainerrors.ErrInvalidInput
	}
	return nil
}

type AuctionConfig struct {
	DurationDays   int
	AuctionsPerDay int
}

func (c AuctionConfig) Validate() error {
	if c.DurationDays < 1 || c.AuctionsPerDay < 1 {
		return domainerrors.ErrInvalidInput
	}
	return nil
}

func validateRate(rate float64) error {
	if rate < 0 || rate > 1 {
		return domainerrors.ErrRateOutOfRange
	}
	return nil
}
