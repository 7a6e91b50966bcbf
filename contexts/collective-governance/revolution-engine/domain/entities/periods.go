package entities

import (
	"sort"
	"time"

	domainerrors "revolution/contexts/collective-governance/revolution-engine/domain/errors"
)

// SubmissionPeriod accepts submissions while open. Submissions are append-only
// and keep dense zero-based ids in insertion order.
type SubmissionPeriod struct {
	ID          int
	EndDate     time.Time
	Config      SubmissionConfig
	Submissions []Submission
}

func (p SubmissionPeriod) Open(now time.Time) bool {
	return now.Before(p.EndDate)
}

func (p *SubmissionPeriod) AddSubmission(
	now time.Time,
	authors []string,
	culturalArtifact string,
	title string,
	description string,
) (Submission, error) {
	if !p.Open(now) {
		return Submission{}, domainerrors.ErrPeriodClosed
	}
	if err := validateSubmissionInput(authors, culturalArtifact); err != nil {
		return Submission{}, err
	}
	if p.Config.OneSubmissionPerAddress {
		for _, existing := range p.Submissions {
			for _, author := range authors {
				if existing.HasAuthor(author) {
					return Submission{}, domainerrors.ErrDuplicateSubmission
				}
			}
		}
	}
	submission := Submission{
		ID:               len(p.Submissions),
		Authors:          append([]string(nil), authors...),
		CulturalArtifact: culturalArtifact,
		Title:            title,
		Description:      description,
	}
	p.Submissions = append(p.Submissions, submission)
	return submission, nil
}

// VotingChoice is a submission promoted onto a ballot. Votes is the only
// field that mutates after promotion.
type VotingChoice struct {
	Submission
	Votes float64
}

// VotingPeriod holds a fixed ballot. Graduated flips once the ballot has been
// packaged into auctions so a later advance cannot graduate it twice.
type VotingPeriod struct {
	ID        int
	EndDate   time.Time
	Config    VotingConfig
	Choices   []VotingChoice
	Graduated bool
}

func (p VotingPeriod) Open(now time.Time) bool {
	return now.Before(p.EndDate)
}

func (p *VotingPeriod) CastVote(choiceID int, weight float64, now time.Time) error {
	if !p.Open(now) {
		return domainerrors.ErrPeriodClosed
	}
	if weight < 0 {
		return domainerrors.ErrInvalidInput
	}
	for i := range p.Choices {
		if p.Choices[i].ID == choiceID {
			p.Choices[i].Votes += weight
			return nil
		}
	}
	return domainerrors.ErrUnknownChoice
}

// RankChoices returns a new slice ordered by votes descending, ties broken by
// ascending choice id. The input is never mutated.
func RankChoices(choices []VotingChoice) []VotingChoice {
	ranked := append([]VotingChoice(nil), choices...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Votes == ranked[j].Votes {
			return ranked[i].ID < ranked[j].ID
		}
		return ranked[i].Votes > ranked[j].Votes
	})
	return ranked
}

// TopN returns the n highest-ranked choices, or all of them when fewer exist.
func TopN(choices []VotingChoice, n int) []VotingChoice {
	ranked := RankChoices(choices)
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// AuctionPeriod bundles the auctions created from one graduated ballot.
// The auction list is fixed at creation.
type AuctionPeriod struct {
	ID       int
	EndDate  time.Time
	Auctions []Auction
}

func (p *AuctionPeriod) Auction(id int) (*Auction, error) {
	for i := range p.Auctions {
		if p.Auctions[i].ID == id {
			return &p.Auctions[i], nil
		}
	}
	return nil, domainerrors.ErrUnknownAuction
}
