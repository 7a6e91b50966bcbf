package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmissionConfigDTO struct {
	DurationDays            int    `json:"duration_days"`
	MandateDescription      string `json:"mandate_description,omitempty"`
	OneSubmissionPerAddress bool   `json:"one_submission_per_address"`
	StrategyRef             string `json:"strategy_ref,omitempty"`
}

type VotingConfigDTO struct {
	DurationDays int    `json:"duration_days"`
	NumWinners   int    `json:"num_winners"`
	StrategyRef  string `json:"strategy_ref,omitempty"`
}

type AuctionConfigDTO struct {
	DurationDays   int `json:"duration_days"`
	AuctionsPerDay int `json:"auctions_per_day"`
}

type CreateRevolutionRequest struct {
	Mission            string              `json:"mission"`
	SubmissionConfig   SubmissionConfigDTO `json:"submission_config"`
	VotingConfig       VotingConfigDTO     `json:"voting_config"`
	AuctionConfig      AuctionConfigDTO    `json:"auction_config"`
	MinCreatorRate     float64             `json:"min_creator_rate"`
	DefaultEntropyRate float64             `json:"default_entropy_rate"`
	EnergyWeight       float64             `json:"energy_weight"`
}

type RevolutionResponse struct {
	RevolutionID       string  `json:"revolution_id"`
	Mission            string  `json:"mission"`
	Initiated          bool    `json:"initiated"`
	MinCreatorRate     float64 `json:"min_creator_rate"`
	DefaultEntropyRate float64 `json:"default_entropy_rate"`
	EnergyWeight       float64 `json:"energy_weight"`
	SubmissionPeriods  int     `json:"submission_periods"`
	VotingPeriods      int     `json:"voting_periods"`
	AuctionPeriods     int     `json:"auction_periods"`
	Version            int64   `json:"version"`
}

type AdvanceResponse struct {
	RevolutionID       string `json:"revolution_id"`
	Graduated          bool   `json:"graduated"`
	AuctionPeriodID    *int   `json:"auction_period_id,omitempty"`
	VotingPeriodID     *int   `json:"voting_period_id,omitempty"`
	SubmissionPeriodID *int   `json:"submission_period_id,omitempty"`
}

// GovernanceUpdateRequest is a sparse patch: only present fields are applied.
type GovernanceUpdateRequest struct {
	Mission            *string              `json:"mission,omitempty"`
	SubmissionConfig   *SubmissionConfigDTO `json:"submission_config,omitempty"`
	VotingConfig       *VotingConfigDTO     `json:"voting_config,omitempty"`
	AuctionConfig      *AuctionConfigDTO    `json:"auction_config,omitempty"`
	MinCreatorRate     *float64             `json:"min_creator_rate,omitempty"`
	DefaultEntropyRate *float64             `json:"default_entropy_rate,omitempty"`
	EnergyWeight       *float64             `json:"energy_weight,omitempty"`
}

type AddSubmissionRequest struct {
	Authors          []string `json:"authors,omitempty"`
	CulturalArtifact string   `json:"cultural_artifact"`
	Title            string   `json:"title,omitempty"`
	Description      string   `json:"description,omitempty"`
}

type SubmissionResponse struct {
	SubmissionID     int      `json:"submission_id"`
	Authors          []string `json:"authors"`
	CulturalArtifact string   `json:"cultural_artifact"`
	Title            string   `json:"title,omitempty"`
	Description      string   `json:"description,omitempty"`
}

type SubmissionBoardResponse struct {
	PeriodID    int                  `json:"period_id"`
	EndDate     time.Time            `json:"end_date"`
	Mandate     string               `json:"mandate,omitempty"`
	Submissions []SubmissionResponse `json:"submissions"`
}

type CastVoteRequest struct {
	ChoiceID int `json:"choice_id"`
}

type CastVoteResponse struct {
	ChoiceID int     `json:"choice_id"`
	Weight   float64 `json:"weight"`
	Votes    float64 `json:"votes"`
}

type StandingItem struct {
	ChoiceID int     `json:"choice_id"`
	Title    string  `json:"title,omitempty"`
	Votes    float64 `json:"votes"`
	Rank     int     `json:"rank"`
	Winner   bool    `json:"winner"`
}

type StandingsResponse struct {
	PeriodID   int            `json:"period_id"`
	Closed     bool           `json:"closed"`
	Graduated  bool           `json:"graduated"`
	NumWinners int            `json:"num_winners"`
	Items      []StandingItem `json:"items"`
}

type StartAuctionRequest struct {
	EntropyRate *float64 `json:"entropy_rate,omitempty"`
}

type ParticipantDTO struct {
	Address string  `json:"address"`
	Amount  float64 `json:"amount"`
}

type PlaceBidRequest struct {
	Participants []ParticipantDTO `json:"participants"`
	CreatorRate  float64          `json:"creator_rate"`
}

type BidResponse struct {
	AuctionID    int              `json:"auction_id"`
	Participants []ParticipantDTO `json:"participants"`
	CreatorRate  float64          `json:"creator_rate"`
	Total        float64          `json:"total"`
}

type AuctionResponse struct {
	AuctionID      int        `json:"auction_id"`
	SubmissionID   int        `json:"submission_id"`
	Title          string     `json:"title,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	EntropyRate    float64    `json:"entropy_rate"`
	MinCreatorRate float64    `json:"min_creator_rate"`
	Bids           int        `json:"bids"`
	Settled        bool       `json:"settled"`
}

type AuctionBoardResponse struct {
	PeriodID int               `json:"period_id"`
	EndDate  time.Time         `json:"end_date"`
	Auctions []AuctionResponse `json:"auctions"`
}

type SettlementResponse struct {
	AuctionPeriodID int         `json:"auction_period_id"`
	AuctionID       int         `json:"auction_id"`
	Winner          BidResponse `json:"winner"`
	Authors         []string    `json:"authors"`
	EntropyRate     float64     `json:"entropy_rate"`
	CreatorRate     float64     `json:"creator_rate"`
	TreasuryCash    float64     `json:"treasury_cash"`
	CreatorCash     float64     `json:"creator_cash"`
	SettledAt       time.Time   `json:"settled_at"`
}
