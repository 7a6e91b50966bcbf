package httpadapter

import (
	"context"
	"log/slog"

	"revolution/contexts/collective-governance/revolution-engine/application/commands"
	"revolution/contexts/collective-governance/revolution-engine/application/queries"
	"revolution/contexts/collective-governance/revolution-engine/domain/entities"
	httptransport "revolution/contexts/collective-governance/revolution-engine/transport/http"
)

// Handler maps transport DTOs onto use cases. It stays free of net/http so
// the platform server owns routing and status codes.
type Handler struct {
	Lifecycle   commands.LifecycleUseCase
	Governance  commands.GovernanceUseCase
	Submissions commands.SubmissionUseCase
	Votes       commands.VoteUseCase
	Auctions    commands.AuctionUseCase
	Boards      queries.BoardUseCase
	Logger      *slog.Logger
}

func (h Handler) CreateRevolutionHandler(ctx context.Context, req httptransport.CreateRevolutionRequest) (httptransport.RevolutionResponse, error) {
	revolution, err := h.Lifecycle.CreateRevolution(ctx, commands.CreateRevolutionCommand{
		Mission:            req.Mission,
		SubmissionConfig:   submissionConfigFromDTO(req.SubmissionConfig),
		VotingConfig:       votingConfigFromDTO(req.VotingConfig),
		AuctionConfig:      auctionConfigFromDTO(req.AuctionConfig),
		MinCreatorRate:     req.MinCreatorRate,
		DefaultEntropyRate: req.DefaultEntropyRate,
		EnergyWeight:       req.EnergyWeight,
	})
	if err != nil {
		return httptransport.RevolutionResponse{}, err
	}
	return revolutionResponse(revolution), nil
}

func (h Handler) InitiateHandler(ctx context.Context, revolutionID string) (httptransport.RevolutionResponse, error) {
	revolution, err := h.Lifecycle.Initiate(ctx, revolutionID)
	if err != nil {
		return httptransport.RevolutionResponse{}, err
	}
	return revolutionResponse(revolution), nil
}

func (h Handler) AdvanceHandler(ctx context.Context, revolutionID string) (httptransport.AdvanceResponse, error) {
	result, err := h.Lifecycle.AdvanceCycle(ctx, revolutionID)
	if err != nil {
		return httptransport.AdvanceResponse{}, err
	}
	return httptransport.AdvanceResponse{
		RevolutionID:       result.Revolution.ID,
		Graduated:          !result.Report.Empty(),
		AuctionPeriodID:    result.Report.AuctionPeriodID,
		VotingPeriodID:     result.Report.VotingPeriodID,
		SubmissionPeriodID: result.Report.SubmissionPeriodID,
	}, nil
}

func (h Handler) GetRevolutionHandler(ctx context.Context, revolutionID string) (httptransport.RevolutionResponse, error) {
	summary, err := h.Boards.Summary(ctx, revolutionID)
	if err != nil {
		return httptransport.RevolutionResponse{}, err
	}
	return revolutionResponse(summary.Revolution), nil
}

func (h Handler) ListRevolutionsHandler(ctx context.Context) ([]httptransport.RevolutionResponse, error) {
	revolutions, err := h.Boards.ListRevolutions(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.RevolutionResponse, 0, len(revolutions))
	for _, revolution := range revolutions {
		items = append(items, revolutionResponse(revolution))
	}
	return items, nil
}

// UpdateGovernanceHandler hands the whole sparse patch to the policy use case
// so a rejected field leaves nothing applied.
func (h Handler) UpdateGovernanceHandler(ctx context.Context, revolutionID string, req httptransport.GovernanceUpdateRequest) error {
	update := commands.GovernanceUpdate{
		Mission:            req.Mission,
		MinCreatorRate:     req.MinCreatorRate,
		DefaultEntropyRate: req.DefaultEntropyRate,
		EnergyWeight:       req.EnergyWeight,
	}
	if req.SubmissionConfig != nil {
		config := submissionConfigFromDTO(*req.SubmissionConfig)
		update.SubmissionConfig = &config
	}
	if req.VotingConfig != nil {
		config := votingConfigFromDTO(*req.VotingConfig)
		update.VotingConfig = &config
	}
	if req.AuctionConfig != nil {
		config := auctionConfigFromDTO(*req.AuctionConfig)
		update.AuctionConfig = &config
	}
	return h.Governance.UpdatePolicy(ctx, revolutionID, update)
}

func (h Handler) AddSubmissionHandler(ctx context.Context, revolutionID string, caller string, req httptransport.AddSubmissionRequest) (httptransport.SubmissionResponse, error) {
	submission, err := h.Submissions.AddSubmission(ctx, commands.AddSubmissionCommand{
		RevolutionID:     revolutionID,
		Caller:           caller,
		Authors:          req.Authors,
		CulturalArtifact: req.CulturalArtifact,
		Title:            req.Title,
		Description:      req.Description,
	})
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return submissionResponse(submission), nil
}

func (h Handler) SubmissionBoardHandler(ctx context.Context, revolutionID string) (httptransport.SubmissionBoardResponse, error) {
	period, err := h.Boards.SubmissionBoard(ctx, revolutionID)
	if err != nil {
		return httptransport.SubmissionBoardResponse{}, err
	}
	resp := httptransport.SubmissionBoardResponse{
		PeriodID:    period.ID,
		EndDate:     period.EndDate,
		Mandate:     period.Config.MandateDescription,
		Submissions: make([]httptransport.SubmissionResponse, 0, len(period.Submissions)),
	}
	for _, submission := range period.Submissions {
		resp.Submissions = append(resp.Submissions, submissionResponse(submission))
	}
	return resp, nil
}

func (h Handler) CastVoteHandler(ctx context.Context, revolutionID string, caller string, req httptransport.CastVoteRequest) (httptransport.CastVoteResponse, error) {
	result, err := h.Votes.CastVote(ctx, commands.CastVoteCommand{
		RevolutionID: revolutionID,
		Caller:       caller,
		ChoiceID:     req.ChoiceID,
	})
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{
		ChoiceID: result.ChoiceID,
		Weight:   result.Weight,
		Votes:    result.Votes,
	}, nil
}

func (h Handler) StandingsHandler(ctx context.Context, revolutionID string) (httptransport.StandingsResponse, error) {
	standings, err := h.Boards.Standings(ctx, revolutionID)
	if err != nil {
		return httptransport.StandingsResponse{}, err
	}
	resp := httptransport.StandingsResponse{
		PeriodID:   standings.PeriodID,
		Closed:     standings.Closed,
		Graduated:  standings.Graduated,
		NumWinners: standings.NumWinners,
		Items:      make([]httptransport.StandingItem, 0, len(standings.Items)),
	}
	for _, item := range standings.Items {
		resp.Items = append(resp.Items, httptransport.StandingItem{
			ChoiceID: item.Choice.ID,
			Title:    item.Choice.Title,
			Votes:    item.Choice.Votes,
			Rank:     item.Rank,
			Winner:   item.Winner,
		})
	}
	return resp, nil
}

func (h Handler) StartAuctionHandler(ctx context.Context, revolutionID string, periodID int, auctionID int, req httptransport.StartAuctionRequest) (httptransport.AuctionResponse, error) {
	auction, err := h.Auctions.StartAuction(ctx, commands.StartAuctionCommand{
		RevolutionID:    revolutionID,
		AuctionPeriodID: periodID,
		AuctionID:       auctionID,
		EntropyOverride: req.EntropyRate,
	})
	if err != nil {
		return httptransport.AuctionResponse{}, err
	}
	return auctionResponse(auction), nil
}

func (h Handler) PlaceBidHandler(ctx context.Context, revolutionID string, periodID int, auctionID int, req httptransport.PlaceBidRequest) (httptransport.BidResponse, error) {
	participants := make([]entities.Participant, 0, len(req.Participants))
	for _, p := range req.Participants {
		participants = append(participants, entities.Participant{Address: p.Address, Amount: p.Amount})
	}
	bid, err := h.Auctions.PlaceBid(ctx, commands.PlaceBidCommand{
		RevolutionID:    revolutionID,
		AuctionPeriodID: periodID,
		AuctionID:       auctionID,
		Participants:    participants,
		CreatorRate:     req.CreatorRate,
	})
	if err != nil {
		return httptransport.BidResponse{}, err
	}
	return bidResponse(bid), nil
}

func (h Handler) SettleAuctionHandler(ctx context.Context, revolutionID string, periodID int, auctionID int) (httptransport.SettlementResponse, error) {
	order, err := h.Auctions.SettleAuction(ctx, commands.SettleAuctionCommand{
		RevolutionID:    revolutionID,
		AuctionPeriodID: periodID,
		AuctionID:       auctionID,
	})
	if err != nil {
		return httptransport.SettlementResponse{}, err
	}
	return httptransport.SettlementResponse{
		AuctionPeriodID: order.AuctionPeriodID,
		AuctionID:       order.AuctionID,
		Winner:          bidResponse(order.Winner),
		Authors:         order.Authors,
		EntropyRate:     order.EntropyRate,
		CreatorRate:     order.CreatorRate,
		TreasuryCash:    order.TreasuryCash,
		CreatorCash:     order.CreatorCash,
		SettledAt:       order.SettledAt,
	}, nil
}

func (h Handler) AuctionBoardHandler(ctx context.Context, revolutionID string, periodID int) (httptransport.AuctionBoardResponse, error) {
	period, err := h.Boards.AuctionBoard(ctx, revolutionID, periodID)
	if err != nil {
		return httptransport.AuctionBoardResponse{}, err
	}
	resp := httptransport.AuctionBoardResponse{
		PeriodID: period.ID,
		EndDate:  period.EndDate,
		Auctions: make([]httptransport.AuctionResponse, 0, len(period.Auctions)),
	}
	for _, auction := range period.Auctions {
		resp.Auctions = append(resp.Auctions, auctionResponse(auction))
	}
	return resp, nil
}

func submissionConfigFromDTO(dto httptransport.SubmissionConfigDTO) entities.SubmissionConfig {
	return entities.SubmissionConfig{
		DurationDays:            dto.DurationDays,
		MandateDescription:      dto.MandateDescription,
		OneSubmissionPerAddress: dto.OneSubmissionPerAddress,
		StrategyRef:             dto.StrategyRef,
	}
}

func votingConfigFromDTO(dto httptransport.VotingConfigDTO) entities.VotingConfig {
	return entities.VotingConfig{
		DurationDays: dto.DurationDays,
		NumWinners:   dto.NumWinners,
		StrategyRef:  dto.StrategyRef,
	}
}

func auctionConfigFromDTO(dto httptransport.AuctionConfigDTO) entities.AuctionConfig {
	return entities.AuctionConfig{
		DurationDays:   dto.DurationDays,
		AuctionsPerDay: dto.AuctionsPerDay,
	}
}

func revolutionResponse(revolution entities.Revolution) httptransport.RevolutionResponse {
	return httptransport.RevolutionResponse{
		RevolutionID:       revolution.ID,
		Mission:            revolution.Mission,
		Initiated:          revolution.Initiated(),
		MinCreatorRate:     revolution.MinCreatorRate,
		DefaultEntropyRate: revolution.DefaultEntropyRate,
		EnergyWeight:       revolution.EnergyWeight,
		SubmissionPeriods:  len(revolution.SubmissionPeriods),
		VotingPeriods:      len(revolution.VotingPeriods),
		AuctionPeriods:     len(revolution.AuctionPeriods),
		Version:            revolution.Version,
	}
}

func submissionResponse(submission entities.Submission) httptransport.SubmissionResponse {
	return httptransport.SubmissionResponse{
		SubmissionID:     submission.ID,
		Authors:          submission.Authors,
		CulturalArtifact: submission.CulturalArtifact,
		Title:            submission.Title,
		Description:      submission.Description,
	}
}

func bidResponse(bid entities.Bid) httptransport.BidResponse {
	participants := make([]httptransport.ParticipantDTO, 0, len(bid.Participants))
	for _, p := range bid.Participants {
		participants = append(participants, httptransport.ParticipantDTO{Address: p.Address, Amount: p.Amount})
	}
	return httptransport.BidResponse{
		AuctionID:    bid.AuctionID,
		Participants: participants,
		CreatorRate:  bid.CreatorRate,
		Total:        bid.Total(),
	}
}

func auctionResponse(auction entities.Auction) httptransport.AuctionResponse {
	return httptransport.AuctionResponse{
		AuctionID:      auction.ID,
		SubmissionID:   auction.Item.ID,
		Title:          auction.Item.Title,
		StartDate:      auction.StartDate,
		EndDate:        auction.EndDate,
		EntropyRate:    auction.EntropyRate,
		MinCreatorRate: auction.MinCreatorRate,
		Bids:           len(auction.Bids),
		Settled:        auction.Settled,
	}
}
