package revolutionengine

import (
	"context"
	"errors"
	"testing"
	"time"

	domainerrors "revolution/contexts/collective-governance/revolution-engine/domain/errors"
	httptransport "revolution/contexts/collective-governance/revolution-engine/transport/http"
)

func createTestRevolution(t *testing.T, module Module) httptransport.RevolutionResponse {
	t.Helper()
	created, err := module.Handler.CreateRevolutionHandler(context.Background(), httptransport.CreateRevolutionRequest{
		Mission: "fund cultural artifacts",
		SubmissionConfig: httptransport.SubmissionConfigDTO{
			DurationDays:            1,
			MandateDescription:      "music only",
			OneSubmissionPerAddress: true,
		},
		VotingConfig:       httptransport.VotingConfigDTO{DurationDays: 1, NumWinners: 1},
		AuctionConfig:      httptransport.AuctionConfigDTO{DurationDays: 1, AuctionsPerDay: 24},
		MinCreatorRate:     0.1,
		DefaultEntropyRate: 0.2,
		EnergyWeight:       0.75,
	})
	if err != nil {
		t.Fatalf("create revolution failed: %v", err)
	}
	return created
}

func TestFullCycleThroughHandlers(t *testing.T) {
	module := NewInMemoryModule(nil)
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	module.Store.SetNow(base)

	created := createTestRevolution(t, module)
	if created.Initiated {
		t.Fatalf("new revolution must not be initiated")
	}

	if _, err := module.Handler.AdvanceHandler(context.Background(), created.RevolutionID); !errors.Is(err, domainerrors.ErrNotInitiated) {
		t.Fatalf("expected ErrNotInitiated, got %v", err)
	}

	initiated, err := module.Handler.InitiateHandler(context.Background(), created.RevolutionID)
	if err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	if !initiated.Initiated || initiated.SubmissionPeriods != 1 {
		t.Fatalf("expected one open submission period, got %+v", initiated)
	}

	if _, err := module.Handler.AddSubmissionHandler(context.Background(), created.RevolutionID, "alice", httptransport.AddSubmissionRequest{
		CulturalArtifact: "ipfs://alice-track",
		Title:            "first",
	}); err != nil {
		t.Fatalf("add submission failed: %v", err)
	}
	if _, err := module.Handler.AddSubmissionHandler(context.Background(), created.RevolutionID, "bob", httptransport.AddSubmissionRequest{
		CulturalArtifact: "ipfs://bob-track",
		Title:            "second",
	}); err != nil {
		t.Fatalf("add submission failed: %v", err)
	}
	if _, err := module.Handler.AddSubmissionHandler(context.Background(), created.RevolutionID, "alice", httptransport.AddSubmissionRequest{
		CulturalArtifact: "ipfs://alice-again",
	}); !errors.Is(err, domainerrors.ErrDuplicateSubmission) {
		t.Fatalf("expected ErrDuplicateSubmission, got %v", err)
	}

	board, err := module.Handler.SubmissionBoardHandler(context.Background(), created.RevolutionID)
	if err != nil {
		t.Fatalf("submission board failed: %v", err)
	}
	if len(board.Submissions) != 2 || board.Mandate != "music only" {
		t.Fatalf("unexpected board %+v", board)
	}

	// Close the submission window and graduate it onto a ballot.
	module.Store.AdvanceNow(24 * time.Hour)
	advanced, err := module.Handler.AdvanceHandler(context.Background(), created.RevolutionID)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if !advanced.Graduated || advanced.VotingPeriodID == nil || advanced.SubmissionPeriodID == nil {
		t.Fatalf("expected submission graduation, got %+v", advanced)
	}

	module.Store.SetVotingPower("alice", 3)
	vote, err := module.Handler.CastVoteHandler(context.Background(), created.RevolutionID, "alice", httptransport.CastVoteRequest{ChoiceID: 1})
	if err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}
	if vote.Weight != 3 || vote.Votes != 3 {
		t.Fatalf("expected strategy weight applied, got %+v", vote)
	}
	if _, err := module.Handler.CastVoteHandler(context.Background(), created.RevolutionID, "bob", httptransport.CastVoteRequest{ChoiceID: 0}); err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}

	standings, err := module.Handler.StandingsHandler(context.Background(), created.RevolutionID)
	if err != nil {
		t.Fatalf("standings failed: %v", err)
	}
	if standings.Items[0].ChoiceID != 1 || !standings.Items[0].Winner || standings.Items[1].Winner {
		t.Fatalf("unexpected standings %+v", standings)
	}

	// Close the ballot and graduate the winner into an auction period.
	module.Store.AdvanceNow(24 * time.Hour)
	advanced, err = module.Handler.AdvanceHandler(context.Background(), created.RevolutionID)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if advanced.AuctionPeriodID == nil {
		t.Fatalf("expected vote graduation, got %+v", advanced)
	}

	auctionBoard, err := module.Handler.AuctionBoardHandler(context.Background(), created.RevolutionID, *advanced.AuctionPeriodID)
	if err != nil {
		t.Fatalf("auction board failed: %v", err)
	}
	if len(auctionBoard.Auctions) != 1 || auctionBoard.Auctions[0].SubmissionID != 1 {
		t.Fatalf("unexpected auction board %+v", auctionBoard)
	}

	override := 0.25
	started, err := module.Handler.StartAuctionHandler(context.Background(), created.RevolutionID, *advanced.AuctionPeriodID, 0, httptransport.StartAuctionRequest{EntropyRate: &override})
	if err != nil {
		t.Fatalf("start auction failed: %v", err)
	}
	if started.EntropyRate != 0.25 || started.StartDate == nil {
		t.Fatalf("unexpected started auction %+v", started)
	}

	if _, err := module.Handler.PlaceBidHandler(context.Background(), created.RevolutionID, *advanced.AuctionPeriodID, 0, httptransport.PlaceBidRequest{
		Participants: []httptransport.ParticipantDTO{{Address: "carol", Amount: 4}},
		CreatorRate:  0.01,
	}); !errors.Is(err, domainerrors.ErrCreatorRateTooLow) {
		t.Fatalf("expected ErrCreatorRateTooLow, got %v", err)
	}

	bid, err := module.Handler.PlaceBidHandler(context.Background(), created.RevolutionID, *advanced.AuctionPeriodID, 0, httptransport.PlaceBidRequest{
		Participants: []httptransport.ParticipantDTO{{Address: "carol", Amount: 4}, {Address: "dave", Amount: 6}},
		CreatorRate:  0.5,
	})
	if err != nil {
		t.Fatalf("place bid failed: %v", err)
	}
	if bid.Total != 10 {
		t.Fatalf("expected pooled total 10, got %f", bid.Total)
	}

	if _, err := module.Handler.SettleAuctionHandler(context.Background(), created.RevolutionID, *advanced.AuctionPeriodID, 0); !errors.Is(err, domainerrors.ErrAuctionNotOver) {
		t.Fatalf("expected ErrAuctionNotOver, got %v", err)
	}

	// 24 auctions per day means a one-hour bid window.
	module.Store.AdvanceNow(2 * time.Hour)
	settlement, err := module.Handler.SettleAuctionHandler(context.Background(), created.RevolutionID, *advanced.AuctionPeriodID, 0)
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if settlement.TreasuryCash != 7.5 || settlement.CreatorCash != 2.5 {
		t.Fatalf("unexpected split %+v", settlement)
	}
	if len(settlement.Authors) != 1 || settlement.Authors[0] != "bob" {
		t.Fatalf("expected the winning submission's author, got %v", settlement.Authors)
	}

	orders := module.Store.SettlementOrders()
	if len(orders) != 1 || orders[0].AuctionID != 0 {
		t.Fatalf("expected one recorded settlement order, got %d", len(orders))
	}

	if _, err := module.Handler.SettleAuctionHandler(context.Background(), created.RevolutionID, *advanced.AuctionPeriodID, 0); !errors.Is(err, domainerrors.ErrAlreadySettled) {
		t.Fatalf("expected ErrAlreadySettled, got %v", err)
	}
}

func TestGovernancePatchOrderAndRejection(t *testing.T) {
	module := NewInMemoryModule(nil)
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	module.Store.SetNow(base)

	created := createTestRevolution(t, module)

	mission := "fund films"
	badRate := 1.7
	err := module.Handler.UpdateGovernanceHandler(context.Background(), created.RevolutionID, httptransport.GovernanceUpdateRequest{
		Mission:      &mission,
		EnergyWeight: &badRate,
	})
	if !errors.Is(err, domainerrors.ErrRateOutOfRange) {
		t.Fatalf("expected ErrRateOutOfRange, got %v", err)
	}

	// One rejected field discards the whole patch.
	current, err := module.Handler.GetRevolutionHandler(context.Background(), created.RevolutionID)
	if err != nil {
		t.Fatalf("get revolution failed: %v", err)
	}
	if current.Mission != "fund cultural artifacts" {
		t.Fatalf("rejected patch must not apply any field, got mission %q", current.Mission)
	}
	if current.EnergyWeight != 0.75 {
		t.Fatalf("rejected rate must stay unchanged, got %f", current.EnergyWeight)
	}
	if current.Version != 1 {
		t.Fatalf("rejected patch must not commit, got version %d", current.Version)
	}

	goodRate := 0.5
	if err := module.Handler.UpdateGovernanceHandler(context.Background(), created.RevolutionID, httptransport.GovernanceUpdateRequest{
		Mission:      &mission,
		EnergyWeight: &goodRate,
	}); err != nil {
		t.Fatalf("governance update failed: %v", err)
	}
	current, err = module.Handler.GetRevolutionHandler(context.Background(), created.RevolutionID)
	if err != nil {
		t.Fatalf("get revolution failed: %v", err)
	}
	if current.Mission != "fund films" || current.EnergyWeight != 0.5 {
		t.Fatalf("expected the full patch applied, got %+v", current)
	}
	if current.Version != 2 {
		t.Fatalf("expected one commit for the whole patch, got version %d", current.Version)
	}

	// An empty patch is a no-op and commits nothing.
	if err := module.Handler.UpdateGovernanceHandler(context.Background(), created.RevolutionID, httptransport.GovernanceUpdateRequest{}); err != nil {
		t.Fatalf("empty patch failed: %v", err)
	}
	current, err = module.Handler.GetRevolutionHandler(context.Background(), created.RevolutionID)
	if err != nil {
		t.Fatalf("get revolution failed: %v", err)
	}
	if current.Version != 2 {
		t.Fatalf("empty patch must not bump the version, got %d", current.Version)
	}
}

func TestListRevolutionsOrdersByCreation(t *testing.T) {
	module := NewInMemoryModule(nil)
	module.Store.SetNow(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))

	first := createTestRevolution(t, module)
	module.Store.AdvanceNow(time.Minute)
	second := createTestRevolution(t, module)

	listed, err := module.Handler.ListRevolutionsHandler(context.Background())
	if err != nil {
		t.Fatalf("list revolutions failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 revolutions, got %d", len(listed))
	}
	if listed[0].RevolutionID != first.RevolutionID || listed[1].RevolutionID != second.RevolutionID {
		t.Fatalf("expected creation order, got %s then %s", listed[0].RevolutionID, listed[1].RevolutionID)
	}
}

func TestUnknownRevolutionLookups(t *testing.T) {
	module := NewInMemoryModule(nil)
	module.Store.SetNow(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))

	if _, err := module.Handler.GetRevolutionHandler(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrRevolutionNotFound) {
		t.Fatalf("expected ErrRevolutionNotFound, got %v", err)
	}
	if _, err := module.Handler.CastVoteHandler(context.Background(), "missing", "alice", httptransport.CastVoteRequest{ChoiceID: 0}); !errors.Is(err, domainerrors.ErrRevolutionNotFound) {
		t.Fatalf("expected ErrRevolutionNotFound, got %v", err)
	}

	created := createTestRevolution(t, module)
	if _, err := module.Handler.AuctionBoardHandler(context.Background(), created.RevolutionID, 9); !errors.Is(err, domainerrors.ErrUnknownPeriod) {
		t.Fatalf("expected ErrUnknownPeriod, got %v", err)
	}
}
