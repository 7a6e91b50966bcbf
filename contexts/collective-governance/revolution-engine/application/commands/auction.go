package commands

import (
	"context"
	"log/slog"
	"strings"

	application "revolution/contexts/collective-governance/revolution-engine/application"
	"revolution/contexts/collective-governance/revolution-engine/domain/entities"
	"revolution/contexts/collective-governance/revolution-engine/ports"
)

type StartAuctionCommand struct {
	RevolutionID    string
	AuctionPeriodID int
	AuctionID       int
	EntropyOverride *float64
}

type PlaceBidCommand struct {
	RevolutionID    string
	AuctionPeriodID int
	AuctionID       int
	Participants    []entities.Participant
	CreatorRate     float64
}

type SettleAuctionCommand struct {
	RevolutionID    string
	AuctionPeriodID int
	AuctionID       int
}

// AuctionUseCase runs the allocation engine: open the bid window, admit bids
// under the creator-rate constraint, and settle to the winning bid.
type AuctionUseCase struct {
	Revolutions ports.RevolutionRepository
	Settlement  ports.SettlementGateway
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Outbox      ports.OutboxWriter
	Logger      *slog.Logger
}

func (uc AuctionUseCase) StartAuction(ctx context.Context, cmd StartAuctionCommand) (entities.Auction, error) {
	logger := application.ResolveLogger(uc.Logger)
	revolution, period, auction, err := uc.locate(ctx, cmd.RevolutionID, cmd.AuctionPeriodID, cmd.AuctionID)
	if err != nil {
		return entities.Auction{}, err
	}
	now := resolveNow(uc.Clock)
	if err := auction.Start(now, cmd.EntropyOverride); err != nil {
		return entities.Auction{}, err
	}
	revolution.Version++
	revolution.UpdatedAt = now
	if err := uc.Revolutions.Save(ctx, revolution); err != nil {
		return entities.Auction{}, err
	}
	if err := appendEvent(ctx, uc.Outbox, uc.IDGen, "auction.started", revolution.ID, now, map[string]any{
		"auction_period_id": period.ID,
		"auction_id":        auction.ID,
		"entropy_rate":      auction.EntropyRate,
		"end_date":          auction.EndDate,
	}); err != nil {
		return entities.Auction{}, err
	}
	logger.Info("auction started",
		"event", "revolution_auction_started",
		"module", "collective-governance/revolution-engine",
		"layer", "application",
		"revolution_id", revolution.ID,
		"auction_period_id", period.ID,
		"auction_id", auction.ID,
		"entropy_rate", auction.EntropyRate,
	)
	return *auction, nil
}

func (uc AuctionUseCase) PlaceBid(ctx context.Context, cmd PlaceBidCommand) (entities.Bid, error) {
	logger := application.ResolveLogger(uc.Logger)
	revolution, period, auction, err := uc.locate(ctx, cmd.RevolutionID, cmd.AuctionPeriodID, cmd.AuctionID)
	if err != nil {
		return entities.Bid{}, err
	}
	now := resolveNow(uc.Clock)
	bid := entities.Bid{
		Participants: cmd.Participants,
		CreatorRate:  cmd.CreatorRate,
	}
	if err := auction.AdmitBid(bid, now); err != nil {
		return entities.Bid{}, err
	}
	revolution.Version++
	revolution.UpdatedAt = now
	if err := uc.Revolutions.Save(ctx, revolution); err != nil {
		return entities.Bid{}, err
	}
	admitted := auction.Bids[len(auction.Bids)-1]
	if err := appendEvent(ctx, uc.Outbox, uc.IDGen, "bid.placed", revolution.ID, now, map[string]any{
		"auction_period_id": period.ID,
		"auction_id":        auction.ID,
		"bid_total":         admitted.Total(),
		"creator_rate":      admitted.CreatorRate,
		"participants":      len(admitted.Participants),
	}); err != nil {
		return entities.Bid{}, err
	}
	logger.Info("bid admitted",
		"event", "revolution_bid_admitted",
		"module", "collective-governance/revolution-engine",
		"layer", "application",
		"revolution_id", revolution.ID,
		"auction_period_id", period.ID,
		"auction_id", auction.ID,
		"bid_total", admitted.Total(),
	)
	return admitted, nil
}

// SettleAuction commits the terminal settled state first, then hands the
// split to the custody collaborator. Cross-ledger atomicity is out of scope;
// a gateway failure after commit is surfaced to the caller.
func (uc AuctionUseCase) SettleAuction(ctx context.Context, cmd SettleAuctionCommand) (ports.SettlementOrder, error) {
	logger := application.ResolveLogger(uc.Logger)
	revolution, period, auction, err := uc.locate(ctx, cmd.RevolutionID, cmd.AuctionPeriodID, cmd.AuctionID)
	if err != nil {
		return ports.SettlementOrder{}, err
	}
	now := resolveNow(uc.Clock)
	settlement, err := auction.Settle(now)
	if err != nil {
		return ports.SettlementOrder{}, err
	}
	revolution.Version++
	revolution.UpdatedAt = now
	if err := uc.Revolutions.Save(ctx, revolution); err != nil {
		return ports.SettlementOrder{}, err
	}

	order := ports.SettlementOrder{
		RevolutionID:    revolution.ID,
		AuctionPeriodID: period.ID,
		AuctionID:       auction.ID,
		Winner:          settlement.Winner,
		Authors:         settlement.Authors,
		EntropyRate:     settlement.EntropyRate,
		CreatorRate:     settlement.CreatorRate,
		TreasuryCash:    settlement.TreasuryCash,
		CreatorCash:     settlement.CreatorCash,
		SettledAt:       now,
	}
	if uc.Settlement != nil {
		if err := uc.Settlement.ExecuteSettlement(ctx, order); err != nil {
			logger.Error("settlement gateway failed after commit",
				"event", "revolution_settlement_gateway_failed",
				"module", "collective-governance/revolution-engine",
				"layer", "application",
				"revolution_id", revolution.ID,
				"auction_period_id", period.ID,
				"auction_id", auction.ID,
				"error", err.Error(),
			)
			return ports.SettlementOrder{}, err
		}
	}
	if err := appendEvent(ctx, uc.Outbox, uc.IDGen, "auction.settled", revolution.ID, now, map[string]any{
		"auction_period_id": period.ID,
		"auction_id":        auction.ID,
		"winning_total":     settlement.Winner.Total(),
		"treasury_cash":     settlement.TreasuryCash,
		"creator_cash":      settlement.CreatorCash,
	}); err != nil {
		return ports.SettlementOrder{}, err
	}
	logger.Info("auction settled",
		"event", "revolution_auction_settled",
		"module", "collective-governance/revolution-engine",
		"layer", "application",
		"revolution_id", revolution.ID,
		"auction_period_id", period.ID,
		"auction_id", auction.ID,
		"treasury_cash", settlement.TreasuryCash,
		"creator_cash", settlement.CreatorCash,
	)
	return order, nil
}

func (uc AuctionUseCase) locate(
	ctx context.Context,
	revolutionID string,
	periodID int,
	auctionID int,
) (entities.Revolution, *entities.AuctionPeriod, *entities.Auction, error) {
	revolution, err := uc.Revolutions.Get(ctx, strings.TrimSpace(revolutionID))
	if err != nil {
		return entities.Revolution{}, nil, nil, err
	}
	period, err := revolution.AuctionPeriod(periodID)
	if err != nil {
		return entities.Revolution{}, nil, nil, err
	}
	auction, err := period.Auction(auctionID)
	if err != nil {
		return entities.Revolution{}, nil, nil, err
	}
	return revolution, period, auction, nil
}
