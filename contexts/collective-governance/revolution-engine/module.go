package revolutionengine

import (
	"log/slog"

	httpadapter "revolution/contexts/collective-governance/revolution-engine/adapters/http"
	"revolution/contexts/collective-governance/revolution-engine/adapters/memory"
	"revolution/contexts/collective-governance/revolution-engine/application/commands"
	"revolution/contexts/collective-governance/revolution-engine/application/queries"
	"revolution/contexts/collective-governance/revolution-engine/application/workers"
	"revolution/contexts/collective-governance/revolution-engine/ports"
)

type Module struct {
	Handler   httpadapter.Handler
	Scheduler workers.CycleScheduler
	Store     *memory.Store
}

type Dependencies struct {
	Revolutions ports.RevolutionRepository
	Strategy    ports.VotingPowerStrategy
	Gate        ports.SubmissionGate
	Settlement  ports.SettlementGateway
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	lifecycle := commands.LifecycleUseCase{
		Revolutions: deps.Revolutions,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Outbox:      deps.Outbox,
		Logger:      deps.Logger,
	}
	governance := commands.GovernanceUseCase{
		Revolutions: deps.Revolutions,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Outbox:      deps.Outbox,
		Logger:      deps.Logger,
	}
	submissions := commands.SubmissionUseCase{
		Revolutions: deps.Revolutions,
		Gate:        deps.Gate,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Outbox:      deps.Outbox,
		Logger:      deps.Logger,
	}
	votes := commands.VoteUseCase{
		Revolutions: deps.Revolutions,
		Strategy:    deps.Strategy,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Outbox:      deps.Outbox,
		Logger:      deps.Logger,
	}
	auctions := commands.AuctionUseCase{
		Revolutions: deps.Revolutions,
		Settlement:  deps.Settlement,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Outbox:      deps.Outbox,
		Logger:      deps.Logger,
	}
	boards := queries.BoardUseCase{
		Revolutions: deps.Revolutions,
		Clock:       deps.Clock,
	}
	return Module{
		Handler: httpadapter.Handler{
			Lifecycle:   lifecycle,
			Governance:  governance,
			Submissions: submissions,
			Votes:       votes,
			Auctions:    auctions,
			Boards:      boards,
			Logger:      deps.Logger,
		},
		Scheduler: workers.CycleScheduler{
			Revolutions: deps.Revolutions,
			Lifecycle:   lifecycle,
			Logger:      deps.Logger,
		},
	}
}

// NewInMemoryModule wires every port to the memory store. Used by tests and
// by hosts running without postgres.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Revolutions: store,
		Strategy:    store,
		Settlement:  store,
		Outbox:      store,
		Clock:       store,
		IDGen:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
