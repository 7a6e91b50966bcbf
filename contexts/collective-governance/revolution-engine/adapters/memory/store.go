package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"revolution/contexts/collective-governance/revolution-engine/domain/entities"
	domainerrors "revolution/contexts/collective-governance/revolution-engine/domain/errors"
	"revolution/contexts/collective-governance/revolution-engine/ports"
	"revolution/internal/shared/events"
	"revolution/internal/shared/outbox"

	"github.com/google/uuid"
)

// Store is the in-memory adapter behind every port: repository, clock, id
// generator, outbox, settlement ledger, and voting-power strategy. It backs
// NewInMemoryModule and the test suites.
type Store struct {
	mu sync.RWMutex

	revolutions map[string]entities.Revolution
	outbox      map[string]outbox.Message
	settlements []ports.SettlementOrder
	power       map[string]float64

	now *time.Time
}

func NewStore() *Store {
	return &Store{
		revolutions: make(map[string]entities.Revolution),
		outbox:      make(map[string]outbox.Message),
		power:       make(map[string]float64),
	}
}

// SetNow pins the clock for deterministic period transitions in tests.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pinned := now.UTC()
	s.now = &pinned
}

// AdvanceNow shifts a pinned clock forward.
func (s *Store) AdvanceNow(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.now != nil {
		shifted := s.now.Add(d)
		s.now = &shifted
	}
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.now != nil {
		return *s.now
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// Save commits an aggregate under optimistic versioning: version 1 inserts,
// anything else must be exactly one ahead of the stored copy.
func (s *Store) Save(_ context.Context, revolution entities.Revolution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.revolutions[revolution.ID]
	if exists {
		if revolution.Version != stored.Version+1 {
			return domainerrors.ErrConflict
		}
	} else if revolution.Version != 1 {
		return domainerrors.ErrConflict
	}

	clone, err := cloneRevolution(revolution)
	if err != nil {
		return err
	}
	s.revolutions[revolution.ID] = clone
	return nil
}

func (s *Store) Get(_ context.Context, revolutionID string) (entities.Revolution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.revolutions[strings.TrimSpace(revolutionID)]
	if !ok {
		return entities.Revolution{}, domainerrors.ErrRevolutionNotFound
	}
	return cloneRevolution(stored)
}

func (s *Store) List(_ context.Context) ([]entities.Revolution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Revolution, 0, len(s.revolutions))
	for _, stored := range s.revolutions {
		clone, err := cloneRevolution(stored)
		if err != nil {
			return nil, err
		}
		items = append(items, clone)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) AppendOutbox(_ context.Context, event events.Envelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbox[event.EventID] = outbox.Message{
		ID:        event.EventID,
		EventType: event.EventType,
		Payload:   payload,
		Status:    outbox.StatusPending,
		CreatedAt: event.OccurredAtUTC,
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]outbox.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := make([]outbox.Message, 0, limit)
	for _, row := range s.outbox {
		if row.Status == outbox.StatusPending {
			pending = append(pending, row)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].CreatedAt.Equal(pending[j].CreatedAt) {
			return pending[i].ID < pending[j].ID
		}
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return domainerrors.ErrInvalidInput
	}
	row.Status = outbox.StatusPublished
	s.outbox[row.ID] = row
	return nil
}

// ExecuteSettlement records the order on an in-memory ledger instead of
// moving value; custody integration replaces this adapter in production.
func (s *Store) ExecuteSettlement(_ context.Context, order ports.SettlementOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settlements = append(s.settlements, order)
	return nil
}

func (s *Store) SettlementOrders() []ports.SettlementOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.SettlementOrder(nil), s.settlements...)
}

func (s *Store) SetVotingPower(address string, power float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.power[strings.TrimSpace(address)] = power
}

// ResolvePower returns the seeded weight for an address, defaulting to 1.
func (s *Store) ResolvePower(_ context.Context, address string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if power, ok := s.power[strings.TrimSpace(address)]; ok {
		return power, nil
	}
	return 1, nil
}

// cloneRevolution deep-copies through JSON so callers never share slice
// backing arrays with the stored aggregate.
func cloneRevolution(revolution entities.Revolution) (entities.Revolution, error) {
	raw, err := json.Marshal(revolution)
	if err != nil {
		return entities.Revolution{}, err
	}
	var clone entities.Revolution
	if err := json.Unmarshal(raw, &clone); err != nil {
		return entities.Revolution{}, err
	}
	return clone, nil
}
