package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"revolution/contexts/collective-governance/revolution-engine/domain/entities"
	domainerrors "revolution/contexts/collective-governance/revolution-engine/domain/errors"
	"revolution/contexts/collective-governance/revolution-engine/ports"
	"revolution/internal/shared/events"
	"revolution/internal/shared/outbox"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists revolution aggregates as single rows with the period
// sequences serialized to JSONB. One row per revolution keeps each
// graduation step atomic at the storage layer.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// Save inserts at version 1 and otherwise compare-and-swaps on the version
// column. A missed swap surfaces as ErrConflict for the caller to retry.
func (r *Repository) Save(ctx context.Context, revolution entities.Revolution) error {
	row, err := revolutionModelFromEntity(revolution)
	if err != nil {
		return r.logError("revolution_repo_encode_failed", err,
			"revolution_id", revolution.ID,
		)
	}

	if revolution.Version == 1 {
		create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&row)
		if create.Error != nil {
			if isUniqueViolation(create.Error) {
				return domainerrors.ErrConflict
			}
			return r.logError("revolution_repo_insert_failed", create.Error,
				"revolution_id", revolution.ID,
			)
		}
		if create.RowsAffected == 0 {
			return domainerrors.ErrConflict
		}
		return nil
	}

	update := r.db.WithContext(ctx).
		Model(&revolutionModel{}).
		Where("id = ?", row.ID).
		Where("version = ?", revolution.Version-1).
		Updates(map[string]any{
			"mission":              row.Mission,
			"submission_config":    row.SubmissionConfig,
			"voting_config":        row.VotingConfig,
			"auction_config":       row.AuctionConfig,
			"min_creator_rate":     row.MinCreatorRate,
			"default_entropy_rate": row.DefaultEntropyRate,
			"energy_weight":        row.EnergyWeight,
			"submission_periods":   row.SubmissionPeriods,
			"voting_periods":       row.VotingPeriods,
			"auction_periods":      row.AuctionPeriods,
			"version":              row.Version,
			"updated_at":           row.UpdatedAt,
		})
	if update.Error != nil {
		return r.logError("revolution_repo_update_failed", update.Error,
			"revolution_id", revolution.ID,
			"version", revolution.Version,
		)
	}
	if update.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, revolutionID string) (entities.Revolution, error) {
	var row revolutionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(revolutionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Revolution{}, domainerrors.ErrRevolutionNotFound
		}
		return entities.Revolution{}, r.logError("revolution_repo_get_failed", err,
			"revolution_id", strings.TrimSpace(revolutionID),
		)
	}
	revolution, err := row.toEntity()
	if err != nil {
		return entities.Revolution{}, r.logError("revolution_repo_decode_failed", err,
			"revolution_id", row.ID,
		)
	}
	return revolution, nil
}

func (r *Repository) List(ctx context.Context) ([]entities.Revolution, error) {
	var rows []revolutionModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("revolution_repo_list_failed", err)
	}
	items := make([]entities.Revolution, 0, len(rows))
	for _, row := range rows {
		revolution, err := row.toEntity()
		if err != nil {
			return nil, r.logError("revolution_repo_decode_failed", err,
				"revolution_id", row.ID,
			)
		}
		items = append(items, revolution)
	}
	return items, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, event events.Envelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return r.logError("revolution_repo_outbox_encode_failed", err,
			"event_id", event.EventID,
		)
	}
	row := outboxModel{
		ID:        event.EventID,
		EventType: event.EventType,
		Payload:   payload,
		Status:    outbox.StatusPending,
		CreatedAt: event.OccurredAtUTC,
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("revolution_repo_outbox_append_failed", create.Error,
			"event_id", event.EventID,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("revolution_repo_outbox_list_failed", err)
	}
	items := make([]outbox.Message, 0, len(rows))
	for _, row := range rows {
		items = append(items, outbox.Message{
			ID:        row.ID,
			EventType: row.EventType,
			Payload:   row.Payload,
			Status:    row.Status,
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string) error {
	update := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("id = ?", strings.TrimSpace(outboxID)).
		Update("status", outbox.StatusPublished)
	if update.Error != nil {
		return r.logError("revolution_repo_outbox_mark_failed", update.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	return nil
}

// ExecuteSettlement appends to the settlement ledger table. The custody
// collaborator consumes the ledger; the engine never moves value.
func (r *Repository) ExecuteSettlement(ctx context.Context, order ports.SettlementOrder) error {
	winner, err := json.Marshal(order.Winner)
	if err != nil {
		return r.logError("revolution_repo_settlement_encode_failed", err,
			"revolution_id", order.RevolutionID,
		)
	}
	authors, err := json.Marshal(order.Authors)
	if err != nil {
		return r.logError("revolution_repo_settlement_encode_failed", err,
			"revolution_id", order.RevolutionID,
		)
	}
	row := settlementModel{
		RevolutionID:    order.RevolutionID,
		AuctionPeriodID: order.AuctionPeriodID,
		AuctionID:       order.AuctionID,
		Winner:          winner,
		Authors:         authors,
		EntropyRate:     order.EntropyRate,
		CreatorRate:     order.CreatorRate,
		TreasuryCash:    order.TreasuryCash,
		CreatorCash:     order.CreatorCash,
		SettledAt:       order.SettledAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("revolution_repo_settlement_insert_failed", err,
			"revolution_id", order.RevolutionID,
			"auction_period_id", order.AuctionPeriodID,
			"auction_id", order.AuctionID,
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "collective-governance/revolution-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("revolution repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

type revolutionModel struct {
	ID                 string    `gorm:"column:id;primaryKey"`
	Mission            string    `gorm:"column:mission"`
	SubmissionConfig   []byte    `gorm:"column:submission_config;type:jsonb"`
	VotingConfig       []byte    `gorm:"column:voting_config;type:jsonb"`
	AuctionConfig      []byte    `gorm:"column:auction_config;type:jsonb"`
	MinCreatorRate     float64   `gorm:"column:min_creator_rate"`
	DefaultEntropyRate float64   `gorm:"column:default_entropy_rate"`
	EnergyWeight       float64   `gorm:"column:energy_weight"`
	SubmissionPeriods  []byte    `gorm:"column:submission_periods;type:jsonb"`
	VotingPeriods      []byte    `gorm:"column:voting_periods;type:jsonb"`
	AuctionPeriods     []byte    `gorm:"column:auction_periods;type:jsonb"`
	Version            int64     `gorm:"column:version"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (revolutionModel) TableName() string {
	return "revolutions"
}

func revolutionModelFromEntity(revolution entities.Revolution) (revolutionModel, error) {
	row := revolutionModel{
		ID:                 strings.TrimSpace(revolution.ID),
		Mission:            revolution.Mission,
		MinCreatorRate:     revolution.MinCreatorRate,
		DefaultEntropyRate: revolution.DefaultEntropyRate,
		EnergyWeight:       revolution.EnergyWeight,
		Version:            revolution.Version,
		CreatedAt:          revolution.CreatedAt.UTC(),
		UpdatedAt:          revolution.UpdatedAt.UTC(),
	}
	var err error
	if row.SubmissionConfig, err = json.Marshal(revolution.SubmissionConfig); err != nil {
		return revolutionModel{}, err
	}
	if row.VotingConfig, err = json.Marshal(revolution.VotingConfig); err != nil {
		return revolutionModel{}, err
	}
	if row.AuctionConfig, err = json.Marshal(revolution.AuctionConfig); err != nil {
		return revolutionModel{}, err
	}
	if row.SubmissionPeriods, err = json.Marshal(revolution.SubmissionPeriods); err != nil {
		return revolutionModel{}, err
	}
	if row.VotingPeriods, err = json.Marshal(revolution.VotingPeriods); err != nil {
		return revolutionModel{}, err
	}
	if row.AuctionPeriods, err = json.Marshal(revolution.AuctionPeriods); err != nil {
		return revolutionModel{}, err
	}
	return row, nil
}

func (m revolutionModel) toEntity() (entities.Revolution, error) {
	revolution := entities.Revolution{
		ID:                 m.ID,
		Mission:            m.Mission,
		MinCreatorRate:     m.MinCreatorRate,
		DefaultEntropyRate: m.DefaultEntropyRate,
		EnergyWeight:       m.EnergyWeight,
		Version:            m.Version,
		CreatedAt:          m.CreatedAt.UTC(),
		UpdatedAt:          m.UpdatedAt.UTC(),
	}
	if err := decodeJSON(m.SubmissionConfig, &revolution.SubmissionConfig); err != nil {
		return entities.Revolution{}, err
	}
	if err := decodeJSON(m.VotingConfig, &revolution.VotingConfig); err != nil {
		return entities.Revolution{}, err
	}
	if err := decodeJSON(m.AuctionConfig, &revolution.AuctionConfig); err != nil {
		return entities.Revolution{}, err
	}
	if err := decodeJSON(m.SubmissionPeriods, &revolution.SubmissionPeriods); err != nil {
		return entities.Revolution{}, err
	}
	if err := decodeJSON(m.VotingPeriods, &revolution.VotingPeriods); err != nil {
		return entities.Revolution{}, err
	}
	if err := decodeJSON(m.AuctionPeriods, &revolution.AuctionPeriods); err != nil {
		return entities.Revolution{}, err
	}
	return revolution, nil
}

func decodeJSON(raw []byte, target any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, target)
}

type outboxModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	EventType string    `gorm:"column:event_type"`
	Payload   []byte    `gorm:"column:payload;type:jsonb"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (outboxModel) TableName() string {
	return "revolution_outbox"
}

type settlementModel struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	RevolutionID    string    `gorm:"column:revolution_id"`
	AuctionPeriodID int       `gorm:"column:auction_period_id"`
	AuctionID       int       `gorm:"column:auction_id"`
	Winner          []byte    `gorm:"column:winner;type:jsonb"`
	Authors         []byte    `gorm:"column:authors;type:jsonb"`
	EntropyRate     float64   `gorm:"column:entropy_rate"`
	CreatorRate     float64   `gorm:"column:creator_rate"`
	TreasuryCash    float64   `gorm:"column:treasury_cash"`
	CreatorCash     float64   `gorm:"column:creator_cash"`
	SettledAt       time.Time `gorm:"column:settled_at"`
}

func (settlementModel) TableName() string {
	return "revolution_settlements"
}
