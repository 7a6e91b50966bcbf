package outbox

import "time"

const (
	StatusPending   = "pending"
	StatusPublished = "published"
)

// Message is an outbox row persisted alongside the aggregate save. The worker
// relay reads pending rows in creation order and publishes them.
type Message struct {
	ID        string
	EventType string
	Payload   []byte
	Status    string
	CreatedAt time.Time
}
