package events

import (
	"context"
	"log/slog"
	"time"
)

const (
	// KindAccountOpened indicates a new account was registered.
	KindAccountOpened = "account_opened"
	// KindTransactionCommitted indicates a committed deposit, withdrawal or
	// transfer.
	KindTransactionCommitted = "transaction_committed"
)

// AccountOpened describes a newly opened account.
type AccountOpened struct {
	Number     int64     `json:"number"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Balance    int64     `json:"balance"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TransactionCommitted describes a journaled balance movement.
type TransactionCommitted struct {
	TransactionID int64     `json:"transaction_id"`
	Kind          string    `json:"kind"`
	Amount        int64     `json:"amount"`
	FromAccount   int64     `json:"from_account"`
	ToAccount     int64     `json:"to_account,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher delivers ledger events to downstream systems. Publishing is
// best-effort: the ledger has already committed by the time an event is
// emitted, so failures are reported but never unwind the operation.
type Publisher interface {
	Publish(ctx context.Context, kind string, event any) error
}

// LogPublisher writes events to the structured logger. It is the default
// backend when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher constructs a logging publisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish writes the event to the logger.
func (p *LogPublisher) Publish(_ context.Context, kind string, event any) error {
	if p == nil || p.logger == nil {
		return nil
	}
	p.logger.Info("ledger event", "kind", kind, "event", event)
	return nil
}
