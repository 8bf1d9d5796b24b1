package transfer

import (
	"context"
	"time"

	"github.com/ledgerbank/ledgerbank/internal/events"
	"github.com/ledgerbank/ledgerbank/internal/ledger"
)

// Service posts transfers between ledger accounts.
type Service struct {
	ledger    *ledger.Ledger
	publisher events.Publisher
}

// NewService constructs a transfer service.
func NewService(l *ledger.Ledger, publisher events.Publisher) *Service {
	return &Service{ledger: l, publisher: publisher}
}

// Input captures the data needed to move funds between accounts.
type Input struct {
	FromAccount int64
	ToAccount   int64
	Amount      int64
}

// Result describes the committed transfer.
type Result struct {
	TransactionID int64
	FromAccount   int64
	ToAccount     int64
	Amount        int64
	FromBalance   int64
	ToBalance     int64
	CompletedAt   time.Time
}

// Transfer moves funds and emits a committed-transaction event. The core
// returns a definitive success or failure; there is no retry here, callers
// that retry must dedupe at the boundary.
func (s *Service) Transfer(ctx context.Context, input Input) (Result, error) {
	res, err := s.ledger.Transfer(ctx, input.FromAccount, input.ToAccount, input.Amount)
	if err != nil {
		return Result{}, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, events.KindTransactionCommitted, events.TransactionCommitted{
			TransactionID: res.Transaction.ID,
			Kind:          string(res.Transaction.Kind),
			Amount:        res.Transaction.Amount,
			FromAccount:   res.Transaction.From,
			ToAccount:     res.Transaction.To,
			OccurredAt:    time.Now().UTC(),
		})
	}

	return Result{
		TransactionID: res.Transaction.ID,
		FromAccount:   input.FromAccount,
		ToAccount:     input.ToAccount,
		Amount:        input.Amount,
		FromBalance:   res.FromBalance,
		ToBalance:     res.ToBalance,
		CompletedAt:   res.Transaction.At,
	}, nil
}

// History returns the full journal in append order.
func (s *Service) History(ctx context.Context) []ledger.Transaction {
	return s.ledger.Transactions(ctx)
}
