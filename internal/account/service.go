package account

import (
	"context"
	"time"

	"github.com/ledgerbank/ledgerbank/internal/events"
	"github.com/ledgerbank/ledgerbank/internal/ledger"
)

// DefaultType is assigned when the caller leaves the account type blank.
const DefaultType = "savings"

// Service exposes account operations on the core ledger.
type Service struct {
	ledger    *ledger.Ledger
	publisher events.Publisher
}

// NewService builds an account service instance.
func NewService(l *ledger.Ledger, publisher events.Publisher) *Service {
	return &Service{ledger: l, publisher: publisher}
}

// OpenInput captures data required to open an account.
type OpenInput struct {
	Name           string
	Type           string
	InitialBalance int64
}

// Open registers a new account and emits an account-opened event.
func (s *Service) Open(ctx context.Context, input OpenInput) (ledger.AccountView, error) {
	accountType := input.Type
	if accountType == "" {
		accountType = DefaultType
	}

	acc, err := s.ledger.Open(ctx, input.Name, accountType, input.InitialBalance)
	if err != nil {
		return ledger.AccountView{}, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, events.KindAccountOpened, events.AccountOpened{
			Number:     acc.Number,
			Name:       acc.Name,
			Type:       acc.Type,
			Balance:    acc.Balance,
			OccurredAt: time.Now().UTC(),
		})
	}

	return acc, nil
}

// Deposit credits the account and emits a committed-transaction event.
func (s *Service) Deposit(ctx context.Context, number, amount int64) (ledger.Receipt, error) {
	receipt, err := s.ledger.Deposit(ctx, number, amount)
	if err != nil {
		return ledger.Receipt{}, err
	}
	s.publishCommit(ctx, receipt.Transaction)
	return receipt, nil
}

// Withdraw debits the account and emits a committed-transaction event.
func (s *Service) Withdraw(ctx context.Context, number, amount int64) (ledger.Receipt, error) {
	receipt, err := s.ledger.Withdraw(ctx, number, amount)
	if err != nil {
		return ledger.Receipt{}, err
	}
	s.publishCommit(ctx, receipt.Transaction)
	return receipt, nil
}

// Get retrieves a single account snapshot.
func (s *Service) Get(ctx context.Context, number int64) (ledger.AccountView, error) {
	return s.ledger.Account(ctx, number)
}

// List returns snapshots of every account ordered by number.
func (s *Service) List(ctx context.Context) []ledger.AccountView {
	return s.ledger.Accounts(ctx)
}

func (s *Service) publishCommit(ctx context.Context, tx ledger.Transaction) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, events.KindTransactionCommitted, events.TransactionCommitted{
		TransactionID: tx.ID,
		Kind:          string(tx.Kind),
		Amount:        tx.Amount,
		FromAccount:   tx.From,
		ToAccount:     tx.To,
		OccurredAt:    time.Now().UTC(),
	})
}
