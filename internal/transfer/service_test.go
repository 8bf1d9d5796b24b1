package transfer

import (
	"context"
	"errors"
	"testing"

	"github.com/ledgerbank/ledgerbank/internal/events"
	"github.com/ledgerbank/ledgerbank/internal/ledger"
)

type testPublisher struct {
	last     any
	lastKind string
	count    int
}

func (p *testPublisher) Publish(_ context.Context, kind string, event any) error {
	p.lastKind = kind
	p.last = event
	p.count++
	return nil
}

func seededLedger(t *testing.T) (*ledger.Ledger, int64, int64) {
	t.Helper()
	l := ledger.New(ledger.DefaultBaseNumber)
	ctx := context.Background()
	from, err := l.Open(ctx, "alice", "savings", 0)
	if err != nil {
		t.Fatalf("open from: %v", err)
	}
	to, err := l.Open(ctx, "bob", "savings", 0)
	if err != nil {
		t.Fatalf("open to: %v", err)
	}
	ledger.SeedBalance(l, from.Number, 10_000)
	return l, from.Number, to.Number
}

func TestTransferSuccess(t *testing.T) {
	l, from, to := seededLedger(t)
	pub := &testPublisher{}
	svc := NewService(l, pub)

	res, err := svc.Transfer(context.Background(), Input{FromAccount: from, ToAccount: to, Amount: 2_000})
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	if res.FromBalance != 8_000 || res.ToBalance != 2_000 {
		t.Fatalf("unexpected balances: %+v", res)
	}
	if res.TransactionID == 0 || res.CompletedAt.IsZero() {
		t.Fatalf("missing journal data: %+v", res)
	}

	if pub.lastKind != events.KindTransactionCommitted {
		t.Fatalf("expected committed event, got %q", pub.lastKind)
	}
	committed := pub.last.(events.TransactionCommitted)
	if committed.FromAccount != from || committed.ToAccount != to || committed.Amount != 2_000 {
		t.Fatalf("unexpected event: %+v", committed)
	}
}

func TestTransferInsufficientFunds(t *testing.T) {
	l, from, to := seededLedger(t)
	pub := &testPublisher{}
	svc := NewService(l, pub)

	_, err := svc.Transfer(context.Background(), Input{FromAccount: from, ToAccount: to, Amount: 50_000})
	if !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if pub.count != 0 {
		t.Fatalf("failed transfer published %d events", pub.count)
	}
}

func TestTransferErrorsPassThrough(t *testing.T) {
	l, from, to := seededLedger(t)
	svc := NewService(l, nil)
	ctx := context.Background()

	if _, err := svc.Transfer(ctx, Input{FromAccount: from, ToAccount: from, Amount: 10}); !errors.Is(err, ledger.ErrSameAccount) {
		t.Fatalf("expected ErrSameAccount, got %v", err)
	}
	if _, err := svc.Transfer(ctx, Input{FromAccount: from, ToAccount: to, Amount: 0}); !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := svc.Transfer(ctx, Input{FromAccount: 9999, ToAccount: to, Amount: 10}); !errors.Is(err, ledger.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestHistoryReturnsJournalOrder(t *testing.T) {
	l, from, to := seededLedger(t)
	svc := NewService(l, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Transfer(ctx, Input{FromAccount: from, ToAccount: to, Amount: 100}); err != nil {
			t.Fatalf("transfer %d: %v", i, err)
		}
	}

	history := svc.History(ctx)
	if len(history) != 3 {
		t.Fatalf("history has %d records, want 3", len(history))
	}
	for i, tx := range history {
		if tx.ID != int64(i+1) {
			t.Fatalf("record %d has id %d", i, tx.ID)
		}
		if tx.Kind != ledger.KindTransfer {
			t.Fatalf("record %d kind = %q", i, tx.Kind)
		}
	}
}
