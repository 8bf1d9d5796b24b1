package account

import (
	"context"
	"errors"
	"testing"

	"github.com/ledgerbank/ledgerbank/internal/events"
	"github.com/ledgerbank/ledgerbank/internal/ledger"
)

type testPublisher struct {
	kinds  []string
	events []any
}

func (p *testPublisher) Publish(_ context.Context, kind string, event any) error {
	p.kinds = append(p.kinds, kind)
	p.events = append(p.events, event)
	return nil
}

func TestOpenDefaultsTypeAndPublishes(t *testing.T) {
	pub := &testPublisher{}
	svc := NewService(ledger.New(ledger.DefaultBaseNumber), pub)
	ctx := context.Background()

	acc, err := svc.Open(ctx, OpenInput{Name: "alice", InitialBalance: 500})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if acc.Type != DefaultType {
		t.Fatalf("type = %q, want %q", acc.Type, DefaultType)
	}

	if len(pub.kinds) != 1 || pub.kinds[0] != events.KindAccountOpened {
		t.Fatalf("expected one account_opened event, got %v", pub.kinds)
	}
	opened, ok := pub.events[0].(events.AccountOpened)
	if !ok {
		t.Fatalf("unexpected event payload %T", pub.events[0])
	}
	if opened.Number != acc.Number || opened.Balance != 500 {
		t.Fatalf("unexpected event: %+v", opened)
	}
}

func TestDepositWithdrawPublishCommits(t *testing.T) {
	pub := &testPublisher{}
	svc := NewService(ledger.New(ledger.DefaultBaseNumber), pub)
	ctx := context.Background()

	acc, err := svc.Open(ctx, OpenInput{Name: "alice", Type: "current"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	receipt, err := svc.Deposit(ctx, acc.Number, 300)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if receipt.Balance != 300 {
		t.Fatalf("balance = %d, want 300", receipt.Balance)
	}

	if _, err := svc.Withdraw(ctx, acc.Number, 120); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	want := []string{events.KindAccountOpened, events.KindTransactionCommitted, events.KindTransactionCommitted}
	if len(pub.kinds) != len(want) {
		t.Fatalf("published %d events, want %d", len(pub.kinds), len(want))
	}
	committed, ok := pub.events[2].(events.TransactionCommitted)
	if !ok {
		t.Fatalf("unexpected event payload %T", pub.events[2])
	}
	if committed.Kind != string(ledger.KindWithdraw) || committed.Amount != 120 || committed.TransactionID == 0 {
		t.Fatalf("unexpected commit event: %+v", committed)
	}
}

func TestFailedOperationsPublishNothing(t *testing.T) {
	pub := &testPublisher{}
	svc := NewService(ledger.New(ledger.DefaultBaseNumber), pub)
	ctx := context.Background()

	acc, _ := svc.Open(ctx, OpenInput{Name: "alice"})
	published := len(pub.kinds)

	if _, err := svc.Withdraw(ctx, acc.Number, 10); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if _, err := svc.Deposit(ctx, acc.Number, -1); !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := svc.Deposit(ctx, 9999, 10); !errors.Is(err, ledger.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	if len(pub.kinds) != published {
		t.Fatalf("failed operations published events: %v", pub.kinds[published:])
	}
}

func TestListOrdersByNumber(t *testing.T) {
	svc := NewService(ledger.New(ledger.DefaultBaseNumber), nil)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "carol"} {
		if _, err := svc.Open(ctx, OpenInput{Name: name}); err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
	}

	accounts := svc.List(ctx)
	if len(accounts) != 3 {
		t.Fatalf("list returned %d accounts, want 3", len(accounts))
	}
	for i := 1; i < len(accounts); i++ {
		if accounts[i].Number <= accounts[i-1].Number {
			t.Fatalf("accounts not ordered by number: %+v", accounts)
		}
	}
}
