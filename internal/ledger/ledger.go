package ledger

import (
	"context"
	"sort"
	"sync"
)

// DefaultBaseNumber is the first account number a fresh ledger assigns.
const DefaultBaseNumber = 1000

// Receipt captures the outcome of a committed single-account operation.
type Receipt struct {
	Transaction Transaction
	Balance     int64
}

// TransferResult captures the outcome of a committed transfer: the journal
// record and both balances as they stood the instant the transfer applied.
type TransferResult struct {
	Transaction Transaction
	FromBalance int64
	ToBalance   int64
}

// Ledger owns the account registry and the transaction journal.
//
// Three independent lock domains keep unrelated operations from contending:
// the registry mutex guards only the number->account map and the number
// counter, each account's own mutex guards only that balance, and the
// journal's mutex guards only the log. Deposits to two different accounts
// never serialize against each other, and opening accounts never blocks
// balance operations on existing ones.
type Ledger struct {
	mu         sync.RWMutex
	accounts   map[int64]*account
	nextNumber int64

	journal *journal
}

// New creates an empty ledger assigning account numbers from baseNumber
// upward. A baseNumber below 1 falls back to DefaultBaseNumber.
func New(baseNumber int64) *Ledger {
	if baseNumber < 1 {
		baseNumber = DefaultBaseNumber
	}
	return &Ledger{
		accounts:   make(map[int64]*account),
		nextNumber: baseNumber,
		journal:    newJournal(),
	}
}

// Open registers a new account and returns its snapshot. Number assignment
// and registry insertion happen under the registry write lock, so concurrent
// opens never observe the same number.
func (l *Ledger) Open(_ context.Context, name, accountType string, initialBalance int64) (AccountView, error) {
	if initialBalance < 0 {
		return AccountView{}, ErrInvalidAmount
	}

	l.mu.Lock()
	number := l.nextNumber
	l.nextNumber++
	acc := newAccount(number, name, accountType, initialBalance)
	l.accounts[number] = acc
	l.mu.Unlock()

	return acc.view(), nil
}

// find resolves an account under the registry read lock only; it never
// touches any account's own mutex.
func (l *Ledger) find(number int64) (*account, error) {
	l.mu.RLock()
	acc, ok := l.accounts[number]
	l.mu.RUnlock()
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acc, nil
}

// Account returns a snapshot of a single account.
func (l *Ledger) Account(_ context.Context, number int64) (AccountView, error) {
	acc, err := l.find(number)
	if err != nil {
		return AccountView{}, err
	}
	return acc.view(), nil
}

// Accounts returns snapshots of every account, ordered by number. The slice
// reflects the registry at call time; each balance is a per-account
// consistent read.
func (l *Ledger) Accounts(_ context.Context) []AccountView {
	l.mu.RLock()
	cells := make([]*account, 0, len(l.accounts))
	for _, acc := range l.accounts {
		cells = append(cells, acc)
	}
	l.mu.RUnlock()

	views := make([]AccountView, 0, len(cells))
	for _, acc := range cells {
		views = append(views, acc.view())
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Number < views[j].Number })
	return views
}

// Deposit credits an account and journals the committed operation.
func (l *Ledger) Deposit(_ context.Context, number, amount int64) (Receipt, error) {
	if amount <= 0 {
		return Receipt{}, ErrInvalidAmount
	}
	acc, err := l.find(number)
	if err != nil {
		return Receipt{}, err
	}

	balance := acc.deposit(amount)
	tx := l.journal.append(KindDeposit, amount, number, 0)
	return Receipt{Transaction: tx, Balance: balance}, nil
}

// Withdraw debits an account and journals the committed operation. A failed
// withdrawal leaves the balance untouched and journals nothing.
func (l *Ledger) Withdraw(_ context.Context, number, amount int64) (Receipt, error) {
	if amount <= 0 {
		return Receipt{}, ErrInvalidAmount
	}
	acc, err := l.find(number)
	if err != nil {
		return Receipt{}, err
	}

	balance, err := acc.withdraw(amount)
	if err != nil {
		return Receipt{}, err
	}
	tx := l.journal.append(KindWithdraw, amount, number, 0)
	return Receipt{Transaction: tx, Balance: balance}, nil
}

// Transfer atomically moves amount between two accounts.
//
// Both account locks are acquired lower-number-first regardless of transfer
// direction, so two opposite-direction transfers between the same pair can
// never deadlock in a circular wait. The funds check and the debit+credit
// both happen with both locks held: no other operation can observe a
// debited-but-not-credited state.
func (l *Ledger) Transfer(_ context.Context, from, to, amount int64) (TransferResult, error) {
	if amount <= 0 {
		return TransferResult{}, ErrInvalidAmount
	}
	if from == to {
		return TransferResult{}, ErrSameAccount
	}

	src, err := l.find(from)
	if err != nil {
		return TransferResult{}, err
	}
	dst, err := l.find(to)
	if err != nil {
		return TransferResult{}, err
	}

	first, second := src, dst
	if second.number < first.number {
		first, second = second, first
	}

	first.mu.Lock()
	second.mu.Lock()

	if src.balance < amount {
		second.mu.Unlock()
		first.mu.Unlock()
		return TransferResult{}, ErrInsufficientFunds
	}

	src.balance -= amount
	dst.balance += amount
	fromBalance := src.balance
	toBalance := dst.balance

	second.mu.Unlock()
	first.mu.Unlock()

	tx := l.journal.append(KindTransfer, amount, from, to)
	return TransferResult{Transaction: tx, FromBalance: fromBalance, ToBalance: toBalance}, nil
}

// Transactions returns the journal in append (id) order.
func (l *Ledger) Transactions(_ context.Context) []Transaction {
	return l.journal.snapshot()
}
