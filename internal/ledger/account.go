package ledger

import (
	"sync"
	"time"
)

// account is a single balance cell. Each account owns its own mutex; the
// balance is only ever read or written with that mutex held. The struct is
// unexported and only ever handled by pointer so the lock cannot be copied.
type account struct {
	number   int64
	name     string
	kind     string
	openedAt time.Time

	mu      sync.Mutex
	balance int64
}

// AccountView is an immutable snapshot of an account, safe to hand to
// callers and encode in responses.
type AccountView struct {
	Number   int64     `json:"number"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Balance  int64     `json:"balance"`
	OpenedAt time.Time `json:"opened_at"`
}

func newAccount(number int64, name, kind string, balance int64) *account {
	return &account{
		number:   number,
		name:     name,
		kind:     kind,
		balance:  balance,
		openedAt: time.Now().UTC(),
	}
}

// deposit credits the account. The amount must already have been validated
// as positive by the caller.
func (a *account) deposit(amount int64) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance += amount
	return a.balance
}

// withdraw debits the account, refusing to let the balance go negative.
func (a *account) withdraw(amount int64) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if amount > a.balance {
		return a.balance, ErrInsufficientFunds
	}
	a.balance -= amount
	return a.balance, nil
}

// view returns a consistent snapshot; the balance cannot be observed
// mid-mutation because the account lock is held while it is read.
func (a *account) view() AccountView {
	a.mu.Lock()
	balance := a.balance
	a.mu.Unlock()

	return AccountView{
		Number:   a.number,
		Name:     a.name,
		Type:     a.kind,
		Balance:  balance,
		OpenedAt: a.openedAt,
	}
}
