package ledger

import (
	"sync"
	"time"
)

// Kind classifies a journal record.
type Kind string

const (
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
	KindTransfer Kind = "transfer"
)

// Transaction is an immutable journal record describing one committed
// balance-changing operation. To is zero for deposits and withdrawals;
// account numbers start at the ledger base so zero never names a real
// account.
type Transaction struct {
	ID     int64     `json:"id"`
	Kind   Kind      `json:"kind"`
	Amount int64     `json:"amount"`
	From   int64     `json:"from_account"`
	To     int64     `json:"to_account,omitempty"`
	At     time.Time `json:"at"`
}

// journal is the append-only transaction log. It has its own mutex,
// independent of every account lock and of the registry lock, so recording
// a committed operation never blocks balance mutations elsewhere.
type journal struct {
	mu      sync.Mutex
	nextID  int64
	entries []Transaction
}

func newJournal() *journal {
	return &journal{}
}

// append assigns the next sequential id and records the entry. Append order
// equals id order.
func (j *journal) append(kind Kind, amount, from, to int64) Transaction {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.nextID++
	tx := Transaction{
		ID:     j.nextID,
		Kind:   kind,
		Amount: amount,
		From:   from,
		To:     to,
		At:     time.Now().UTC(),
	}
	j.entries = append(j.entries, tx)
	return tx
}

// snapshot copies the entries so callers can iterate without holding the
// journal lock.
func (j *journal) snapshot() []Transaction {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Transaction, len(j.entries))
	copy(out, j.entries)
	return out
}
