package ledger

// SeedBalance is a test helper that overwrites an account's balance
// directly, bypassing the journal.
func SeedBalance(l *Ledger, number, amount int64) {
	acc, err := l.find(number)
	if err != nil {
		return
	}
	acc.mu.Lock()
	acc.balance = amount
	acc.mu.Unlock()
}
