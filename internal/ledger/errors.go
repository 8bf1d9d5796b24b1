package ledger

import "errors"

var (
	// ErrInvalidAmount occurs when an operation is asked to move a zero or
	// negative amount, or an account is opened with a negative balance.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds occurs when a withdrawal or transfer exceeds the
	// source account's balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAccountNotFound occurs when an operation names an account number
	// that was never assigned.
	ErrAccountNotFound = errors.New("account not found")

	// ErrSameAccount occurs when a transfer names the same account on both
	// sides.
	ErrSameAccount = errors.New("cannot transfer to the same account")
)
