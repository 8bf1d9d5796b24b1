// Command teller is an interactive console over the in-memory ledger,
// driving the same core the API serves but in-process.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ledgerbank/ledgerbank/internal/ledger"
)

const menu = `
1. Create Account
2. Deposit
3. Withdraw
4. Transfer
5. View Account
6. View Transactions
7. Exit
Choose an option: `

func main() {
	core := ledger.New(ledger.DefaultBaseNumber)
	in := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	fmt.Println("Welcome to the Bank!")
	for {
		fmt.Print(menu)
		choice, ok := readInt(in)
		if !ok {
			return
		}

		switch choice {
		case 1:
			createAccount(ctx, core, in)
		case 2:
			deposit(ctx, core, in)
		case 3:
			withdraw(ctx, core, in)
		case 4:
			transfer(ctx, core, in)
		case 5:
			viewAccounts(ctx, core, in)
		case 6:
			viewTransactions(ctx, core)
		case 7:
			return
		default:
			fmt.Println("Invalid Choice!")
		}
	}
}

func createAccount(ctx context.Context, core *ledger.Ledger, in *bufio.Scanner) {
	name := prompt(in, "Enter Name: ")
	accountType := prompt(in, "Enter Account Type (Savings/Current): ")
	fmt.Print("Enter Initial Balance: ")
	balance, ok := readInt64(in)
	if !ok {
		return
	}

	acc, err := core.Open(ctx, name, strings.ToLower(accountType), balance)
	if err != nil {
		fmt.Println("Could not create account:", err)
		return
	}
	fmt.Println("Account Created! Your Account Number is:", acc.Number)
}

func deposit(ctx context.Context, core *ledger.Ledger, in *bufio.Scanner) {
	number, amount, ok := readNumberAndAmount(in, "Deposit")
	if !ok {
		return
	}
	receipt, err := core.Deposit(ctx, number, amount)
	if err != nil {
		fmt.Println("Deposit failed:", err)
		return
	}
	fmt.Println("Deposited Successfully! New balance:", receipt.Balance)
}

func withdraw(ctx context.Context, core *ledger.Ledger, in *bufio.Scanner) {
	number, amount, ok := readNumberAndAmount(in, "Withdrawal")
	if !ok {
		return
	}
	receipt, err := core.Withdraw(ctx, number, amount)
	if err != nil {
		fmt.Println("Withdrawal failed:", err)
		return
	}
	fmt.Println("Withdrawal Successful! New balance:", receipt.Balance)
}

func transfer(ctx context.Context, core *ledger.Ledger, in *bufio.Scanner) {
	fmt.Print("Enter From Account Number: ")
	from, ok := readInt64(in)
	if !ok {
		return
	}
	fmt.Print("Enter To Account Number: ")
	to, ok := readInt64(in)
	if !ok {
		return
	}
	fmt.Print("Enter Transfer Amount: ")
	amount, ok := readInt64(in)
	if !ok {
		return
	}

	res, err := core.Transfer(ctx, from, to, amount)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			fmt.Println("Invalid Accounts!")
		} else {
			fmt.Println("Transfer failed:", err)
		}
		return
	}
	fmt.Printf("Transfer Successful! %d -> %d, new balances %d / %d\n",
		from, to, res.FromBalance, res.ToBalance)
}

func viewAccounts(ctx context.Context, core *ledger.Ledger, in *bufio.Scanner) {
	fmt.Print("Enter Account Number to View (Enter 0 for All Accounts): ")
	number, ok := readInt64(in)
	if !ok {
		return
	}

	if number == 0 {
		for _, acc := range core.Accounts(ctx) {
			printAccount(acc)
		}
		return
	}

	acc, err := core.Account(ctx, number)
	if err != nil {
		fmt.Println("Account not found!")
		return
	}
	printAccount(acc)
}

func viewTransactions(ctx context.Context, core *ledger.Ledger) {
	fmt.Println("\nTransaction History:")
	for _, tx := range core.Transactions(ctx) {
		to := "N/A"
		if tx.To != 0 {
			to = strconv.FormatInt(tx.To, 10)
		}
		fmt.Printf("\nTransaction ID: %d\nType: %s\nAmount: %d\nFrom Account: %d\nTo Account: %s\nTime: %s\n",
			tx.ID, tx.Kind, tx.Amount, tx.From, to, tx.At.Format("Mon Jan  2 15:04:05 2006"))
	}
}

func printAccount(acc ledger.AccountView) {
	fmt.Printf("\nAccount Number: %d\nAccount Name: %s\nBalance: %d\nAccount Type: %s\n",
		acc.Number, acc.Name, acc.Balance, acc.Type)
}

func readNumberAndAmount(in *bufio.Scanner, op string) (int64, int64, bool) {
	fmt.Print("Enter Account Number: ")
	number, ok := readInt64(in)
	if !ok {
		return 0, 0, false
	}
	fmt.Printf("Enter %s Amount: ", op)
	amount, ok := readInt64(in)
	if !ok {
		return 0, 0, false
	}
	return number, amount, true
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func readInt(in *bufio.Scanner) (int, bool) {
	if !in.Scan() {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
	if err != nil {
		return -1, true
	}
	return n, true
}

func readInt64(in *bufio.Scanner) (int64, bool) {
	if !in.Scan() {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(in.Text()), 10, 64)
	if err != nil {
		fmt.Println("Invalid number.")
		return 0, false
	}
	return n, true
}
