// Package bank provides a minimal native-currency account book. It backs
// attached payments and withdrawals in tests and local runs; on-chain
// deployments would substitute the platform's native transfer primitive.
package bank

import (
	"errors"
	"sync"

	"github.com/holiman/uint256"
)

var (
	ErrInvalidAccount    = errors.New("bank: invalid account")
	ErrInsufficientFunds = errors.New("bank: insufficient funds")
	ErrNilAmount         = errors.New("bank: nil amount")
)

// Bank tracks native-currency balances in base units.
type Bank struct {
	mu       sync.RWMutex
	accounts map[string]*uint256.Int
}

// New creates an empty bank.
func New() *Bank {
	return &Bank{accounts: make(map[string]*uint256.Int)}
}

// Deposit credits amount to an account.
func (b *Bank) Deposit(account string, amount *uint256.Int) error {
	if account == "" {
		return ErrInvalidAccount
	}
	if amount == nil {
		return ErrNilAmount
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	balance, ok := b.accounts[account]
	if !ok {
		balance = new(uint256.Int)
		b.accounts[account] = balance
	}
	balance.Add(balance, amount)
	return nil
}

// BalanceOf returns an account's balance in base units.
func (b *Bank) BalanceOf(account string) *uint256.Int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if balance, ok := b.accounts[account]; ok {
		return balance.Clone()
	}
	return new(uint256.Int)
}

// Send moves amount between accounts, failing on insufficient funds.
func (b *Bank) Send(from, to string, amount *uint256.Int) error {
	if from == "" || to == "" {
		return ErrInvalidAccount
	}
	if amount == nil {
		return ErrNilAmount
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	source, ok := b.accounts[from]
	if !ok || source.Lt(amount) {
		return ErrInsufficientFunds
	}

	dest, ok := b.accounts[to]
	if !ok {
		dest = new(uint256.Int)
		b.accounts[to] = dest
	}
	source.Sub(source, amount)
	dest.Add(dest, amount)
	return nil
}
