// Package ledger implements a fungible-balance ledger: a mapping from
// account to balance in smallest units, with transfer, approval and
// issue/burn operations. Every balance mutation routes through a single
// pre-commit gate supplied at construction, so callers can veto moves
// without leaving an alternate mutation path open.
package ledger

import (
	"errors"
	"sync"

	"github.com/holiman/uint256"
)

var (
	ErrInvalidAccount        = errors.New("ledger: invalid account")
	ErrInsufficientBalance   = errors.New("ledger: insufficient balance")
	ErrInsufficientAllowance = errors.New("ledger: insufficient allowance")
	ErrSupplyOverflow        = errors.New("ledger: total supply overflow")
	ErrNilAmount             = errors.New("ledger: nil amount")
)

// Gate is called before every balance mutation with the endpoints and
// amount of the pending move. Issuance has an empty from; destruction has
// an empty to. A non-nil error aborts the mutation.
type Gate func(from, to string, amount *uint256.Int) error

// Ledger tracks balances and allowances in smallest units.
type Ledger struct {
	mu          sync.RWMutex
	balances    map[string]*uint256.Int
	allowances  map[string]map[string]*uint256.Int
	totalSupply *uint256.Int
	gate        Gate
}

// New creates an empty ledger. A nil gate admits every mutation.
func New(gate Gate) *Ledger {
	if gate == nil {
		gate = func(string, string, *uint256.Int) error { return nil }
	}
	return &Ledger{
		balances:    make(map[string]*uint256.Int),
		allowances:  make(map[string]map[string]*uint256.Int),
		totalSupply: new(uint256.Int),
		gate:        gate,
	}
}

// BalanceOf returns the balance of an account in smallest units.
func (l *Ledger) BalanceOf(account string) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if balance, ok := l.balances[account]; ok {
		return balance.Clone()
	}
	return new(uint256.Int)
}

// TotalSupply returns the total issued supply in smallest units.
func (l *Ledger) TotalSupply() *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalSupply.Clone()
}

// Transfer moves amount from one account to another.
func (l *Ledger) Transfer(from, to string, amount *uint256.Int) error {
	if from == "" || to == "" {
		return ErrInvalidAccount
	}
	if amount == nil {
		return ErrNilAmount
	}
	if err := l.gate(from, to, amount); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(from, to, amount)
}

// Approve sets the allowance of spender over owner's balance.
func (l *Ledger) Approve(owner, spender string, amount *uint256.Int) error {
	if owner == "" || spender == "" {
		return ErrInvalidAccount
	}
	if amount == nil {
		return ErrNilAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	spenders, ok := l.allowances[owner]
	if !ok {
		spenders = make(map[string]*uint256.Int)
		l.allowances[owner] = spenders
	}
	spenders[spender] = amount.Clone()
	return nil
}

// Allowance returns the remaining allowance of spender over owner's balance.
func (l *Ledger) Allowance(owner, spender string) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if spenders, ok := l.allowances[owner]; ok {
		if allowance, ok := spenders[spender]; ok {
			return allowance.Clone()
		}
	}
	return new(uint256.Int)
}

// TransferFrom moves amount from one account to another on behalf of
// spender, consuming spender's allowance.
func (l *Ledger) TransferFrom(spender, from, to string, amount *uint256.Int) error {
	if spender == "" || from == "" || to == "" {
		return ErrInvalidAccount
	}
	if amount == nil {
		return ErrNilAmount
	}
	if err := l.gate(from, to, amount); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	spenders := l.allowances[from]
	allowance, ok := spenders[spender]
	if !ok || allowance.Lt(amount) {
		return ErrInsufficientAllowance
	}

	if err := l.move(from, to, amount); err != nil {
		return err
	}
	allowance.Sub(allowance, amount)
	return nil
}

// Issue creates amount new units in to's balance, increasing total supply.
func (l *Ledger) Issue(to string, amount *uint256.Int) error {
	if to == "" {
		return ErrInvalidAccount
	}
	if amount == nil {
		return ErrNilAmount
	}
	if err := l.gate("", to, amount); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	supply, overflow := new(uint256.Int).AddOverflow(l.totalSupply, amount)
	if overflow {
		return ErrSupplyOverflow
	}

	balance, ok := l.balances[to]
	if !ok {
		balance = new(uint256.Int)
		l.balances[to] = balance
	}
	balance.Add(balance, amount)
	l.totalSupply = supply
	return nil
}

// Burn destroys amount units from from's balance, decreasing total supply.
func (l *Ledger) Burn(from string, amount *uint256.Int) error {
	if from == "" {
		return ErrInvalidAccount
	}
	if amount == nil {
		return ErrNilAmount
	}
	if err := l.gate(from, "", amount); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[from]
	if !ok || balance.Lt(amount) {
		return ErrInsufficientBalance
	}
	balance.Sub(balance, amount)
	l.totalSupply.Sub(l.totalSupply, amount)
	return nil
}

// move transfers between two existing accounts. Callers hold l.mu.
func (l *Ledger) move(from, to string, amount *uint256.Int) error {
	source, ok := l.balances[from]
	if !ok || source.Lt(amount) {
		return ErrInsufficientBalance
	}

	dest, ok := l.balances[to]
	if !ok {
		dest = new(uint256.Int)
		l.balances[to] = dest
	}

	source.Sub(source, amount)
	dest.Add(dest, amount)
	return nil
}
