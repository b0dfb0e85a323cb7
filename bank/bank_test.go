package bank

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
)

func TestDepositAndBalance(t *testing.T) {
	b := New()

	if err := b.Deposit("alice", uint256.NewInt(1000)); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if err := b.Deposit("alice", uint256.NewInt(500)); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	if got := b.BalanceOf("alice"); got.Uint64() != 1500 {
		t.Errorf("expected balance 1500, got %s", got.Dec())
	}
	if got := b.BalanceOf("bob"); !got.IsZero() {
		t.Errorf("expected zero balance, got %s", got.Dec())
	}
}

func TestSend(t *testing.T) {
	b := New()
	b.Deposit("alice", uint256.NewInt(1000))

	if err := b.Send("alice", "bob", uint256.NewInt(300)); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if got := b.BalanceOf("alice"); got.Uint64() != 700 {
		t.Errorf("expected alice balance 700, got %s", got.Dec())
	}
	if got := b.BalanceOf("bob"); got.Uint64() != 300 {
		t.Errorf("expected bob balance 300, got %s", got.Dec())
	}
}

func TestSendInsufficientFunds(t *testing.T) {
	b := New()
	b.Deposit("alice", uint256.NewInt(100))

	err := b.Send("alice", "bob", uint256.NewInt(101))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := b.BalanceOf("alice"); got.Uint64() != 100 {
		t.Errorf("failed send must not change balances, got %s", got.Dec())
	}
}

func TestSendInvalidAccounts(t *testing.T) {
	b := New()
	b.Deposit("alice", uint256.NewInt(100))

	if err := b.Send("", "bob", uint256.NewInt(1)); !errors.Is(err, ErrInvalidAccount) {
		t.Errorf("expected ErrInvalidAccount, got %v", err)
	}
	if err := b.Send("alice", "", uint256.NewInt(1)); !errors.Is(err, ErrInvalidAccount) {
		t.Errorf("expected ErrInvalidAccount, got %v", err)
	}
}
