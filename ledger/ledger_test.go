package ledger

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
)

func TestIssueAndBalance(t *testing.T) {
	l := New(nil)

	if err := l.Issue("alice", uint256.NewInt(100)); err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if got := l.BalanceOf("alice"); got.Uint64() != 100 {
		t.Errorf("expected balance 100, got %s", got.Dec())
	}
	if got := l.TotalSupply(); got.Uint64() != 100 {
		t.Errorf("expected total supply 100, got %s", got.Dec())
	}
	if got := l.BalanceOf("bob"); !got.IsZero() {
		t.Errorf("expected zero balance for bob, got %s", got.Dec())
	}
}

func TestTransfer(t *testing.T) {
	l := New(nil)
	l.Issue("alice", uint256.NewInt(100))

	if err := l.Transfer("alice", "bob", uint256.NewInt(40)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	if got := l.BalanceOf("alice"); got.Uint64() != 60 {
		t.Errorf("expected alice balance 60, got %s", got.Dec())
	}
	if got := l.BalanceOf("bob"); got.Uint64() != 40 {
		t.Errorf("expected bob balance 40, got %s", got.Dec())
	}
	if got := l.TotalSupply(); got.Uint64() != 100 {
		t.Errorf("transfer must not change total supply, got %s", got.Dec())
	}
}

func TestTransferInsufficientBalance(t *testing.T) {
	l := New(nil)
	l.Issue("alice", uint256.NewInt(10))

	err := l.Transfer("alice", "bob", uint256.NewInt(11))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
	if got := l.BalanceOf("alice"); got.Uint64() != 10 {
		t.Errorf("failed transfer must not change balances, got %s", got.Dec())
	}
}

func TestTransferInvalidAccounts(t *testing.T) {
	l := New(nil)
	l.Issue("alice", uint256.NewInt(10))

	if err := l.Transfer("", "bob", uint256.NewInt(1)); !errors.Is(err, ErrInvalidAccount) {
		t.Errorf("expected ErrInvalidAccount for empty from, got %v", err)
	}
	if err := l.Transfer("alice", "", uint256.NewInt(1)); !errors.Is(err, ErrInvalidAccount) {
		t.Errorf("expected ErrInvalidAccount for empty to, got %v", err)
	}
}

func TestApproveAndTransferFrom(t *testing.T) {
	l := New(nil)
	l.Issue("alice", uint256.NewInt(100))

	if err := l.Approve("alice", "carol", uint256.NewInt(50)); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if got := l.Allowance("alice", "carol"); got.Uint64() != 50 {
		t.Errorf("expected allowance 50, got %s", got.Dec())
	}

	if err := l.TransferFrom("carol", "alice", "bob", uint256.NewInt(30)); err != nil {
		t.Fatalf("transferFrom failed: %v", err)
	}
	if got := l.Allowance("alice", "carol"); got.Uint64() != 20 {
		t.Errorf("expected remaining allowance 20, got %s", got.Dec())
	}
	if got := l.BalanceOf("bob"); got.Uint64() != 30 {
		t.Errorf("expected bob balance 30, got %s", got.Dec())
	}

	err := l.TransferFrom("carol", "alice", "bob", uint256.NewInt(21))
	if !errors.Is(err, ErrInsufficientAllowance) {
		t.Errorf("expected ErrInsufficientAllowance, got %v", err)
	}
}

func TestBurn(t *testing.T) {
	l := New(nil)
	l.Issue("alice", uint256.NewInt(100))

	if err := l.Burn("alice", uint256.NewInt(60)); err != nil {
		t.Fatalf("burn failed: %v", err)
	}
	if got := l.BalanceOf("alice"); got.Uint64() != 40 {
		t.Errorf("expected balance 40, got %s", got.Dec())
	}
	if got := l.TotalSupply(); got.Uint64() != 40 {
		t.Errorf("expected total supply 40, got %s", got.Dec())
	}

	if err := l.Burn("alice", uint256.NewInt(41)); !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
}

// gateCall records one gate invocation.
type gateCall struct {
	from, to string
	amount   uint64
}

func TestGateSeesEveryMutation(t *testing.T) {
	var calls []gateCall
	l := New(func(from, to string, amount *uint256.Int) error {
		calls = append(calls, gateCall{from, to, amount.Uint64()})
		return nil
	})

	l.Issue("alice", uint256.NewInt(100))
	l.Transfer("alice", "bob", uint256.NewInt(10))
	l.Approve("alice", "carol", uint256.NewInt(50))
	l.TransferFrom("carol", "alice", "bob", uint256.NewInt(5))
	l.Burn("bob", uint256.NewInt(3))

	// Approve is not a balance mutation; everything else must hit the gate.
	want := []gateCall{
		{"", "alice", 100},
		{"alice", "bob", 10},
		{"alice", "bob", 5},
		{"bob", "", 3},
	}
	if len(calls) != len(want) {
		t.Fatalf("expected %d gate calls, got %d: %v", len(want), len(calls), calls)
	}
	for i, call := range calls {
		if call != want[i] {
			t.Errorf("gate call %d: expected %v, got %v", i, want[i], call)
		}
	}
}

func TestGateVetoAbortsMutation(t *testing.T) {
	veto := errors.New("vetoed")
	allow := true
	l := New(func(from, to string, amount *uint256.Int) error {
		if !allow {
			return veto
		}
		return nil
	})

	l.Issue("alice", uint256.NewInt(100))
	allow = false

	if err := l.Transfer("alice", "bob", uint256.NewInt(10)); !errors.Is(err, veto) {
		t.Errorf("expected veto error, got %v", err)
	}
	if got := l.BalanceOf("alice"); got.Uint64() != 100 {
		t.Errorf("vetoed transfer must not change balances, got %s", got.Dec())
	}
	if err := l.Burn("alice", uint256.NewInt(10)); !errors.Is(err, veto) {
		t.Errorf("expected veto error on burn, got %v", err)
	}
	if got := l.TotalSupply(); got.Uint64() != 100 {
		t.Errorf("vetoed burn must not change supply, got %s", got.Dec())
	}
}

func TestBalanceOfReturnsCopy(t *testing.T) {
	l := New(nil)
	l.Issue("alice", uint256.NewInt(100))

	balance := l.BalanceOf("alice")
	balance.SetUint64(0)

	if got := l.BalanceOf("alice"); got.Uint64() != 100 {
		t.Error("BalanceOf should return a copy, not a reference")
	}
}
