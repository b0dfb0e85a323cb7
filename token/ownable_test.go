package token

import (
	"errors"
	"testing"
)

func TestOwnableCheckOwner(t *testing.T) {
	o := NewOwnable("alice")

	if err := o.CheckOwner("alice"); err != nil {
		t.Errorf("owner rejected: %v", err)
	}
	if err := o.CheckOwner("bob"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if o.Owner() != "alice" {
		t.Errorf("expected owner alice, got %s", o.Owner())
	}
}

func TestOwnableTransferOwnership(t *testing.T) {
	o := NewOwnable("alice")

	if err := o.TransferOwnership("bob", "carol"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if err := o.TransferOwnership("alice", ""); !errors.Is(err, ErrInvalidDestination) {
		t.Errorf("expected ErrInvalidDestination, got %v", err)
	}

	if err := o.TransferOwnership("alice", "carol"); err != nil {
		t.Fatalf("transfer ownership failed: %v", err)
	}
	if o.Owner() != "carol" {
		t.Errorf("expected owner carol, got %s", o.Owner())
	}
	if err := o.CheckOwner("alice"); !errors.Is(err, ErrUnauthorized) {
		t.Error("previous owner must lose access")
	}
}
