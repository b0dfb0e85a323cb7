package token

import "sync"

// Ownership is the access-control capability the controller composes with.
type Ownership interface {
	// CheckOwner returns ErrUnauthorized unless caller is the owner.
	CheckOwner(caller string) error

	// Owner returns the current owner.
	Owner() string
}

// Ownable is a single-owner Ownership with transferable ownership.
type Ownable struct {
	mu    sync.RWMutex
	owner string
}

// NewOwnable creates an ownership capability held by owner.
func NewOwnable(owner string) *Ownable {
	return &Ownable{owner: owner}
}

// CheckOwner returns ErrUnauthorized unless caller is the owner.
func (o *Ownable) CheckOwner(caller string) error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if caller != o.owner {
		return ErrUnauthorized
	}
	return nil
}

// Owner returns the current owner.
func (o *Ownable) Owner() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.owner
}

// TransferOwnership hands ownership to newOwner. Only the current owner may
// call it, and the new owner must be non-empty.
func (o *Ownable) TransferOwnership(caller, newOwner string) error {
	if err := o.CheckOwner(caller); err != nil {
		return err
	}
	if newOwner == "" {
		return ErrInvalidDestination
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.owner = newOwner
	return nil
}
