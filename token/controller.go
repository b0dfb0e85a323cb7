// Package token implements a gated-mint fungible token controller: a
// balance ledger wrapped in owner-controlled mint conditions (price, pause,
// per-wallet quota, hard supply cap) and a global transfer switch. Every
// balance mutation routes through a single gate, value-bearing operations
// are protected against reentrant invocation, and each state change is
// emitted as an event.
package token

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-mintgate/ledger"
)

// SendFunc transfers native currency to a destination. It is the trusted
// transfer primitive behind Withdraw; a non-nil error aborts the withdrawal.
type SendFunc func(destination string, amount *uint256.Int) error

// Controller is the minting and transfer-gate controller. Construct with
// New; the zero value is not usable.
type Controller struct {
	name   string
	symbol string

	// maxSupply is fixed at construction, in smallest units.
	maxSupply *uint256.Int

	owner Ownership
	book  *ledger.Ledger

	mu        sync.RWMutex
	price     *uint256.Int
	walletCap uint64
	mintOpen  bool
	minted    map[string]uint64
	held      *uint256.Int

	// transfersEnabled is read by the ledger gate, which may run while
	// c.mu is held (issuance during mint), so it lives outside the mutex.
	transfersEnabled atomic.Bool

	// busy is the reentrancy latch for value-bearing operations.
	busy atomic.Bool

	sink Sink
	send SendFunc
}

// New creates a controller from cfg. Minting and transfers start disabled;
// the owner enables them explicitly.
func New(cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	maxSupply, _ := maxSupplyUnits(cfg.MaxSupplyWhole)

	c := &Controller{
		name:      cfg.Name,
		symbol:    cfg.Symbol,
		maxSupply: maxSupply,
		owner:     NewOwnable(cfg.Owner),
		price:     cfg.price(),
		walletCap: cfg.WalletCapWhole,
		minted:    make(map[string]uint64),
		held:      new(uint256.Int),
	}

	// The gate is installed at construction so no ledger mutation path
	// can bypass it.
	c.book = ledger.New(c.transferGate)

	return c, nil
}

// SetSink attaches an event sink. Pass nil to detach.
func (c *Controller) SetSink(sink Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sink = sink
}

// SetSendFunc attaches the native-currency transfer primitive used by
// Withdraw.
func (c *Controller) SetSendFunc(send SendFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.send = send
}

// transferGate vetoes wallet-to-wallet transfers while the transfer switch
// is off. Issuance (empty from) and destruction (empty to) always pass.
func (c *Controller) transferGate(from, to string, amount *uint256.Int) error {
	if from != "" && to != "" && !c.transfersEnabled.Load() {
		return ErrTransfersDisabled
	}
	return nil
}

// Mint issues amountWhole tokens to caller against an attached payment.
// Guards run in order: mint open, amount, wallet quota, exact payment,
// supply cap. The first failure aborts with no state mutated. A nil payment
// is treated as zero.
func (c *Controller) Mint(caller string, amountWhole uint64, payment *uint256.Int) error {
	if !c.busy.CompareAndSwap(false, true) {
		return ErrReentrancyBlocked
	}
	defer c.busy.Store(false)

	if payment == nil {
		payment = new(uint256.Int)
	}

	data, err := c.mint(caller, amountWhole, payment)
	if err != nil {
		return err
	}

	c.emit(EventMinted, data)
	return nil
}

func (c *Controller) mint(caller string, amountWhole uint64, payment *uint256.Int) (MintedData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mintOpen {
		return MintedData{}, ErrMintingPaused
	}
	if amountWhole == 0 {
		return MintedData{}, ErrInvalidAmount
	}

	// Wallet quota: the uint64 sums cannot be formed first or they may
	// wrap. The counter itself is checked even with no cap set, so it
	// only ever increases.
	already := c.minted[caller]
	if amountWhole > math.MaxUint64-already {
		return MintedData{}, ErrArithmeticOverflow
	}
	if c.walletCap > 0 {
		if already > c.walletCap || amountWhole > c.walletCap-already {
			return MintedData{}, ErrWalletCapExceeded
		}
	}

	expected, overflow := new(uint256.Int).MulOverflow(c.price, uint256.NewInt(amountWhole))
	if overflow {
		return MintedData{}, ErrArithmeticOverflow
	}
	if !payment.Eq(expected) {
		return MintedData{}, ErrIncorrectPayment
	}

	units, err := wholeToUnits(amountWhole)
	if err != nil {
		return MintedData{}, err
	}
	supply, carry := new(uint256.Int).AddOverflow(c.book.TotalSupply(), units)
	if carry {
		return MintedData{}, ErrArithmeticOverflow
	}
	if supply.Gt(c.maxSupply) {
		return MintedData{}, ErrCapExceeded
	}

	// All guards passed; apply as one step. Issue cannot fail here: the
	// gate admits issuance and the supply addition was checked above.
	if err := c.book.Issue(caller, units); err != nil {
		return MintedData{}, err
	}
	c.minted[caller] = already + amountWhole
	c.held.Add(c.held, payment)

	return MintedData{
		Wallet:      caller,
		AmountWhole: amountWhole,
		Payment:     payment.Dec(),
	}, nil
}

// Transfer moves amount smallest units between wallets. It fails with
// ErrTransfersDisabled while the transfer switch is off.
func (c *Controller) Transfer(from, to string, amount *uint256.Int) error {
	if err := c.book.Transfer(from, to, amount); err != nil {
		return err
	}
	c.emit(EventTransferred, TransferredData{From: from, To: to, Amount: amount.Dec()})
	return nil
}

// Approve sets spender's allowance over owner's balance.
func (c *Controller) Approve(owner, spender string, amount *uint256.Int) error {
	if err := c.book.Approve(owner, spender, amount); err != nil {
		return err
	}
	c.emit(EventApproved, ApprovedData{Owner: owner, Spender: spender, Amount: amount.Dec()})
	return nil
}

// TransferFrom moves amount on behalf of spender, consuming allowance.
func (c *Controller) TransferFrom(spender, from, to string, amount *uint256.Int) error {
	if err := c.book.TransferFrom(spender, from, to, amount); err != nil {
		return err
	}
	c.emit(EventTransferred, TransferredData{From: from, To: to, Amount: amount.Dec(), Spender: spender})
	return nil
}

// Burn destroys amount smallest units from caller's balance. Burning is
// never blocked by the transfer switch, and it does not release wallet
// mint quota.
func (c *Controller) Burn(caller string, amount *uint256.Int) error {
	if err := c.book.Burn(caller, amount); err != nil {
		return err
	}
	c.emit(EventBurned, BurnedData{Wallet: caller, Amount: amount.Dec()})
	return nil
}

// SetPrice sets the mint price in base units per whole token. Owner only.
func (c *Controller) SetPrice(caller string, newPrice *uint256.Int) error {
	if err := c.owner.CheckOwner(caller); err != nil {
		return err
	}
	if newPrice == nil {
		newPrice = new(uint256.Int)
	}

	c.mu.Lock()
	old := c.price
	c.price = newPrice.Clone()
	c.mu.Unlock()

	c.emit(EventPriceChanged, PriceChangedData{Old: old.Dec(), New: newPrice.Dec()})
	return nil
}

// SetMintOpen opens or pauses minting. Owner only.
func (c *Controller) SetMintOpen(caller string, open bool) error {
	if err := c.owner.CheckOwner(caller); err != nil {
		return err
	}

	c.mu.Lock()
	c.mintOpen = open
	c.mu.Unlock()

	c.emit(EventMintOpenChanged, ToggleData{New: open})
	return nil
}

// SetTransfersEnabled flips the global transfer switch. Owner only.
func (c *Controller) SetTransfersEnabled(caller string, enabled bool) error {
	if err := c.owner.CheckOwner(caller); err != nil {
		return err
	}

	c.transfersEnabled.Store(enabled)

	c.emit(EventTransfersEnabledChanged, ToggleData{New: enabled})
	return nil
}

// SetWalletMintCap sets the per-wallet mint cap in whole tokens; zero means
// unlimited. Lowering the cap never claws back what a wallet already
// minted, it only blocks that wallet's future mints. Owner only.
func (c *Controller) SetWalletMintCap(caller string, newCap uint64) error {
	if err := c.owner.CheckOwner(caller); err != nil {
		return err
	}

	c.mu.Lock()
	old := c.walletCap
	c.walletCap = newCap
	c.mu.Unlock()

	c.emit(EventWalletCapChanged, WalletCapChangedData{Old: old, New: newCap})
	return nil
}

// Withdraw sends the controller's entire held native balance to
// destination. Owner only; a failed send aborts with the held balance
// untouched.
func (c *Controller) Withdraw(caller, destination string) error {
	if !c.busy.CompareAndSwap(false, true) {
		return ErrReentrancyBlocked
	}
	defer c.busy.Store(false)

	if err := c.owner.CheckOwner(caller); err != nil {
		return err
	}
	if destination == "" {
		return ErrInvalidDestination
	}

	c.mu.RLock()
	amount := c.held.Clone()
	send := c.send
	c.mu.RUnlock()

	if send == nil {
		return fmt.Errorf("%w: no send primitive configured", ErrTransferFailed)
	}
	// The busy latch is held across the send, so the held balance cannot
	// move between the read above and the clear below.
	if err := send(destination, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	c.mu.Lock()
	c.held.Clear()
	c.mu.Unlock()

	c.emit(EventWithdrawn, WithdrawnData{Destination: destination, Amount: amount.Dec()})
	return nil
}

// Receive is the unsolicited incoming-payment path. It rejects
// unconditionally; payments are only accepted through Mint.
func (c *Controller) Receive(from string, amount *uint256.Int) error {
	return ErrDirectPayment
}

// Name returns the token name.
func (c *Controller) Name() string { return c.name }

// Symbol returns the token symbol.
func (c *Controller) Symbol() string { return c.symbol }

// Owner returns the current owner wallet.
func (c *Controller) Owner() string { return c.owner.Owner() }

// Decimals returns the exponent between whole tokens and smallest units.
func (c *Controller) Decimals() int { return Decimals }

// PriceBaseUnits returns the mint price in base units per whole token.
func (c *Controller) PriceBaseUnits() *uint256.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.price.Clone()
}

// MaxSupply returns the supply ceiling in smallest units.
func (c *Controller) MaxSupply() *uint256.Int { return c.maxSupply.Clone() }

// MintOpen reports whether minting is open.
func (c *Controller) MintOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mintOpen
}

// TransfersEnabled reports whether wallet-to-wallet transfers are enabled.
func (c *Controller) TransfersEnabled() bool { return c.transfersEnabled.Load() }

// WalletMintCap returns the per-wallet mint cap in whole tokens.
func (c *Controller) WalletMintCap() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.walletCap
}

// MintedWhole returns how many whole tokens wallet has minted.
func (c *Controller) MintedWhole(wallet string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.minted[wallet]
}

// TokensLeftWhole returns the unminted supply in whole tokens, floored.
func (c *Controller) TokensLeftWhole() uint64 {
	remaining := new(uint256.Int).Sub(c.maxSupply, c.book.TotalSupply())
	return new(uint256.Int).Div(remaining, unitScale).Uint64()
}

// TotalSupply returns the issued supply in smallest units.
func (c *Controller) TotalSupply() *uint256.Int { return c.book.TotalSupply() }

// BalanceOf returns a wallet's balance in smallest units.
func (c *Controller) BalanceOf(wallet string) *uint256.Int { return c.book.BalanceOf(wallet) }

// Allowance returns spender's remaining allowance over owner's balance.
func (c *Controller) Allowance(owner, spender string) *uint256.Int {
	return c.book.Allowance(owner, spender)
}

// HeldBalance returns the native currency held from mint payments.
func (c *Controller) HeldBalance() *uint256.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.held.Clone()
}

// emit records an event on the attached sink, if any.
func (c *Controller) emit(eventType string, data any) {
	c.mu.RLock()
	sink := c.sink
	c.mu.RUnlock()

	if sink != nil {
		sink.Record(eventType, data)
	}
}
