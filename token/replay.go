package token

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-mintgate/eventsource"
)

// Replay rebuilds a controller from cfg and its recorded event stream by
// re-executing each event in order. Guard state (price, toggles, caps) is
// itself replayed, so re-execution takes the same path the original calls
// did. The returned controller has no sink attached; attach one before
// accepting new operations.
func Replay(cfg Config, events []*eventsource.Event) (*Controller, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}

	owner := cfg.Owner

	for _, event := range events {
		if err := replayEvent(c, owner, event); err != nil {
			return nil, fmt.Errorf("replay event %d (%s): %w", event.Version, event.Type, err)
		}
	}

	return c, nil
}

func replayEvent(c *Controller, owner string, event *eventsource.Event) error {
	switch event.Type {
	case EventCreated:
		// Construction parameters are supplied by the caller.
		return nil

	case EventMinted:
		var data MintedData
		if err := event.Decode(&data); err != nil {
			return err
		}
		payment, err := parseUnits(data.Payment)
		if err != nil {
			return err
		}
		return c.Mint(data.Wallet, data.AmountWhole, payment)

	case EventTransferred:
		var data TransferredData
		if err := event.Decode(&data); err != nil {
			return err
		}
		amount, err := parseUnits(data.Amount)
		if err != nil {
			return err
		}
		if data.Spender != "" {
			return c.TransferFrom(data.Spender, data.From, data.To, amount)
		}
		return c.Transfer(data.From, data.To, amount)

	case EventApproved:
		var data ApprovedData
		if err := event.Decode(&data); err != nil {
			return err
		}
		amount, err := parseUnits(data.Amount)
		if err != nil {
			return err
		}
		return c.Approve(data.Owner, data.Spender, amount)

	case EventBurned:
		var data BurnedData
		if err := event.Decode(&data); err != nil {
			return err
		}
		amount, err := parseUnits(data.Amount)
		if err != nil {
			return err
		}
		return c.Burn(data.Wallet, amount)

	case EventPriceChanged:
		var data PriceChangedData
		if err := event.Decode(&data); err != nil {
			return err
		}
		price, err := parseUnits(data.New)
		if err != nil {
			return err
		}
		return c.SetPrice(owner, price)

	case EventMintOpenChanged:
		var data ToggleData
		if err := event.Decode(&data); err != nil {
			return err
		}
		return c.SetMintOpen(owner, data.New)

	case EventTransfersEnabledChanged:
		var data ToggleData
		if err := event.Decode(&data); err != nil {
			return err
		}
		return c.SetTransfersEnabled(owner, data.New)

	case EventWalletCapChanged:
		var data WalletCapChangedData
		if err := event.Decode(&data); err != nil {
			return err
		}
		return c.SetWalletMintCap(owner, data.New)

	case EventWithdrawn:
		// The native send already happened; only the held balance moves.
		c.mu.Lock()
		c.held.Clear()
		c.mu.Unlock()
		return nil

	default:
		return fmt.Errorf("unknown event type %q", event.Type)
	}
}

func parseUnits(s string) (*uint256.Int, error) {
	if s == "" {
		return new(uint256.Int), nil
	}
	return uint256.FromDecimal(s)
}
