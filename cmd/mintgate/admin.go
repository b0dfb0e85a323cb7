package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-mintgate/token"
)

// adminCall loads an instance and runs one owner operation against it.
func adminCall(cfg settings, id string, op func(*token.Controller) error) error {
	stream, err := resolveStream(cfg, id)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	controller, _, err := loadInstance(context.Background(), store, stream)
	if err != nil {
		return err
	}

	return op(controller)
}

func setPrice(cfg settings, args []string) error {
	fs := flag.NewFlagSet("set-price", flag.ExitOnError)
	id := fs.String("id", "", "Token instance ID")
	caller := fs.String("caller", "", "Calling wallet (must be the owner)")
	price := fs.String("price", "", "New price in base units per whole token")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mintgate set-price -caller <owner> -price <units> [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	units, err := uint256.FromDecimal(*price)
	if err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}

	return adminCall(cfg, *id, func(c *token.Controller) error {
		if err := c.SetPrice(*caller, units); err != nil {
			return err
		}
		fmt.Printf("Price set to %s\n", units.Dec())
		return nil
	})
}

func setMintOpen(cfg settings, args []string) error {
	fs := flag.NewFlagSet("set-mint-open", flag.ExitOnError)
	id := fs.String("id", "", "Token instance ID")
	caller := fs.String("caller", "", "Calling wallet (must be the owner)")
	open := fs.Bool("open", false, "Whether minting is open")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mintgate set-mint-open -caller <owner> -open=<bool> [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	return adminCall(cfg, *id, func(c *token.Controller) error {
		if err := c.SetMintOpen(*caller, *open); err != nil {
			return err
		}
		fmt.Printf("Mint open: %t\n", *open)
		return nil
	})
}

func setTransfers(cfg settings, args []string) error {
	fs := flag.NewFlagSet("set-transfers", flag.ExitOnError)
	id := fs.String("id", "", "Token instance ID")
	caller := fs.String("caller", "", "Calling wallet (must be the owner)")
	enabled := fs.Bool("enabled", false, "Whether transfers are enabled")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mintgate set-transfers -caller <owner> -enabled=<bool> [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	return adminCall(cfg, *id, func(c *token.Controller) error {
		if err := c.SetTransfersEnabled(*caller, *enabled); err != nil {
			return err
		}
		fmt.Printf("Transfers enabled: %t\n", *enabled)
		return nil
	})
}

func setWalletCap(cfg settings, args []string) error {
	fs := flag.NewFlagSet("set-wallet-cap", flag.ExitOnError)
	id := fs.String("id", "", "Token instance ID")
	caller := fs.String("caller", "", "Calling wallet (must be the owner)")
	walletCap := fs.Uint64("cap", 0, "Per-wallet mint cap in whole tokens (0 = unlimited)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mintgate set-wallet-cap -caller <owner> -cap <whole> [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	return adminCall(cfg, *id, func(c *token.Controller) error {
		if err := c.SetWalletMintCap(*caller, *walletCap); err != nil {
			return err
		}
		fmt.Printf("Wallet mint cap: %d\n", *walletCap)
		return nil
	})
}

func withdraw(cfg settings, args []string) error {
	fs := flag.NewFlagSet("withdraw", flag.ExitOnError)
	id := fs.String("id", "", "Token instance ID")
	caller := fs.String("caller", "", "Calling wallet (must be the owner)")
	destination := fs.String("to", "", "Destination wallet for the held balance")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate withdraw -caller <owner> -to <wallet> [options]

Clear the held balance and log a payout instruction for the operator to
settle out of band. This command has no native chain attached, so no
currency moves here; the instruction carries the destination and amount.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	return adminCall(cfg, *id, func(c *token.Controller) error {
		// No native chain locally; the send is recorded as a payout
		// instruction for the operator to settle out of band.
		var payout *uint256.Int
		c.SetSendFunc(func(destination string, amount *uint256.Int) error {
			payout = amount
			logger.Info().Str("destination", destination).Str("amount", amount.Dec()).Msg("payout instruction")
			return nil
		})
		if err := c.Withdraw(*caller, *destination); err != nil {
			return err
		}
		fmt.Printf("Held balance cleared; payout of %s to %s left for the operator\n", payout.Dec(), *destination)
		return nil
	})
}
