package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/holiman/uint256"
)

func transfer(cfg settings, args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	id := fs.String("id", "", "Token instance ID")
	from := fs.String("from", "", "Source wallet")
	to := fs.String("to", "", "Destination wallet")
	amount := fs.String("amount", "", "Amount in smallest units")
	spender := fs.String("spender", "", "Spend from an allowance instead of the source wallet")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate transfer [options]

Transfer tokens between wallets. Fails while transfers are disabled.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	units, err := uint256.FromDecimal(*amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	stream, err := resolveStream(cfg, *id)
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

	if *spender != "" {
		err = controller.TransferFrom(*spender, *from, *to, units)
	} else {
		err = controller.Transfer(*from, *to, units)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Transferred %s from %s to %s\n", units.Dec(), *from, *to)
	return nil
}

func approve(cfg settings, args []string) error {
	fs := flag.NewFlagSet("approve", flag.ExitOnError)
	id := fs.String("id", "", "Token instance ID")
	owner := fs.String("owner", "", "Balance owner")
	spender := fs.String("spender", "", "Approved spender")
	amount := fs.String("amount", "", "Allowance in smallest units")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate approve [options]

Set a spender's allowance over a wallet's balance.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	units, err := uint256.FromDecimal(*amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	stream, err := resolveStream(cfg, *id)
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

	if err := controller.Approve(*owner, *spender, units); err != nil {
		return err
	}

	fmt.Printf("Approved %s for %s over %s\n", units.Dec(), *spender, *owner)
	return nil
}

func burn(cfg settings, args []string) error {
	fs := flag.NewFlagSet("burn", flag.ExitOnError)
	id := fs.String("id", "", "Token instance ID")
	wallet := fs.String("wallet", "", "Wallet to burn from")
	amount := fs.String("amount", "", "Amount in smallest units")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate burn [options]

Burn tokens from a wallet, reducing total supply. Burning does not give
back wallet mint quota.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	units, err := uint256.FromDecimal(*amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	stream, err := resolveStream(cfg, *id)
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

	if err := controller.Burn(*wallet, units); err != nil {
		return err
	}

	fmt.Printf("Burned %s from %s (total supply: %s)\n", units.Dec(), *wallet, controller.TotalSupply().Dec())
	return nil
}
