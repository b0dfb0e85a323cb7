package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/holiman/uint256"
)

func mint(cfg settings, args []string) error {
	fs := flag.NewFlagSet("mint", flag.ExitOnError)
	id := fs.String("id", "", "Token instance ID")
	wallet := fs.String("wallet", "", "Minting wallet")
	amount := fs.Uint64("amount", 0, "Amount in whole tokens")
	payment := fs.String("payment", "0", "Attached payment in base units")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate mint [options]

Mint tokens to a wallet. The payment must equal price times amount exactly.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  mintgate mint -id <token> -wallet alice -amount 5 -payment 5000
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *wallet == "" {
		return fmt.Errorf("minting wallet required: pass -wallet")
	}
	paymentUnits, err := uint256.FromDecimal(*payment)
	if err != nil {
		return fmt.Errorf("invalid payment: %w", err)
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

	if err := controller.Mint(*wallet, *amount, paymentUnits); err != nil {
		return err
	}

	logger.Info().Str("wallet", *wallet).Uint64("amount", *amount).Msg("minted")
	fmt.Printf("Minted %d to %s (balance: %s, tokens left: %d)\n",
		*amount, *wallet, controller.BalanceOf(*wallet).Dec(), controller.TokensLeftWhole())
	return nil
}
