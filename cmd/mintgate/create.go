package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-mintgate/eventsource"
	"github.com/pflow-xyz/go-mintgate/token"
)

func create(cfg settings, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	name := fs.String("name", "", "Token name")
	symbol := fs.String("symbol", "", "Token symbol")
	price := fs.String("price", "0", "Mint price in base units per whole token")
	maxSupply := fs.Uint64("max-supply", 0, "Supply cap in whole tokens")
	walletCap := fs.Uint64("wallet-cap", 0, "Per-wallet mint cap in whole tokens (0 = unlimited)")
	owner := fs.String("owner", "", "Owner wallet")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate create [options]

Create a token instance and print its ID.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  mintgate create -name "Mintgate Token" -symbol MGT -price 1000 -max-supply 1000000 -owner alice
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	priceUnits, err := uint256.FromDecimal(*price)
	if err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}

	tokenCfg := token.Config{
		Name:           *name,
		Symbol:         *symbol,
		PriceBaseUnits: priceUnits,
		MaxSupplyWhole: *maxSupply,
		WalletCapWhole: *walletCap,
		Owner:          *owner,
	}
	if err := tokenCfg.Validate(); err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	stream := uuid.New().String()
	created, err := eventsource.NewEvent(stream, token.EventCreated, tokenCfg)
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	if _, err := store.Append(context.Background(), stream, -1, []*eventsource.Event{created}); err != nil {
		return fmt.Errorf("append created event: %w", err)
	}

	logger.Info().Str("id", stream).Str("symbol", tokenCfg.Symbol).Msg("token created")
	fmt.Printf("ID:  %s\n", stream)
	fmt.Printf("CID: %s\n", tokenCfg.CID())
	return nil
}
