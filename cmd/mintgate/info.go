package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func info(cfg settings, args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	id := fs.String("id", "", "Token instance ID")
	wallet := fs.String("wallet", "", "Also show this wallet's balance and mint quota")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate info [options]

Show a token instance's configuration and supply.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
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

	fmt.Printf("Name:              %s\n", controller.Name())
	fmt.Printf("Symbol:            %s\n", controller.Symbol())
	fmt.Printf("Decimals:          %d\n", controller.Decimals())
	fmt.Printf("Owner:             %s\n", controller.Owner())
	fmt.Printf("Price:             %s\n", controller.PriceBaseUnits().Dec())
	fmt.Printf("Mint open:         %t\n", controller.MintOpen())
	fmt.Printf("Transfers enabled: %t\n", controller.TransfersEnabled())
	fmt.Printf("Wallet mint cap:   %d\n", controller.WalletMintCap())
	fmt.Printf("Total supply:      %s\n", controller.TotalSupply().Dec())
	fmt.Printf("Max supply:        %s\n", controller.MaxSupply().Dec())
	fmt.Printf("Tokens left:       %d\n", controller.TokensLeftWhole())
	fmt.Printf("Held balance:      %s\n", controller.HeldBalance().Dec())

	if *wallet != "" {
		fmt.Printf("\nWallet %s:\n", *wallet)
		fmt.Printf("  Balance:      %s\n", controller.BalanceOf(*wallet).Dec())
		fmt.Printf("  Minted whole: %d\n", controller.MintedWhole(*wallet))
	}
	return nil
}
