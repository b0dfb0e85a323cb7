// Command mintgate manages gated-mint token instances. Each instance is an
// event stream in a SQLite database; commands rebuild the instance by
// replay, apply one operation, and append the resulting events.
package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

type settings struct {
	// DBPath is the SQLite database holding all token streams.
	DBPath string `env:"MINTGATE_DB" envDefault:"mintgate.db"`

	// Stream is the default token instance ID, overridable with -id.
	Stream string `env:"MINTGATE_STREAM"`
}

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	cfg, err := env.ParseAs[settings]()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid environment")
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	run := func(fn func(settings, []string) error) {
		if err := fn(cfg, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	switch command {
	case "create":
		run(create)
	case "info":
		run(info)
	case "mint":
		run(mint)
	case "transfer":
		run(transfer)
	case "approve":
		run(approve)
	case "burn":
		run(burn)
	case "set-price":
		run(setPrice)
	case "set-mint-open":
		run(setMintOpen)
	case "set-transfers":
		run(setTransfers)
	case "set-wallet-cap":
		run(setWalletCap)
	case "withdraw":
		run(withdraw)
	case "events":
		run(events)
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("mintgate version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mintgate - gated-mint token ledger

Usage: mintgate <command> [options]

Commands:
  create          Create a token instance
  info            Show an instance's configuration and balances
  mint            Mint tokens to a wallet against an attached payment
  transfer        Transfer tokens between wallets
  approve         Approve an allowance for a spender
  burn            Burn tokens from a wallet
  set-price       Set the mint price (owner only)
  set-mint-open   Open or pause minting (owner only)
  set-transfers   Enable or disable transfers (owner only)
  set-wallet-cap  Set the per-wallet mint cap (owner only)
  withdraw        Clear the held balance, logging a payout instruction (owner only)
  events          Show an instance's event stream
  help            Show this help
  version         Show version

Environment:
  MINTGATE_DB      SQLite database path (default: mintgate.db)
  MINTGATE_STREAM  Default token instance ID

Run 'mintgate <command> -h' for command options.`)
}
