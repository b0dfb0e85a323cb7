package token

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
)

// Decimals is the fixed exponent between whole tokens and smallest units:
// one whole token is 10^18 smallest units.
const Decimals = 18

// unitScale is 10^Decimals.
var unitScale = uint256.MustFromDecimal("1000000000000000000")

// Config holds the construction parameters of a token controller.
type Config struct {
	// Name and Symbol identify the token.
	Name   string `json:"name"`
	Symbol string `json:"symbol"`

	// PriceBaseUnits is the mint price in base-currency smallest units per
	// whole token. Zero makes minting free. Nil is treated as zero.
	PriceBaseUnits *uint256.Int `json:"price_base_units"`

	// MaxSupplyWhole is the hard supply ceiling in whole tokens. Must be
	// greater than zero.
	MaxSupplyWhole uint64 `json:"max_supply_whole"`

	// WalletCapWhole limits how many whole tokens a single wallet may mint
	// cumulatively. Zero means unlimited.
	WalletCapWhole uint64 `json:"wallet_cap_whole"`

	// Owner is the wallet entitled to admin operations. Must be non-empty.
	Owner string `json:"owner"`
}

// Validate checks the construction parameters.
func (c Config) Validate() error {
	if c.MaxSupplyWhole == 0 {
		return fmt.Errorf("%w: max supply must be greater than zero", ErrInvalidConfig)
	}
	if c.Owner == "" {
		return fmt.Errorf("%w: owner must be set", ErrInvalidConfig)
	}
	if _, overflow := maxSupplyUnits(c.MaxSupplyWhole); overflow {
		return fmt.Errorf("%w: max supply does not fit in smallest units", ErrInvalidConfig)
	}
	return nil
}

// CID computes a content-addressed identifier for this configuration.
// Any change to a construction parameter changes the CID.
func (c Config) CID() string {
	normalized := struct {
		Name           string `json:"name"`
		Symbol         string `json:"symbol"`
		Price          string `json:"price"`
		MaxSupplyWhole uint64 `json:"max_supply_whole"`
		WalletCapWhole uint64 `json:"wallet_cap_whole"`
		Owner          string `json:"owner"`
	}{
		Name:           c.Name,
		Symbol:         c.Symbol,
		Price:          c.price().Dec(),
		MaxSupplyWhole: c.MaxSupplyWhole,
		WalletCapWhole: c.WalletCapWhole,
		Owner:          c.Owner,
	}

	data, err := json.Marshal(normalized)
	if err != nil {
		return ""
	}

	hash := sha256.Sum256(data)
	return "cid:" + hex.EncodeToString(hash[:])
}

// price returns the configured price, treating nil as zero.
func (c Config) price() *uint256.Int {
	if c.PriceBaseUnits == nil {
		return new(uint256.Int)
	}
	return c.PriceBaseUnits.Clone()
}

// maxSupplyUnits converts a whole-token cap to smallest units.
func maxSupplyUnits(maxSupplyWhole uint64) (*uint256.Int, bool) {
	return new(uint256.Int).MulOverflow(unitScale, uint256.NewInt(maxSupplyWhole))
}

// wholeToUnits converts a whole-token amount to smallest units, reporting
// overflow instead of wrapping.
func wholeToUnits(amountWhole uint64) (*uint256.Int, error) {
	units, overflow := new(uint256.Int).MulOverflow(unitScale, uint256.NewInt(amountWhole))
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	return units, nil
}
