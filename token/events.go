package token

// Event types recorded by the controller. Together they are sufficient to
// reconstruct an instance by replay.
const (
	EventCreated                 = "created"
	EventMinted                  = "minted"
	EventTransferred             = "transferred"
	EventApproved                = "approved"
	EventBurned                  = "burned"
	EventPriceChanged            = "price_changed"
	EventMintOpenChanged         = "mint_open_changed"
	EventTransfersEnabledChanged = "transfers_enabled_changed"
	EventWalletCapChanged        = "wallet_cap_changed"
	EventWithdrawn               = "withdrawn"
)

// Sink receives events as they are emitted. Record must not fail the
// emitting operation; implementations handle their own persistence errors.
type Sink interface {
	Record(eventType string, data any)
}

// MintedData records a successful mint.
type MintedData struct {
	Wallet      string `json:"wallet"`
	AmountWhole uint64 `json:"amount_whole"`
	Payment     string `json:"payment"`
}

// TransferredData records a wallet-to-wallet move in smallest units.
// Spender is set when the move consumed an allowance.
type TransferredData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Amount  string `json:"amount"`
	Spender string `json:"spender,omitempty"`
}

// ApprovedData records an allowance grant in smallest units.
type ApprovedData struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

// BurnedData records a destruction of units.
type BurnedData struct {
	Wallet string `json:"wallet"`
	Amount string `json:"amount"`
}

// PriceChangedData records a price change with old and new values.
type PriceChangedData struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// ToggleData records the new value of a boolean switch.
type ToggleData struct {
	New bool `json:"new"`
}

// WalletCapChangedData records a wallet cap change with old and new values.
type WalletCapChangedData struct {
	Old uint64 `json:"old"`
	New uint64 `json:"new"`
}

// WithdrawnData records a withdrawal of the held native balance.
type WithdrawnData struct {
	Destination string `json:"destination"`
	Amount      string `json:"amount"`
}
