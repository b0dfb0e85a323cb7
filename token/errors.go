package token

import "errors"

var (
	// Configuration and access errors
	ErrInvalidConfig = errors.New("token: invalid configuration")
	ErrUnauthorized  = errors.New("token: caller is not the owner")

	// Mint guard errors
	ErrMintingPaused     = errors.New("token: minting is paused")
	ErrInvalidAmount     = errors.New("token: amount must be greater than zero")
	ErrWalletCapExceeded = errors.New("token: wallet mint cap exceeded")
	ErrIncorrectPayment  = errors.New("token: payment must equal price times amount")
	ErrCapExceeded       = errors.New("token: max supply exceeded")

	// Arithmetic and gating errors
	ErrArithmeticOverflow = errors.New("token: arithmetic overflow")
	ErrTransfersDisabled  = errors.New("token: transfers are disabled")
	ErrReentrancyBlocked  = errors.New("token: reentrant call blocked")

	// Withdraw and payment-path errors
	ErrInvalidDestination = errors.New("token: invalid destination")
	ErrTransferFailed     = errors.New("token: native transfer failed")
	ErrDirectPayment      = errors.New("token: direct payments not accepted, call Mint")
)
