package config

import "errors"

// Sentinel errors for internal use.
var (
	ErrInvalidConfig       = errors.New("invalid config")
	ErrMissingSessionState = errors.New("missing session state")
	ErrNoWallets           = errors.New("no wallets generated")
	ErrWalletNotFound      = errors.New("wallet not found")
)

// Error codes shared with the UI via API responses.
const (
	ErrorUnsupportedNetwork  = "ERROR_UNSUPPORTED_NETWORK"
	ErrorInvalidMnemonic     = "ERROR_INVALID_MNEMONIC"
	ErrorMissingSessionState = "ERROR_MISSING_SESSION_STATE"
	ErrorNoWallets           = "ERROR_NO_WALLETS"
	ErrorWalletNotFound      = "ERROR_WALLET_NOT_FOUND"
	ErrorWalletGeneration    = "ERROR_WALLET_GENERATION"
	ErrorPhraseGeneration    = "ERROR_PHRASE_GENERATION"
	ErrorExportFailed        = "ERROR_EXPORT_FAILED"
	ErrorDatabase            = "ERROR_DATABASE"
	ErrorInvalidRequest      = "ERROR_INVALID_REQUEST"
	ErrorRateLimited         = "ERROR_RATE_LIMITED"
	ErrorForbidden           = "ERROR_FORBIDDEN"
)
