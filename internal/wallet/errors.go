package wallet

import "errors"

var (
	ErrUnsupportedNetwork = errors.New("unsupported network")
	ErrInvalidMnemonic    = errors.New("invalid mnemonic")
	ErrMalformedSeed      = errors.New("malformed seed")
	ErrInvalidProfile     = errors.New("invalid encoding profile")
)
