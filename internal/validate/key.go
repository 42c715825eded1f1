package validate

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"

	"github.com/adityajha77/nebula-web-wallet/internal/models"
	"github.com/adityajha77/nebula-web-wallet/internal/wallet"
)

const (
	solanaKeyLen = 44
	// A 44-symbol base58 string decodes to 32 bytes at minimum and to 44
	// bytes when every symbol is the zero digit '1'.
	solanaMinDecoded = 32
	solanaMaxDecoded = 44
)

// privateKeyRegex matches 64 lowercase hex chars.
var privateKeyRegex = regexp.MustCompile(`^[0-9a-f]{64}$`)

// PublicKey validates that key is well-formed for the given network.
func PublicKey(network models.Network, key string) error {
	slog.Debug("validating public key",
		"network", network,
		"publicKey", key,
	)

	switch network {
	case models.NetworkSolana:
		return validateSolana(key)
	case models.NetworkEthereum:
		return validateEthereum(key)
	default:
		return fmt.Errorf("validate public key for %q: %w", network, wallet.ErrUnsupportedNetwork)
	}
}

// PrivateKey validates the 64 hex char private key format shared by all networks.
func PrivateKey(key string) error {
	if !privateKeyRegex.MatchString(key) {
		return fmt.Errorf("invalid private key: must be 64 lowercase hex characters, got %d characters", len(key))
	}
	return nil
}

// validateSolana requires 44 symbols that decode as base58.
func validateSolana(key string) error {
	if len(key) != solanaKeyLen {
		return fmt.Errorf("invalid Solana public key %q: must be %d characters, got %d", key, solanaKeyLen, len(key))
	}
	decoded, err := base58.Decode(key)
	if err != nil {
		return fmt.Errorf("invalid Solana public key %q: %w", key, err)
	}
	if n := len(decoded); n < solanaMinDecoded || n > solanaMaxDecoded {
		return fmt.Errorf("invalid Solana public key %q: decoded to %d bytes", key, n)
	}
	return nil
}

// validateEthereum requires the lowercase 0x form produced by the generator.
// Checksummed and 0X-prefixed addresses are rejected.
func validateEthereum(key string) error {
	if !strings.HasPrefix(key, "0x") || !common.IsHexAddress(key) {
		return fmt.Errorf("invalid Ethereum public key %q: must be 0x + 40 hex characters", key)
	}
	if key != strings.ToLower(key) {
		return fmt.Errorf("invalid Ethereum public key %q: must be lowercase", key)
	}
	return nil
}
