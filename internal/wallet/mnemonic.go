package wallet

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// NewMnemonic generates a BIP-39 phrase from strength bits of entropy
// (128 bits yields 12 words).
func NewMnemonic(strength int) (string, error) {
	entropy, err := bip39.NewEntropy(strength)
	if err != nil {
		return "", fmt.Errorf("generate entropy (%d bits): %w", strength, err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("encode mnemonic: %w", err)
	}

	slog.Debug("mnemonic generated", "wordCount", len(strings.Fields(mnemonic)))
	return mnemonic, nil
}

// ValidateMnemonic checks a phrase against the BIP-39 English wordlist and checksum.
// The key generator itself never validates; only the flow does before
// accepting a phrase.
func ValidateMnemonic(mnemonic string) error {
	if !bip39.IsMnemonicValid(mnemonic) {
		return fmt.Errorf("validate mnemonic: %w", ErrInvalidMnemonic)
	}

	slog.Debug("mnemonic validated", "wordCount", len(strings.Fields(mnemonic)))
	return nil
}

// ReadMnemonicFromFile reads a mnemonic from a file, trims whitespace, and validates it.
func ReadMnemonicFromFile(path string) (string, error) {
	slog.Info("reading mnemonic from file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read mnemonic file %q: %w", path, err)
	}

	mnemonic := strings.TrimSpace(string(data))
	if mnemonic == "" {
		return "", fmt.Errorf("mnemonic file %q is empty: %w", path, ErrInvalidMnemonic)
	}

	if err := ValidateMnemonic(mnemonic); err != nil {
		return "", fmt.Errorf("mnemonic file %q: %w", path, err)
	}

	return mnemonic, nil
}
