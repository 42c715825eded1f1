package wallet

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Base58Alphabet is the Bitcoin/Solana base58 symbol set (no 0, O, I, l).
	Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	// HexAlphabet is the lowercase hexadecimal digit set.
	HexAlphabet = "0123456789abcdef"
)

// Profile describes one address-like output format.
type Profile struct {
	Name     string
	Alphabet string
	Length   int
	Prefix   string
	// IndexAddend adds the loop index to every step, used by private keys.
	IndexAddend bool
}

var (
	SolanaAddress = Profile{
		Name:     "solana-address",
		Alphabet: Base58Alphabet,
		Length:   44,
	}
	EthereumAddress = Profile{
		Name:     "ethereum-address",
		Alphabet: HexAlphabet,
		Length:   40,
		Prefix:   "0x",
	}
	PrivateKey = Profile{
		Name:        "private-key",
		Alphabet:    HexAlphabet,
		Length:      64,
		IndexAddend: true,
	}
)

// Encode expands a hex seed into a string of p.Length symbols from p.Alphabet.
//
// Each step emits alphabet[n mod base], then sets
// n = n/base + digit(seedHex[i mod len(seedHex)]) (+ i for IndexAddend).
func Encode(seedHex string, p Profile) (string, error) {
	if p.Alphabet == "" || p.Length <= 0 {
		return "", fmt.Errorf("profile %q: %w", p.Name, ErrInvalidProfile)
	}

	n, err := strconv.ParseUint(seedHex, 16, 64)
	if err != nil {
		return "", fmt.Errorf("parse seed %q: %w", seedHex, ErrMalformedSeed)
	}

	digits := make([]uint64, len(seedHex))
	for i := 0; i < len(seedHex); i++ {
		d, ok := hexDigit(seedHex[i])
		if !ok {
			return "", fmt.Errorf("seed %q digit %d: %w", seedHex, i, ErrMalformedSeed)
		}
		digits[i] = d
	}

	base := uint64(len(p.Alphabet))

	var b strings.Builder
	b.Grow(len(p.Prefix) + p.Length)
	b.WriteString(p.Prefix)

	for i := 0; i < p.Length; i++ {
		b.WriteByte(p.Alphabet[n%base])

		n = n/base + digits[i%len(digits)]
		if p.IndexAddend {
			n += uint64(i)
		}
	}

	return b.String(), nil
}

func hexDigit(c byte) (uint64, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint64(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint64(c-'A') + 10, true
	default:
		return 0, false
	}
}
