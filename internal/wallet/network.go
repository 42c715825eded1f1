package wallet

import (
	"fmt"
	"strings"

	"github.com/adityajha77/nebula-web-wallet/internal/models"
)

// ParseNetwork converts user input into a supported network.
func ParseNetwork(s string) (models.Network, error) {
	network := models.Network(strings.ToLower(strings.TrimSpace(s)))
	if !IsSupportedNetwork(network) {
		return "", fmt.Errorf("network %q: %w", s, ErrUnsupportedNetwork)
	}
	return network, nil
}

// IsSupportedNetwork checks if the network is one of the supported networks.
func IsSupportedNetwork(network models.Network) bool {
	for _, n := range models.AllNetworks {
		if n == network {
			return true
		}
	}
	return false
}

// addressProfile returns the public key profile for a network.
func addressProfile(network models.Network) (Profile, error) {
	switch network {
	case models.NetworkSolana:
		return SolanaAddress, nil
	case models.NetworkEthereum:
		return EthereumAddress, nil
	default:
		return Profile{}, fmt.Errorf("network %q: %w", network, ErrUnsupportedNetwork)
	}
}
