package wallet

import (
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adityajha77/nebula-web-wallet/internal/config"
	"github.com/adityajha77/nebula-web-wallet/internal/models"
)

// ProgressCallback is called during batch generation to report progress.
type ProgressCallback func(network models.Network, generated int, total int)

// GenerateKeyPair derives the simulated key pair for a mnemonic and wallet index.
// The result is a pure function of its arguments.
func GenerateKeyPair(mnemonic string, index int, network models.Network) (models.KeyPair, error) {
	profile, err := addressProfile(network)
	if err != nil {
		return models.KeyPair{}, err
	}

	seed := HashString(mnemonic + strconv.Itoa(index))

	publicKey, err := Encode(seed, profile)
	if err != nil {
		return models.KeyPair{}, fmt.Errorf("encode %s public key at index %d: %w", network, index, err)
	}

	// Private keys use the same profile on every network.
	privateKey, err := Encode(seed, PrivateKey)
	if err != nil {
		return models.KeyPair{}, fmt.Errorf("encode %s private key at index %d: %w", network, index, err)
	}

	return models.KeyPair{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}, nil
}

// Generator derives wallets for one mnemonic on one network.
type Generator struct {
	mnemonic string
	network  models.Network
}

// NewGenerator binds a mnemonic to a network. The network is not checked
// here; Generate reports ErrUnsupportedNetwork.
func NewGenerator(mnemonic string, network models.Network) *Generator {
	return &Generator{mnemonic: mnemonic, network: network}
}

// Network returns the network the generator derives for.
func (g *Generator) Network() models.Network {
	return g.network
}

// Generate derives the key pair at index.
func (g *Generator) Generate(index int) (models.KeyPair, error) {
	return GenerateKeyPair(g.mnemonic, index, g.network)
}

// GenerateKeyPairs derives key pairs for indices 0 to count-1.
// Uses runtime.NumCPU() parallel workers; the result is ordered by index.
func GenerateKeyPairs(mnemonic string, network models.Network, count int, progress ProgressCallback) ([]models.KeyPair, error) {
	if _, err := addressProfile(network); err != nil {
		return nil, err
	}
	if count <= 0 {
		return []models.KeyPair{}, nil
	}

	numWorkers := runtime.NumCPU()
	slog.Info("generating key pairs",
		"network", network,
		"count", count,
		"workers", numWorkers,
	)
	start := time.Now()

	pairs := make([]models.KeyPair, count)
	var done atomic.Int64
	var firstErr atomic.Value

	var wg sync.WaitGroup
	chunkSize := (count + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		chunkStart := w * chunkSize
		chunkEnd := chunkStart + chunkSize
		if chunkEnd > count {
			chunkEnd = count
		}
		if chunkStart >= count {
			break
		}

		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			for i := from; i < to; i++ {
				// Stop early if another worker hit an error.
				if firstErr.Load() != nil {
					return
				}

				kp, err := GenerateKeyPair(mnemonic, i, network)
				if err != nil {
					firstErr.CompareAndSwap(nil, fmt.Errorf("generate %s key pair at index %d: %w", network, i, err))
					return
				}
				pairs[i] = kp

				if n := done.Add(1); progress != nil && n%config.ProgressInterval == 0 {
					progress(network, int(n), count)
				}
			}
		}(chunkStart, chunkEnd)
	}

	wg.Wait()

	if errVal := firstErr.Load(); errVal != nil {
		return nil, errVal.(error)
	}

	slog.Info("key pair generation complete",
		"network", network,
		"count", len(pairs),
		"workers", numWorkers,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return pairs, nil
}
