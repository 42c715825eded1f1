package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/adityajha77/nebula-web-wallet/internal/config"
	"github.com/adityajha77/nebula-web-wallet/internal/models"
	"github.com/adityajha77/nebula-web-wallet/internal/validate"
	"github.com/adityajha77/nebula-web-wallet/internal/wallet"
)

// Store is the key/value persistence the session needs. *db.DB satisfies it.
type Store interface {
	AllState() (map[string]string, error)
	SetStates(values map[string]string) error
	ClearState() (int64, error)
}

// Service drives the select network → recovery phrase → dashboard flow on
// top of a Store. All mutations are serialised.
type Service struct {
	mu       sync.Mutex
	store    Store
	strength int
	newID    func() string
}

// NewService creates a session service that generates phrases of the given
// entropy strength in bits.
func NewService(store Store, strength int) *Service {
	return &Service{
		store:    store,
		strength: strength,
		newID:    uuid.NewString,
	}
}

// State loads the current session snapshot.
func (s *Service) State() (models.SessionState, error) {
	return s.load()
}

// Summary returns the public view of the current session.
func (s *Service) Summary() (models.SessionSummary, error) {
	state, err := s.load()
	if err != nil {
		return models.SessionSummary{}, err
	}
	return state.Summary(), nil
}

// SelectNetwork starts a new session on network. Any prior phrase and
// wallet list are discarded. darkMode is stored only when non-nil.
func (s *Service) SelectNetwork(input string, darkMode *bool) (models.SessionState, error) {
	network, err := wallet.ParseNetwork(input)
	if err != nil {
		return models.SessionState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values := map[string]string{
		config.KeySelectedNetwork: string(network),
		config.KeySecretKey:       "",
		config.KeyWallets:         "",
	}
	if darkMode != nil {
		values[config.KeyDarkMode] = strconv.FormatBool(*darkMode)
	}

	if err := s.store.SetStates(values); err != nil {
		return models.SessionState{}, fmt.Errorf("select network: %w", err)
	}

	slog.Info("network selected", "network", network)
	return s.load()
}

// NewRecoveryPhrase returns a fresh mnemonic for the selected network. The
// phrase is not stored until AcknowledgePhrase.
func (s *Service) NewRecoveryPhrase() (string, error) {
	state, err := s.load()
	if err != nil {
		return "", err
	}
	if !state.HasNetwork() {
		return "", fmt.Errorf("no network selected: %w", config.ErrMissingSessionState)
	}

	mnemonic, err := wallet.NewMnemonic(s.strength)
	if err != nil {
		return "", fmt.Errorf("generate recovery phrase: %w", err)
	}

	slog.Debug("recovery phrase generated", "network", state.Network, "words", len(strings.Fields(mnemonic)))
	return mnemonic, nil
}

// AcknowledgePhrase validates and stores mnemonic as the session's recovery
// phrase. Replacing a different phrase clears the wallet list, since those
// wallets belong to the old phrase.
func (s *Service) AcknowledgePhrase(mnemonic string) error {
	mnemonic = normalizePhrase(mnemonic)
	if err := wallet.ValidateMnemonic(mnemonic); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	if !state.HasNetwork() {
		return fmt.Errorf("no network selected: %w", config.ErrMissingSessionState)
	}

	values := map[string]string{config.KeySecretKey: mnemonic}
	if state.HasMnemonic() && state.Mnemonic != mnemonic {
		values[config.KeyWallets] = ""
	}

	if err := s.store.SetStates(values); err != nil {
		return fmt.Errorf("store recovery phrase: %w", err)
	}

	slog.Info("recovery phrase acknowledged", "network", state.Network, "walletsCleared", len(values) > 1)
	return nil
}

// GenerateWallet derives the next wallet (index = current wallet count) and
// appends it to the stored list.
func (s *Service) GenerateWallet() (models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.requireDashboard()
	if err != nil {
		return models.Wallet{}, err
	}

	index := len(state.Wallets)
	pair, err := wallet.GenerateKeyPair(state.Mnemonic, index, state.Network)
	if err != nil {
		return models.Wallet{}, fmt.Errorf("generate wallet %d: %w", index, err)
	}

	w := models.Wallet{
		ID:         s.newID(),
		PublicKey:  pair.PublicKey,
		PrivateKey: pair.PrivateKey,
		Index:      index,
	}

	if err := s.saveWallets(append(state.Wallets, w)); err != nil {
		return models.Wallet{}, err
	}

	slog.Info("wallet generated",
		"network", state.Network,
		"index", index,
		"id", w.ID,
		"publicKey", w.PublicKey,
	)
	return w, nil
}

// Wallets returns the stored wallets in insertion order.
func (s *Service) Wallets() ([]models.Wallet, error) {
	state, err := s.requireDashboard()
	if err != nil {
		return nil, err
	}
	return state.Wallets, nil
}

// Wallet looks up a stored wallet by id.
func (s *Service) Wallet(id string) (models.Wallet, error) {
	wallets, err := s.Wallets()
	if err != nil {
		return models.Wallet{}, err
	}
	for _, w := range wallets {
		if w.ID == id {
			return w, nil
		}
	}
	return models.Wallet{}, fmt.Errorf("wallet %q: %w", id, config.ErrWalletNotFound)
}

// DeleteAllWallets clears the wallet list. The next wallet starts at index 0.
func (s *Service) DeleteAllWallets() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireDashboard(); err != nil {
		return err
	}
	if err := s.store.SetStates(map[string]string{config.KeyWallets: ""}); err != nil {
		return fmt.Errorf("delete wallets: %w", err)
	}

	slog.Info("all wallets deleted")
	return nil
}

// SetDarkMode stores the theme preference.
func (s *Service) SetDarkMode(dark bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SetStates(map[string]string{config.KeyDarkMode: strconv.FormatBool(dark)}); err != nil {
		return fmt.Errorf("set dark mode: %w", err)
	}
	return nil
}

// Export renders the plain-text export of the session and its file name.
func (s *Service) Export() (filename, content string, err error) {
	state, err := s.requireDashboard()
	if err != nil {
		return "", "", err
	}
	if len(state.Wallets) == 0 {
		return "", "", config.ErrNoWallets
	}

	slog.Info("wallets exported", "network", state.Network, "count", len(state.Wallets))
	return wallet.ExportFilename(state.Network), wallet.FormatExport(state.Network, state.Mnemonic, state.Wallets), nil
}

// ExportToDir writes the export file into dir and returns its path.
func (s *Service) ExportToDir(dir string) (string, error) {
	state, err := s.requireDashboard()
	if err != nil {
		return "", err
	}
	if len(state.Wallets) == 0 {
		return "", config.ErrNoWallets
	}
	return wallet.ExportToDir(dir, state.Network, state.Mnemonic, state.Wallets)
}

// StartOver clears all persisted state, including the theme.
func (s *Service) StartOver() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.store.ClearState()
	if err != nil {
		return fmt.Errorf("start over: %w", err)
	}

	slog.Info("session reset", "keysRemoved", n)
	return nil
}

// Verify re-derives every stored wallet and checks it against the stored
// record and the expected key formats.
func (s *Service) Verify() ([]models.VerifyResult, error) {
	state, err := s.requireDashboard()
	if err != nil {
		return nil, err
	}

	gen := wallet.NewGenerator(state.Mnemonic, state.Network)
	results := make([]models.VerifyResult, 0, len(state.Wallets))

	for pos, w := range state.Wallets {
		result := models.VerifyResult{Index: w.Index, ID: w.ID, OK: true}
		if problem := verifyWallet(gen, pos, w); problem != "" {
			result.OK = false
			result.Problem = problem
		}
		results = append(results, result)
	}

	return results, nil
}

func verifyWallet(gen *wallet.Generator, pos int, w models.Wallet) string {
	if w.Index != pos {
		return fmt.Sprintf("index %d stored at position %d", w.Index, pos)
	}
	if err := validate.PublicKey(gen.Network(), w.PublicKey); err != nil {
		return err.Error()
	}
	if err := validate.PrivateKey(w.PrivateKey); err != nil {
		return err.Error()
	}

	pair, err := gen.Generate(w.Index)
	if err != nil {
		return err.Error()
	}
	if pair.PublicKey != w.PublicKey {
		return "public key does not match re-derived key"
	}
	if pair.PrivateKey != w.PrivateKey {
		return "private key does not match re-derived key"
	}
	return ""
}

// requireDashboard loads the state and fails unless both network and phrase
// are present.
func (s *Service) requireDashboard() (models.SessionState, error) {
	state, err := s.load()
	if err != nil {
		return models.SessionState{}, err
	}
	if !state.HasNetwork() || !state.HasMnemonic() {
		return models.SessionState{}, fmt.Errorf("network and recovery phrase required: %w", config.ErrMissingSessionState)
	}
	return state, nil
}

func (s *Service) load() (models.SessionState, error) {
	values, err := s.store.AllState()
	if err != nil {
		return models.SessionState{}, fmt.Errorf("load session: %w", err)
	}

	state := models.SessionState{
		Network:  models.Network(values[config.KeySelectedNetwork]),
		Mnemonic: values[config.KeySecretKey],
		DarkMode: values[config.KeyDarkMode] == "true",
		Wallets:  []models.Wallet{},
	}

	if raw := values[config.KeyWallets]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &state.Wallets); err != nil {
			return models.SessionState{}, fmt.Errorf("decode stored wallets: %w", err)
		}
	}

	return state, nil
}

func (s *Service) saveWallets(wallets []models.Wallet) error {
	raw, err := json.Marshal(wallets)
	if err != nil {
		return fmt.Errorf("encode wallets: %w", err)
	}
	if err := s.store.SetStates(map[string]string{config.KeyWallets: string(raw)}); err != nil {
		return fmt.Errorf("save wallets: %w", err)
	}
	return nil
}

// normalizePhrase collapses runs of whitespace to single spaces.
func normalizePhrase(phrase string) string {
	return strings.Join(strings.Fields(phrase), " ")
}
