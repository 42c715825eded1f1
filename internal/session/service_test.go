package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/adityajha77/nebula-web-wallet/internal/config"
	"github.com/adityajha77/nebula-web-wallet/internal/db"
	"github.com/adityajha77/nebula-web-wallet/internal/models"
	"github.com/adityajha77/nebula-web-wallet/internal/wallet"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func newTestService(t *testing.T) (*Service, *db.DB) {
	t.Helper()

	d, err := db.New(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("db.New() error = %v", err)
	}
	t.Cleanup(func() { d.Close() })
	if err := d.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	svc := NewService(d, config.DefaultMnemonicStrength)
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return svc, d
}

func dashboardService(t *testing.T, network string) (*Service, *db.DB) {
	t.Helper()
	svc, d := newTestService(t)
	if _, err := svc.SelectNetwork(network, nil); err != nil {
		t.Fatalf("SelectNetwork() error = %v", err)
	}
	if err := svc.AcknowledgePhrase(testMnemonic); err != nil {
		t.Fatalf("AcknowledgePhrase() error = %v", err)
	}
	return svc, d
}

func TestSummary_Empty(t *testing.T) {
	svc, _ := newTestService(t)

	summary, err := svc.Summary()
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.Screen != models.ScreenSelect {
		t.Errorf("Screen = %q, want %q", summary.Screen, models.ScreenSelect)
	}
	if summary.HasRecoveryPhrase || summary.WalletCount != 0 || summary.DarkMode {
		t.Errorf("Summary() = %+v, want empty session", summary)
	}
}

func TestSelectNetwork(t *testing.T) {
	svc, d := newTestService(t)
	dark := true

	state, err := svc.SelectNetwork(" Solana ", &dark)
	if err != nil {
		t.Fatalf("SelectNetwork() error = %v", err)
	}
	if state.Network != models.NetworkSolana {
		t.Errorf("Network = %q, want solana", state.Network)
	}
	if !state.DarkMode {
		t.Error("DarkMode should be stored")
	}
	if state.Screen() != models.ScreenPhrase {
		t.Errorf("Screen() = %q, want phrase", state.Screen())
	}

	all, err := d.AllState()
	if err != nil || all[config.KeySelectedNetwork] != "solana" {
		t.Errorf("stored selectedNetwork = (%q, %v)", all[config.KeySelectedNetwork], err)
	}
}

func TestSelectNetwork_Unsupported(t *testing.T) {
	svc, d := newTestService(t)

	if _, err := svc.SelectNetwork("bitcoin", nil); !errors.Is(err, wallet.ErrUnsupportedNetwork) {
		t.Fatalf("SelectNetwork() error = %v, want ErrUnsupportedNetwork", err)
	}

	all, err := d.AllState()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("state = %v, want nothing stored", all)
	}
}

func TestSelectNetwork_DiscardsPriorSession(t *testing.T) {
	svc, _ := dashboardService(t, "solana")
	if _, err := svc.GenerateWallet(); err != nil {
		t.Fatal(err)
	}

	state, err := svc.SelectNetwork("ethereum", nil)
	if err != nil {
		t.Fatalf("SelectNetwork() error = %v", err)
	}
	if state.HasMnemonic() {
		t.Error("recovery phrase should be cleared")
	}
	if len(state.Wallets) != 0 {
		t.Errorf("wallets = %d, want 0", len(state.Wallets))
	}
}

func TestNewRecoveryPhrase(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.NewRecoveryPhrase(); !errors.Is(err, config.ErrMissingSessionState) {
		t.Fatalf("NewRecoveryPhrase() without network error = %v, want ErrMissingSessionState", err)
	}

	if _, err := svc.SelectNetwork("ethereum", nil); err != nil {
		t.Fatal(err)
	}

	phrase, err := svc.NewRecoveryPhrase()
	if err != nil {
		t.Fatalf("NewRecoveryPhrase() error = %v", err)
	}
	if words := len(strings.Fields(phrase)); words != 12 {
		t.Errorf("phrase has %d words, want 12", words)
	}
	if err := wallet.ValidateMnemonic(phrase); err != nil {
		t.Errorf("generated phrase invalid: %v", err)
	}

	state, err := svc.State()
	if err != nil {
		t.Fatal(err)
	}
	if state.HasMnemonic() {
		t.Error("phrase must not be stored before acknowledgement")
	}
}

func TestAcknowledgePhrase(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.AcknowledgePhrase(testMnemonic); !errors.Is(err, config.ErrMissingSessionState) {
		t.Fatalf("AcknowledgePhrase() without network error = %v, want ErrMissingSessionState", err)
	}

	if _, err := svc.SelectNetwork("solana", nil); err != nil {
		t.Fatal(err)
	}

	if err := svc.AcknowledgePhrase("not a real phrase"); !errors.Is(err, wallet.ErrInvalidMnemonic) {
		t.Fatalf("AcknowledgePhrase(invalid) error = %v, want ErrInvalidMnemonic", err)
	}

	if err := svc.AcknowledgePhrase("  " + strings.ReplaceAll(testMnemonic, " ", "   ") + "\n"); err != nil {
		t.Fatalf("AcknowledgePhrase() error = %v", err)
	}

	state, err := svc.State()
	if err != nil {
		t.Fatal(err)
	}
	if state.Mnemonic != testMnemonic {
		t.Errorf("stored mnemonic = %q, want normalized phrase", state.Mnemonic)
	}
	if state.Screen() != models.ScreenDashboard {
		t.Errorf("Screen() = %q, want dashboard", state.Screen())
	}
}

func TestAcknowledgePhrase_ReplacingClearsWallets(t *testing.T) {
	svc, _ := dashboardService(t, "solana")
	if _, err := svc.GenerateWallet(); err != nil {
		t.Fatal(err)
	}

	// Same phrase keeps wallets.
	if err := svc.AcknowledgePhrase(testMnemonic); err != nil {
		t.Fatal(err)
	}
	wallets, err := svc.Wallets()
	if err != nil {
		t.Fatal(err)
	}
	if len(wallets) != 1 {
		t.Fatalf("wallets = %d after re-acknowledging same phrase, want 1", len(wallets))
	}

	other, err := wallet.NewMnemonic(config.DefaultMnemonicStrength)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.AcknowledgePhrase(other); err != nil {
		t.Fatal(err)
	}
	wallets, err = svc.Wallets()
	if err != nil {
		t.Fatal(err)
	}
	if len(wallets) != 0 {
		t.Errorf("wallets = %d after new phrase, want 0", len(wallets))
	}
}

func TestGenerateWallet_MissingState(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.GenerateWallet(); !errors.Is(err, config.ErrMissingSessionState) {
		t.Fatalf("GenerateWallet() error = %v, want ErrMissingSessionState", err)
	}

	if _, err := svc.SelectNetwork("solana", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GenerateWallet(); !errors.Is(err, config.ErrMissingSessionState) {
		t.Fatalf("GenerateWallet() without phrase error = %v, want ErrMissingSessionState", err)
	}
}

func TestGenerateWallet_Sequence(t *testing.T) {
	svc, _ := dashboardService(t, "solana")

	first, err := svc.GenerateWallet()
	if err != nil {
		t.Fatalf("GenerateWallet() error = %v", err)
	}
	second, err := svc.GenerateWallet()
	if err != nil {
		t.Fatalf("GenerateWallet() error = %v", err)
	}

	if first.Index != 0 || second.Index != 1 {
		t.Errorf("indices = %d, %d, want 0, 1", first.Index, second.Index)
	}
	if first.ID != "id-1" || second.ID != "id-2" {
		t.Errorf("ids = %q, %q", first.ID, second.ID)
	}
	if first.PublicKey != "HZ2vw21115D3AA6CD111111115D3AA6CD111111115D3" {
		t.Errorf("first PublicKey = %q", first.PublicKey)
	}
	if second.PublicKey != "JZ2vw21115D3AA6CE111111115D3AA6CE111111115D3" {
		t.Errorf("second PublicKey = %q", second.PublicKey)
	}
	if first.PrivateKey != "cb6bc61b7c5d463ac12345678d6e574bd23456789e7f685ce3456789af80896d" {
		t.Errorf("first PrivateKey = %q", first.PrivateKey)
	}

	wallets, err := svc.Wallets()
	if err != nil {
		t.Fatal(err)
	}
	if len(wallets) != 2 || wallets[0] != first || wallets[1] != second {
		t.Errorf("Wallets() = %+v", wallets)
	}
}

func TestGenerateWallet_Ethereum(t *testing.T) {
	svc, _ := dashboardService(t, "ethereum")

	w, err := svc.GenerateWallet()
	if err != nil {
		t.Fatal(err)
	}
	if w.PublicKey != "0xcb5992c404c2995bc000000004c2995bc0000000" {
		t.Errorf("PublicKey = %q", w.PublicKey)
	}
}

func TestGenerateWallet_CorruptedNetwork(t *testing.T) {
	svc, d := dashboardService(t, "solana")
	if err := d.SetStates(map[string]string{config.KeySelectedNetwork: "bitcoin"}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GenerateWallet(); !errors.Is(err, wallet.ErrUnsupportedNetwork) {
		t.Fatalf("GenerateWallet() error = %v, want ErrUnsupportedNetwork", err)
	}

	state, err := svc.State()
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Wallets) != 0 {
		t.Error("failed generation must not append a wallet")
	}
}

func TestGenerateWallet_Concurrent(t *testing.T) {
	svc, _ := dashboardService(t, "ethereum")

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.GenerateWallet(); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("GenerateWallet() error = %v", err)
	}

	wallets, err := svc.Wallets()
	if err != nil {
		t.Fatal(err)
	}
	if len(wallets) != n {
		t.Fatalf("wallets = %d, want %d", len(wallets), n)
	}
	for i, w := range wallets {
		if w.Index != i {
			t.Errorf("wallets[%d].Index = %d", i, w.Index)
		}
	}
}

func TestWallet_Lookup(t *testing.T) {
	svc, _ := dashboardService(t, "solana")
	w, err := svc.GenerateWallet()
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.Wallet(w.ID)
	if err != nil {
		t.Fatalf("Wallet() error = %v", err)
	}
	if got != w {
		t.Errorf("Wallet() = %+v, want %+v", got, w)
	}

	if _, err := svc.Wallet("missing"); !errors.Is(err, config.ErrWalletNotFound) {
		t.Errorf("Wallet(missing) error = %v, want ErrWalletNotFound", err)
	}
}

func TestDeleteAllWallets(t *testing.T) {
	svc, _ := dashboardService(t, "solana")
	for i := 0; i < 3; i++ {
		if _, err := svc.GenerateWallet(); err != nil {
			t.Fatal(err)
		}
	}

	if err := svc.DeleteAllWallets(); err != nil {
		t.Fatalf("DeleteAllWallets() error = %v", err)
	}

	w, err := svc.GenerateWallet()
	if err != nil {
		t.Fatal(err)
	}
	if w.Index != 0 {
		t.Errorf("Index after delete = %d, want 0", w.Index)
	}

	state, err := svc.State()
	if err != nil {
		t.Fatal(err)
	}
	if state.Network != models.NetworkSolana || state.Mnemonic != testMnemonic {
		t.Error("delete must keep network and phrase")
	}
}

func TestSetDarkMode(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.SetDarkMode(true); err != nil {
		t.Fatalf("SetDarkMode() error = %v", err)
	}
	summary, err := svc.Summary()
	if err != nil {
		t.Fatal(err)
	}
	if !summary.DarkMode {
		t.Error("DarkMode = false, want true")
	}

	if err := svc.SetDarkMode(false); err != nil {
		t.Fatal(err)
	}
	summary, err = svc.Summary()
	if err != nil {
		t.Fatal(err)
	}
	if summary.DarkMode {
		t.Error("DarkMode = true, want false")
	}
}

func TestExport(t *testing.T) {
	svc, _ := dashboardService(t, "solana")

	if _, _, err := svc.Export(); !errors.Is(err, config.ErrNoWallets) {
		t.Fatalf("Export() with no wallets error = %v, want ErrNoWallets", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.GenerateWallet(); err != nil {
			t.Fatal(err)
		}
	}

	filename, content, err := svc.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if filename != "solana-wallets.txt" {
		t.Errorf("filename = %q", filename)
	}
	if !strings.HasPrefix(content, "SOLANA Wallets Export\n\nRecovery Phrase: "+testMnemonic+"\n\n") {
		t.Errorf("content header = %q", content)
	}
	if !strings.Contains(content, "Wallet 1:\n") || !strings.Contains(content, "Wallet 2:\n") {
		t.Errorf("content missing wallet blocks: %q", content)
	}
}

func TestExportToDir(t *testing.T) {
	svc, _ := dashboardService(t, "ethereum")
	dir := t.TempDir()

	if _, err := svc.ExportToDir(dir); !errors.Is(err, config.ErrNoWallets) {
		t.Fatalf("ExportToDir() error = %v, want ErrNoWallets", err)
	}

	if _, err := svc.GenerateWallet(); err != nil {
		t.Fatal(err)
	}

	path, err := svc.ExportToDir(dir)
	if err != nil {
		t.Fatalf("ExportToDir() error = %v", err)
	}
	if filepath.Base(path) != "ethereum-wallets.txt" {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "0xcb5992c404c2995bc000000004c2995bc0000000") {
		t.Errorf("export missing public key: %s", data)
	}
}

func TestStartOver(t *testing.T) {
	svc, _ := dashboardService(t, "solana")
	if err := svc.SetDarkMode(true); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GenerateWallet(); err != nil {
		t.Fatal(err)
	}

	if err := svc.StartOver(); err != nil {
		t.Fatalf("StartOver() error = %v", err)
	}

	summary, err := svc.Summary()
	if err != nil {
		t.Fatal(err)
	}
	want := models.SessionSummary{Screen: models.ScreenSelect}
	if summary != want {
		t.Errorf("Summary() after start over = %+v, want %+v", summary, want)
	}
}

func TestVerify(t *testing.T) {
	svc, _ := dashboardService(t, "solana")
	for i := 0; i < 3; i++ {
		if _, err := svc.GenerateWallet(); err != nil {
			t.Fatal(err)
		}
	}

	results, err := svc.Verify()
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	for _, r := range results {
		if !r.OK {
			t.Errorf("wallet %d failed: %s", r.Index, r.Problem)
		}
	}

	// Tamper with the stored private key of wallet 1.
	wallets, err := svc.Wallets()
	if err != nil {
		t.Fatal(err)
	}
	wallets[1].PrivateKey = strings.Repeat("0", 64)
	if err := svc.saveWallets(wallets); err != nil {
		t.Fatal(err)
	}

	results, err = svc.Verify()
	if err != nil {
		t.Fatal(err)
	}
	if !results[0].OK || results[1].OK || !results[2].OK {
		t.Errorf("Verify() = %+v, want only wallet 1 to fail", results)
	}
	if results[1].Problem == "" {
		t.Error("failed result should carry a problem")
	}
}

func TestLoad_CorruptWallets(t *testing.T) {
	svc, d := dashboardService(t, "solana")
	if err := d.SetStates(map[string]string{config.KeyWallets: "{not json"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Wallets(); err == nil {
		t.Error("Wallets() should fail on corrupt stored JSON")
	}
}
