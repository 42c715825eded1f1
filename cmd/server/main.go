package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adityajha77/nebula-web-wallet/internal/api"
	"github.com/adityajha77/nebula-web-wallet/internal/cli"
	"github.com/adityajha77/nebula-web-wallet/internal/config"
	"github.com/adityajha77/nebula-web-wallet/internal/db"
	"github.com/adityajha77/nebula-web-wallet/internal/logging"
	"github.com/adityajha77/nebula-web-wallet/internal/models"
	"github.com/adityajha77/nebula-web-wallet/internal/session"
	"github.com/adityajha77/nebula-web-wallet/internal/wallet"
	"github.com/adityajha77/nebula-web-wallet/web"
)

var version = "dev"

// errVerifyFailed signals that at least one wallet did not verify.
var errVerifyFailed = errors.New("wallet verification failed")

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe()
	case "generate":
		err = runGenerate(os.Args[2:])
	case "export":
		err = runExport(os.Args[2:])
	case "verify":
		err = runVerify()
	case "version":
		fmt.Printf("nebula %s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		slog.Error(os.Args[1]+" error", "error", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: nebula <command>

Commands:
  serve     Start the HTTP server and web UI
  generate  Derive wallets for a recovery phrase without storing them
  export    Write the stored session's wallets to a text file
  verify    Re-derive stored wallets and check them
  version   Print version information
`)
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logCloser.Close()

	slog.Info("starting nebula",
		"version", version,
		"port", cfg.Port,
		"dbPath", cfg.DBPath,
		"logLevel", cfg.LogLevel,
		"mnemonicStrength", cfg.MnemonicStrength,
	)

	database, svc, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	staticFS, err := fs.Sub(web.StaticFiles, "build")
	if err != nil {
		return fmt.Errorf("failed to access embedded static files: %w", err)
	}

	slog.Info("embedded SPA loaded")

	api.Version = version
	router := api.NewRouter(svc, cfg, staticFS)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	srv := &http.Server{
		Addr:           addr,
		Handler:        router,
		ReadTimeout:    config.ServerReadTimeout,
		WriteTimeout:   config.ServerWriteTimeout,
		IdleTimeout:    config.ServerIdleTimeout,
		MaxHeaderBytes: config.ServerMaxHeaderBytes,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr, "url", "http://localhost:"+fmt.Sprint(cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server listen error: %w", err)
	case <-done:
	}

	slog.Info("initiating graceful shutdown", "timeout", config.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	networkFlag := fs.String("network", "", "Network: solana or ethereum (required)")
	mnemonicFile := fs.String("mnemonic-file", "", "Path to a file holding a BIP-39 recovery phrase (default: generate a new one)")
	count := fs.Int("count", 1, "Number of wallets to derive")
	reveal := fs.Bool("reveal", false, "Print the recovery phrase and private keys in clear")
	fs.Parse(args)

	cfg, err := setupCLI()
	if err != nil {
		return err
	}

	network, err := wallet.ParseNetwork(*networkFlag)
	if err != nil {
		return fmt.Errorf("--network: %w", err)
	}
	if *count < 1 || *count > config.MaxCLIGenerateCount {
		return fmt.Errorf("--count must be between 1 and %d, got %d", config.MaxCLIGenerateCount, *count)
	}

	var mnemonic string
	if *mnemonicFile != "" {
		mnemonic, err = wallet.ReadMnemonicFromFile(*mnemonicFile)
		if err != nil {
			return fmt.Errorf("read mnemonic: %w", err)
		}
	} else {
		mnemonic, err = wallet.NewMnemonic(cfg.MnemonicStrength)
		if err != nil {
			return fmt.Errorf("generate mnemonic: %w", err)
		}
	}

	slog.Info("deriving wallets",
		"network", network,
		"count", *count,
		"mnemonicSource", mnemonicSource(*mnemonicFile),
	)

	start := time.Now()
	progress := func(network models.Network, generated int, total int) {
		slog.Info("wallet generation progress",
			"network", network,
			"generated", generated,
			"total", total,
			"progress", fmt.Sprintf("%.1f%%", float64(generated)/float64(total)*100),
		)
	}

	pairs, err := wallet.GenerateKeyPairs(mnemonic, network, *count, progress)
	if err != nil {
		return fmt.Errorf("generate wallets: %w", err)
	}

	slog.Info("wallets derived", "count", len(pairs), "duration", time.Since(start).Round(time.Millisecond))

	p := cli.NewPrinter(os.Stdout)
	p.Header(fmt.Sprintf("%s wallets (%d)", network, len(pairs)))
	p.Phrase(mnemonic, *reveal)
	for i, pair := range pairs {
		p.Wallet(i, pair, *reveal)
	}
	if !*reveal {
		fmt.Println()
		p.Success("secrets masked; pass --reveal to print them")
	}
	return nil
}

func mnemonicSource(file string) string {
	if file == "" {
		return "generated"
	}
	return "file"
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	output := fs.String("output", wallet.ExportDir, "Directory to write the export file into")
	fs.Parse(args)

	cfg, err := setupCLI()
	if err != nil {
		return err
	}

	database, svc, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	path, err := svc.ExportToDir(*output)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	cli.NewPrinter(os.Stdout).Success("exported to %s", path)
	return nil
}

func runVerify() error {
	cfg, err := setupCLI()
	if err != nil {
		return err
	}

	database, svc, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	state, err := svc.State()
	if err != nil {
		return err
	}

	results, err := svc.Verify()
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	p := cli.NewPrinter(os.Stdout)
	p.Header(fmt.Sprintf("verifying %d %s wallets", len(results), state.Network))

	failed := 0
	for _, r := range results {
		p.Verify(r)
		if !r.OK {
			failed++
		}
	}
	fmt.Println()

	if failed > 0 {
		p.Error("%d of %d wallets failed verification", failed, len(results))
		return fmt.Errorf("%w: %d of %d", errVerifyFailed, failed, len(results))
	}

	p.Success("all %d wallets verified", len(results))
	return nil
}

// setupCLI loads config and sends logs to stderr so stdout carries only
// command output.
func setupCLI() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// The log file handle lives until the process exits.
	if _, err := logging.SetupWithWriter(cfg.LogLevel, cfg.LogDir, os.Stderr); err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return cfg, nil
}

func openSession(cfg *config.Config) (*db.DB, *session.Service, error) {
	database, err := db.New(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	slog.Info("database opened", "path", cfg.DBPath)

	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return database, session.NewService(database, cfg.MnemonicStrength), nil
}
