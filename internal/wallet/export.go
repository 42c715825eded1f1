package wallet

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adityajha77/nebula-web-wallet/internal/models"
)

// ExportDir is the default directory for text exports.
const ExportDir = "./data/export"

// ExportFilename returns the download name for a network's export.
func ExportFilename(network models.Network) string {
	return fmt.Sprintf("%s-wallets.txt", network)
}

// WriteExport writes the plain-text export of a session to w.
//
// Wallet blocks are numbered by their stored index plus one and separated by
// a blank line.
func WriteExport(w io.Writer, network models.Network, mnemonic string, wallets []models.Wallet) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s Wallets Export\n\n", strings.ToUpper(string(network)))
	fmt.Fprintf(bw, "Recovery Phrase: %s\n\n", mnemonic)

	for i, wl := range wallets {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "Wallet %d:\nPublic Key: %s\nPrivate Key: %s\n", wl.Index+1, wl.PublicKey, wl.PrivateKey)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// FormatExport returns the plain-text export of a session.
func FormatExport(network models.Network, mnemonic string, wallets []models.Wallet) string {
	var sb strings.Builder
	// strings.Builder never fails.
	_ = WriteExport(&sb, network, mnemonic, wallets)
	return sb.String()
}

// ExportToDir writes the export file for a session into outputDir and
// returns the file path.
func ExportToDir(outputDir string, network models.Network, mnemonic string, wallets []models.Wallet) (string, error) {
	if outputDir == "" {
		outputDir = ExportDir
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory %q: %w", outputDir, err)
	}

	filename := filepath.Join(outputDir, ExportFilename(network))
	slog.Info("exporting wallets",
		"network", network,
		"count", len(wallets),
		"file", filename,
	)

	// The file holds the recovery phrase, keep it owner-readable only.
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("create export file %q: %w", filename, err)
	}

	if err := WriteExport(f, network, mnemonic, wallets); err != nil {
		f.Close()
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file %q: %w", filename, err)
	}

	slog.Info("export complete",
		"network", network,
		"exported", len(wallets),
		"file", filename,
	)
	return filename, nil
}
