package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/adityajha77/nebula-web-wallet/internal/models"
	"github.com/adityajha77/nebula-web-wallet/internal/wallet"
)

// BoxWidth is the width of header boxes.
const BoxWidth = 72

// ColorScheme groups the colors used by the CLI.
type ColorScheme struct {
	Header  *color.Color // box borders
	Title   *color.Color
	Label   *color.Color
	Value   *color.Color
	Secret  *color.Color // recovery phrase and private keys
	Success *color.Color
	Error   *color.Color
}

// DefaultColorScheme returns the default CLI colors.
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Header:  color.New(color.FgBlue, color.Bold),
		Title:   color.New(color.FgHiWhite, color.Bold),
		Label:   color.New(color.FgCyan),
		Value:   color.New(color.FgWhite),
		Secret:  color.New(color.FgYellow),
		Success: color.New(color.FgGreen, color.Bold),
		Error:   color.New(color.FgRed),
	}
}

// Printer writes colored command output.
type Printer struct {
	w  io.Writer
	cs *ColorScheme
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, cs: DefaultColorScheme()}
}

// Header prints title inside a box.
func (p *Printer) Header(title string) {
	if len(title) > BoxWidth-6 {
		title = title[:BoxWidth-9] + "..."
	}
	padding := BoxWidth - 4 - len(title)
	if padding < 0 {
		padding = 0
	}

	border := strings.Repeat("─", BoxWidth-2)
	fmt.Fprintln(p.w)
	p.cs.Header.Fprintf(p.w, "╭%s╮\n", border)
	p.cs.Header.Fprint(p.w, "│  ")
	p.cs.Title.Fprint(p.w, title)
	p.cs.Header.Fprintf(p.w, "%s│\n", strings.Repeat(" ", padding))
	p.cs.Header.Fprintf(p.w, "╰%s╯\n", border)
	fmt.Fprintln(p.w)
}

// Field prints a "label: value" line.
func (p *Printer) Field(label, value string) {
	p.cs.Label.Fprintf(p.w, "%s: ", label)
	p.cs.Value.Fprintln(p.w, value)
}

// Phrase prints the recovery phrase, masked unless reveal is set.
func (p *Printer) Phrase(mnemonic string, reveal bool) {
	if !reveal {
		mnemonic = wallet.MaskPhrase(mnemonic)
	}
	p.cs.Label.Fprint(p.w, "Recovery Phrase: ")
	p.cs.Secret.Fprintln(p.w, mnemonic)
	fmt.Fprintln(p.w)
}

// Wallet prints one wallet block, numbered from 1.
func (p *Printer) Wallet(index int, pair models.KeyPair, reveal bool) {
	privateKey := pair.PrivateKey
	if !reveal {
		privateKey = wallet.MaskKey(privateKey)
	}
	p.cs.Title.Fprintf(p.w, "Wallet %d:\n", index+1)
	p.Field("  Public Key", pair.PublicKey)
	p.cs.Label.Fprint(p.w, "  Private Key: ")
	p.cs.Secret.Fprintln(p.w, privateKey)
}

// Verify prints one verification result.
func (p *Printer) Verify(r models.VerifyResult) {
	if r.OK {
		p.cs.Success.Fprintf(p.w, "  ✓ wallet %d", r.Index+1)
		p.cs.Value.Fprintf(p.w, " (%s)\n", r.ID)
		return
	}
	p.cs.Error.Fprintf(p.w, "  ✗ wallet %d (%s): %s\n", r.Index+1, r.ID, r.Problem)
}

// Success prints a green status line.
func (p *Printer) Success(format string, args ...interface{}) {
	p.cs.Success.Fprintf(p.w, format+"\n", args...)
}

// Error prints a red status line.
func (p *Printer) Error(format string, args ...interface{}) {
	p.cs.Error.Fprintf(p.w, format+"\n", args...)
}
