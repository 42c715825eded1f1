package config

import "time"

// Mnemonic
const (
	DefaultMnemonicStrength = 128 // 12 words
	MinMnemonicStrength     = 128
	MaxMnemonicStrength     = 256
)

// Key generation
const (
	ProgressInterval    = 10_000
	MaxCLIGenerateCount = 100_000
)

// Session state keys, shared with the web UI.
const (
	KeySelectedNetwork = "selectedNetwork"
	KeySecretKey       = "secretKey"
	KeyDarkMode        = "darkMode"
	KeyWallets         = "wallets"
)

// Server
const (
	ServerReadTimeout    = 30 * time.Second
	ServerWriteTimeout   = 30 * time.Second
	ServerIdleTimeout    = 120 * time.Second
	ServerMaxHeaderBytes = 1 << 20
	ShutdownTimeout      = 10 * time.Second
	MaxRequestBodyBytes  = 64 << 10
)

// QR
const (
	QRCodeSize = 256 // pixels
)

// Logging
const (
	LogFilePrefix = "nebula-"
	LogMaxAgeDays = 30
)

// Database
const (
	DBBusyTimeout = 5000 // milliseconds
)
