package models

// Network represents a supported blockchain look-alike.
type Network string

const (
	NetworkSolana   Network = "solana"
	NetworkEthereum Network = "ethereum"
)

// AllNetworks is the ordered list of supported networks.
var AllNetworks = []Network{NetworkSolana, NetworkEthereum}

// Screen is one of the three steps of the wallet flow.
type Screen string

const (
	ScreenSelect    Screen = "select"
	ScreenPhrase    Screen = "phrase"
	ScreenDashboard Screen = "dashboard"
)

// KeyPair is the simulated key material derived for one wallet index.
type KeyPair struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// Wallet is a derived wallet as persisted in the session store.
type Wallet struct {
	ID         string `json:"id"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	Index      int    `json:"index"`
}

// SessionState is a snapshot of everything the flow persists.
type SessionState struct {
	Network  Network  `json:"network,omitempty"`
	Mnemonic string   `json:"-"`
	DarkMode bool     `json:"darkMode"`
	Wallets  []Wallet `json:"wallets"`
}

// HasNetwork reports whether a network has been selected.
func (s SessionState) HasNetwork() bool {
	return s.Network != ""
}

// HasMnemonic reports whether a recovery phrase has been acknowledged.
func (s SessionState) HasMnemonic() bool {
	return s.Mnemonic != ""
}

// Screen returns the step the flow should resume on.
func (s SessionState) Screen() Screen {
	switch {
	case !s.HasNetwork():
		return ScreenSelect
	case !s.HasMnemonic():
		return ScreenPhrase
	default:
		return ScreenDashboard
	}
}

// SessionSummary is the public view of a session returned by the API.
type SessionSummary struct {
	Network           Network `json:"network,omitempty"`
	HasRecoveryPhrase bool    `json:"hasRecoveryPhrase"`
	DarkMode          bool    `json:"darkMode"`
	WalletCount       int     `json:"walletCount"`
	Screen            Screen  `json:"screen"`
}

// Summary builds the public view of the session.
func (s SessionState) Summary() SessionSummary {
	return SessionSummary{
		Network:           s.Network,
		HasRecoveryPhrase: s.HasMnemonic(),
		DarkMode:          s.DarkMode,
		WalletCount:       len(s.Wallets),
		Screen:            s.Screen(),
	}
}

// VerifyResult describes the outcome of re-deriving one persisted wallet.
type VerifyResult struct {
	Index   int    `json:"index"`
	ID      string `json:"id"`
	OK      bool   `json:"ok"`
	Problem string `json:"problem,omitempty"`
}

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Data interface{} `json:"data,omitempty"`
	Meta *APIMeta    `json:"meta,omitempty"`
}

// APIMeta contains execution metadata.
type APIMeta struct {
	Total         int64 `json:"total,omitempty"`
	ExecutionTime int64 `json:"executionTime,omitempty"`
}

// APIError is the standard error response.
type APIError struct {
	Error APIErrorDetail `json:"error"`
}

// APIErrorDetail contains error code and message.
type APIErrorDetail struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}
