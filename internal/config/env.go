package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: the wallet password is prompted at runtime, never configured.
type Config struct {
	Port                  string `envconfig:"PORT" default:"8080"`
	BSCRPCURL             string `envconfig:"BSC_RPC_URL" default:"https://bsc-dataseed.binance.org"`
	SolanaRPCURL          string `envconfig:"SOLANA_RPC_URL" default:"https://api.mainnet-beta.solana.com"`
	DBPath                string `envconfig:"DB_PATH" default:"wallets.db"`
	MaxWallets            int    `envconfig:"MAX_WALLETS" default:"100"`
	BalanceTimeoutSeconds int    `envconfig:"BALANCE_TIMEOUT_SECONDS" default:"10"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// PromptForPassword prompts for the wallet password in the terminal.
// The password is read without echoing and returned to the caller; it is
// not retained here.
func PromptForPassword(label string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprintf(os.Stderr, "%s: ", label)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return "", errors.New("password cannot be empty")
	}

	pw := string(raw)
	clear(raw)
	return pw, nil
}
