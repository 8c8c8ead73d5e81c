package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Passwords are never part of it; they are prompted per operation.
type Config struct {
	Port             string        `envconfig:"PORT" default:"8080"`
	SolanaRPCURL     string        `envconfig:"SOLANA_RPC_URL" default:"https://api.devnet.solana.com"`
	RPCTimeout       time.Duration `envconfig:"RPC_TIMEOUT" default:"10s"`
	AirdropAttempts  int           `envconfig:"AIRDROP_POLL_ATTEMPTS" default:"30"`
	TransferAttempts int           `envconfig:"TRANSFER_POLL_ATTEMPTS" default:"60"`
	PollInterval     time.Duration `envconfig:"POLL_INTERVAL" default:"1s"`
	CalcDir          string        `envconfig:"CALC_DIR"`
	Workers          int           `envconfig:"WORKERS" default:"4"`
	PriceCurrency    string        `envconfig:"PRICE_CURRENCY" default:"usd"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat        string        `envconfig:"LOG_FORMAT" default:"text"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads a Config from the environment without touching the global one.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if c.CalcDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		c.CalcDir = filepath.Join(home, ".calc-wallet", "calc")
	}
	if c.AirdropAttempts < 1 || c.TransferAttempts < 1 {
		return nil, errors.New("poll attempts must be positive")
	}
	if c.PollInterval <= 0 {
		return nil, errors.New("POLL_INTERVAL must be positive")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return nil, fmt.Errorf("unknown LOG_FORMAT %q (want text or json)", c.LogFormat)
	}
	if c.Workers < 1 {
		return nil, errors.New("WORKERS must be positive")
	}
	return c, nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetSolanaRPCURL returns the configured Solana RPC URL as set, before the
// https check.
func GetSolanaRPCURL() string {
	return Get().SolanaRPCURL
}

// GetCalcDir returns the directory backing the emulated calculator
func GetCalcDir() string {
	return Get().CalcDir
}

// PromptForPassword prompts for a password in the terminal without echo.
// The caller owns the returned slice and must zero it after use.
func PromptForPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	password := make([]byte, len(raw))
	copy(password, raw)
	clear(raw)
	return password, nil
}
