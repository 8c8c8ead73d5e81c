package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Config reads for the duration of the test.
func clearEnv(t *testing.T) {
	for _, key := range []string{"PORT", "SOLANA_RPC_URL", "RPC_TIMEOUT", "AIRDROP_POLL_ATTEMPTS",
		"TRANSFER_POLL_ATTEMPTS", "POLL_INTERVAL", "CALC_DIR", "WORKERS", "PRICE_CURRENCY", "LOG_LEVEL", "LOG_FORMAT"} {
		prev, ok := os.LookupEnv(key)
		require.NoError(t, os.Unsetenv(key))
		if ok {
			t.Cleanup(func() { os.Setenv(key, prev) })
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "https://api.devnet.solana.com", c.SolanaRPCURL)
	assert.Equal(t, 10*time.Second, c.RPCTimeout)
	assert.Equal(t, 30, c.AirdropAttempts)
	assert.Equal(t, 60, c.TransferAttempts)
	assert.Equal(t, time.Second, c.PollInterval)
	assert.Equal(t, filepath.Join(home, ".calc-wallet", "calc"), c.CalcDir)
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, "usd", c.PriceCurrency)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AIRDROP_POLL_ATTEMPTS", "5")
	t.Setenv("TRANSFER_POLL_ATTEMPTS", "7")
	t.Setenv("POLL_INTERVAL", "250ms")
	t.Setenv("CALC_DIR", "/tmp/calc")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, c.AirdropAttempts)
	assert.Equal(t, 7, c.TransferAttempts)
	assert.Equal(t, 250*time.Millisecond, c.PollInterval)
	assert.Equal(t, "/tmp/calc", c.CalcDir)
}

func TestLoad_Rejects(t *testing.T) {
	clearEnv(t)
	t.Setenv("AIRDROP_POLL_ATTEMPTS", "0")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("AIRDROP_POLL_ATTEMPTS", "30")
	t.Setenv("WORKERS", "many")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("WORKERS", "2")
	t.Setenv("LOG_FORMAT", "xml")
	_, err = Load()
	require.Error(t, err)
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	saved := cfg
	cfg = nil
	defer func() { cfg = saved }()
	assert.Panics(t, func() { Get() })
}
