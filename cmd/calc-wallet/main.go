// Command calc-wallet is a cold-storage Solana wallet whose keys live,
// sealed, on a calculator.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/AlexZinkM/calc-wallet/internal/calc"
	"github.com/AlexZinkM/calc-wallet/internal/config"
	"github.com/AlexZinkM/calc-wallet/internal/confirm"
	"github.com/AlexZinkM/calc-wallet/solana"
)

var (
	emulate bool
	slot    string

	// wallet is built once config is loaded
	wallet *solana.Wallet
)

var rootCmd = &cobra.Command{
	Use:   "calc-wallet",
	Short: "Cold-storage Solana wallet backed by a calculator",
	Long: `calc-wallet keeps Solana keys sealed under a password in the string
variables Str0..Str9 of a connected calculator and signs transfers locally.

Configuration is read from the environment (SOLANA_RPC_URL, CALC_DIR,
LOG_LEVEL, ...). Without a calculator attached, --emulate keeps slots in
memory for the lifetime of the process.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			return err
		}
		cfg := config.Get()
		if err := setupLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
			return err
		}
		wallet = newWallet(cfg)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&emulate, "emulate", false, "use an in-memory calculator instead of CALC_DIR")
	rootCmd.PersistentFlags().StringVar(&slot, "slot", "Str0", "calculator slot holding the key (Str0..Str9)")

	rootCmd.AddCommand(initCmd, createCmd, addressCmd, balanceCmd, airdropCmd, sendCmd, serveCmd)
}

func setupLogging(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	logrus.SetLevel(lvl)

	switch format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		formatter := new(prefixed.TextFormatter)
		formatter.TimestampFormat = "2006-01-02 15:04:05"
		formatter.FullTimestamp = true
		logrus.SetFormatter(formatter)
	}
	return nil
}

func newWallet(cfg *config.Config) *solana.Wallet {
	var open func() (calc.Link, error)
	if emulate {
		link := calc.NewMemoryLink()
		open = func() (calc.Link, error) { return link, nil }
	} else {
		open = func() (calc.Link, error) { return calc.NewDirLink(cfg.CalcDir), nil }
	}

	return solana.New(solana.Options{
		RPCURL:     cfg.SolanaRPCURL,
		RPCTimeout: cfg.RPCTimeout,
		Policy: confirm.Policy{
			Interval:         cfg.PollInterval,
			AirdropAttempts:  cfg.AirdropAttempts,
			TransferAttempts: cfg.TransferAttempts,
		},
		Workers:  cfg.Workers,
		OpenLink: open,
	})
}

// commandTimeout bounds a whole CLI command, confirmation polling included.
func commandTimeout() time.Duration {
	cfg := config.Get()
	attempts := max(cfg.AirdropAttempts, cfg.TransferAttempts)
	return time.Duration(attempts+5)*cfg.PollInterval + 4*cfg.RPCTimeout
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), commandTimeout())
}

func success(format string, args ...any) {
	fmt.Println(color.GreenString("✓") + " " + fmt.Sprintf(format, args...))
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("✗")+" "+err.Error())
		os.Exit(1)
	}
}
