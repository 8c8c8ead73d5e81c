package main

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
	"github.com/AlexZinkM/calc-wallet/internal/client"
	"github.com/AlexZinkM/calc-wallet/internal/common"
	"github.com/AlexZinkM/calc-wallet/internal/config"
	"github.com/AlexZinkM/calc-wallet/solana"
)

var (
	memo   string
	noMemo bool
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the balance of the key in --slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		if err := loadSlot(ctx, false); err != nil {
			return err
		}

		lamports, err := wallet.Balance(ctx).Await(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s SOL (%d lamports)\n", common.LamportsToSOL(lamports), lamports)

		currency := config.Get().PriceCurrency
		rate, err := client.NewCoinGeckoClient().GetSOLRate(currency)
		if err != nil {
			logrus.WithError(err).Debug("No price available")
			return nil
		}
		if value, err := solana.Value(lamports, rate); err == nil {
			fmt.Printf("≈ %s %s\n", value, currency)
		}
		return nil
	},
}

var airdropCmd = &cobra.Command{
	Use:   "airdrop <amount>",
	Short: "Request a devnet or testnet airdrop to the key in --slot",
	Long: `Request an airdrop and wait for it to confirm. Amounts with a decimal
point or a "sol" suffix are SOL, bare integers are lamports.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lamports, err := common.ParseAmount(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		if err := loadSlot(ctx, false); err != nil {
			return err
		}

		sub, err := wallet.Airdrop(ctx, lamports).Await(ctx)
		return report(sub, err)
	},
}

var sendCmd = &cobra.Command{
	Use:   "send <recipient> <amount>",
	Short: "Sign and send SOL from the key in --slot",
	Long: `Transfer SOL to recipient. The key record is read from the calculator,
then the private key is unsealed with the prompted password only for signing.

Examples:
  calc-wallet send 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM 0.25
  calc-wallet send 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM 5000 --memo "rent"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := solana.PublicKeyFromString(args[0])
		if err != nil {
			return err
		}
		lamports, err := common.ParseAmount(args[1])
		if err != nil {
			return err
		}
		text := memo
		if noMemo {
			text = ""
		}
		if err := solana.ValidateMemo(text); err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()
		if err := loadSlot(ctx, false); err != nil {
			return err
		}

		password, err := config.PromptForPassword("Password: ")
		if err != nil {
			return err
		}
		defer clear(password)

		sub, err := wallet.Send(ctx, to, lamports, text, password).Await(ctx)
		return report(sub, err)
	},
}

func init() {
	sendCmd.Flags().StringVar(&memo, "memo", solana.DefaultMemo, "memo attached to the transfer")
	sendCmd.Flags().BoolVar(&noMemo, "no-memo", false, "send without a memo instruction")
}

// report prints a submission. A confirmation timeout still prints the
// signature because the transaction may land later.
func report(sub solana.Submission, err error) error {
	if err != nil {
		if sub.Signature != "" && errors.Is(err, apperr.ErrTimedOut) {
			fmt.Println("Signature:", sub.Signature)
			fmt.Println("Explorer: ", sub.ExplorerURL)
		}
		return err
	}
	success("Confirmed (%s)", sub.Status)
	fmt.Println("Signature:", sub.Signature)
	fmt.Println("Explorer: ", sub.ExplorerURL)
	return nil
}
