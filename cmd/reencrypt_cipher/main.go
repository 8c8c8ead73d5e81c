// One-off: re-seal the key in a calculator slot under a new password. The
// public key and slot stay the same; salt and nonce are fresh.
// Usage: go run ./cmd/reencrypt_cipher Str0
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AlexZinkM/calc-wallet/internal/calc"
	"github.com/AlexZinkM/calc-wallet/internal/config"
	"github.com/AlexZinkM/calc-wallet/internal/crypto"
	"github.com/AlexZinkM/calc-wallet/internal/keystore"
)

var rootCmd = &cobra.Command{
	Use:          "reencrypt_cipher <slot>",
	Short:        "Re-seal a stored key under a new password",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := calc.ParseSlot(args[0])
		if err != nil {
			return err
		}
		if err := config.Init(); err != nil {
			return err
		}

		oldPassword, err := config.PromptForPassword("Current password: ")
		if err != nil {
			return err
		}
		defer clear(oldPassword)
		newPassword, err := config.PromptForPassword("New password: ")
		if err != nil {
			return err
		}
		defer clear(newPassword)
		again, err := config.PromptForPassword("Repeat new password: ")
		if err != nil {
			return err
		}
		defer clear(again)
		if !bytes.Equal(newPassword, again) {
			return errors.New("passwords do not match")
		}

		link := calc.NewDirLink(config.GetCalcDir())
		if err := link.Open(); err != nil {
			return err
		}
		defer link.Close()
		if err := link.Ready(); err != nil {
			return err
		}

		pub, err := reseal(crypto.NewCustody(crypto.NewProvider()), link, slot, oldPassword, newPassword)
		if err != nil {
			return err
		}
		fmt.Printf("%s re-sealed, address unchanged: %s\n", slot, pub)
		return nil
	},
}

// reseal unseals the record in slot with oldPassword and stores it sealed
// under newPassword. The stored public key must match the unsealed key.
func reseal(custody *crypto.Custody, link calc.Link, slot calc.Slot, oldPassword, newPassword []byte) (string, error) {
	rec, err := keystore.Fetch(link, slot)
	if err != nil {
		return "", err
	}

	key, err := custody.Unseal(oldPassword, rec.Blob)
	if err != nil {
		return "", err
	}
	defer key.Wipe()
	if crypto.DerivePublicKey(key) != rec.Public {
		return "", fmt.Errorf("%s: stored public key does not match the sealed key", slot)
	}

	blob, err := custody.Seal(newPassword, key)
	if err != nil {
		return "", err
	}
	if err := keystore.Store(link, slot, rec.Public, blob); err != nil {
		return "", err
	}
	return rec.Public.String(), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
