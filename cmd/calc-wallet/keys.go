package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AlexZinkM/calc-wallet/internal/calc"
	"github.com/AlexZinkM/calc-wallet/internal/config"
)

var (
	verifyOnLoad bool
	qrPath       string
	qrSize       int
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the emulated calculator directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := config.GetCalcDir()
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		success("Calculator directory ready at %s", dir)
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate a keypair and store it sealed in --slot",
	Long: `Generate a new keypair, seal it under a password and write it to the
calculator slot given by --slot. Whatever the slot held before is overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := calc.ParseSlot(slot)
		if err != nil {
			return err
		}
		password, err := config.PromptForPassword("New password: ")
		if err != nil {
			return err
		}
		defer clear(password)
		again, err := config.PromptForPassword("Repeat password: ")
		if err != nil {
			return err
		}
		defer clear(again)
		if !bytes.Equal(password, again) {
			return errors.New("passwords do not match")
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()
		if err := connect(ctx); err != nil {
			return err
		}
		defer disconnect()

		pub, err := wallet.CreateKeypair(ctx, s, password).Await(ctx)
		if err != nil {
			return err
		}
		success("Keypair stored in %s", s)
		fmt.Println(pub.String())
		return nil
	},
}

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Show the public key stored in --slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		if err := loadSlot(ctx, verifyOnLoad); err != nil {
			return err
		}

		fmt.Println(wallet.State().Loaded.Public.String())
		if qrPath == "" {
			return nil
		}
		png, err := wallet.AddressQR(qrSize)
		if err != nil {
			return err
		}
		if err := os.WriteFile(qrPath, png, 0o644); err != nil {
			return fmt.Errorf("failed to write QR code: %w", err)
		}
		success("QR code written to %s", qrPath)
		return nil
	},
}

func init() {
	addressCmd.Flags().BoolVar(&verifyOnLoad, "verify", false, "prompt for the password and check the record before showing it")
	addressCmd.Flags().StringVar(&qrPath, "qr", "", "also write a PNG QR code of the address to this file")
	addressCmd.Flags().IntVar(&qrSize, "qr-size", 256, "QR code edge length in pixels")
}

func connect(ctx context.Context) error {
	_, err := wallet.Connect(ctx).Await(ctx)
	return err
}

func disconnect() {
	ctx, cancel := context.WithTimeout(context.Background(), config.Get().RPCTimeout)
	defer cancel()
	_, _ = wallet.Disconnect(ctx).Await(ctx)
}

// loadSlot connects, loads --slot and disconnects again. Signing only needs
// the cached record, so the calculator can be unplugged afterwards.
func loadSlot(ctx context.Context, verify bool) error {
	s, err := calc.ParseSlot(slot)
	if err != nil {
		return err
	}
	var password []byte
	if verify {
		if password, err = config.PromptForPassword("Password: "); err != nil {
			return err
		}
		defer clear(password)
	}

	if err := connect(ctx); err != nil {
		return err
	}
	defer disconnect()
	_, err = wallet.LoadKeypair(ctx, s, password).Await(ctx)
	return err
}
