package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AlexZinkM/calc-wallet/internal/api"
	"github.com/AlexZinkM/calc-wallet/internal/client"
	"github.com/AlexZinkM/calc-wallet/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the wallet HTTP API on PORT",
	Long: `Serve the wallet over HTTP. Swagger UI is at /swagger/ and Prometheus
metrics at /metrics. The API is meant for localhost only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		router := api.SetupRouter(wallet, client.NewCoinGeckoClient(), cfg.PriceCurrency)

		srv := &http.Server{
			Addr:              "127.0.0.1:" + config.GetPort(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logrus.WithFields(logrus.Fields{"addr": srv.Addr, "rpc": wallet.State().RPCURL}).Info("Starting server")
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		logrus.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		disconnect()
		return srv.Shutdown(shutdownCtx)
	},
}
