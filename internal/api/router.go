package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/AlexZinkM/calc-wallet/docs"
	"github.com/AlexZinkM/calc-wallet/internal/handler"
	"github.com/AlexZinkM/calc-wallet/solana"
)

// SetupRouter sets up router with handlers
func SetupRouter(wallet *solana.Wallet, prices handler.PriceSource, currency string) http.Handler {
	walletHandler := handler.NewWalletHandler(wallet, prices, currency)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Prometheus
	mux.Handle("/metrics", promhttp.Handler())

	// Calculator
	mux.HandleFunc("/wallet/connect", walletHandler.Connect)
	mux.HandleFunc("/wallet/disconnect", walletHandler.Disconnect)

	// Keys
	mux.HandleFunc("/wallet/keypair", walletHandler.CreateKeypair)
	mux.HandleFunc("/wallet/load", walletHandler.LoadKeypair)
	mux.HandleFunc("/wallet/qr", walletHandler.AddressQR)

	// Chain
	mux.HandleFunc("/wallet/balance", walletHandler.GetBalance)
	mux.HandleFunc("/wallet/airdrop", walletHandler.Airdrop)
	mux.HandleFunc("/wallet/send", walletHandler.Send)
	mux.HandleFunc("/wallet/state", walletHandler.State)

	return mux
}
