package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/AlexZinkM/calc-wallet/internal/calc"
	"github.com/AlexZinkM/calc-wallet/internal/common"
	"github.com/AlexZinkM/calc-wallet/internal/model"
	"github.com/AlexZinkM/calc-wallet/solana"
)

// PriceSource quotes SOL in a fiat currency.
type PriceSource interface {
	GetSOLRate(currency string) (string, error)
}

// WalletHandler exposes a Wallet over HTTP
type WalletHandler struct {
	wallet   *solana.Wallet
	prices   PriceSource
	currency string
}

// NewWalletHandler creates a new WalletHandler. prices may be nil to skip
// fiat valuation of balances.
func NewWalletHandler(wallet *solana.Wallet, prices PriceSource, currency string) *WalletHandler {
	return &WalletHandler{wallet: wallet, prices: prices, currency: currency}
}

// operations keep running if the HTTP client goes away
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// Connect handles POST /wallet/connect
// @Summary      Connect calculator
// @Description  Opens the calculator link and checks it is ready
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.StateResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wallet/connect [post]
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. should be POST", http.StatusMethodNotAllowed)
		return
	}

	if _, err := h.wallet.Connect(detach(r)).Await(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.stateResponse())
}

// Disconnect handles POST /wallet/disconnect
// @Summary      Disconnect calculator
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.StateResponse
// @Router       /wallet/disconnect [post]
func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. should be POST", http.StatusMethodNotAllowed)
		return
	}

	if _, err := h.wallet.Disconnect(detach(r)).Await(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.stateResponse())
}

// CreateKeypair handles POST /wallet/keypair
// @Summary      Create keypair
// @Description  Generates a keypair, seals it under the password and stores it in the slot (overwriting it)
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.KeypairRequest  true  "Slot and password"
// @Success      200      {object}  model.KeypairResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/keypair [post]
func (h *WalletHandler) CreateKeypair(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.KeypairRequest
	if !decodeBody(w, r, &req) {
		return
	}

	defer req.Password.Clear()

	pub, err := h.wallet.CreateKeypair(detach(r), calc.Slot(req.Slot), req.Password).Await(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.KeypairResponse{Slot: req.Slot, Address: pub.String()})
}

// LoadKeypair handles POST /wallet/load
// @Summary      Load keypair
// @Description  Reads the record in the slot and makes it the signing key. With a password the record is verified first.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.KeypairRequest  true  "Slot and optional password"
// @Success      200      {object}  model.KeypairResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/load [post]
func (h *WalletHandler) LoadKeypair(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.KeypairRequest
	if !decodeBody(w, r, &req) {
		return
	}
	defer req.Password.Clear()

	pub, err := h.wallet.LoadKeypair(detach(r), calc.Slot(req.Slot), req.Password).Await(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.KeypairResponse{Slot: req.Slot, Address: pub.String()})
}

// GetBalance handles GET /wallet/balance
// @Summary      Get balance
// @Description  Gets the SOL balance of the loaded key, valued in the configured currency when a price is available
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Failure      400  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /wallet/balance [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	lamports, err := h.wallet.Balance(detach(r)).Await(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := model.BalanceResponse{
		Lamports: lamports,
		SOL:      common.LamportsToSOL(lamports),
	}
	if loaded := h.wallet.State().Loaded; loaded != nil {
		resp.Address = loaded.Public.String()
	}

	// Valuation is best effort
	if h.prices != nil && h.currency != "" {
		rate, err := h.prices.GetSOLRate(h.currency)
		if err != nil {
			log.WithError(err).Warn("Failed to get SOL rate")
		} else if value, err := solana.Value(lamports, rate); err == nil {
			resp.Currency, resp.Rate, resp.Value = h.currency, rate, value
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Airdrop handles POST /wallet/airdrop
// @Summary      Request airdrop
// @Description  Requests an airdrop to the loaded key and waits for confirmation
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.AirdropRequest  true  "Amount"
// @Success      200      {object}  model.SubmissionResponse
// @Failure      504      {object}  model.ErrorResponse
// @Router       /wallet/airdrop [post]
func (h *WalletHandler) Airdrop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.AirdropRequest
	if !decodeBody(w, r, &req) {
		return
	}
	lamports, err := common.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	sub, err := h.wallet.Airdrop(detach(r), lamports).Await(r.Context())
	if err != nil {
		writeErrorWithSignature(w, err, sub.Signature)
		return
	}
	writeJSON(w, http.StatusOK, submissionResponse(sub))
}

// Send handles POST /wallet/send
// @Summary      Send SOL
// @Description  Signs a transfer with the loaded key and waits for confirmation
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.SendRequest  true  "Transfer"
// @Success      200      {object}  model.SubmissionResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      401      {object}  model.ErrorResponse
// @Failure      504      {object}  model.ErrorResponse
// @Router       /wallet/send [post]
func (h *WalletHandler) Send(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req model.SendRequest
	if !decodeBody(w, r, &req) {
		return
	}
	defer req.Password.Clear()

	to, err := solana.PublicKeyFromString(req.To)
	if err != nil {
		writeError(w, err)
		return
	}
	lamports, err := common.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	memo := solana.DefaultMemo
	if req.Memo != nil {
		memo = *req.Memo
	}

	sub, err := h.wallet.Send(detach(r), to, lamports, memo, req.Password).Await(r.Context())
	if err != nil {
		writeErrorWithSignature(w, err, sub.Signature)
		return
	}
	writeJSON(w, http.StatusOK, submissionResponse(sub))
}

// State handles GET /wallet/state
// @Summary      Wallet state
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.StateResponse
// @Router       /wallet/state [get]
func (h *WalletHandler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.stateResponse())
}

// AddressQR handles GET /wallet/qr
// @Summary      Address QR code
// @Description  PNG QR code of the loaded public key
// @Tags         wallet
// @Produce      png
// @Param        size  query  int  false  "Edge length in pixels"  default(256)
// @Success      200
// @Failure      400  {object}  model.ErrorResponse
// @Router       /wallet/qr [get]
func (h *WalletHandler) AddressQR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	size := solana.DefaultQRSize
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 64 || n > 2048 {
			http.Error(w, "size must be between 64 and 2048", http.StatusBadRequest)
			return
		}
		size = n
	}

	png, err := h.wallet.AddressQR(size)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *WalletHandler) stateResponse() model.StateResponse {
	s := h.wallet.State()
	resp := model.StateResponse{
		Connected:       s.Connected,
		BalanceLamports: s.BalanceLamports,
		RPCURL:          s.RPCURL,
		LastError:       s.LastError,
		Pending:         s.Pending,
	}
	if s.Loaded != nil {
		resp.Slot = string(s.Loaded.Slot)
		resp.Address = s.Loaded.Public.String()
	}
	return resp
}

func submissionResponse(sub solana.Submission) model.SubmissionResponse {
	return model.SubmissionResponse{
		Signature:   sub.Signature,
		ExplorerURL: sub.ExplorerURL,
		Status:      string(sub.Status),
	}
}
