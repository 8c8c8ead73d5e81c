package model

// BalanceResponse represents response for GET /wallet/balance
type BalanceResponse struct {
	Address  string `json:"address"`
	Lamports uint64 `json:"lamports"`
	SOL      string `json:"sol"`
	Currency string `json:"currency,omitempty"`
	Rate     string `json:"rate,omitempty"`
	Value    string `json:"value,omitempty"`
}
