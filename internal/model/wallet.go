package model

// StateResponse represents response for GET /wallet/state and the connect endpoints
type StateResponse struct {
	Connected       bool     `json:"connected"`
	Slot            string   `json:"slot,omitempty"`
	Address         string   `json:"address,omitempty"`
	BalanceLamports *uint64  `json:"balanceLamports,omitempty"`
	RPCURL          string   `json:"rpcUrl"`
	LastError       string   `json:"lastError,omitempty"`
	Pending         []string `json:"pending,omitempty"`
}
