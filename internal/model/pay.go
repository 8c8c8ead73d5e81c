package model

// SendRequest represents request for POST /wallet/send
type SendRequest struct {
	To string `json:"to"`
	// Amount is SOL when it has a decimal point or a "sol" suffix, lamports otherwise.
	Amount string `json:"amount" example:"0.05"`
	// Memo defaults to "sent from my ti83+" when omitted; an empty string sends none.
	Memo     *string `json:"memo,omitempty"`
	Password Secret  `json:"password" swaggertype:"string"`
}

// AirdropRequest represents request for POST /wallet/airdrop
type AirdropRequest struct {
	Amount string `json:"amount" example:"1 SOL"`
}

// SubmissionResponse represents response for POST /wallet/send and POST /wallet/airdrop
type SubmissionResponse struct {
	Signature   string `json:"signature"`
	ExplorerURL string `json:"explorerUrl"`
	Status      string `json:"status"`
}
