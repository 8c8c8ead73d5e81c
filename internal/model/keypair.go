package model

// KeypairRequest represents request for POST /wallet/keypair and POST /wallet/load
type KeypairRequest struct {
	Slot string `json:"slot" example:"Str0"`
	// Password seals the new key. For load it is optional and, when set,
	// verifies the stored record before loading it.
	Password Secret `json:"password,omitempty" swaggertype:"string"`
}

// KeypairResponse represents response for POST /wallet/keypair and POST /wallet/load
type KeypairResponse struct {
	Slot    string `json:"slot"`
	Address string `json:"address"`
}
