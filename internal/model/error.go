package model

// ErrorResponse is the consistent JSON structure for all API error responses.
// Code is the wallet error kind, e.g. "NoCalculator" or "CryptoError".
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	// Signature is set when a transaction was submitted but confirmation failed.
	Signature string `json:"signature,omitempty"`
}
