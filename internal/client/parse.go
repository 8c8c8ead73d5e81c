package client

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
)

type valueResult struct {
	Value json.RawMessage `json:"value"`
}

func decodeResponse(resp string) (*jsonrpc.RPCResponse, error) {
	var r jsonrpc.RPCResponse
	if err := json.Unmarshal([]byte(resp), &r); err != nil {
		return nil, apperr.Wrap(apperr.JsonParseError, err, "malformed response")
	}
	return &r, nil
}

func decodeValue(r *jsonrpc.RPCResponse, what string) (json.RawMessage, error) {
	if isAbsent(r.Result) {
		return nil, missing(r, what)
	}
	var v valueResult
	if err := json.Unmarshal(r.Result, &v); err != nil {
		return nil, apperr.Wrap(apperr.JsonParseError, err, "unexpected result for "+what)
	}
	if isAbsent(v.Value) {
		return nil, missing(r, what)
	}
	return v.Value, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func missing(r *jsonrpc.RPCResponse, what string) error {
	if r.Error != nil {
		return apperr.New(apperr.JsonParseError, "missing %s (rpc error %d: %s)", what, r.Error.Code, r.Error.Message)
	}
	return apperr.New(apperr.JsonParseError, "missing %s", what)
}

// ParseBalance extracts result.value as lamports.
func ParseBalance(resp string) (uint64, error) {
	r, err := decodeResponse(resp)
	if err != nil {
		return 0, err
	}
	return parseBalance(r)
}

func parseBalance(r *jsonrpc.RPCResponse) (uint64, error) {
	value, err := decodeValue(r, "balance value")
	if err != nil {
		return 0, err
	}
	lamports, err := strconv.ParseUint(string(value), 10, 64)
	if err != nil {
		return 0, apperr.Wrap(apperr.JsonParseError, err, "balance value is not an integer")
	}
	return lamports, nil
}

// ParseBlockhash extracts result.value.blockhash.
func ParseBlockhash(resp string) (string, error) {
	r, err := decodeResponse(resp)
	if err != nil {
		return "", err
	}
	return parseBlockhash(r)
}

func parseBlockhash(r *jsonrpc.RPCResponse) (string, error) {
	value, err := decodeValue(r, "blockhash")
	if err != nil {
		return "", err
	}
	var v struct {
		Blockhash *string `json:"blockhash"`
	}
	if err := json.Unmarshal(value, &v); err != nil {
		return "", apperr.Wrap(apperr.JsonParseError, err, "unexpected blockhash value")
	}
	if v.Blockhash == nil {
		return "", missing(r, "blockhash")
	}
	return *v.Blockhash, nil
}

// ParseStringResult extracts a string result, as returned by
// requestAirdrop and sendTransaction. An error object is surfaced as
// IOError with its message.
func ParseStringResult(resp string) (string, error) {
	r, err := decodeResponse(resp)
	if err != nil {
		return "", err
	}
	return parseStringResult(r)
}

func parseStringResult(r *jsonrpc.RPCResponse) (string, error) {
	if r.Error != nil {
		msg := r.Error.Message
		if msg == "" {
			msg = "unknown RPC error"
		}
		return "", apperr.New(apperr.IOError, "%s", msg)
	}
	var s string
	if isAbsent(r.Result) {
		return "", apperr.New(apperr.JsonParseError, "missing result string")
	}
	if err := json.Unmarshal(r.Result, &s); err != nil {
		return "", apperr.Wrap(apperr.JsonParseError, err, "result is not a string")
	}
	return s, nil
}

// ParseSignatureStatus extracts result.value[0].confirmationStatus. A null
// entry means the cluster has not seen the signature yet and yields "".
func ParseSignatureStatus(resp string) (string, error) {
	r, err := decodeResponse(resp)
	if err != nil {
		return "", err
	}
	return parseSignatureStatus(r)
}

func parseSignatureStatus(r *jsonrpc.RPCResponse) (string, error) {
	value, err := decodeValue(r, "signature status list")
	if err != nil {
		return "", err
	}
	var statuses []json.RawMessage
	if err := json.Unmarshal(value, &statuses); err != nil {
		return "", apperr.Wrap(apperr.JsonParseError, err, "signature status list is not an array")
	}
	if len(statuses) == 0 || isAbsent(statuses[0]) {
		return "", nil
	}
	var status struct {
		ConfirmationStatus *string `json:"confirmationStatus"`
	}
	if err := json.Unmarshal(statuses[0], &status); err != nil {
		return "", apperr.Wrap(apperr.JsonParseError, err, "unexpected signature status")
	}
	if status.ConfirmationStatus == nil {
		return "", nil
	}
	return *status.ConfirmationStatus, nil
}
