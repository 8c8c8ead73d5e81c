package handler

import (
	"encoding/json"
	"net/http"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
	"github.com/AlexZinkM/calc-wallet/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Debug("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeErrorWithSignature(w, err, "")
}

func writeErrorWithSignature(w http.ResponseWriter, err error, signature string) {
	kind := apperr.KindOf(err)
	resp := model.ErrorResponse{Error: err.Error(), Signature: signature}
	if kind != apperr.KindUnknown {
		resp.Code = kind.String()
	}
	writeJSON(w, statusFor(kind), resp)
}

// statusFor maps an error kind to an HTTP status.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.ValidationError, apperr.InvalidArgument:
		return http.StatusBadRequest
	case apperr.CryptoError:
		return http.StatusUnauthorized
	case apperr.NoCalculator, apperr.NoCable, apperr.NotReady:
		return http.StatusConflict
	case apperr.NetworkError, apperr.HttpError, apperr.IOError, apperr.JsonParseError:
		return http.StatusBadGateway
	case apperr.TimedOut:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, apperr.Wrap(apperr.ValidationError, err, "invalid request body"))
		return false
	}
	return true
}
