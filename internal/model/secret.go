package model

import (
	"bytes"
	"encoding/json"
)

// Secret is a JSON string decoded into a byte slice the caller owns, so it
// can be zeroed once used. A string without escapes is copied straight from
// the request bytes.
type Secret []byte

func (s *Secret) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' && bytes.IndexByte(data, '\\') < 0 {
		*s = append(Secret(nil), data[1:len(data)-1]...)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = Secret(str)
	return nil
}

// Clear zeroes the secret in place.
func (s Secret) Clear() {
	clear(s)
}
