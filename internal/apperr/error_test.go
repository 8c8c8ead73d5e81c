package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
)

func TestIsMatchesByKind(t *testing.T) {
	err := apperr.New(apperr.PayloadLengthMismatch, "got %d bytes", 100)

	assert.True(t, errors.Is(err, apperr.ErrPayloadLengthMismatch))
	assert.False(t, errors.Is(err, apperr.ErrIO))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := apperr.New(apperr.NoCalculator, "link closed")
	outer := fmt.Errorf("failed to store keypair: %w", inner)

	require.True(t, errors.Is(outer, apperr.ErrNoCalculator))
	assert.Equal(t, apperr.NoCalculator, apperr.KindOf(outer))
	assert.Equal(t, apperr.KindUnknown, apperr.KindOf(errors.New("plain")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Wrap(apperr.NetworkError, cause, "getBalance")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "network error: getBalance: connection refused", err.Error())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "JsonParseError", apperr.JsonParseError.String())
	assert.Equal(t, "Kind(99)", apperr.Kind(99).String())
}
