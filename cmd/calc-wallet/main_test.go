package main

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
	"github.com/AlexZinkM/calc-wallet/solana"
)

func TestSetupLogging(t *testing.T) {
	prev := logrus.GetLevel()
	defer logrus.SetLevel(prev)

	require.NoError(t, setupLogging("debug", "text"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	require.NoError(t, setupLogging("warn", "json"))
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	require.Error(t, setupLogging("loud", "text"))
}

func TestReport(t *testing.T) {
	require.NoError(t, report(solana.Submission{Signature: "sig", Status: "confirmed"}, nil))

	timeout := apperr.New(apperr.TimedOut, "not confirmed")
	err := report(solana.Submission{Signature: "sig"}, timeout)
	require.ErrorIs(t, err, apperr.ErrTimedOut)

	other := errors.New("boom")
	assert.Equal(t, other, report(solana.Submission{}, other))
}

func TestCommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"init", "create", "address", "balance", "airdrop", "send", "serve"} {
		assert.Contains(t, names, want)
	}
}
