package confirm_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
	"github.com/AlexZinkM/calc-wallet/internal/confirm"
)

// script replays statuses in order and repeats the last one.
type script struct {
	mu       sync.Mutex
	statuses []string
	errAt    int
	err      error
	calls    int
}

func (s *script) SignatureStatus(ctx context.Context, signature string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil && s.calls == s.errAt {
		return "", s.err
	}
	i := s.calls - 1
	if i >= len(s.statuses) {
		i = len(s.statuses) - 1
	}
	return s.statuses[i], nil
}

func (s *script) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func poller(s confirm.Statuser, attempts int) *confirm.Poller {
	return &confirm.Poller{Statuser: s, Interval: time.Millisecond, MaxAttempts: attempts}
}

func TestWait_ConfirmedAndFinalizedSucceed(t *testing.T) {
	for _, terminal := range []string{"confirmed", "finalized"} {
		s := &script{statuses: []string{"", "processed", terminal}}
		status, err := poller(s, 10).Wait(context.Background(), "sig")
		require.NoError(t, err)
		assert.Equal(t, confirm.Status(terminal), status)
		assert.Equal(t, 3, s.count())
	}
}

func TestWait_ProcessedNeverTerminates(t *testing.T) {
	s := &script{statuses: []string{"processed"}}
	status, err := poller(s, 5).Wait(context.Background(), "sig")
	require.ErrorIs(t, err, apperr.ErrTimedOut)
	assert.Equal(t, confirm.StatusProcessed, status)
	assert.Equal(t, 5, s.count())
}

func TestWait_UnseenTimesOut(t *testing.T) {
	s := &script{statuses: []string{""}}
	_, err := poller(s, 3).Wait(context.Background(), "sig")
	require.ErrorIs(t, err, apperr.ErrTimedOut)
	assert.Equal(t, 3, s.count())
}

func TestWait_ConfirmedOnLastAttempt(t *testing.T) {
	s := &script{statuses: []string{"", "", "", "finalized"}}
	_, err := poller(s, 4).Wait(context.Background(), "sig")
	require.NoError(t, err)
}

func TestWait_LookupErrorAborts(t *testing.T) {
	boom := apperr.New(apperr.NetworkError, "connection reset")
	s := &script{statuses: []string{""}, errAt: 2, err: boom}
	_, err := poller(s, 10).Wait(context.Background(), "sig")
	require.ErrorIs(t, err, apperr.ErrNetwork)
	assert.Equal(t, 2, s.count())
}

func TestWait_SleepsBeforeFirstLookup(t *testing.T) {
	s := &script{statuses: []string{"confirmed"}}
	p := &confirm.Poller{Statuser: s, Interval: 30 * time.Millisecond, MaxAttempts: 1}

	start := time.Now()
	_, err := p.Wait(context.Background(), "sig")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestWait_CancelStopsTicks(t *testing.T) {
	s := &script{statuses: []string{""}}
	p := &confirm.Poller{Statuser: s, Interval: time.Hour, MaxAttempts: 60}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Wait(ctx, "sig")
	require.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, s.count())
}

func TestPolicy_IndependentBounds(t *testing.T) {
	p := confirm.DefaultPolicy()
	assert.Equal(t, 30, p.Airdrop(nil).MaxAttempts)
	assert.Equal(t, 60, p.Transfer(nil).MaxAttempts)
	assert.Equal(t, time.Second, p.Airdrop(nil).Interval)

	p.AirdropAttempts = 2
	assert.Equal(t, 2, p.Airdrop(nil).MaxAttempts)
	assert.Equal(t, 60, p.Transfer(nil).MaxAttempts)
}

func TestStatuserFunc(t *testing.T) {
	f := confirm.StatuserFunc(func(ctx context.Context, sig string) (string, error) {
		return "finalized", nil
	})
	status, err := poller(f, 1).Wait(context.Background(), "sig")
	require.NoError(t, err)
	assert.True(t, status.Terminal())
}
