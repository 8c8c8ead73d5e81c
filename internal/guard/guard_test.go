package guard_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
	"github.com/AlexZinkM/calc-wallet/internal/guard"
)

type handle struct{ id int }

func TestLazy_BuildsOnceAndRebuildsAfterReset(t *testing.T) {
	var builds int
	g := guard.NewLazy(func() (*handle, error) {
		builds++
		return &handle{id: builds}, nil
	})
	assert.False(t, g.Built())

	var seen []int
	for i := 0; i < 3; i++ {
		require.NoError(t, g.Do(func(h *handle) error {
			seen = append(seen, h.id)
			return nil
		}))
	}
	assert.Equal(t, []int{1, 1, 1}, seen)
	assert.True(t, g.Built())

	g.Reset()
	require.NoError(t, g.Do(func(h *handle) error {
		assert.Equal(t, 2, h.id)
		return nil
	}))
}

func TestLazy_FailedBuildStaysEmpty(t *testing.T) {
	fail := true
	g := guard.NewLazy(func() (*handle, error) {
		if fail {
			return nil, errors.New("bad url")
		}
		return &handle{}, nil
	})

	called := false
	err := g.Do(func(*handle) error { called = true; return nil })
	require.Error(t, err)
	assert.False(t, called)
	assert.False(t, g.Built())

	fail = false
	require.NoError(t, g.Do(func(*handle) error { return nil }))
}

func TestExplicit_AbsentIsNoCalculator(t *testing.T) {
	var g guard.Explicit[*handle]

	err := g.Do(func(*handle) error { return nil })
	require.ErrorIs(t, err, apperr.ErrNoCalculator)

	require.NoError(t, g.Connect(func() (*handle, error) { return &handle{id: 7}, nil }))
	assert.True(t, g.Connected())
	require.NoError(t, g.Do(func(h *handle) error {
		assert.Equal(t, 7, h.id)
		return nil
	}))

	// a second connect keeps the existing handle
	require.NoError(t, g.Connect(func() (*handle, error) { return &handle{id: 8}, nil }))
	require.NoError(t, g.Do(func(h *handle) error {
		assert.Equal(t, 7, h.id)
		return nil
	}))

	closed := 0
	closeErr := errors.New("close failed")
	require.ErrorIs(t, g.Disconnect(func(*handle) error { closed++; return closeErr }), closeErr)
	assert.Equal(t, 1, closed)
	assert.False(t, g.Connected())
	require.ErrorIs(t, g.Do(func(*handle) error { return nil }), apperr.ErrNoCalculator)

	require.NoError(t, g.Disconnect(func(*handle) error { closed++; return nil }))
	assert.Equal(t, 1, closed)
}

func TestExplicit_FailedConnect(t *testing.T) {
	var g guard.Explicit[*handle]
	err := g.Connect(func() (*handle, error) {
		return nil, apperr.New(apperr.NoCable, "unplugged")
	})
	require.ErrorIs(t, err, apperr.ErrNoCable)
	assert.False(t, g.Connected())
}

func TestGuards_AreIndependent(t *testing.T) {
	var link guard.Explicit[*handle]
	require.NoError(t, link.Connect(func() (*handle, error) { return &handle{}, nil }))
	rpc := guard.NewLazy(func() (*handle, error) { return &handle{}, nil })

	inLink := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = link.Do(func(*handle) error {
			close(inLink)
			<-release
			return nil
		})
	}()
	<-inLink

	// the link is held; the client must still be usable
	finished := make(chan struct{})
	go func() {
		_ = rpc.Do(func(*handle) error { return nil })
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("client guard blocked by link guard")
	}
	close(release)
	<-done
}

func TestGuard_SerializesSameResource(t *testing.T) {
	g := guard.NewLazy(func() (*handle, error) { return &handle{}, nil })

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.Do(func(*handle) error {
				n := atomic.AddInt32(&active, 1)
				for {
					m := atomic.LoadInt32(&maxActive)
					if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxActive))
}
