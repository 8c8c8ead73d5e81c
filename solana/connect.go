package solana

import (
	"context"

	"github.com/AlexZinkM/calc-wallet/internal/calc"
)

// Connect opens the calculator link and pings it. A link that opens but is
// not ready is closed again and the error returned.
func (w *Wallet) Connect(ctx context.Context) *Future {
	return dispatch(w, ctx, "connect", func(context.Context) (struct{}, error) {
		err := w.link.Connect(func() (calc.Link, error) {
			link, err := w.openLink()
			if err != nil {
				return nil, err
			}
			if err := link.Open(); err != nil {
				return nil, err
			}
			if err := link.Ready(); err != nil {
				_ = link.Close()
				return nil, err
			}
			return link, nil
		})
		return struct{}{}, err
	}, func(s *State, _ struct{}) {
		s.Connected = true
		log.Info("Calculator connected")
	})
}

// Disconnect closes the link. The link is dropped even when closing fails.
// The loaded keypair stays loaded.
func (w *Wallet) Disconnect(ctx context.Context) *Future {
	return dispatch(w, ctx, "disconnect", func(context.Context) (struct{}, error) {
		err := w.link.Disconnect(func(l calc.Link) error { return l.Close() })

		w.mu.Lock()
		w.state.Connected = false
		w.mu.Unlock()
		log.Info("Calculator disconnected")
		return struct{}{}, err
	}, nil)
}
