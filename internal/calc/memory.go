package calc

import (
	"sync"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
)

// MemoryLink is an in-process calculator. Open fails with NoCalculator
// while Present is false and Ready fails with NotReady while Busy is true.
type MemoryLink struct {
	mu      sync.Mutex
	open    bool
	vars    map[Slot][]byte
	Present bool
	Busy    bool
}

// NewMemoryLink returns a present, idle calculator with empty slots.
func NewMemoryLink() *MemoryLink {
	return &MemoryLink{vars: make(map[Slot][]byte), Present: true}
}

var _ Link = (*MemoryLink)(nil)

func (m *MemoryLink) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.Present {
		return apperr.New(apperr.NoCalculator, "no calculator detected")
	}
	m.open = true
	return nil
}

func (m *MemoryLink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
	return nil
}

func (m *MemoryLink) Ready() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return apperr.New(apperr.NoCalculator, "link not open")
	}
	if m.Busy {
		return apperr.New(apperr.NotReady, "calculator busy")
	}
	return nil
}

func (m *MemoryLink) StoreBytes(slot Slot, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return notOpen("store", slot)
	}
	if m.Busy {
		return apperr.New(apperr.NotReady, "calculator busy")
	}
	if err := checkStore(slot, payload); err != nil {
		return err
	}
	m.vars[slot] = append([]byte(nil), payload...)
	return nil
}

func (m *MemoryLink) FetchBytes(slot Slot) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return nil, notOpen("fetch", slot)
	}
	if m.Busy {
		return nil, apperr.New(apperr.NotReady, "calculator busy")
	}
	if err := checkFetch(slot); err != nil {
		return nil, err
	}
	// an empty slot reads back as zero bytes
	return append([]byte(nil), m.vars[slot]...), nil
}

// Set writes raw bytes to a slot regardless of link state.
func (m *MemoryLink) Set(slot Slot, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[slot] = append([]byte(nil), payload...)
}
