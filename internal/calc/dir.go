package calc

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
)

// BusyMarker is the file whose presence marks the calculator as busy.
const BusyMarker = ".busy"

// DirLink emulates a calculator with a directory holding one file per slot.
// A missing directory means no calculator is attached. A path that exists
// but is not a directory means the cable is unplugged.
type DirLink struct {
	mu   sync.Mutex
	dir  string
	open bool
}

// NewDirLink creates a link over dir. Nothing is touched until Open.
func NewDirLink(dir string) *DirLink {
	return &DirLink{dir: dir}
}

var _ Link = (*DirLink)(nil)

// Dir returns the backing directory.
func (d *DirLink) Dir() string { return d.dir }

func (d *DirLink) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.attached(); err != nil {
		return err
	}
	d.open = true
	log.WithField("dir", d.dir).Debug("Link opened")
	return nil
}

func (d *DirLink) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.open {
		log.WithField("dir", d.dir).Debug("Link closed")
	}
	d.open = false
	return nil
}

func (d *DirLink) Ready() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return apperr.New(apperr.NoCalculator, "link not open")
	}
	return d.ready()
}

func (d *DirLink) StoreBytes(slot Slot, payload []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return notOpen("store", slot)
	}
	if err := checkStore(slot, payload); err != nil {
		return err
	}
	if err := d.ready(); err != nil {
		return err
	}

	path := filepath.Join(d.dir, string(slot))
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		if errors.Is(err, syscall.ENOSPC) {
			return apperr.Wrap(apperr.AllocationFailed, err, "store "+string(slot))
		}
		return apperr.Wrap(apperr.IOError, err, "store "+string(slot))
	}
	log.WithFields(logrus.Fields{"slot": slot, "bytes": len(payload)}).Debug("Stored variable")
	return nil
}

func (d *DirLink) FetchBytes(slot Slot) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return nil, notOpen("fetch", slot)
	}
	if err := checkFetch(slot); err != nil {
		return nil, err
	}
	if err := d.ready(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(d.dir, string(slot)))
	if errors.Is(err, fs.ErrNotExist) {
		// unset variable
		return []byte{}, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.IOError, err, "fetch "+string(slot))
	}
	log.WithFields(logrus.Fields{"slot": slot, "bytes": len(data)}).Debug("Fetched variable")
	return data, nil
}

// attached reports whether the directory is present.
func (d *DirLink) attached() error {
	info, err := os.Stat(d.dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return apperr.New(apperr.NoCalculator, "no calculator at %s", d.dir)
	case err != nil:
		return apperr.Wrap(apperr.IOError, err, "stat link directory")
	case !info.IsDir():
		return apperr.New(apperr.NoCable, "%s is not a calculator", d.dir)
	}
	return nil
}

func (d *DirLink) ready() error {
	if err := d.attached(); err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(d.dir, BusyMarker)); err == nil {
		return apperr.New(apperr.NotReady, "calculator busy")
	}
	return nil
}
