// Package bios loads a PSX BIOS ROM image into the bus's BIOS region.
package bios

// bios.go holds an object loader, grounded on the teacher's ObjectCode
// loader (internal/vm/loader.go): both read a fixed-format image from bytes
// and copy it into a target memory region, differing only in that a BIOS
// image has no origin header to parse, since it always loads at 0x1FC00000.

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lmarchetti/psxcore/internal/bus"
	"github.com/lmarchetti/psxcore/internal/log"
)

// ErrBIOSLoader is the sentinel wrapped by every error this package returns.
var ErrBIOSLoader = errors.New("bios: loader error")

// Loader copies a BIOS image into a bus's BIOS ROM.
type Loader struct {
	log *log.Logger
}

// NewLoader creates a BIOS loader.
func NewLoader() *Loader {
	return &Loader{log: log.DefaultLogger()}
}

// LoadFile reads the BIOS image at path and loads it into b. A short image
// is zero-padded; an image larger than the BIOS region is truncated, as Load
// does.
func (l *Loader) LoadFile(b *bus.Bus, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBIOSLoader, err)
	}
	defer f.Close()

	image, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBIOSLoader, err)
	}

	return l.Load(b, image)
}

// Load copies image into b's BIOS region, zero-padding a short image and
// truncating one longer than the region.
func (l *Loader) Load(b *bus.Bus, image []byte) error {
	if len(image) > bus.BIOSSize {
		l.log.Warn("BIOS image truncated", "bytes", len(image), "max", bus.BIOSSize)
		image = image[:bus.BIOSSize]
	}

	l.log.Info("loading BIOS image", "bytes", len(image))

	padded := make([]byte, bus.BIOSSize)
	copy(padded, image)

	b.BIOS.Load(padded)

	return nil
}

// EnvVar is the environment variable this package's command-line callers
// read the BIOS image path from.
const EnvVar = "PSX_BIOS"

// LoadFromEnv loads the BIOS image named by the EnvVar environment
// variable.
func (l *Loader) LoadFromEnv(b *bus.Bus) error {
	path := os.Getenv(EnvVar)
	if path == "" {
		return fmt.Errorf("%w: %s is not set", ErrBIOSLoader, EnvVar)
	}

	return l.LoadFile(b, path)
}
