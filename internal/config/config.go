// Package config carries the runtime options for sysdash.
package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config is the fully-resolved runtime configuration. Paths are swappable so
// tests can point the samplers at fixture trees.
type Config struct {
	// ProcRoot is the process namespace root. The stat, meminfo and
	// net/dev paths all derive from it, so tests can swap in a fixture
	// tree with one knob.
	ProcRoot string

	// Per-subsystem collection intervals. The process walk is by far the
	// most expensive sample and therefore polled the slowest.
	CPUInterval     time.Duration
	MemoryInterval  time.Duration
	DiskInterval    time.Duration
	NetworkInterval time.Duration
	ProcessInterval time.Duration

	// FrameInterval is the render tick; every frame does one non-blocking
	// drain of each mailbox.
	FrameInterval time.Duration

	// KeyWindow rate-limits raw key events to one per window; extra events
	// are dropped, not queued.
	KeyWindow time.Duration
}

func Default() Config {
	return Config{
		ProcRoot:        "/proc",
		CPUInterval:     500 * time.Millisecond,
		MemoryInterval:  100 * time.Millisecond,
		DiskInterval:    100 * time.Millisecond,
		NetworkInterval: 100 * time.Millisecond,
		ProcessInterval: 2500 * time.Millisecond,
		FrameInterval:   time.Second / 5,
		KeyWindow:       150 * time.Millisecond,
	}
}

// Validate rejects configurations the collector loops cannot run with.
func (c Config) Validate() error {
	intervals := map[string]time.Duration{
		"cpu-interval":     c.CPUInterval,
		"memory-interval":  c.MemoryInterval,
		"disk-interval":    c.DiskInterval,
		"network-interval": c.NetworkInterval,
		"process-interval": c.ProcessInterval,
		"frame-interval":   c.FrameInterval,
	}
	for name, d := range intervals {
		if d <= 0 {
			return fmt.Errorf("config: %s must be positive, got %s", name, d)
		}
	}
	if c.ProcRoot == "" {
		return fmt.Errorf("config: proc root must not be empty")
	}
	return nil
}

// StatPath is the system-wide CPU tick counter file under ProcRoot.
func (c Config) StatPath() string { return filepath.Join(c.ProcRoot, "stat") }

// MemInfoPath is the memory/swap counter file under ProcRoot.
func (c Config) MemInfoPath() string { return filepath.Join(c.ProcRoot, "meminfo") }

// NetDevPath is the per-interface network counter file under ProcRoot.
func (c Config) NetDevPath() string { return filepath.Join(c.ProcRoot, "net", "dev") }
