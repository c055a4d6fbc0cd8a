// Package sampler provides the five sampling functions the collector loops
// run. Each sampler owns its delta-engine state exclusively; instances must
// not be shared between goroutines.
package sampler

import (
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/load"

	"github.com/calebstern/sysdash/internal/config"
	"github.com/calebstern/sysdash/internal/metrics"
	"github.com/calebstern/sysdash/internal/model"
	"github.com/calebstern/sysdash/internal/procfs"
	"github.com/calebstern/sysdash/internal/proctree"
)

// CPU samples /proc/stat and derives per-name utilization. The first cycle
// publishes a snapshot without utilizations (no prior sample exists yet).
type CPU struct {
	statPath string
	delta    *metrics.CPUDelta
}

func NewCPU(cfg config.Config) *CPU {
	return &CPU{statPath: cfg.StatPath(), delta: metrics.NewCPUDelta()}
}

func (s *CPU) Sample() (model.CPUSnapshot, error) {
	counters, err := procfs.ReadCPUCounters(s.statPath)
	if err != nil {
		return model.CPUSnapshot{}, err
	}

	snapshot := model.CPUSnapshot{Taken: time.Now()}
	for _, counter := range counters {
		util, ok := s.delta.Observe(counter)
		if !ok {
			continue
		}
		snapshot.Utilizations = append(snapshot.Utilizations, util)
	}

	// Load averages are decoration on the CPU widget; their failure does
	// not invalidate the tick deltas.
	if avg, err := load.Avg(); err == nil {
		snapshot.Load1, snapshot.Load5, snapshot.Load15 = avg.Load1, avg.Load5, avg.Load15
	}
	return snapshot, nil
}

// Memory samples /proc/meminfo.
type Memory struct {
	path string
}

func NewMemory(cfg config.Config) *Memory {
	return &Memory{path: cfg.MemInfoPath()}
}

func (s *Memory) Sample() (model.MemorySnapshot, error) {
	mem, err := procfs.ReadMemInfo(s.path)
	if err != nil {
		return model.MemorySnapshot{}, err
	}
	return model.MemorySnapshot{Taken: time.Now(), Memory: mem}, nil
}

// Disk enumerates device-backed mounts with per-mount usage.
type Disk struct{}

func NewDisk() *Disk { return &Disk{} }

func (s *Disk) Sample() (model.DiskSnapshot, error) {
	partitions, err := disk.Partitions(false)
	if err != nil {
		return model.DiskSnapshot{}, err
	}

	snapshot := model.DiskSnapshot{Taken: time.Now()}
	for _, p := range partitions {
		if !strings.HasPrefix(p.Device, "/dev/") {
			continue
		}
		usage, err := disk.Usage(p.Mountpoint)
		if err != nil {
			// Unreadable mount (stale NFS, permissions): skip it.
			continue
		}
		snapshot.Mounts = append(snapshot.Mounts, model.DiskUsageSample{
			Filesystem:     p.Device,
			Total:          usage.Total / 1024,
			Used:           usage.Used / 1024,
			Available:      usage.Free / 1024,
			UsedPercentage: formatPercent(usage.UsedPercent),
			Mountpoint:     p.Mountpoint,
		})
	}
	return snapshot, nil
}

// Network samples /proc/net/dev, selects the busiest non-loopback interface
// and derives its byte rates. The selection can move between interfaces
// mid-run; the rate engine keys by interface name so a switch starts a
// fresh delta instead of mixing counters.
type Network struct {
	path string
	rate *metrics.NetRate
}

func NewNetwork(cfg config.Config) *Network {
	return &Network{path: cfg.NetDevPath(), rate: metrics.NewNetRate()}
}

func (s *Network) Sample() (model.NetworkSnapshot, error) {
	samples, err := procfs.ReadNetDev(s.path)
	if err != nil {
		return model.NetworkSnapshot{}, err
	}
	busiest, ok := procfs.BusiestInterface(samples)
	if !ok {
		return model.NetworkSnapshot{Taken: time.Now()}, nil
	}

	snapshot := model.NetworkSnapshot{Taken: time.Now(), Counters: busiest}
	if rx, tx, ok := s.rate.Observe(busiest, snapshot.Taken); ok {
		snapshot.RxBytesPerSec, snapshot.TxBytesPerSec = rx, tx
	}
	return snapshot, nil
}

// Processes walks the full process/thread tree.
type Processes struct {
	enum *proctree.Enumerator
}

func NewProcesses(cfg config.Config) *Processes {
	return &Processes{enum: proctree.NewEnumerator(cfg.ProcRoot)}
}

func (s *Processes) Sample() (model.ProcessSnapshot, error) {
	return s.enum.Snapshot(time.Now())
}

// formatPercent renders usage the way df does, as a rounded integer.
func formatPercent(v float64) string {
	if v < 0 {
		v = 0
	}
	return fmt.Sprintf("%d%%", int(v+0.5))
}
