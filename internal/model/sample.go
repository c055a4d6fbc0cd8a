package model

import "time"

// CPUCounterSample is one cpu row of /proc/stat. All fields are cumulative
// clock ticks (USER_HZ) since boot.
type CPUCounterSample struct {
	Name    string // "cpu" for the aggregate, "cpuN" per core
	User    uint64
	Nice    uint64
	System  uint64
	Idle    uint64
	IOWait  uint64
	IRQ     uint64
	SoftIRQ uint64
}

// Total sums all accounted tick fields.
func (s CPUCounterSample) Total() uint64 {
	return s.User + s.Nice + s.System + s.Idle + s.IOWait + s.IRQ + s.SoftIRQ
}

// CPUUtilization is the derived busy percentage between two consecutive
// samples of the same name.
type CPUUtilization struct {
	Name    string
	Percent float64
}

// MemorySample mirrors the Mem*/Swap* rows of /proc/meminfo, in kB.
// Zero means the kernel did not report the field.
type MemorySample struct {
	MemTotal     uint64
	MemFree      uint64
	MemAvailable uint64
	SwapTotal    uint64
	SwapFree     uint64
	SwapCached   uint64
}

// NetworkCounterSample is one interface row of /proc/net/dev. Counters are
// cumulative and monotonically increasing.
type NetworkCounterSample struct {
	Interface string
	RxBytes   uint64
	RxPackets uint64
	RxErrs    uint64
	RxDrop    uint64
	TxBytes   uint64
	TxPackets uint64
	TxErrs    uint64
	TxDrop    uint64
}

// DiskUsageSample describes one device-backed mount, sizes in KB blocks.
type DiskUsageSample struct {
	Filesystem     string
	Total          uint64
	Used           uint64
	Available      uint64
	UsedPercentage string
	Mountpoint     string
}

// ProcessRecord is one row per thread, not per process. PID is the owning
// thread-group id, TID the thread's own id (equal for the group leader).
type ProcessRecord struct {
	PID         int
	TID         int
	ParentPID   int
	Name        string
	Umask       string
	State       string
	Nice        int
	ThreadCount int
	ResidentKB  uint64
	SwappedKB   uint64
	Command     string
	User        string
	CPUTicks    uint64
	CPUPercent  float64
}

// ProcessSnapshot is rebuilt from scratch every enumeration cycle.
type ProcessSnapshot struct {
	Taken     time.Time
	Processes []ProcessRecord
}

// CPUSnapshot carries the derived utilization of the aggregate plus every
// core, in /proc/stat order, and the load averages.
type CPUSnapshot struct {
	Taken        time.Time
	Utilizations []CPUUtilization
	Load1        float64
	Load5        float64
	Load15       float64
}

// MemorySnapshot is a timestamped meminfo reading.
type MemorySnapshot struct {
	Taken  time.Time
	Memory MemorySample
}

// DiskSnapshot lists every device-backed mount seen this cycle.
type DiskSnapshot struct {
	Taken  time.Time
	Mounts []DiskUsageSample
}

// NetworkSnapshot holds the busiest interface's raw counters plus the
// derived byte rates. Rates are zero on the first observation of an
// interface.
type NetworkSnapshot struct {
	Taken         time.Time
	Counters      NetworkCounterSample
	RxBytesPerSec float64
	TxBytesPerSec float64
}
