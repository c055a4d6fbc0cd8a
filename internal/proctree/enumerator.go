// Package proctree walks the process/thread namespace and turns it into
// ProcessSnapshots, one record per thread. It also hosts the kill/renice
// control actions issued from the process table.
package proctree

import (
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/calebstern/sysdash/internal/metrics"
	"github.com/calebstern/sysdash/internal/model"
	"github.com/calebstern/sysdash/internal/procfs"
)

// Enumerator builds one ProcessRecord per (pid, tid) pair under Root. It
// owns the per-tid CPU history exclusively; a single collector goroutine
// drives it.
type Enumerator struct {
	root      string
	threadCPU *metrics.ThreadCPU
	users     map[uint32]string
}

// NewEnumerator returns an enumerator over root, normally "/proc". Tests
// point it at a fixture tree.
func NewEnumerator(root string) *Enumerator {
	return &Enumerator{
		root:      root,
		threadCPU: metrics.NewThreadCPU(),
		users:     make(map[uint32]string),
	}
}

// Snapshot walks every pid's task directory and returns a fresh snapshot.
// A failure to list the process root aborts the whole cycle so the caller
// publishes nothing and the UI keeps the previous snapshot. Any failure on
// a single thread skips only that thread: the walk races against threads
// exiting mid-scan and that is expected, not an error.
func (e *Enumerator) Snapshot(now time.Time) (model.ProcessSnapshot, error) {
	entries, err := os.ReadDir(e.root)
	if err != nil {
		return model.ProcessSnapshot{}, err
	}

	var records []model.ProcessRecord
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || !entry.IsDir() {
			continue
		}

		taskDir := filepath.Join(e.root, entry.Name(), "task")
		tasks, err := os.ReadDir(taskDir)
		if err != nil {
			// Process exited between the two listings.
			continue
		}
		for _, task := range tasks {
			tid, err := strconv.Atoi(task.Name())
			if err != nil || !task.IsDir() {
				continue
			}
			record, ok := e.readThread(pid, tid)
			if !ok {
				continue
			}
			records = append(records, record)
		}
	}

	// Second pass: derive CPU share, then evict history for tids that
	// disappeared so the map cannot grow forever.
	seen := make(map[int]struct{}, len(records))
	for i := range records {
		records[i].CPUPercent = e.threadCPU.Observe(records[i].TID, records[i].CPUTicks, now)
		seen[records[i].TID] = struct{}{}
	}
	e.threadCPU.Prune(seen)

	return model.ProcessSnapshot{Taken: now, Processes: records}, nil
}

func (e *Enumerator) readThread(pid, tid int) (model.ProcessRecord, bool) {
	dir := filepath.Join(e.root, strconv.Itoa(pid), "task", strconv.Itoa(tid))

	statusFile, err := os.Open(filepath.Join(dir, "status"))
	if err != nil {
		return model.ProcessRecord{}, false
	}
	status := procfs.ParseThreadStatus(statusFile)
	statusFile.Close()

	statRaw, err := os.ReadFile(filepath.Join(dir, "stat"))
	if err != nil {
		return model.ProcessRecord{}, false
	}
	stat, ok := procfs.ParseThreadStat(string(statRaw))
	if !ok {
		return model.ProcessRecord{}, false
	}

	// cmdline is empty for kernel threads; the status name still applies.
	cmdRaw, _ := os.ReadFile(filepath.Join(dir, "cmdline"))
	command := procfs.FirstCmdline(cmdRaw)

	return model.ProcessRecord{
		PID:         pid,
		TID:         tid,
		ParentPID:   stat.ParentPID,
		Name:        status.Name,
		Umask:       status.Umask,
		State:       stat.State,
		Nice:        stat.Nice,
		ThreadCount: stat.ThreadCount,
		ResidentKB:  status.ResidentKB,
		SwappedKB:   status.SwappedKB,
		Command:     command,
		User:        e.ownerName(dir),
		CPUTicks:    stat.CPUTicks(),
	}, true
}

// ownerName resolves the directory's owning uid through the OS user
// database, falling back to the numeric uid for deleted accounts. Lookups
// are cached per uid for the lifetime of the enumerator.
func (e *Enumerator) ownerName(dir string) string {
	info, err := os.Stat(dir)
	if err != nil {
		return ""
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return ""
	}
	if name, ok := e.users[st.Uid]; ok {
		return name
	}

	name := strconv.FormatUint(uint64(st.Uid), 10)
	if u, err := user.LookupId(name); err == nil {
		name = u.Username
	}
	e.users[st.Uid] = name
	return name
}
