package proctree

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebstern/sysdash/internal/metrics"
	"github.com/calebstern/sysdash/internal/model"
)

type threadFixture struct {
	pid, tid     int
	name         string
	state        string
	ppid         int
	nice         int
	threads      int
	utime, stime uint64
	residentKB   uint64
	swappedKB    uint64
	cmdline      string
}

func writeThread(t *testing.T, root string, fx threadFixture) {
	t.Helper()
	dir := filepath.Join(root, strconv.Itoa(fx.pid), "task", strconv.Itoa(fx.tid))
	require.NoError(t, os.MkdirAll(dir, 0o755))

	status := fmt.Sprintf("Name:\t%s\nUmask:\t0022\nVmRSS:\t%d kB\nVmSwap:\t%d kB\n",
		fx.name, fx.residentKB, fx.swappedKB)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "status"), []byte(status), 0o644))

	stat := fmt.Sprintf("%d (%s) %s %d 0 0 0 -1 0 0 0 0 0 %d %d 0 0 20 %d %d 0 0 0 0 0\n",
		fx.tid, fx.name, fx.state, fx.ppid, fx.utime, fx.stime, fx.nice, fx.threads)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stat"), []byte(stat), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cmdline"), []byte(fx.cmdline), 0o644))
}

func recordByTID(t *testing.T, snapshot model.ProcessSnapshot, tid int) model.ProcessRecord {
	t.Helper()
	for _, r := range snapshot.Processes {
		if r.TID == tid {
			return r
		}
	}
	t.Fatalf("no record for tid %d", tid)
	return model.ProcessRecord{}
}

func TestSnapshot_OneRecordPerThread(t *testing.T) {
	root := t.TempDir()
	writeThread(t, root, threadFixture{
		pid: 100, tid: 100, name: "worker pool", state: "S", ppid: 1,
		nice: 5, threads: 2, utime: 30, stime: 12,
		residentKB: 2048, swappedKB: 64,
		cmdline: "/usr/bin/worker\x00--pool\x00",
	})
	writeThread(t, root, threadFixture{
		pid: 100, tid: 101, name: "worker pool", state: "R", ppid: 1,
		nice: 5, threads: 2, utime: 100, stime: 50,
	})

	snapshot, err := NewEnumerator(root).Snapshot(time.Now())
	require.NoError(t, err)
	require.Len(t, snapshot.Processes, 2)

	leader := recordByTID(t, snapshot, 100)
	assert.Equal(t, 100, leader.PID)
	assert.Equal(t, 1, leader.ParentPID)
	assert.Equal(t, "worker pool", leader.Name)
	assert.Equal(t, "0022", leader.Umask)
	assert.Equal(t, "S", leader.State)
	assert.Equal(t, 5, leader.Nice)
	assert.Equal(t, 2, leader.ThreadCount)
	assert.Equal(t, uint64(2048), leader.ResidentKB)
	assert.Equal(t, uint64(64), leader.SwappedKB)
	assert.Equal(t, "/usr/bin/worker --pool", leader.Command)
	assert.Equal(t, uint64(42), leader.CPUTicks)

	worker := recordByTID(t, snapshot, 101)
	assert.Equal(t, 100, worker.PID)
	assert.Equal(t, uint64(150), worker.CPUTicks)
}

func TestSnapshot_FirstCycleHasNoCPUPercent(t *testing.T) {
	root := t.TempDir()
	writeThread(t, root, threadFixture{pid: 7, tid: 7, name: "init", state: "S", threads: 1, utime: 99})

	snapshot, err := NewEnumerator(root).Snapshot(time.Now())
	require.NoError(t, err)
	assert.Zero(t, recordByTID(t, snapshot, 7).CPUPercent)
}

func TestSnapshot_ThreadCPUShareAcrossCycles(t *testing.T) {
	root := t.TempDir()
	leader := threadFixture{pid: 100, tid: 100, name: "svc", state: "S", threads: 2, utime: 10}
	worker := threadFixture{pid: 100, tid: 101, name: "svc", state: "R", threads: 2, utime: 200, stime: 100}
	writeThread(t, root, leader)
	writeThread(t, root, worker)

	enum := NewEnumerator(root)
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	_, err := enum.Snapshot(t0)
	require.NoError(t, err)

	// One second later the worker accumulated 50 more ticks.
	worker.utime += 30
	worker.stime += 20
	writeThread(t, root, worker)

	snapshot, err := enum.Snapshot(t0.Add(time.Second))
	require.NoError(t, err)

	expected := 100 * (50 / metrics.ClockTicks()) / 1.0
	assert.InDelta(t, expected, recordByTID(t, snapshot, 101).CPUPercent, 1e-9)
	assert.Zero(t, recordByTID(t, snapshot, 100).CPUPercent)
}

func TestSnapshot_ResolvesOwnerUser(t *testing.T) {
	root := t.TempDir()
	writeThread(t, root, threadFixture{pid: 5, tid: 5, name: "me", state: "S", threads: 1})

	snapshot, err := NewEnumerator(root).Snapshot(time.Now())
	require.NoError(t, err)

	current, err := user.Current()
	require.NoError(t, err)
	assert.Equal(t, current.Username, recordByTID(t, snapshot, 5).User)
}

func TestSnapshot_SkipsBrokenThreadsOnly(t *testing.T) {
	root := t.TempDir()
	writeThread(t, root, threadFixture{pid: 10, tid: 10, name: "ok", state: "S", threads: 1})

	// A thread that vanished mid-scan: directory exists, files gone.
	ghost := filepath.Join(root, "11", "task", "11")
	require.NoError(t, os.MkdirAll(ghost, 0o755))

	snapshot, err := NewEnumerator(root).Snapshot(time.Now())
	require.NoError(t, err)
	require.Len(t, snapshot.Processes, 1)
	assert.Equal(t, 10, snapshot.Processes[0].TID)
}

func TestSnapshot_IgnoresNonNumericEntries(t *testing.T) {
	root := t.TempDir()
	writeThread(t, root, threadFixture{pid: 10, tid: 10, name: "ok", state: "S", threads: 1})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sys"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "uptime"), []byte("1 2"), 0o644))

	snapshot, err := NewEnumerator(root).Snapshot(time.Now())
	require.NoError(t, err)
	assert.Len(t, snapshot.Processes, 1)
}

func TestSnapshot_RootOpenFailureAbortsCycle(t *testing.T) {
	_, err := NewEnumerator("/nonexistent/proc").Snapshot(time.Now())
	assert.Error(t, err)
}

func TestRenice_OutOfRangeIsIgnored(t *testing.T) {
	// No syscall is attempted for out-of-range values, so no error either.
	assert.NoError(t, Renice(os.Getpid(), -21))
	assert.NoError(t, Renice(os.Getpid(), 20))
}
