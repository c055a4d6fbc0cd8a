package proctree

import "golang.org/x/sys/unix"

// Niceness bounds accepted by the scheduler.
const (
	MinNiceness = -20
	MaxNiceness = 19
)

// Kill forcefully terminates the thread's owning process (SIGKILL). The
// call is fire-and-forget: a permission failure is not surfaced, the next
// enumeration cycle shows whether the process is gone.
func Kill(tid int) error {
	return unix.Kill(tid, unix.SIGKILL)
}

// Renice adjusts the scheduling niceness of the given thread. Values
// outside [-20, 19] are silently ignored; like Kill, failures are resolved
// by the next enumeration cycle, not by error plumbing.
func Renice(tid, niceness int) error {
	if niceness < MinNiceness || niceness > MaxNiceness {
		return nil
	}
	return unix.Setpriority(unix.PRIO_PROCESS, tid, niceness)
}
