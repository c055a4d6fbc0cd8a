// Package collect runs the per-subsystem sampling loops and the single-slot
// mailboxes they publish through. One goroutine per subsystem owns its
// delta-engine state exclusively; the only cross-goroutine traffic is the
// immutable snapshot dropped into the mailbox.
package collect

// Mailbox is a single-slot overwrite channel: a new snapshot replaces an
// unconsumed one instead of queueing behind it, so a stalled consumer can
// never build a backlog.
type Mailbox[T any] struct {
	slot chan T
}

func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{slot: make(chan T, 1)}
}

// Publish stores v, discarding any unconsumed previous value.
func (m *Mailbox[T]) Publish(v T) {
	for {
		select {
		case m.slot <- v:
			return
		default:
			// Slot full: drain the stale value and retry.
			select {
			case <-m.slot:
			default:
			}
		}
	}
}

// TryTake returns the pending value without blocking. ok is false when
// nothing has been published since the last take; the caller keeps showing
// its previous snapshot.
func (m *Mailbox[T]) TryTake() (T, bool) {
	select {
	case v := <-m.slot:
		return v, true
	default:
		var zero T
		return zero, false
	}
}
