package store

// Saver persists snapshots of one record asynchronously. Writes are
// fire-and-forget from the caller's point of view: the in-memory state a
// command produced is already visible, the durable write completes shortly
// after. Pending snapshots collapse latest-wins.
type Saver[T any] struct {
	st   *Store
	key  Key
	ch   chan T
	done chan struct{}
}

// NewSaver starts a Saver writing snapshots of type T to key.
func NewSaver[T any](st *Store, key Key) *Saver[T] {
	s := &Saver[T]{
		st:   st,
		key:  key,
		ch:   make(chan T, 1),
		done: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Saver[T]) run() {
	defer close(s.done)
	for snap := range s.ch {
		s.st.Write(s.key, snap)
	}
}

// Save queues a snapshot, replacing any not-yet-written one.
func (s *Saver[T]) Save(snap T) {
	for {
		select {
		case s.ch <- snap:
			return
		default:
			// Drop the stale pending snapshot and retry.
			select {
			case <-s.ch:
			default:
			}
		}
	}
}

// Close flushes the pending snapshot (if any) and stops the Saver.
func (s *Saver[T]) Close() {
	close(s.ch)
	<-s.done
}
