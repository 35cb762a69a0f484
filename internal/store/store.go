package store

import (
	"context"
	"sync"

	"github.com/postclinics/clinic-dashboard/internal/appointment"
	"github.com/postclinics/clinic-dashboard/pkg/logging"
)

// Lister is the gateway surface the store depends on.
type Lister interface {
	ListAppointments(ctx context.Context) ([]appointment.Appointment, error)
}

// ErrorResolver converts a gateway failure into its user-facing outcome.
// Session-class failures tear down the session; everything else passes
// through for a generic error notification.
type ErrorResolver interface {
	Resolve(err error) error
}

// Store is the dashboard's authoritative cache of the appointment list.
// Every mutation elsewhere triggers a full Reload; the snapshot is always
// replaced wholesale, never patched, so derived views see either the old
// complete list or the new one.
type Store struct {
	lister   Lister
	resolver ErrorResolver
	logger   *logging.Logger

	mu         sync.Mutex
	snapshot   []appointment.Appointment
	version    uint64
	nextGen    uint64
	appliedGen uint64
	listeners  []func()
}

// New creates an empty store. resolver may be nil, in which case reload
// failures are returned as-is.
func New(lister Lister, resolver ErrorResolver, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{lister: lister, resolver: resolver, logger: logger}
}

// Reload fetches the full list and replaces the snapshot atomically.
// Each reload carries a monotonic generation; a response that resolves
// after a newer reload has already been applied is discarded, so a slow
// stale response can never overwrite a faster fresh one.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.nextGen++
	gen := s.nextGen
	s.mu.Unlock()

	list, err := s.lister.ListAppointments(ctx)
	if err != nil {
		if s.resolver != nil {
			return s.resolver.Resolve(err)
		}
		return err
	}

	s.mu.Lock()
	if gen <= s.appliedGen {
		s.mu.Unlock()
		s.logger.Debug("discarding stale reload response", "generation", gen, "applied", s.appliedGen)
		return nil
	}
	s.appliedGen = gen
	s.snapshot = list
	s.version++
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return nil
}

// Snapshot returns a copy of the current list. Callers may hold and
// iterate it freely; the store never mutates a returned slice.
func (s *Store) Snapshot() []appointment.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]appointment.Appointment, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// Version increments on every applied replace. The live-refresh socket
// uses it to tell clients when to refetch.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// OnChange registers a listener invoked after every applied replace.
// Listeners run on the reloading goroutine and must not block.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
