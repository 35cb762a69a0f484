package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postclinics/clinic-dashboard/internal/appointment"
	"github.com/postclinics/clinic-dashboard/internal/kpi"
)

type listerFunc func(ctx context.Context) ([]appointment.Appointment, error)

func (f listerFunc) ListAppointments(ctx context.Context) ([]appointment.Appointment, error) {
	return f(ctx)
}

type resolverFunc func(err error) error

func (f resolverFunc) Resolve(err error) error { return f(err) }

func fixedList(list []appointment.Appointment) listerFunc {
	return func(context.Context) ([]appointment.Appointment, error) { return list, nil }
}

func TestReloadReplacesSnapshot(t *testing.T) {
	list := []appointment.Appointment{
		{ID: "a1", PatientName: "Maria", Status: appointment.StatusConfirmed},
		{ID: "a2", PatientName: "João"},
	}
	s := New(fixedList(list), nil, nil)

	assert.Empty(t, s.Snapshot())
	assert.EqualValues(t, 0, s.Version())

	require.NoError(t, s.Reload(context.Background()))
	assert.Equal(t, list, s.Snapshot())
	assert.EqualValues(t, 1, s.Version())
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(fixedList([]appointment.Appointment{{ID: "a1", PatientName: "Maria"}}), nil, nil)
	require.NoError(t, s.Reload(context.Background()))

	snap := s.Snapshot()
	snap[0].PatientName = "mutated"
	assert.Equal(t, "Maria", s.Snapshot()[0].PatientName)
}

func TestReloadIdempotent(t *testing.T) {
	list := []appointment.Appointment{
		{ID: "a1", DateTime: "2026-08-29T10:00", Status: appointment.StatusConfirmed},
		{ID: "a2", DateTime: "2026-09-02T11:00"},
	}
	s := New(fixedList(list), nil, nil)

	require.NoError(t, s.Reload(context.Background()))
	first := s.Snapshot()
	firstRate := kpi.ConfirmationRate(first)

	require.NoError(t, s.Reload(context.Background()))
	assert.Equal(t, first, s.Snapshot())
	assert.Equal(t, firstRate, kpi.ConfirmationRate(s.Snapshot()))
}

func TestReloadNotifiesListeners(t *testing.T) {
	s := New(fixedList(nil), nil, nil)
	var mu sync.Mutex
	notified := 0
	s.OnChange(func() {
		mu.Lock()
		notified++
		mu.Unlock()
	})

	require.NoError(t, s.Reload(context.Background()))
	require.NoError(t, s.Reload(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, notified)
}

func TestReloadRoutesErrorsThroughResolver(t *testing.T) {
	resolved := assert.AnError
	var seen error
	s := New(
		listerFunc(func(context.Context) ([]appointment.Appointment, error) {
			return nil, context.DeadlineExceeded
		}),
		resolverFunc(func(err error) error {
			seen = err
			return resolved
		}),
		nil,
	)

	err := s.Reload(context.Background())
	assert.Equal(t, resolved, err)
	assert.Equal(t, context.DeadlineExceeded, seen)
	assert.Empty(t, s.Snapshot(), "failed reload must not touch the snapshot")
}

// A slow response from an older reload must not overwrite the snapshot
// applied by a newer, faster reload.
func TestStaleReloadDiscarded(t *testing.T) {
	oldList := []appointment.Appointment{{ID: "old"}}
	newList := []appointment.Appointment{{ID: "new"}}

	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	call := 0
	var mu sync.Mutex
	lister := listerFunc(func(context.Context) ([]appointment.Appointment, error) {
		mu.Lock()
		call++
		n := call
		mu.Unlock()
		if n == 1 {
			close(firstStarted)
			<-releaseFirst
			return oldList, nil
		}
		return newList, nil
	})
	s := New(lister, nil, nil)

	done := make(chan error, 1)
	go func() { done <- s.Reload(context.Background()) }()
	<-firstStarted

	// Second reload wins the race.
	require.NoError(t, s.Reload(context.Background()))
	assert.Equal(t, newList, s.Snapshot())

	close(releaseFirst)
	require.NoError(t, <-done)

	assert.Equal(t, newList, s.Snapshot(), "stale response must be discarded")
	assert.EqualValues(t, 1, s.Version(), "discarded response must not bump the version")
}
