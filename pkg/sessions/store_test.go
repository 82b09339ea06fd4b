package sessions

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/esamadhan/volunteer-api/pkg/catalog"
	"github.com/esamadhan/volunteer-api/pkg/models"
	"github.com/esamadhan/volunteer-api/pkg/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestOpenAndGet(t *testing.T) {
	s := NewStore(catalog.Default(), Options{})

	sess, err := s.Open("infrastructure")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, registration.StateFormOpen, sess.Controller.State())

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestOpenUnknownCategory(t *testing.T) {
	s := NewStore(catalog.Default(), Options{})

	sess, err := s.Open("roads")
	require.ErrorIs(t, err, catalog.ErrCategoryNotFound)
	assert.Equal(t, 0, s.Len())

	notes := sess.Feed.Drain(time.Now())
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotifyError, notes[0].Type)
}

func TestCloseDiscards(t *testing.T) {
	s := NewStore(catalog.Default(), Options{})
	sess, err := s.Open("environment")
	require.NoError(t, err)

	s.Close(sess.ID)
	s.Close(sess.ID)
	s.Close("never-existed")

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, registration.StateClosed, sess.Controller.State())
	assert.Nil(t, sess.Controller.Draft())
}

func TestSweep(t *testing.T) {
	base := time.Date(2025, 9, 15, 9, 0, 0, 0, time.UTC)
	clock := base
	s := NewStore(catalog.Default(), Options{
		TTL: time.Minute,
		Now: func() time.Time { return clock },
	})

	idle, err := s.Open("community")
	require.NoError(t, err)
	busy, err := s.Open("safety")
	require.NoError(t, err)

	clock = base.Add(50 * time.Second)
	_, err = s.Get(busy.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, s.Sweep(base.Add(90*time.Second)))
	_, err = s.Get(idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Get(busy.ID)
	assert.NoError(t, err)
	assert.Equal(t, registration.StateClosed, idle.Controller.State())
}

func TestRunStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewStore(catalog.Default(), Options{TTL: time.Nanosecond})
	_, err := s.Open("infrastructure")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Run(ctx, time.Millisecond)
	}()

	require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	wg.Wait()
}

func TestConcurrentSessionsAreIndependent(t *testing.T) {
	s := NewStore(catalog.Default(), Options{})

	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess, err := s.Open("infrastructure")
			if err != nil {
				t.Errorf("open: %v", err)
				return
			}
			if i%2 == 0 {
				if _, err := sess.Controller.ToggleTaskSelection("INF-001"); err != nil {
					t.Errorf("toggle: %v", err)
				}
			}
			ids[i] = sess.ID
		}(i)
	}
	wg.Wait()

	assert.Equal(t, len(ids), s.Len())
	for i, id := range ids {
		sess, err := s.Get(id)
		require.NoError(t, err)
		assert.Equal(t, i%2 == 0, sess.Controller.Draft().TaskIDs["INF-001"])
	}
}
