package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/pharmacy-storefront/internal/domain"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/e"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestStore(ttl time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)}
	s := NewStore(ttl, logger.NewNopLogger())
	s.now = clock.now

	return s, clock
}

func TestStore_CreateGetDelete(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	sess := s.Create()
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, 1, s.Len())

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	s.Delete(sess.ID)
	_, err = s.Get(sess.ID)
	assert.ErrorIs(t, err, e.ErrSessionNotFound)

	s.Delete("unknown")
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	a, b := s.Create(), s.Create()
	p := domain.Product{ID: 1, Price: 100, Stock: 10}

	require.NoError(t, a.Do(func(st *State) error {
		return st.Cart.AddItem(p, 2)
	}))

	require.NoError(t, b.Do(func(st *State) error {
		assert.True(t, st.Cart.IsEmpty())
		return nil
	}))
}

func TestStore_EvictIdle(t *testing.T) {
	s, clock := newTestStore(10 * time.Minute)
	stale := s.Create()
	clock.advance(6 * time.Minute)
	fresh := s.Create()
	clock.advance(6 * time.Minute)

	assert.Equal(t, 1, s.EvictIdle())

	_, err := s.Get(stale.ID)
	assert.ErrorIs(t, err, e.ErrSessionNotFound)
	_, err = s.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestStore_GetExtendsLifetime(t *testing.T) {
	s, clock := newTestStore(10 * time.Minute)
	sess := s.Create()

	clock.advance(8 * time.Minute)
	_, err := s.Get(sess.ID)
	require.NoError(t, err)
	clock.advance(8 * time.Minute)

	assert.Equal(t, 0, s.EvictIdle())
}

func TestStore_NoTTLNeverEvicts(t *testing.T) {
	s, clock := newTestStore(0)
	s.Create()
	clock.advance(24 * time.Hour)

	assert.Equal(t, 0, s.EvictIdle())
}

func TestStore_RunStopsOnCancel(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestRecordSearch(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	sess := s.Create()

	err := sess.Do(func(st *State) error {
		st.RecordSearch("  dipirona  ")
		st.RecordSearch("")
		st.RecordSearch("   ")
		st.RecordSearch("dipirona")
		st.RecordSearch("amox")
		return nil
	})
	require.NoError(t, err)

	_ = sess.Do(func(st *State) error {
		assert.Equal(t, []string{"amox", "dipirona"}, st.RecentSearches())
		return nil
	})
}

func TestRecordSearch_KeepsFiveNewest(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	sess := s.Create()

	_ = sess.Do(func(st *State) error {
		for _, q := range []string{"a", "b", "c", "d", "e", "f"} {
			st.RecordSearch(q)
		}
		assert.Equal(t, []string{"f", "e", "d", "c", "b"}, st.RecentSearches())
		return nil
	})
}
