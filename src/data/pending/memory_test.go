package pending

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(ttl)
	s.now = clock.now
	return s, clock
}

func TestMemoryStore_PutGetTake(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Hour)

	require.NoError(t, s.Put(ctx, &Proposal{ID: "a", Subject: "X", Description: "Y"}))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "X", got.Subject)
	assert.Empty(t, got.Format)

	got, err = s.SetFormat(ctx, "a", "Whitepaper")
	require.NoError(t, err)
	assert.Equal(t, "Whitepaper", got.Format)

	taken, err := s.Take(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Whitepaper", taken.Format)

	_, err = s.Take(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_UnknownID(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Hour)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.SetFormat(ctx, "missing", "Masterclass")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Hour)

	require.NoError(t, s.Put(ctx, &Proposal{ID: "a"}))
	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "a"))

	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Hour)
	require.NoError(t, s.Put(ctx, &Proposal{ID: "a", Subject: "X"}))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	got.Subject = "mutated"

	again, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "X", again.Subject)
}

func TestMemoryStore_ExpiredEntriesAreGone(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(10 * time.Minute)
	require.NoError(t, s.Put(ctx, &Proposal{ID: "a"}))

	clock.advance(10 * time.Minute)

	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_SetFormatExtendsLifetime(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(10 * time.Minute)
	require.NoError(t, s.Put(ctx, &Proposal{ID: "a"}))

	clock.advance(8 * time.Minute)
	_, err := s.SetFormat(ctx, "a", "Masterclass")
	require.NoError(t, err)

	clock.advance(8 * time.Minute)
	got, err := s.Take(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Masterclass", got.Format)
}

func TestMemoryStore_Reap(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(10 * time.Minute)
	require.NoError(t, s.Put(ctx, &Proposal{ID: "old"}))
	clock.advance(6 * time.Minute)
	require.NoError(t, s.Put(ctx, &Proposal{ID: "fresh"}))
	clock.advance(5 * time.Minute)

	assert.Equal(t, 1, s.Reap(clock.now()))
	assert.Equal(t, 1, s.Len())

	_, err := s.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestMemoryStore_ConcurrentTakeYieldsOneWinner(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Hour)
	require.NoError(t, s.Put(ctx, &Proposal{ID: "a"}))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Take(ctx, "a"); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}
