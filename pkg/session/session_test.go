package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/roomgrid/pkg/catalog"
	"github.com/matzehuels/roomgrid/pkg/errors"
	"github.com/matzehuels/roomgrid/pkg/grid"
	"github.com/matzehuels/roomgrid/pkg/layout"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time           { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := NewMemoryStore(ttl)
	m.now = clock.now
	return m, clock
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestStore(time.Hour)

	sess, err := m.Create(ctx, layout.DefaultOptions())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	got, err := m.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != sess {
		t.Error("Get should return the stored session")
	}

	if _, err := m.Get(ctx, uuid.New()); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("Get(unknown) error = %v, want SESSION_NOT_FOUND", err)
	}
}

func TestCreateRejectsBadOptions(t *testing.T) {
	m, _ := newTestStore(time.Hour)
	opts := layout.DefaultOptions()
	opts.Rows = -1
	if _, err := m.Create(context.Background(), opts); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("Create error = %v, want CONFIGURATION_ERROR", err)
	}
	if m.Len() != 0 {
		t.Error("failed Create should not store a session")
	}
}

func TestExpiryAndSlidingTTL(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestStore(time.Hour)
	sess, _ := m.Create(ctx, layout.DefaultOptions())

	clock.advance(50 * time.Minute)
	if _, err := m.Get(ctx, sess.ID); err != nil {
		t.Fatalf("session should still be alive: %v", err)
	}

	// Get extended the lifetime by another hour.
	clock.advance(50 * time.Minute)
	if _, err := m.Get(ctx, sess.ID); err != nil {
		t.Fatalf("touched session should still be alive: %v", err)
	}

	clock.advance(61 * time.Minute)
	if _, err := m.Get(ctx, sess.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("expired Get error = %v, want SESSION_NOT_FOUND", err)
	}

	n, err := m.Cleanup(ctx)
	if err != nil || n != 1 {
		t.Errorf("Cleanup() = %d, %v; want 1, nil", n, err)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after cleanup", m.Len())
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestStore(time.Hour)
	sess, _ := m.Create(ctx, layout.DefaultOptions())

	if err := m.Delete(ctx, sess.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Get(ctx, sess.ID); err == nil {
		t.Error("deleted session should be gone")
	}
	if err := m.Delete(ctx, sess.ID); err != nil {
		t.Errorf("deleting twice should succeed: %v", err)
	}
}

func TestDoSerializesAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(0)
	sess, err := m.Create(ctx, layout.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	chair := catalog.Item{Name: "Chair", SizeCells: grid.Cells{W: 1, H: 1}}
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sess.Do(func(st *layout.State) error {
				_, err := st.Drop(chair, layout.Pointer{})
				return err
			})
		}()
	}
	wg.Wait()

	_ = sess.Do(func(st *layout.State) error {
		if st.Len() != 20 {
			t.Errorf("Len() = %d, want 20", st.Len())
		}
		return nil
	})
}
