package engine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-reldate/internal/engine"
)

// recorder is a thread-safe engine.Publisher.
type recorder struct {
	mu    sync.Mutex
	feeds [][]byte
}

func (r *recorder) Update(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feeds = append(r.feeds, data)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.feeds)
}

func TestWatch_PeriodicSync(t *testing.T) {
	gen := &engine.Generator{Clock: MockClock{CurrentTime: day(2020, 6, 1)}}
	rs := &engine.RuleSet{Rules: []engine.Rule{{Name: "A", Expression: "@7M@4d"}}}
	pub := &recorder{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		gen.Watch(ctx, rs, pub, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return pub.count() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on cancellation")
	}
	assert.Contains(t, string(pub.feeds[0]), "BEGIN:VEVENT")
}

func TestWatch_DisabledInterval(t *testing.T) {
	gen := &engine.Generator{Clock: MockClock{CurrentTime: day(2020, 6, 1)}}
	pub := &recorder{}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	gen.Watch(ctx, &engine.RuleSet{}, pub, 0)

	assert.Equal(t, 1, pub.count(), "only the initial sync runs")
}

func TestWatch_FailedSyncPublishesNothing(t *testing.T) {
	gen := &engine.Generator{Clock: MockClock{CurrentTime: day(2020, 6, 1)}}
	rs := &engine.RuleSet{Calendar: engine.CalendarSpec{Preset: "atlantis"}}
	pub := &recorder{}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	gen.Watch(ctx, rs, pub, 5*time.Millisecond)

	assert.Zero(t, pub.count())
}
