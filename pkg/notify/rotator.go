package notify

import (
	"context"
	"sync"
	"time"

	"github.com/esamadhan/volunteer-api/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LiveUpdates are the messages cycled through by the landing page ticker
var LiveUpdates = []string{
	"🆕 New issue reported: Traffic signal malfunction",
	"✅ Issue resolved: Garbage collection on Park Road",
	"🔄 Issue status updated: Street repair in progress",
	"👥 Community validation: Pothole issue confirmed",
	"🏆 Badge earned: Community Helper milestone reached",
}

const subscriberBuffer = 8

// Rotator publishes LiveUpdates round-robin to its subscribers.
// Ticks with no subscribers publish nothing and do not advance the rotation.
type Rotator struct {
	messages []string
	logger   *zap.Logger

	mu    sync.Mutex
	subs  map[uint64]chan models.Notification
	next  uint64
	index int
}

// NewRotator creates a rotator over messages (LiveUpdates when empty)
func NewRotator(messages []string, logger *zap.Logger) *Rotator {
	if len(messages) == 0 {
		messages = LiveUpdates
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rotator{
		messages: append([]string(nil), messages...),
		logger:   logger,
		subs:     make(map[uint64]chan models.Notification),
	}
}

// Subscribe returns a channel of notifications and a func that detaches it
func (r *Rotator) Subscribe() (<-chan models.Notification, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.next
	r.next++
	ch := make(chan models.Notification, subscriberBuffer)
	r.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if c, ok := r.subs[id]; ok {
				delete(r.subs, id)
				close(c)
			}
		})
	}
}

// Subscribers returns the number of attached subscribers
func (r *Rotator) Subscribers() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.subs)
}

// Tick publishes the next message if anyone is listening.
// It reports whether a message was published.
func (r *Rotator) Tick(now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.subs) == 0 {
		return false
	}
	n := models.Notification{
		ID:        uuid.NewString(),
		Message:   r.messages[r.index%len(r.messages)],
		Type:      models.NotifyInfo,
		CreatedAt: now,
	}
	r.index++

	for id, ch := range r.subs {
		select {
		case ch <- n:
		default:
			r.logger.Debug("live update dropped for slow subscriber", zap.Uint64("subscriber", id))
		}
	}
	return true
}

// Run ticks every interval until ctx is done, then detaches all subscribers
func (r *Rotator) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer r.closeAll()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Tick(now)
		}
	}
}

func (r *Rotator) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, ch := range r.subs {
		delete(r.subs, id)
		close(ch)
	}
}
