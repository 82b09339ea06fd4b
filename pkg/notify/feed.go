package notify

import (
	"sync"
	"time"

	"github.com/esamadhan/volunteer-api/pkg/models"
	"github.com/google/uuid"
)

// DefaultTTL is how long a notification stays on screen
const DefaultTTL = 5 * time.Second

const maxQueued = 50

// Feed collects transient notifications for one user session.
// It implements registration.Notifier.
type Feed struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	items []models.Notification
}

// NewFeed creates a feed whose notifications expire after ttl
func NewFeed(ttl time.Duration) *Feed {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Feed{ttl: ttl, now: time.Now}
}

// Notify queues a message. The oldest entries are dropped past the queue limit.
func (f *Feed) Notify(message string, kind models.NotificationType) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if kind == "" {
		kind = models.NotifyInfo
	}
	f.items = append(f.items, models.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      kind,
		CreatedAt: f.now(),
	})
	if len(f.items) > maxQueued {
		f.items = f.items[len(f.items)-maxQueued:]
	}
}

// Drain returns the notifications still live at now and removes them
func (f *Feed) Drain(now time.Time) []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Notification, 0, len(f.items))
	for _, n := range f.items {
		if now.Sub(n.CreatedAt) < f.ttl {
			out = append(out, n)
		}
	}
	f.items = nil
	return out
}

// Len returns the number of queued notifications, expired or not
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.items)
}
