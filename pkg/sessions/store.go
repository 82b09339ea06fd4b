package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/esamadhan/volunteer-api/pkg/catalog"
	"github.com/esamadhan/volunteer-api/pkg/notify"
	"github.com/esamadhan/volunteer-api/pkg/registration"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned for unknown or expired session ids
var ErrSessionNotFound = errors.New("session not found")

// Session is one browser's open registration form
type Session struct {
	ID         string
	Controller *registration.Controller
	Feed       *notify.Feed
	CreatedAt  time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// LastSeen returns when the session was last used
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Options configure a Store
type Options struct {
	TTL          time.Duration
	Registration registration.Options
	Logger       *zap.Logger
	Now          func() time.Time
}

// Store holds the open sessions keyed by id
type Store struct {
	catalog *catalog.Catalog
	opts    Options
	logger  *zap.Logger
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty store backed by cat
func NewStore(cat *catalog.Catalog, opts Options) *Store {
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Registration.Logger == nil {
		opts.Registration.Logger = opts.Logger
	}
	return &Store{
		catalog:  cat,
		opts:     opts,
		logger:   opts.Logger,
		now:      opts.Now,
		sessions: make(map[string]*Session),
	}
}

// Open creates a session and opens its form on categoryID.
// On an unknown category no session is kept and the feed holding the error
// notification is returned so the caller can still show it.
func (s *Store) Open(categoryID string) (*Session, error) {
	now := s.now()
	feed := notify.NewFeed(notify.DefaultTTL)
	sess := &Session{
		ID:         uuid.NewString(),
		Controller: registration.NewController(s.catalog, feed, s.opts.Registration),
		Feed:       feed,
		CreatedAt:  now,
		lastSeen:   now,
	}
	if err := sess.Controller.OpenForm(categoryID); err != nil {
		return sess, err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Debug("session opened", zap.String("session", sess.ID), zap.String("category", categoryID))
	return sess, nil
}

// Get returns an open session and marks it as used
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.touch(s.now())
	return sess, nil
}

// Close cancels and forgets a session. Unknown ids are ignored.
func (s *Store) Close(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		sess.Controller.Close()
		s.logger.Debug("session closed", zap.String("session", id))
	}
}

// Len returns the number of open sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep closes sessions idle for longer than the TTL and returns how many it removed
func (s *Store) Sweep(now time.Time) int {
	var stale []*Session

	s.mu.Lock()
	for id, sess := range s.sessions {
		if now.Sub(sess.LastSeen()) > s.opts.TTL {
			stale = append(stale, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range stale {
		sess.Controller.Close()
	}
	if len(stale) > 0 {
		s.logger.Info("expired idle sessions", zap.Int("count", len(stale)))
	}
	return len(stale)
}

// Run sweeps every interval until ctx is done
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(s.now())
		}
	}
}
