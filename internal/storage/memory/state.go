// Package memory holds process-local wizard sessions for single-instance
// deployments and tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"cleanbook/internal/storage/redis"
)

// sweepInterval bounds how often writes scan for expired entries.
const sweepInterval = time.Minute

type entry struct {
	data      []byte
	expiresAt time.Time
}

// StateStore mirrors redis.Storage: states are stored as JSON so callers
// never share memory with the store, and entries expire after ttl.
type StateStore struct {
	mu       sync.Mutex
	states   map[int64]entry
	limiters map[string]*limiter
	ttl      time.Duration
	now      func() time.Time

	nextSweep time.Time
}

type limiter struct {
	bucket   *rate.Limiter
	limit    int64
	window   time.Duration
	lastSeen time.Time
}

func NewStateStore(ttl time.Duration) *StateStore {
	return &StateStore{
		states:   make(map[int64]entry),
		limiters: make(map[string]*limiter),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *StateStore) SetUserDialogState(_ context.Context, chatID int64, state *redis.UserState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep(now)
	s.states[chatID] = entry{data: data, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *StateStore) GetUserDialogState(_ context.Context, chatID int64) (*redis.UserState, error) {
	s.mu.Lock()
	e, ok := s.states[chatID]
	if ok && !s.now().Before(e.expiresAt) {
		delete(s.states, chatID)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return &redis.UserState{}, nil
	}

	var state redis.UserState
	if err := json.Unmarshal(e.data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal failure: %w", err)
	}
	return &state, nil
}

func (s *StateStore) DropUserDialogState(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, chatID)
	return nil
}

// CheckRateLimit allows limit actions per window for each user and action.
// Tokens refill continuously rather than at window boundaries. A limit of
// zero or less is exceeded by every action, as in the Redis store.
func (s *StateStore) CheckRateLimit(_ context.Context, userID int64, action string, limit int64, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}

	key := fmt.Sprintf("%d:%s", userID, action)
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep(now)

	l, ok := s.limiters[key]
	if !ok || l.limit != limit || l.window != window {
		l = &limiter{
			bucket: rate.NewLimiter(rate.Every(window/time.Duration(limit)), int(limit)),
			limit:  limit,
			window: window,
		}
		s.limiters[key] = l
	}
	l.lastSeen = now

	return !l.bucket.AllowN(now, 1), nil
}

// sweep drops expired sessions and limiters idle for a full window, whose
// buckets would be full again anyway. Callers hold s.mu.
func (s *StateStore) sweep(now time.Time) {
	if now.Before(s.nextSweep) {
		return
	}
	s.nextSweep = now.Add(sweepInterval)

	for chatID, e := range s.states {
		if !now.Before(e.expiresAt) {
			delete(s.states, chatID)
		}
	}
	for key, l := range s.limiters {
		if !now.Before(l.lastSeen.Add(l.window)) {
			delete(s.limiters, key)
		}
	}
}
