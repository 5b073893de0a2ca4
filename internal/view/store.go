package view

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateTTL is how long an idle session's view state is kept
const StateTTL = 24 * time.Hour

// Store persists view state between requests
type Store interface {
	Load(ctx context.Context, session string) (*State, error)
	Save(ctx context.Context, session string, state *State) error
	Delete(ctx context.Context, session string) error
}

// MemoryStore keeps view state in process. Used when Redis is not configured.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string][]byte)}
}

// Load returns the session's state, or a fresh one when none was saved.
// States are stored encoded so callers never share one by pointer.
func (s *MemoryStore) Load(ctx context.Context, session string) (*State, error) {
	s.mu.RLock()
	data, ok := s.states[session]
	s.mu.RUnlock()

	if !ok {
		return NewState(), nil
	}
	return decodeState(data)
}

// Save stores the session's state
func (s *MemoryStore) Save(ctx context.Context, session string, state *State) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.states[session] = data
	s.mu.Unlock()
	return nil
}

// Delete drops the session's state
func (s *MemoryStore) Delete(ctx context.Context, session string) error {
	s.mu.Lock()
	delete(s.states, session)
	s.mu.Unlock()
	return nil
}

// RedisStore keeps view state in Redis with a sliding TTL
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisStore creates a RedisStore. A zero ttl means StateTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = StateTTL
	}
	return &RedisStore{redis: client, ttl: ttl}
}

func stateKey(session string) string {
	return fmt.Sprintf("view:state:%s", session)
}

// Load returns the session's state, or a fresh one when none was saved or it expired
func (s *RedisStore) Load(ctx context.Context, session string) (*State, error) {
	data, err := s.redis.Get(ctx, stateKey(session)).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get view state from Redis: %w", err)
	}
	return decodeState(data)
}

// Save stores the session's state and refreshes its TTL
func (s *RedisStore) Save(ctx context.Context, session string, state *State) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, stateKey(session), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save view state to Redis: %w", err)
	}
	return nil
}

// Delete removes the session's state
func (s *RedisStore) Delete(ctx context.Context, session string) error {
	if err := s.redis.Del(ctx, stateKey(session)).Err(); err != nil {
		return fmt.Errorf("failed to delete view state from Redis: %w", err)
	}
	return nil
}

func encodeState(state *State) ([]byte, error) {
	state.UpdatedAt = time.Now()
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal view state: %w", err)
	}
	return data, nil
}

func decodeState(data []byte) (*State, error) {
	state := NewState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal view state: %w", err)
	}
	return state, nil
}

// Sessions serialises view operations per session on top of a Store
type Sessions struct {
	store Store

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewSessions creates a Sessions over store
func NewSessions(store Store) *Sessions {
	return &Sessions{store: store, locks: make(map[string]*sessionLock)}
}

// Do loads the session's state, runs fn on a controller over it and saves the
// result. Calls for the same session never interleave. Nothing is saved when fn fails.
func (s *Sessions) Do(ctx context.Context, session string, fn func(*Controller) error) error {
	unlock := s.lock(session)
	defer unlock()

	state, err := s.store.Load(ctx, session)
	if err != nil {
		return err
	}

	ctrl := NewController(state)
	if err := fn(ctrl); err != nil {
		return err
	}
	return s.store.Save(ctx, session, ctrl.State())
}

func (s *Sessions) lock(session string) func() {
	s.mu.Lock()
	l, ok := s.locks[session]
	if !ok {
		l = &sessionLock{}
		s.locks[session] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, session)
		}
		s.mu.Unlock()
	}
}
