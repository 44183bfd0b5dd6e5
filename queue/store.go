package queue

import (
	"errors"
	"sync"
)

// ErrAlreadyExists is returned by Create when the guild already has a queue.
var ErrAlreadyExists = errors.New("queue already exists for guild")

// Store owns every GuildQueue in the process, keyed by guild ID. Map access
// is safe from any goroutine; operations touching a single guild's queue
// must run inside Do for that guild so that a command arriving while an
// earlier one is suspended (voice join, resolution) never observes a
// half-constructed queue. Different guilds never block each other.
type Store struct {
	mu     sync.Mutex
	queues map[string]*GuildQueue
	locks  map[string]*guildLock
}

type guildLock struct {
	mu   sync.Mutex
	refs int
}

func NewStore() *Store {
	return &Store{
		queues: make(map[string]*GuildQueue),
		locks:  make(map[string]*guildLock),
	}
}

// Get returns the guild's queue, or nil if none exists.
func (s *Store) Get(guildID string) *GuildQueue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queues[guildID]
}

// Create publishes a new queue for the guild.
func (s *Store) Create(guildID string, q *GuildQueue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.queues[guildID]; exists {
		return ErrAlreadyExists
	}
	s.queues[guildID] = q
	return nil
}

// Remove deletes the guild's queue, if any.
func (s *Store) Remove(guildID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.queues, guildID)
}

// Guilds returns the IDs of every guild holding a queue.
func (s *Store) Guilds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.queues))
	for id := range s.queues {
		ids = append(ids, id)
	}
	return ids
}

// Do runs fn while holding the guild's serialization lock. Calls for the
// same guild run one at a time in arrival order; calls for different guilds
// run concurrently. Do is not reentrant.
func (s *Store) Do(guildID string, fn func()) {
	l := s.acquire(guildID)
	l.mu.Lock()
	defer func() {
		l.mu.Unlock()
		s.release(guildID, l)
	}()
	fn()
}

func (s *Store) acquire(guildID string) *guildLock {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[guildID]
	if !ok {
		l = &guildLock{}
		s.locks[guildID] = l
	}
	l.refs++
	return l
}

func (s *Store) release(guildID string, l *guildLock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, guildID)
	}
}
