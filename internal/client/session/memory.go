package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophprofile/internal/client/models"
)

// MemoryStore is a Store kept in process memory.
type MemoryStore struct {
	mu         sync.RWMutex
	identity   models.Identity
	credential models.Credential

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

// NewMemoryStore returns a store seeded with identity and credential.
func NewMemoryStore(identity models.Identity, credential models.Credential) *MemoryStore {
	return &MemoryStore{
		identity:   identity,
		credential: credential,
		listeners:  make(map[int]Listener),
	}
}

func (s *MemoryStore) Identity() models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *MemoryStore) Credential() models.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// Snapshot returns identity and credential read under one lock.
func (s *MemoryStore) Snapshot() (models.Identity, models.Credential) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.credential
}

func (s *MemoryStore) SetIdentity(_ context.Context, identity models.Identity) error {
	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()

	s.notify(identity)
	return nil
}

func (s *MemoryStore) SetCredential(_ context.Context, credential models.Credential) error {
	s.mu.Lock()
	s.credential = credential
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Update(_ context.Context, identity models.Identity, credential models.Credential) error {
	s.mu.Lock()
	s.identity = identity
	s.credential = credential
	s.mu.Unlock()

	s.notify(identity)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.identity = models.Identity{}
	s.credential = ""
	s.mu.Unlock()

	s.notify(models.Identity{})
	return nil
}

func (s *MemoryStore) Subscribe(fn Listener) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	if s.listeners == nil {
		s.listeners = make(map[int]Listener)
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

// notify runs listeners outside the state lock so they may read the store.
func (s *MemoryStore) notify(identity models.Identity) {
	s.listenersMu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(identity)
	}
}
