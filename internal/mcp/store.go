package mcp

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/deckforge/deckforge/internal/deck"
)

// StoredPresentation is one compiled document held by the server.
type StoredPresentation struct {
	ID        string
	Doc       *deck.PresentationDocument
	CreatedAt time.Time
}

// Store holds compiled presentations in memory, keyed by id. Each document
// is exclusively owned by its compilation run, so the only shared state is
// the map itself.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*StoredPresentation
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{docs: make(map[string]*StoredPresentation)}
}

// Put stores a document under a fresh id and returns the id.
func (s *Store) Put(doc *deck.PresentationDocument) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = &StoredPresentation{ID: id, Doc: doc, CreatedAt: time.Now()}
	return id
}

// Get returns the stored presentation for id.
func (s *Store) Get(id string) (*StoredPresentation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, ok := s.docs[id]
	return sp, ok
}

// Delete removes the presentation for id, reporting whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.docs[id]
	delete(s.docs, id)
	return ok
}

// List returns every stored presentation, newest first.
func (s *Store) List() []*StoredPresentation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*StoredPresentation, 0, len(s.docs))
	for _, sp := range s.docs {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
