// internal/session/store.go
//
// Persistence for per-conversation game state.
// Two implementations share the Store interface:
//   - memory: map keyed by conversation id, guarded by an RWMutex.
//     State is lost on restart; used by `play` and tests.
//   - sqlite: one row per conversation, game.Session stored as JSON.
//
// Both return copies, so a caller mutating a loaded session never
// changes stored state until it calls Save.

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/robalobadob/numbergenie/internal/game"
)

// ErrNotFound is returned by Get for an unknown conversation id.
var ErrNotFound = errors.New("session not found")

// Store persists game sessions by conversation id.
type Store interface {
	// Get returns a copy of the stored session or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Save creates or replaces the session for id.
	Save(ctx context.Context, id string, s *game.Session) error

	// Delete removes id. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string][]byte // JSON snapshots keyed by conversation id
}

// NewMemoryStore constructs an in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string][]byte)}
}

func (m *memory) Get(_ context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	b, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return decode(b)
}

func (m *memory) Save(_ context.Context, id string, s *game.Session) error {
	b, err := encode(id, s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = b
	return nil
}

func (m *memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func encode(id string, s *game.Session) ([]byte, error) {
	if id == "" {
		return nil, errors.New("session: empty id")
	}
	if s == nil {
		return nil, errors.New("session: nil session")
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session %s: %w", id, err)
	}
	return b, nil
}

func decode(b []byte) (*game.Session, error) {
	var s game.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}
