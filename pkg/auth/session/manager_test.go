package session

import (
	"context"
	"errors"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type memoryStore struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.values[key] = value.(string)
	m.ttls[key] = ttl
	return nil
}

func (m *memoryStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *memoryStore) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type plainKeyer struct{}

func (plainKeyer) SessionKey(sessionID string) string { return "session:" + sessionID }

func newTestManager(store sessionStore) *Manager {
	return &Manager{store: store, keyer: plainKeyer{}, ttl: time.Hour}
}

func TestCreateAndResolve(t *testing.T) {
	store := newMemoryStore()
	m := newTestManager(store)

	sessionID, err := m.Create(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sessionID == "" {
		t.Fatalf("expected non-empty session id")
	}

	ownerID, err := m.Resolve(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if ownerID != "owner-1" {
		t.Fatalf("expected owner-1 got %s", ownerID)
	}
	if store.ttls["session:"+sessionID] != time.Hour {
		t.Fatalf("expected ttl applied on create")
	}
}

func TestResolveUnknownSession(t *testing.T) {
	m := newTestManager(newMemoryStore())

	if _, err := m.Resolve(context.Background(), "missing"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if _, err := m.Resolve(context.Background(), ""); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for empty id, got %v", err)
	}
}

func TestRevokeRemovesSession(t *testing.T) {
	store := newMemoryStore()
	m := newTestManager(store)

	sessionID, err := m.Create(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := m.Revoke(context.Background(), sessionID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := m.Resolve(context.Background(), sessionID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected session gone after revoke, got %v", err)
	}
}

func TestCreateRequiresOwnerID(t *testing.T) {
	m := newTestManager(newMemoryStore())
	if _, err := m.Create(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for blank owner id")
	}
}
