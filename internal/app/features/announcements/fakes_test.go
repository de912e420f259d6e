package announcements_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dalemusser/announcehub/internal/domain/models"
)

// memStore is an in-memory announcements store with the same merge rules
// as the MongoDB one.
type memStore struct {
	mu    sync.Mutex
	docs  map[string]models.Announcement
	order []string
	next  int
	calls int
}

func newMemStore() *memStore {
	return &memStore{docs: map[string]models.Announcement{}}
}

func (m *memStore) List(ctx context.Context) ([]models.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Announcement{}
	for _, id := range m.order {
		if a, ok := m.docs[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) Create(ctx context.Context, in models.AnnouncementInput) (models.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.next++
	a := models.Announcement{ID: fmt.Sprintf("id-%d", m.next)}
	in.Apply(&a)
	m.docs[a.ID] = a
	m.order = append(m.order, a.ID)
	return a, nil
}

func (m *memStore) Update(ctx context.Context, id string, in models.AnnouncementInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	a, ok := m.docs[id]
	if !ok {
		return nil
	}
	in.Apply(&a)
	m.docs[id] = a
	return nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	delete(m.docs, id)
	return nil
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

// brokenStore fails every call.
type brokenStore struct{}

var errBroken = errors.New("connection refused")

func (brokenStore) List(context.Context) ([]models.Announcement, error) { return nil, errBroken }
func (brokenStore) Create(context.Context, models.AnnouncementInput) (models.Announcement, error) {
	return models.Announcement{}, errBroken
}
func (brokenStore) Update(context.Context, string, models.AnnouncementInput) error { return errBroken }
func (brokenStore) Delete(context.Context, string) error                           { return errBroken }
