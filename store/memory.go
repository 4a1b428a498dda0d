package store

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lixenwraith/keepsake/model"
)

// MemoryStore is an ephemeral in-process backend, used by --store=memory
// demo sessions and by tests.
type MemoryStore struct {
	mu    sync.Mutex
	cards map[string]model.Message
	feed  []string // public IDs, newest first
	likes map[string]map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cards: make(map[string]model.Message),
		likes: make(map[string]map[string]struct{}),
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Create(_ context.Context, m model.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = ulid.Make().String()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	s.cards[m.ID] = m
	if m.Public {
		s.feed = append(s.feed, m.ID)
		sort.Slice(s.feed, func(i, j int) bool {
			return s.cards[s.feed[i]].CreatedAt.After(s.cards[s.feed[j]].CreatedAt)
		})
	}
	return m.ID, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.cards[id]
	if !ok {
		return model.Message{}, ErrNotFound
	}
	return m, nil
}

func (s *MemoryStore) List(_ context.Context, pageToken string, limit int) (Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = 20
	}
	start := 0
	if pageToken != "" {
		n, err := strconv.Atoi(pageToken)
		if err == nil && n > 0 {
			start = n
		}
	}
	var page Page
	for i := start; i < len(s.feed) && len(page.Messages) < limit; i++ {
		page.Messages = append(page.Messages, s.cards[s.feed[i]])
	}
	if start+len(page.Messages) < len(s.feed) {
		page.NextToken = strconv.Itoa(start + len(page.Messages))
	}
	return page, nil
}

func (s *MemoryStore) IncrementView(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.cards[id]
	if !ok {
		return ErrNotFound
	}
	m.Views++
	s.cards[id] = m
	return nil
}

func (s *MemoryStore) ToggleLike(_ context.Context, id, deviceID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.cards[id]
	if !ok {
		return false, ErrNotFound
	}
	devs := s.likes[id]
	if devs == nil {
		devs = make(map[string]struct{})
		s.likes[id] = devs
	}
	if _, liked := devs[deviceID]; liked {
		delete(devs, deviceID)
		if m.Likes > 0 {
			m.Likes--
		}
		s.cards[id] = m
		return false, nil
	}
	devs[deviceID] = struct{}{}
	m.Likes++
	s.cards[id] = m
	return true, nil
}
