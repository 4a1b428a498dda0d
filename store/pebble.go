package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/oklog/ulid/v2"

	"github.com/lixenwraith/keepsake/logger"
	"github.com/lixenwraith/keepsake/model"
)

// Key layout:
//
//	card:<id>                    -> message JSON
//	feed:<inverted-ts>:<id>      -> id (public cards only, newest first)
//	like:<id>:<device>           -> 1
type PebbleStore struct {
	db *pebble.DB

	// counterMu serializes the read-modify-write of card JSON by the
	// counter mutations; without it concurrent handlers drop updates.
	counterMu sync.Mutex
}

// OpenPebble opens (or creates) the embedded store at path.
func OpenPebble(path string) (*PebbleStore, error) {
	logger.Log.Info("opening pebble store", "path", path)
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", path, err)
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func cardKey(id string) []byte { return []byte("card:" + id) }

func feedKey(createdAt time.Time, id string) []byte {
	// Inverted timestamp so forward iteration yields newest first
	return []byte(fmt.Sprintf("feed:%020d:%s", math.MaxInt64-createdAt.UTC().UnixNano(), id))
}

func likeKey(id, device string) []byte { return []byte("like:" + id + ":" + device) }

func (s *PebbleStore) Create(_ context.Context, m model.Message) (string, error) {
	m.ID = ulid.Make().String()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal card: %w", err)
	}
	batch := s.db.NewBatch()
	defer batch.Close()
	if err := batch.Set(cardKey(m.ID), data, nil); err != nil {
		return "", err
	}
	if m.Public {
		if err := batch.Set(feedKey(m.CreatedAt, m.ID), []byte(m.ID), nil); err != nil {
			return "", err
		}
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return "", fmt.Errorf("commit card: %w", err)
	}
	return m.ID, nil
}

func (s *PebbleStore) Get(_ context.Context, id string) (model.Message, error) {
	var m model.Message
	data, closer, err := s.db.Get(cardKey(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return m, ErrNotFound
		}
		return m, err
	}
	defer closer.Close()
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("corrupt card %s: %w", id, err)
	}
	return m, nil
}

func (s *PebbleStore) List(ctx context.Context, pageToken string, limit int) (Page, error) {
	if limit <= 0 {
		limit = 20
	}
	lower := []byte("feed:")
	if pageToken != "" {
		// Token is the last-seen feed key; resume strictly after it
		lower = append([]byte(pageToken), 0)
	}
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: []byte("feed;"), // ';' sorts just after ':'
	})
	if err != nil {
		return Page{}, err
	}
	defer iter.Close()

	var page Page
	var lastKey string
	for ok := iter.First(); ok && len(page.Messages) < limit; ok = iter.Next() {
		id := string(iter.Value())
		m, gerr := s.Get(ctx, id)
		if gerr != nil {
			// index entry without a card; skip rather than fail the page
			logger.Log.Warn("dangling feed index entry", "id", id)
			continue
		}
		page.Messages = append(page.Messages, m)
		lastKey = string(iter.Key())
	}
	if len(page.Messages) == limit && iter.Valid() {
		page.NextToken = lastKey
	}
	return page, nil
}

func (s *PebbleStore) IncrementView(ctx context.Context, id string) error {
	s.counterMu.Lock()
	defer s.counterMu.Unlock()
	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	m.Views++
	return s.put(m)
}

func (s *PebbleStore) ToggleLike(ctx context.Context, id, deviceID string) (bool, error) {
	s.counterMu.Lock()
	defer s.counterMu.Unlock()
	m, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	lk := likeKey(id, deviceID)
	_, closer, gerr := s.db.Get(lk)
	liked := gerr == nil
	if liked {
		closer.Close()
	} else if !errors.Is(gerr, pebble.ErrNotFound) {
		return false, gerr
	}

	batch := s.db.NewBatch()
	defer batch.Close()
	if liked {
		m.Likes--
		if m.Likes < 0 {
			m.Likes = 0
		}
		if err := batch.Delete(lk, nil); err != nil {
			return false, err
		}
	} else {
		m.Likes++
		if err := batch.Set(lk, []byte("1"), nil); err != nil {
			return false, err
		}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return false, err
	}
	if err := batch.Set(cardKey(id), data, nil); err != nil {
		return false, err
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return false, err
	}
	return !liked, nil
}

func (s *PebbleStore) put(m model.Message) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.db.Set(cardKey(m.ID), data, pebble.Sync)
}
