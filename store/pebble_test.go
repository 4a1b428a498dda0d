package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/keepsake/model"
)

func openTestPebble(t *testing.T) *PebbleStore {
	t.Helper()
	s, err := OpenPebble(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatalf("OpenPebble failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPebbleCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := openTestPebble(t)

	unlock := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	id, err := s.Create(ctx, model.Message{
		SenderName:    "Riley",
		RecipientName: "Sam",
		Body:          "open on christmas",
		Theme:         "YULE",
		UnlockAt:      &unlock,
		Coupon:        &model.Coupon{Title: "breakfast in bed", Style: "gold"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Theme != "YULE" || got.RecipientName != "Sam" {
		t.Errorf("Expected the stored card back, got %+v", got)
	}
	if got.UnlockAt == nil || !got.UnlockAt.Equal(unlock) {
		t.Errorf("Expected the unlock instant to round-trip, got %v", got.UnlockAt)
	}
	if got.Coupon == nil || got.Coupon.Title != "breakfast in bed" {
		t.Errorf("Expected the coupon to round-trip, got %+v", got.Coupon)
	}

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPebbleListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTestPebble(t)
	base := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	var newest string
	for i := 0; i < 5; i++ {
		id, err := s.Create(ctx, model.Message{
			RecipientName: "Sam",
			Body:          "hello",
			Public:        true,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		newest = id
	}
	// private card stays out of the feed
	if _, err := s.Create(ctx, model.Message{RecipientName: "Sam", Body: "psst"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	page, err := s.List(ctx, "", 3)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page.Messages) != 3 || page.NextToken == "" {
		t.Fatalf("Expected a full page with a token, got %d messages token %q",
			len(page.Messages), page.NextToken)
	}
	if page.Messages[0].ID != newest {
		t.Errorf("Expected the newest card first, got %s", page.Messages[0].ID)
	}

	page2, err := s.List(ctx, page.NextToken, 3)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page2.Messages) != 2 || page2.NextToken != "" {
		t.Fatalf("Expected a final page of 2, got %d messages token %q",
			len(page2.Messages), page2.NextToken)
	}

	// no overlap between pages
	seen := make(map[string]bool)
	for _, m := range append(page.Messages, page2.Messages...) {
		if seen[m.ID] {
			t.Errorf("Expected no overlap between pages, %s repeats", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestPebbleCounters(t *testing.T) {
	ctx := context.Background()
	s := openTestPebble(t)
	id, _ := s.Create(ctx, model.Message{RecipientName: "Sam", Body: "hi"})

	if err := s.IncrementView(ctx, id); err != nil {
		t.Fatalf("IncrementView failed: %v", err)
	}
	if err := s.IncrementView(ctx, id); err != nil {
		t.Fatalf("IncrementView failed: %v", err)
	}

	liked, err := s.ToggleLike(ctx, id, "device-1")
	if err != nil || !liked {
		t.Fatalf("Expected first toggle to like, got liked=%v err=%v", liked, err)
	}
	liked, err = s.ToggleLike(ctx, id, "device-1")
	if err != nil || liked {
		t.Fatalf("Expected second toggle to unlike, got liked=%v err=%v", liked, err)
	}

	m, _ := s.Get(ctx, id)
	if m.Views != 2 || m.Likes != 0 {
		t.Errorf("Expected views=2 likes=0, got views=%d likes=%d", m.Views, m.Likes)
	}

	if _, err := s.ToggleLike(ctx, "nope", "device-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPebbleConcurrentCounters(t *testing.T) {
	ctx := context.Background()
	s := openTestPebble(t)
	id, _ := s.Create(ctx, model.Message{RecipientName: "Sam", Body: "hi"})

	const n = 100
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if err := s.IncrementView(ctx, id); err != nil {
				t.Errorf("IncrementView failed: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	m, _ := s.Get(ctx, id)
	if m.Views != n {
		t.Errorf("Expected %d views after %d concurrent increments, got %d", n, n, m.Views)
	}
}

func TestPebbleReopen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "db")

	s, err := OpenPebble(dir)
	if err != nil {
		t.Fatalf("OpenPebble failed: %v", err)
	}
	id, err := s.Create(ctx, model.Message{RecipientName: "Sam", Body: "hi", Public: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = OpenPebble(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()
	if _, err := s.Get(ctx, id); err != nil {
		t.Errorf("Expected the card to survive reopen, got %v", err)
	}
}
