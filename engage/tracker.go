// Package engage tracks view and like counts with optimistic local updates
// reconciled against the remote counter service. The discipline is
// system-wide: UI reflects intent immediately, reconciles on failure.
package engage

import (
	"context"
	"time"

	"github.com/lixenwraith/keepsake/logger"
	"github.com/lixenwraith/keepsake/parameter"
)

// Counter is the remote counter/like service contract.
type Counter interface {
	IncrementView(ctx context.Context, id string) error
	// ToggleLike receives the device ID so a device toggling twice is
	// idempotent from the server's perspective.
	ToggleLike(ctx context.Context, id, deviceID string) (bool, error)
}

// Likes is the device-scoped persisted liked set, satisfied by device.Store.
type Likes interface {
	DeviceID() string
	Liked(id string) bool
	SetLiked(id string, liked bool) error
}

// ViewContext carries the guards on view counting.
type ViewContext struct {
	Preview bool // editor preview never counts
	Locked  bool // locked capsules never count
}

// Tracker owns the optimistic local mirrors of the remote counters plus the
// session-local set of identifiers the feed has already counted.
type Tracker struct {
	counter Counter
	likes   Likes

	dwellCounted map[string]struct{}
	viewCounts   map[string]int
	likeCounts   map[string]int

	activeID    string
	activeSince time.Time
}

// NewTracker creates a tracker over the remote counter and local liked set.
func NewTracker(counter Counter, likes Likes) *Tracker {
	return &Tracker{
		counter:      counter,
		likes:        likes,
		dwellCounted: make(map[string]struct{}),
		viewCounts:   make(map[string]int),
		likeCounts:   make(map[string]int),
	}
}

// Seed records the stored counter values as the local display baseline.
func (t *Tracker) Seed(id string, views, likes int) {
	if id == "" {
		return
	}
	if _, ok := t.viewCounts[id]; !ok {
		t.viewCounts[id] = views
	}
	if _, ok := t.likeCounts[id]; !ok {
		t.likeCounts[id] = likes
	}
}

// Views returns the optimistic local view count.
func (t *Tracker) Views(id string) int { return t.viewCounts[id] }

// LikeCount returns the optimistic local like count.
func (t *Tracker) LikeCount(id string) int { return t.likeCounts[id] }

// Liked reports the device-scoped liked state.
func (t *Tracker) Liked(id string) bool { return t.likes.Liked(id) }

// CountView fires one view increment for id, guarded: drafts, previews, and
// locked capsules never count. Each entry into reading counts; the
// once-per-session dedup belongs to the feed's dwell rule, not here. The
// local display updates immediately; a remote failure is logged, not
// retried, and not rolled back.
func (t *Tracker) CountView(ctx context.Context, id string, vc ViewContext) bool {
	if id == "" || vc.Preview || vc.Locked {
		return false
	}
	t.viewCounts[id]++
	if err := t.counter.IncrementView(ctx, id); err != nil {
		logger.Log.Warn("view increment failed", "id", id, "err", err)
	}
	return true
}

// SetActive records the feed's active card. Re-activation of a different
// card restarts the dwell timer.
func (t *Tracker) SetActive(id string, now time.Time) {
	if id == t.activeID {
		return
	}
	t.activeID = id
	t.activeSince = now
}

// FeedTick fires the active card's view increment once it has been active
// for the continuous dwell window. At most once per session per identifier.
func (t *Tracker) FeedTick(ctx context.Context, now time.Time) bool {
	if t.activeID == "" || now.Sub(t.activeSince) < parameter.FeedViewDwell {
		return false
	}
	if _, ok := t.dwellCounted[t.activeID]; ok {
		return false
	}
	t.dwellCounted[t.activeID] = struct{}{}
	return t.CountView(ctx, t.activeID, ViewContext{})
}

// LikeToggle is an in-flight optimistic like flip. The caller applies it
// with BeginToggleLike, runs the remote call, and resolves with the result.
type LikeToggle struct {
	t         *Tracker
	id        string
	prevLiked bool
	prevCount int
	resolved  bool

	// Liked is the optimistic post-toggle state.
	Liked bool
}

// BeginToggleLike flips the local liked set and count optimistically and
// returns the pending toggle to resolve against the remote outcome.
func (t *Tracker) BeginToggleLike(id string) *LikeToggle {
	lt := &LikeToggle{
		t:         t,
		id:        id,
		prevLiked: t.likes.Liked(id),
		prevCount: t.likeCounts[id],
	}
	lt.Liked = !lt.prevLiked
	if err := t.likes.SetLiked(id, lt.Liked); err != nil {
		logger.Log.Warn("liked set persist failed", "id", id, "err", err)
	}
	if lt.Liked {
		t.likeCounts[id] = lt.prevCount + 1
	} else {
		t.likeCounts[id] = lt.prevCount - 1
	}
	return lt
}

// Celebrates reports whether the toggle fires a celebratory burst: only on
// like, never on unlike.
func (lt *LikeToggle) Celebrates() bool { return lt.Liked }

// Resolve reconciles the optimistic flip with the remote result. A failed
// remote call rolls back the liked set, the displayed count, and therefore
// any visual state derived from them.
func (lt *LikeToggle) Resolve(ok bool) {
	if lt.resolved {
		return
	}
	lt.resolved = true
	if ok {
		return
	}
	lt.Liked = lt.prevLiked
	if err := lt.t.likes.SetLiked(lt.id, lt.prevLiked); err != nil {
		logger.Log.Warn("liked set rollback failed", "id", lt.id, "err", err)
	}
	lt.t.likeCounts[lt.id] = lt.prevCount
}

// DeviceID exposes the device identifier for the remote call.
func (t *Tracker) DeviceID() string { return t.likes.DeviceID() }

// Toggle runs the remote toggle for a pending flip. Intended to be called
// off the frame loop; the result is passed back to Resolve on the loop.
func (t *Tracker) Toggle(ctx context.Context, id string) bool {
	_, err := t.counter.ToggleLike(ctx, id, t.likes.DeviceID())
	if err != nil {
		logger.Log.Warn("like toggle failed", "id", id, "err", err)
		return false
	}
	return true
}
