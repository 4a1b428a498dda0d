// Package feed implements the paginated public-card scroller: pages append
// on demand when the last card comes into view, identifiers are
// deduplicated across pages, and the card centered in the viewport is the
// active one driving theme and audio.
package feed

import (
	"context"

	"github.com/lixenwraith/keepsake/model"
	"github.com/lixenwraith/keepsake/store"
)

// Lister is the paged listing contract, satisfied by any store.Store.
type Lister interface {
	List(ctx context.Context, pageToken string, limit int) (store.Page, error)
}

// Scroller holds the loaded cards and scroll state. One card spans one
// viewport height; partial-height viewports clamp to the last card.
type Scroller struct {
	lister   Lister
	pageSize int

	cards     []model.Message
	seen      map[string]struct{}
	nextToken string
	started   bool
	exhausted bool

	offset     int // scroll offset in rows
	cardHeight int
}

// New creates a scroller over lister fetching pageSize records per page.
func New(lister Lister, pageSize int) *Scroller {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Scroller{
		lister:   lister,
		pageSize: pageSize,
		seen:     make(map[string]struct{}),
	}
}

// SetViewport sets the card height to the viewport height.
func (s *Scroller) SetViewport(h int) {
	if h < 1 {
		h = 1
	}
	s.cardHeight = h
}

// LoadNext fetches and appends the next page. Records whose identifier is
// already loaded are dropped even if the backing collaborator returns
// overlap. A short page or an absent continuation token marks the listing
// exhausted; further calls are no-ops.
func (s *Scroller) LoadNext(ctx context.Context) error {
	if s.exhausted {
		return nil
	}
	page, err := s.lister.List(ctx, s.nextToken, s.pageSize)
	if err != nil {
		return err
	}
	s.started = true
	for _, m := range page.Messages {
		if _, dup := s.seen[m.ID]; dup {
			continue
		}
		s.seen[m.ID] = struct{}{}
		s.cards = append(s.cards, m)
	}
	s.nextToken = page.NextToken
	if page.NextToken == "" || len(page.Messages) < s.pageSize {
		s.exhausted = true
	}
	return nil
}

// Cards returns the loaded cards in feed order.
func (s *Scroller) Cards() []model.Message { return s.cards }

// Empty reports the terminal empty state: the listing finished with nothing
// to show. Distinct from exhausted-after-content.
func (s *Scroller) Empty() bool {
	return s.started && s.exhausted && len(s.cards) == 0
}

// Exhausted reports that no further pages will be requested.
func (s *Scroller) Exhausted() bool { return s.exhausted }

// Scroll moves the viewport by delta rows, clamped to the card range.
func (s *Scroller) Scroll(delta int) {
	s.offset += delta
	max := (len(s.cards) - 1) * s.cardHeight
	if max < 0 {
		max = 0
	}
	if s.offset > max {
		s.offset = max
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

// Offset returns the scroll offset in rows.
func (s *Scroller) Offset() int { return s.offset }

// ActiveIndex derives the centered card: offset divided by card height,
// rounded to nearest, clamped to the loaded range.
func (s *Scroller) ActiveIndex() int {
	if len(s.cards) == 0 || s.cardHeight == 0 {
		return 0
	}
	idx := (s.offset + s.cardHeight/2) / s.cardHeight
	if idx >= len(s.cards) {
		idx = len(s.cards) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// ActiveCard returns the active card, if any are loaded.
func (s *Scroller) ActiveCard() (model.Message, bool) {
	if len(s.cards) == 0 {
		return model.Message{}, false
	}
	return s.cards[s.ActiveIndex()], true
}

// NeedsMore reports whether the last loaded card is at least partially
// visible, the intersection trigger for appending the next page.
func (s *Scroller) NeedsMore() bool {
	if s.exhausted || s.cardHeight == 0 {
		return !s.started && !s.exhausted
	}
	lastTop := (len(s.cards) - 1) * s.cardHeight
	return s.offset+s.cardHeight > lastTop
}
