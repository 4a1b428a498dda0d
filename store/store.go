// Package store persists message records. Backends share one contract:
// create assigns the identifier, records are immutable after the first
// write except for the counters, and listing is public-only, newest first,
// with opaque continuation tokens.
package store

import (
	"context"
	"errors"

	"github.com/lixenwraith/keepsake/model"
)

// ErrNotFound reports a missing or expired message identifier.
var ErrNotFound = errors.New("card not found")

// Page is one listing result. An empty NextToken means the listing is
// exhausted.
type Page struct {
	Messages  []model.Message
	NextToken string
}

// Store is the document-store contract. It also carries the counter
// operations so a single backend can serve both collaborators; consumers
// that only count views and likes accept the narrower engage.Counter.
type Store interface {
	Create(ctx context.Context, m model.Message) (string, error)
	Get(ctx context.Context, id string) (model.Message, error)
	List(ctx context.Context, pageToken string, limit int) (Page, error)
	IncrementView(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id, deviceID string) (bool, error)
	Close() error
}
