package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/lixenwraith/keepsake/model"
)

// PostgresStore backs the contract with Postgres, for operators running
// shared infrastructure instead of the embedded store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const pgSchema = `
CREATE TABLE IF NOT EXISTS cards (
	id          TEXT PRIMARY KEY,
	created_at  TIMESTAMPTZ NOT NULL,
	public      BOOLEAN NOT NULL,
	views       INTEGER NOT NULL DEFAULT 0,
	likes       INTEGER NOT NULL DEFAULT 0,
	record      JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS cards_feed_idx ON cards (created_at DESC) WHERE public;
CREATE TABLE IF NOT EXISTS card_likes (
	card_id    TEXT NOT NULL REFERENCES cards(id),
	device_id  TEXT NOT NULL,
	PRIMARY KEY (card_id, device_id)
);`

// OpenPostgres connects and ensures the schema exists.
func OpenPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, m model.Message) (string, error) {
	m.ID = ulid.Make().String()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	record, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal card: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO cards (id, created_at, public, views, likes, record)
		 VALUES ($1, $2, $3, 0, 0, $4)`,
		m.ID, m.CreatedAt, m.Public, record,
	)
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (model.Message, error) {
	var record []byte
	var views, likes int
	err := s.pool.QueryRow(ctx,
		`SELECT record, views, likes FROM cards WHERE id = $1`, id,
	).Scan(&record, &views, &likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Message{}, ErrNotFound
		}
		return model.Message{}, err
	}
	var m model.Message
	if err := json.Unmarshal(record, &m); err != nil {
		return model.Message{}, fmt.Errorf("corrupt card %s: %w", id, err)
	}
	// Counters live in their own columns; the record copy is the write-time
	// snapshot.
	m.Views = views
	m.Likes = likes
	return m, nil
}

func (s *PostgresStore) List(ctx context.Context, pageToken string, limit int) (Page, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, record, views, likes, created_at FROM cards WHERE public`
	args := []any{}
	if pageToken != "" {
		// token: <unixnano>|<id>
		var nanos int64
		var id string
		if _, err := fmt.Sscanf(pageToken, "%d|%s", &nanos, &id); err == nil {
			query += ` AND (created_at, id) < ($1, $2)`
			args = append(args, time.Unix(0, nanos).UTC(), id)
		}
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT %d`, limit+1)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return Page{}, err
	}
	defer rows.Close()

	var page Page
	var lastAt time.Time
	var lastID string
	for rows.Next() {
		var id string
		var record []byte
		var views, likes int
		var createdAt time.Time
		if err := rows.Scan(&id, &record, &views, &likes, &createdAt); err != nil {
			return Page{}, err
		}
		if len(page.Messages) == limit {
			page.NextToken = fmt.Sprintf("%d|%s", lastAt.UnixNano(), lastID)
			break
		}
		var m model.Message
		if err := json.Unmarshal(record, &m); err != nil {
			continue
		}
		m.Views = views
		m.Likes = likes
		page.Messages = append(page.Messages, m)
		lastAt, lastID = createdAt, id
	}
	return page, rows.Err()
}

func (s *PostgresStore) IncrementView(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE cards SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ToggleLike(ctx context.Context, id, deviceID string) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM card_likes WHERE card_id = $1 AND device_id = $2)`,
		id, deviceID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}

	if exists {
		if _, err := tx.Exec(ctx,
			`DELETE FROM card_likes WHERE card_id = $1 AND device_id = $2`, id, deviceID); err != nil {
			return false, err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE cards SET likes = GREATEST(likes - 1, 0) WHERE id = $1`, id); err != nil {
			return false, err
		}
	} else {
		tag, ierr := tx.Exec(ctx,
			`INSERT INTO card_likes (card_id, device_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			id, deviceID)
		if ierr != nil {
			return false, ierr
		}
		if tag.RowsAffected() > 0 {
			if _, err := tx.Exec(ctx,
				`UPDATE cards SET likes = likes + 1 WHERE id = $1`, id); err != nil {
				return false, err
			}
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return !exists, nil
}
