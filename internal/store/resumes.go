package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgallion1/resumatch/internal/resume"
)

// Resume is a stored parse result.
type Resume struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	ContentHash string         `json:"content_hash"`
	Filename    string         `json:"filename"`
	Record      *resume.Record `json:"record"`
	CreatedAt   time.Time      `json:"created_at"`
}

// SaveResume inserts r, assigning ID and CreatedAt when unset.
func (s *Store) SaveResume(ctx context.Context, r *Resume) error {
	if r.Record == nil {
		return errors.New("save resume: nil record")
	}
	body, err := json.Marshal(r.Record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if r.ID == "" {
		r.ID = newID()
	}
	created := nowNanos()
	if !r.CreatedAt.IsZero() {
		created = r.CreatedAt.UTC().UnixNano()
	}
	r.CreatedAt = fromNanos(created)

	_, err = s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO resumes (id, user_id, content_hash, filename, record, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`),
		r.ID, r.UserID, r.ContentHash, r.Filename, string(body), created)
	if err != nil {
		return fmt.Errorf("insert resume: %w", err)
	}
	return nil
}

// FindResumeByHash returns the user's earliest resume with the given content
// hash, or nil when there is none.
func (s *Store) FindResumeByHash(ctx context.Context, userID, hash string) (*Resume, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, user_id, content_hash, filename, record, created_at
		 FROM resumes WHERE user_id = ? AND content_hash = ?
		 ORDER BY created_at ASC LIMIT 1`), userID, hash)

	var (
		r       Resume
		body    string
		created int64
	)
	err := row.Scan(&r.ID, &r.UserID, &r.ContentHash, &r.Filename, &body, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find resume: %w", err)
	}
	r.CreatedAt = fromNanos(created)
	r.Record = &resume.Record{}
	if err := json.Unmarshal([]byte(body), r.Record); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", r.ID, err)
	}
	return &r, nil
}
