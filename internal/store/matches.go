package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgallion1/resumatch/internal/match"
)

// Match is a stored match result for one user and job posting.
type Match struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	JobID  string `json:"job_id"`
	match.Result
	CreatedAt time.Time `json:"created_at"`
}

const matchColumns = `id, user_id, job_id, match_score, raw_score, matched_skills, missing_skills, created_at`

// SaveMatch inserts m or replaces the existing result for the same user and
// job. ID and CreatedAt are filled in from the stored row.
func (s *Store) SaveMatch(ctx context.Context, m *Match) error {
	matched, err := json.Marshal(nonNil(m.MatchedSkills))
	if err != nil {
		return fmt.Errorf("marshal matched skills: %w", err)
	}
	missing, err := json.Marshal(nonNil(m.MissingSkills))
	if err != nil {
		return fmt.Errorf("marshal missing skills: %w", err)
	}
	if m.ID == "" {
		m.ID = newID()
	}
	created := nowNanos()

	_, err = s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO matches (`+matchColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, job_id) DO UPDATE SET
		   match_score = excluded.match_score,
		   raw_score = excluded.raw_score,
		   matched_skills = excluded.matched_skills,
		   missing_skills = excluded.missing_skills,
		   created_at = excluded.created_at`),
		m.ID, m.UserID, m.JobID, m.MatchScore, m.RawScore, string(matched), string(missing), created)
	if err != nil {
		return fmt.Errorf("upsert match: %w", err)
	}

	stored, err := s.GetMatch(ctx, m.UserID, m.JobID)
	if err != nil {
		return err
	}
	if stored != nil {
		m.ID = stored.ID
		m.CreatedAt = stored.CreatedAt
	}
	return nil
}

// GetMatch returns the stored result for the pair, or nil.
func (s *Store) GetMatch(ctx context.Context, userID, jobID string) (*Match, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT `+matchColumns+` FROM matches WHERE user_id = ? AND job_id = ?`), userID, jobID)
	if err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	}
	list, err := scanMatches(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

// UserMatches lists a user's results, best first.
func (s *Store) UserMatches(ctx context.Context, userID string) ([]Match, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT `+matchColumns+` FROM matches WHERE user_id = ?
		 ORDER BY match_score DESC, created_at DESC`), userID)
	if err != nil {
		return nil, fmt.Errorf("user matches: %w", err)
	}
	return scanMatches(rows)
}

// JobMatches lists every candidate's result for a job posting, best first.
func (s *Store) JobMatches(ctx context.Context, jobID string) ([]Match, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT `+matchColumns+` FROM matches WHERE job_id = ?
		 ORDER BY match_score DESC, created_at DESC`), jobID)
	if err != nil {
		return nil, fmt.Errorf("job matches: %w", err)
	}
	return scanMatches(rows)
}

func scanMatches(rows *sql.Rows) ([]Match, error) {
	defer rows.Close()
	out := []Match{}
	for rows.Next() {
		var (
			m                Match
			matched, missing string
			created          int64
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.JobID, &m.MatchScore, &m.RawScore, &matched, &missing, &created); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		if err := json.Unmarshal([]byte(matched), &m.MatchedSkills); err != nil {
			return nil, fmt.Errorf("decode matched skills %s: %w", m.ID, err)
		}
		if err := json.Unmarshal([]byte(missing), &m.MissingSkills); err != nil {
			return nil, fmt.Errorf("decode missing skills %s: %w", m.ID, err)
		}
		m.CreatedAt = fromNanos(created)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
