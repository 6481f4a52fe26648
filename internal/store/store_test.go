package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgallion1/resumatch/internal/match"
	"github.com/dgallion1/resumatch/internal/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_SelectsDriver(t *testing.T) {
	s := openTestStore(t)
	assert.Equal(t, "sqlite", s.Driver())

	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}

func TestOpen_MigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	s1, err := Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(context.Background(), "sqlite://"+path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: "pgx"}
	assert.Equal(t, "a = $1 AND b = $2", pg.rebind("a = ? AND b = ?"))

	lite := &Store{driver: "sqlite"}
	assert.Equal(t, "a = ?", lite.rebind("a = ?"))
}

func TestResumes_SaveAndFindByHash(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := resume.ParseLines([]string{"Jane Doe", "SKILLS", "Go, SQL"}, resume.Options{})
	r := &Resume{UserID: "u1", ContentHash: "abc", Filename: "cv.txt", Record: rec}
	require.NoError(t, s.SaveResume(ctx, r))
	assert.NotEmpty(t, r.ID)
	assert.False(t, r.CreatedAt.IsZero())

	got, err := s.FindResumeByHash(ctx, "u1", "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, []string{"Go", "SQL"}, got.Record.Skills)
	assert.Equal(t, rec.Sections.Keys(), got.Record.Sections.Keys())

	other, err := s.FindResumeByHash(ctx, "u2", "abc")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestResumes_NilRecord(t *testing.T) {
	s := openTestStore(t)
	err := s.SaveResume(context.Background(), &Resume{UserID: "u1"})
	assert.Error(t, err)
}

func TestMatches_UpsertAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m := &Match{UserID: "u1", JobID: "j1", Result: match.Skills([]string{"Go"}, []string{"Go", "SQL"})}
	require.NoError(t, s.SaveMatch(ctx, m))
	firstID := m.ID

	m2 := &Match{UserID: "u1", JobID: "j1", Result: match.Skills([]string{"Go", "SQL"}, []string{"Go", "SQL"})}
	require.NoError(t, s.SaveMatch(ctx, m2))
	assert.Equal(t, firstID, m2.ID, "upsert should keep the original row")

	got, err := s.GetMatch(ctx, "u1", "j1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 100, got.MatchScore)
	assert.Equal(t, []string{"Go", "SQL"}, got.MatchedSkills)
	assert.Equal(t, []string{}, got.MissingSkills)

	none, err := s.GetMatch(ctx, "u1", "nope")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestMatches_Ordering(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	job := []string{"Go", "SQL", "Docker", "Kafka"}

	save := func(user, jobID string, skills ...string) {
		t.Helper()
		require.NoError(t, s.SaveMatch(ctx, &Match{UserID: user, JobID: jobID, Result: match.Skills(skills, job)}))
		time.Sleep(time.Millisecond)
	}
	save("u1", "j1", "Go")
	save("u2", "j1", "Go", "SQL", "Docker")
	save("u3", "j1", "Go", "SQL")
	save("u1", "j2", "Go", "SQL", "Docker", "Kafka")

	byJob, err := s.JobMatches(ctx, "j1")
	require.NoError(t, err)
	require.Len(t, byJob, 3)
	assert.Equal(t, []string{"u2", "u3", "u1"}, []string{byJob[0].UserID, byJob[1].UserID, byJob[2].UserID})

	byUser, err := s.UserMatches(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	assert.Equal(t, "j2", byUser[0].JobID)
	assert.Equal(t, 100, byUser[0].MatchScore)

	empty, err := s.UserMatches(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)
}
