package portal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPortal(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL+"/", "secret")
	t.Cleanup(c.Close)
	return c
}

func TestGetJob_Found(t *testing.T) {
	c := newPortal(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/job/j1", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"job":{"_id":"j1","title":"Backend","skillsRequired":["Go","SQL"]}}`))
	})

	job, err := c.GetJob(context.Background(), "j1")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "j1", job.ID)
	assert.Equal(t, []string{"Go", "SQL"}, job.SkillNames())
}

func TestGetJob_NotFound(t *testing.T) {
	c := newPortal(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Job not found.", http.StatusNotFound)
	})

	job, err := c.GetJob(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestGetJob_Retryable(t *testing.T) {
	for _, code := range []int{http.StatusTooManyRequests, http.StatusBadGateway} {
		c := newPortal(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		})

		_, err := c.GetJob(context.Background(), "j1")
		var re *RetryableError
		require.True(t, errors.As(err, &re), "status %d should be retryable", code)
		assert.Equal(t, code, re.StatusCode)
	}
}

func TestGetJob_ClientError(t *testing.T) {
	c := newPortal(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.GetJob(context.Background(), "j1")
	require.Error(t, err)
	var re *RetryableError
	assert.False(t, errors.As(err, &re))
}

func TestSkillNames_FallsBackToSection(t *testing.T) {
	job := &Job{SkillSection: []Skill{{Name: "React"}, {Name: " "}, {Name: "Node.js", Level: "senior"}}}
	assert.Equal(t, []string{"React", "Node.js"}, job.SkillNames())

	empty := &Job{}
	assert.Empty(t, empty.SkillNames())
}
