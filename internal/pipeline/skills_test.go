package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgallion1/resumatch/internal/match"
	"github.com/dgallion1/resumatch/internal/portal"
	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// fakeSource replays results in order and counts calls.
type fakeSource struct {
	results []fakeResult
	calls   int
}

type fakeResult struct {
	job *portal.Job
	err error
}

func (f *fakeSource) GetJob(_ context.Context, _ string) (*portal.Job, error) {
	r := f.results[min(f.calls, len(f.results)-1)]
	f.calls++
	return r.job, r.err
}

func newTestResolver(src JobSource, defaults []string) *SkillResolver {
	return NewSkillResolver(src, defaults, discardLogger()).
		WithRetry(RetryPolicy{Attempts: DefaultRetryPolicy.Attempts})
}

func TestSkillResolver_Portal(t *testing.T) {
	src := &fakeSource{results: []fakeResult{{job: &portal.Job{SkillsRequired: []string{"Go"}}}}}
	skills, from := newTestResolver(src, nil).Resolve(context.Background(), "j1")

	assert.Equal(t, []string{"Go"}, skills)
	assert.Equal(t, SkillsFromPortal, from)
}

func TestSkillResolver_PostingWithoutSkills(t *testing.T) {
	src := &fakeSource{results: []fakeResult{{job: &portal.Job{ID: "j1"}}}}
	skills, from := newTestResolver(src, nil).Resolve(context.Background(), "j1")

	assert.Empty(t, skills)
	assert.Equal(t, SkillsFromPortal, from)
}

func TestSkillResolver_NotFoundUsesDefaults(t *testing.T) {
	src := &fakeSource{results: []fakeResult{{}}}
	skills, from := newTestResolver(src, nil).Resolve(context.Background(), "missing")

	assert.Equal(t, match.DefaultJobSkills, skills)
	assert.Equal(t, SkillsFromDefault, from)
}

func TestSkillResolver_RetriesTransientErrors(t *testing.T) {
	src := &fakeSource{results: []fakeResult{
		{err: &portal.RetryableError{StatusCode: 503}},
		{err: &portal.RetryableError{StatusCode: 429}},
		{job: &portal.Job{SkillsRequired: []string{"SQL"}}},
	}}
	skills, from := newTestResolver(src, nil).Resolve(context.Background(), "j1")

	assert.Equal(t, 3, src.calls)
	assert.Equal(t, []string{"SQL"}, skills)
	assert.Equal(t, SkillsFromPortal, from)
}

func TestSkillResolver_GivesUpAfterAttempts(t *testing.T) {
	src := &fakeSource{results: []fakeResult{{err: &portal.RetryableError{StatusCode: 502}}}}
	skills, from := newTestResolver(src, []string{"Go"}).Resolve(context.Background(), "j1")

	assert.Equal(t, DefaultRetryPolicy.Attempts, src.calls)
	assert.Equal(t, []string{"Go"}, skills)
	assert.Equal(t, SkillsFromDefault, from)
}

func TestSkillResolver_PermanentErrorNotRetried(t *testing.T) {
	src := &fakeSource{results: []fakeResult{{err: errors.New("status 401")}}}
	_, from := newTestResolver(src, nil).Resolve(context.Background(), "j1")

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, SkillsFromDefault, from)
}

func TestSkillResolver_NoSource(t *testing.T) {
	skills, from := newTestResolver(nil, []string{"Rust"}).Resolve(context.Background(), "j1")
	assert.Equal(t, []string{"Rust"}, skills)
	assert.Equal(t, SkillsFromDefault, from)
}

func TestRetryPolicy_Delay(t *testing.T) {
	p := DefaultRetryPolicy
	for attempt, base := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second} {
		d := p.Delay(attempt)
		if d < base || d >= base+base/2 {
			t.Errorf("attempt %d: expected [%v, %v), got %v", attempt, base, base+base/2, d)
		}
	}
	if d := p.Delay(10); d < 30*time.Second || d >= 45*time.Second {
		t.Errorf("expected capped delay, got %v", d)
	}

	fixed := RetryPolicy{Base: 100 * time.Millisecond, Max: 250 * time.Millisecond}
	for attempt, want := range []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 250 * time.Millisecond} {
		if d := fixed.Delay(attempt); d != want {
			t.Errorf("attempt %d: expected %v without jitter, got %v", attempt, want, d)
		}
	}
	if d := (RetryPolicy{}).Delay(3); d != 0 {
		t.Errorf("expected zero delay without a base, got %v", d)
	}
}

func TestSkillResolver_CustomRetryPolicy(t *testing.T) {
	src := &fakeSource{results: []fakeResult{{err: &portal.RetryableError{StatusCode: 503}}}}
	r := NewSkillResolver(src, []string{"Go"}, discardLogger()).WithRetry(RetryPolicy{Attempts: 5})
	_, from := r.Resolve(context.Background(), "j1")

	assert.Equal(t, 5, src.calls)
	assert.Equal(t, SkillsFromDefault, from)

	src = &fakeSource{results: []fakeResult{{err: &portal.RetryableError{StatusCode: 503}}}}
	NewSkillResolver(src, nil, discardLogger()).WithRetry(RetryPolicy{}).Resolve(context.Background(), "j1")
	assert.Equal(t, 1, src.calls, "a zero policy still makes one call")
}

func TestIsRetryable(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), &portal.RetryableError{StatusCode: 500})
	if !IsRetryable(wrapped) {
		t.Error("expected wrapped RetryableError to be retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("expected plain error not to be retryable")
	}
}
