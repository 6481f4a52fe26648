package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/dgallion1/resumatch/internal/match"
	"github.com/dgallion1/resumatch/internal/portal"
)

// Where a job's skill list came from.
const (
	SkillsFromRequest = "request"
	SkillsFromPortal  = "portal"
	SkillsFromDefault = "default"
)

// JobSource looks up job postings by ID.
type JobSource interface {
	GetJob(ctx context.Context, id string) (*portal.Job, error)
}

// SkillResolver turns a job posting ID into the skills to match against.
type SkillResolver struct {
	source   JobSource
	defaults []string
	log      *slog.Logger
	retry    RetryPolicy
}

// NewSkillResolver returns a resolver backed by source, which may be nil
// when no portal is configured. Empty defaults select match.DefaultJobSkills.
func NewSkillResolver(source JobSource, defaults []string, log *slog.Logger) *SkillResolver {
	if len(defaults) == 0 {
		defaults = match.DefaultJobSkills
	}
	return &SkillResolver{
		source:   source,
		defaults: defaults,
		log:      log,
		retry:    DefaultRetryPolicy,
	}
}

// WithRetry replaces the portal retry policy.
func (r *SkillResolver) WithRetry(p RetryPolicy) *SkillResolver {
	r.retry = p
	return r
}

// Resolve returns the posting's skills and where they came from. A posting
// that exists is authoritative even when it lists no skills; lookup
// failures and unknown postings fall back to the defaults.
func (r *SkillResolver) Resolve(ctx context.Context, jobID string) ([]string, string) {
	if r.source == nil || jobID == "" {
		return r.defaults, SkillsFromDefault
	}
	log := r.log.With("job_posting_id", jobID)

	job, err := r.fetch(ctx, jobID)
	switch {
	case err != nil:
		log.Warn("job posting lookup failed, using default skills", "error", err)
	case job == nil:
		log.Info("job posting not found, using default skills")
	default:
		return job.SkillNames(), SkillsFromPortal
	}
	return r.defaults, SkillsFromDefault
}

func (r *SkillResolver) fetch(ctx context.Context, jobID string) (*portal.Job, error) {
	attempts := r.retry.attempts()
	var lastErr error
	for attempt := range attempts {
		job, err := r.source.GetJob(ctx, jobID)
		if err == nil || !IsRetryable(err) {
			return job, err
		}
		lastErr = err
		if attempt == attempts-1 {
			break
		}
		delay := r.retry.Delay(attempt)
		r.log.Warn("retryable portal error", "job_posting_id", jobID, "attempt", attempt, "retry_in", delay, "error", err)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}
