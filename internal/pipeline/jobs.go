package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/resumatch/internal/match"
	"github.com/dgallion1/resumatch/internal/resume"
	"github.com/google/uuid"
)

// JobStatus represents the state of an ingestion job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusParsing   JobStatus = "parsing"
	StatusMatching  JobStatus = "matching"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	// StatusDuplicate marks a job that reused a stored parse of the same file.
	StatusDuplicate JobStatus = "duplicate"
)

// Done reports whether the status is terminal.
func (s JobStatus) Done() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusDuplicate
}

// Job tracks the state of a single resume ingestion.
type Job struct {
	mu sync.Mutex

	ID           string `json:"job_id"`
	UserID       string `json:"user_id"`
	JobPostingID string `json:"job_posting_id,omitempty"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	ResumeID    string    `json:"resume_id,omitempty"`
	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	record   *resume.Record
	match    *match.Result
	errors   []string
}

// NewJob creates a queued job for an uploaded file.
func NewJob(userID, jobPostingID, filename string, data []byte) *Job {
	now := time.Now()
	return &Job{
		ID:           uuid.NewString(),
		UserID:       userID,
		JobPostingID: jobPostingID,
		Status:       StatusQueued,
		Phase:        "queued",
		Filename:     filename,
		CreatedAt:    now,
		UpdatedAt:    now,
		fileData:     data,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		expired := now.Sub(job.UpdatedAt) > s.ttl
		job.mu.Unlock()
		if expired {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.UpdatedAt = time.Now()
}

// SetRecord stores the parse result and the row it was saved under.
func (j *Job) SetRecord(rec *resume.Record, resumeID string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.record = rec
	j.ResumeID = resumeID
	j.UpdatedAt = time.Now()
}

// SetMatch stores the match result.
func (j *Job) SetMatch(res match.Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.match = &res
	j.UpdatedAt = time.Now()
}

// SetContentHash records the hash of the uploaded bytes.
func (j *Job) SetContentHash(hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = hash
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID           string         `json:"job_id"`
	UserID       string         `json:"user_id"`
	JobPostingID string         `json:"job_posting_id,omitempty"`
	Status       JobStatus      `json:"status"`
	Phase        string         `json:"phase"`
	Filename     string         `json:"filename"`
	ResumeID     string         `json:"resume_id,omitempty"`
	ContentHash  string         `json:"content_hash,omitempty"`
	Record       *resume.Record `json:"record,omitempty"`
	Match        *match.Result  `json:"match,omitempty"`
	Errors       []string       `json:"errors"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state. Record and Match are
// shared, not copied; they are never mutated after being set.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.errors...)
	return JobSnapshot{
		ID:           j.ID,
		UserID:       j.UserID,
		JobPostingID: j.JobPostingID,
		Status:       j.Status,
		Phase:        j.Phase,
		Filename:     j.Filename,
		ResumeID:     j.ResumeID,
		ContentHash:  j.ContentHash,
		Record:       j.record,
		Match:        j.match,
		Errors:       errs,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
