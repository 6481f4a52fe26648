package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/resumatch/internal/match"
	"github.com/dgallion1/resumatch/internal/resume"
	"github.com/dgallion1/resumatch/internal/store"
)

// ResumeStore is the persistence the pipeline needs.
type ResumeStore interface {
	FindResumeByHash(ctx context.Context, userID, hash string) (*store.Resume, error)
	SaveResume(ctx context.Context, r *store.Resume) error
	SaveMatch(ctx context.Context, m *store.Match) error
}

// Worker processes a single resume job.
type Worker struct {
	parser   *ResumeParser
	store    ResumeStore
	resolver *SkillResolver
	log      *slog.Logger
}

func NewWorker(parser *ResumeParser, st ResumeStore, resolver *SkillResolver, log *slog.Logger) *Worker {
	return &Worker{
		parser:   parser,
		store:    st,
		resolver: resolver,
		log:      log,
	}
}

// Process runs the ingest pipeline for a job: dedup, parse, store, match.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "user_id", job.UserID, "filename", job.Filename)

	data := job.FileData()
	hash := ContentHashHex(data)
	job.SetContentHash(hash)

	// Phase 1: Dedup check
	rec, resumeID, duplicate := w.lookupDuplicate(ctx, log, job.UserID, hash)

	// Phase 2: Parse and store
	if !duplicate {
		job.SetStatus(StatusParsing, "parsing")
		parsed, err := w.parser.Parse(bytes.NewReader(data), job.Filename)
		if err != nil {
			log.Error("parse failed", "error", err)
			job.AddError(fmt.Sprintf("parse: %s", err))
			job.SetStatus(StatusFailed, "parsing")
			return
		}
		for _, warn := range parsed.Warnings {
			log.Warn("parse warning", "warning", warn)
		}

		row := &store.Resume{UserID: job.UserID, ContentHash: hash, Filename: job.Filename, Record: parsed}
		if err := w.store.SaveResume(ctx, row); err != nil {
			log.Error("store resume failed", "error", err)
			job.AddError(fmt.Sprintf("store resume: %s", err))
			job.SetStatus(StatusFailed, "storing")
			return
		}
		rec, resumeID = parsed, row.ID
		log.Info("resume parsed", "resume_id", resumeID, "sections", rec.Sections.Len(), "skills", len(rec.Skills))
	}
	job.SetRecord(rec, resumeID)
	job.SetFileData(nil)

	// Phase 3: Match
	if job.JobPostingID != "" {
		job.SetStatus(StatusMatching, "matching")
		jobSkills, source := w.resolver.Resolve(ctx, job.JobPostingID)
		res := match.Skills(rec.Skills, jobSkills)
		job.SetMatch(res)
		log.Info("match complete", "job_posting_id", job.JobPostingID, "match_score", res.MatchScore, "skills_source", source)

		if job.UserID != "" {
			m := &store.Match{UserID: job.UserID, JobID: job.JobPostingID, Result: res}
			if err := w.store.SaveMatch(ctx, m); err != nil {
				log.Error("store match failed", "error", err)
				job.AddError(fmt.Sprintf("store match: %s", err))
			}
		}
	}

	if duplicate {
		job.SetStatus(StatusDuplicate, "done")
		return
	}
	job.SetStatus(StatusCompleted, "done")
}

// lookupDuplicate returns a stored record for the same user and file bytes.
// Lookup errors are logged and treated as a miss.
func (w *Worker) lookupDuplicate(ctx context.Context, log *slog.Logger, userID, hash string) (*resume.Record, string, bool) {
	if userID == "" {
		return nil, "", false
	}
	existing, err := w.store.FindResumeByHash(ctx, userID, hash)
	if err != nil {
		log.Warn("dedup check failed, proceeding", "error", err)
		return nil, "", false
	}
	if existing == nil || existing.Record == nil {
		return nil, "", false
	}
	log.Info("duplicate resume, reusing stored parse", "existing_resume_id", existing.ID)
	return existing.Record, existing.ID, true
}
