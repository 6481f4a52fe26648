package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/resumatch/internal/config"
	"github.com/dgallion1/resumatch/internal/extract"
	"github.com/dgallion1/resumatch/internal/parser"
	"github.com/dgallion1/resumatch/internal/resume"
)

// Orchestrator manages the resume ingestion pipeline.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	store    ResumeStore
	resolver *SkillResolver
	parser   *ResumeParser
	stats    *ParseStats
	log      *slog.Logger
	cfg      config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, st ResumeStore, resolver *SkillResolver, log *slog.Logger) *Orchestrator {
	stats := NewParseStats(cfg.StatsWindow)
	return &Orchestrator{
		jobs:     NewJobStore(cfg.JobTTL),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		store:    st,
		resolver: resolver,
		parser:   NewResumeParser(ParseOptions(cfg), stats),
		stats:    stats,
		log:      log,
		cfg:      cfg,
	}
}

// ParseOptions derives resume parsing options from configuration. An
// unknown strategy falls back to regex; Validate rejects it earlier.
func ParseOptions(cfg config.Config) resume.Options {
	strategy, err := extract.ParseStrategy(cfg.ProfileStrategy)
	if err != nil {
		strategy = extract.StrategyRegex
	}
	return resume.Options{
		Strategy: strategy,
		Parser:   parser.Config{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
	}
}

// RetryOptions derives the portal retry policy from configuration. Zero
// values keep the defaults.
func RetryOptions(cfg config.Config) RetryPolicy {
	p := DefaultRetryPolicy
	if cfg.PortalMaxRetries > 0 {
		p.Attempts = cfg.PortalMaxRetries
	}
	if cfg.PortalRetryBase > 0 {
		p.Base = cfg.PortalRetryBase
	}
	return p
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.parser, o.store, o.resolver, o.log)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Parser returns the stats-recording parser for synchronous requests.
func (o *Orchestrator) Parser() *ResumeParser {
	return o.parser
}

// Resolver returns the job skill resolver for direct use by API handlers.
func (o *Orchestrator) Resolver() *SkillResolver {
	return o.resolver
}

// Stats returns the rolling parse statistics.
func (o *Orchestrator) Stats() *ParseStats {
	return o.stats
}
