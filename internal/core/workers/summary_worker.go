package workers

import (
	"context"
	"log"
	"time"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
)

// SummarySource recomputes a user's dashboard summary from the stores.
type SummarySource interface {
	Summary(ctx context.Context, userID string, now time.Time) (*domain.DashboardSummary, error)
}

// SummaryCache receives the recomputed summaries.
type SummaryCache interface {
	Set(ctx context.Context, userID string, summary *domain.DashboardSummary) error
}

type SummaryJob struct {
	UserID string
}

// SummaryWorker refreshes cached dashboard summaries in the background.
// Writes that change a user's numbers enqueue a job; a full queue drops
// the job (the cache TTL bounds staleness, so a dropped refresh is only a
// slow refresh).
type SummaryWorker struct {
	source SummarySource
	cache  SummaryCache
	jobs   chan SummaryJob
}

func NewSummaryWorker(source SummarySource, cache SummaryCache) *SummaryWorker {
	return &SummaryWorker{
		source: source,
		cache:  cache,
		jobs:   make(chan SummaryJob, 100),
	}
}

func (w *SummaryWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Summary Worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Summary Worker shutting down...")
				return
			}
		}
	}()
}

func (w *SummaryWorker) Enqueue(userID string) {
	select {
	case w.jobs <- SummaryJob{UserID: userID}:
	default:
		log.Printf("Summary Worker queue full! Dropping refresh for user %s", userID)
	}
}

func (w *SummaryWorker) processJob(ctx context.Context, job SummaryJob) {
	summary, err := w.source.Summary(ctx, job.UserID, time.Now().UTC())
	if err != nil {
		log.Printf("Worker Error computing summary for user %s: %v", job.UserID, err)
		return
	}

	if err := w.cache.Set(ctx, job.UserID, summary); err != nil {
		log.Printf("Worker Failed to cache summary for user %s: %v", job.UserID, err)
		return
	}

	log.Printf("Dashboard summary refreshed for user %s (score=%d)", job.UserID, summary.ProductivityScore)
}
