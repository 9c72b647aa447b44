package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/academica/academica-backend/internal/config"
	"github.com/academica/academica-backend/internal/model"
	"github.com/academica/academica-backend/internal/repository"
	"github.com/academica/academica-backend/internal/service"
)

const (
	RecomputeBatchSize    = 50
	RecomputeBatchTimeout = 2 * time.Second
	RecomputePollTimeout  = 1 * time.Second
)

// RecomputeWorker drains the gradebook recompute queue and refreshes the
// per-student snapshot rows. Snapshots are derived data; a failed task is
// requeued, never dropped silently.
type RecomputeWorker struct {
	gradebookService *service.GradebookService
	gradebookRepo    *repository.GradebookRepository
	rdb              *redis.Client
	log              zerolog.Logger
}

// NewRecomputeWorker creates a new RecomputeWorker.
func NewRecomputeWorker(
	gradebookService *service.GradebookService,
	gradebookRepo *repository.GradebookRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *RecomputeWorker {
	return &RecomputeWorker{
		gradebookService: gradebookService,
		gradebookRepo:    gradebookRepo,
		rdb:              rdb,
		log:              log.With().Str("component", "recompute_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *RecomputeWorker) Start(ctx context.Context) {
	w.log.Info().Msg("RecomputeWorker started")

	batch := make([]service.RecomputeTask, 0, RecomputeBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= RecomputeBatchSize || time.Since(lastFlush) >= RecomputeBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, RecomputePollTimeout, config.WorkerKey.GradebookRecomputeQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var t service.RecomputeTask
			if err := json.Unmarshal([]byte(item[1]), &t); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, t)
		}
	}
}

// ----------------------------------------------------------------
// Batch recompute + upsert wrapper
// ----------------------------------------------------------------

func (w *RecomputeWorker) flushSafe(ctx context.Context, batch []service.RecomputeTask) {
	if len(batch) == 0 {
		return
	}

	tasks := dedupe(batch)

	entries := make([]*model.GradebookEntry, 0, len(tasks))
	for _, t := range tasks {
		entry, err := w.gradebookService.ComputeEntry(ctx, t.CourseID, t.StudentID)
		if err != nil {
			w.log.Error().Err(err).
				Int("course_id", t.CourseID).
				Int("student_id", t.StudentID).
				Msg("snapshot compute failed, requeueing")
			w.requeue(ctx, t)
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return
	}

	if err := w.gradebookRepo.BulkUpsertEntries(ctx, entries); err != nil {
		w.log.Warn().Err(err).Msg("bulk snapshot upsert failed, using fallback")

		for _, e := range entries {
			if err := w.gradebookRepo.UpsertEntry(ctx, e); err != nil {
				w.log.Error().Err(err).
					Int("course_id", e.CourseID).
					Int("student_id", e.StudentID).
					Msg("single snapshot upsert failed, requeueing")
				w.requeue(ctx, service.RecomputeTask{CourseID: e.CourseID, StudentID: e.StudentID})
			}
		}
	}

	// Fresh snapshots invalidate the per-course statistics cache.
	w.bulkClearStatsCache(ctx, entries)
}

// dedupe collapses repeated (course, student) tasks, keeping queue order.
func dedupe(batch []service.RecomputeTask) []service.RecomputeTask {
	seen := make(map[service.RecomputeTask]bool, len(batch))
	out := make([]service.RecomputeTask, 0, len(batch))
	for _, t := range batch {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func (w *RecomputeWorker) requeue(ctx context.Context, t service.RecomputeTask) {
	raw, _ := json.Marshal(t)
	w.rdb.RPush(ctx, config.WorkerKey.GradebookRecomputeQueue, raw)
}

// ----------------------------------------------------------------
// BULK Redis DEL for stale statistics caches
// ----------------------------------------------------------------

func (w *RecomputeWorker) bulkClearStatsCache(ctx context.Context, entries []*model.GradebookEntry) {
	pipe := w.rdb.Pipeline()

	seen := make(map[int]bool)
	for _, e := range entries {
		if seen[e.CourseID] {
			continue
		}
		seen[e.CourseID] = true
		pipe.Del(ctx, config.CacheKey.CourseStatsKey(e.CourseID))
	}

	_, _ = pipe.Exec(ctx)
}
