package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PoseRow is one entity pose sampled at a tick.
type PoseRow struct {
	EntityID  uint64
	X, Y, Z   float64
	Direction float64
}

// SnapshotBatch is one tick's worth of sampled poses.
type SnapshotBatch struct {
	RunID uuid.UUID
	Tick  int64
	Rows  []PoseRow
}

// SnapshotRepo writes pose snapshots best-effort in the background.
// Enqueue never blocks the game loop: when the writer falls behind,
// batches are dropped and counted, matching the fire-and-forget
// contract for world persistence.
type SnapshotRepo struct {
	db      *DB
	log     *zap.Logger
	queue   chan SnapshotBatch
	done    chan struct{}
	dropped int64
}

func NewSnapshotRepo(db *DB, log *zap.Logger) *SnapshotRepo {
	r := &SnapshotRepo{
		db:    db,
		log:   log,
		queue: make(chan SnapshotBatch, 16),
		done:  make(chan struct{}),
	}
	go r.writeLoop()
	return r
}

// Enqueue hands a batch to the background writer. Returns immediately.
func (r *SnapshotRepo) Enqueue(batch SnapshotBatch) {
	select {
	case r.queue <- batch:
	default:
		r.dropped++
		if r.dropped%100 == 1 {
			r.log.Warn("snapshot queue full, dropping batch",
				zap.Int64("total_dropped", r.dropped))
		}
	}
}

// Close drains pending batches and stops the writer.
func (r *SnapshotRepo) Close() {
	close(r.queue)
	<-r.done
}

func (r *SnapshotRepo) writeLoop() {
	defer close(r.done)
	for batch := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := r.insertBatch(ctx, batch); err != nil {
			// Best effort: log and move on, never propagate.
			r.log.Warn("snapshot write failed",
				zap.Int64("tick", batch.Tick), zap.Error(err))
		}
		cancel()
	}
}

func (r *SnapshotRepo) insertBatch(ctx context.Context, batch SnapshotBatch) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("snapshot begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, row := range batch.Rows {
		if _, err := tx.Exec(ctx,
			`INSERT INTO pose_snapshots (run_id, tick, entity_id, x, y, z, direction)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			batch.RunID, batch.Tick, int64(row.EntityID),
			row.X, row.Y, row.Z, row.Direction,
		); err != nil {
			return fmt.Errorf("snapshot insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}
