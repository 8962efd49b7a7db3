package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	repository "github.com/kutanig/explore-with-me/internal/database/postgres"
)

// HitRetentionWorker периодически удаляет записи журнала просмотров
// старше окна хранения
type HitRetentionWorker struct {
	hitRepo   repository.HitRepository
	interval  time.Duration
	retention time.Duration
}

func NewHitRetentionWorker(hitRepo repository.HitRepository, interval, retention time.Duration) *HitRetentionWorker {
	return &HitRetentionWorker{
		hitRepo:   hitRepo,
		interval:  interval,
		retention: retention,
	}
}

func (w *HitRetentionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Hit retention worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Hit retention worker stopped")
			return
		case <-ticker.C:
			w.prune(ctx)
		}
	}
}

func (w *HitRetentionWorker) prune(ctx context.Context) {
	cutoff := time.Now().Add(-w.retention)

	deleted, err := w.hitRepo.DeleteBefore(ctx, cutoff)
	if err != nil {
		logrus.Errorf("Failed to prune old hits: %v", err)
		return
	}

	if deleted > 0 {
		logrus.Infof("Pruned %d hits older than %s", deleted, cutoff.Format(time.RFC3339))
	}
}
