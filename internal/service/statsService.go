package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	repository "github.com/kutanig/explore-with-me/internal/database/postgres"
	"github.com/kutanig/explore-with-me/internal/database/redis"
	"github.com/kutanig/explore-with-me/internal/entity"
)

// Нижняя граница окна подсчета просмотров: хиты старше окна хранения
// все равно удаляются воркером
var statsEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

type statsService struct {
	hitRepo  repository.HitRepository
	cache    *redis.ViewsCache
	app      string
	uniqueIP bool
}

// NewStatsService creates a new instance of StatsService
func NewStatsService(hitRepo repository.HitRepository, cache *redis.ViewsCache, app string, uniqueIP bool) StatsService {
	return &statsService{
		hitRepo:  hitRepo,
		cache:    cache,
		app:      app,
		uniqueIP: uniqueIP,
	}
}

func eventURI(eventID int64) string {
	return fmt.Sprintf("/events/%d", eventID)
}

// RecordHit фиксирует просмотр. Учет носит справочный характер:
// ошибка логируется и не возвращается вызывающему
func (s *statsService) RecordHit(ctx context.Context, uri, ip string) {
	hit := &entity.EndpointHit{
		App:       s.app,
		URI:       uri,
		IP:        ip,
		Timestamp: time.Now(),
	}
	if err := s.hitRepo.Save(ctx, hit); err != nil {
		logrus.WithError(err).WithField("uri", uri).Warn("failed to record hit")
	}
}

func (s *statsService) Views(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	views := make(map[int64]int64, len(eventIDs))

	// Сначала кэш, в базу идут только промахи
	var missed []int64
	if s.cache != nil {
		for _, id := range eventIDs {
			count, ok, err := s.cache.GetViews(ctx, id)
			if err != nil {
				logrus.WithError(err).Warn("views cache unavailable")
				missed = eventIDs
				break
			}
			if ok {
				views[id] = count
			} else {
				missed = append(missed, id)
			}
		}
	} else {
		missed = eventIDs
	}

	if len(missed) == 0 {
		return views, nil
	}

	uris := make([]string, len(missed))
	uriToID := make(map[string]int64, len(missed))
	for i, id := range missed {
		uris[i] = eventURI(id)
		uriToID[uris[i]] = id
	}

	counts, err := s.hitRepo.CountViews(ctx, s.app, uris, statsEpoch, time.Now(), s.uniqueIP)
	if err != nil {
		return nil, fmt.Errorf("failed to count views: %w", err)
	}

	for uri, id := range uriToID {
		count := counts[uri]
		views[id] = count
		if s.cache != nil {
			if err := s.cache.SetViews(ctx, id, count); err != nil {
				logrus.WithError(err).Warn("failed to cache views")
			}
		}
	}

	return views, nil
}
