package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	repository "github.com/kutanig/explore-with-me/internal/database/postgres"
	"github.com/kutanig/explore-with-me/internal/entity"
)

// NewCompilationRequest represents the data needed to create a compilation
type NewCompilationRequest struct {
	Title  string  `json:"title" binding:"required,min=1,max=50"`
	Pinned bool    `json:"pinned"`
	Events []int64 `json:"events"`
}

// UpdateCompilationRequest represents a partial update of a compilation
type UpdateCompilationRequest struct {
	Title  *string `json:"title,omitempty" binding:"omitempty,min=1,max=50"`
	Pinned *bool   `json:"pinned,omitempty"`
	Events []int64 `json:"events,omitempty"`
}

type compilationService struct {
	compilationRepo repository.CompilationRepository
	eventRepo       repository.EventRepository
	requestRepo     repository.RequestRepository
	views           ViewCounter
	ratings         RatingReader
}

// NewCompilationService creates a new instance of CompilationService
func NewCompilationService(
	compilationRepo repository.CompilationRepository,
	eventRepo repository.EventRepository,
	requestRepo repository.RequestRepository,
	views ViewCounter,
	ratings RatingReader,
) CompilationService {
	return &compilationService{
		compilationRepo: compilationRepo,
		eventRepo:       eventRepo,
		requestRepo:     requestRepo,
		views:           views,
		ratings:         ratings,
	}
}

func (s *compilationService) checkEventsExist(ctx context.Context, eventIDs []int64) error {
	if len(eventIDs) == 0 {
		return nil
	}
	events, err := s.eventRepo.GetByIDs(ctx, eventIDs)
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}
	if len(events) != len(uniqueIDs(eventIDs)) {
		return entity.ErrEventNotFound
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	unique := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}
	return unique
}

func (s *compilationService) CreateCompilation(ctx context.Context, req *NewCompilationRequest) (*entity.CompilationWithEvents, error) {
	if err := s.checkEventsExist(ctx, req.Events); err != nil {
		return nil, err
	}

	compilation := &entity.Compilation{
		Title:  req.Title,
		Pinned: req.Pinned,
	}
	if err := s.compilationRepo.Create(ctx, compilation, uniqueIDs(req.Events)); err != nil {
		return nil, err
	}

	return s.withEvents(ctx, compilation)
}

func (s *compilationService) UpdateCompilation(ctx context.Context, id int64, req *UpdateCompilationRequest) (*entity.CompilationWithEvents, error) {
	compilation, err := s.compilationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		compilation.Title = *req.Title
	}
	if req.Pinned != nil {
		compilation.Pinned = *req.Pinned
	}

	var eventIDs []int64
	if req.Events != nil {
		if err := s.checkEventsExist(ctx, req.Events); err != nil {
			return nil, err
		}
		eventIDs = uniqueIDs(req.Events)
	}

	if err := s.compilationRepo.Update(ctx, compilation, eventIDs); err != nil {
		return nil, err
	}

	return s.withEvents(ctx, compilation)
}

func (s *compilationService) DeleteCompilation(ctx context.Context, id int64) error {
	return s.compilationRepo.Delete(ctx, id)
}

func (s *compilationService) GetCompilation(ctx context.Context, id int64) (*entity.CompilationWithEvents, error) {
	compilation, err := s.compilationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withEvents(ctx, compilation)
}

func (s *compilationService) GetCompilations(ctx context.Context, pinned *bool, from, size int) ([]*entity.CompilationWithEvents, error) {
	if err := validatePagination(from, size); err != nil {
		return nil, err
	}

	compilations, err := s.compilationRepo.GetAll(ctx, pinned, from, size)
	if err != nil {
		return nil, err
	}

	result := make([]*entity.CompilationWithEvents, 0, len(compilations))
	for _, compilation := range compilations {
		withEvents, err := s.withEvents(ctx, compilation)
		if err != nil {
			return nil, err
		}
		result = append(result, withEvents)
	}

	return result, nil
}

// withEvents загружает состав подборки и обогащает события так же,
// как публичные чтения событий
func (s *compilationService) withEvents(ctx context.Context, compilation *entity.Compilation) (*entity.CompilationWithEvents, error) {
	eventIDs, err := s.compilationRepo.GetEventIDs(ctx, compilation.ID)
	if err != nil {
		return nil, err
	}

	result := &entity.CompilationWithEvents{
		Compilation: *compilation,
		Events:      []*entity.EventWithDetails{},
	}
	if len(eventIDs) == 0 {
		return result, nil
	}

	events, err := s.eventRepo.GetByIDs(ctx, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get compilation events: %w", err)
	}

	details := make([]*entity.EventWithDetails, len(events))
	for i, event := range events {
		details[i] = &entity.EventWithDetails{Event: *event}
	}

	confirmed, err := s.requestRepo.CountConfirmedForEvents(ctx, eventIDs)
	if err != nil {
		logrus.WithError(err).Warn("failed to load confirmed counts")
		confirmed = nil
	}

	var viewCounts map[int64]int64
	if s.views != nil {
		viewCounts, err = s.views.Views(ctx, eventIDs)
		if err != nil {
			logrus.WithError(err).Warn("failed to load view counts")
			viewCounts = nil
		}
	}

	var scores map[int64]float64
	if s.ratings != nil {
		scores, err = s.ratings.EventScores(ctx, eventIDs)
		if err != nil {
			logrus.WithError(err).Warn("failed to load event ratings")
			scores = nil
		}
	}

	for _, d := range details {
		d.ConfirmedRequests = confirmed[d.ID]
		d.Views = viewCounts[d.ID]
		d.Rating = scores[d.ID]
	}

	result.Events = details
	return result, nil
}
