package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/kutanig/explore-with-me/internal/database/postgres"
	"github.com/kutanig/explore-with-me/internal/entity"
)

type ratingService struct {
	ratingRepo repository.RatingRepository
	eventRepo  repository.EventRepository
	userRepo   repository.UserRepository
}

// NewRatingService creates a new instance of RatingService
func NewRatingService(
	ratingRepo repository.RatingRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		eventRepo:  eventRepo,
		userRepo:   userRepo,
	}
}

// AddRating ставит оценку событию; повторная оценка перезаписывает
// предыдущую. Оценивать можно только чужие опубликованные события
func (s *ratingService) AddRating(ctx context.Context, userID, eventID int64, ratingType entity.RatingType) (*entity.EventRating, error) {
	if !ratingType.Valid() {
		return nil, entity.ErrInvalidRatingType
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.InitiatorID == userID {
		return nil, entity.ErrOwnEventRating
	}
	if event.State != entity.EventStatePublished {
		return nil, entity.ErrUnpublishedEventRating
	}

	rating := &entity.Rating{
		UserID:    userID,
		EventID:   eventID,
		Type:      ratingType,
		CreatedOn: time.Now(),
	}
	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	return s.GetEventRating(ctx, eventID)
}

func (s *ratingService) RemoveRating(ctx context.Context, userID, eventID int64) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return err
	}
	return s.ratingRepo.DeleteByUserAndEvent(ctx, userID, eventID)
}

func (s *ratingService) GetEventRating(ctx context.Context, eventID int64) (*entity.EventRating, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	likes, dislikes, err := s.ratingRepo.GetEventRating(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return entity.NewEventRating(eventID, likes, dislikes), nil
}

func (s *ratingService) GetUserRating(ctx context.Context, userID int64) (*entity.UserRating, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.ratingRepo.GetUserRating(ctx, userID)
}

func (s *ratingService) GetTopUsers(ctx context.Context, count int) ([]*entity.UserRating, error) {
	if count <= 0 {
		return nil, entity.ErrInvalidPagination
	}
	return s.ratingRepo.GetTopUsers(ctx, count)
}

// EventScores реализует RatingReader для обогащения чтений событий
func (s *ratingService) EventScores(ctx context.Context, eventIDs []int64) (map[int64]float64, error) {
	ratings, err := s.ratingRepo.GetEventRatings(ctx, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get event ratings: %w", err)
	}

	scores := make(map[int64]float64, len(ratings))
	for eventID, rating := range ratings {
		scores[eventID] = rating.Rating
	}
	return scores, nil
}
