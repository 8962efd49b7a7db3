package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	repository "github.com/kutanig/explore-with-me/internal/database/postgres"
	"github.com/kutanig/explore-with-me/internal/entity"
)

// Событие можно создать или перенести не позднее чем за два часа до начала
const minEventLead = 2 * time.Hour

const (
	SortEventDate = "EVENT_DATE"
	SortViews     = "VIEWS"
)

// NewEventRequest represents the data needed to create an event
type NewEventRequest struct {
	Title             string          `json:"title" binding:"required,min=3,max=120"`
	Annotation        string          `json:"annotation" binding:"required,min=20,max=2000"`
	Description       string          `json:"description" binding:"required,min=20,max=7000"`
	Category          int64           `json:"category" binding:"required"`
	Location          entity.Location `json:"location" binding:"required"`
	Paid              bool            `json:"paid"`
	ParticipantLimit  int             `json:"participantLimit" binding:"min=0"`
	RequestModeration *bool           `json:"requestModeration"`
	EventDate         entity.DateTime `json:"eventDate" binding:"required"`
}

// UpdateEventUserRequest represents a partial update by the initiator
type UpdateEventUserRequest struct {
	Title             *string            `json:"title,omitempty" binding:"omitempty,min=3,max=120"`
	Annotation        *string            `json:"annotation,omitempty" binding:"omitempty,min=20,max=2000"`
	Description       *string            `json:"description,omitempty" binding:"omitempty,min=20,max=7000"`
	Category          *int64             `json:"category,omitempty"`
	Location          *entity.Location   `json:"location,omitempty"`
	Paid              *bool              `json:"paid,omitempty"`
	ParticipantLimit  *int               `json:"participantLimit,omitempty" binding:"omitempty,min=0"`
	RequestModeration *bool              `json:"requestModeration,omitempty"`
	EventDate         *entity.DateTime   `json:"eventDate,omitempty"`
	StateAction       entity.StateAction `json:"stateAction,omitempty"`
}

// UpdateEventAdminRequest represents a partial update by the administrator
type UpdateEventAdminRequest struct {
	Title             *string            `json:"title,omitempty" binding:"omitempty,min=3,max=120"`
	Annotation        *string            `json:"annotation,omitempty" binding:"omitempty,min=20,max=2000"`
	Description       *string            `json:"description,omitempty" binding:"omitempty,min=20,max=7000"`
	Category          *int64             `json:"category,omitempty"`
	Location          *entity.Location   `json:"location,omitempty"`
	Paid              *bool              `json:"paid,omitempty"`
	ParticipantLimit  *int               `json:"participantLimit,omitempty" binding:"omitempty,min=0"`
	RequestModeration *bool              `json:"requestModeration,omitempty"`
	EventDate         *entity.DateTime   `json:"eventDate,omitempty"`
	StateAction       entity.StateAction `json:"stateAction,omitempty"`
}

// PublicSearchParams represents public search filters
type PublicSearchParams struct {
	Text          string
	Categories    []int64
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	Sort          string
	From          int
	Size          int
}

// AdminSearchParams represents admin search filters
type AdminSearchParams struct {
	Users      []int64
	States     []string
	Categories []int64
	RangeStart *time.Time
	RangeEnd   *time.Time
	From       int
	Size       int
}

type eventService struct {
	eventRepo    repository.EventRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	requestRepo  repository.RequestRepository
	views        ViewCounter
	ratings      RatingReader
	notifier     Notifier
}

// NewEventService creates a new instance of EventService
func NewEventService(
	eventRepo repository.EventRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	requestRepo repository.RequestRepository,
	views ViewCounter,
	ratings RatingReader,
	notifier Notifier,
) EventService {
	return &eventService{
		eventRepo:    eventRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		requestRepo:  requestRepo,
		views:        views,
		ratings:      ratings,
		notifier:     notifier,
	}
}

func validatePagination(from, size int) error {
	if from < 0 || size <= 0 {
		return entity.ErrInvalidPagination
	}
	return nil
}

func validateEventDate(eventDate time.Time) error {
	if eventDate.Before(time.Now().Add(minEventLead)) {
		return entity.ErrEventDateTooSoon
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, userID int64, req *NewEventRequest) (*entity.EventWithDetails, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.GetByID(ctx, req.Category); err != nil {
		return nil, err
	}
	if err := validateEventDate(req.EventDate.Time); err != nil {
		return nil, err
	}

	// Модерация включена, если явно не отключена
	requestModeration := true
	if req.RequestModeration != nil {
		requestModeration = *req.RequestModeration
	}

	event := &entity.Event{
		Title:             req.Title,
		Annotation:        req.Annotation,
		Description:       req.Description,
		CategoryID:        req.Category,
		InitiatorID:       userID,
		Location:          req.Location,
		Paid:              req.Paid,
		ParticipantLimit:  req.ParticipantLimit,
		RequestModeration: requestModeration,
		EventDate:         req.EventDate.Time,
		CreatedOn:         time.Now(),
		State:             entity.EventStatePending,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return &entity.EventWithDetails{Event: *event}, nil
}

func (s *eventService) GetUserEvents(ctx context.Context, userID int64, from, size int) ([]*entity.EventWithDetails, error) {
	if err := validatePagination(from, size); err != nil {
		return nil, err
	}

	events, err := s.eventRepo.GetByInitiator(ctx, userID, from, size)
	if err != nil {
		return nil, fmt.Errorf("failed to get user events: %w", err)
	}

	return s.decorate(ctx, events), nil
}

func (s *eventService) GetUserEvent(ctx context.Context, userID, eventID int64) (*entity.EventWithDetails, error) {
	event, err := s.eventRepo.GetByIDAndInitiator(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	return s.decorateOne(ctx, event), nil
}

func (s *eventService) UpdateUserEvent(ctx context.Context, userID, eventID int64, req *UpdateEventUserRequest) (*entity.EventWithDetails, error) {
	event, err := s.eventRepo.GetByIDAndInitiator(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if !event.Editable() {
		return nil, entity.ErrEventNotEditable
	}

	if err := s.applyPatch(ctx, event, req.Title, req.Annotation, req.Description,
		req.Category, req.Location, req.Paid, req.ParticipantLimit,
		req.RequestModeration, req.EventDate); err != nil {
		return nil, err
	}

	switch req.StateAction {
	case "":
	case entity.StateActionSendToReview:
		event.State = entity.EventStatePending
	case entity.StateActionCancelReview:
		event.State = entity.EventStateCanceled
	default:
		return nil, entity.ErrInvalidStateAction
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return s.decorateOne(ctx, event), nil
}

func (s *eventService) UpdateAdminEvent(ctx context.Context, eventID int64, req *UpdateEventAdminRequest) (*entity.EventWithDetails, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.applyPatch(ctx, event, req.Title, req.Annotation, req.Description,
		req.Category, req.Location, req.Paid, req.ParticipantLimit,
		req.RequestModeration, req.EventDate); err != nil {
		return nil, err
	}

	published := false
	switch req.StateAction {
	case "":
	case entity.StateActionPublishEvent:
		if event.State != entity.EventStatePending {
			return nil, entity.ErrEventNotPending
		}
		event.State = entity.EventStatePublished
		// publishedOn выставляется ровно один раз
		if event.PublishedOn == nil {
			now := time.Now()
			event.PublishedOn = &now
		}
		published = true
	case entity.StateActionRejectEvent:
		if event.State == entity.EventStatePublished {
			return nil, entity.ErrEventIsPublished
		}
		event.State = entity.EventStateCanceled
	default:
		return nil, entity.ErrInvalidStateAction
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	if published && s.notifier != nil {
		s.notifier.NotifyEventPublished(ctx, event)
	}

	return s.decorateOne(ctx, event), nil
}

func (s *eventService) SearchAdminEvents(ctx context.Context, params *AdminSearchParams) ([]*entity.EventWithDetails, error) {
	if err := validatePagination(params.From, params.Size); err != nil {
		return nil, err
	}

	states := make([]entity.EventState, 0, len(params.States))
	for _, raw := range params.States {
		state := entity.EventState(raw)
		switch state {
		case entity.EventStatePending, entity.EventStatePublished, entity.EventStateCanceled:
			states = append(states, state)
		default:
			return nil, entity.ErrInvalidEventState
		}
	}

	events, err := s.eventRepo.SearchAdmin(ctx, &repository.AdminEventsFilter{
		Users:      params.Users,
		States:     states,
		Categories: params.Categories,
		RangeStart: params.RangeStart,
		RangeEnd:   params.RangeEnd,
		From:       params.From,
		Size:       params.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}

	return s.decorate(ctx, events), nil
}

func (s *eventService) GetPublishedEvent(ctx context.Context, eventID int64) (*entity.EventWithDetails, error) {
	event, err := s.eventRepo.GetByIDAndState(ctx, eventID, entity.EventStatePublished)
	if err != nil {
		return nil, err
	}
	return s.decorateOne(ctx, event), nil
}

func (s *eventService) SearchPublishedEvents(ctx context.Context, params *PublicSearchParams) ([]*entity.EventWithDetails, error) {
	if err := validatePagination(params.From, params.Size); err != nil {
		return nil, err
	}
	if params.Sort != "" && params.Sort != SortEventDate && params.Sort != SortViews {
		return nil, entity.ErrInvalidSort
	}

	// Без явного диапазона показываем только предстоящие события
	rangeStart := time.Now()
	if params.RangeStart != nil {
		rangeStart = *params.RangeStart
	}
	if params.RangeEnd != nil && rangeStart.After(*params.RangeEnd) {
		return nil, entity.ErrInvalidDateRange
	}

	events, err := s.eventRepo.SearchPublished(ctx, &repository.PublishedEventsFilter{
		Text:       params.Text,
		Categories: params.Categories,
		Paid:       params.Paid,
		RangeStart: rangeStart,
		RangeEnd:   params.RangeEnd,
		From:       params.From,
		Size:       params.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}

	details := s.decorate(ctx, events)

	if params.OnlyAvailable {
		available := details[:0]
		for _, d := range details {
			if d.Available() {
				available = append(available, d)
			}
		}
		details = available
	}

	if params.Sort == SortViews {
		sort.SliceStable(details, func(i, j int) bool {
			return details[i].Views > details[j].Views
		})
	}

	return details, nil
}

func (s *eventService) applyPatch(ctx context.Context, event *entity.Event,
	title, annotation, description *string, category *int64, location *entity.Location,
	paid *bool, participantLimit *int, requestModeration *bool, eventDate *entity.DateTime,
) error {
	if title != nil {
		event.Title = *title
	}
	if annotation != nil {
		event.Annotation = *annotation
	}
	if description != nil {
		event.Description = *description
	}
	if category != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *category); err != nil {
			return err
		}
		event.CategoryID = *category
	}
	if location != nil {
		event.Location = *location
	}
	if paid != nil {
		event.Paid = *paid
	}
	if participantLimit != nil {
		event.ParticipantLimit = *participantLimit
	}
	if requestModeration != nil {
		event.RequestModeration = *requestModeration
	}
	if eventDate != nil {
		if err := validateEventDate(eventDate.Time); err != nil {
			return err
		}
		event.EventDate = eventDate.Time
	}
	return nil
}

func (s *eventService) decorateOne(ctx context.Context, event *entity.Event) *entity.EventWithDetails {
	return s.decorate(ctx, []*entity.Event{event})[0]
}

// decorate обогащает события счетчиками подтвержденных заявок,
// просмотрами и рейтингом. Счетчики носят справочный характер: при
// ошибке остаются нулевыми, чтение не ломается
func (s *eventService) decorate(ctx context.Context, events []*entity.Event) []*entity.EventWithDetails {
	details := make([]*entity.EventWithDetails, len(events))
	ids := make([]int64, len(events))
	for i, event := range events {
		details[i] = &entity.EventWithDetails{Event: *event}
		ids[i] = event.ID
	}
	if len(ids) == 0 {
		return details
	}

	confirmed, err := s.requestRepo.CountConfirmedForEvents(ctx, ids)
	if err != nil {
		logrus.WithError(err).Warn("failed to load confirmed counts")
		confirmed = nil
	}

	var viewCounts map[int64]int64
	if s.views != nil {
		viewCounts, err = s.views.Views(ctx, ids)
		if err != nil {
			logrus.WithError(err).Warn("failed to load view counts")
			viewCounts = nil
		}
	}

	var scores map[int64]float64
	if s.ratings != nil {
		scores, err = s.ratings.EventScores(ctx, ids)
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

	return details
}
