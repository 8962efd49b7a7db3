package service

import (
	"context"
	"fmt"

	repository "github.com/kutanig/explore-with-me/internal/database/postgres"
	"github.com/kutanig/explore-with-me/internal/entity"
)

// RequestStatusUpdateRequest represents a batch status change by the initiator
type RequestStatusUpdateRequest struct {
	RequestIDs []int64              `json:"requestIds" binding:"required,min=1"`
	Status     entity.RequestStatus `json:"status" binding:"required"`
}

type requestService struct {
	requestRepo repository.RequestRepository
	eventRepo   repository.EventRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

// NewRequestService creates a new instance of RequestService
func NewRequestService(
	requestRepo repository.RequestRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// CreateRequest подает заявку на участие. Решающая проверка дубликата и
// лимита выполняется в транзакции репозитория под блокировкой строки
// события; здесь только проверка существования пользователя
func (s *requestService) CreateRequest(ctx context.Context, userID, eventID int64) (*entity.ParticipationRequest, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	request, err := s.requestRepo.Create(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyRequestStatusChanged(ctx, request)
	}

	return request, nil
}

func (s *requestService) GetUserRequests(ctx context.Context, userID int64) ([]*entity.ParticipationRequest, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.requestRepo.GetByRequester(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user requests: %w", err)
	}

	return requests, nil
}

func (s *requestService) CancelRequest(ctx context.Context, userID, requestID int64) (*entity.ParticipationRequest, error) {
	request, err := s.requestRepo.CancelByRequester(ctx, requestID, userID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyRequestStatusChanged(ctx, request)
	}

	return request, nil
}

func (s *requestService) GetEventRequests(ctx context.Context, userID, eventID int64) ([]*entity.ParticipationRequest, error) {
	// Заявки видит только инициатор события
	if _, err := s.eventRepo.GetByIDAndInitiator(ctx, eventID, userID); err != nil {
		return nil, err
	}

	requests, err := s.requestRepo.GetByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event requests: %w", err)
	}

	return requests, nil
}

func (s *requestService) UpdateRequestStatuses(ctx context.Context, userID, eventID int64, req *RequestStatusUpdateRequest) (*entity.StatusUpdateResult, error) {
	if req.Status != entity.RequestStatusConfirmed && req.Status != entity.RequestStatusRejected {
		return nil, entity.ErrInvalidStatus
	}

	if _, err := s.eventRepo.GetByIDAndInitiator(ctx, eventID, userID); err != nil {
		return nil, err
	}

	result := &entity.StatusUpdateResult{
		ConfirmedRequests: []*entity.ParticipationRequest{},
		RejectedRequests:  []*entity.ParticipationRequest{},
	}

	requests, err := s.requestRepo.BulkUpdateStatus(ctx, eventID, req.RequestIDs, req.Status)
	if err != nil {
		return nil, err
	}

	for _, request := range requests {
		if request.Status == entity.RequestStatusConfirmed {
			result.ConfirmedRequests = append(result.ConfirmedRequests, request)
		} else {
			result.RejectedRequests = append(result.RejectedRequests, request)
		}
		if s.notifier != nil {
			s.notifier.NotifyRequestStatusChanged(ctx, request)
		}
	}

	return result, nil
}
