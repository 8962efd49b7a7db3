package service

import (
	"context"

	"github.com/kutanig/explore-with-me/internal/entity"
)

// EventService определяет интерфейс для операций с событиями
type EventService interface {
	// Операции инициатора
	CreateEvent(ctx context.Context, userID int64, req *NewEventRequest) (*entity.EventWithDetails, error)
	GetUserEvents(ctx context.Context, userID int64, from, size int) ([]*entity.EventWithDetails, error)
	GetUserEvent(ctx context.Context, userID, eventID int64) (*entity.EventWithDetails, error)
	UpdateUserEvent(ctx context.Context, userID, eventID int64, req *UpdateEventUserRequest) (*entity.EventWithDetails, error)

	// Административные операции
	UpdateAdminEvent(ctx context.Context, eventID int64, req *UpdateEventAdminRequest) (*entity.EventWithDetails, error)
	SearchAdminEvents(ctx context.Context, params *AdminSearchParams) ([]*entity.EventWithDetails, error)

	// Публичные операции
	GetPublishedEvent(ctx context.Context, eventID int64) (*entity.EventWithDetails, error)
	SearchPublishedEvents(ctx context.Context, params *PublicSearchParams) ([]*entity.EventWithDetails, error)
}

// RequestService определяет интерфейс для заявок на участие
type RequestService interface {
	CreateRequest(ctx context.Context, userID, eventID int64) (*entity.ParticipationRequest, error)
	GetUserRequests(ctx context.Context, userID int64) ([]*entity.ParticipationRequest, error)
	CancelRequest(ctx context.Context, userID, requestID int64) (*entity.ParticipationRequest, error)

	// Операции инициатора события
	GetEventRequests(ctx context.Context, userID, eventID int64) ([]*entity.ParticipationRequest, error)
	UpdateRequestStatuses(ctx context.Context, userID, eventID int64, req *RequestStatusUpdateRequest) (*entity.StatusUpdateResult, error)
}

// RatingService определяет интерфейс для оценок событий
type RatingService interface {
	AddRating(ctx context.Context, userID, eventID int64, ratingType entity.RatingType) (*entity.EventRating, error)
	RemoveRating(ctx context.Context, userID, eventID int64) error

	GetEventRating(ctx context.Context, eventID int64) (*entity.EventRating, error)
	GetUserRating(ctx context.Context, userID int64) (*entity.UserRating, error)
	GetTopUsers(ctx context.Context, count int) ([]*entity.UserRating, error)

	// Читающая сторона для обогащения событий
	RatingReader
}

type UserService interface {
	CreateUser(ctx context.Context, req *NewUserRequest) (*entity.User, error)
	GetUsers(ctx context.Context, ids []int64, from, size int) ([]*entity.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type CategoryService interface {
	CreateCategory(ctx context.Context, req *CategoryRequest) (*entity.Category, error)
	UpdateCategory(ctx context.Context, id int64, req *CategoryRequest) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	GetCategory(ctx context.Context, id int64) (*entity.Category, error)
	GetCategories(ctx context.Context, from, size int) ([]*entity.Category, error)
}

type CompilationService interface {
	CreateCompilation(ctx context.Context, req *NewCompilationRequest) (*entity.CompilationWithEvents, error)
	UpdateCompilation(ctx context.Context, id int64, req *UpdateCompilationRequest) (*entity.CompilationWithEvents, error)
	DeleteCompilation(ctx context.Context, id int64) error
	GetCompilation(ctx context.Context, id int64) (*entity.CompilationWithEvents, error)
	GetCompilations(ctx context.Context, pinned *bool, from, size int) ([]*entity.CompilationWithEvents, error)
}

// StatsService определяет интерфейс для учета просмотров
type StatsService interface {
	RecordHit(ctx context.Context, uri, ip string)
	ViewCounter
}

// ViewCounter возвращает число просмотров по событиям. Сервис событий
// использует счетчики только для обогащения ответов: ошибка не должна
// ломать чтение
type ViewCounter interface {
	Views(ctx context.Context, eventIDs []int64) (map[int64]int64, error)
}

// RatingReader возвращает рейтинги событий для обогащения ответов
type RatingReader interface {
	EventScores(ctx context.Context, eventIDs []int64) (map[int64]float64, error)
}

// Notifier публикует доменные уведомления в очередь. Реализация может
// отсутствовать (nil), тогда уведомления молча пропускаются
type Notifier interface {
	NotifyEventPublished(ctx context.Context, event *entity.Event)
	NotifyRequestStatusChanged(ctx context.Context, request *entity.ParticipationRequest)
}
