package repository

import (
	"context"
	"time"

	"github.com/kutanig/explore-with-me/internal/entity"
)

// PublishedEventsFilter — фильтр публичного поиска по опубликованным событиям
type PublishedEventsFilter struct {
	Text       string
	Categories []int64
	Paid       *bool
	RangeStart time.Time
	RangeEnd   *time.Time
	From       int
	Size       int
}

// AdminEventsFilter — фильтр админского поиска
type AdminEventsFilter struct {
	Users      []int64
	States     []entity.EventState
	Categories []int64
	RangeStart *time.Time
	RangeEnd   *time.Time
	From       int
	Size       int
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	GetByIDAndInitiator(ctx context.Context, id, initiatorID int64) (*entity.Event, error)
	GetByIDAndState(ctx context.Context, id int64, state entity.EventState) (*entity.Event, error)
	GetByInitiator(ctx context.Context, initiatorID int64, from, size int) ([]*entity.Event, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error

	SearchPublished(ctx context.Context, filter *PublishedEventsFilter) ([]*entity.Event, error)
	SearchAdmin(ctx context.Context, filter *AdminEventsFilter) ([]*entity.Event, error)

	ExistsByCategory(ctx context.Context, categoryID int64) (bool, error)
}

// RequestRepository — хранилище заявок. Операции, меняющие число подтвержденных
// заявок, выполняются в одной транзакции с блокировкой строки события
// (SELECT ... FOR UPDATE): это и есть сериализация учета вместимости.
type RequestRepository interface {
	// Create проверяет условия допуска и создает заявку атомарно:
	// дубликат, собственное событие, неопубликованное событие, лимит участников.
	// Начальный статус вычисляется внутри той же транзакции.
	Create(ctx context.Context, eventID, requesterID int64) (*entity.ParticipationRequest, error)

	GetByID(ctx context.Context, id int64) (*entity.ParticipationRequest, error)
	GetByIDAndRequester(ctx context.Context, id, requesterID int64) (*entity.ParticipationRequest, error)
	GetByRequester(ctx context.Context, requesterID int64) ([]*entity.ParticipationRequest, error)
	GetByEvent(ctx context.Context, eventID int64) ([]*entity.ParticipationRequest, error)

	// CancelByRequester переводит заявку владельца в CANCELED из любого статуса
	CancelByRequester(ctx context.Context, id, requesterID int64) (*entity.ParticipationRequest, error)

	// BulkUpdateStatus меняет статус группы PENDING-заявок события целиком:
	// проверка суммарного эффекта против лимита и запись — одна транзакция,
	// при нарушении откатывается весь пакет
	BulkUpdateStatus(ctx context.Context, eventID int64, ids []int64, status entity.RequestStatus) ([]*entity.ParticipationRequest, error)

	CountConfirmed(ctx context.Context, eventID int64) (int64, error)
	CountConfirmedForEvents(ctx context.Context, eventIDs []int64) (map[int64]int64, error)
}

type RatingRepository interface {
	// Upsert создает оценку или перезаписывает тип существующей
	// оценки той же пары (user, event)
	Upsert(ctx context.Context, rating *entity.Rating) error
	DeleteByUserAndEvent(ctx context.Context, userID, eventID int64) error
	GetByUserAndEvent(ctx context.Context, userID, eventID int64) (*entity.Rating, error)

	GetEventRating(ctx context.Context, eventID int64) (likes, dislikes int64, err error)
	GetEventRatings(ctx context.Context, eventIDs []int64) (map[int64]*entity.EventRating, error)
	GetUserRating(ctx context.Context, userID int64) (*entity.UserRating, error)
	GetTopUsers(ctx context.Context, limit int) ([]*entity.UserRating, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetAll(ctx context.Context, ids []int64, from, size int) ([]*entity.User, error)
	Delete(ctx context.Context, id int64) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	GetAll(ctx context.Context, from, size int) ([]*entity.Category, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
}

type CompilationRepository interface {
	Create(ctx context.Context, compilation *entity.Compilation, eventIDs []int64) error
	Update(ctx context.Context, compilation *entity.Compilation, eventIDs []int64) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*entity.Compilation, error)
	GetAll(ctx context.Context, pinned *bool, from, size int) ([]*entity.Compilation, error)
	GetEventIDs(ctx context.Context, compilationID int64) ([]int64, error)
}

// HitRepository — append-only журнал просмотров публичных страниц
type HitRepository interface {
	Save(ctx context.Context, hit *entity.EndpointHit) error
	CountViews(ctx context.Context, app string, uris []string, start, end time.Time, unique bool) (map[string]int64, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}
