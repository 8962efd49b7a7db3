package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kutanig/explore-with-me/internal/entity"
)

type testEnv struct {
	users      *fakeUserRepo
	categories *fakeCategoryRepo
	events     *fakeEventRepo
	requests   *fakeRequestRepo
	ratings    *fakeRatingRepo
	notifier   *recordingNotifier
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	events := newFakeEventRepo()
	return &testEnv{
		users:      users,
		categories: newFakeCategoryRepo(),
		events:     events,
		requests:   newFakeRequestRepo(events),
		ratings:    newFakeRatingRepo(events, users),
		notifier:   &recordingNotifier{},
	}
}

func (e *testEnv) eventService(views ViewCounter, scores RatingReader) EventService {
	return NewEventService(e.events, e.categories, e.users, e.requests, views, scores, e.notifier)
}

func (e *testEnv) seedUser(t *testing.T, name string) *entity.User {
	t.Helper()
	user := &entity.User{Email: name + "@example.com", Name: name}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) seedCategory(t *testing.T, name string) *entity.Category {
	t.Helper()
	category := &entity.Category{Name: name}
	require.NoError(t, e.categories.Create(context.Background(), category))
	return category
}

func (e *testEnv) seedEvent(t *testing.T, initiatorID, categoryID int64, state entity.EventState, limit int, moderation bool) *entity.Event {
	t.Helper()
	event := &entity.Event{
		Title:             "Городской марафон",
		Annotation:        "Ежегодный забег по набережной для всех желающих",
		Description:       "Дистанции на любой уровень подготовки, старт от центральной площади",
		CategoryID:        categoryID,
		InitiatorID:       initiatorID,
		Paid:              false,
		ParticipantLimit:  limit,
		RequestModeration: moderation,
		EventDate:         time.Now().Add(48 * time.Hour),
		CreatedOn:         time.Now(),
		State:             state,
	}
	if state == entity.EventStatePublished {
		now := time.Now()
		event.PublishedOn = &now
	}
	require.NoError(t, e.events.Create(context.Background(), event))
	return event
}

func newEventRequest(categoryID int64) *NewEventRequest {
	return &NewEventRequest{
		Title:       "Выставка современной живописи",
		Annotation:  "Работы молодых художников в залах старой фабрики",
		Description: "Экспозиция меняется каждый месяц, вход по регистрации",
		Category:    categoryID,
		Location:    entity.Location{Lat: 55.75, Lon: 37.62},
		EventDate:   entity.DateTime{Time: time.Now().Add(72 * time.Hour)},
	}
}

// TestCreateEvent проверяет создание события и значения по умолчанию
func TestCreateEvent(t *testing.T) {
	env := newTestEnv()
	svc := env.eventService(nil, nil)
	user := env.seedUser(t, "ivan")
	category := env.seedCategory(t, "concerts")

	t.Run("defaults are applied", func(t *testing.T) {
		event, err := svc.CreateEvent(context.Background(), user.ID, newEventRequest(category.ID))
		require.NoError(t, err)

		assert.Equal(t, entity.EventStatePending, event.State)
		assert.False(t, event.Paid)
		assert.Equal(t, 0, event.ParticipantLimit)
		assert.True(t, event.RequestModeration)
		assert.Nil(t, event.PublishedOn)
		assert.Zero(t, event.ConfirmedRequests)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := svc.CreateEvent(context.Background(), user.ID, newEventRequest(999))
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.CreateEvent(context.Background(), 999, newEventRequest(category.ID))
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("event date too soon", func(t *testing.T) {
		req := newEventRequest(category.ID)
		req.EventDate = entity.DateTime{Time: time.Now().Add(time.Hour)}
		_, err := svc.CreateEvent(context.Background(), user.ID, req)
		assert.ErrorIs(t, err, entity.ErrEventDateTooSoon)
	})

	t.Run("moderation can be disabled", func(t *testing.T) {
		req := newEventRequest(category.ID)
		off := false
		req.RequestModeration = &off
		event, err := svc.CreateEvent(context.Background(), user.ID, req)
		require.NoError(t, err)
		assert.False(t, event.RequestModeration)
	})
}

// TestAdminStateActions проверяет публикацию и отклонение администратором
func TestAdminStateActions(t *testing.T) {
	t.Run("publish sets publishedOn once", func(t *testing.T) {
		env := newTestEnv()
		svc := env.eventService(nil, nil)
		user := env.seedUser(t, "ivan")
		category := env.seedCategory(t, "sport")
		event := env.seedEvent(t, user.ID, category.ID, entity.EventStatePending, 0, true)

		published, err := svc.UpdateAdminEvent(context.Background(), event.ID,
			&UpdateEventAdminRequest{StateAction: entity.StateActionPublishEvent})
		require.NoError(t, err)

		assert.Equal(t, entity.EventStatePublished, published.State)
		require.NotNil(t, published.PublishedOn)
		assert.Contains(t, env.notifier.published, event.ID)
	})

	t.Run("double publish is a conflict", func(t *testing.T) {
		env := newTestEnv()
		svc := env.eventService(nil, nil)
		user := env.seedUser(t, "ivan")
		category := env.seedCategory(t, "sport")
		event := env.seedEvent(t, user.ID, category.ID, entity.EventStatePublished, 0, true)

		_, err := svc.UpdateAdminEvent(context.Background(), event.ID,
			&UpdateEventAdminRequest{StateAction: entity.StateActionPublishEvent})
		assert.ErrorIs(t, err, entity.ErrEventNotPending)
	})

	t.Run("publish canceled event is a conflict", func(t *testing.T) {
		env := newTestEnv()
		svc := env.eventService(nil, nil)
		user := env.seedUser(t, "ivan")
		category := env.seedCategory(t, "sport")
		event := env.seedEvent(t, user.ID, category.ID, entity.EventStateCanceled, 0, true)

		_, err := svc.UpdateAdminEvent(context.Background(), event.ID,
			&UpdateEventAdminRequest{StateAction: entity.StateActionPublishEvent})
		assert.ErrorIs(t, err, entity.ErrEventNotPending)
	})

	t.Run("reject published event is a conflict", func(t *testing.T) {
		env := newTestEnv()
		svc := env.eventService(nil, nil)
		user := env.seedUser(t, "ivan")
		category := env.seedCategory(t, "sport")
		event := env.seedEvent(t, user.ID, category.ID, entity.EventStatePublished, 0, true)

		_, err := svc.UpdateAdminEvent(context.Background(), event.ID,
			&UpdateEventAdminRequest{StateAction: entity.StateActionRejectEvent})
		assert.ErrorIs(t, err, entity.ErrEventIsPublished)
	})

	t.Run("reject pending event cancels it", func(t *testing.T) {
		env := newTestEnv()
		svc := env.eventService(nil, nil)
		user := env.seedUser(t, "ivan")
		category := env.seedCategory(t, "sport")
		event := env.seedEvent(t, user.ID, category.ID, entity.EventStatePending, 0, true)

		canceled, err := svc.UpdateAdminEvent(context.Background(), event.ID,
			&UpdateEventAdminRequest{StateAction: entity.StateActionRejectEvent})
		require.NoError(t, err)
		assert.Equal(t, entity.EventStateCanceled, canceled.State)
	})

	t.Run("unknown state action", func(t *testing.T) {
		env := newTestEnv()
		svc := env.eventService(nil, nil)
		user := env.seedUser(t, "ivan")
		category := env.seedCategory(t, "sport")
		event := env.seedEvent(t, user.ID, category.ID, entity.EventStatePending, 0, true)

		_, err := svc.UpdateAdminEvent(context.Background(), event.ID,
			&UpdateEventAdminRequest{StateAction: "FREEZE_EVENT"})
		assert.ErrorIs(t, err, entity.ErrInvalidStateAction)
	})
}

// TestUpdateUserEvent проверяет правки инициатора
func TestUpdateUserEvent(t *testing.T) {
	env := newTestEnv()
	svc := env.eventService(nil, nil)
	user := env.seedUser(t, "ivan")
	stranger := env.seedUser(t, "petr")
	category := env.seedCategory(t, "theatre")

	t.Run("published event is not editable", func(t *testing.T) {
		event := env.seedEvent(t, user.ID, category.ID, entity.EventStatePublished, 0, true)
		_, err := svc.UpdateUserEvent(context.Background(), user.ID, event.ID, &UpdateEventUserRequest{})
		assert.ErrorIs(t, err, entity.ErrEventNotEditable)
	})

	t.Run("foreign event is not found", func(t *testing.T) {
		event := env.seedEvent(t, user.ID, category.ID, entity.EventStatePending, 0, true)
		_, err := svc.UpdateUserEvent(context.Background(), stranger.ID, event.ID, &UpdateEventUserRequest{})
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("cancel review", func(t *testing.T) {
		event := env.seedEvent(t, user.ID, category.ID, entity.EventStatePending, 0, true)
		updated, err := svc.UpdateUserEvent(context.Background(), user.ID, event.ID,
			&UpdateEventUserRequest{StateAction: entity.StateActionCancelReview})
		require.NoError(t, err)
		assert.Equal(t, entity.EventStateCanceled, updated.State)
	})

	t.Run("send canceled event back to review with patch", func(t *testing.T) {
		event := env.seedEvent(t, user.ID, category.ID, entity.EventStateCanceled, 0, true)
		newTitle := "Обновленный городской марафон"
		limit := 50
		updated, err := svc.UpdateUserEvent(context.Background(), user.ID, event.ID,
			&UpdateEventUserRequest{
				Title:            &newTitle,
				ParticipantLimit: &limit,
				StateAction:      entity.StateActionSendToReview,
			})
		require.NoError(t, err)
		assert.Equal(t, entity.EventStatePending, updated.State)
		assert.Equal(t, newTitle, updated.Title)
		assert.Equal(t, 50, updated.ParticipantLimit)
	})

	t.Run("admin action is rejected for the initiator", func(t *testing.T) {
		event := env.seedEvent(t, user.ID, category.ID, entity.EventStatePending, 0, true)
		_, err := svc.UpdateUserEvent(context.Background(), user.ID, event.ID,
			&UpdateEventUserRequest{StateAction: entity.StateActionPublishEvent})
		assert.ErrorIs(t, err, entity.ErrInvalidStateAction)
	})
}

// TestSearchPublishedEvents проверяет публичный поиск
func TestSearchPublishedEvents(t *testing.T) {
	env := newTestEnv()
	user := env.seedUser(t, "ivan")
	category := env.seedCategory(t, "cinema")

	published := env.seedEvent(t, user.ID, category.ID, entity.EventStatePublished, 0, true)
	env.seedEvent(t, user.ID, category.ID, entity.EventStatePending, 0, true)
	full := env.seedEvent(t, user.ID, category.ID, entity.EventStatePublished, 1, false)

	// Заполняем лимитированное событие
	requester := env.seedUser(t, "petr")
	_, err := env.requests.Create(context.Background(), full.ID, requester.ID)
	require.NoError(t, err)

	svc := env.eventService(
		&stubViews{views: map[int64]int64{published.ID: 7, full.ID: 3}},
		&stubScores{},
	)

	t.Run("only published are returned", func(t *testing.T) {
		events, err := svc.SearchPublishedEvents(context.Background(), &PublicSearchParams{From: 0, Size: 10})
		require.NoError(t, err)
		require.Len(t, events, 2)
		for _, event := range events {
			assert.Equal(t, entity.EventStatePublished, event.State)
		}
	})

	t.Run("only available filters out full events", func(t *testing.T) {
		events, err := svc.SearchPublishedEvents(context.Background(),
			&PublicSearchParams{OnlyAvailable: true, From: 0, Size: 10})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, published.ID, events[0].ID)
	})

	t.Run("sort by views", func(t *testing.T) {
		events, err := svc.SearchPublishedEvents(context.Background(),
			&PublicSearchParams{Sort: SortViews, From: 0, Size: 10})
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, int64(7), events[0].Views)
		assert.Equal(t, int64(3), events[1].Views)
	})

	t.Run("invalid sort", func(t *testing.T) {
		_, err := svc.SearchPublishedEvents(context.Background(),
			&PublicSearchParams{Sort: "TITLE", From: 0, Size: 10})
		assert.ErrorIs(t, err, entity.ErrInvalidSort)
	})

	t.Run("range start after range end", func(t *testing.T) {
		start := time.Now().Add(time.Hour)
		end := time.Now()
		_, err := svc.SearchPublishedEvents(context.Background(),
			&PublicSearchParams{RangeStart: &start, RangeEnd: &end, From: 0, Size: 10})
		assert.ErrorIs(t, err, entity.ErrInvalidDateRange)
	})

	t.Run("invalid pagination", func(t *testing.T) {
		_, err := svc.SearchPublishedEvents(context.Background(), &PublicSearchParams{From: -1, Size: 10})
		assert.ErrorIs(t, err, entity.ErrInvalidPagination)

		_, err = svc.SearchPublishedEvents(context.Background(), &PublicSearchParams{From: 0, Size: 0})
		assert.ErrorIs(t, err, entity.ErrInvalidPagination)
	})
}

// TestDecorationDegradesToZero: отказ коллабораторов не ломает чтение
func TestDecorationDegradesToZero(t *testing.T) {
	env := newTestEnv()
	user := env.seedUser(t, "ivan")
	category := env.seedCategory(t, "food")
	event := env.seedEvent(t, user.ID, category.ID, entity.EventStatePublished, 0, true)

	svc := env.eventService(
		&stubViews{err: errors.New("stats unavailable")},
		&stubScores{err: errors.New("ratings unavailable")},
	)

	details, err := svc.GetPublishedEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Zero(t, details.Views)
	assert.Zero(t, details.Rating)
}

// TestGetPublishedEvent: чужие состояния не видны публично
func TestGetPublishedEvent(t *testing.T) {
	env := newTestEnv()
	svc := env.eventService(nil, nil)
	user := env.seedUser(t, "ivan")
	category := env.seedCategory(t, "food")
	pending := env.seedEvent(t, user.ID, category.ID, entity.EventStatePending, 0, true)

	_, err := svc.GetPublishedEvent(context.Background(), pending.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

// TestSearchAdminEvents проверяет административный поиск
func TestSearchAdminEvents(t *testing.T) {
	env := newTestEnv()
	svc := env.eventService(nil, nil)
	user := env.seedUser(t, "ivan")
	category := env.seedCategory(t, "expo")
	env.seedEvent(t, user.ID, category.ID, entity.EventStatePending, 0, true)
	env.seedEvent(t, user.ID, category.ID, entity.EventStatePublished, 0, true)

	t.Run("filter by state", func(t *testing.T) {
		events, err := svc.SearchAdminEvents(context.Background(), &AdminSearchParams{
			States: []string{"PENDING"},
			From:   0,
			Size:   10,
		})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, entity.EventStatePending, events[0].State)
	})

	t.Run("unknown state value", func(t *testing.T) {
		_, err := svc.SearchAdminEvents(context.Background(), &AdminSearchParams{
			States: []string{"FROZEN"},
			From:   0,
			Size:   10,
		})
		assert.ErrorIs(t, err, entity.ErrInvalidEventState)
	})
}
