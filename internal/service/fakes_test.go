package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	repository "github.com/kutanig/explore-with-me/internal/database/postgres"
	"github.com/kutanig/explore-with-me/internal/entity"
)

// In-memory реализации репозиториев для сервисных тестов. Заявочный
// репозиторий повторяет договор транзакции: проверка допуска и запись
// выполняются под одним мьютексом, как под блокировкой строки события.

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	user.ID = f.seq
	user.CreatedAt = time.Now()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetAll(_ context.Context, ids []int64, from, size int) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var users []*entity.User
	for _, user := range f.users {
		if len(ids) > 0 && !wanted[user.ID] {
			continue
		}
		clone := *user
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return paginate(users, from, size), nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return entity.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	seq        int64
	categories map[int64]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[int64]*entity.Category)}
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	category.ID = f.seq
	clone := *category
	f.categories[category.ID] = &clone
	return nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[category.ID]; !ok {
		return entity.ErrCategoryNotFound
	}
	clone := *category
	f.categories[category.ID] = &clone
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[id]; !ok {
		return entity.ErrCategoryNotFound
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	category, ok := f.categories[id]
	if !ok {
		return nil, entity.ErrCategoryNotFound
	}
	clone := *category
	return &clone, nil
}

func (f *fakeCategoryRepo) GetAll(_ context.Context, from, size int) ([]*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var categories []*entity.Category
	for _, category := range f.categories {
		clone := *category
		categories = append(categories, &clone)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return paginate(categories, from, size), nil
}

func (f *fakeCategoryRepo) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, category := range f.categories {
		if category.Name == name && category.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	seq    int64
	events map[int64]*entity.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[int64]*entity.Event)}
}

func (f *fakeEventRepo) Create(_ context.Context, event *entity.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	event.ID = f.seq
	clone := *event
	f.events[event.ID] = &clone
	return nil
}

func (f *fakeEventRepo) get(id int64) (*entity.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	clone := *event
	return &clone, nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id int64) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(id)
}

func (f *fakeEventRepo) GetByIDAndInitiator(_ context.Context, id, initiatorID int64) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, err := f.get(id)
	if err != nil || event.InitiatorID != initiatorID {
		return nil, entity.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) GetByIDAndState(_ context.Context, id int64, state entity.EventState) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, err := f.get(id)
	if err != nil || event.State != state {
		return nil, entity.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) GetByInitiator(_ context.Context, initiatorID int64, from, size int) ([]*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var events []*entity.Event
	for _, event := range f.events {
		if event.InitiatorID == initiatorID {
			clone := *event
			events = append(events, &clone)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return paginate(events, from, size), nil
}

func (f *fakeEventRepo) GetByIDs(_ context.Context, ids []int64) ([]*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var events []*entity.Event
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if event, ok := f.events[id]; ok {
			clone := *event
			events = append(events, &clone)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *entity.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[event.ID]; !ok {
		return entity.ErrEventNotFound
	}
	clone := *event
	f.events[event.ID] = &clone
	return nil
}

func (f *fakeEventRepo) SearchPublished(_ context.Context, filter *repository.PublishedEventsFilter) ([]*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var events []*entity.Event
	for _, event := range f.events {
		if event.State != entity.EventStatePublished {
			continue
		}
		if filter.Text != "" {
			text := strings.ToLower(filter.Text)
			if !strings.Contains(strings.ToLower(event.Annotation), text) &&
				!strings.Contains(strings.ToLower(event.Description), text) {
				continue
			}
		}
		if len(filter.Categories) > 0 && !containsID(filter.Categories, event.CategoryID) {
			continue
		}
		if filter.Paid != nil && event.Paid != *filter.Paid {
			continue
		}
		if event.EventDate.Before(filter.RangeStart) {
			continue
		}
		if filter.RangeEnd != nil && event.EventDate.After(*filter.RangeEnd) {
			continue
		}
		clone := *event
		events = append(events, &clone)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].EventDate.Before(events[j].EventDate) })
	return paginate(events, filter.From, filter.Size), nil
}

func (f *fakeEventRepo) SearchAdmin(_ context.Context, filter *repository.AdminEventsFilter) ([]*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var events []*entity.Event
	for _, event := range f.events {
		if len(filter.Users) > 0 && !containsID(filter.Users, event.InitiatorID) {
			continue
		}
		if len(filter.States) > 0 && !containsState(filter.States, event.State) {
			continue
		}
		if len(filter.Categories) > 0 && !containsID(filter.Categories, event.CategoryID) {
			continue
		}
		if filter.RangeStart != nil && event.EventDate.Before(*filter.RangeStart) {
			continue
		}
		if filter.RangeEnd != nil && event.EventDate.After(*filter.RangeEnd) {
			continue
		}
		clone := *event
		events = append(events, &clone)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return paginate(events, filter.From, filter.Size), nil
}

func (f *fakeEventRepo) ExistsByCategory(_ context.Context, categoryID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, event := range f.events {
		if event.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	seq      int64
	requests map[int64]*entity.ParticipationRequest
	events   *fakeEventRepo
}

func newFakeRequestRepo(events *fakeEventRepo) *fakeRequestRepo {
	return &fakeRequestRepo{
		requests: make(map[int64]*entity.ParticipationRequest),
		events:   events,
	}
}

func (f *fakeRequestRepo) confirmedCount(eventID int64) int64 {
	var confirmed int64
	for _, request := range f.requests {
		if request.EventID == eventID && request.Status == entity.RequestStatusConfirmed {
			confirmed++
		}
	}
	return confirmed
}

func (f *fakeRequestRepo) Create(ctx context.Context, eventID, requesterID int64) (*entity.ParticipationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	event, err := f.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.InitiatorID == requesterID {
		return nil, entity.ErrOwnEventRequest
	}
	if event.State != entity.EventStatePublished {
		return nil, entity.ErrEventNotPublished
	}
	for _, request := range f.requests {
		if request.EventID == eventID && request.RequesterID == requesterID &&
			request.Status != entity.RequestStatusCanceled {
			return nil, entity.ErrRequestExists
		}
	}
	if event.ParticipantLimit > 0 && f.confirmedCount(eventID) >= int64(event.ParticipantLimit) {
		return nil, entity.ErrParticipantLimit
	}

	status := entity.RequestStatusPending
	if !event.RequestModeration || event.ParticipantLimit == 0 {
		status = entity.RequestStatusConfirmed
	}

	f.seq++
	request := &entity.ParticipationRequest{
		ID:          f.seq,
		EventID:     eventID,
		RequesterID: requesterID,
		Status:      status,
		Created:     time.Now(),
	}
	clone := *request
	f.requests[request.ID] = &clone
	return request, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int64) (*entity.ParticipationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok {
		return nil, entity.ErrRequestNotFound
	}
	clone := *request
	return &clone, nil
}

func (f *fakeRequestRepo) GetByIDAndRequester(_ context.Context, id, requesterID int64) (*entity.ParticipationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok || request.RequesterID != requesterID {
		return nil, entity.ErrRequestNotFound
	}
	clone := *request
	return &clone, nil
}

func (f *fakeRequestRepo) GetByRequester(_ context.Context, requesterID int64) ([]*entity.ParticipationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var requests []*entity.ParticipationRequest
	for _, request := range f.requests {
		if request.RequesterID == requesterID {
			clone := *request
			requests = append(requests, &clone)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID < requests[j].ID })
	return requests, nil
}

func (f *fakeRequestRepo) GetByEvent(_ context.Context, eventID int64) ([]*entity.ParticipationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var requests []*entity.ParticipationRequest
	for _, request := range f.requests {
		if request.EventID == eventID {
			clone := *request
			requests = append(requests, &clone)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID < requests[j].ID })
	return requests, nil
}

func (f *fakeRequestRepo) CancelByRequester(_ context.Context, id, requesterID int64) (*entity.ParticipationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok || request.RequesterID != requesterID {
		return nil, entity.ErrRequestNotFound
	}
	request.Status = entity.RequestStatusCanceled
	clone := *request
	return &clone, nil
}

func (f *fakeRequestRepo) BulkUpdateStatus(ctx context.Context, eventID int64, ids []int64, status entity.RequestStatus) ([]*entity.ParticipationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	event, err := f.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.State == entity.EventStateCanceled {
		return nil, entity.ErrEventCanceledRequest
	}

	batch := make([]*entity.ParticipationRequest, 0, len(ids))
	for _, id := range ids {
		request, ok := f.requests[id]
		if !ok {
			return nil, entity.ErrRequestNotFound
		}
		if request.EventID != eventID {
			return nil, entity.ErrForeignRequest
		}
		if request.Status != entity.RequestStatusPending {
			return nil, entity.ErrRequestNotPending
		}
		batch = append(batch, request)
	}

	if status == entity.RequestStatusConfirmed && event.ParticipantLimit > 0 {
		if f.confirmedCount(eventID)+int64(len(batch)) > int64(event.ParticipantLimit) {
			return nil, entity.ErrParticipantLimit
		}
	}

	result := make([]*entity.ParticipationRequest, 0, len(batch))
	for _, request := range batch {
		request.Status = status
		clone := *request
		result = append(result, &clone)
	}
	return result, nil
}

func (f *fakeRequestRepo) CountConfirmed(_ context.Context, eventID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmedCount(eventID), nil
}

func (f *fakeRequestRepo) CountConfirmedForEvents(_ context.Context, eventIDs []int64) (map[int64]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[int64]int64, len(eventIDs))
	for _, id := range eventIDs {
		counts[id] = f.confirmedCount(id)
	}
	return counts, nil
}

type ratingKey struct {
	userID  int64
	eventID int64
}

type fakeRatingRepo struct {
	mu      sync.Mutex
	seq     int64
	ratings map[ratingKey]*entity.Rating
	events  *fakeEventRepo
	users   *fakeUserRepo
}

func newFakeRatingRepo(events *fakeEventRepo, users *fakeUserRepo) *fakeRatingRepo {
	return &fakeRatingRepo{
		ratings: make(map[ratingKey]*entity.Rating),
		events:  events,
		users:   users,
	}
}

func (f *fakeRatingRepo) Upsert(_ context.Context, rating *entity.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := ratingKey{userID: rating.UserID, eventID: rating.EventID}
	if existing, ok := f.ratings[key]; ok {
		existing.Type = rating.Type
		rating.ID = existing.ID
		return nil
	}
	f.seq++
	rating.ID = f.seq
	clone := *rating
	f.ratings[key] = &clone
	return nil
}

func (f *fakeRatingRepo) DeleteByUserAndEvent(_ context.Context, userID, eventID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := ratingKey{userID: userID, eventID: eventID}
	if _, ok := f.ratings[key]; !ok {
		return entity.ErrRatingNotFound
	}
	delete(f.ratings, key)
	return nil
}

func (f *fakeRatingRepo) GetByUserAndEvent(_ context.Context, userID, eventID int64) (*entity.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rating, ok := f.ratings[ratingKey{userID: userID, eventID: eventID}]
	if !ok {
		return nil, entity.ErrRatingNotFound
	}
	clone := *rating
	return &clone, nil
}

func (f *fakeRatingRepo) countForEvent(eventID int64) (likes, dislikes int64) {
	for _, rating := range f.ratings {
		if rating.EventID != eventID {
			continue
		}
		if rating.Type == entity.RatingTypeLike {
			likes++
		} else {
			dislikes++
		}
	}
	return likes, dislikes
}

func (f *fakeRatingRepo) GetEventRating(_ context.Context, eventID int64) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	likes, dislikes := f.countForEvent(eventID)
	return likes, dislikes, nil
}

func (f *fakeRatingRepo) GetEventRatings(_ context.Context, eventIDs []int64) (map[int64]*entity.EventRating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ratings := make(map[int64]*entity.EventRating, len(eventIDs))
	for _, id := range eventIDs {
		likes, dislikes := f.countForEvent(id)
		if likes+dislikes > 0 {
			ratings[id] = entity.NewEventRating(id, likes, dislikes)
		}
	}
	return ratings, nil
}

func (f *fakeRatingRepo) userAggregate(ctx context.Context, userID int64) (likes, dislikes, eventsCount int64) {
	events, _ := f.events.GetByInitiator(ctx, userID, 0, int(^uint(0)>>1))
	eventsCount = int64(len(events))
	for _, event := range events {
		l, d := f.countForEvent(event.ID)
		likes += l
		dislikes += d
	}
	return likes, dislikes, eventsCount
}

func (f *fakeRatingRepo) GetUserRating(ctx context.Context, userID int64) (*entity.UserRating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, err := f.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	likes, dislikes, eventsCount := f.userAggregate(ctx, userID)
	return entity.NewUserRating(userID, user.Name, likes, dislikes, eventsCount), nil
}

func (f *fakeRatingRepo) GetTopUsers(ctx context.Context, limit int) ([]*entity.UserRating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[int64]bool)
	var top []*entity.UserRating
	for _, rating := range f.ratings {
		event, err := f.events.GetByID(ctx, rating.EventID)
		if err != nil || seen[event.InitiatorID] {
			continue
		}
		seen[event.InitiatorID] = true
		user, err := f.users.GetByID(ctx, event.InitiatorID)
		if err != nil {
			continue
		}
		likes, dislikes, eventsCount := f.userAggregate(ctx, event.InitiatorID)
		top = append(top, entity.NewUserRating(event.InitiatorID, user.Name, likes, dislikes, eventsCount))
	}
	sort.Slice(top, func(i, j int) bool { return top[i].Rating > top[j].Rating })
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

type fakeHitRepo struct {
	mu   sync.Mutex
	hits []*entity.EndpointHit
}

func newFakeHitRepo() *fakeHitRepo { return &fakeHitRepo{} }

func (f *fakeHitRepo) Save(_ context.Context, hit *entity.EndpointHit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	hit.ID = int64(len(f.hits) + 1)
	clone := *hit
	f.hits = append(f.hits, &clone)
	return nil
}

func (f *fakeHitRepo) CountViews(_ context.Context, app string, uris []string, start, end time.Time, unique bool) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[string]bool, len(uris))
	for _, uri := range uris {
		wanted[uri] = true
	}

	views := make(map[string]int64)
	seenIPs := make(map[string]map[string]bool)
	for _, hit := range f.hits {
		if hit.App != app || !wanted[hit.URI] ||
			hit.Timestamp.Before(start) || hit.Timestamp.After(end) {
			continue
		}
		if unique {
			if seenIPs[hit.URI] == nil {
				seenIPs[hit.URI] = make(map[string]bool)
			}
			if seenIPs[hit.URI][hit.IP] {
				continue
			}
			seenIPs[hit.URI][hit.IP] = true
		}
		views[hit.URI]++
	}
	return views, nil
}

func (f *fakeHitRepo) DeleteBefore(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.hits[:0]
	var deleted int64
	for _, hit := range f.hits {
		if hit.Timestamp.Before(before) {
			deleted++
			continue
		}
		kept = append(kept, hit)
	}
	f.hits = kept
	return deleted, nil
}

type fakeCompilationRepo struct {
	mu           sync.Mutex
	seq          int64
	compilations map[int64]*entity.Compilation
	eventIDs     map[int64][]int64
}

func newFakeCompilationRepo() *fakeCompilationRepo {
	return &fakeCompilationRepo{
		compilations: make(map[int64]*entity.Compilation),
		eventIDs:     make(map[int64][]int64),
	}
}

func (f *fakeCompilationRepo) Create(_ context.Context, compilation *entity.Compilation, eventIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	compilation.ID = f.seq
	clone := *compilation
	f.compilations[compilation.ID] = &clone
	f.eventIDs[compilation.ID] = append([]int64(nil), eventIDs...)
	return nil
}

func (f *fakeCompilationRepo) Update(_ context.Context, compilation *entity.Compilation, eventIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.compilations[compilation.ID]; !ok {
		return entity.ErrCompilationNotFound
	}
	clone := *compilation
	f.compilations[compilation.ID] = &clone
	if eventIDs != nil {
		f.eventIDs[compilation.ID] = append([]int64(nil), eventIDs...)
	}
	return nil
}

func (f *fakeCompilationRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.compilations[id]; !ok {
		return entity.ErrCompilationNotFound
	}
	delete(f.compilations, id)
	delete(f.eventIDs, id)
	return nil
}

func (f *fakeCompilationRepo) GetByID(_ context.Context, id int64) (*entity.Compilation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	compilation, ok := f.compilations[id]
	if !ok {
		return nil, entity.ErrCompilationNotFound
	}
	clone := *compilation
	return &clone, nil
}

func (f *fakeCompilationRepo) GetAll(_ context.Context, pinned *bool, from, size int) ([]*entity.Compilation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var compilations []*entity.Compilation
	for _, compilation := range f.compilations {
		if pinned != nil && compilation.Pinned != *pinned {
			continue
		}
		clone := *compilation
		compilations = append(compilations, &clone)
	}
	sort.Slice(compilations, func(i, j int) bool { return compilations[i].ID < compilations[j].ID })
	return paginate(compilations, from, size), nil
}

func (f *fakeCompilationRepo) GetEventIDs(_ context.Context, compilationID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.eventIDs[compilationID]...), nil
}

// stubViews и stubScores подменяют коллабораторов обогащения
type stubViews struct {
	views map[int64]int64
	err   error
}

func (s *stubViews) Views(_ context.Context, eventIDs []int64) (map[int64]int64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.views, nil
}

type stubScores struct {
	scores map[int64]float64
	err    error
}

func (s *stubScores) EventScores(_ context.Context, eventIDs []int64) (map[int64]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.scores, nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	published []int64
	requests  []int64
}

func (n *recordingNotifier) NotifyEventPublished(_ context.Context, event *entity.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.published = append(n.published, event.ID)
}

func (n *recordingNotifier) NotifyRequestStatusChanged(_ context.Context, request *entity.ParticipationRequest) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests = append(n.requests, request.ID)
}

func paginate[T any](items []T, from, size int) []T {
	if from >= len(items) {
		return nil
	}
	end := from + size
	if end > len(items) {
		end = len(items)
	}
	return items[from:end]
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func containsState(states []entity.EventState, state entity.EventState) bool {
	for _, v := range states {
		if v == state {
			return true
		}
	}
	return false
}
