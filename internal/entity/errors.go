package entity

import (
	"errors"
	"fmt"
)

// Классы клиентских ошибок. Конкретные ошибки оборачивают один из классов,
// транспорт превращает класс в HTTP-статус через errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")
)

var (
	// Not found
	ErrEventNotFound       = fmt.Errorf("event %w", ErrNotFound)
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrCategoryNotFound    = fmt.Errorf("category %w", ErrNotFound)
	ErrRequestNotFound     = fmt.Errorf("request %w", ErrNotFound)
	ErrRatingNotFound      = fmt.Errorf("rating %w", ErrNotFound)
	ErrCompilationNotFound = fmt.Errorf("compilation %w", ErrNotFound)

	// Event conflicts
	ErrEventNotEditable  = fmt.Errorf("%w: only pending or canceled events can be changed", ErrConflict)
	ErrEventNotPending   = fmt.Errorf("%w: cannot publish event that is not in PENDING state", ErrConflict)
	ErrEventIsPublished  = fmt.Errorf("%w: cannot reject published event", ErrConflict)
	ErrEventNotPublished = fmt.Errorf("%w: event is not published", ErrConflict)

	// Request conflicts
	ErrRequestExists        = fmt.Errorf("%w: request already exists", ErrConflict)
	ErrOwnEventRequest      = fmt.Errorf("%w: initiator can't request participation in own event", ErrConflict)
	ErrParticipantLimit     = fmt.Errorf("%w: participant limit reached", ErrConflict)
	ErrRequestNotPending    = fmt.Errorf("%w: request is not in PENDING status", ErrConflict)
	ErrForeignRequest       = fmt.Errorf("%w: request doesn't belong to this event", ErrConflict)
	ErrEventCanceledRequest = fmt.Errorf("%w: cannot change request status for canceled event", ErrConflict)

	// Rating conflicts
	ErrOwnEventRating         = fmt.Errorf("%w: cannot rate your own event", ErrConflict)
	ErrUnpublishedEventRating = fmt.Errorf("%w: cannot rate an unpublished event", ErrConflict)

	// Other conflicts
	ErrCategoryInUse   = fmt.Errorf("%w: category has linked events", ErrConflict)
	ErrCategoryExists  = fmt.Errorf("%w: category name already exists", ErrConflict)
	ErrUserEmailExists = fmt.Errorf("%w: email already exists", ErrConflict)

	// Bad requests
	ErrInvalidStateAction = fmt.Errorf("%w: invalid state action", ErrBadRequest)
	ErrEventDateTooSoon   = fmt.Errorf("%w: event date must be at least 2 hours in the future", ErrBadRequest)
	ErrInvalidDateRange   = fmt.Errorf("%w: range start date must be before range end date", ErrBadRequest)
	ErrInvalidPagination  = fmt.Errorf("%w: invalid pagination parameters", ErrBadRequest)
	ErrInvalidEventState  = fmt.Errorf("%w: invalid event state", ErrBadRequest)
	ErrInvalidSort        = fmt.Errorf("%w: sort must be EVENT_DATE or VIEWS", ErrBadRequest)
	ErrInvalidStatus      = fmt.Errorf("%w: status must be CONFIRMED or REJECTED", ErrBadRequest)
	ErrInvalidRatingType  = fmt.Errorf("%w: rating type must be LIKE or DISLIKE", ErrBadRequest)
)
