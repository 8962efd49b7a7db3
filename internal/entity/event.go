package entity

import (
	"time"
)

type EventState string

const (
	EventStatePending   EventState = "PENDING"
	EventStatePublished EventState = "PUBLISHED"
	EventStateCanceled  EventState = "CANCELED"
)

// StateAction — действие над состоянием события (инициатора или администратора)
type StateAction string

const (
	// Действия инициатора
	StateActionSendToReview StateAction = "SEND_TO_REVIEW"
	StateActionCancelReview StateAction = "CANCEL_REVIEW"

	// Действия администратора
	StateActionPublishEvent StateAction = "PUBLISH_EVENT"
	StateActionRejectEvent  StateAction = "REJECT_EVENT"
)

func (s EventState) Valid() bool {
	switch s {
	case EventStatePending, EventStatePublished, EventStateCanceled:
		return true
	}
	return false
}

type Location struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

type Event struct {
	ID                int64      `json:"id" db:"id"`
	Title             string     `json:"title" db:"title"`
	Annotation        string     `json:"annotation" db:"annotation"`
	Description       string     `json:"description" db:"description"`
	CategoryID        int64      `json:"category" db:"category_id"`
	InitiatorID       int64      `json:"initiator" db:"initiator_id"`
	Location          Location   `json:"location"`
	Paid              bool       `json:"paid" db:"paid"`
	ParticipantLimit  int        `json:"participant_limit" db:"participant_limit"`
	RequestModeration bool       `json:"request_moderation" db:"request_moderation"`
	EventDate         time.Time  `json:"event_date" db:"event_date"`
	CreatedOn         time.Time  `json:"created_on" db:"created_on"`
	PublishedOn       *time.Time `json:"published_on,omitempty" db:"published_on"`
	State             EventState `json:"state" db:"state"`
}

// EventWithDetails дополняет событие производными полями для чтения:
// подтвержденные заявки, просмотры и рейтинг
type EventWithDetails struct {
	Event
	ConfirmedRequests int64   `json:"confirmed_requests"`
	Views             int64   `json:"views"`
	Rating            float64 `json:"rating"`
}

// Editable reports whether the initiator may still change event fields.
// Published events are frozen for the initiator.
func (e *Event) Editable() bool {
	return e.State == EventStatePending || e.State == EventStateCanceled
}

// Available reports whether the event can still admit confirmed requests.
func (e *EventWithDetails) Available() bool {
	return e.ParticipantLimit == 0 || e.ConfirmedRequests < int64(e.ParticipantLimit)
}
