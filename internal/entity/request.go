package entity

import (
	"time"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusConfirmed RequestStatus = "CONFIRMED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCanceled  RequestStatus = "CANCELED"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusConfirmed, RequestStatusRejected, RequestStatusCanceled:
		return true
	}
	return false
}

// Active — заявка занимает пару (событие, участник): повторная подача запрещена
func (s RequestStatus) Active() bool {
	return s == RequestStatusPending || s == RequestStatusConfirmed
}

// ParticipationRequest — заявка пользователя на участие в событии
type ParticipationRequest struct {
	ID          int64         `json:"id" db:"id"`
	EventID     int64         `json:"event" db:"event_id"`
	RequesterID int64         `json:"requester" db:"requester_id"`
	Status      RequestStatus `json:"status" db:"status"`
	Created     time.Time     `json:"created" db:"created"`
}

// StatusUpdateResult — результат группового изменения статусов заявок,
// списки в порядке входных идентификаторов
type StatusUpdateResult struct {
	ConfirmedRequests []*ParticipationRequest `json:"confirmed_requests"`
	RejectedRequests  []*ParticipationRequest `json:"rejected_requests"`
}
