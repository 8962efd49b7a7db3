package entity

import (
	"time"
)

type RatingType string

const (
	RatingTypeLike    RatingType = "LIKE"
	RatingTypeDislike RatingType = "DISLIKE"
)

func (t RatingType) Valid() bool {
	return t == RatingTypeLike || t == RatingTypeDislike
}

// Rating — оценка события пользователем, не более одной на пару (user, event)
type Rating struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	EventID   int64      `json:"event_id" db:"event_id"`
	Type      RatingType `json:"type" db:"type"`
	CreatedOn time.Time  `json:"created_on" db:"created_on"`
}

// EventRating — агрегат оценок одного события
type EventRating struct {
	EventID  int64   `json:"event_id"`
	Likes    int64   `json:"likes"`
	Dislikes int64   `json:"dislikes"`
	Rating   float64 `json:"rating"`
}

// UserRating — агрегат оценок всех событий, организованных пользователем
type UserRating struct {
	UserID      int64   `json:"user_id"`
	UserName    string  `json:"user_name"`
	Likes       int64   `json:"likes"`
	Dislikes    int64   `json:"dislikes"`
	Rating      float64 `json:"rating"`
	EventsCount int64   `json:"events_count"`
}

// RatingScore вычисляет рейтинг по формуле (likes-dislikes)/(likes+dislikes)*100.
// Единственная реализация формулы: используется и для событий, и для пользователей.
func RatingScore(likes, dislikes int64) float64 {
	total := likes + dislikes
	if total == 0 {
		return 0
	}
	return float64(likes-dislikes) / float64(total) * 100
}

func NewEventRating(eventID, likes, dislikes int64) *EventRating {
	return &EventRating{
		EventID:  eventID,
		Likes:    likes,
		Dislikes: dislikes,
		Rating:   RatingScore(likes, dislikes),
	}
}

func NewUserRating(userID int64, userName string, likes, dislikes, eventsCount int64) *UserRating {
	return &UserRating{
		UserID:      userID,
		UserName:    userName,
		Likes:       likes,
		Dislikes:    dislikes,
		Rating:      RatingScore(likes, dislikes),
		EventsCount: eventsCount,
	}
}
