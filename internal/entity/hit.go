package entity

import "time"

// EndpointHit — запись о просмотре публичной страницы, append-only журнал
type EndpointHit struct {
	ID        int64     `json:"id" db:"id"`
	App       string    `json:"app" db:"app"`
	URI       string    `json:"uri" db:"uri"`
	IP        string    `json:"ip" db:"ip"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// ViewStats — число просмотров одного URI за период
type ViewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}
