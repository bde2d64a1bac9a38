package domain

import "time"

// Service is a bookable offering with price and duration.
type Service struct {
	ID                int64
	Name              string
	Description       string
	Price             float64
	EstimatedDuration int
	IsAvailable       bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
