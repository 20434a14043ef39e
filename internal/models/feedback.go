package models

import "time"

type FeedbackStatus string

const (
	FeedbackOpen      FeedbackStatus = "OPEN"
	FeedbackResponded FeedbackStatus = "RESPONDED"
)

// Feedback left by a customer, optionally answered by staff.
type Feedback struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CustomerID uint           `gorm:"not null;index" json:"customerId"`
	Customer   Customer       `gorm:"foreignKey:CustomerID" json:"-"`
	Content    string         `gorm:"not null" json:"content"`
	Response   string         `json:"response"`
	Status     FeedbackStatus `gorm:"not null" json:"status"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// Promotion is a manufacturer-wide discount campaign.
type Promotion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Percent   float64   `gorm:"not null" json:"percent"` // 0..100
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Active    bool      `json:"active"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
