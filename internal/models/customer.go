package models

import "time"

// Customer entity
type Customer struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null;index" json:"name"`
	Phone     string `gorm:"index" json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	DealerID  uint   `gorm:"index" json:"dealerId"` // dealer that registered the customer
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Dealer is the owning organisation for dealer-side users, customers and
// quotes.
type Dealer struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null;unique" json:"name"`
	Region    string `json:"region"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
