package models

import "time"

type PaymentType string

const (
	PaymentFull        PaymentType = "FULL_PAYMENT"
	PaymentInstallment PaymentType = "INSTALLMENT"
)

func (p PaymentType) Valid() bool {
	return p == PaymentFull || p == PaymentInstallment
}

// Order is created exactly once from a quote. PaymentPlanID is 0 for
// FULL_PAYMENT and must reference a PaymentPlan for INSTALLMENT.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Number        string      `gorm:"not null;unique" json:"number"`
	CustomerID    uint        `gorm:"not null;index" json:"customerId"`
	QuoteID       uint        `gorm:"not null;uniqueIndex" json:"quoteId"`
	DealerID      uint        `gorm:"not null;index" json:"dealerId"`
	PaymentType   PaymentType `gorm:"not null" json:"paymentType"`
	PaymentPlanID uint        `json:"paymentPlanId"`
	Notes         string      `json:"notes"`
	TotalAmount   float64     `json:"totalAmount"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type PaymentPlan struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"not null;unique" json:"name"`
	Months       int     `gorm:"not null" json:"months"`
	InterestRate float64 `json:"interestRate"` // yearly, e.g. 0.06 for 6%
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
