package models

import "time"

// Quote status lifecycle. Transitions are monotonic along
// CREATE -> PROCESSING -> {ORDERED | REJECTED}; ORDERED and REJECTED are
// terminal. The allowed-transition table lives in services.
type QuoteStatus string

const (
	QuoteStatusCreate     QuoteStatus = "CREATE"
	QuoteStatusProcessing QuoteStatus = "PROCESSING"
	QuoteStatusRejected   QuoteStatus = "REJECTED"
	QuoteStatusOrdered    QuoteStatus = "ORDERED"
)

// Valid reports whether s is one of the four known statuses.
func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusCreate, QuoteStatusProcessing, QuoteStatusRejected, QuoteStatusOrdered:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s QuoteStatus) Terminal() bool {
	return s == QuoteStatusOrdered || s == QuoteStatusRejected
}

type Quote struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	CustomerID  uint              `gorm:"not null;index" json:"customerId"`
	Customer    Customer          `gorm:"foreignKey:CustomerID" json:"-"`
	DealerID    uint              `gorm:"not null;index" json:"dealerId"`
	Status      QuoteStatus       `gorm:"not null" json:"status"`
	Details     []QuotationDetail `gorm:"foreignKey:QuoteID" json:"quotationDetails"`
	TotalAmount float64           `json:"totalAmount"` // server-computed from details
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// QuotationDetail is one vehicle line inside a quote: a variant, a quantity
// and itemized fees. JSON names follow the fixed wire contract, two historical
// misspellings included (registrartionFee, roadMaintenanceMees).
type QuotationDetail struct {
	ID                            uint              `gorm:"primaryKey" json:"id"`
	QuoteID                       uint              `gorm:"not null;index" json:"quoteId"`
	VehicleTypeDetailID           uint              `gorm:"not null" json:"vehicleTypeDetailId"`
	VehicleTypeDetail             VehicleTypeDetail `gorm:"foreignKey:VehicleTypeDetailID" json:"-"`
	Quantity                      int               `gorm:"not null" json:"quantity"`
	RegistrationTax               float64           `json:"registrationTax"`
	LicensePlateFee               float64           `json:"licensePlateFee"`
	RegistrationFee               float64           `json:"registrartionFee"`
	CompulsoryInsurance           float64           `json:"compulsoryInsurance"`
	MaterialInsurance             float64           `json:"materialInsurance"`
	RoadMaintenanceFee            float64           `json:"roadMaintenanceMees"`
	VehicleRegistrationServiceFee float64           `json:"vehicleRegistrationServiceFee"`
}

// FeeTotal sums the per-line fee fields (not multiplied by quantity).
func (d QuotationDetail) FeeTotal() float64 {
	return d.RegistrationTax + d.LicensePlateFee + d.RegistrationFee +
		d.CompulsoryInsurance + d.MaterialInsurance + d.RoadMaintenanceFee +
		d.VehicleRegistrationServiceFee
}
