// Package client is the Go client for the dealer back-office API. Besides
// the plain endpoint wrappers it carries the stateful pieces every consumer
// needs: the two-step vehicle selector, the quote draft form and the quote
// lifecycle guards. All preconditions that can be checked locally are checked
// locally, before any network call.
package client

import "time"

type QuoteStatus string

const (
	QuoteStatusCreate     QuoteStatus = "CREATE"
	QuoteStatusProcessing QuoteStatus = "PROCESSING"
	QuoteStatusRejected   QuoteStatus = "REJECTED"
	QuoteStatusOrdered    QuoteStatus = "ORDERED"
)

// Terminal reports whether no further transition is permitted from s.
func (s QuoteStatus) Terminal() bool {
	return s == QuoteStatusOrdered || s == QuoteStatusRejected
}

type PaymentType string

const (
	PaymentFull        PaymentType = "FULL_PAYMENT"
	PaymentInstallment PaymentType = "INSTALLMENT"
)

type VehicleType struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type VehicleTypeDetail struct {
	ID            uint    `json:"id"`
	VehicleTypeID uint    `json:"vehicleTypeId"`
	Version       string  `json:"version"`
	Color         string  `json:"color"`
	Configuration string  `json:"configuration"`
	Features      string  `json:"features"`
	Image         string  `json:"image"`
	UnitPrice     float64 `json:"unitPrice"`
}

// Selection is the single result a completed selector run emits.
type Selection struct {
	VehicleTypeID       uint   `json:"vehicleTypeId"`
	VehicleTypeName     string `json:"vehicleTypeName"`
	VehicleTypeDetailID uint   `json:"vehicleTypeDetailId"`
	Version             string `json:"version"`
	Color               string `json:"color"`
	Configuration       string `json:"configuration"`
	Features            string `json:"features"`
	Image               string `json:"image"`
}

// QuotationDetail is one quote line on the wire. Field names follow the fixed
// backend contract, two historical misspellings included.
type QuotationDetail struct {
	VehicleTypeDetailID           uint    `json:"vehicleTypeDetailId"`
	Quantity                      int     `json:"quantity"`
	RegistrationTax               float64 `json:"registrationTax"`
	LicensePlateFee               float64 `json:"licensePlateFee"`
	RegistrationFee               float64 `json:"registrartionFee"`
	CompulsoryInsurance           float64 `json:"compulsoryInsurance"`
	MaterialInsurance             float64 `json:"materialInsurance"`
	RoadMaintenanceFee            float64 `json:"roadMaintenanceMees"`
	VehicleRegistrationServiceFee float64 `json:"vehicleRegistrationServiceFee"`
}

type Quote struct {
	ID          uint              `json:"id"`
	CustomerID  uint              `json:"customerId"`
	Status      QuoteStatus       `json:"status"`
	Details     []QuotationDetail `json:"quotationDetails"`
	TotalAmount float64           `json:"totalAmount"`
	CreatedAt   time.Time         `json:"createdAt"`
}

type Customer struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type Order struct {
	ID            uint        `json:"id"`
	Number        string      `json:"number"`
	CustomerID    uint        `json:"customerId"`
	QuoteID       uint        `json:"quoteId"`
	PaymentType   PaymentType `json:"paymentType"`
	PaymentPlanID uint        `json:"paymentPlanId"`
	Notes         string      `json:"notes"`
	TotalAmount   float64     `json:"totalAmount"`
}

type PaymentPlan struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Months       int     `json:"months"`
	InterestRate float64 `json:"interestRate"`
}
