package models

import "time"

// ImportRequest is a dealer's request to the manufacturer for vehicle stock.
// PENDING -> {APPROVED | REJECTED}, both terminal.
type ImportStatus string

const (
	ImportStatusPending  ImportStatus = "PENDING"
	ImportStatusApproved ImportStatus = "APPROVED"
	ImportStatusRejected ImportStatus = "REJECTED"
)

func (s ImportStatus) Valid() bool {
	switch s {
	case ImportStatusPending, ImportStatusApproved, ImportStatusRejected:
		return true
	}
	return false
}

func (s ImportStatus) Terminal() bool { return s != ImportStatusPending }

type ImportRequest struct {
	ID                  uint              `gorm:"primaryKey" json:"id"`
	DealerID            uint              `gorm:"not null;index" json:"dealerId"`
	VehicleTypeDetailID uint              `gorm:"not null" json:"vehicleTypeDetailId"`
	VehicleTypeDetail   VehicleTypeDetail `gorm:"foreignKey:VehicleTypeDetailID" json:"-"`
	Quantity            int               `gorm:"not null" json:"quantity"`
	Status              ImportStatus      `gorm:"not null" json:"status"`
	Note                string            `json:"note"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}
