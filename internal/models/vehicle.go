package models

import "time"

// Vehicle catalog models. Two levels: a model family (VehicleType) and its
// sellable variants (VehicleTypeDetail). Managed by EVM staff, read-only for
// dealer roles.
type VehicleType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;unique" json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"` // URL or storage path
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type VehicleTypeDetail struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	VehicleTypeID uint        `gorm:"not null;index" json:"vehicleTypeId"`
	VehicleType   VehicleType `gorm:"foreignKey:VehicleTypeID" json:"-"`
	Version       string      `gorm:"not null" json:"version"`
	Color         string      `gorm:"not null" json:"color"`
	Configuration string      `json:"configuration"`
	Features      string      `json:"features"`
	Image         string      `json:"image"`
	UnitPrice     float64     `gorm:"not null" json:"unitPrice"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
