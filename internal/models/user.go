package models

import "time"

// Back-office roles. Dealer roles are scoped to a dealer via User.DealerID;
// ADMIN and EVM_STAFF are manufacturer-side and carry no dealer.
type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RoleEVMStaff      Role = "EVM_STAFF"
	RoleDealerStaff   Role = "DEALER_STAFF"
	RoleDealerManager Role = "DEALER_MANAGER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEVMStaff, RoleDealerStaff, RoleDealerManager:
		return true
	}
	return false
}

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"unique;not null;index" json:"email"`
	Password  string `gorm:"not null" json:"-"` // bcrypt hash
	Name      string `json:"name"`
	Role      Role   `gorm:"not null" json:"role"`
	DealerID  uint   `gorm:"index" json:"dealerId"` // 0 for manufacturer-side roles
	Dealer    Dealer `gorm:"foreignKey:DealerID" json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
