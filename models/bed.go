package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BedType string

const (
	BedTypeSingle BedType = "single"
	BedTypeDouble BedType = "double"
	BedTypeQueen  BedType = "queen"
	BedTypeKing   BedType = "king"
	BedTypeBunk   BedType = "bunk"
)

func (t BedType) IsValid() bool {
	switch t {
	case BedTypeSingle, BedTypeDouble, BedTypeQueen, BedTypeKing, BedTypeBunk:
		return true
	}
	return false
}

type BedStatus string

const (
	BedStatusAvailable   BedStatus = "available"
	BedStatusOccupied    BedStatus = "occupied"
	BedStatusMaintenance BedStatus = "maintenance"
)

func (s BedStatus) IsValid() bool {
	switch s {
	case BedStatusAvailable, BedStatusOccupied, BedStatusMaintenance:
		return true
	}
	return false
}

// Bed is an individually bookable unit inside a dorm-style room. Beds in
// private rooms exist for inventory only; stays there reference the room.
type Bed struct {
	ID uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`

	BedNumber string  `gorm:"column:bed_number;type:varchar(50)" json:"bedNumber"`
	Type      BedType `gorm:"type:varchar(20);default:single" json:"type"`

	// Status is derived, same rules as Room.Status.
	Status         BedStatus `gorm:"type:varchar(20);default:available" json:"status"`
	StatusOverride bool      `gorm:"column:status_override;default:false" json:"statusOverride"`

	AdditionalPricePerNight decimal.NullDecimal `gorm:"column:additional_price_per_night;type:decimal(10,2)" json:"additionalPricePerNight,omitempty"`

	RoomID   uuid.UUID `gorm:"type:char(36);index" json:"roomId"`
	IsActive bool      `gorm:"column:is_active;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Bed) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
