package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RoomType string

const (
	RoomTypeStandard RoomType = "standard"
	RoomTypeDeluxe   RoomType = "deluxe"
	RoomTypeSuite    RoomType = "suite"
	RoomTypeDorm     RoomType = "dorm"
)

func (t RoomType) IsValid() bool {
	switch t {
	case RoomTypeStandard, RoomTypeDeluxe, RoomTypeSuite, RoomTypeDorm:
		return true
	}
	return false
}

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
	RoomStatusCleaning    RoomStatus = "cleaning"
)

func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance, RoomStatusCleaning:
		return true
	}
	return false
}

// IsManual reports whether the status is one of the administrative
// overrides that the occupancy reconciler must not overwrite.
func (s RoomStatus) IsManual() bool {
	return s == RoomStatusMaintenance || s == RoomStatusCleaning
}

type Room struct {
	ID uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`

	RoomNumber string   `gorm:"column:room_number;uniqueIndex;type:varchar(50)" json:"roomNumber"`
	Type       RoomType `gorm:"type:varchar(20);default:standard" json:"type"`
	Floor      int      `json:"floor"`

	// Status is derived from the set of active stays, except while
	// StatusOverride is set (maintenance/cleaning hold).
	Status         RoomStatus `gorm:"type:varchar(20);default:available" json:"status"`
	StatusOverride bool       `gorm:"column:status_override;default:false" json:"statusOverride"`

	PricePerNight decimal.Decimal `gorm:"type:decimal(10,2)" json:"pricePerNight"`
	MaxOccupancy  int             `gorm:"column:max_occupancy" json:"maxOccupancy"`
	Description   string          `gorm:"type:text" json:"description"`
	IsActive      bool            `gorm:"column:is_active;default:true" json:"isActive"`

	Beds []Bed `gorm:"foreignKey:RoomID" json:"beds,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
