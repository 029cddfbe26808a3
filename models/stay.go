package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Stay is the central transaction record linking a guest to a room (and
// optionally a specific bed) for a half-open [checkIn, checkOut) interval.
// Stays are never deleted; terminal statuses keep the audit trail.
type Stay struct {
	ID uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`

	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;type:varchar(32)" json:"referenceCode"`

	CheckInDate  time.Time `gorm:"column:check_in_date;index" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"column:check_out_date;index" json:"checkOutDate"`

	Status StayStatus `gorm:"type:varchar(20);index;default:booked" json:"status"`

	RoomID  uuid.UUID  `gorm:"type:char(36);index" json:"roomId"`
	BedID   *uuid.UUID `gorm:"type:char(36);index" json:"bedId,omitempty"`
	GuestID uuid.UUID  `gorm:"type:char(36);index" json:"guestId"`

	GuestCount  int             `gorm:"column:guest_count;default:1" json:"guestCount"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2)" json:"totalAmount"`

	SpecialRequests string `gorm:"column:special_requests;type:text" json:"specialRequests"`
	Notes           string `gorm:"type:text" json:"notes"`

	// Draft list of accompanying guest names captured at booking time.
	AccompanyingGuests datatypes.JSON `gorm:"column:accompanying_guests" json:"accompanyingGuests,omitempty"`

	CheckedInAt  *time.Time `gorm:"column:checked_in_at" json:"checkedInAt,omitempty"`
	CheckedOutAt *time.Time `gorm:"column:checked_out_at" json:"checkedOutAt,omitempty"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at" json:"cancelledAt,omitempty"`

	Room     Room      `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Bed      *Bed      `gorm:"foreignKey:BedID;references:ID" json:"bed,omitempty"`
	Guest    Guest     `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
	Payments []Payment `gorm:"foreignKey:StayID" json:"payments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Stay) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
