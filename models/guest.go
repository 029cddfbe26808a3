package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Guest struct {
	ID uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `gorm:"uniqueIndex;type:varchar(255)" json:"email"`
	Phone     string `gorm:"type:varchar(50)" json:"phone"`

	Address    string `json:"address"`
	City       string `gorm:"type:varchar(100)" json:"city"`
	State      string `gorm:"type:varchar(100)" json:"state"`
	Country    string `gorm:"type:varchar(100)" json:"country"`
	PostalCode string `gorm:"column:postal_code;type:varchar(20)" json:"postalCode"`

	IDType   string `gorm:"column:id_type;type:varchar(50)" json:"idType"`
	IDNumber string `gorm:"column:id_number;type:varchar(100)" json:"idNumber"`

	IsVIP    bool `gorm:"column:is_vip;default:false" json:"isVIP"`
	IsActive bool `gorm:"column:is_active;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
