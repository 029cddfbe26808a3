package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusPaid              PaymentStatus = "paid"
	PaymentStatusFailed            PaymentStatus = "failed"
	PaymentStatusRefunded          PaymentStatus = "refunded"
	PaymentStatusPartiallyRefunded PaymentStatus = "partially_refunded"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed,
		PaymentStatusRefunded, PaymentStatusPartiallyRefunded:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodPayPal       PaymentMethod = "paypal"
	PaymentMethodWeChat       PaymentMethod = "wechat"
	PaymentMethodAlipay       PaymentMethod = "alipay"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodCash,
		PaymentMethodBankTransfer, PaymentMethodPayPal, PaymentMethodWeChat,
		PaymentMethodAlipay:
		return true
	}
	return false
}

// Payment is an append-only ledger entry against a stay.
type Payment struct {
	ID uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`

	TransactionID string          `gorm:"column:transaction_id;uniqueIndex;type:varchar(64)" json:"transactionId"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	Status        PaymentStatus   `gorm:"type:varchar(32);default:pending" json:"status"`
	Method        PaymentMethod   `gorm:"type:varchar(32);default:credit_card" json:"method"`
	PaymentDate   time.Time       `gorm:"column:payment_date" json:"paymentDate"`

	GuestID uuid.UUID `gorm:"type:char(36);index" json:"guestId"`
	StayID  uuid.UUID `gorm:"type:char(36);index" json:"stayId"`

	Notes         string `gorm:"type:text" json:"notes"`
	ReceiptNumber string `gorm:"column:receipt_number;type:varchar(64)" json:"receiptNumber"`

	Guest Guest `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
