package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"guesthouse-backend/models"
)

// PaymentService is the append-only payment ledger and the gate consulted
// at check-out. The baseline policy sums every payment recorded against a
// stay regardless of its status, matching the historical behavior.
type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

// sumPaymentsTx totals all recorded payment amounts for a stay.
func sumPaymentsTx(tx *gorm.DB, stayID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := tx.Model(&models.Payment{}).
		Where("stay_id = ?", stayID).
		Select("COALESCE(SUM(amount), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments for stay %s: %w", stayID, err)
	}
	return total, nil
}

// amountDueTx computes totalAmount minus the payment sum within a
// transaction, for use by the check-out gate.
func amountDueTx(tx *gorm.DB, stay *models.Stay) (decimal.Decimal, error) {
	paid, err := sumPaymentsTx(tx, stay.ID)
	if err != nil {
		return decimal.Zero, err
	}
	return stay.TotalAmount.Sub(paid), nil
}

// AmountDue returns the outstanding balance on a stay. Negative values
// are clamped to zero (overpayment is not a debt).
func (s *PaymentService) AmountDue(stayID uuid.UUID) (decimal.Decimal, error) {
	stay, err := s.findStay(stayID)
	if err != nil {
		return decimal.Zero, err
	}
	due, err := amountDueTx(s.DB, stay)
	if err != nil {
		return decimal.Zero, err
	}
	if due.IsNegative() {
		return decimal.Zero, nil
	}
	return due, nil
}

// IsSettled reports whether recorded payments cover the stay's total.
func (s *PaymentService) IsSettled(stayID uuid.UUID) (bool, error) {
	stay, err := s.findStay(stayID)
	if err != nil {
		return false, err
	}
	due, err := amountDueTx(s.DB, stay)
	if err != nil {
		return false, err
	}
	return !due.IsPositive(), nil
}

// RecordPaymentInput holds the data for a new ledger entry.
type RecordPaymentInput struct {
	StayID        uuid.UUID
	GuestID       uuid.UUID
	Amount        decimal.Decimal
	Status        models.PaymentStatus
	Method        models.PaymentMethod
	PaymentDate   *time.Time
	TransactionID string
	Notes         string
	ReceiptNumber string
}

// Record appends a payment against a stay. Payments are never updated or
// deleted afterwards.
func (s *PaymentService) Record(input RecordPaymentInput) (*models.Payment, error) {
	if !input.Amount.IsPositive() {
		return nil, &ValidationError{Message: "payment amount must be positive"}
	}
	if input.Status == "" {
		input.Status = models.PaymentStatusPaid
	}
	if !input.Status.IsValid() {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid payment status: %s", input.Status)}
	}
	if input.Method == "" {
		input.Method = models.PaymentMethodCash
	}
	if !input.Method.IsValid() {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid payment method: %s", input.Method)}
	}

	if _, err := s.findStay(input.StayID); err != nil {
		return nil, err
	}
	var guest models.Guest
	if err := s.DB.First(&guest, "id = ?", input.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Guest", ID: input.GuestID.String()}
		}
		return nil, fmt.Errorf("failed to load guest: %w", err)
	}

	txnID := input.TransactionID
	if txnID == "" {
		txnID = "TXN-" + uuid.NewString()
	}
	paymentDate := time.Now().UTC()
	if input.PaymentDate != nil {
		paymentDate = *input.PaymentDate
	}

	payment := models.Payment{
		TransactionID: txnID,
		Amount:        input.Amount,
		Status:        input.Status,
		Method:        input.Method,
		PaymentDate:   paymentDate,
		GuestID:       input.GuestID,
		StayID:        input.StayID,
		Notes:         input.Notes,
		ReceiptNumber: input.ReceiptNumber,
	}
	if err := s.DB.Create(&payment).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &DuplicateKeyError{Field: "transactionId", Value: txnID}
		}
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return &payment, nil
}

// ListForStay returns the ledger for one stay, oldest first.
func (s *PaymentService) ListForStay(stayID uuid.UUID) ([]models.Payment, error) {
	if _, err := s.findStay(stayID); err != nil {
		return nil, err
	}
	var payments []models.Payment
	err := s.DB.Where("stay_id = ?", stayID).Order("payment_date ASC").Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// List returns all payments, newest first.
func (s *PaymentService) List() ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.DB.Order("payment_date DESC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (s *PaymentService) findStay(stayID uuid.UUID) (*models.Stay, error) {
	var stay models.Stay
	if err := s.DB.First(&stay, "id = ?", stayID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Stay", ID: stayID.String()}
		}
		return nil, fmt.Errorf("failed to load stay: %w", err)
	}
	return &stay, nil
}
