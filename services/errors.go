package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"guesthouse-backend/models"
)

// NotFoundError reports a missing or deactivated entity reference.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InvalidRangeError reports a date interval whose check-out is not
// strictly after its check-in.
type InvalidRangeError struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("check-out date %s must be after check-in date %s",
		e.CheckOut.Format("2006-01-02"), e.CheckIn.Format("2006-01-02"))
}

// InvalidStateError reports a room or bed that is not in a bookable
// administrative state.
type InvalidStateError struct {
	Entity string
	Status string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s is not available (status: %s)", e.Entity, e.Status)
}

// ConflictError reports an overlapping booking, including races detected
// at commit time.
type ConflictError struct {
	RoomID string
	BedID  string
}

func (e *ConflictError) Error() string {
	if e.BedID != "" {
		return fmt.Sprintf("bed %s is already booked for these dates", e.BedID)
	}
	return fmt.Sprintf("room %s is already booked for these dates", e.RoomID)
}

// InvalidTransitionError reports a lifecycle change that is not legal from
// the stay's current status. The message echoes the current status.
type InvalidTransitionError struct {
	Current   models.StayStatus
	Requested models.StayStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition to %s. Current status: %s", e.Requested, e.Current)
}

// PaymentIncompleteError blocks a check-out and reports the amount still due.
type PaymentIncompleteError struct {
	AmountDue decimal.Decimal
}

func (e *PaymentIncompleteError) Error() string {
	return fmt.Sprintf("cannot check out until payment is complete (amount due: %s)",
		e.AmountDue.StringFixed(2))
}

// DuplicateKeyError reports a uniqueness violation on a human-facing key.
type DuplicateKeyError struct {
	Field string
	Value string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s '%s' already exists", e.Field, e.Value)
}

// ValidationError reports malformed input that passed binding but fails a
// domain rule (e.g. guest count bounds).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// isDuplicateKey detects a uniqueness violation from the storage layer.
// MySQL reports error 1062; the string fallback covers sqlite in tests.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
