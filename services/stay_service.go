package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"guesthouse-backend/models"
	"guesthouse-backend/utils"
)

// StayService drives the stay lifecycle state machine:
//
//	BOOKED -> CHECKED_IN -> CHECKED_OUT
//	BOOKED -> CANCELLED
//	BOOKED | CHECKED_IN -> NO_SHOW
//
// Every mutation runs as a single transaction that locks the room row,
// re-checks availability where relevant, writes the stay and reconciles
// occupancy, so two racing bookings cannot both commit. A lost race is
// surfaced as a ConflictError, never retried.
type StayService struct {
	DB        *gorm.DB
	Occupancy OccupancyService
	Payments  *PaymentService
}

func NewStayService(db *gorm.DB, occupancy OccupancyService, payments *PaymentService) *StayService {
	return &StayService{DB: db, Occupancy: occupancy, Payments: payments}
}

// lockForUpdate takes a row lock on MySQL. sqlite (used in tests) has no
// FOR UPDATE syntax and serializes writers itself.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// CreateStayInput holds the data needed to create a booking.
type CreateStayInput struct {
	RoomID             uuid.UUID
	BedID              *uuid.UUID
	GuestID            uuid.UUID
	CheckInDate        time.Time
	CheckOutDate       time.Time
	GuestCount         int
	TotalAmount        decimal.Decimal
	SpecialRequests    string
	Notes              string
	AccompanyingGuests datatypes.JSON
}

// UpdateStayInput is a partial patch for a non-terminal stay. A status
// change routes through the same transition rules as the explicit
// operations; there is no bypass via update.
type UpdateStayInput struct {
	CheckInDate     *time.Time
	CheckOutDate    *time.Time
	GuestCount      *int
	TotalAmount     *decimal.Decimal
	SpecialRequests *string
	Notes           *string
	Status          *models.StayStatus
}

// CreateBooking validates the request against the availability rules and
// creates the stay in BOOKED inside one transaction.
func (s *StayService) CreateBooking(input CreateStayInput) (*models.Stay, error) {
	if !input.CheckOutDate.After(input.CheckInDate) {
		return nil, &InvalidRangeError{CheckIn: input.CheckInDate, CheckOut: input.CheckOutDate}
	}
	if input.GuestCount < 1 {
		return nil, &ValidationError{Message: "guest count must be at least 1"}
	}

	var stayID uuid.UUID
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := lockForUpdate(tx).First(&room, "id = ?", input.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "Room", ID: input.RoomID.String()}
			}
			return fmt.Errorf("failed to load room: %w", err)
		}
		if !room.IsActive {
			return &NotFoundError{Entity: "Room", ID: input.RoomID.String()}
		}
		if room.Status != models.RoomStatusAvailable && room.Status != models.RoomStatusOccupied {
			return &InvalidStateError{Entity: "Room " + room.RoomNumber, Status: string(room.Status)}
		}
		if input.GuestCount > room.MaxOccupancy {
			return &ValidationError{Message: fmt.Sprintf(
				"guest count %d exceeds room max occupancy %d", input.GuestCount, room.MaxOccupancy)}
		}

		if input.BedID != nil {
			var bed models.Bed
			if err := tx.First(&bed, "id = ? AND room_id = ?", *input.BedID, input.RoomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "Bed", ID: input.BedID.String()}
				}
				return fmt.Errorf("failed to load bed: %w", err)
			}
			if !bed.IsActive {
				return &NotFoundError{Entity: "Bed", ID: input.BedID.String()}
			}
			if bed.Status == models.BedStatusMaintenance {
				return &InvalidStateError{Entity: "Bed " + bed.BedNumber, Status: string(bed.Status)}
			}
		}

		var guest models.Guest
		if err := tx.First(&guest, "id = ?", input.GuestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "Guest", ID: input.GuestID.String()}
			}
			return fmt.Errorf("failed to load guest: %w", err)
		}
		if !guest.IsActive {
			return &NotFoundError{Entity: "Guest", ID: input.GuestID.String()}
		}

		count, err := countOverlappingStays(tx, input.RoomID, input.BedID, input.CheckInDate, input.CheckOutDate, nil)
		if err != nil {
			return err
		}
		if count > 0 {
			conflict := &ConflictError{RoomID: input.RoomID.String()}
			if input.BedID != nil {
				conflict.BedID = input.BedID.String()
			}
			return conflict
		}

		ref, err := utils.GenerateReferenceCode("ST")
		if err != nil {
			return fmt.Errorf("failed to generate reference code: %w", err)
		}

		stay := models.Stay{
			ReferenceCode:      ref,
			CheckInDate:        input.CheckInDate,
			CheckOutDate:       input.CheckOutDate,
			Status:             models.StayStatusBooked,
			RoomID:             input.RoomID,
			BedID:              input.BedID,
			GuestID:            input.GuestID,
			GuestCount:         input.GuestCount,
			TotalAmount:        input.TotalAmount,
			SpecialRequests:    input.SpecialRequests,
			Notes:              input.Notes,
			AccompanyingGuests: input.AccompanyingGuests,
		}
		if err := tx.Create(&stay).Error; err != nil {
			if isDuplicateKey(err) {
				return &ConflictError{RoomID: input.RoomID.String()}
			}
			return fmt.Errorf("failed to create stay: %w", err)
		}
		stayID = stay.ID

		return s.Occupancy.Reconcile(tx, input.RoomID, input.BedID)
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.GetByID(stayID)
}

// CheckIn transitions a BOOKED stay to CHECKED_IN.
func (s *StayService) CheckIn(stayID uuid.UUID) (*models.Stay, error) {
	return s.transition(stayID, models.StayStatusCheckedIn)
}

// CheckOut transitions a CHECKED_IN stay to CHECKED_OUT. It is gated on
// the payment ledger: the sum of recorded payments must cover the stay's
// total amount, otherwise PaymentIncompleteError reports the amount due.
func (s *StayService) CheckOut(stayID uuid.UUID) (*models.Stay, error) {
	return s.transition(stayID, models.StayStatusCheckedOut)
}

// Cancel transitions a BOOKED stay to CANCELLED.
func (s *StayService) Cancel(stayID uuid.UUID) (*models.Stay, error) {
	return s.transition(stayID, models.StayStatusCancelled)
}

// MarkNoShow is the explicit administrative no-show action, legal from
// BOOKED and CHECKED_IN. Never applied automatically.
func (s *StayService) MarkNoShow(stayID uuid.UUID) (*models.Stay, error) {
	return s.transition(stayID, models.StayStatusNoShow)
}

func (s *StayService) transition(stayID uuid.UUID, target models.StayStatus) (*models.Stay, error) {
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var stay models.Stay
		if err := lockForUpdate(tx).First(&stay, "id = ?", stayID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "Stay", ID: stayID.String()}
			}
			return fmt.Errorf("failed to load stay: %w", err)
		}
		// Lock the room row so the reconciliation below cannot interleave
		// with a concurrent booking on the same room.
		var room models.Room
		if err := lockForUpdate(tx).First(&room, "id = ?", stay.RoomID).Error; err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if err := s.applyTransition(tx, &stay, target); err != nil {
			return err
		}
		if err := tx.Save(&stay).Error; err != nil {
			return fmt.Errorf("failed to save stay: %w", err)
		}

		return s.Occupancy.Reconcile(tx, stay.RoomID, stay.BedID)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(stayID)
}

// applyTransition enforces the state machine and per-transition gates,
// mutating the stay in memory. Callers persist and reconcile.
func (s *StayService) applyTransition(tx *gorm.DB, stay *models.Stay, target models.StayStatus) error {
	if !stay.Status.CanTransitionTo(target) {
		return &InvalidTransitionError{Current: stay.Status, Requested: target}
	}

	now := time.Now().UTC()
	switch target {
	case models.StayStatusCheckedIn:
		stay.CheckedInAt = &now
	case models.StayStatusCheckedOut:
		due, err := amountDueTx(tx, stay)
		if err != nil {
			return err
		}
		if due.IsPositive() {
			return &PaymentIncompleteError{AmountDue: due}
		}
		stay.CheckedOutAt = &now
	case models.StayStatusCancelled:
		stay.CancelledAt = &now
	case models.StayStatusNoShow:
		// administrative, no timestamp beyond UpdatedAt
	default:
		return &ValidationError{Message: fmt.Sprintf("invalid target status: %s", target)}
	}

	stay.Status = target
	return nil
}

// Update patches dates, guest count, amounts and notes on a non-terminal
// stay. Date changes are re-validated against availability excluding the
// stay itself; a status change in the patch goes through applyTransition.
func (s *StayService) Update(stayID uuid.UUID, input UpdateStayInput) (*models.Stay, error) {
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var stay models.Stay
		if err := lockForUpdate(tx).First(&stay, "id = ?", stayID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "Stay", ID: stayID.String()}
			}
			return fmt.Errorf("failed to load stay: %w", err)
		}
		if stay.Status.IsTerminal() {
			requested := stay.Status
			if input.Status != nil {
				requested = *input.Status
			}
			return &InvalidTransitionError{Current: stay.Status, Requested: requested}
		}

		var room models.Room
		if err := lockForUpdate(tx).First(&room, "id = ?", stay.RoomID).Error; err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		checkIn := stay.CheckInDate
		checkOut := stay.CheckOutDate
		if input.CheckInDate != nil {
			checkIn = *input.CheckInDate
		}
		if input.CheckOutDate != nil {
			checkOut = *input.CheckOutDate
		}
		datesChanged := !checkIn.Equal(stay.CheckInDate) || !checkOut.Equal(stay.CheckOutDate)

		if datesChanged {
			if !checkOut.After(checkIn) {
				return &InvalidRangeError{CheckIn: checkIn, CheckOut: checkOut}
			}
			count, err := countOverlappingStays(tx, stay.RoomID, stay.BedID, checkIn, checkOut, &stay.ID)
			if err != nil {
				return err
			}
			if count > 0 {
				conflict := &ConflictError{RoomID: stay.RoomID.String()}
				if stay.BedID != nil {
					conflict.BedID = stay.BedID.String()
				}
				return conflict
			}
			stay.CheckInDate = checkIn
			stay.CheckOutDate = checkOut
		}

		if input.GuestCount != nil {
			if *input.GuestCount < 1 {
				return &ValidationError{Message: "guest count must be at least 1"}
			}
			if *input.GuestCount > room.MaxOccupancy {
				return &ValidationError{Message: fmt.Sprintf(
					"guest count %d exceeds room max occupancy %d", *input.GuestCount, room.MaxOccupancy)}
			}
			stay.GuestCount = *input.GuestCount
		}
		if input.TotalAmount != nil {
			stay.TotalAmount = *input.TotalAmount
		}
		if input.SpecialRequests != nil {
			stay.SpecialRequests = *input.SpecialRequests
		}
		if input.Notes != nil {
			stay.Notes = *input.Notes
		}

		statusChanged := false
		if input.Status != nil && *input.Status != stay.Status {
			if !input.Status.IsValid() {
				return &ValidationError{Message: fmt.Sprintf("invalid stay status: %s", *input.Status)}
			}
			if err := s.applyTransition(tx, &stay, *input.Status); err != nil {
				return err
			}
			statusChanged = true
		}

		if err := tx.Save(&stay).Error; err != nil {
			return fmt.Errorf("failed to save stay: %w", err)
		}

		if datesChanged || statusChanged {
			return s.Occupancy.Reconcile(tx, stay.RoomID, stay.BedID)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(stayID)
}

// GetByID returns a stay with its room, bed, guest and payments resolved.
func (s *StayService) GetByID(stayID uuid.UUID) (*models.Stay, error) {
	var stay models.Stay
	err := s.DB.
		Preload("Room").
		Preload("Bed").
		Preload("Guest").
		Preload("Payments").
		First(&stay, "id = ?", stayID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Stay", ID: stayID.String()}
		}
		return nil, fmt.Errorf("failed to retrieve stay: %w", err)
	}
	if stay.Payments == nil {
		stay.Payments = []models.Payment{}
	}
	return &stay, nil
}

// List returns all stays, newest first, with relations resolved.
func (s *StayService) List() ([]models.Stay, error) {
	var stays []models.Stay
	err := s.DB.
		Preload("Room").
		Preload("Bed").
		Preload("Guest").
		Preload("Payments").
		Order("created_at DESC").
		Find(&stays).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve stays: %w", err)
	}
	for i := range stays {
		if stays[i].Payments == nil {
			stays[i].Payments = []models.Payment{}
		}
	}
	return stays, nil
}
