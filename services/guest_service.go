package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"guesthouse-backend/models"
)

// GuestService manages guest records. Guests have an independent
// lifecycle: deactivating one never touches its stays or payments.
type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

func (s *GuestService) Create(guest models.Guest) (*models.Guest, error) {
	guest.Email = strings.TrimSpace(strings.ToLower(guest.Email))
	if guest.Email == "" {
		return nil, &ValidationError{Message: "email is required"}
	}
	if strings.TrimSpace(guest.FirstName) == "" || strings.TrimSpace(guest.LastName) == "" {
		return nil, &ValidationError{Message: "first and last name are required"}
	}
	guest.IsActive = true

	if err := s.DB.Create(&guest).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &DuplicateKeyError{Field: "email", Value: guest.Email}
		}
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}
	return &guest, nil
}

func (s *GuestService) GetAll() ([]models.Guest, error) {
	var guests []models.Guest
	err := s.DB.Order("last_name ASC, first_name ASC").Find(&guests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve guests: %w", err)
	}
	return guests, nil
}

func (s *GuestService) GetByID(id uuid.UUID) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.First(&guest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Guest", ID: id.String()}
		}
		return nil, fmt.Errorf("failed to retrieve guest: %w", err)
	}
	return &guest, nil
}

type UpdateGuestInput struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	Address    *string
	City       *string
	State      *string
	Country    *string
	PostalCode *string
	IDType     *string
	IDNumber   *string
	IsVIP      *bool
	IsActive   *bool
}

func (s *GuestService) Update(id uuid.UUID, input UpdateGuestInput) (*models.Guest, error) {
	guest, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		guest.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		guest.LastName = *input.LastName
	}
	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email == "" {
			return nil, &ValidationError{Message: "email is required"}
		}
		guest.Email = email
	}
	if input.Phone != nil {
		guest.Phone = *input.Phone
	}
	if input.Address != nil {
		guest.Address = *input.Address
	}
	if input.City != nil {
		guest.City = *input.City
	}
	if input.State != nil {
		guest.State = *input.State
	}
	if input.Country != nil {
		guest.Country = *input.Country
	}
	if input.PostalCode != nil {
		guest.PostalCode = *input.PostalCode
	}
	if input.IDType != nil {
		guest.IDType = *input.IDType
	}
	if input.IDNumber != nil {
		guest.IDNumber = *input.IDNumber
	}
	if input.IsVIP != nil {
		guest.IsVIP = *input.IsVIP
	}
	if input.IsActive != nil {
		guest.IsActive = *input.IsActive
	}

	if err := s.DB.Save(guest).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &DuplicateKeyError{Field: "email", Value: guest.Email}
		}
		return nil, fmt.Errorf("failed to update guest: %w", err)
	}
	return guest, nil
}

// Deactivate soft-deletes a guest. Existing stays keep their reference.
func (s *GuestService) Deactivate(id uuid.UUID) error {
	result := s.DB.Model(&models.Guest{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate guest: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Entity: "Guest", ID: id.String()}
	}
	return nil
}
