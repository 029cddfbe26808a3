package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guesthouse-backend/models"
)

func TestGuestCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)

	guest, err := svc.Create(models.Guest{
		FirstName: "Alice",
		LastName:  "Nguyen",
		Email:     "  Alice@Example.COM ",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", guest.Email)
	assert.True(t, guest.IsActive)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Create(models.Guest{
			FirstName: "Other",
			LastName:  "Person",
			Email:     "alice@example.com",
		})
		var dup *DuplicateKeyError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "email", dup.Field)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := svc.Create(models.Guest{Email: "bob@example.com"})
		var validation *ValidationError
		assert.ErrorAs(t, err, &validation)
	})
}

func TestGuestUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)
	guest := createTestGuest(t, db, "alice@example.com")

	vip := true
	phone := "+66 81 234 5678"
	updated, err := svc.Update(guest.ID, UpdateGuestInput{IsVIP: &vip, Phone: &phone})
	require.NoError(t, err)
	assert.True(t, updated.IsVIP)
	assert.Equal(t, phone, updated.Phone)
}

func TestGuestDeactivate(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)
	guest := createTestGuest(t, db, "alice@example.com")

	require.NoError(t, svc.Deactivate(guest.ID))

	var reloaded models.Guest
	require.NoError(t, db.First(&reloaded, "id = ?", guest.ID).Error)
	assert.False(t, reloaded.IsActive)

	t.Run("unknown guest", func(t *testing.T) {
		err := svc.Deactivate(uuid.New())
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}
