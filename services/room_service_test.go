package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guesthouse-backend/models"
)

func TestRoomCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db, OccupancyService{})

	room, err := svc.Create(CreateRoomInput{
		RoomNumber:    " 101 ",
		Type:          models.RoomTypeDeluxe,
		Floor:         1,
		PricePerNight: decimal.NewFromInt(80),
		MaxOccupancy:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, "101", room.RoomNumber)
	assert.Equal(t, models.RoomStatusAvailable, room.Status)
	assert.True(t, room.IsActive)

	t.Run("duplicate room number", func(t *testing.T) {
		_, err := svc.Create(CreateRoomInput{
			RoomNumber:    "101",
			PricePerNight: decimal.NewFromInt(50),
			MaxOccupancy:  2,
		})
		var dup *DuplicateKeyError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "roomNumber", dup.Field)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := svc.Create(CreateRoomInput{
			RoomNumber:   "102",
			Type:         models.RoomType("penthouse"),
			MaxOccupancy: 2,
		})
		var validation *ValidationError
		assert.ErrorAs(t, err, &validation)
	})
}

func TestRoomUpdateCannotTouchStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db, OccupancyService{})
	room := createTestRoom(t, db, "101", 2)

	floor := 3
	updated, err := svc.Update(room.ID, UpdateRoomInput{Floor: &floor})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Floor)
	// Status stays derived; Update has no field for it.
	assert.Equal(t, models.RoomStatusAvailable, updated.Status)
}

func TestRoomDeactivateGuardedByActiveStays(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db, OccupancyService{})
	stays := newStayService(db)
	room := createTestRoom(t, db, "101", 2)
	createTestBed(t, db, room.ID, "101-1")
	guest := createTestGuest(t, db, "alice@example.com")

	stay, err := stays.CreateBooking(CreateStayInput{
		RoomID:       room.ID,
		GuestID:      guest.ID,
		CheckInDate:  date(2026, time.September, 1),
		CheckOutDate: date(2026, time.September, 5),
		GuestCount:   1,
	})
	require.NoError(t, err)

	err = svc.Deactivate(room.ID)
	var invalidState *InvalidStateError
	require.ErrorAs(t, err, &invalidState)

	_, err = stays.Cancel(stay.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(room.ID))

	var reloaded models.Room
	require.NoError(t, db.First(&reloaded, "id = ?", room.ID).Error)
	assert.False(t, reloaded.IsActive)

	// Beds are deactivated with the room.
	var bed models.Bed
	require.NoError(t, db.First(&bed, "room_id = ?", room.ID).Error)
	assert.False(t, bed.IsActive)
}

func TestRoomOverrideLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db, OccupancyService{})
	stays := newStayService(db)
	room := createTestRoom(t, db, "101", 2)
	guest := createTestGuest(t, db, "alice@example.com")

	t.Run("only manual statuses allowed", func(t *testing.T) {
		_, err := svc.SetOverride(room.ID, models.RoomStatusOccupied)
		var validation *ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("set and clear", func(t *testing.T) {
		held, err := svc.SetOverride(room.ID, models.RoomStatusMaintenance)
		require.NoError(t, err)
		assert.Equal(t, models.RoomStatusMaintenance, held.Status)
		assert.True(t, held.StatusOverride)

		cleared, err := svc.ClearOverride(room.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoomStatusAvailable, cleared.Status)
		assert.False(t, cleared.StatusOverride)
	})

	t.Run("rejected while stays are active", func(t *testing.T) {
		_, err := stays.CreateBooking(CreateStayInput{
			RoomID:       room.ID,
			GuestID:      guest.ID,
			CheckInDate:  date(2026, time.September, 1),
			CheckOutDate: date(2026, time.September, 5),
			GuestCount:   1,
		})
		require.NoError(t, err)

		_, err = svc.SetOverride(room.ID, models.RoomStatusCleaning)
		var invalidState *InvalidStateError
		assert.ErrorAs(t, err, &invalidState)
	})
}
