package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guesthouse-backend/models"
)

func TestDormBedsBookIndependently(t *testing.T) {
	db := newTestDB(t)
	stays := newStayService(db)
	room := createTestRoom(t, db, "301", 6)
	bedA := createTestBed(t, db, room.ID, "301-1")
	bedB := createTestBed(t, db, room.ID, "301-2")
	alice := createTestGuest(t, db, "alice@example.com")
	bob := createTestGuest(t, db, "bob@example.com")

	bedAID, bedBID := bedA.ID, bedB.ID

	// Two overlapping stays on different beds of the same room.
	stayA, err := stays.CreateBooking(CreateStayInput{
		RoomID: room.ID, BedID: &bedAID, GuestID: alice.ID,
		CheckInDate:  date(2026, time.September, 1),
		CheckOutDate: date(2026, time.September, 5),
		GuestCount:   1,
	})
	require.NoError(t, err)
	stayB, err := stays.CreateBooking(CreateStayInput{
		RoomID: room.ID, BedID: &bedBID, GuestID: bob.ID,
		CheckInDate:  date(2026, time.September, 2),
		CheckOutDate: date(2026, time.September, 6),
		GuestCount:   1,
	})
	require.NoError(t, err)

	_, err = stays.CheckIn(stayA.ID)
	require.NoError(t, err)

	var reloadedA, reloadedB models.Bed
	require.NoError(t, db.First(&reloadedA, "id = ?", bedA.ID).Error)
	require.NoError(t, db.First(&reloadedB, "id = ?", bedB.ID).Error)
	assert.Equal(t, models.BedStatusOccupied, reloadedA.Status)
	assert.Equal(t, models.BedStatusAvailable, reloadedB.Status)

	// Any checked-in bed makes the room occupied.
	var reloadedRoom models.Room
	require.NoError(t, db.First(&reloadedRoom, "id = ?", room.ID).Error)
	assert.Equal(t, models.RoomStatusOccupied, reloadedRoom.Status)

	_, err = stays.CheckIn(stayB.ID)
	require.NoError(t, err)
	_, err = stays.MarkNoShow(stayA.ID)
	require.NoError(t, err)

	require.NoError(t, db.First(&reloadedA, "id = ?", bedA.ID).Error)
	assert.Equal(t, models.BedStatusAvailable, reloadedA.Status)
	require.NoError(t, db.First(&reloadedRoom, "id = ?", room.ID).Error)
	assert.Equal(t, models.RoomStatusOccupied, reloadedRoom.Status, "bed B still checked in")
}

func TestOverrideIsSticky(t *testing.T) {
	db := newTestDB(t)
	occupancy := OccupancyService{}
	room := createTestRoom(t, db, "101", 2)
	require.NoError(t, db.Model(room).Updates(map[string]interface{}{
		"status": models.RoomStatusMaintenance, "status_override": true,
	}).Error)

	require.NoError(t, occupancy.Reconcile(db, room.ID, nil))

	var reloaded models.Room
	require.NoError(t, db.First(&reloaded, "id = ?", room.ID).Error)
	assert.Equal(t, models.RoomStatusMaintenance, reloaded.Status)
	assert.True(t, reloaded.StatusOverride)
}

func TestReconcileIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	stays := newStayService(db)
	occupancy := OccupancyService{}
	room := createTestRoom(t, db, "101", 2)
	guest := createTestGuest(t, db, "alice@example.com")

	stay, err := stays.CreateBooking(CreateStayInput{
		RoomID:       room.ID,
		GuestID:      guest.ID,
		CheckInDate:  date(2026, time.September, 1),
		CheckOutDate: date(2026, time.September, 5),
		GuestCount:   1,
	})
	require.NoError(t, err)
	_, err = stays.CheckIn(stay.ID)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, occupancy.Reconcile(db, room.ID, nil))
	}

	var reloaded models.Room
	require.NoError(t, db.First(&reloaded, "id = ?", room.ID).Error)
	assert.Equal(t, models.RoomStatusOccupied, reloaded.Status)
}
