package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"guesthouse-backend/controllers"
	"guesthouse-backend/models"
	"guesthouse-backend/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Room{}, &models.Bed{}, &models.Guest{}, &models.Stay{}, &models.Payment{},
	))

	occupancy := services.OccupancyService{}
	paymentService := services.NewPaymentService(db)
	roomService := services.NewRoomService(db, occupancy)
	bedService := services.NewBedService(db, occupancy)
	guestService := services.NewGuestService(db)
	availabilityService := services.NewAvailabilityService(db)
	stayService := services.NewStayService(db, occupancy, paymentService)

	return SetupRouter(
		controllers.NewRoomController(roomService, availabilityService),
		controllers.NewBedController(bedService),
		controllers.NewGuestController(guestService),
		controllers.NewStayController(stayService),
		controllers.NewPaymentController(paymentService),
		zap.NewNop(),
	)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if len(w.Body.Bytes()) > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w, _ := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookingFlow(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/rooms", gin.H{
		"roomNumber":    "101",
		"type":          "standard",
		"pricePerNight": "50.00",
		"maxOccupancy":  2,
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Error)
	var room models.Room
	require.NoError(t, json.Unmarshal(env.Data, &room))

	w, env = doJSON(t, r, http.MethodPost, "/api/guests", gin.H{
		"firstName": "Alice",
		"lastName":  "Nguyen",
		"email":     "alice@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Error)
	var guest models.Guest
	require.NoError(t, json.Unmarshal(env.Data, &guest))

	w, env = doJSON(t, r, http.MethodPost, "/api/staylogs", gin.H{
		"roomId":       room.ID,
		"guestId":      guest.ID,
		"checkInDate":  "2026-09-01",
		"checkOutDate": "2026-09-05",
		"guestCount":   2,
		"totalAmount":  "200.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Error)
	var stay models.Stay
	require.NoError(t, json.Unmarshal(env.Data, &stay))
	assert.Equal(t, models.StayStatusBooked, stay.Status)

	// Overlapping booking is a conflict.
	w, _ = doJSON(t, r, http.MethodPost, "/api/staylogs", gin.H{
		"roomId":       room.ID,
		"guestId":      guest.ID,
		"checkInDate":  "2026-09-03",
		"checkOutDate": "2026-09-07",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/staylogs/%s/checkin", stay.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, env.Error)

	// Unpaid balance blocks check-out.
	w, env = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/staylogs/%s/checkout", stay.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "amount due")

	w, env = doJSON(t, r, http.MethodPost, "/api/payments", gin.H{
		"stayId":  stay.ID,
		"guestId": guest.ID,
		"amount":  "200.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Error)

	w, env = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/staylogs/%s/checkout", stay.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, env.Error)
	require.NoError(t, json.Unmarshal(env.Data, &stay))
	assert.Equal(t, models.StayStatusCheckedOut, stay.Status)

	// Lifecycle actions on a closed stay are rejected.
	w, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/staylogs/%s/cancel", stay.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailableRoomsQuery(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/rooms", gin.H{
		"roomNumber":    "101",
		"pricePerNight": "50.00",
		"maxOccupancy":  2,
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Error)

	w, env = doJSON(t, r, http.MethodGet, "/api/rooms/available?checkIn=2026-09-01&checkOut=2026-09-05", nil)
	require.Equal(t, http.StatusOK, w.Code, env.Error)
	var rooms []models.Room
	require.NoError(t, json.Unmarshal(env.Data, &rooms))
	assert.Len(t, rooms, 1)

	t.Run("missing dates rejected", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodGet, "/api/rooms/available", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUnknownStayReturns404(t *testing.T) {
	r := newTestRouter(t)
	w, _ := doJSON(t, r, http.MethodGet, "/api/staylogs/6f1c3f7e-8a15-4f59-9c39-2a54f4a6f9a1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
