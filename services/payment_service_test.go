package services

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guesthouse-backend/models"
)

func setupStay(t *testing.T) (*PaymentService, *models.Stay, *models.Guest) {
	t.Helper()
	db := newTestDB(t)
	stays := newStayService(db)
	payments := NewPaymentService(db)
	room := createTestRoom(t, db, "101", 2)
	guest := createTestGuest(t, db, "alice@example.com")

	stay, err := stays.CreateBooking(CreateStayInput{
		RoomID:       room.ID,
		GuestID:      guest.ID,
		CheckInDate:  date(2026, time.September, 1),
		CheckOutDate: date(2026, time.September, 5),
		GuestCount:   1,
		TotalAmount:  decimal.RequireFromString("200.00"),
	})
	require.NoError(t, err)
	return payments, stay, guest
}

func TestRecordPayment(t *testing.T) {
	payments, stay, guest := setupStay(t)

	payment, err := payments.Record(RecordPaymentInput{
		StayID:  stay.ID,
		GuestID: guest.ID,
		Amount:  decimal.RequireFromString("80.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	assert.Equal(t, models.PaymentMethodCash, payment.Method)
	assert.True(t, strings.HasPrefix(payment.TransactionID, "TXN-"))

	t.Run("non-positive amount rejected", func(t *testing.T) {
		_, err := payments.Record(RecordPaymentInput{
			StayID:  stay.ID,
			GuestID: guest.ID,
			Amount:  decimal.Zero,
		})
		var validation *ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("duplicate transaction id rejected", func(t *testing.T) {
		_, err := payments.Record(RecordPaymentInput{
			StayID:        stay.ID,
			GuestID:       guest.ID,
			Amount:        decimal.RequireFromString("10.00"),
			TransactionID: payment.TransactionID,
		})
		var dup *DuplicateKeyError
		assert.ErrorAs(t, err, &dup)
	})
}

func TestAmountDue(t *testing.T) {
	payments, stay, guest := setupStay(t)

	due, err := payments.AmountDue(stay.ID)
	require.NoError(t, err)
	assert.True(t, due.Equal(decimal.RequireFromString("200.00")))

	_, err = payments.Record(RecordPaymentInput{
		StayID:  stay.ID,
		GuestID: guest.ID,
		Amount:  decimal.RequireFromString("150.00"),
	})
	require.NoError(t, err)

	due, err = payments.AmountDue(stay.ID)
	require.NoError(t, err)
	assert.True(t, due.Equal(decimal.RequireFromString("50.00")))

	settled, err := payments.IsSettled(stay.ID)
	require.NoError(t, err)
	assert.False(t, settled)

	// Overpayment clamps to zero.
	_, err = payments.Record(RecordPaymentInput{
		StayID:  stay.ID,
		GuestID: guest.ID,
		Amount:  decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)

	due, err = payments.AmountDue(stay.ID)
	require.NoError(t, err)
	assert.True(t, due.IsZero())

	settled, err = payments.IsSettled(stay.ID)
	require.NoError(t, err)
	assert.True(t, settled)
}

func TestListPaymentsForStay(t *testing.T) {
	payments, stay, guest := setupStay(t)

	first := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	second := time.Date(2026, time.September, 3, 10, 0, 0, 0, time.UTC)
	for _, p := range []struct {
		amount string
		at     time.Time
	}{
		{"50.00", second},
		{"30.00", first},
	} {
		at := p.at
		_, err := payments.Record(RecordPaymentInput{
			StayID:      stay.ID,
			GuestID:     guest.ID,
			Amount:      decimal.RequireFromString(p.amount),
			PaymentDate: &at,
		})
		require.NoError(t, err)
	}

	ledger, err := payments.ListForStay(stay.ID)
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	// Oldest first.
	assert.True(t, ledger[0].Amount.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, ledger[1].Amount.Equal(decimal.RequireFromString("50.00")))
}
