package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"guesthouse-backend/models"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"
)

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

type recordPaymentRequest struct {
	StayID        string          `json:"stayId" binding:"required"`
	GuestID       string          `json:"guestId" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Status        string          `json:"status"`
	Method        string          `json:"method"`
	PaymentDate   *string         `json:"paymentDate"`
	TransactionID string          `json:"transactionId"`
	Notes         string          `json:"notes"`
	ReceiptNumber string          `json:"receiptNumber"`
}

func (ctl *PaymentController) RecordPayment(c *gin.Context) {
	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	stayID, err := uuid.Parse(req.StayID)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid stayId: "+req.StayID)
		return
	}
	guestID, err := uuid.Parse(req.GuestID)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid guestId: "+req.GuestID)
		return
	}

	var paymentDate *time.Time
	if req.PaymentDate != nil {
		t, err := parseDate(*req.PaymentDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		paymentDate = &t
	}

	payment, err := ctl.Payments.Record(services.RecordPaymentInput{
		StayID:        stayID,
		GuestID:       guestID,
		Amount:        req.Amount,
		Status:        models.PaymentStatus(req.Status),
		Method:        models.PaymentMethod(req.Method),
		PaymentDate:   paymentDate,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
		ReceiptNumber: req.ReceiptNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}

func (ctl *PaymentController) GetPayments(c *gin.Context) {
	payments, err := ctl.Payments.List()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}

func (ctl *PaymentController) GetPaymentsForStay(c *gin.Context) {
	stayID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	payments, err := ctl.Payments.ListForStay(stayID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}

// GetAmountDue reports the outstanding balance on a stay.
func (ctl *PaymentController) GetAmountDue(c *gin.Context) {
	stayID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	due, err := ctl.Payments.AmountDue(stayID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"stayId":    stayID,
		"amountDue": due,
		"settled":   !due.IsPositive(),
	})
}
