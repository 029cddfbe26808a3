package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"guesthouse-backend/models"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"
)

type StayController struct {
	Stays *services.StayService
}

func NewStayController(stays *services.StayService) *StayController {
	return &StayController{Stays: stays}
}

type createStayRequest struct {
	RoomID             string          `json:"roomId" binding:"required"`
	BedID              *string         `json:"bedId"`
	GuestID            string          `json:"guestId" binding:"required"`
	CheckInDate        string          `json:"checkInDate" binding:"required"`
	CheckOutDate       string          `json:"checkOutDate" binding:"required"`
	GuestCount         int             `json:"guestCount"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	SpecialRequests    string          `json:"specialRequests"`
	Notes              string          `json:"notes"`
	AccompanyingGuests datatypes.JSON  `json:"accompanyingGuests"`
}

func (ctl *StayController) CreateStay(c *gin.Context) {
	var req createStayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid roomId: "+req.RoomID)
		return
	}
	guestID, err := uuid.Parse(req.GuestID)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid guestId: "+req.GuestID)
		return
	}
	var bedID *uuid.UUID
	if req.BedID != nil && *req.BedID != "" {
		id, err := uuid.Parse(*req.BedID)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid bedId: "+*req.BedID)
			return
		}
		bedID = &id
	}

	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	guestCount := req.GuestCount
	if guestCount == 0 {
		guestCount = 1
	}

	stay, err := ctl.Stays.CreateBooking(services.CreateStayInput{
		RoomID:             roomID,
		BedID:              bedID,
		GuestID:            guestID,
		CheckInDate:        checkIn,
		CheckOutDate:       checkOut,
		GuestCount:         guestCount,
		TotalAmount:        req.TotalAmount,
		SpecialRequests:    req.SpecialRequests,
		Notes:              req.Notes,
		AccompanyingGuests: req.AccompanyingGuests,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, stay)
}

func (ctl *StayController) GetStays(c *gin.Context) {
	stays, err := ctl.Stays.List()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stays)
}

func (ctl *StayController) GetStay(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	stay, err := ctl.Stays.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stay)
}

type updateStayRequest struct {
	CheckInDate     *string          `json:"checkInDate"`
	CheckOutDate    *string          `json:"checkOutDate"`
	GuestCount      *int             `json:"guestCount"`
	TotalAmount     *decimal.Decimal `json:"totalAmount"`
	SpecialRequests *string          `json:"specialRequests"`
	Notes           *string          `json:"notes"`
	Status          *string          `json:"status"`
}

func (ctl *StayController) UpdateStay(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req updateStayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := services.UpdateStayInput{
		GuestCount:      req.GuestCount,
		TotalAmount:     req.TotalAmount,
		SpecialRequests: req.SpecialRequests,
		Notes:           req.Notes,
	}
	if req.CheckInDate != nil {
		t, err := parseDate(*req.CheckInDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		input.CheckInDate = &t
	}
	if req.CheckOutDate != nil {
		t, err := parseDate(*req.CheckOutDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		input.CheckOutDate = &t
	}
	if req.Status != nil {
		status := models.StayStatus(*req.Status)
		input.Status = &status
	}

	stay, err := ctl.Stays.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stay)
}

// CheckIn, CheckOut, Cancel and MarkNoShow are the lifecycle actions.
// Illegal transitions come back as 400 with the current status in the
// message; an unpaid balance blocks check-out with the amount due.
func (ctl *StayController) CheckIn(c *gin.Context) {
	ctl.lifecycle(c, ctl.Stays.CheckIn)
}

func (ctl *StayController) CheckOut(c *gin.Context) {
	ctl.lifecycle(c, ctl.Stays.CheckOut)
}

func (ctl *StayController) Cancel(c *gin.Context) {
	ctl.lifecycle(c, ctl.Stays.Cancel)
}

func (ctl *StayController) MarkNoShow(c *gin.Context) {
	ctl.lifecycle(c, ctl.Stays.MarkNoShow)
}

func (ctl *StayController) lifecycle(c *gin.Context, action func(uuid.UUID) (*models.Stay, error)) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	stay, err := action(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stay)
}
