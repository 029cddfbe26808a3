package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"guesthouse-backend/models"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"
)

type RoomController struct {
	Rooms        *services.RoomService
	Availability *services.AvailabilityService
}

func NewRoomController(rooms *services.RoomService, availability *services.AvailabilityService) *RoomController {
	return &RoomController{Rooms: rooms, Availability: availability}
}

type createRoomRequest struct {
	RoomNumber    string          `json:"roomNumber" binding:"required"`
	Type          string          `json:"type"`
	Floor         int             `json:"floor"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	MaxOccupancy  int             `json:"maxOccupancy" binding:"required"`
	Description   string          `json:"description"`
}

func (ctl *RoomController) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	room, err := ctl.Rooms.Create(services.CreateRoomInput{
		RoomNumber:    req.RoomNumber,
		Type:          models.RoomType(req.Type),
		Floor:         req.Floor,
		PricePerNight: req.PricePerNight,
		MaxOccupancy:  req.MaxOccupancy,
		Description:   req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctl.Rooms.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GetAvailableRooms answers ?checkIn=&checkOut=&type= with the rooms that
// have no overlapping active stay in the half-open interval.
func (ctl *RoomController) GetAvailableRooms(c *gin.Context) {
	checkIn, err := parseDate(c.Query("checkIn"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkOut, err := parseDate(c.Query("checkOut"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var roomType *models.RoomType
	if t := c.Query("type"); t != "" {
		rt := models.RoomType(t)
		if !rt.IsValid() {
			utils.JSONError(c, http.StatusBadRequest, "invalid room type: "+t)
			return
		}
		roomType = &rt
	}

	rooms, err := ctl.Availability.ListAvailableRooms(checkIn, checkOut, roomType)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GetRoomByNumber looks a room up by its human-facing number.
func (ctl *RoomController) GetRoomByNumber(c *gin.Context) {
	room, err := ctl.Rooms.GetByNumber(c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctl *RoomController) GetRoom(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	room, err := ctl.Rooms.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

type updateRoomRequest struct {
	RoomNumber    *string          `json:"roomNumber"`
	Type          *string          `json:"type"`
	Floor         *int             `json:"floor"`
	PricePerNight *decimal.Decimal `json:"pricePerNight"`
	MaxOccupancy  *int             `json:"maxOccupancy"`
	Description   *string          `json:"description"`
	IsActive      *bool            `json:"isActive"`
}

func (ctl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := services.UpdateRoomInput{
		RoomNumber:    req.RoomNumber,
		Floor:         req.Floor,
		PricePerNight: req.PricePerNight,
		MaxOccupancy:  req.MaxOccupancy,
		Description:   req.Description,
		IsActive:      req.IsActive,
	}
	if req.Type != nil {
		rt := models.RoomType(*req.Type)
		input.Type = &rt
	}

	room, err := ctl.Rooms.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctl *RoomController) DeactivateRoom(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.Rooms.Deactivate(id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room deactivated"})
}

// SetMaintenance and SetCleaning place sticky manual holds on the room.
func (ctl *RoomController) SetMaintenance(c *gin.Context) {
	ctl.setOverride(c, models.RoomStatusMaintenance)
}

func (ctl *RoomController) SetCleaning(c *gin.Context) {
	ctl.setOverride(c, models.RoomStatusCleaning)
}

func (ctl *RoomController) setOverride(c *gin.Context, status models.RoomStatus) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	room, err := ctl.Rooms.SetOverride(id, status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// ClearOverride lifts the manual hold and re-derives the room status from
// its current stays.
func (ctl *RoomController) ClearOverride(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	room, err := ctl.Rooms.ClearOverride(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}
