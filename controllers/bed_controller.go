package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"guesthouse-backend/models"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"
)

type BedController struct {
	Beds *services.BedService
}

func NewBedController(beds *services.BedService) *BedController {
	return &BedController{Beds: beds}
}

type createBedRequest struct {
	BedNumber               string              `json:"bedNumber" binding:"required"`
	Type                    string              `json:"type"`
	AdditionalPricePerNight decimal.NullDecimal `json:"additionalPricePerNight"`
}

func (ctl *BedController) CreateBed(c *gin.Context) {
	roomID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req createBedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	bed, err := ctl.Beds.Create(roomID, services.CreateBedInput{
		BedNumber:               req.BedNumber,
		Type:                    models.BedType(req.Type),
		AdditionalPricePerNight: req.AdditionalPricePerNight,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, bed)
}

func (ctl *BedController) GetBedsForRoom(c *gin.Context) {
	roomID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	beds, err := ctl.Beds.ListForRoom(roomID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, beds)
}

func (ctl *BedController) GetBed(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	bed, err := ctl.Beds.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bed)
}

type updateBedRequest struct {
	BedNumber               *string              `json:"bedNumber"`
	Type                    *string              `json:"type"`
	AdditionalPricePerNight *decimal.NullDecimal `json:"additionalPricePerNight"`
	IsActive                *bool                `json:"isActive"`
}

func (ctl *BedController) UpdateBed(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req updateBedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := services.UpdateBedInput{
		BedNumber:               req.BedNumber,
		AdditionalPricePerNight: req.AdditionalPricePerNight,
		IsActive:                req.IsActive,
	}
	if req.Type != nil {
		bt := models.BedType(*req.Type)
		input.Type = &bt
	}

	bed, err := ctl.Beds.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bed)
}

func (ctl *BedController) DeactivateBed(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.Beds.Deactivate(id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Bed deactivated"})
}

func (ctl *BedController) SetMaintenance(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	bed, err := ctl.Beds.SetMaintenance(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bed)
}

func (ctl *BedController) ClearOverride(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	bed, err := ctl.Beds.ClearOverride(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bed)
}
