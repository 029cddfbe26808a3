package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guesthouse-backend/models"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"
)

type GuestController struct {
	Guests *services.GuestService
}

func NewGuestController(guests *services.GuestService) *GuestController {
	return &GuestController{Guests: guests}
}

type createGuestRequest struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
	IDType     string `json:"idType"`
	IDNumber   string `json:"idNumber"`
	IsVIP      bool   `json:"isVIP"`
}

func (ctl *GuestController) CreateGuest(c *gin.Context) {
	var req createGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	guest, err := ctl.Guests.Create(models.Guest{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		IDType:     req.IDType,
		IDNumber:   req.IDNumber,
		IsVIP:      req.IsVIP,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, guest)
}

func (ctl *GuestController) GetGuests(c *gin.Context) {
	guests, err := ctl.Guests.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

func (ctl *GuestController) GetGuest(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	guest, err := ctl.Guests.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

type updateGuestRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	Country    *string `json:"country"`
	PostalCode *string `json:"postalCode"`
	IDType     *string `json:"idType"`
	IDNumber   *string `json:"idNumber"`
	IsVIP      *bool   `json:"isVIP"`
	IsActive   *bool   `json:"isActive"`
}

func (ctl *GuestController) UpdateGuest(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req updateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	guest, err := ctl.Guests.Update(id, services.UpdateGuestInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		IDType:     req.IDType,
		IDNumber:   req.IDNumber,
		IsVIP:      req.IsVIP,
		IsActive:   req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (ctl *GuestController) DeactivateGuest(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.Guests.Deactivate(id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Guest deactivated"})
}
