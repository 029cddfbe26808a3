package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"guesthouse-backend/services"
	"guesthouse-backend/utils"
)

// respondError maps domain errors to HTTP responses. Anything outside the
// known kinds is an unexpected storage failure and reported generically.
func respondError(c *gin.Context, err error) {
	var (
		notFound          *services.NotFoundError
		invalidRange      *services.InvalidRangeError
		invalidState      *services.InvalidStateError
		conflict          *services.ConflictError
		invalidTransition *services.InvalidTransitionError
		paymentIncomplete *services.PaymentIncompleteError
		duplicateKey      *services.DuplicateKeyError
		validation        *services.ValidationError
	)

	switch {
	case errors.As(err, &notFound):
		utils.JSONError(c, http.StatusNotFound, notFound.Error())
	case errors.As(err, &invalidRange):
		utils.JSONError(c, http.StatusBadRequest, invalidRange.Error())
	case errors.As(err, &invalidState):
		utils.JSONError(c, http.StatusBadRequest, invalidState.Error())
	case errors.As(err, &invalidTransition):
		utils.JSONError(c, http.StatusBadRequest, invalidTransition.Error())
	case errors.As(err, &paymentIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"error":     paymentIncomplete.Error(),
			"amountDue": paymentIncomplete.AmountDue,
		})
	case errors.As(err, &conflict):
		utils.JSONError(c, http.StatusConflict, conflict.Error())
	case errors.As(err, &duplicateKey):
		utils.JSONError(c, http.StatusConflict, duplicateKey.Error())
	case errors.As(err, &validation):
		utils.JSONError(c, http.StatusBadRequest, validation.Error())
	default:
		zap.L().Error("internal error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// parseDate accepts a calendar date or a full RFC3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or RFC3339)", value)
}

// uuidParam parses the :id path parameter.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, fmt.Sprintf("invalid %s: %s", name, c.Param(name)))
		return uuid.Nil, false
	}
	return id, true
}
