package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sahelbus/internal/domain"
	"sahelbus/internal/http/middleware"
	"sahelbus/internal/utils"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"details":    details,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. The UI
// localizes on its side from the code field.
func RespondDomainError(c *gin.Context, err error) {
	var seatConflict domain.SeatAlreadyReservedError
	var capacity domain.InsufficientCapacityError

	switch {
	case domain.IsInventoryCorruption(err):
		// Broken invariant, not contention. Checked first: corruption
		// wraps the offending label's decode error, which would
		// otherwise match the validation case below. Loud log for
		// alerting.
		utils.LogEvent(middleware.GetRequestID(c), "inventory", "corruption", err.Error())
		respondError(c, http.StatusInternalServerError, "inventory_corruption", "incohérence d'inventaire détectée", nil)
	case domain.IsValidation(err), domain.IsInvalidSeat(err), domain.IsMalformedLabel(err), domain.IsOutOfRange(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.As(err, &seatConflict):
		// Clients must refresh the seat map before retrying.
		respondError(c, http.StatusConflict, "seat_conflict", err.Error(), gin.H{"seats": seatConflict.Seats})
	case errors.As(err, &capacity):
		respondError(c, http.StatusConflict, "insufficient_capacity", err.Error(), gin.H{
			"requested": capacity.Requested,
			"available": capacity.Available,
		})
	case domain.IsTripNotBookable(err):
		respondError(c, http.StatusConflict, "trip_not_bookable", err.Error(), nil)
	case domain.IsInvalidTransition(err):
		respondError(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "une erreur est survenue", nil)
	}
}
