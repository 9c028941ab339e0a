package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"sahelbus/internal/domain/models"
	"sahelbus/internal/services"
)

type createBookingRequest struct {
	TripID         int64    `json:"tripId"`
	Seats          []string `json:"seats"`
	PassengerName  string   `json:"passengerName"`
	PassengerEmail string   `json:"passengerEmail"`
	PassengerPhone string   `json:"passengerPhone"`
	TotalPrice     int64    `json:"totalPrice"`
}

// POST /api/bookings
func (a *API) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := a.bookingService(c).AttemptBooking(services.BookingRequest{
		TripID:         req.TripID,
		Seats:          req.Seats,
		PassengerName:  req.PassengerName,
		PassengerEmail: req.PassengerEmail,
		PassengerPhone: req.PassengerPhone,
		TotalPrice:     req.TotalPrice,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /api/bookings?email=&tripId=
func (a *API) ListBookings(c *gin.Context) {
	filter := services.ReservationFilter{
		PassengerEmail: strings.TrimSpace(c.Query("email")),
	}
	if raw := c.Query("tripId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(c, http.StatusBadRequest, "invalid_id", "tripId invalide", nil)
			return
		}
		filter.TripID = id
	}
	rows, err := a.bookingService(c).ListReservations(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": rows})
}

// GET /api/bookings/:id
func (a *API) GetBooking(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	res, err := a.bookingService(c).GetReservation(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/bookings/:id/cancel
func (a *API) CancelBooking(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	res, err := a.bookingService(c).Cancel(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type bookingStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/bookings/:id/status
func (a *API) UpdateBookingStatus(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req bookingStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := a.bookingService(c).UpdateStatus(id, models.ReservationStatus(req.Status))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
