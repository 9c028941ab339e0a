package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sahelbus/internal/domain/models"
	"sahelbus/internal/seat"
)

// GET /api/trips?from=&to=&date=
func (a *API) SearchTrips(c *gin.Context) {
	trips, err := a.tripService().Search(c.Query("from"), c.Query("to"), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// GET /api/trips/:id
func (a *API) GetTrip(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	detail, err := a.tripService().Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GET /api/trips/:id/seatmap
//
// Returns reserved/available only. The seat a browsing user is
// currently picking is client state and never appears here.
func (a *API) GetSeatMap(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	layout, err := a.bookingService(c).ProjectLayout(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tripId": id, "layout": layout})
}

// GET /api/routes
func (a *API) ListRoutes(c *gin.Context) {
	routes, err := a.tripService().ListRoutes()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// GET /api/buses
func (a *API) ListBuses(c *gin.Context) {
	buses, err := a.tripService().ListBuses()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"buses": buses})
}

type createBusRequest struct {
	Name      string   `json:"name"`
	Rows      int      `json:"rows"`
	Columns   int      `json:"columns"`
	Amenities []string `json:"amenities"`
}

// POST /api/admin/buses
func (a *API) CreateBus(c *gin.Context) {
	var req createBusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	layout, err := seat.NewLayout(req.Rows, req.Columns)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	bus, err := a.tripService().CreateBus(models.Bus{
		Name:      req.Name,
		Capacity:  layout.Capacity(),
		Layout:    layout,
		Amenities: req.Amenities,
		IsActive:  true,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bus)
}

type createRouteRequest struct {
	From              string `json:"from"`
	To                string `json:"to"`
	DistanceKm        int    `json:"distance"`
	EstimatedDuration int    `json:"estimatedDuration"`
	Price             int64  `json:"price"`
}

// POST /api/admin/routes
func (a *API) CreateRoute(c *gin.Context) {
	var req createRouteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	route, err := a.tripService().CreateRoute(models.Route{
		From:              req.From,
		To:                req.To,
		DistanceKm:        req.DistanceKm,
		EstimatedDuration: req.EstimatedDuration,
		Price:             req.Price,
		IsActive:          true,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, route)
}

type createTripRequest struct {
	BusID         int64     `json:"busId"`
	RouteID       int64     `json:"routeId"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	Price         int64     `json:"price"`
}

// POST /api/admin/trips
func (a *API) CreateTrip(c *gin.Context) {
	var req createTripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trip, err := a.tripService().CreateTrip(models.Trip{
		BusID:         req.BusID,
		RouteID:       req.RouteID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Price:         req.Price,
		Status:        models.TripScheduled,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

type tripStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/admin/trips/:id/status
func (a *API) UpdateTripStatus(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req tripStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trip, err := a.tripService().UpdateTripStatus(id, models.TripStatus(req.Status))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}
