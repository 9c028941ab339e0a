package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"sahelbus/internal/http/middleware"
	"sahelbus/internal/ledger"
	"sahelbus/internal/services"
)

// API bundles the injected stores. Service values are cheap and get
// built per request so they carry the request id into the logs.
type API struct {
	DB *sql.DB // nil in demo mode

	Trips    services.TripStore
	Buses    services.BusStore
	Routes   services.RouteStore
	Users    services.UserStore
	Payments services.PaymentStore
	Ledger   ledger.Store

	Locks     *services.TripLocks
	Notifier  services.Notifier
	JWTSecret []byte
}

func (a *API) bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Trips:     a.Trips,
		Buses:     a.Buses,
		Ledger:    a.Ledger,
		Locks:     a.Locks,
		Notifier:  a.Notifier,
		RequestID: middleware.GetRequestID(c),
	}
}

func (a *API) tripService() services.TripService {
	return services.TripService{
		Trips:  a.Trips,
		Buses:  a.Buses,
		Routes: a.Routes,
		Ledger: a.Ledger,
	}
}

func (a *API) paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		Ledger:    a.Ledger,
		Payments:  a.Payments,
		RequestID: middleware.GetRequestID(c),
	}
}

func (a *API) receiptService(c *gin.Context) services.ReceiptService {
	return services.ReceiptService{
		Ledger:    a.Ledger,
		Trips:     a.Trips,
		Routes:    a.Routes,
		Buses:     a.Buses,
		RequestID: middleware.GetRequestID(c),
	}
}
