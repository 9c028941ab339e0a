package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	h "sahelbus/internal/http/handlers"
	"sahelbus/internal/http/middleware"
)

func NewRouter(a *h.API) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route introuvable",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", a.Health)
		apiGroup.GET("/db-check", a.DBCheck)

		apiGroup.GET("/trips", a.SearchTrips)
		apiGroup.GET("/trips/:id", a.GetTrip)
		apiGroup.GET("/trips/:id/seatmap", a.GetSeatMap)
		apiGroup.GET("/routes", a.ListRoutes)
		apiGroup.GET("/buses", a.ListBuses)

		bookings := apiGroup.Group("/bookings")
		bookings.POST("", a.CreateBooking)
		bookings.GET("", a.ListBookings)
		bookings.GET("/:id", a.GetBooking)
		bookings.POST("/:id/cancel", a.CancelBooking)
		bookings.PUT("/:id/status", a.UpdateBookingStatus)
		bookings.GET("/:id/receipt", a.DownloadReceipt)

		apiGroup.POST("/payments/bpay/callback", a.BPayCallback)
		apiGroup.GET("/receipts/verify/:code", a.VerifyReceipt)

		auth := apiGroup.Group("/auth")
		auth.POST("/login", a.Login)
		auth.POST("/register", a.Register)

		admin := apiGroup.Group("/admin")
		admin.Use(middleware.Auth(a.JWTSecret), middleware.RequireRoles("admin"))
		admin.POST("/buses", a.CreateBus)
		admin.POST("/routes", a.CreateRoute)
		admin.POST("/trips", a.CreateTrip)
		admin.PUT("/trips/:id/status", a.UpdateTripStatus)
	}

	return r
}
