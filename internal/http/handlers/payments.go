package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type bpayCallbackRequest struct {
	ReservationID int64  `json:"reservationId"`
	TransactionID string `json:"transactionId"`
}

// POST /api/payments/bpay/callback
//
// The mock BPay gateway redirects here after a payment. It only ever
// reports success; failures simply never call back.
func (a *API) BPayCallback(c *gin.Context) {
	var req bpayCallbackRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.ReservationID <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "reservationId invalide", nil)
		return
	}
	res, err := a.paymentService(c).BPayCallback(req.ReservationID, req.TransactionID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
