package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/:id/receipt
func (a *API) DownloadReceipt(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := a.receiptService(c).Generate(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/receipts/verify/:code
func (a *API) VerifyReceipt(c *gin.Context) {
	code := c.Param("code")
	res, err := a.receiptService(c).Verify(code)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":       true,
		"reservation": res,
	})
}
