package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"commerce-crm-sync/internal/domain"
	"commerce-crm-sync/internal/service/ordersync"
)

const (
	msgSynced       = "Order synced successfully."
	msgNotFound     = "Order not found in Shopify."
	msgMissingEmail = "Customer email is missing."
	msgMissingID    = "Order ID is required."
	msgFailed       = "Failed to sync order."
)

// orderID accepts both "1001" and 1001 from the form payload.
type orderID string

func (o *orderID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*o = orderID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("orderId must be a string or number")
	}
	*o = orderID(n.String())
	return nil
}

type syncOrderRequest struct {
	OrderID orderID `json:"orderId"`
}

type syncOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func syncOrderHandler(syncer OrderSyncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req syncOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, syncOrderResponse{Message: msgMissingID, Error: err.Error()})
			return
		}
		id := strings.TrimSpace(string(req.OrderID))
		if id == "" {
			c.JSON(http.StatusBadRequest, syncOrderResponse{Message: msgMissingID})
			return
		}

		// an accepted sync is not cancelled by the caller going away
		ctx := context.WithoutCancel(c.Request.Context())

		_, err := syncer.Sync(ctx, id)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, syncOrderResponse{Success: true, Message: msgSynced})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, syncOrderResponse{Message: msgNotFound})
		case errors.Is(err, ordersync.ErrMissingEmail):
			c.JSON(http.StatusBadRequest, syncOrderResponse{Message: msgMissingEmail})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, syncOrderResponse{Message: msgFailed, Error: err.Error()})
		}
	}
}
