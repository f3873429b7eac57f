package rest

import (
	"errors"
	"net/http"

	"github.com/Gunvolt24/shop_backend/internal/shiprocket"
	"github.com/gin-gonic/gin"
)

// respondShipError — ошибки внешнего курьерского API отражаются как 502,
// чтобы клиент отличал их от ошибок самого сервиса.
func (h *Handler) respondShipError(c *gin.Context, err error) {
	var apiErr *shiprocket.APIError
	switch {
	case errors.Is(err, shiprocket.ErrAuthFailed):
		h.log.Errorf(c.Request.Context(), "shiprocket auth failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Courier service unavailable"})
	case errors.As(err, &apiErr):
		c.JSON(http.StatusBadGateway, gin.H{"message": apiErr.Message})
	default:
		h.respondError(c, err)
	}
}

// shipEnabled — интеграция с курьером опциональна; без настроенного
// клиента маршруты отвечают 503.
func (h *Handler) shipEnabled(c *gin.Context) bool {
	if h.ship == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Courier integration disabled"})
		return false
	}
	return true
}

func (h *Handler) shippingRates(c *gin.Context) {
	if !h.shipEnabled(c) {
		return
	}

	var req shiprocket.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	if req.PickupPostcode == "" || req.DeliveryPostcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Pickup and delivery postcodes are required"})
		return
	}

	rates, err := h.ship.GetRates(c.Request.Context(), req)
	if err != nil {
		h.respondShipError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", rates)
}

func (h *Handler) shippingLabel(c *gin.Context) {
	if !h.shipEnabled(c) {
		return
	}

	label, err := h.ship.PrintLabel(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		h.respondShipError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", label)
}

func (h *Handler) shippingTrackAWB(c *gin.Context) {
	if !h.shipEnabled(c) {
		return
	}

	track, err := h.ship.TrackByAWB(c.Request.Context(), c.Param("awb"))
	if err != nil {
		h.respondShipError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", track)
}
