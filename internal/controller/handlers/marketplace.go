package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type MarketplaceHandler struct {
	marketplace MarketplaceService
}

func NewMarketplaceHandler(marketplace MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{marketplace: marketplace}
}

func (h *MarketplaceHandler) List(c *gin.Context) {
	slots, err := h.marketplace.List(c.Request.Context(), UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}
