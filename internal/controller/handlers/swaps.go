package handlers

import (
	"net/http"

	"github.com/Freeeeeet/slotswapper/internal/apperr"
	"github.com/gin-gonic/gin"
)

type SwapHandler struct {
	swaps SwapService
}

func NewSwapHandler(swaps SwapService) *SwapHandler {
	return &SwapHandler{swaps: swaps}
}

type proposeRequest struct {
	MySlotID    string `json:"mySlotId"`
	TheirSlotID string `json:"theirSlotId"`
}

func (h *SwapHandler) Propose(c *gin.Context) {
	var req proposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	swap, err := h.swaps.Propose(c.Request.Context(), UserID(c), req.MySlotID, req.TheirSlotID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, swap)
}

type respondRequest struct {
	Accept *bool `json:"accept"`
}

func (h *SwapHandler) Respond(c *gin.Context) {
	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}
	if req.Accept == nil {
		respondError(c, apperr.Validation("missing accept flag"))
		return
	}

	status, err := h.swaps.Respond(c.Request.Context(), UserID(c), c.Param("requestId"), *req.Accept)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}

func (h *SwapHandler) ListMine(c *gin.Context) {
	swaps, err := h.swaps.ListForUser(c.Request.Context(), UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, swaps)
}
