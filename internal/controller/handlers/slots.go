package handlers

import (
	"net/http"

	"github.com/Freeeeeet/slotswapper/internal/apperr"
	"github.com/Freeeeeet/slotswapper/internal/model"
	"github.com/Freeeeeet/slotswapper/internal/service"
	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	slots SlotService
}

func NewSlotHandler(slots SlotService) *SlotHandler {
	return &SlotHandler{slots: slots}
}

func (h *SlotHandler) ListMine(c *gin.Context) {
	slots, err := h.slots.ListMine(c.Request.Context(), UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}

type createSlotRequest struct {
	Title     string `json:"title"`
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime"`
}

func (h *SlotHandler) Create(c *gin.Context) {
	var req createSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	slot, err := h.slots.Create(c.Request.Context(), UserID(c), req.Title, req.StartTime, req.EndTime)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

type updateSlotRequest struct {
	Title     *string           `json:"title"`
	StartTime *int64            `json:"startTime"`
	EndTime   *int64            `json:"endTime"`
	Status    *model.SlotStatus `json:"status"`
}

func (h *SlotHandler) Update(c *gin.Context) {
	var req updateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	upd := service.SlotUpdate{
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    req.Status,
	}

	slot, err := h.slots.Update(c.Request.Context(), UserID(c), c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

func (h *SlotHandler) Delete(c *gin.Context) {
	if err := h.slots.Delete(c.Request.Context(), UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
