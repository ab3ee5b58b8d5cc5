package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wishwash-backend/internal/store"
)

type createHistoryRequest struct {
	LaundryID     int64      `json:"laundryId"`
	MachineID     *int64     `json:"machineId"`
	Timestamp     *time.Time `json:"timestamp"`
	AmountCharged float64    `json:"amountCharged"`
}

// CreateHistory handles POST /api/historico-lavagens. Entries are always
// attributed to the authenticated caller; reservations create theirs
// implicitly, this route serves the wash simulator.
func (h *Handler) CreateHistory(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req createHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	in := store.NewHistoryInput{
		UserID:        actor.UserID,
		LaundryID:     req.LaundryID,
		MachineID:     req.MachineID,
		AmountCharged: req.AmountCharged,
	}
	if req.Timestamp != nil {
		in.Timestamp = *req.Timestamp
	}

	entry, err := h.store.CreateHistory(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "wash history created successfully", "history": entry})
}

// HistoryByUser handles GET /api/historico-lavagens/usuario/:id (self-only).
func (h *Handler) HistoryByUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entries, err := h.store.HistoryByUser(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries, "total": len(entries)})
}

// HistoryByLaundry handles GET /api/historico-lavagens/lavanderia/:id
// (laundry owner only).
func (h *Handler) HistoryByLaundry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !h.requireLaundryOwner(c, id) {
		return
	}
	entries, err := h.store.HistoryByLaundry(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries, "total": len(entries)})
}

type rateHistoryRequest struct {
	Rating int `json:"rating"`
}

// RateHistory handles PUT /api/historico-lavagens/:id/avaliar: the
// wash-history rating channel.
func (h *Handler) RateHistory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req rateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating is required"})
		return
	}

	entry, err := h.store.RateHistoryEntry(c.Request.Context(), id, actor.UserID, req.Rating)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "wash rated successfully", "history": entry})
}
