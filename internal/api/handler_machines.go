package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"wishwash-backend/internal/model"
	"wishwash-backend/internal/parse"
	"wishwash-backend/internal/schedule"
	"wishwash-backend/internal/store"
)

type createMachineRequest struct {
	Name         string  `json:"name"`
	Capacity     int     `json:"capacity"`
	PricePerWash float64 `json:"pricePerWash"`
	Notes        string  `json:"notes"`
	LaundryID    int64   `json:"laundryId"`
}

// CreateMachine handles POST /api/maquinas (laundry owner only).
func (h *Handler) CreateMachine(c *gin.Context) {
	var req createMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.LaundryID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "machine name and laundry id are required"})
		return
	}
	if !h.requireLaundryOwner(c, req.LaundryID) {
		return
	}

	machine, err := h.store.CreateMachine(c.Request.Context(), store.NewMachineInput{
		Name:         req.Name,
		Capacity:     req.Capacity,
		PricePerWash: req.PricePerWash,
		Notes:        req.Notes,
		LaundryID:    req.LaundryID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "machine created successfully", "machine": machine})
}

// MachinesByLaundry handles GET /api/maquinas/lavanderia/:id.
func (h *Handler) MachinesByLaundry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	machines, err := h.store.MachinesByLaundry(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"machines": machines, "total": len(machines)})
}

// MachineStatusCounts handles GET /api/maquinas/lavanderia/:id/status.
func (h *Handler) MachineStatusCounts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	counts, err := h.store.StatusCounts(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// GetMachine handles GET /api/maquinas/:id.
func (h *Handler) GetMachine(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	machine, err := h.store.GetMachine(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"machine": machine})
}

type updateMachineRequest struct {
	Name         *string              `json:"name"`
	Capacity     *int                 `json:"capacity"`
	PricePerWash *float64             `json:"pricePerWash"`
	Notes        *string              `json:"notes"`
	Status       *model.MachineStatus `json:"status"`
}

// UpdateMachine handles PUT /api/maquinas/:id (laundry owner only).
func (h *Handler) UpdateMachine(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	machine, err := h.store.GetMachine(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if !h.requireLaundryOwner(c, machine.LaundryID) {
		return
	}

	var req updateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.store.UpdateMachine(c.Request.Context(), id, store.UpdateMachineInput{
		Name:         req.Name,
		Capacity:     req.Capacity,
		PricePerWash: req.PricePerWash,
		Notes:        req.Notes,
		Status:       req.Status,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "machine updated successfully", "machine": updated})
}

// DeleteMachine handles DELETE /api/maquinas/:id (laundry owner only).
func (h *Handler) DeleteMachine(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	machine, err := h.store.GetMachine(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if !h.requireLaundryOwner(c, machine.LaundryID) {
		return
	}
	if err := h.store.DeleteMachine(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "machine deleted successfully"})
}

type setStatusRequest struct {
	Status model.MachineStatus `json:"status"`
}

// SetMachineStatus handles PUT /api/maquinas/:id/status, the role-gated
// transition (owners move freely on their machines, customers reserve).
func (h *Handler) SetMachineStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	machine, err := h.store.SetMachineStatus(c.Request.Context(), id, req.Status, actor)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "machine status updated successfully", "machine": machine})
}

// DerivedMachineStatus handles GET /api/maquinas/:id/status?at=. It projects
// availability from the booking calendar, independent of the stored status
// field; the two can legitimately disagree.
func (h *Handler) DerivedMachineStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	at := time.Now()
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'at' timestamp format, use RFC3339"})
			return
		}
		at = parsed
	}

	if _, err := h.store.GetMachine(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	bookings, err := h.store.BookingsInRange(c.Request.Context(), id, at, at.Add(time.Nanosecond))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"machineId": id,
		"at":        at,
		"status":    schedule.DerivedStatus(at, bookings),
	})
}

// MachineSlots handles GET /api/maquinas/:id/horarios?date=&intervaloMin=.
func (h *Handler) MachineSlots(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return
	}
	intervalMin, err := strconv.Atoi(c.DefaultQuery("intervaloMin", "60"))
	if err != nil || intervalMin <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "intervaloMin must be a positive number of minutes"})
		return
	}

	machine, err := h.store.GetMachine(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	window := h.bookingWindow(machine)
	bookings, err := h.store.BookingsInRange(c.Request.Context(), id, day, day.Add(24*time.Hour))
	if err != nil {
		fail(c, err)
		return
	}

	slots := schedule.Slots(day, window, time.Duration(intervalMin)*time.Minute, bookings)
	c.JSON(http.StatusOK, gin.H{"machineId": id, "date": c.Query("date"), "slots": slots})
}

// bookingWindow derives the bookable day window from the laundry's opening
// hours, falling back to the configured default when the text is unusable.
func (h *Handler) bookingWindow(machine *model.Machine) parse.DayWindow {
	if w, err := parse.ParseHours(machine.Laundry.Hours); err == nil {
		return w
	}
	return parse.DayWindow{
		OpenMinute:  h.cfg.Booking.DefaultOpenHour * 60,
		CloseMinute: h.cfg.Booking.DefaultCloseHour * 60,
	}
}

type createBookingRequest struct {
	StartsAt time.Time `json:"startsAt" binding:"required"`
	EndsAt   time.Time `json:"endsAt" binding:"required"`
}

// CreateBooking handles POST /api/maquinas/:id/agendamentos.
func (h *Handler) CreateBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startsAt and endsAt are required"})
		return
	}

	booking, err := h.store.CreateBooking(c.Request.Context(), id, actor.UserID, req.StartsAt, req.EndsAt)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "booking created successfully", "booking": booking})
}

// CancelBooking handles DELETE /api/agendamentos/:id.
func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	if err := h.store.CancelBooking(c.Request.Context(), id, actor.UserID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking canceled successfully"})
}
