package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wishwash-backend/internal/apperr"
	"wishwash-backend/internal/store"
)

type registerLaundryRequest struct {
	Owner struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"owner"`
	Laundry struct {
		Name      string  `json:"name"`
		Address   string  `json:"address"`
		Phone     string  `json:"phone"`
		Hours     string  `json:"hours"`
		Services  string  `json:"services"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"laundry"`
}

// RegisterLaundry handles POST /api/lavanderias: the atomic owner+laundry
// registration.
func (h *Handler) RegisterLaundry(c *gin.Context) {
	var req registerLaundryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	owner, laundry, err := h.store.RegisterOwnerWithLaundry(c.Request.Context(),
		store.OwnerInput{
			Name:     req.Owner.Name,
			Email:    req.Owner.Email,
			Password: req.Owner.Password,
		},
		store.LaundryInput{
			Name:      req.Laundry.Name,
			Address:   req.Laundry.Address,
			Phone:     req.Laundry.Phone,
			Hours:     req.Laundry.Hours,
			Services:  req.Laundry.Services,
			Latitude:  req.Laundry.Latitude,
			Longitude: req.Laundry.Longitude,
		})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "owner and laundry registered successfully",
		"owner":   owner,
		"laundry": laundry,
	})
}

// ListLaundries handles GET /api/lavanderias.
func (h *Handler) ListLaundries(c *gin.Context) {
	laundries, err := h.store.ListLaundries(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"laundries": laundries, "total": len(laundries)})
}

// GetLaundry handles GET /api/lavanderias/:id.
func (h *Handler) GetLaundry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	laundry, err := h.store.GetLaundry(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"laundry": laundry})
}

// LaundriesByOwner handles GET /api/lavanderias/proprietario/:id (self-only).
func (h *Handler) LaundriesByOwner(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	laundries, err := h.store.LaundriesByOwner(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"laundries": laundries, "total": len(laundries)})
}

type updateLaundryRequest struct {
	Name      *string  `json:"name"`
	Address   *string  `json:"address"`
	Phone     *string  `json:"phone"`
	Hours     *string  `json:"hours"`
	Services  *string  `json:"services"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// UpdateLaundry handles PUT /api/lavanderias/:id (owner only).
func (h *Handler) UpdateLaundry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !h.requireLaundryOwner(c, id) {
		return
	}

	var req updateLaundryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	laundry, err := h.store.UpdateLaundry(c.Request.Context(), id, store.UpdateLaundryInput{
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Hours:     req.Hours,
		Services:  req.Services,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "laundry updated successfully", "laundry": laundry})
}

// DeleteLaundry handles DELETE /api/lavanderias/:id (owner only).
func (h *Handler) DeleteLaundry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !h.requireLaundryOwner(c, id) {
		return
	}
	if err := h.store.DeleteLaundry(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "laundry deleted successfully"})
}

// requireLaundryOwner aborts the request unless the authenticated user owns
// the laundry.
func (h *Handler) requireLaundryOwner(c *gin.Context, laundryID int64) bool {
	actor, ok := actorFrom(c)
	if !ok {
		return false
	}
	laundry, err := h.store.GetLaundry(c.Request.Context(), laundryID)
	if err != nil {
		fail(c, err)
		return false
	}
	if laundry.OwnerID != actor.UserID {
		fail(c, apperr.Forbidden("you can only change your own laundries"))
		return false
	}
	return true
}
