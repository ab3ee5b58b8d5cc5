package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wishwash-backend/internal/model"
)

type submitReviewRequest struct {
	LaundryID int64  `json:"laundryId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// reviewResponse joins a review with the minimal public identity of its
// author.
type reviewResponse struct {
	ID        int64            `json:"id"`
	LaundryID int64            `json:"laundryId"`
	Rating    int              `json:"rating"`
	Comment   string           `json:"comment"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	User      model.PublicUser `json:"user"`
}

// SubmitReview handles POST /api/avaliacoes: the usage-gated review upsert.
func (h *Handler) SubmitReview(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.LaundryID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "laundryId and rating are required"})
		return
	}

	review, err := h.store.SubmitReview(c.Request.Context(), actor.UserID, req.LaundryID, req.Rating, req.Comment)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "review saved successfully", "review": review})
}

// ReviewsForLaundry handles GET /api/avaliacoes/lavanderia/:id, newest
// first.
func (h *Handler) ReviewsForLaundry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	reviews, err := h.store.ReviewsForLaundry(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]reviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, reviewResponse{
			ID:        r.ID,
			LaundryID: r.LaundryID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			User:      model.PublicUser{ID: r.User.ID, Name: r.User.Name},
		})
	}
	c.JSON(http.StatusOK, gin.H{"reviews": out, "total": len(out)})
}

// UserReview handles GET /api/avaliacoes/usuario/:id: the caller's own
// review for the laundry in the path.
func (h *Handler) UserReview(c *gin.Context) {
	laundryID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	review, err := h.store.UserReview(c.Request.Context(), actor.UserID, laundryID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

// CanReview handles GET /api/avaliacoes/verificar/:id.
func (h *Handler) CanReview(c *gin.Context) {
	laundryID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	canReview, err := h.store.CanUserReview(c.Request.Context(), actor.UserID, laundryID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"canReview": canReview, "laundryId": laundryID})
}

// DeleteReview handles DELETE /api/avaliacoes/:id (author only).
func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	if err := h.store.DeleteReview(c.Request.Context(), id, actor.UserID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted successfully"})
}
