package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"wishwash-backend/internal/model"
)

type supportRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// CreateSupportTicket handles POST /api/suporte. The ticket is persisted
// first; the notification email is best-effort and its failure never
// surfaces to the caller.
func (h *Handler) CreateSupportTicket(c *gin.Context) {
	var req supportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ticket := model.SupportTicket{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := h.store.CreateSupportTicket(c.Request.Context(), &ticket); err != nil {
		fail(c, err)
		return
	}

	if h.mailer != nil {
		if err := h.mailer.SendSupportTicket(&ticket); err != nil {
			log.Printf("support ticket %d stored but email failed: %v", ticket.ID, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"message": "support request received"})
}
