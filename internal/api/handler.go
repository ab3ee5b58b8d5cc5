package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wishwash-backend/config"
	"wishwash-backend/internal/apperr"
	"wishwash-backend/internal/auth"
	"wishwash-backend/internal/mail"
	"wishwash-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store  store.Store
	issuer *auth.TokenIssuer
	mailer *mail.Mailer
	cfg    *config.Config
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, issuer *auth.TokenIssuer, mailer *mail.Mailer, cfg *config.Config) *Handler {
	return &Handler{
		store:  s,
		issuer: issuer,
		mailer: mailer,
		cfg:    cfg,
	}
}

// fail maps an application error to its HTTP status and a JSON error body.
// Internal causes are logged server side, never serialized to the client.
func fail(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal("internal server error", err)
	}
	if appErr.Kind == apperr.KindInternal {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus(), gin.H{"error": appErr.Message})
}

// pathID parses the named path parameter as an entity ID.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": name + " must be a valid number"})
		return 0, false
	}
	return id, true
}
