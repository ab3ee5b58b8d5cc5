package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wishwash-backend/internal/apperr"
	"wishwash-backend/internal/auth"
	"wishwash-backend/internal/model"
	"wishwash-backend/internal/mw"
	"wishwash-backend/internal/store"
)

type signupRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

// Signup handles POST /api/usuarios.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.store.CreateUser(c.Request.Context(), store.NewUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "user created successfully", "user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/usuarios/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		// The same answer for unknown email and wrong password.
		fail(c, apperr.Unauthorized("invalid credentials"))
		return
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		fail(c, apperr.Internal("failed to issue token", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": token, "user": user})
}

// GetUser handles GET /api/usuarios/:id (self-only).
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListUsers handles GET /api/usuarios.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

type updateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUser handles PUT /api/usuarios/:id (self-only).
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.store.UpdateUser(c.Request.Context(), id, store.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user updated successfully", "user": user})
}

// DeleteUser handles DELETE /api/usuarios/:id (self-only).
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteUser(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}

// actorFrom builds the store-level actor from the authenticated claims.
func actorFrom(c *gin.Context) (store.Actor, bool) {
	claims, ok := mw.ClaimsFrom(c)
	if !ok {
		fail(c, apperr.Unauthorized("access token required"))
		return store.Actor{}, false
	}
	return store.Actor{UserID: claims.UserID, Role: claims.Role}, true
}
