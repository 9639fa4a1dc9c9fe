package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-board-api/internal/dto"
	apierrors "github.com/yukikurage/project-board-api/internal/errors"
	"github.com/yukikurage/project-board-api/internal/services"
	"github.com/yukikurage/project-board-api/internal/session"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	serializer  *session.Serializer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, serializer *session.Serializer) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		serializer:  serializer,
	}
}

// Register creates a password account and signs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string `json:"username" binding:"required,min=3"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.serializer.Serialize(c, user); err != nil {
		respondError(c, apierrors.Internal("Failed to save session", err))
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse[dto.UserDTO]{User: dto.ToUserDTO(*user)})
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.serializer.Serialize(c, user); err != nil {
		respondError(c, apierrors.Internal("Failed to save session", err))
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse[dto.UserDTO]{User: dto.ToUserDTO(*user)})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.serializer.Clear(c); err != nil {
		respondError(c, apierrors.Internal("Failed to logout", err))
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.serializer.Deserialize(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse[dto.ProfileDTO]{User: dto.ToProfileDTO(*user)})
}
