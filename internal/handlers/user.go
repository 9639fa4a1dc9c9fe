package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-board-api/internal/dto"
	apierrors "github.com/yukikurage/project-board-api/internal/errors"
	"github.com/yukikurage/project-board-api/internal/services"
	"github.com/yukikurage/project-board-api/internal/utils"
)

// UserHandler serves direct user management endpoints.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser creates a user without signing it in
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Username    string  `json:"username" binding:"required,min=3"`
		Email       string  `json:"email" binding:"required,email"`
		Password    string  `json:"password" binding:"omitempty,min=6"`
		DisplayName *string `json:"displayName"`
		AvatarURL   *string `json:"avatarUrl" binding:"omitempty,url"`
	}

	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDetailDTO(*user))
}

// AddPoints adjusts a user's points
func (h *UserHandler) AddPoints(c *gin.Context) {
	type AddPointsRequest struct {
		Delta *int `json:"delta" binding:"required"`
	}

	userID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	var req AddPointsRequest
	if !bindJSON(c, &req) {
		return
	}

	points, err := h.userService.AddPoints(c.Request.Context(), userID, *req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PointsResponse{UserID: userID, Points: points})
}
