package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anupamx/matrimony-backend/internal/domain"
	"github.com/anupamx/matrimony-backend/internal/usecase/user"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase *user.UserUseCase
}

func NewUserHandler(userUseCase *user.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// Create handles POST /users/
// @Summary Register user
// @Description Create a profile with contact and partner preferences
// @Tags users
// @Accept json
// @Produce json
// @Param request body user.CreateUserRequest true "User data"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/ [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req user.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	profile, err := h.userUseCase.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrContactAlreadyRegistered) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "Email or Phone number already registered",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to create user",
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// List handles GET /users/
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} domain.Profile
// @Failure 500 {object} ErrorResponse
// @Router /users/ [get]
func (h *UserHandler) List(c *gin.Context) {
	profiles, err := h.userUseCase.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to list users",
		})
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// Get handles GET /users/:user_id
// @Summary Get user
// @Tags users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{user_id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid user_id",
		})
		return
	}

	profile, err := h.userUseCase.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "user not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to get user",
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Update handles PUT /users/:user_id
// @Summary Update user
// @Description Replace the profile and, when present, its contact and preferences
// @Tags users
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param request body user.CreateUserRequest true "User data"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{user_id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid user_id",
		})
		return
	}

	var req user.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	profile, err := h.userUseCase.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "user not found",
			})
		case errors.Is(err, domain.ErrContactAlreadyRegistered):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "Email or Phone number already registered",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "failed to update user",
			})
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Delete handles DELETE /users/:user_id
// @Summary Delete user
// @Description Delete a profile together with its contact and preferences
// @Tags users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{user_id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid user_id",
		})
		return
	}

	if err := h.userUseCase.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "user not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to delete user",
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "User deleted successfully",
	})
}

// SuggestBio handles POST /bio/suggestions
// @Summary Suggest profile descriptions
// @Tags users
// @Accept json
// @Produce json
// @Param request body user.SuggestBioRequest true "Profile data"
// @Success 200 {array} string
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /bio/suggestions [post]
func (h *UserHandler) SuggestBio(c *gin.Context) {
	var req user.SuggestBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	suggestions, err := h.userUseCase.SuggestBio(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to generate bio suggestions",
		})
		return
	}

	c.JSON(http.StatusOK, suggestions)
}
