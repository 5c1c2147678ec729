package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anupamx/matrimony-backend/internal/domain"
	"github.com/anupamx/matrimony-backend/internal/usecase/match"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
	}
}

// FindMatches handles GET /users/:user_id/matches
// @Summary Find matches
// @Description Profiles passing the user's preference filters with shared interests
// @Tags matches
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{user_id}/matches [get]
func (h *MatchHandler) FindMatches(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid user_id",
		})
		return
	}

	matches, err := h.matchUseCase.FindMatches(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrPreferencesNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "user or preferences not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to find matches",
		})
		return
	}

	c.JSON(http.StatusOK, matches)
}
