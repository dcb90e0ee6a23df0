package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"hackathon-backend/errs"
	"hackathon-backend/middleware"
	"hackathon-backend/store"
)

// TeamHandler serves teams, which are created and joined outside this service.
type TeamHandler struct {
	teams store.Teams
}

func NewTeamHandler(teams store.Teams) *TeamHandler {
	return &TeamHandler{teams: teams}
}

func (h *TeamHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	t, err := h.teams.ByID(c.Request.Context(), id)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrTeamNotFound, zap.String("teamID", id.Hex())))
		return
	}

	c.JSON(http.StatusOK, t)
}
