package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"hackathon-backend/entity"
	"hackathon-backend/errs"
	"hackathon-backend/events"
	"hackathon-backend/internal/background"
	"hackathon-backend/middleware"
	"hackathon-backend/store"
)

// ProjectHandler serves projects and the prizes they can be entered for.
type ProjectHandler struct {
	store  *store.Store
	events events.Publisher
	bg     *background.Group
	event  *EventHandler
}

func NewProjectHandler(st *store.Store, pub events.Publisher, bg *background.Group, event *EventHandler) *ProjectHandler {
	return &ProjectHandler{
		store:  st,
		events: pub,
		bg:     bg,
		event:  event,
	}
}

type projectRequest struct {
	Team        string `json:"team"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Slides      string `json:"slides"`
	Video       string `json:"video"`
}

type prizeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Eligibility string `json:"eligibility"`
	Provider    string `json:"provider"`
}

// Create adds the project of a team to the current event. A team has at most one
// project per event, and only its members (or admins) may create it.
func (h *ProjectHandler) Create(c *gin.Context) {
	req := &projectRequest{}
	if err := middleware.ParseJSONBody(c, req); err != nil {
		middleware.ErrorResponse(c, err)
		return
	}
	if req.Team == "" {
		middleware.ErrorResponse(c, errs.ErrTeamRequired)
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(c, errs.ErrNameRequired)
		return
	}
	teamID, err := store.ParseID(req.Team)
	if err != nil {
		middleware.ErrorResponse(c, errs.ErrInvalidID)
		return
	}

	ctx := c.Request.Context()
	user := middleware.User(c)
	logger := middleware.Logger(c).With(zap.String("userID", user.ID.Hex()), zap.String("teamID", teamID.Hex()))

	event, err := h.event.Current(ctx)
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	_, err = h.store.Projects.ByTeamAndEvent(ctx, teamID, event.ID)
	if err == nil {
		middleware.ErrorResponse(c, errs.ErrProjectExists)
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		logger.Error("database error", zap.Error(err))
		middleware.ErrorResponse(c, errs.ErrDatabase)
		return
	}

	team, err := h.store.Teams.ByID(ctx, teamID)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrTeamNotFound, zap.String("teamID", teamID.Hex())))
		return
	}
	if !user.Admin && !team.HasMember(user.ID) {
		middleware.ErrorResponse(c, errs.ErrNotTeamMember)
		return
	}

	p := &entity.Project{
		Team:        teamID,
		Event:       event.ID,
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		Slides:      req.Slides,
		Video:       req.Video,
	}
	err = h.store.Projects.Create(ctx, p)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			middleware.ErrorResponse(c, errs.ErrProjectExists)
			return
		}

		logger.Error("database error", zap.Error(err))
		middleware.ErrorResponse(c, errs.ErrDatabase)
		return
	}

	logger.Info("project created", zap.String("projectID", p.ID.Hex()))
	publish(h.bg, h.events, events.New(events.ProjectCreated, p.ID.Hex(), map[string]string{
		"team":  teamID.Hex(),
		"event": event.ID.Hex(),
	}))

	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.store.Projects.List(c.Request.Context())
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrNotFound))
		return
	}

	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	p, err := h.store.Projects.ByID(c.Request.Context(), id)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrProjectNotFound, zap.String("projectID", id.Hex())))
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	patch := &entity.ProjectPatch{}
	if err := parsePatch(c, patch); err != nil {
		middleware.ErrorResponse(c, err)
		return
	}
	if patch.Empty() {
		middleware.ErrorResponse(c, errs.ErrInvalidUpdate)
		return
	}

	p, err := h.store.Projects.Update(c.Request.Context(), id, patch)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrProjectNotFound, zap.String("projectID", id.Hex())))
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	if err := h.store.Projects.Delete(c.Request.Context(), id); err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrProjectNotFound, zap.String("projectID", id.Hex())))
		return
	}

	middleware.Logger(c).Info("project deleted", zap.String("projectID", id.Hex()), zap.String("userID", middleware.User(c).ID.Hex()))
	c.Status(http.StatusOK)
}

// EnterPrize enters project :id for the prize named by ?prizeID=. Nothing changes
// unless both exist.
func (h *ProjectHandler) EnterPrize(c *gin.Context) {
	prizeParam := c.Query("prizeID")
	if prizeParam == "" {
		middleware.ErrorResponse(c, errs.ErrPrizeIDRequired)
		return
	}

	projectID, err := store.ParseID(c.Param("id"))
	if err != nil {
		middleware.ErrorResponse(c, errs.ErrInvalidProjectOrPrize)
		return
	}
	prizeID, err := store.ParseID(prizeParam)
	if err != nil {
		middleware.ErrorResponse(c, errs.ErrInvalidProjectOrPrize)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.Prizes.ByID(ctx, prizeID); err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrInvalidProjectOrPrize, zap.String("prizeID", prizeID.Hex())))
		return
	}

	p, err := h.store.Projects.AddPrize(ctx, projectID, prizeID)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrInvalidProjectOrPrize, zap.String("projectID", projectID.Hex())))
		return
	}

	publish(h.bg, h.events, events.New(events.PrizeEntered, projectID.Hex(), map[string]string{"prize": prizeID.Hex()}))
	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) CreatePrize(c *gin.Context) {
	req := &prizeRequest{}
	if err := middleware.ParseJSONBody(c, req); err != nil {
		middleware.ErrorResponse(c, err)
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(c, errs.ErrNameRequired)
		return
	}

	ctx := c.Request.Context()
	event, err := h.event.Current(ctx)
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	p := &entity.Prize{
		Event:       event.ID,
		Name:        req.Name,
		Description: req.Description,
		Eligibility: req.Eligibility,
		Provider:    req.Provider,
	}
	if err := h.store.Prizes.Create(ctx, p); err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrNotFound))
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) ListPrizes(c *gin.Context) {
	prizes, err := h.store.Prizes.List(c.Request.Context())
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrNotFound))
		return
	}

	c.JSON(http.StatusOK, prizes)
}

func (h *ProjectHandler) GetPrize(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	p, err := h.store.Prizes.ByID(c.Request.Context(), id)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrPrizeNotFound, zap.String("prizeID", id.Hex())))
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) UpdatePrize(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	patch := &entity.PrizePatch{}
	if err := parsePatch(c, patch); err != nil {
		middleware.ErrorResponse(c, err)
		return
	}
	if patch.Empty() {
		middleware.ErrorResponse(c, errs.ErrInvalidUpdate)
		return
	}

	p, err := h.store.Prizes.Update(c.Request.Context(), id, patch)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrPrizeNotFound, zap.String("prizeID", id.Hex())))
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) DeletePrize(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	if err := h.store.Prizes.Delete(c.Request.Context(), id); err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrPrizeNotFound, zap.String("prizeID", id.Hex())))
		return
	}

	c.Status(http.StatusOK)
}
