package league

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/RohanMehta-11/ligo/internal/access"
	"github.com/RohanMehta-11/ligo/internal/middleware"
	"github.com/RohanMehta-11/ligo/pkg/responses"
	"github.com/RohanMehta-11/ligo/pkg/validator"
)

type LeagueController struct {
	repo   LeagueRepository
	access *access.Service
}

func NewLeagueController(repo LeagueRepository, accessService *access.Service) *LeagueController {
	return &LeagueController{repo: repo, access: accessService}
}

func pagination(ctx *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// CreateLeague godoc
// @Summary Create a league
// @Description Creates a league and grants the creator the league manager role
// @Tags Leagues
// @Accept json
// @Produce json
// @Param league body CreateLeagueRequest true "League details"
// @Success 201 {object} responses.SuccessResponse "League created"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /leagues [post]
// @Security Bearer
func (lc *LeagueController) CreateLeague(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	var req CreateLeagueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}

	league := &League{
		Name:        req.Name,
		Description: req.Description,
		Season:      req.Season,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		CreatedByID: callerID,
	}
	if err := lc.repo.CreateLeague(league); err != nil {
		log.Error().Err(err).Msg("league creation failed")
		responses.InternalErrorJSON(ctx)
		return
	}

	if _, err := lc.access.Grant(callerID, access.RoleLeagueManager, access.LeagueScope(league.ID)); err != nil {
		log.Error().Err(err).Uint("league_id", league.ID).Msg("creator grant failed")
		responses.InternalErrorJSON(ctx)
		return
	}

	responses.SuccessJSON(ctx, http.StatusCreated, "League created", league)
}

// GetLeague godoc
// @Summary Get a league by id
// @Tags Leagues
// @Produce json
// @Param league_id path int true "League ID"
// @Success 200 {object} responses.SuccessResponse "League"
// @Failure 404 {object} responses.ErrorResponse "League not found"
// @Router /leagues/{league_id} [get]
func (lc *LeagueController) GetLeague(ctx *gin.Context) {
	leagueID, err := strconv.ParseUint(ctx.Param("league_id"), 10, 32)
	if err != nil {
		responses.ErrorJSON(ctx, http.StatusBadRequest, "Invalid league id")
		return
	}

	league, err := lc.repo.GetLeagueByID(uint(leagueID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFoundJSON(ctx, "League")
			return
		}
		log.Error().Err(err).Msg("league lookup failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "", league)
}

// ListLeagues godoc
// @Summary List leagues
// @Tags Leagues
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse "Leagues"
// @Router /leagues [get]
func (lc *LeagueController) ListLeagues(ctx *gin.Context) {
	page, limit := pagination(ctx)

	leagues, total, err := lc.repo.GetAllLeagues(page, limit)
	if err != nil {
		log.Error().Err(err).Msg("league listing failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.PaginatedJSON(ctx, leagues, page, limit, total)
}

// UpdateLeague godoc
// @Summary Update a league
// @Tags Leagues
// @Accept json
// @Produce json
// @Param league_id path int true "League ID"
// @Param league body UpdateLeagueRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse "League updated"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "League not found"
// @Router /leagues/{league_id} [put]
// @Security Bearer
func (lc *LeagueController) UpdateLeague(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}
	leagueID, err := strconv.ParseUint(ctx.Param("league_id"), 10, 32)
	if err != nil {
		responses.ErrorJSON(ctx, http.StatusBadRequest, "Invalid league id")
		return
	}

	allowed, err := lc.access.CanManageLeague(callerID, uint(leagueID))
	if err != nil {
		log.Error().Err(err).Msg("authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	var req UpdateLeagueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}

	league, err := lc.repo.GetLeagueByID(uint(leagueID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFoundJSON(ctx, "League")
			return
		}
		log.Error().Err(err).Msg("league lookup failed")
		responses.InternalErrorJSON(ctx)
		return
	}

	if req.Name != nil {
		league.Name = *req.Name
	}
	if req.Description != nil {
		league.Description = *req.Description
	}
	if req.Season != nil {
		league.Season = *req.Season
	}
	if req.StartsAt != nil {
		league.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		league.EndsAt = req.EndsAt
	}

	if err := lc.repo.UpdateLeague(league); err != nil {
		log.Error().Err(err).Msg("league update failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "League updated", league)
}

// DeleteLeague godoc
// @Summary Delete a league
// @Tags Leagues
// @Produce json
// @Param league_id path int true "League ID"
// @Success 200 {object} responses.SuccessResponse "League deleted"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Router /leagues/{league_id} [delete]
// @Security Bearer
func (lc *LeagueController) DeleteLeague(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}
	leagueID, err := strconv.ParseUint(ctx.Param("league_id"), 10, 32)
	if err != nil {
		responses.ErrorJSON(ctx, http.StatusBadRequest, "Invalid league id")
		return
	}

	allowed, err := lc.access.CanManageLeague(callerID, uint(leagueID))
	if err != nil {
		log.Error().Err(err).Msg("authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	if err := lc.repo.DeleteLeague(uint(leagueID)); err != nil {
		log.Error().Err(err).Msg("league deletion failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "League deleted", nil)
}
