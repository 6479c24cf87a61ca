package match

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

type MatchController struct {
	repo   MatchRepository
	access *access.Service
}

func NewMatchController(repo MatchRepository, accessService *access.Service) *MatchController {
	return &MatchController{repo: repo, access: accessService}
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

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		responses.ErrorJSON(ctx, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// CreateMatch godoc
// @Summary Schedule a match
// @Tags Matches
// @Accept json
// @Produce json
// @Param match body CreateMatchRequest true "Match details"
// @Success 201 {object} responses.SuccessResponse "Match scheduled"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid input"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Router /matches [post]
// @Security Bearer
func (mc *MatchController) CreateMatch(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	var req CreateMatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}

	allowed, err := mc.access.CanManageLeague(callerID, req.LeagueID)
	if err != nil {
		log.Error().Err(err).Msg("authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	m := &Match{
		LeagueID:    req.LeagueID,
		HomeTeamID:  req.HomeTeamID,
		AwayTeamID:  req.AwayTeamID,
		ScheduledAt: req.ScheduledAt,
		Status:      StatusScheduled,
		Venue:       req.Venue,
	}
	if err := mc.repo.CreateMatch(m); err != nil {
		log.Error().Err(err).Msg("match creation failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusCreated, "Match scheduled", m)
}

// GetMatch godoc
// @Summary Get a match by id
// @Tags Matches
// @Produce json
// @Param match_id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse "Match"
// @Failure 404 {object} responses.ErrorResponse "Match not found"
// @Router /matches/{match_id} [get]
func (mc *MatchController) GetMatch(ctx *gin.Context) {
	matchID, ok := pathID(ctx, "match_id")
	if !ok {
		return
	}

	m, err := mc.repo.GetMatchByID(matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFoundJSON(ctx, "Match")
			return
		}
		log.Error().Err(err).Msg("match lookup failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "", m)
}

// ListMatchesByLeague godoc
// @Summary List matches in a league
// @Tags Matches
// @Produce json
// @Param league_id path int true "League ID"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse "Matches"
// @Router /leagues/{league_id}/matches [get]
func (mc *MatchController) ListMatchesByLeague(ctx *gin.Context) {
	leagueID, ok := pathID(ctx, "league_id")
	if !ok {
		return
	}
	page, limit := pagination(ctx)

	status := Status(ctx.Query("status"))
	if status != "" && !status.Valid() {
		responses.ErrorJSON(ctx, http.StatusBadRequest, "Invalid status filter")
		return
	}

	matches, total, err := mc.repo.GetMatchesByLeague(leagueID, status, page, limit)
	if err != nil {
		log.Error().Err(err).Msg("match listing failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.PaginatedJSON(ctx, matches, page, limit, total)
}

// UpdateMatch godoc
// @Summary Update a match's schedule or status
// @Tags Matches
// @Accept json
// @Produce json
// @Param match_id path int true "Match ID"
// @Param match body UpdateMatchRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse "Match updated"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Match not found"
// @Router /matches/{match_id} [put]
// @Security Bearer
func (mc *MatchController) UpdateMatch(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}
	matchID, ok := pathID(ctx, "match_id")
	if !ok {
		return
	}

	m, err := mc.repo.GetMatchByID(matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFoundJSON(ctx, "Match")
			return
		}
		log.Error().Err(err).Msg("match lookup failed")
		responses.InternalErrorJSON(ctx)
		return
	}

	allowed, err := mc.access.CanManageLeague(callerID, m.LeagueID)
	if err != nil {
		log.Error().Err(err).Msg("authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	var req UpdateMatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		responses.ErrorJSON(ctx, http.StatusBadRequest, "Invalid status")
		return
	}

	if req.ScheduledAt != nil {
		m.ScheduledAt = *req.ScheduledAt
	}
	if req.Venue != nil {
		m.Venue = *req.Venue
	}
	if req.Status != nil {
		m.Status = *req.Status
	}

	if err := mc.repo.UpdateMatch(m); err != nil {
		log.Error().Err(err).Msg("match update failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "Match updated", m)
}

// UpdateScore godoc
// @Summary Record a match score
// @Description Match managers and referee commission members of the league may post scores
// @Tags Matches
// @Accept json
// @Produce json
// @Param match_id path int true "Match ID"
// @Param score body UpdateScoreRequest true "Score"
// @Success 200 {object} responses.SuccessResponse "Score recorded"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Match not found"
// @Router /matches/{match_id}/score [put]
// @Security Bearer
func (mc *MatchController) UpdateScore(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}
	matchID, ok := pathID(ctx, "match_id")
	if !ok {
		return
	}

	m, err := mc.repo.GetMatchByID(matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFoundJSON(ctx, "Match")
			return
		}
		log.Error().Err(err).Msg("match lookup failed")
		responses.InternalErrorJSON(ctx)
		return
	}

	allowed, err := mc.access.CanManageMatch(callerID, m.LeagueID)
	if err != nil {
		log.Error().Err(err).Msg("authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	var req UpdateScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		responses.ErrorJSON(ctx, http.StatusBadRequest, "Invalid status")
		return
	}

	m.HomeScore = req.HomeScore
	m.AwayScore = req.AwayScore
	if req.Status != nil {
		m.Status = *req.Status
	} else if m.Status == StatusScheduled {
		m.Status = StatusInProgress
	}

	if err := mc.repo.UpdateMatch(m); err != nil {
		log.Error().Err(err).Msg("score update failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "Score recorded", m)
}

// DeleteMatch godoc
// @Summary Delete a match
// @Tags Matches
// @Produce json
// @Param match_id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse "Match deleted"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Router /matches/{match_id} [delete]
// @Security Bearer
func (mc *MatchController) DeleteMatch(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}
	matchID, ok := pathID(ctx, "match_id")
	if !ok {
		return
	}

	m, err := mc.repo.GetMatchByID(matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFoundJSON(ctx, "Match")
			return
		}
		log.Error().Err(err).Msg("match lookup failed")
		responses.InternalErrorJSON(ctx)
		return
	}

	allowed, err := mc.access.CanManageLeague(callerID, m.LeagueID)
	if err != nil {
		log.Error().Err(err).Msg("authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	if err := mc.repo.DeleteMatch(matchID); err != nil {
		log.Error().Err(err).Msg("match deletion failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "Match deleted", nil)
}
