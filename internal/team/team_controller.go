package team

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

type TeamController struct {
	repo        TeamRepository
	memberships access.MembershipRepository
	access      *access.Service
}

func NewTeamController(repo TeamRepository, memberships access.MembershipRepository, accessService *access.Service) *TeamController {
	return &TeamController{
		repo:        repo,
		memberships: memberships,
		access:      accessService,
	}
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

// CreateTeam godoc
// @Summary Create a team
// @Description Creates a team in a league and grants the creator the manager role for it
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team details"
// @Success 201 {object} responses.SuccessResponse "Team created"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /teams [post]
// @Security Bearer
func (tc *TeamController) CreateTeam(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	var req CreateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}

	team := &Team{
		LeagueID:    req.LeagueID,
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
		CreatedByID: callerID,
	}
	if err := tc.repo.CreateTeam(team); err != nil {
		log.Error().Err(err).Msg("team creation failed")
		responses.InternalErrorJSON(ctx)
		return
	}

	if _, err := tc.access.Grant(callerID, access.RoleManager, access.TeamScope(team.ID)); err != nil {
		log.Error().Err(err).Uint("team_id", team.ID).Msg("creator grant failed")
		responses.InternalErrorJSON(ctx)
		return
	}

	responses.SuccessJSON(ctx, http.StatusCreated, "Team created", team)
}

// GetTeam godoc
// @Summary Get a team by id
// @Tags Teams
// @Produce json
// @Param team_id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse "Team"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Router /teams/{team_id} [get]
func (tc *TeamController) GetTeam(ctx *gin.Context) {
	teamID, ok := pathID(ctx, "team_id")
	if !ok {
		return
	}

	team, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFoundJSON(ctx, "Team")
			return
		}
		log.Error().Err(err).Msg("team lookup failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "", team)
}

// ListTeamsByLeague godoc
// @Summary List teams in a league
// @Tags Teams
// @Produce json
// @Param league_id path int true "League ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse "Teams"
// @Router /leagues/{league_id}/teams [get]
func (tc *TeamController) ListTeamsByLeague(ctx *gin.Context) {
	leagueID, ok := pathID(ctx, "league_id")
	if !ok {
		return
	}
	page, limit := pagination(ctx)

	teams, total, err := tc.repo.GetTeamsByLeague(leagueID, page, limit)
	if err != nil {
		log.Error().Err(err).Msg("team listing failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.PaginatedJSON(ctx, teams, page, limit, total)
}

// UpdateTeam godoc
// @Summary Update a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param team body UpdateTeamRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse "Team updated"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Router /teams/{team_id} [put]
// @Security Bearer
func (tc *TeamController) UpdateTeam(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}
	teamID, ok := pathID(ctx, "team_id")
	if !ok {
		return
	}

	allowed, err := tc.access.CanManageTeam(callerID, teamID)
	if err != nil {
		log.Error().Err(err).Msg("authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	var req UpdateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}

	team, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFoundJSON(ctx, "Team")
			return
		}
		log.Error().Err(err).Msg("team lookup failed")
		responses.InternalErrorJSON(ctx)
		return
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if req.Logo != nil {
		team.Logo = *req.Logo
	}

	if err := tc.repo.UpdateTeam(team); err != nil {
		log.Error().Err(err).Msg("team update failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "Team updated", team)
}

// DeleteTeam godoc
// @Summary Delete a team
// @Tags Teams
// @Produce json
// @Param team_id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse "Team deleted"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Router /teams/{team_id} [delete]
// @Security Bearer
func (tc *TeamController) DeleteTeam(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}
	teamID, ok := pathID(ctx, "team_id")
	if !ok {
		return
	}

	allowed, err := tc.access.CanManageTeam(callerID, teamID)
	if err != nil {
		log.Error().Err(err).Msg("authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	if err := tc.repo.DeleteTeam(teamID); err != nil {
		log.Error().Err(err).Msg("team deletion failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "Team deleted", nil)
}

// GetRoster godoc
// @Summary List the team roster
// @Description Lists every membership granted in the team's scope
// @Tags Teams
// @Produce json
// @Param team_id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse "Roster"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Router /teams/{team_id}/roster [get]
// @Security Bearer
func (tc *TeamController) GetRoster(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}
	teamID, ok := pathID(ctx, "team_id")
	if !ok {
		return
	}

	allowed, err := tc.access.CanViewTeam(callerID, teamID)
	if err != nil {
		log.Error().Err(err).Msg("authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	roster, err := tc.memberships.GetMembershipsByScope(access.TeamScope(teamID))
	if err != nil {
		log.Error().Err(err).Msg("roster lookup failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "", roster)
}

// RemovePlayer godoc
// @Summary Remove a player from the team
// @Description Revokes the player's roster membership. Assistants cannot remove players.
// @Tags Teams
// @Produce json
// @Param team_id path int true "Team ID"
// @Param user_id path int true "User ID"
// @Success 200 {object} responses.SuccessResponse "Player removed"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Router /teams/{team_id}/players/{user_id} [delete]
// @Security Bearer
func (tc *TeamController) RemovePlayer(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}
	teamID, ok := pathID(ctx, "team_id")
	if !ok {
		return
	}
	targetID, ok := pathID(ctx, "user_id")
	if !ok {
		return
	}

	allowed, err := tc.access.CanRemovePlayer(callerID, teamID)
	if err != nil {
		log.Error().Err(err).Msg("authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	if err := tc.access.Revoke(targetID, access.RolePlayer, access.TeamScope(teamID)); err != nil {
		log.Error().Err(err).Msg("player removal failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "Player removed", nil)
}
