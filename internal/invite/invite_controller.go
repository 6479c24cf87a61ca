package invite

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/RohanMehta-11/ligo/internal/access"
	"github.com/RohanMehta-11/ligo/internal/middleware"
	"github.com/RohanMehta-11/ligo/pkg/responses"
	"github.com/RohanMehta-11/ligo/pkg/validator"
)

type InviteController struct {
	service *Service
	access  *access.Service
}

func NewInviteController(service *Service, accessService *access.Service) *InviteController {
	return &InviteController{service: service, access: accessService}
}

// mapRedeemError translates service error kinds to transport statuses.
func mapRedeemError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCodeNotFound):
		responses.NotFoundJSON(ctx, "Invitation code")
	case errors.Is(err, ErrCodeInactive), errors.Is(err, ErrCodeExpired), errors.Is(err, ErrCodeExhausted):
		responses.ErrorJSON(ctx, http.StatusGone, err.Error())
	case errors.Is(err, ErrAlreadyMember):
		responses.ConflictJSON(ctx, err.Error())
	default:
		log.Error().Err(err).Msg("invitation redemption failed")
		responses.InternalErrorJSON(ctx)
	}
}

// CreateTeamCode godoc
// @Summary Create a team invitation code
// @Description Issue a redeemable code granting team membership
// @Tags invites
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param invite body CreateCodeRequest true "Code options"
// @Success 201 {object} responses.SuccessResponse{data=InvitationCode}
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid input"
// @Failure 403 {object} responses.ErrorResponse "Caller may not manage this team"
// @Router /teams/{team_id}/invites [post]
// @Security Bearer
func (ic *InviteController) CreateTeamCode(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	teamID, err := strconv.ParseUint(ctx.Param("team_id"), 10, 32)
	if err != nil {
		responses.ErrorJSON(ctx, http.StatusBadRequest, "invalid team ID")
		return
	}

	allowed, err := ic.access.CanManageTeam(callerID, uint(teamID))
	if err != nil {
		log.Error().Err(err).Uint("caller_id", callerID).Msg("invite authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	var req CreateCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}

	code, err := ic.service.CreateTeamCode(uint(teamID), &callerID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidGrantRole) {
			responses.ErrorJSON(ctx, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Uint64("team_id", teamID).Msg("invitation code creation failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusCreated, "Invitation code created", code)
}

// ListTeamCodes godoc
// @Summary List a team's invitation codes
// @Tags invites
// @Produce json
// @Param team_id path int true "Team ID"
// @Param active query bool false "Only active codes"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Success 200 {object} responses.PaginatedResponse{data=[]InvitationCode}
// @Failure 403 {object} responses.ErrorResponse "Caller may not manage this team"
// @Router /teams/{team_id}/invites [get]
// @Security Bearer
func (ic *InviteController) ListTeamCodes(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	teamID, err := strconv.ParseUint(ctx.Param("team_id"), 10, 32)
	if err != nil {
		responses.ErrorJSON(ctx, http.StatusBadRequest, "invalid team ID")
		return
	}

	allowed, err := ic.access.CanManageTeam(callerID, uint(teamID))
	if err != nil {
		log.Error().Err(err).Uint("caller_id", callerID).Msg("invite authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	page, limit := pagination(ctx)
	activeOnly, _ := strconv.ParseBool(ctx.DefaultQuery("active", "false"))

	codes, total, err := ic.service.ListTeamCodes(uint(teamID), activeOnly, page, limit)
	if err != nil {
		log.Error().Err(err).Uint64("team_id", teamID).Msg("invitation listing failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.PaginatedJSON(ctx, codes, page, limit, total)
}

// RevokeTeamCode godoc
// @Summary Revoke a team invitation code
// @Tags invites
// @Produce json
// @Param id path int true "Code ID"
// @Success 200 {object} responses.SuccessResponse "Code revoked"
// @Failure 403 {object} responses.ErrorResponse "Caller may not manage this team"
// @Failure 404 {object} responses.ErrorResponse "Code not found"
// @Router /invites/teams/{id} [delete]
// @Security Bearer
func (ic *InviteController) RevokeTeamCode(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorJSON(ctx, http.StatusBadRequest, "invalid code ID")
		return
	}

	code, err := ic.service.GetTeamCode(uint(id))
	if err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			responses.NotFoundJSON(ctx, "Invitation code")
			return
		}
		log.Error().Err(err).Uint64("code_id", id).Msg("invitation lookup failed")
		responses.InternalErrorJSON(ctx)
		return
	}

	allowed, err := ic.access.CanManageTeam(callerID, code.TeamID)
	if err != nil {
		log.Error().Err(err).Uint("caller_id", callerID).Msg("invite authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	if err := ic.service.RevokeTeamCode(uint(id)); err != nil {
		log.Error().Err(err).Uint64("code_id", id).Msg("invitation revocation failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "Invitation code revoked", nil)
}

// RedeemTeamCode godoc
// @Summary Redeem a team invitation code
// @Description Exchange a code for team membership
// @Tags invites
// @Accept json
// @Produce json
// @Param request body RedeemRequest true "Raw code"
// @Success 200 {object} responses.SuccessResponse "Membership granted"
// @Failure 404 {object} responses.ErrorResponse "Code not found"
// @Failure 409 {object} responses.ErrorResponse "Already a member"
// @Failure 410 {object} responses.ErrorResponse "Code revoked, expired or exhausted"
// @Router /invites/teams/redeem [post]
// @Security Bearer
func (ic *InviteController) RedeemTeamCode(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	var req RedeemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}

	code, err := ic.service.RedeemTeamCode(req.Code, callerID)
	if err != nil {
		mapRedeemError(ctx, err)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "Membership granted", gin.H{
		"team_id": code.TeamID,
		"role":    code.GrantRole,
	})
}

// CreateLeagueInvitation godoc
// @Summary Create a league invitation code
// @Tags invites
// @Accept json
// @Produce json
// @Param league_id path int true "League ID"
// @Param invite body CreateCodeRequest true "Code options"
// @Success 201 {object} responses.SuccessResponse{data=LeagueInvitation}
// @Failure 403 {object} responses.ErrorResponse "Caller may not manage this league"
// @Router /leagues/{league_id}/invites [post]
// @Security Bearer
func (ic *InviteController) CreateLeagueInvitation(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	leagueID, err := strconv.ParseUint(ctx.Param("league_id"), 10, 32)
	if err != nil {
		responses.ErrorJSON(ctx, http.StatusBadRequest, "invalid league ID")
		return
	}

	allowed, err := ic.access.CanManageLeague(callerID, uint(leagueID))
	if err != nil {
		log.Error().Err(err).Uint("caller_id", callerID).Msg("invite authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	var req CreateCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}

	code, err := ic.service.CreateLeagueInvitation(uint(leagueID), &callerID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidGrantRole) {
			responses.ErrorJSON(ctx, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Uint64("league_id", leagueID).Msg("league invitation creation failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusCreated, "League invitation created", code)
}

// ListLeagueInvitations godoc
// @Summary List a league's invitation codes
// @Tags invites
// @Produce json
// @Param league_id path int true "League ID"
// @Param active query bool false "Only active codes"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Success 200 {object} responses.PaginatedResponse{data=[]LeagueInvitation}
// @Router /leagues/{league_id}/invites [get]
// @Security Bearer
func (ic *InviteController) ListLeagueInvitations(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	leagueID, err := strconv.ParseUint(ctx.Param("league_id"), 10, 32)
	if err != nil {
		responses.ErrorJSON(ctx, http.StatusBadRequest, "invalid league ID")
		return
	}

	allowed, err := ic.access.CanManageLeague(callerID, uint(leagueID))
	if err != nil {
		log.Error().Err(err).Uint("caller_id", callerID).Msg("invite authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	page, limit := pagination(ctx)
	activeOnly, _ := strconv.ParseBool(ctx.DefaultQuery("active", "false"))

	codes, total, err := ic.service.ListLeagueInvitations(uint(leagueID), activeOnly, page, limit)
	if err != nil {
		log.Error().Err(err).Uint64("league_id", leagueID).Msg("league invitation listing failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.PaginatedJSON(ctx, codes, page, limit, total)
}

// RevokeLeagueInvitation godoc
// @Summary Revoke a league invitation code
// @Tags invites
// @Produce json
// @Param id path int true "Code ID"
// @Success 200 {object} responses.SuccessResponse "Code revoked"
// @Failure 404 {object} responses.ErrorResponse "Code not found"
// @Router /invites/leagues/{id} [delete]
// @Security Bearer
func (ic *InviteController) RevokeLeagueInvitation(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorJSON(ctx, http.StatusBadRequest, "invalid code ID")
		return
	}

	code, err := ic.service.GetLeagueInvitation(uint(id))
	if err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			responses.NotFoundJSON(ctx, "Invitation code")
			return
		}
		log.Error().Err(err).Uint64("code_id", id).Msg("league invitation lookup failed")
		responses.InternalErrorJSON(ctx)
		return
	}

	allowed, err := ic.access.CanManageLeague(callerID, code.LeagueID)
	if err != nil {
		log.Error().Err(err).Uint("caller_id", callerID).Msg("invite authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	if err := ic.service.RevokeLeagueInvitation(uint(id)); err != nil {
		log.Error().Err(err).Uint64("code_id", id).Msg("league invitation revocation failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "Invitation code revoked", nil)
}

// RedeemLeagueInvitation godoc
// @Summary Redeem a league invitation code
// @Tags invites
// @Accept json
// @Produce json
// @Param request body RedeemRequest true "Raw code"
// @Success 200 {object} responses.SuccessResponse "Membership granted"
// @Failure 404 {object} responses.ErrorResponse "Code not found"
// @Failure 409 {object} responses.ErrorResponse "Already a member"
// @Failure 410 {object} responses.ErrorResponse "Code revoked, expired or exhausted"
// @Router /invites/leagues/redeem [post]
// @Security Bearer
func (ic *InviteController) RedeemLeagueInvitation(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	var req RedeemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}

	code, err := ic.service.RedeemLeagueInvitation(req.Code, callerID)
	if err != nil {
		mapRedeemError(ctx, err)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "Membership granted", gin.H{
		"league_id": code.LeagueID,
		"role":      code.GrantRole,
	})
}

func pagination(ctx *gin.Context) (int, int) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
