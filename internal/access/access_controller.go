package access

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/RohanMehta-11/ligo/internal/middleware"
	"github.com/RohanMehta-11/ligo/pkg/responses"
	"github.com/RohanMehta-11/ligo/pkg/validator"
)

type AccessController struct {
	service *Service
}

func NewAccessController(service *Service) *AccessController {
	return &AccessController{service: service}
}

type GrantRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	Role     string `json:"role" binding:"required"`
	TeamID   *uint  `json:"team_id,omitempty"`
	LeagueID *uint  `json:"league_id,omitempty"`
}

// canAdminister gates grant/revoke: global admins always, scope
// managers within their own scope.
func (ac *AccessController) canAdminister(callerID uint, scope Scope) (bool, error) {
	if scope.TeamID != nil {
		return ac.service.CanManageTeam(callerID, *scope.TeamID)
	}
	if scope.LeagueID != nil {
		return ac.service.CanManageLeague(callerID, *scope.LeagueID)
	}
	return ac.service.IsAdmin(callerID)
}

// Grant godoc
// @Summary Grant a role
// @Description Grant a role to a user within a team, league or global scope
// @Tags access
// @Accept json
// @Produce json
// @Param grant body GrantRequest true "Grant details"
// @Success 201 {object} responses.SuccessResponse "Role granted"
// @Success 200 {object} responses.SuccessResponse "Grant already existed"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid input"
// @Failure 403 {object} responses.ErrorResponse "Caller may not administer this scope"
// @Router /access/grants [post]
// @Security Bearer
func (ac *AccessController) Grant(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	var req GrantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}

	scope := Scope{TeamID: req.TeamID, LeagueID: req.LeagueID}
	if !scope.Valid() {
		responses.ErrorJSON(ctx, http.StatusBadRequest, ErrInvalidScope.Error())
		return
	}

	allowed, err := ac.canAdminister(callerID, scope)
	if err != nil {
		log.Error().Err(err).Uint("caller_id", callerID).Msg("grant authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	created, err := ac.service.Grant(req.UserID, Role(req.Role), scope)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRole), errors.Is(err, ErrInvalidScope),
			errors.Is(err, ErrGlobalRoleRestricted), errors.Is(err, ErrScopedAdminRole),
			errors.Is(err, ErrFanNotGrantable):
			responses.ErrorJSON(ctx, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Uint("user_id", req.UserID).Msg("grant failed")
			responses.InternalErrorJSON(ctx)
		}
		return
	}

	if !created {
		responses.SuccessJSON(ctx, http.StatusOK, "Grant already existed", nil)
		return
	}
	responses.SuccessJSON(ctx, http.StatusCreated, "Role granted", nil)
}

// Revoke godoc
// @Summary Revoke a role
// @Description Remove a role grant from a user
// @Tags access
// @Accept json
// @Produce json
// @Param grant body GrantRequest true "Grant to revoke"
// @Success 200 {object} responses.SuccessResponse "Role revoked"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid input"
// @Failure 403 {object} responses.ErrorResponse "Caller may not administer this scope"
// @Router /access/grants [delete]
// @Security Bearer
func (ac *AccessController) Revoke(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	var req GrantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}

	scope := Scope{TeamID: req.TeamID, LeagueID: req.LeagueID}
	if !scope.Valid() {
		responses.ErrorJSON(ctx, http.StatusBadRequest, ErrInvalidScope.Error())
		return
	}

	allowed, err := ac.canAdminister(callerID, scope)
	if err != nil {
		log.Error().Err(err).Uint("caller_id", callerID).Msg("revoke authorization check failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	if !allowed {
		responses.ForbiddenJSON(ctx)
		return
	}

	if err := ac.service.Revoke(req.UserID, Role(req.Role), scope); err != nil {
		if errors.Is(err, ErrInvalidScope) {
			responses.ErrorJSON(ctx, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Uint("user_id", req.UserID).Msg("revoke failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "Role revoked", nil)
}

// GetUserMemberships godoc
// @Summary List a user's memberships
// @Description List role grants for a user; users with none hold the implicit FAN role
// @Tags access
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} responses.SuccessResponse{data=[]Membership}
// @Failure 403 {object} responses.ErrorResponse "Not self or admin"
// @Router /access/users/{user_id}/memberships [get]
// @Security Bearer
func (ac *AccessController) GetUserMemberships(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	userID, err := strconv.ParseUint(ctx.Param("user_id"), 10, 32)
	if err != nil {
		responses.ErrorJSON(ctx, http.StatusBadRequest, "invalid user ID")
		return
	}

	if uint(userID) != callerID {
		isAdmin, err := ac.service.IsAdmin(callerID)
		if err != nil {
			log.Error().Err(err).Uint("caller_id", callerID).Msg("membership listing check failed")
			responses.InternalErrorJSON(ctx)
			return
		}
		if !isAdmin {
			responses.ForbiddenJSON(ctx)
			return
		}
	}

	memberships, err := ac.service.EffectiveRoles(uint(userID))
	if err != nil {
		log.Error().Err(err).Uint64("user_id", userID).Msg("membership listing failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "", memberships)
}
