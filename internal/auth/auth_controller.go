package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/RohanMehta-11/ligo/internal/access"
	"github.com/RohanMehta-11/ligo/internal/middleware"
	"github.com/RohanMehta-11/ligo/internal/user"
	"github.com/RohanMehta-11/ligo/pkg/identity"
	"github.com/RohanMehta-11/ligo/pkg/responses"
	"github.com/RohanMehta-11/ligo/pkg/validator"
)

type AuthController struct {
	verifier identity.Verifier
	users    user.UserRepository
	tokens   *TokenService
	access   *access.Service
}

func NewAuthController(verifier identity.Verifier, users user.UserRepository, tokens *TokenService, accessService *access.Service) *AuthController {
	return &AuthController{
		verifier: verifier,
		users:    users,
		tokens:   tokens,
		access:   accessService,
	}
}

// Login godoc
// @Summary Log in with a Firebase ID token
// @Description Verifies the external credential, ensures a local user and returns an access/refresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Firebase ID token"
// @Success 200 {object} AuthResponse "Token pair and user profile"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Credential rejected"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (ac *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}

	id, err := ac.verifier.Verify(ctx.Request.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredential) {
			responses.ErrorJSON(ctx, http.StatusUnauthorized, "Invalid credential")
			return
		}
		log.Error().Err(err).Msg("credential verification failed")
		responses.InternalErrorJSON(ctx)
		return
	}

	u, err := ac.users.EnsureUser(id.UID, id.Email, id.DisplayName)
	if err != nil {
		log.Error().Err(err).Str("external_uid", id.UID).Msg("user directory sync failed")
		responses.InternalErrorJSON(ctx)
		return
	}

	accessToken, refreshToken, err := ac.tokens.Issue(u.ID, u.ExternalUID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", u.ID).Msg("token issuance failed")
		responses.InternalErrorJSON(ctx)
		return
	}

	ctx.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.FilterUserRecord(u),
	})
}

// RefreshToken godoc
// @Summary Refresh the access token
// @Description Exchanges a valid refresh token for a new token pair; the presented token is invalidated
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} TokenPairResponse "New token pair"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}

	accessToken, refreshToken, err := ac.tokens.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			responses.ErrorJSON(ctx, http.StatusUnauthorized, ErrInvalidRefreshToken.Error())
			return
		}
		log.Error().Err(err).Msg("token refresh failed")
		responses.InternalErrorJSON(ctx)
		return
	}

	ctx.JSON(http.StatusOK, TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Logout godoc
// @Summary Log out
// @Description Revokes the presented refresh token, or every session when invalidate_all_sessions is set
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LogoutRequest true "Logout options"
// @Success 200 {object} responses.SuccessResponse "Logged out"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /auth/logout [post]
// @Security Bearer
func (ac *AuthController) Logout(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	var req LogoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}

	if req.InvalidateAllSessions {
		if err := ac.tokens.RevokeAllForUser(callerID); err != nil {
			log.Error().Err(err).Uint("user_id", callerID).Msg("logout-all failed")
			responses.InternalErrorJSON(ctx)
			return
		}
		responses.SuccessJSON(ctx, http.StatusOK, "All sessions invalidated", nil)
		return
	}

	if req.RefreshToken != "" {
		if err := ac.tokens.Revoke(req.RefreshToken); err != nil && !errors.Is(err, ErrInvalidRefreshToken) {
			log.Error().Err(err).Uint("user_id", callerID).Msg("logout failed")
			responses.InternalErrorJSON(ctx)
			return
		}
	}
	responses.SuccessJSON(ctx, http.StatusOK, "Logged out", nil)
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Success 200 {object} responses.SuccessResponse "Profile with effective roles"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Router /auth/me [get]
// @Security Bearer
func (ac *AuthController) GetProfile(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	u, err := ac.users.GetUserByID(callerID)
	if err != nil {
		responses.NotFoundJSON(ctx, "User")
		return
	}

	memberships, err := ac.access.EffectiveRoles(callerID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", callerID).Msg("membership lookup failed")
		responses.InternalErrorJSON(ctx)
		return
	}

	responses.SuccessJSON(ctx, http.StatusOK, "", gin.H{
		"user":        user.FilterUserRecord(u),
		"memberships": memberships,
	})
}
