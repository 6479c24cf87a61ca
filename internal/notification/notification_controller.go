package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/RohanMehta-11/ligo/internal/middleware"
	"github.com/RohanMehta-11/ligo/pkg/responses"
	"github.com/RohanMehta-11/ligo/pkg/validator"
)

type NotificationController struct {
	repo DeviceTokenRepository
}

func NewNotificationController(repo DeviceTokenRepository) *NotificationController {
	return &NotificationController{repo: repo}
}

// RegisterDevice godoc
// @Summary Register a device push token
// @Tags Notifications
// @Accept json
// @Produce json
// @Param device body RegisterDeviceRequest true "Device token"
// @Success 200 {object} responses.SuccessResponse "Device registered"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /notifications/devices [post]
// @Security Bearer
func (nc *NotificationController) RegisterDevice(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	var req RegisterDeviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}

	device := &DeviceToken{
		UserID:   callerID,
		Token:    req.Token,
		Platform: req.Platform,
	}
	if err := nc.repo.RegisterDevice(device); err != nil {
		log.Error().Err(err).Uint("user_id", callerID).Msg("device registration failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "Device registered", nil)
}

// UnregisterDevice godoc
// @Summary Unregister a device push token
// @Tags Notifications
// @Accept json
// @Produce json
// @Param device body UnregisterDeviceRequest true "Device token"
// @Success 200 {object} responses.SuccessResponse "Device unregistered"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /notifications/devices [delete]
// @Security Bearer
func (nc *NotificationController) UnregisterDevice(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	var req UnregisterDeviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorJSON(ctx, "Invalid input", validator.ParseError(err))
		return
	}

	if err := nc.repo.UnregisterDevice(callerID, req.Token); err != nil {
		log.Error().Err(err).Uint("user_id", callerID).Msg("device unregistration failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "Device unregistered", nil)
}

// ListDevices godoc
// @Summary List the caller's registered devices
// @Tags Notifications
// @Produce json
// @Success 200 {object} responses.SuccessResponse "Devices"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /notifications/devices [get]
// @Security Bearer
func (nc *NotificationController) ListDevices(ctx *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		responses.UnauthorizedJSON(ctx)
		return
	}

	devices, err := nc.repo.GetDevicesByUser(callerID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", callerID).Msg("device listing failed")
		responses.InternalErrorJSON(ctx)
		return
	}
	responses.SuccessJSON(ctx, http.StatusOK, "", devices)
}
