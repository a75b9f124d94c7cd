package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/till-api/internal/application/service"
	"github.com/sangkips/till-api/internal/presentation/http/dto/request"
	"github.com/sangkips/till-api/internal/presentation/http/dto/response"
	"github.com/sangkips/till-api/pkg/apperror"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings retrieves user settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	settings, err := h.settingsService.GetSettings(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateSettings updates user settings. Terminals pick the change up at
// the user's next sign-in.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.FromValidation(err))
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		UserID:            *userID,
		DefaultWarehouse:  req.DefaultWarehouse,
		DefaultTillNumber: req.DefaultTillNumber,
		SalesRepCode:      req.SalesRepCode,
		DeliveryMethod:    req.DeliveryMethod,
		VATInclusive:      req.VATInclusive,
		Currency:          req.Currency,
		Language:          req.Language,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
