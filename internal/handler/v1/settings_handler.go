package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/dentware/clinicdesk/internal/service"
)

type SettingsHandler struct {
	settingsSvc *service.SettingsService
}

func NewSettingsHandler(settingsSvc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	respondOK(c, h.settingsSvc.Get())
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var in service.Settings
	if !bindJSON(c, &in) {
		return
	}
	respondOK(c, h.settingsSvc.Update(c.Request.Context(), in, callerFromClaims(c), c.ClientIP()))
}
