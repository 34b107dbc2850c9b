package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dentware/clinicdesk/internal/service"
	"github.com/dentware/clinicdesk/internal/views"
)

// PortalHandler serves the patient-facing routes. Every request is scoped
// to the patient id carried by the caller's own token; there is no way to
// name another patient.
type PortalHandler struct {
	portalSvc *service.PortalService
}

func NewPortalHandler(portalSvc *service.PortalService) *PortalHandler {
	return &PortalHandler{portalSvc: portalSvc}
}

// ownPatientID resolves the caller's linked patient record.
func ownPatientID(c *gin.Context) (string, bool) {
	claims := currentClaims(c)
	if claims == nil || claims.PatientID == "" {
		respondError(c, http.StatusForbidden, "no linked patient record")
		return "", false
	}
	return claims.PatientID, true
}

func (h *PortalHandler) Profile(c *gin.Context) {
	id, ok := ownPatientID(c)
	if !ok {
		return
	}
	p, err := h.portalSvc.Profile(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *PortalHandler) Upcoming(c *gin.Context) {
	id, ok := ownPatientID(c)
	if !ok {
		return
	}
	respondOK(c, h.portalSvc.Upcoming(id))
}

func (h *PortalHandler) History(c *gin.Context) {
	id, ok := ownPatientID(c)
	if !ok {
		return
	}
	q := &service.HistoryQuery{
		Search:       c.Query("search"),
		StatusFilter: c.DefaultQuery("status", "all"),
		SortBy:       views.HistorySort(c.DefaultQuery("sortBy", string(views.HistoryByDate))),
	}
	respondOK(c, h.portalSvc.History(id, q))
}

func (h *PortalHandler) Totals(c *gin.Context) {
	id, ok := ownPatientID(c)
	if !ok {
		return
	}
	respondOK(c, h.portalSvc.Totals(id))
}
