package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dentware/clinicdesk/internal/domain/patient"
	"github.com/dentware/clinicdesk/internal/service"
	"github.com/dentware/clinicdesk/internal/views"
)

type PatientHandler struct {
	patientSvc *service.PatientService
}

func NewPatientHandler(patientSvc *service.PatientService) *PatientHandler {
	return &PatientHandler{patientSvc: patientSvc}
}

func (h *PatientHandler) List(c *gin.Context) {
	q := &service.ListQuery{
		Search:   c.Query("search"),
		SortBy:   views.SortKey(c.DefaultQuery("sortBy", string(views.SortByName))),
		SortDir:  views.Direction(c.DefaultQuery("sortDir", string(views.Asc))),
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "pageSize", 20),
	}
	respondOK(c, h.patientSvc.ListPatients(q))
}

func (h *PatientHandler) Get(c *gin.Context) {
	p, err := h.patientSvc.GetPatient(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *PatientHandler) Create(c *gin.Context) {
	var cmd patient.CreateCommand
	if !bindJSON(c, &cmd) {
		return
	}

	p, err := h.patientSvc.CreatePatient(c.Request.Context(), &cmd, callerFromClaims(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, p)
}

func (h *PatientHandler) Update(c *gin.Context) {
	var patch patient.Patch
	if !bindJSON(c, &patch) {
		return
	}

	p, err := h.patientSvc.UpdatePatient(c.Request.Context(), c.Param("id"), &patch, callerFromClaims(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

// Delete removes a patient and cascades to every incident referencing it.
func (h *PatientHandler) Delete(c *gin.Context) {
	err := h.patientSvc.DeletePatient(c.Request.Context(), c.Param("id"), callerFromClaims(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
