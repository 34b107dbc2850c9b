package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dentware/clinicdesk/internal/domain/incident"
	"github.com/dentware/clinicdesk/internal/service"
)

// maxUploadBytes caps incident file uploads. Files are stored inline as
// data URIs, so large uploads would bloat every persist of the collection.
const maxUploadBytes = 5 << 20

type IncidentHandler struct {
	incidentSvc *service.IncidentService
}

func NewIncidentHandler(incidentSvc *service.IncidentService) *IncidentHandler {
	return &IncidentHandler{incidentSvc: incidentSvc}
}

func (h *IncidentHandler) List(c *gin.Context) {
	q := &service.IncidentListQuery{
		Search:       c.Query("search"),
		StatusFilter: c.DefaultQuery("status", "all"),
		Page:         parseQueryInt(c, "page", 1),
		PageSize:     parseQueryInt(c, "pageSize", 20),
	}
	respondOK(c, h.incidentSvc.ListIncidents(q))
}

func (h *IncidentHandler) Get(c *gin.Context) {
	inc, err := h.incidentSvc.GetIncident(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, inc)
}

func (h *IncidentHandler) Create(c *gin.Context) {
	var cmd incident.CreateCommand
	if !bindJSON(c, &cmd) {
		return
	}

	inc, err := h.incidentSvc.CreateIncident(c.Request.Context(), &cmd, callerFromClaims(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, inc)
}

func (h *IncidentHandler) Update(c *gin.Context) {
	var patch incident.Patch
	if !bindJSON(c, &patch) {
		return
	}

	inc, err := h.incidentSvc.UpdateIncident(c.Request.Context(), c.Param("id"), &patch, callerFromClaims(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, inc)
}

func (h *IncidentHandler) Delete(c *gin.Context) {
	err := h.incidentSvc.DeleteIncident(c.Request.Context(), c.Param("id"), callerFromClaims(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type appendNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

func (h *IncidentHandler) AppendNote(c *gin.Context) {
	var req appendNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	inc, err := h.incidentSvc.AppendNote(c.Request.Context(), c.Param("id"), req.Note, callerFromClaims(c), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, inc)
}

// AttachFile accepts a multipart upload under the "file" field and stores
// it inline on the incident.
func (h *IncidentHandler) AttachFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	if header.Size > maxUploadBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "file exceeds the 5 MiB limit")
		return
	}

	f, err := header.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "could not read upload")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, "could not read upload")
		return
	}
	if len(data) > maxUploadBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "file exceeds the 5 MiB limit")
		return
	}

	inc, err := h.incidentSvc.AttachFile(
		c.Request.Context(),
		c.Param("id"),
		header.Filename,
		header.Header.Get("Content-Type"),
		data,
		callerFromClaims(c),
		c.ClientIP(),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, inc)
}
