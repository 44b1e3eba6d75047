package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	portssvc "github.com/SscSPs/fincockpit/internal/core/ports/services"
	"github.com/SscSPs/fincockpit/internal/dto"
	"github.com/gin-gonic/gin"
)

type personaHandler struct {
	personaService portssvc.PersonaSvcFacade
}

func registerPersonaRoutes(rg *gin.RouterGroup, personaService portssvc.PersonaSvcFacade) {
	h := &personaHandler{personaService: personaService}

	personas := rg.Group("/personas")
	{
		personas.POST("/impact", h.impact)
		personas.POST("/rename", h.rename)
		personas.POST("/delete", h.deletePersona)
	}
}

// impact godoc
// @Summary Persona impact
// @Description Counts the records attributed to a persona, per collection.
// @Tags personas
// @Accept  json
// @Produce  json
// @Param   request body dto.PersonaImpactRequest true "Snapshot and persona name"
// @Success 200 {object} domain.PersonaImpact
// @Failure 400 {object} apperrors.AppError "Validation error"
// @Router /personas/impact [post]
func (h *personaHandler) impact(c *gin.Context) {
	var req dto.PersonaImpactRequest
	if !bindJSON(c, &req, "summarize persona impact") {
		return
	}
	impact, err := h.personaService.SummarizePersonaImpact(c.Request.Context(), req.State, req.Name)
	if err != nil {
		respondError(c, err, "summarize persona impact")
		return
	}
	c.JSON(http.StatusOK, impact)
}

// rename godoc
// @Summary Rename a persona
// @Tags personas
// @Accept  json
// @Produce  json
// @Param   request body dto.RenamePersonaRequest true "Snapshot and rename"
// @Success 200 {object} dto.StateResponse
// @Failure 400 {object} apperrors.AppError "Validation error"
// @Router /personas/rename [post]
func (h *personaHandler) rename(c *gin.Context) {
	var req dto.RenamePersonaRequest
	if !bindJSON(c, &req, "rename persona") {
		return
	}
	ctx := c.Request.Context()
	state, err := h.personaService.RenamePersona(ctx, req.State, req.From, req.To, req.Patch())
	if err != nil {
		respondError(c, err, "rename persona")
		return
	}
	entry := h.personaService.RecordAudit(ctx, "persona",
		fmt.Sprintf("Renamed persona %s to %s", req.From, req.To), domain.CollectionPersonas, "")
	c.JSON(http.StatusOK, dto.StateResponse{State: state, AuditEntry: &entry})
}

// deletePersona godoc
// @Summary Delete a persona
// @Description Removes a persona; its records are reassigned (default) or deleted in cascade mode.
// @Tags personas
// @Accept  json
// @Produce  json
// @Param   request body dto.DeletePersonaRequest true "Snapshot and delete options"
// @Success 200 {object} dto.StateResponse
// @Failure 400 {object} apperrors.AppError "Validation error"
// @Router /personas/delete [post]
func (h *personaHandler) deletePersona(c *gin.Context) {
	var req dto.DeletePersonaRequest
	if !bindJSON(c, &req, "delete persona") {
		return
	}
	ctx := c.Request.Context()
	mode := req.DeleteMode()
	state, err := h.personaService.DeletePersona(ctx, req.State, req.Name, mode, req.Fallback)
	if err != nil {
		respondError(c, err, "delete persona")
		return
	}
	entry := h.personaService.RecordAudit(ctx, "persona",
		fmt.Sprintf("Deleted persona %s (%s)", req.Name, mode), domain.CollectionPersonas, "")
	c.JSON(http.StatusOK, dto.StateResponse{State: state, AuditEntry: &entry})
}
