package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	portssvc "github.com/SscSPs/fincockpit/internal/core/ports/services"
	"github.com/SscSPs/fincockpit/internal/dto"
	"github.com/SscSPs/fincockpit/internal/middleware"
	"github.com/gin-gonic/gin"
)

// recordHandler handles HTTP requests that transition a snapshot's collections.
type recordHandler struct {
	recordService portssvc.RecordSvcFacade
}

func newRecordHandler(rs portssvc.RecordSvcFacade) *recordHandler {
	return &recordHandler{recordService: rs}
}

// registerRecordRoutes registers routes related to records and snapshots.
func registerRecordRoutes(rg *gin.RouterGroup, recordService portssvc.RecordSvcFacade) {
	h := newRecordHandler(recordService)

	records := rg.Group("/records")
	{
		records.POST("/append", h.appendRecord)
		records.POST("/find", h.findRecord)
		records.POST("/update", h.updateRecord)
		records.POST("/delete", h.deleteRecord)
		records.POST("/seed-recurring", h.seedRecurring)
	}
	rg.POST("/goals", h.appendGoal)

	snapshots := rg.Group("/snapshots")
	{
		snapshots.GET("/default", h.defaultSnapshot)
		snapshots.POST("/merge", h.mergeSnapshots)
	}
}

// appendRecord godoc
// @Summary Append a record
// @Description Validates a record and appends it. Without a collection the entry type routes it: income, savings (to assets) or an expense type.
// @Tags records
// @Accept  json
// @Produce  json
// @Param   request body dto.AppendRecordRequest true "Snapshot and record"
// @Success 200 {object} dto.StateResponse
// @Failure 400 {object} apperrors.AppError "Validation error"
// @Router /records/append [post]
func (h *recordHandler) appendRecord(c *gin.Context) {
	var req dto.AppendRecordRequest
	if !bindJSON(c, &req, "append record") {
		return
	}

	ctx := c.Request.Context()
	var state domain.Snapshot
	var err error
	if req.Collection == "" {
		state, err = h.recordService.AppendEntry(ctx, req.State, req.EntryType, req.Record)
	} else {
		state, err = h.recordService.AppendRecord(ctx, req.State, req.Collection, req.Record)
	}
	if err != nil {
		respondError(c, err, "append record")
		return
	}
	collection, id := addedRecord(req.State, state)
	entry := h.recordService.RecordAudit(ctx, "append", fmt.Sprintf("Added %s record %s", collection, id), collection, id)
	c.JSON(http.StatusOK, dto.StateResponse{State: state, AuditEntry: &entry})
}

// findRecord godoc
// @Summary Find a record
// @Description Looks a record up by exact id within one collection.
// @Tags records
// @Accept  json
// @Produce  json
// @Param   request body dto.FindRecordRequest true "Snapshot and record location"
// @Success 200 {object} dto.RecordResponse
// @Failure 400 {object} apperrors.AppError "Validation error or unknown id"
// @Router /records/find [post]
func (h *recordHandler) findRecord(c *gin.Context) {
	var req dto.FindRecordRequest
	if !bindJSON(c, &req, "find record") {
		return
	}
	rec, err := h.recordService.FindRecord(c.Request.Context(), req.State, req.Collection, req.ID)
	if err != nil {
		respondError(c, err, "find record")
		return
	}
	c.JSON(http.StatusOK, dto.RecordResponse{Record: rec})
}

// appendGoal godoc
// @Summary Append a goal
// @Tags records
// @Accept  json
// @Produce  json
// @Param   request body dto.AppendGoalRequest true "Snapshot and goal"
// @Success 200 {object} dto.StateResponse
// @Failure 400 {object} apperrors.AppError "Validation error"
// @Router /goals [post]
func (h *recordHandler) appendGoal(c *gin.Context) {
	var req dto.AppendGoalRequest
	if !bindJSON(c, &req, "append goal") {
		return
	}
	ctx := c.Request.Context()
	state, err := h.recordService.AppendGoal(ctx, req.State, req.Goal)
	if err != nil {
		respondError(c, err, "append goal")
		return
	}
	_, id := addedRecord(req.State, state)
	entry := h.recordService.RecordAudit(ctx, "append", "Added goal "+id, domain.CollectionGoals, id)
	c.JSON(http.StatusOK, dto.StateResponse{State: state, AuditEntry: &entry})
}

// updateRecord godoc
// @Summary Update a record
// @Description Merges a patch over the record with the given id and re-validates it. The id is preserved.
// @Tags records
// @Accept  json
// @Produce  json
// @Param   request body dto.UpdateRecordRequest true "Snapshot, record location and patch"
// @Success 200 {object} dto.StateResponse
// @Failure 400 {object} apperrors.AppError "Validation error or unknown id"
// @Router /records/update [post]
func (h *recordHandler) updateRecord(c *gin.Context) {
	var req dto.UpdateRecordRequest
	if !bindJSON(c, &req, "update record") {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("collection", req.Collection),
		slog.String("id", req.ID))
	logger.Info("Received request to update record")

	ctx := c.Request.Context()
	state, err := h.recordService.UpdateRecord(ctx, req.State, req.Collection, req.ID, req.Patch)
	if err != nil {
		respondError(c, err, "update record")
		return
	}
	entry := h.recordService.RecordAudit(ctx, "update",
		fmt.Sprintf("Updated %s record %s", req.Collection, req.ID), req.Collection, req.ID)
	c.JSON(http.StatusOK, dto.StateResponse{State: state, AuditEntry: &entry})
}

// deleteRecord godoc
// @Summary Delete a record
// @Tags records
// @Accept  json
// @Produce  json
// @Param   request body dto.DeleteRecordRequest true "Snapshot and record location"
// @Success 200 {object} dto.StateResponse
// @Failure 400 {object} apperrors.AppError "Validation error or unknown id"
// @Router /records/delete [post]
func (h *recordHandler) deleteRecord(c *gin.Context) {
	var req dto.DeleteRecordRequest
	if !bindJSON(c, &req, "delete record") {
		return
	}
	ctx := c.Request.Context()
	state, err := h.recordService.DeleteRecord(ctx, req.State, req.Collection, req.ID)
	if err != nil {
		respondError(c, err, "delete record")
		return
	}
	entry := h.recordService.RecordAudit(ctx, "delete",
		fmt.Sprintf("Deleted %s record %s", req.Collection, req.ID), req.Collection, req.ID)
	c.JSON(http.StatusOK, dto.StateResponse{State: state, AuditEntry: &entry})
}

// seedRecurring godoc
// @Summary Seed recurring debt payments
// @Description Adds one recurring expense per liability with a scheduled payment, skipping rows already present.
// @Tags records
// @Accept  json
// @Produce  json
// @Param   request body dto.StateRequest true "Snapshot"
// @Success 200 {object} dto.StateResponse
// @Failure 400 {object} apperrors.AppError "Validation error"
// @Router /records/seed-recurring [post]
func (h *recordHandler) seedRecurring(c *gin.Context) {
	var req dto.StateRequest
	if !bindJSON(c, &req, "seed recurring rows") {
		return
	}
	ctx := c.Request.Context()
	state, err := h.recordService.SeedRecurring(ctx, req.State)
	if err != nil {
		respondError(c, err, "seed recurring rows")
		return
	}
	added := len(state.Expenses) - len(req.State.Expenses)
	entry := h.recordService.RecordAudit(ctx, "seed",
		fmt.Sprintf("Seeded %d recurring debt payments", added), domain.CollectionExpenses, "")
	c.JSON(http.StatusOK, dto.StateResponse{State: state, AuditEntry: &entry})
}

// defaultSnapshot godoc
// @Summary Default snapshot
// @Description Returns a snapshot with every collection present and empty.
// @Tags snapshots
// @Produce  json
// @Success 200 {object} dto.StateResponse
// @Router /snapshots/default [get]
func (h *recordHandler) defaultSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StateResponse{State: h.recordService.DefaultSnapshot(c.Request.Context())})
}

// mergeSnapshots godoc
// @Summary Merge an imported snapshot
// @Description Merges imported rows into the current snapshot by id or composite signature, and merges audit timelines.
// @Tags snapshots
// @Accept  json
// @Produce  json
// @Param   request body dto.MergeStateRequest true "Current and imported state"
// @Success 200 {object} dto.MergeStateResponse
// @Failure 400 {object} apperrors.AppError "Validation error"
// @Router /snapshots/merge [post]
func (h *recordHandler) mergeSnapshots(c *gin.Context) {
	var req dto.MergeStateRequest
	if !bindJSON(c, &req, "merge snapshots") {
		return
	}
	ctx := c.Request.Context()
	state, err := h.recordService.MergeImportedState(ctx, req.Current, req.Imported)
	if err != nil {
		respondError(c, err, "merge snapshots")
		return
	}
	timeline, err := h.recordService.MergeAuditTimeline(ctx, req.CurrentAudit, req.IncomingAudit)
	if err != nil {
		respondError(c, err, "merge audit timeline")
		return
	}
	c.JSON(http.StatusOK, dto.MergeStateResponse{State: state, AuditTimeline: timeline})
}

// addedRecord returns the collection and id of the row a single append placed at the end
// of a collection.
func addedRecord(before, after domain.Snapshot) (string, string) {
	for _, name := range domain.CollectionNames {
		prev, _ := before.Collection(name)
		next, _ := after.Collection(name)
		if len(next) > len(prev) {
			return name, next[len(next)-1].ID
		}
	}
	return "", ""
}
