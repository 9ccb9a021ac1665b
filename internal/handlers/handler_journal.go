package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/ledger_engine/internal/core/domain"
	portssvc "github.com/finbooks/ledger_engine/internal/core/ports/services"
	"github.com/finbooks/ledger_engine/internal/dto"
	"github.com/finbooks/ledger_engine/internal/middleware"
)

// journalHandler handles HTTP requests for the journal entry lifecycle.
type journalHandler struct {
	journalService portssvc.JournalService
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalService) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

func parseDay(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}

func entryFilterFromParams(params dto.ListEntriesParams) domain.EntryFilter {
	filter := domain.EntryFilter{
		CompanyID:    params.CompanyID,
		FiscalYearID: params.FiscalYearID,
		Search:       params.Search,
		DateFrom:     parseDay(params.DateFrom),
		DateTo:       parseDay(params.DateTo),
	}
	if params.JournalType != "" {
		jt := domain.JournalType(params.JournalType)
		filter.JournalType = &jt
	}
	if params.Status != "" {
		st := domain.EntryStatus(params.Status)
		filter.Status = &st
	}
	if params.Source != "" {
		src := domain.EntrySource(params.Source)
		filter.Source = &src
	}
	return filter
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Creates a balanced journal entry in DRAFT with its lines
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Journal entry"
// @Success 201 {object} dto.EntryResponse "The created entry"
// @Failure 400 {object} map[string]string "Invalid or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Account directory unavailable"
// @Router /entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Returns one page of entry headers matching the filters
// @Tags entries
// @Produce  json
// @Param   companyID query string false "Company filter"
// @Param   status query string false "Status filter"
// @Param   page query int false "Page number (1-based)"
// @Param   pageSize query int false "Page size"
// @Success 200 {object} dto.ListEntriesResponse "One page of entries"
// @Failure 400 {object} map[string]string "Invalid filter"
// @Router /entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	entries, pageInfo, err := h.journalService.ListEntries(c.Request.Context(), entryFilterFromParams(params), params.Page, params.PageSize)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	resp := dto.ListEntriesResponse{
		Entries:  make([]dto.EntryResponse, len(entries)),
		PageInfo: pageInfo,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry with its lines by ID
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse "The entry with its lines"
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// updateStatus godoc
// @Summary Change the status of a journal entry
// @Description Applies one transition of the entry state machine
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   transition body dto.UpdateStatusRequest true "Target status"
// @Success 200 {object} dto.EntryResponse "The updated entry"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Router /entries/{entryID}/status [patch]
func (h *journalHandler) updateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.UpdateStatus(c.Request.Context(), entryID, domain.EntryStatus(req.Status), actorID, req.RejectionReason)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a journal entry
// @Description Patches a DRAFT or PENDING entry; a supplied line set replaces the stored lines
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateEntryRequest true "Fields to update"
// @Success 200 {object} dto.EntryResponse "The updated entry"
// @Failure 400 {object} map[string]string "Invalid or unbalanced entry"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not editable"
// @Router /entries/{entryID} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), entryID, req, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// removeEntry godoc
// @Summary Delete a journal entry
// @Description Removes a DRAFT entry and its lines
// @Tags entries
// @Param   entryID path string true "Entry ID"
// @Success 204 "Entry removed"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not in DRAFT"
// @Router /entries/{entryID} [delete]
func (h *journalHandler) removeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.journalService.RemoveEntry(c.Request.Context(), entryID, actorID); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// validateEntry godoc
// @Summary Review an agent-sourced journal entry
// @Description Records the human validation decision on an agent-proposed entry
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   decision body dto.ValidateEntryRequest true "Validation decision"
// @Success 200 {object} dto.EntryResponse "The reviewed entry"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 422 {object} map[string]string "Entry is not awaiting validation"
// @Router /entries/{entryID}/validation [post]
func (h *journalHandler) validateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.ValidateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for validateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.ValidateEntry(c.Request.Context(), entryID, domain.ValidationStatus(req.Decision), actorID, req.Reason)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// ingestEntry godoc
// @Summary Ingest an externally reported transaction
// @Description Books a balanced transaction from another subsystem directly into POSTED
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.ExternalEntryRequest true "External transaction"
// @Success 201 {object} dto.EntryResponse "The booked entry"
// @Failure 400 {object} map[string]string "Invalid, unbalanced or unresolvable entry"
// @Failure 503 {object} map[string]string "Account directory unavailable"
// @Router /entries/ingest [post]
func (h *journalHandler) ingestEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ExternalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ingestEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.journalService.IngestExternalEntry(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// registerEntryRoutes registers journal entry lifecycle routes
func registerEntryRoutes(group *gin.RouterGroup, journalService portssvc.JournalService) {
	h := newJournalHandler(journalService)

	entries := group.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.POST("/ingest", h.ingestEntry)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.updateEntry)
		entries.DELETE("/:entryID", h.removeEntry)
		entries.PATCH("/:entryID/status", h.updateStatus)
		entries.POST("/:entryID/validation", h.validateEntry)
	}
}
