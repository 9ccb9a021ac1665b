package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/finbooks/ledger_engine/internal/core/domain"
	portssvc "github.com/finbooks/ledger_engine/internal/core/ports/services"
	"github.com/finbooks/ledger_engine/internal/dto"
	"github.com/finbooks/ledger_engine/internal/middleware"
)

// ledgerHandler handles HTTP requests for the ledger query engine.
type ledgerHandler struct {
	ledgerService portssvc.LedgerService
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ledgerService portssvc.LedgerService) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ledgerService,
	}
}

func movementFilterFromParams(params dto.MovementsParams) domain.MovementFilter {
	filter := domain.MovementFilter{
		DateFrom: parseDay(params.DateFrom),
		DateTo:   parseDay(params.DateTo),
		SortBy:   domain.MovementSortField(params.SortBy),
		SortAsc:  params.SortOrder == "asc",
	}
	if filter.SortBy == "" {
		filter.SortBy = domain.SortByDate
	}
	if params.JournalType != "" {
		jt := domain.JournalType(params.JournalType)
		filter.JournalType = &jt
	}
	if params.Status != "" {
		st := domain.EntryStatus(params.Status)
		filter.Status = &st
	}
	if params.MinAmount != "" {
		if min, err := decimal.NewFromString(params.MinAmount); err == nil {
			filter.MinAmount = &min
		}
	}
	if params.MaxAmount != "" {
		if max, err := decimal.NewFromString(params.MaxAmount); err == nil {
			filter.MaxAmount = &max
		}
	}
	return filter
}

func trialBalanceFilterFromParams(params dto.TrialBalanceParams) domain.TrialBalanceFilter {
	filter := domain.TrialBalanceFilter{
		CompanyID:          params.CompanyID,
		FiscalYearID:       params.FiscalYearID,
		StartDate:          parseDay(params.StartDate),
		EndDate:            parseDay(params.EndDate),
		IncludeZeroBalance: params.IncludeZeroBalance,
	}
	if params.AccountType != "" {
		nature := domain.AccountNature(params.AccountType)
		filter.AccountNature = &nature
	}
	return filter
}

func searchFilterFromParams(params dto.SearchParams) domain.SearchFilter {
	filter := domain.SearchFilter{
		CompanyID: params.CompanyID,
		DateFrom:  parseDay(params.DateFrom),
		DateTo:    parseDay(params.DateTo),
	}
	if params.AccountType != "" {
		nature := domain.AccountNature(params.AccountType)
		filter.AccountNature = &nature
	}
	if params.JournalType != "" {
		jt := domain.JournalType(params.JournalType)
		filter.JournalType = &jt
	}
	if params.Status != "" {
		st := domain.EntryStatus(params.Status)
		filter.Status = &st
	}
	return filter
}

// getAccountBalance godoc
// @Summary Get an account balance
// @Description Sums posted activity for the account, optionally up to a date, signed by account nature
// @Tags ledger
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   asOf query string false "Inclusive cutoff date (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceResponse "The account balance"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 503 {object} map[string]string "Account directory unavailable"
// @Router /ledger/accounts/{accountID}/balance [get]
func (h *ledgerHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.BalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for getAccountBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	asOf := parseDay(params.AsOf)
	balance, err := h.ledgerService.GetAccountBalance(c.Request.Context(), accountID, asOf)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance, asOf))
}

// getAccountMovements godoc
// @Summary List an account's ledger movements
// @Description Returns one page of the account's lines with their entry headers, filterable and sortable
// @Tags ledger
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   sortBy query string false "date, reference or amount"
// @Param   sortOrder query string false "asc or desc"
// @Param   page query int false "Page number (1-based)"
// @Param   pageSize query int false "Page size"
// @Success 200 {object} dto.MovementsResponse "One page of movements"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /ledger/accounts/{accountID}/movements [get]
func (h *ledgerHandler) getAccountMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.MovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for getAccountMovements", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	movements, pageInfo, err := h.ledgerService.GetAccountMovements(c.Request.Context(), accountID, movementFilterFromParams(params), params.Page, params.PageSize)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	resp := dto.MovementsResponse{
		AccountID: accountID,
		Movements: make([]dto.MovementResponse, len(movements)),
		PageInfo:  pageInfo,
	}
	for i, m := range movements {
		resp.Movements[i] = dto.ToMovementResponse(m)
	}
	c.JSON(http.StatusOK, resp)
}

// getTrialBalance godoc
// @Summary Compute a trial balance
// @Description Per-account debit/credit totals and balances over the period, sorted by account code
// @Tags ledger
// @Produce  json
// @Param   companyID query string true "Company"
// @Param   accountType query string false "Restrict to one account nature"
// @Param   includeZeroBalance query bool false "Keep rows whose totals are all zero"
// @Success 200 {object} domain.TrialBalance "The trial balance"
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 503 {object} map[string]string "Account directory unavailable"
// @Router /ledger/trial-balance [get]
func (h *ledgerHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for getTrialBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	tb, err := h.ledgerService.GetTrialBalance(c.Request.Context(), trialBalanceFilterFromParams(params))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, tb)
}

// getGeneralLedger godoc
// @Summary Compute a general ledger report
// @Description The trial balance expanded with each account's chronological movements
// @Tags ledger
// @Produce  json
// @Param   companyID query string true "Company"
// @Success 200 {object} domain.GeneralLedger "The general ledger"
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 503 {object} map[string]string "Account directory unavailable"
// @Router /ledger/general-ledger [get]
func (h *ledgerHandler) getGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for getGeneralLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	gl, err := h.ledgerService.GetGeneralLedger(c.Request.Context(), trialBalanceFilterFromParams(params))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gl)
}

// searchLedger godoc
// @Summary Search the ledger
// @Description Free-text search over entry description, reference and account name; empty query yields an empty page
// @Tags ledger
// @Produce  json
// @Param   q query string false "Search text"
// @Param   page query int false "Page number (1-based)"
// @Param   pageSize query int false "Page size"
// @Success 200 {object} dto.SearchResponse "One page of matches"
// @Failure 400 {object} map[string]string "Invalid filter"
// @Router /ledger/search [get]
func (h *ledgerHandler) searchLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for searchLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	matches, pageInfo, err := h.ledgerService.SearchLedger(c.Request.Context(), params.Query, searchFilterFromParams(params), params.Page, params.PageSize)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	resp := dto.SearchResponse{
		Query:    params.Query,
		Matches:  make([]dto.SearchMatchResponse, len(matches)),
		PageInfo: pageInfo,
	}
	for i, m := range matches {
		resp.Matches[i] = dto.ToSearchMatchResponse(m)
	}
	c.JSON(http.StatusOK, resp)
}

// registerLedgerRoutes registers ledger query routes
func registerLedgerRoutes(group *gin.RouterGroup, ledgerService portssvc.LedgerService) {
	h := newLedgerHandler(ledgerService)

	ledger := group.Group("/ledger")
	{
		ledger.GET("/accounts/:accountID/balance", h.getAccountBalance)
		ledger.GET("/accounts/:accountID/movements", h.getAccountMovements)
		ledger.GET("/trial-balance", h.getTrialBalance)
		ledger.GET("/general-ledger", h.getGeneralLedger)
		ledger.GET("/search", h.searchLedger)
	}
}
