package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
	"github.com/finbooks/bookkeeping_app/internal/middleware"
)

// reportingHandler handles HTTP requests for the derived financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	currencyCode     string
}

func newReportingHandler(rs portssvc.ReportingSvcFacade, currencyCode string) *reportingHandler {
	return &reportingHandler{reportingService: rs, currencyCode: currencyCode}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade, currencyCode string) {
	h := newReportingHandler(rs, currencyCode)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/income-statement", h.incomeStatement)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/breakdown", h.breakdown)
	}
}

func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to build trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trial balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report, h.currencyCode))
}

func (h *reportingHandler) incomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to build income statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build income statement"})
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(report, h.currencyCode))
}

func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to build balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build balance sheet"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report, h.currencyCode))
}

// breakdown ranks expense or revenue accounts over a date window selected by
// query parameters: type=EXPENSE|REVENUE, range=THIS_MONTH|LAST_MONTH|CUSTOM|
// ALL_TIME, and from/to (YYYY-MM-DD) when range is CUSTOM.
func (h *reportingHandler) breakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	accountType := domain.AccountType(c.DefaultQuery("type", string(domain.Expense)))
	kind := domain.RangeKind(c.DefaultQuery("range", string(domain.RangeThisMonth)))

	var from, to time.Time
	if kind == domain.RangeCustom {
		var err error
		from, err = time.Parse(time.DateOnly, c.Query("from"))
		if err == nil {
			to, err = time.Parse(time.DateOnly, c.Query("to"))
		}
		if err != nil {
			logger.Warn("Invalid custom range dates", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Custom range requires from and to dates as YYYY-MM-DD"})
			return
		}
	}

	window, err := domain.NewDateRange(kind, time.Now().UTC(), from, to)
	if err != nil {
		logger.Warn("Invalid date range", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.reportingService.Breakdown(c.Request.Context(), userID, accountType, window)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid breakdown request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to build breakdown", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build breakdown"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBreakdownResponse(accountType, window, rows, h.currencyCode))
}
