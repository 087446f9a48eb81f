package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/core/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
	"github.com/finbooks/bookkeeping_app/internal/middleware"
)

// journalHandler handles HTTP requests for the journal entry lifecycle.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, js portssvc.JournalSvcFacade) {
	h := newJournalHandler(js)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createEntry)
		journals.GET("", h.listEntries)
		journals.GET("/:id", h.getEntry)
		journals.PUT("/:id", h.updateEntry)
		journals.DELETE("/:id", h.deleteEntry)
	}
}

// resolverFromRequest builds the new-account categorization callback from the
// request's newAccounts map. Unknown names the request does not cover are
// reported back so the client can re-submit with a complete answer.
func resolverFromRequest(newAccounts map[string]domain.AccountType) portssvc.AccountTypeResolver {
	return func(_ context.Context, names []string) (map[string]domain.AccountType, error) {
		var uncovered []string
		for _, name := range names {
			if _, ok := newAccounts[name]; !ok {
				uncovered = append(uncovered, name)
			}
		}
		if len(uncovered) > 0 {
			return nil, &portssvc.UnknownAccountsError{Names: uncovered}
		}
		return newAccounts, nil
	}
}

// respondJournalError maps service errors onto HTTP statuses shared by the
// create and update paths.
func respondJournalError(c *gin.Context, logger *slog.Logger, err error) {
	var unknownAccounts *portssvc.UnknownAccountsError
	switch {
	case errors.As(err, &unknownAccounts):
		logger.Warn("Entry references unknown accounts", slog.Any("accounts", unknownAccounts.Names))
		c.JSON(http.StatusConflict, gin.H{
			"error":           "Entry references accounts that need a type",
			"unknownAccounts": unknownAccounts.Names,
		})
	case errors.Is(err, portssvc.ErrCategorizationCancelled):
		logger.Warn("New account categorization cancelled")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEntryUnbalanced),
		errors.Is(err, services.ErrEntryMinLines),
		errors.Is(err, services.ErrNegativeAmount),
		errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Entry validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Journal entry not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate journal entry ID", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Journal operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process journal entry"})
	}
}

func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to create journal entry", slog.Int("line_count", len(req.Lines)))

	entry, err := h.journalService.CreateEntry(c.Request.Context(), userID, req, resolverFromRequest(req.NewAccounts))
	if err != nil {
		respondJournalError(c, logger, err)
		return
	}

	logger.Info("Journal entry created successfully", slog.String("entry_id", entry.ID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entries, err := h.journalService.ListEntries(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ListJournalEntriesResponse{Entries: dto.ToJournalEntryResponses(entries)})
}

func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), userID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
		} else {
			logger.Error("Failed to get journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("entry_id", entryID))
	logger.Info("Received request to update journal entry")

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), userID, entryID, req, resolverFromRequest(req.NewAccounts))
	if err != nil {
		respondJournalError(c, logger, err)
		return
	}

	logger.Info("Journal entry updated successfully")
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("entry_id", entryID))
	logger.Info("Received request to delete journal entry")

	if err := h.journalService.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Journal entry not found for deletion")
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
		} else {
			logger.Error("Failed to delete journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete journal entry"})
		}
		return
	}

	logger.Info("Journal entry deleted successfully")
	c.Status(http.StatusNoContent)
}
