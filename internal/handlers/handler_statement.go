package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/dto"
	"github.com/propfolio/propfolio-backend/internal/export"
	"github.com/propfolio/propfolio-backend/internal/middleware"
)

// StatementHandler handles owner statement generation, retrieval and export.
type StatementHandler struct {
	statementService portssvc.StatementSvcFacade
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(ss portssvc.StatementSvcFacade) *StatementHandler {
	return &StatementHandler{statementService: ss}
}

// RegisterStatementRoutes sets up the statement routes.
func RegisterStatementRoutes(rg *gin.RouterGroup, ss portssvc.StatementSvcFacade) {
	h := NewStatementHandler(ss)

	statements := rg.Group("/statements")
	{
		statements.POST("", h.GenerateStatement)
		statements.GET("", h.ListStatements)
		statements.GET("/:statementID", h.GetStatement)
		statements.PATCH("/:statementID/payout-status", h.UpdatePayoutStatus)
		statements.GET("/:statementID/export/csv", h.ExportCSV)
		statements.GET("/:statementID/export/html", h.ExportHTML)
	}
}

// GenerateStatement godoc
// @Summary Generate owner statement
// @Description Aggregates reservations and expenses for the period into a statement. One statement per property and period.
// @Tags statements
// @Accept json
// @Produce json
// @Param statement body dto.GenerateStatementRequest true "Period"
// @Success 201 {object} dto.StatementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /statements [post]
// @Security BearerAuth
func (h *StatementHandler) GenerateStatement(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.GenerateStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	statement, err := h.statementService.GenerateStatement(c.Request.Context(), req, ownerID)
	if err != nil {
		respondError(c, err, "Failed to generate statement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToStatementResponse(statement))
}

// ListStatements godoc
// @Summary List statements
// @Description Lists the owner's statements without lines, newest period first.
// @Tags statements
// @Produce json
// @Success 200 {object} dto.ListStatementsResponse
// @Failure 500 {object} ErrorResponse
// @Router /statements [get]
// @Security BearerAuth
func (h *StatementHandler) ListStatements(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	statements, err := h.statementService.ListStatements(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to list statements")
		return
	}
	c.JSON(http.StatusOK, dto.ListStatementsResponse{Statements: dto.ToStatementResponses(statements)})
}

// GetStatement godoc
// @Summary Get statement
// @Description Retrieves one statement with its booking and expense lines.
// @Tags statements
// @Produce json
// @Param statementID path string true "Statement ID"
// @Success 200 {object} dto.StatementResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /statements/{statementID} [get]
// @Security BearerAuth
func (h *StatementHandler) GetStatement(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	statement, err := h.statementService.GetStatement(c.Request.Context(), c.Param("statementID"), ownerID)
	if err != nil {
		respondError(c, err, "Failed to get statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}

// UpdatePayoutStatus godoc
// @Summary Update payout status
// @Description Transitions a statement's payout status, e.g. marks it paid.
// @Tags statements
// @Accept json
// @Produce json
// @Param statementID path string true "Statement ID"
// @Param status body dto.UpdatePayoutStatusRequest true "New status"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /statements/{statementID}/payout-status [patch]
// @Security BearerAuth
func (h *StatementHandler) UpdatePayoutStatus(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.UpdatePayoutStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	if err := h.statementService.UpdatePayoutStatus(c.Request.Context(), c.Param("statementID"), req.Status, ownerID); err != nil {
		respondError(c, err, "Failed to update payout status")
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportCSV godoc
// @Summary Export statement as CSV
// @Description Downloads the statement as a CSV file with line rows and summary totals.
// @Tags statements
// @Produce text/csv
// @Param statementID path string true "Statement ID"
// @Success 200 {string} string "CSV file"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /statements/{statementID}/export/csv [get]
// @Security BearerAuth
func (h *StatementHandler) ExportCSV(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	statement, err := h.statementService.GetStatement(c.Request.Context(), c.Param("statementID"), ownerID)
	if err != nil {
		respondError(c, err, "Failed to export statement")
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.StatementCSVFilename(statement)))
	c.Status(http.StatusOK)
	if err := export.WriteStatementCSV(c.Writer, statement); err != nil {
		// Headers are already out; log and cut the response short.
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to stream statement csv", "error", err)
		c.Abort()
	}
}

// ExportHTML godoc
// @Summary Export statement as HTML
// @Description Renders the statement as a self-contained printable HTML page.
// @Tags statements
// @Produce html
// @Param statementID path string true "Statement ID"
// @Success 200 {string} string "HTML page"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /statements/{statementID}/export/html [get]
// @Security BearerAuth
func (h *StatementHandler) ExportHTML(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	statement, err := h.statementService.GetStatement(c.Request.Context(), c.Param("statementID"), ownerID)
	if err != nil {
		respondError(c, err, "Failed to export statement")
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := export.WriteStatementHTML(c.Writer, statement); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to render statement html", "error", err)
		c.Abort()
	}
}
