package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/dto"
)

// PaymentHandler handles the payment and disbursement ledgers plus the owner
// balance endpoint.
type PaymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
	balanceService portssvc.BalanceSvcFacade
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps portssvc.PaymentSvcFacade, bs portssvc.BalanceSvcFacade) *PaymentHandler {
	return &PaymentHandler{paymentService: ps, balanceService: bs}
}

// registerPaymentRoutes sets up the ledger and balance routes.
func registerPaymentRoutes(rg *gin.RouterGroup, ps portssvc.PaymentSvcFacade, bs portssvc.BalanceSvcFacade) {
	h := NewPaymentHandler(ps, bs)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.RecordTransaction)
		transactions.GET("", h.ListTransactions)
		transactions.PATCH("/:transactionID/status", h.UpdateTransactionStatus)
	}
	disbursements := rg.Group("/disbursements")
	{
		disbursements.POST("", h.RecordDisbursement)
		disbursements.GET("", h.ListDisbursements)
		disbursements.PATCH("/:disbursementID/status", h.UpdateDisbursementStatus)
	}
	rg.GET("/balance", h.GetBalance)
}

// RecordTransaction godoc
// @Summary Record ledger transaction
// @Description Appends a money movement to the payment ledger.
// @Tags payments
// @Accept json
// @Produce json
// @Param transaction body dto.RecordTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions [post]
// @Security BearerAuth
func (h *PaymentHandler) RecordTransaction(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	txn, err := h.paymentService.RecordTransaction(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// ListTransactions godoc
// @Summary List ledger transactions
// @Description Lists transactions where the authenticated user appears as owner or guest, newest first.
// @Tags payments
// @Produce json
// @Success 200 {array} dto.TransactionResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions [get]
// @Security BearerAuth
func (h *PaymentHandler) ListTransactions(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	txns, err := h.paymentService.ListTransactions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// UpdateTransactionStatus godoc
// @Summary Update transaction status
// @Description Transitions a ledger transaction's settlement status. This is the only mutation ledger rows allow.
// @Tags payments
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param status body dto.UpdateLedgerStatusRequest true "New status"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{transactionID}/status [patch]
// @Security BearerAuth
func (h *PaymentHandler) UpdateTransactionStatus(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateLedgerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	if err := h.paymentService.UpdateTransactionStatus(c.Request.Context(), c.Param("transactionID"), req.Status, userID); err != nil {
		respondError(c, err, "Failed to update transaction status")
		return
	}
	c.Status(http.StatusNoContent)
}

// RecordDisbursement godoc
// @Summary Record disbursement
// @Description Appends an outbound money movement (payout, refund, staff or supplier payment).
// @Tags payments
// @Accept json
// @Produce json
// @Param disbursement body dto.RecordDisbursementRequest true "Disbursement"
// @Success 201 {object} dto.DisbursementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /disbursements [post]
// @Security BearerAuth
func (h *PaymentHandler) RecordDisbursement(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.RecordDisbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	d, err := h.paymentService.RecordDisbursement(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record disbursement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDisbursementResponse(d))
}

// ListDisbursements godoc
// @Summary List disbursements
// @Tags payments
// @Produce json
// @Success 200 {array} dto.DisbursementResponse
// @Failure 500 {object} ErrorResponse
// @Router /disbursements [get]
// @Security BearerAuth
func (h *PaymentHandler) ListDisbursements(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	ds, err := h.paymentService.ListDisbursements(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list disbursements")
		return
	}
	c.JSON(http.StatusOK, dto.ToDisbursementResponses(ds))
}

// UpdateDisbursementStatus godoc
// @Summary Update disbursement status
// @Tags payments
// @Accept json
// @Produce json
// @Param disbursementID path string true "Disbursement ID"
// @Param status body dto.UpdateLedgerStatusRequest true "New status"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /disbursements/{disbursementID}/status [patch]
// @Security BearerAuth
func (h *PaymentHandler) UpdateDisbursementStatus(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateLedgerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	if err := h.paymentService.UpdateDisbursementStatus(c.Request.Context(), c.Param("disbursementID"), req.Status, userID); err != nil {
		respondError(c, err, "Failed to update disbursement status")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetBalance godoc
// @Summary Get owner balance
// @Description Returns the owner's running balance snapshot, recomputed from the ledgers on a cache miss.
// @Tags payments
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Failure 500 {object} ErrorResponse
// @Router /balance [get]
// @Security BearerAuth
func (h *PaymentHandler) GetBalance(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	balance, err := h.balanceService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to compute balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}
