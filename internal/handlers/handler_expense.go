package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/dto"
)

// ExpenseHandler handles property expense requests.
type ExpenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(es portssvc.ExpenseSvcFacade) *ExpenseHandler {
	return &ExpenseHandler{expenseService: es}
}

// registerExpenseRoutes sets up the expense routes.
func registerExpenseRoutes(rg *gin.RouterGroup, es portssvc.ExpenseSvcFacade) {
	h := NewExpenseHandler(es)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.CreateExpense)
	}
	rg.GET("/properties/:propertyID/expenses", h.ListExpenses)
}

// CreateExpense godoc
// @Summary Book expense
// @Description Books a cost against a property.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /expenses [post]
// @Security BearerAuth
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req, ownerID)
	if err != nil {
		respondError(c, err, "Failed to create expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// ListExpenses godoc
// @Summary List expenses of a property
// @Tags expenses
// @Produce json
// @Param propertyID path string true "Property ID"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /properties/{propertyID}/expenses [get]
// @Security BearerAuth
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), c.Param("propertyID"), ownerID)
	if err != nil {
		respondError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ListExpensesResponse{Expenses: dto.ToExpenseResponses(expenses)})
}
