package handlers

import (
	"net/http"

	"parking-backend/internal/services"
	"parking-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type TransactionHandler struct {
	txService *services.TransactionService
	validator *validator.Validate
}

func NewTransactionHandler(txService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		validator: validator.New(),
	}
}

// GetTransactions lists transactions filtered by status and plate
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	page, limit := parsePagination(c)

	transactions, total, err := h.txService.GetTransactions(c.Query("status"), c.Query("plateNumber"), page, limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve transactions", err)
		return
	}

	utils.PaginatedResponse(c, http.StatusOK, "Transactions retrieved successfully", transactions, utils.NewPagination(page, limit, total))
}

// GetTransaction retrieves a specific transaction by ID
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	tx, err := h.txService.GetTransaction(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Transaction not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Transaction retrieved successfully", tx)
}

// CheckIn opens a parking transaction for a plate
func (h *TransactionHandler) CheckIn(c *gin.Context) {
	var req services.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	tx, err := h.txService.CheckIn(&req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to check in", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Checked in successfully", tx)
}

// CheckOut completes an open transaction and settles the fee
func (h *TransactionHandler) CheckOut(c *gin.Context) {
	tx, err := h.txService.CheckOut(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, tariffErrorStatus(err), "Failed to check out", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Checked out successfully", tx)
}

// Cancel voids an open transaction without charging
func (h *TransactionHandler) Cancel(c *gin.Context) {
	tx, err := h.txService.Cancel(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to cancel transaction", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Transaction cancelled successfully", tx)
}
