// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/application/usecase/balance"
	"github.com/splitledger/backend/internal/integration/entrypoint/dto"
	"github.com/splitledger/backend/internal/integration/entrypoint/middleware"
)

// BalanceController handles balance endpoints.
type BalanceController struct {
	getUseCase *balance.GetBalanceUseCase
}

// NewBalanceController creates a new balance controller instance.
func NewBalanceController(getUseCase *balance.GetBalanceUseCase) *BalanceController {
	return &BalanceController{
		getUseCase: getUseCase,
	}
}

// Get handles GET /balances requests. The balance is recomputed from live
// data on every call.
func (c *BalanceController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), balance.GetBalanceInput{UserID: userID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBalanceResponse(output.Balance))
}

// GetByUser handles GET /balances/:user_id requests. Users may only query
// their own balance.
func (c *BalanceController) GetByUser(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	requestedID, err := uuid.Parse(ctx.Param("user_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid user ID",
		})
		return
	}
	if requestedID != userID {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: "You can only view your own balance",
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), balance.GetBalanceInput{UserID: requestedID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBalanceResponse(output.Balance))
}
