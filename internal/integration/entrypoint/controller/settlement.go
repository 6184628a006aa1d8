// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/application/usecase/settlement"
	"github.com/splitledger/backend/internal/domain/calculator"
	domainerror "github.com/splitledger/backend/internal/domain/error"
	"github.com/splitledger/backend/internal/integration/entrypoint/dto"
	"github.com/splitledger/backend/internal/integration/entrypoint/middleware"
)

// SettlementController handles settlement endpoints.
type SettlementController struct {
	recordUseCase         *settlement.RecordSettlementUseCase
	listUseCase           *settlement.ListSettlementsUseCase
	listCandidatesUseCase *settlement.ListCandidatesUseCase
}

// NewSettlementController creates a new settlement controller instance.
func NewSettlementController(
	recordUseCase *settlement.RecordSettlementUseCase,
	listUseCase *settlement.ListSettlementsUseCase,
	listCandidatesUseCase *settlement.ListCandidatesUseCase,
) *SettlementController {
	return &SettlementController{
		recordUseCase:         recordUseCase,
		listUseCase:           listUseCase,
		listCandidatesUseCase: listCandidatesUseCase,
	}
}

// Record handles POST /settlements requests. The payer defaults to the
// authenticated user; the payee may record a payment they received by naming
// the payer explicitly.
func (c *SettlementController) Record(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.RecordSettlementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingSettlementFields),
		})
		return
	}

	payeeID, err := uuid.Parse(req.PayeeID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid payee ID",
			Code:  string(domainerror.ErrCodeMissingSettlementFields),
		})
		return
	}

	payerID := userID
	if req.PayerID != nil {
		payerID, err = uuid.Parse(*req.PayerID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid payer ID",
				Code:  string(domainerror.ErrCodeMissingSettlementFields),
			})
			return
		}
	}

	input := settlement.RecordSettlementInput{
		ActorID: userID,
		PayerID: payerID,
		PayeeID: payeeID,
		Amount:  req.Amount,
		Method:  req.Method,
		Notes:   req.Notes,
	}
	if req.SplitID != nil {
		splitID, err := uuid.Parse(*req.SplitID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid split ID",
				Code:  string(domainerror.ErrCodeMissingSettlementFields),
			})
			return
		}
		input.SplitID = &splitID
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSettlementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSettlementResponse(output.Settlement))
}

// List handles GET /settlements requests.
func (c *SettlementController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), settlement.ListSettlementsInput{UserID: userID})
	if err != nil {
		c.handleSettlementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettlementListResponse(output.Settlements))
}

// ListCandidates handles GET /settlements/candidates requests. The direction
// query parameter selects between debts to pay and debts to collect.
func (c *SettlementController) ListCandidates(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	direction := calculator.Direction(ctx.DefaultQuery("direction", string(calculator.DirectionPay)))

	output, err := c.listCandidatesUseCase.Execute(ctx.Request.Context(), settlement.ListCandidatesInput{
		UserID:    userID,
		Direction: direction,
	})
	if err != nil {
		c.handleSettlementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCandidateListResponse(direction, output.Candidates))
}

// handleSettlementError maps settlement and split errors to HTTP responses.
func (c *SettlementController) handleSettlementError(ctx *gin.Context, err error) {
	var settlementErr *domainerror.SettlementError
	if errors.As(err, &settlementErr) {
		ctx.JSON(getStatusCodeForSettlementError(settlementErr.Code), dto.ErrorResponse{
			Error: settlementErr.Message,
			Code:  string(settlementErr.Code),
		})
		return
	}

	// Split-level failures (not found, concurrent modification) surface here
	// when a settlement targets a split.
	handleSplitError(ctx, err)
}

// getStatusCodeForSettlementError maps settlement error codes to HTTP status codes.
func getStatusCodeForSettlementError(code domainerror.SettlementErrorCode) int {
	switch code {
	case domainerror.ErrCodeSettlementNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidSettlementAmount,
		domainerror.ErrCodeSettlementExceedsOwed,
		domainerror.ErrCodeSettlementSelfPayment,
		domainerror.ErrCodeSettlementNotParticipants,
		domainerror.ErrCodeMissingSettlementFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeSettlementNotParty:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
