// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/application/usecase/split"
	"github.com/splitledger/backend/internal/domain/entity"
	domainerror "github.com/splitledger/backend/internal/domain/error"
	"github.com/splitledger/backend/internal/integration/entrypoint/dto"
	"github.com/splitledger/backend/internal/integration/entrypoint/middleware"
)

// SplitController handles bill split endpoints.
type SplitController struct {
	createUseCase  *split.CreateSplitUseCase
	replaceUseCase *split.ReplaceSplitUseCase
	deleteUseCase  *split.DeleteSplitUseCase
	listUseCase    *split.ListGroupSplitsUseCase
}

// NewSplitController creates a new split controller instance.
func NewSplitController(
	createUseCase *split.CreateSplitUseCase,
	replaceUseCase *split.ReplaceSplitUseCase,
	deleteUseCase *split.DeleteSplitUseCase,
	listUseCase *split.ListGroupSplitsUseCase,
) *SplitController {
	return &SplitController{
		createUseCase:  createUseCase,
		replaceUseCase: replaceUseCase,
		deleteUseCase:  deleteUseCase,
		listUseCase:    listUseCase,
	}
}

// Create handles POST /splits requests.
func (c *SplitController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateSplitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingSplitFields),
		})
		return
	}

	input, err := buildCreateSplitInput(userID, &req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeMissingSplitFields),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), *input)
	if err != nil {
		handleSplitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSplitResponse(output.Split))
}

// Replace handles PUT /splits/:id requests. The body fully replaces the
// split's fields and participant set.
func (c *SplitController) Replace(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	splitID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid split ID",
			Code:  string(domainerror.ErrCodeMissingSplitFields),
		})
		return
	}

	var req dto.CreateSplitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingSplitFields),
		})
		return
	}

	createInput, err := buildCreateSplitInput(userID, &req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeMissingSplitFields),
		})
		return
	}

	output, err := c.replaceUseCase.Execute(ctx.Request.Context(), split.ReplaceSplitInput{
		SplitID:          splitID,
		CreateSplitInput: *createInput,
	})
	if err != nil {
		handleSplitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSplitResponse(output.Split))
}

// Delete handles DELETE /splits/:id requests.
func (c *SplitController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	splitID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid split ID",
			Code:  string(domainerror.ErrCodeMissingSplitFields),
		})
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), split.DeleteSplitInput{
		SplitID: splitID,
		UserID:  userID,
	})
	if err != nil {
		handleSplitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

// ListByGroup handles GET /groups/:id/splits requests.
func (c *SplitController) ListByGroup(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid group ID",
			Code:  string(domainerror.ErrCodeMissingGroupFields),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), split.ListGroupSplitsInput{
		GroupID: groupID,
		UserID:  userID,
	})
	if err != nil {
		handleSplitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSplitListResponse(output.Splits))
}

// buildCreateSplitInput converts a split request body into usecase input.
func buildCreateSplitInput(userID uuid.UUID, req *dto.CreateSplitRequest) (*split.CreateSplitInput, error) {
	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		return nil, errors.New("invalid group ID")
	}

	participants := make([]split.ParticipantInput, len(req.Participants))
	for i, p := range req.Participants {
		participantID, err := uuid.Parse(p.UserID)
		if err != nil {
			return nil, errors.New("invalid participant ID")
		}
		participants[i] = split.ParticipantInput{
			UserID:     participantID,
			SplitValue: p.SplitValue,
			PaidAmount: p.PaidAmount,
		}
		if p.ShareAmount != nil {
			share := *p.ShareAmount
			participants[i].ShareAmount = &share
		}
	}

	input := &split.CreateSplitInput{
		UserID:       userID,
		GroupID:      groupID,
		Name:         req.Name,
		TotalAmount:  req.TotalAmount,
		Method:       entity.SplitMethod(req.Method),
		Notes:        req.Notes,
		Participants: participants,
	}
	if req.Category != nil {
		category := entity.SplitCategory(*req.Category)
		input.Category = &category
	}

	return input, nil
}

// handleSplitError maps split and group errors to HTTP responses.
func handleSplitError(ctx *gin.Context, err error) {
	var splitErr *domainerror.SplitError
	if errors.As(err, &splitErr) {
		ctx.JSON(getStatusCodeForSplitError(splitErr.Code), dto.ErrorResponse{
			Error: splitErr.Message,
			Code:  string(splitErr.Code),
		})
		return
	}

	var groupErr *domainerror.GroupError
	if errors.As(err, &groupErr) {
		ctx.JSON(getStatusCodeForGroupError(groupErr.Code), dto.ErrorResponse{
			Error: groupErr.Message,
			Code:  string(groupErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForSplitError maps split error codes to HTTP status codes.
func getStatusCodeForSplitError(code domainerror.SplitErrorCode) int {
	switch code {
	case domainerror.ErrCodeSplitNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeSplitNameRequired,
		domainerror.ErrCodeInvalidSplitAmount,
		domainerror.ErrCodeInvalidSplitMethod,
		domainerror.ErrCodeInvalidSplitCategory,
		domainerror.ErrCodeParticipantsRequired,
		domainerror.ErrCodeInvalidSplitValues,
		domainerror.ErrCodeSharesMismatch,
		domainerror.ErrCodeMissingSplitFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeSplitConflict,
		domainerror.ErrCodeSplitLockUnavailable:
		return http.StatusConflict
	case domainerror.ErrCodeNotSplitCreator:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
