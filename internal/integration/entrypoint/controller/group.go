// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/application/usecase/group"
	"github.com/splitledger/backend/internal/domain/entity"
	domainerror "github.com/splitledger/backend/internal/domain/error"
	"github.com/splitledger/backend/internal/integration/entrypoint/dto"
	"github.com/splitledger/backend/internal/integration/entrypoint/middleware"
)

// GroupController handles group endpoints.
type GroupController struct {
	createUseCase *group.CreateGroupUseCase
	listUseCase   *group.ListGroupsUseCase
	getUseCase    *group.GetGroupUseCase
	updateUseCase *group.UpdateGroupUseCase
	deleteUseCase *group.DeleteGroupUseCase
}

// NewGroupController creates a new group controller instance.
func NewGroupController(
	createUseCase *group.CreateGroupUseCase,
	listUseCase *group.ListGroupsUseCase,
	getUseCase *group.GetGroupUseCase,
	updateUseCase *group.UpdateGroupUseCase,
	deleteUseCase *group.DeleteGroupUseCase,
) *GroupController {
	return &GroupController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /groups requests.
func (c *GroupController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingGroupFields),
		})
		return
	}

	memberIDs, err := parseUUIDs(req.MemberIDs)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid member ID: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingGroupFields),
		})
		return
	}

	input := group.CreateGroupInput{
		Name:      req.Name,
		Type:      entity.GroupType(req.Type),
		UserID:    userID,
		MemberIDs: memberIDs,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGroupError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCreatedGroupResponse(output.Group, output.Members))
}

// List handles GET /groups requests.
func (c *GroupController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), group.ListGroupsInput{UserID: userID})
	if err != nil {
		c.handleGroupError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGroupListResponse(output.Groups))
}

// Get handles GET /groups/:id requests.
func (c *GroupController) Get(ctx *gin.Context) {
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

	output, err := c.getUseCase.Execute(ctx.Request.Context(), group.GetGroupInput{
		GroupID: groupID,
		UserID:  userID,
	})
	if err != nil {
		c.handleGroupError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGroupResponse(output.Group))
}

// Update handles PUT /groups/:id requests.
func (c *GroupController) Update(ctx *gin.Context) {
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

	var req dto.UpdateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingGroupFields),
		})
		return
	}

	input := group.UpdateGroupInput{
		GroupID: groupID,
		UserID:  userID,
		Name:    req.Name,
	}
	if req.Type != nil {
		groupType := entity.GroupType(*req.Type)
		input.Type = &groupType
	}
	if req.MemberIDs != nil {
		memberIDs, err := parseUUIDs(*req.MemberIDs)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid member ID: " + err.Error(),
				Code:  string(domainerror.ErrCodeMissingGroupFields),
			})
			return
		}
		input.MemberIDs = memberIDs
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGroupError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGroupResponse(output.Group))
}

// Delete handles DELETE /groups/:id requests.
func (c *GroupController) Delete(ctx *gin.Context) {
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

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), group.DeleteGroupInput{
		GroupID: groupID,
		UserID:  userID,
	})
	if err != nil {
		c.handleGroupError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

// handleGroupError handles group errors and returns appropriate HTTP responses.
func (c *GroupController) handleGroupError(ctx *gin.Context, err error) {
	var groupErr *domainerror.GroupError
	if errors.As(err, &groupErr) {
		ctx.JSON(getStatusCodeForGroupError(groupErr.Code), dto.ErrorResponse{
			Error: groupErr.Message,
			Code:  string(groupErr.Code),
		})
		return
	}

	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		status := http.StatusBadRequest
		if authErr.Code != domainerror.ErrCodeUserNotFound {
			status = http.StatusUnauthorized
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForGroupError maps group error codes to HTTP status codes.
func getStatusCodeForGroupError(code domainerror.GroupErrorCode) int {
	switch code {
	case domainerror.ErrCodeGroupNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeGroupNameRequired,
		domainerror.ErrCodeGroupNameTooLong,
		domainerror.ErrCodeInvalidGroupType,
		domainerror.ErrCodeGroupMembersRequired,
		domainerror.ErrCodeMissingGroupFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeNotGroupCreator,
		domainerror.ErrCodeNotGroupMember:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondUnauthenticated writes the standard missing-authentication response.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

// parseUUIDs parses a slice of UUID strings.
func parseUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(values))
	for i, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
