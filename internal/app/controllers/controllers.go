package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studysphere/backend/internal/app/models"
	"github.com/studysphere/backend/internal/app/models/dto"
)

// currentUserID pulls the authenticated user's ID from the gin context.
// When it is missing the middleware chain was misconfigured; the caller
// gets a 401 and the handler must return.
func currentUserID(ctx *gin.Context) (int64, bool) {
	value, exists := ctx.Get("userID")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return 0, false
	}

	userID, ok := value.(int64)
	if !ok {
		ctx.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
		return 0, false
	}

	return userID, true
}

// currentRole returns the caller's role from the token claims.
func currentRole(ctx *gin.Context) models.RoleType {
	if value, exists := ctx.Get("roleType"); exists {
		if role, ok := value.(string); ok {
			return models.RoleType(role)
		}
	}
	return ""
}

// currentViewer builds a lightweight user from the token claims, enough
// for visibility decisions without a database round trip.
func currentViewer(ctx *gin.Context) (*models.User, bool) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return nil, false
	}

	viewer := &models.User{
		ID:       userID,
		RoleType: currentRole(ctx),
	}
	if value, exists := ctx.Get("branch"); exists {
		if branch, ok := value.(string); ok {
			viewer.Branch = branch
		}
	}

	return viewer, true
}
