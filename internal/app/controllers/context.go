package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derya/admitly/internal/app/models/dto"
)

// reviewerIDFromContext extracts the authenticated reviewer's ID placed in
// the context by the auth middleware. It writes the error response itself
// when the ID is missing.
func reviewerIDFromContext(ctx *gin.Context) (int64, bool) {
	value, exists := ctx.Get("reviewerID")
	if !exists {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}

	reviewerID, ok := value.(int64)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Invalid reviewer identity in context")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return reviewerID, true
}
