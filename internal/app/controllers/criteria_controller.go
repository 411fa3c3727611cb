package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/derya/admitly/internal/app/models/dto"
	"github.com/derya/admitly/internal/app/services"
	"github.com/derya/admitly/internal/middleware"
)

// CriteriaController handles eligibility criteria administration
type CriteriaController struct {
	admissionService *services.AdmissionService
	logger           zerolog.Logger
}

// NewCriteriaController creates a new CriteriaController
func NewCriteriaController(admissionService *services.AdmissionService, logger zerolog.Logger) *CriteriaController {
	return &CriteriaController{
		admissionService: admissionService,
		logger:           logger,
	}
}

// CreateCriteria publishes a program's active eligibility criteria
// @Summary Publish eligibility criteria
// @Description Creates the active criteria record for a program, deactivating any previous one. Applications checked afterwards are evaluated against the new record.
// @Tags criteria
// @Accept json
// @Produce json
// @Param request body dto.CreateCriteriaRequest true "Criteria definition"
// @Success 201 {object} dto.APIResponse{data=models.EligibilityCriteria}
// @Failure 400 {object} dto.ErrorResponse "Criteria defines no check"
// @Security BearerAuth
// @Router /criteria [post]
func (c *CriteriaController) CreateCriteria(ctx *gin.Context) {
	var req dto.CreateCriteriaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid criteria payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	criteria := req.ToModel()
	if err := c.admissionService.CreateCriteria(ctx.Request.Context(), criteria); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: criteria, Timestamp: time.Now()})
}

// GetActiveCriteria retrieves the active criteria for a program
// @Summary Get a program's active criteria
// @Tags criteria
// @Produce json
// @Param programId path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=models.EligibilityCriteria}
// @Failure 404 {object} dto.ErrorResponse "No active criteria for the program"
// @Security BearerAuth
// @Router /programs/{programId}/criteria/active [get]
func (c *CriteriaController) GetActiveCriteria(ctx *gin.Context) {
	programID, err := strconv.ParseInt(ctx.Param("programId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid program ID").WithField("programId")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	criteria, err := c.admissionService.GetActiveCriteria(ctx.Request.Context(), programID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: criteria, Timestamp: time.Now()})
}
