package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/derya/admitly/internal/app/admission"
	"github.com/derya/admitly/internal/app/models"
	"github.com/derya/admitly/internal/app/models/dto"
	"github.com/derya/admitly/internal/app/services"
	"github.com/derya/admitly/internal/middleware"
	"github.com/derya/admitly/internal/pkg/helpers"
)

// ApplicationController handles application submission, retrieval,
// eligibility checks and lifecycle transitions
type ApplicationController struct {
	admissionService *services.AdmissionService
	logger           zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(admissionService *services.AdmissionService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		admissionService: admissionService,
		logger:           logger,
	}
}

// SubmitApplication handles new application submission
// @Summary Submit a new application
// @Description Creates an application in status SUBMITTED with a generated application number
// @Tags applications
// @Accept json
// @Produce json
// @Param request body dto.SubmitApplicationRequest true "Application details"
// @Success 201 {object} dto.APIResponse{data=models.AdmissionApplication} "Application created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Applicant already applied to this program"
// @Router /applications [post]
func (c *ApplicationController) SubmitApplication(ctx *gin.Context) {
	var req dto.SubmitApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid application payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	application := &models.AdmissionApplication{
		ApplicantName:  req.ApplicantName,
		ApplicantEmail: req.ApplicantEmail,
		DateOfBirth:    req.DateOfBirth,
		ProgramID:      req.ProgramID,
		Batch:          req.Batch,
		Semester:       models.Semester(req.Semester),
		Remarks:        req.Remarks,
	}
	if err := c.admissionService.SubmitApplication(ctx.Request.Context(), application); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: application, Timestamp: time.Now()})
}

// GetApplication retrieves one application
// @Summary Get an application
// @Description Retrieves an application by its numeric ID
// @Tags applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.AdmissionApplication}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Security BearerAuth
// @Router /applications/{id} [get]
func (c *ApplicationController) GetApplication(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application ID").WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	application, err := c.admissionService.GetApplication(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: application, Timestamp: time.Now()})
}

// GetApplications lists applications matching the given filters
// @Summary List applications
// @Description Returns a paginated listing of applications, optionally filtered by program, batch, semester and status
// @Tags applications
// @Produce json
// @Param programId query int false "Program ID"
// @Param batch query string false "Batch"
// @Param semester query string false "Semester" Enums(FALL, SPRING)
// @Param status query string false "Application status"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter value"
// @Security BearerAuth
// @Router /applications [get]
func (c *ApplicationController) GetApplications(ctx *gin.Context) {
	var filter models.ApplicationFilter

	if raw := ctx.Query("programId"); raw != "" {
		programID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || programID <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid program ID").WithField("programId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.ProgramID = &programID
	}
	filter.Batch = ctx.Query("batch")
	if raw := ctx.Query("semester"); raw != "" {
		semester := models.Semester(raw)
		if semester != models.SemesterFall && semester != models.SemesterSpring {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid semester").WithField("semester")
			errorDetail = errorDetail.WithDetails("Semester must be FALL or SPRING")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.Semester = &semester
	}
	if raw := ctx.Query("status"); raw != "" {
		status := models.ApplicationStatus(raw)
		if !admission.KnownStatus(status) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application status").WithField("status")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.Status = &status
	}

	page, size := helpers.ParsePaginationParams(ctx)

	applications, total, err := c.admissionService.ListApplications(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if applications == nil {
		applications = []*models.AdmissionApplication{}
	}

	response := dto.ApplicationListResponse{
		Applications: applications,
		Pagination:   helpers.NewPaginationInfo(total, page, size),
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: response, Timestamp: time.Now()})
}

// CheckEligibility evaluates an application against the program's criteria
// @Summary Run an eligibility check
// @Description Evaluates the supplied academic history against the program's active criteria and records the verdict. A SUBMITTED application is moved to UNDER_REVIEW first.
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param request body dto.CheckEligibilityRequest true "Academic history and optional test scores"
// @Success 200 {object} dto.APIResponse{data=dto.EligibilityCheckResponse}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 422 {object} dto.ErrorResponse "Application is past review"
// @Security BearerAuth
// @Router /applications/{id}/check-eligibility [post]
func (c *ApplicationController) CheckEligibility(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application ID").WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CheckEligibilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid eligibility check payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	reviewerID, ok := reviewerIDFromContext(ctx)
	if !ok {
		return
	}

	history := make([]models.AcademicHistoryEntry, 0, len(req.AcademicHistory))
	for _, entry := range req.AcademicHistory {
		history = append(history, entry.ToModel())
	}
	var scores *admission.TestScores
	if req.TestScores != nil {
		scores = &admission.TestScores{
			EntryTest:  req.TestScores.EntryTest,
			Interview:  req.TestScores.Interview,
			Experience: req.TestScores.Experience,
		}
	}

	application, err := c.admissionService.CheckEligibility(ctx.Request.Context(), id, history, scores, req.AdmissionDate, reviewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.EligibilityCheckResponse{
		ApplicationID: application.ID,
		Status:        application.Status,
	}
	if application.EligibilityStatus != nil {
		response.EligibilityStatus = *application.EligibilityStatus
	}
	if application.EligibilityScore != nil {
		response.EligibilityScore = *application.EligibilityScore
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: response, Timestamp: time.Now()})
}

// Transition applies an explicit lifecycle transition
// @Summary Transition an application
// @Description Moves an application to the requested status. Reopening a rejected or not-eligible application requires a reason; scheduling an interview requires an interview time.
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param request body dto.TransitionRequest true "Target status and optional reason"
// @Success 200 {object} dto.APIResponse{data=models.AdmissionApplication}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Application changed concurrently"
// @Failure 422 {object} dto.ErrorResponse "Transition not allowed from the current status"
// @Security BearerAuth
// @Router /applications/{id}/transition [post]
func (c *ApplicationController) Transition(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application ID").WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.TransitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid transition payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	reviewerID, ok := reviewerIDFromContext(ctx)
	if !ok {
		return
	}

	application, err := c.admissionService.Transition(ctx.Request.Context(), id,
		models.ApplicationStatus(req.TargetStatus), reviewerID, req.Reason, req.InterviewAt)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: application, Timestamp: time.Now()})
}
