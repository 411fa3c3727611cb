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
	"github.com/derya/admitly/internal/config"
	"github.com/derya/admitly/internal/middleware"
)

// MeritListController handles merit list generation and retrieval
type MeritListController struct {
	meritListService *services.MeritListService
	defaultWeights   admission.Weights
	logger           zerolog.Logger
}

// NewMeritListController creates a new MeritListController
func NewMeritListController(meritListService *services.MeritListService, cfg *config.Config, logger zerolog.Logger) *MeritListController {
	return &MeritListController{
		meritListService: meritListService,
		defaultWeights: admission.Weights{
			Academic:   cfg.Admission.DefaultWeights.Academic,
			EntryTest:  cfg.Admission.DefaultWeights.EntryTest,
			Interview:  cfg.Admission.DefaultWeights.Interview,
			Experience: cfg.Admission.DefaultWeights.Experience,
		},
		logger: logger,
	}
}

// Generate creates a new merit list generation
// @Summary Generate a merit list
// @Description Scores, ranks and allocates the program's candidate pool against the available seats, persisting the result as a new generation. Repeating the request with an unchanged pool produces an identical list under the next generation number.
// @Tags merit-lists
// @Accept json
// @Produce json
// @Param request body dto.GenerateMeritListRequest true "Generation parameters"
// @Success 201 {object} dto.APIResponse{data=models.MeritList} "Merit list generated; warnings report skipped applicants and write-back conflicts"
// @Failure 400 {object} dto.ErrorResponse "Invalid seats or weights"
// @Failure 404 {object} dto.ErrorResponse "No rankable applications for the pool"
// @Security BearerAuth
// @Router /merit-lists [post]
func (c *MeritListController) Generate(ctx *gin.Context) {
	var req dto.GenerateMeritListRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid merit list generation payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	reviewerID, ok := reviewerIDFromContext(ctx)
	if !ok {
		return
	}

	weights := c.defaultWeights
	if req.Weights != nil {
		weights = req.Weights.ToWeights()
	}
	var waitlistFactor float64
	if req.WaitlistFactor != nil {
		waitlistFactor = *req.WaitlistFactor
	}

	list, warnings, err := c.meritListService.Generate(ctx.Request.Context(), services.GenerateParams{
		ProgramID:      req.ProgramID,
		Batch:          req.Batch,
		Semester:       models.Semester(req.Semester),
		TotalSeats:     req.TotalSeats,
		Weights:        weights,
		WaitlistFactor: waitlistFactor,
		ActorID:        reviewerID,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      list,
		Warnings:  warnings,
		Timestamp: time.Now(),
	})
}

// GetMeritList retrieves one merit list with its entries
// @Summary Get a merit list
// @Tags merit-lists
// @Produce json
// @Param id path int true "Merit list ID"
// @Success 200 {object} dto.APIResponse{data=models.MeritList}
// @Failure 404 {object} dto.ErrorResponse "Merit list not found"
// @Security BearerAuth
// @Router /merit-lists/{id} [get]
func (c *MeritListController) GetMeritList(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid merit list ID").WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	list, err := c.meritListService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: list, Timestamp: time.Now()})
}

// GetLatestMeritList retrieves the newest generation for a pool
// @Summary Get the latest merit list for a pool
// @Description Returns the highest generation for the given program, batch and semester
// @Tags merit-lists
// @Produce json
// @Param programId query int true "Program ID"
// @Param batch query string true "Batch"
// @Param semester query string true "Semester" Enums(FALL, SPRING)
// @Success 200 {object} dto.APIResponse{data=models.MeritList}
// @Failure 404 {object} dto.ErrorResponse "No merit list generated for the pool"
// @Security BearerAuth
// @Router /merit-lists/latest [get]
func (c *MeritListController) GetLatestMeritList(ctx *gin.Context) {
	programID, err := strconv.ParseInt(ctx.Query("programId"), 10, 64)
	if err != nil || programID <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid program ID").WithField("programId")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	batch := ctx.Query("batch")
	semester := models.Semester(ctx.Query("semester"))
	if batch == "" || (semester != models.SemesterFall && semester != models.SemesterSpring) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Batch and semester are required")
		errorDetail = errorDetail.WithDetails("Semester must be FALL or SPRING")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	list, err := c.meritListService.GetLatest(ctx.Request.Context(), programID, batch, semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: list, Timestamp: time.Now()})
}
