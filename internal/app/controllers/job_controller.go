package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tnpcell/portal/internal/app/models/dto"
	"github.com/tnpcell/portal/internal/app/services"
	"github.com/tnpcell/portal/internal/middleware"
	"github.com/tnpcell/portal/internal/pkg/apperrors"
)

// JobController handles job postings and applications
type JobController struct {
	jobService *services.JobService
	logger     zerolog.Logger
}

// NewJobController creates a new JobController
func NewJobController(jobService *services.JobService, logger zerolog.Logger) *JobController {
	return &JobController{
		jobService: jobService,
		logger:     logger,
	}
}

// CreateJob posts a new job opening
// @Summary Create a job posting
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body dto.CreateJobRequest true "Job details"
// @Success 201 {object} dto.APIResponse{data=models.Job}
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/jobs [post]
func (c *JobController) CreateJob(ctx *gin.Context) {
	var req dto.CreateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	job, err := c.jobService.CreateJob(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("jobID", job.ID).Str("name", job.Name).Msg("Job posted")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: job})
}

// ListJobs lists all current job postings
// @Summary List job postings
// @Tags jobs
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Job}
// @Router /jobs [get]
func (c *JobController) ListJobs(ctx *gin.Context) {
	jobs, err := c.jobService.ListJobs(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: jobs})
}

// DeleteJob removes a posting and its applications
// @Summary Delete a job posting
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/jobs/{id} [delete]
func (c *JobController) DeleteJob(ctx *gin.Context) {
	jobID, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.jobService.DeleteJob(ctx.Request.Context(), jobID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("jobID", jobID).Msg("Job deleted")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Job deleted."}})
}

// Apply records the logged-in student's application to a job
// @Summary Apply to a job
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 201 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "No such job"
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Router /jobs/{id}/apply [post]
func (c *JobController) Apply(ctx *gin.Context) {
	studentID, ok := sessionUserID(ctx)
	if !ok {
		return
	}

	jobID, ok := pathID(ctx)
	if !ok {
		return
	}

	application, err := c.jobService.Apply(ctx.Request.Context(), studentID, jobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("studentID", studentID).Int64("jobID", jobID).Msg("Application recorded")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.ApplicationResponse{
		ID:        application.ID,
		AppliedAt: application.AppliedAt,
		Job:       application.Job,
	}})
}

// MyApplications lists the logged-in student's applications
// @Summary List own applications
// @Tags jobs
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse}
// @Router /student/applications [get]
func (c *JobController) MyApplications(ctx *gin.Context) {
	studentID, ok := sessionUserID(ctx)
	if !ok {
		return
	}

	applications, err := c.jobService.ListStudentApplications(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]*dto.ApplicationResponse, 0, len(applications))
	for _, a := range applications {
		resp = append(resp, &dto.ApplicationResponse{
			ID:        a.ID,
			AppliedAt: a.AppliedAt,
			Job:       a.Job,
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// ListApplicants lists every student who applied to a job
// @Summary List applicants for a job
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicantResponse}
// @Failure 404 {object} dto.ErrorResponse "No such job"
// @Router /admin/jobs/{id}/applicants [get]
func (c *JobController) ListApplicants(ctx *gin.Context) {
	jobID, ok := pathID(ctx)
	if !ok {
		return
	}

	applications, err := c.jobService.ListApplicants(ctx.Request.Context(), jobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]*dto.ApplicantResponse, 0, len(applications))
	for _, a := range applications {
		applicant := &dto.ApplicantResponse{ID: a.ID, AppliedAt: a.AppliedAt}
		if a.Student != nil {
			applicant.Student = dto.NewStudentProfile(a.Student)
		}
		resp = append(resp, applicant)
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// pathID parses the numeric :id path parameter, aborting with 400 when malformed.
func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid id."))
		return 0, false
	}
	return id, true
}
