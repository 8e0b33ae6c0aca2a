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

// AdminController handles placement-cell administration
type AdminController struct {
	adminService   *services.AdminService
	authMiddleware *middleware.AuthMiddleware
	logger         zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, authMiddleware *middleware.AuthMiddleware, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService:   adminService,
		authMiddleware: authMiddleware,
		logger:         logger,
	}
}

// Login handles admin login
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Admin credentials"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid credentials"
// @Router /admin/login [post]
func (c *AdminController) Login(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	admin, token, err := c.adminService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Admin login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.authMiddleware.SetSessionCookie(ctx, token)
	c.logger.Info().Str("email", admin.Email).Msg("Admin logged in")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Logged in successfully."}})
}

// Logout clears the admin session cookie
// @Summary Admin logout
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /admin/logout [post]
func (c *AdminController) Logout(ctx *gin.Context) {
	c.authMiddleware.ClearSessionCookie(ctx)
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Logged out."}})
}

// ListPendingStudents lists students awaiting approval
// @Summary List pending students
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentProfile}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/students/pending [get]
func (c *AdminController) ListPendingStudents(ctx *gin.Context) {
	students, err := c.adminService.ListPendingStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	profiles := make([]*dto.StudentProfile, 0, len(students))
	for i := range students {
		profiles = append(profiles, dto.NewStudentProfile(&students[i]))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: profiles})
}

// ListStudents lists every registered student
// @Summary List all students
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentProfile}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/students [get]
func (c *AdminController) ListStudents(ctx *gin.Context) {
	students, err := c.adminService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	profiles := make([]*dto.StudentProfile, 0, len(students))
	for i := range students {
		profiles = append(profiles, dto.NewStudentProfile(&students[i]))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: profiles})
}

// ApproveStudent sets a single student's approval state
// @Summary Approve or unapprove one student
// @Description Flips one student between approved and pending by roll number.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.ApproveStudentRequest true "Roll number and desired state"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "No student with that roll number"
// @Router /admin/students/approve [put]
func (c *AdminController) ApproveStudent(ctx *gin.Context) {
	var req dto.ApproveStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.adminService.SetApproval(ctx.Request.Context(), req.RollNumber, *req.Approve); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Student approved."
	if !*req.Approve {
		message = "Student approval revoked."
	}

	c.logger.Info().Str("rollNumber", req.RollNumber).Bool("approve", *req.Approve).Msg("Approval updated")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: message}})
}

// BulkApproveStudents sets the approval state for a batch of roll numbers
// @Summary Bulk approve students
// @Description Approves (or unapproves) every listed roll number in one statement. Unknown roll numbers are skipped.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.BulkApproveRequest true "Roll numbers"
// @Success 200 {object} dto.APIResponse{data=dto.BulkApproveResponse}
// @Failure 400 {object} dto.ErrorResponse "Empty roll number list"
// @Router /admin/students/bulk-approve [put]
func (c *AdminController) BulkApproveStudents(ctx *gin.Context) {
	var req dto.BulkApproveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	approve := *req.Approve
	modified, err := c.adminService.BulkSetApproval(ctx.Request.Context(), req.RollNumbers, approve)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("modifiedCount", modified).Bool("approve", approve).Msg("Bulk approval applied")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.BulkApproveResponse{
		Message:       "Approval state updated.",
		ModifiedCount: modified,
	}})
}

// BulkDeleteStudents removes a batch of students and their applications
// @Summary Bulk delete students
// @Description Deletes every listed roll number along with their job applications, in one transaction.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteRequest true "Roll numbers"
// @Success 200 {object} dto.APIResponse{data=dto.BulkDeleteResponse}
// @Failure 400 {object} dto.ErrorResponse "Empty roll number list"
// @Router /admin/students/bulk-delete [post]
func (c *AdminController) BulkDeleteStudents(ctx *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	deleted, err := c.adminService.BulkDeleteStudents(ctx.Request.Context(), req.RollNumbers)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("deletedCount", deleted).Msg("Bulk delete applied")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.BulkDeleteResponse{
		Message:      "Students deleted.",
		DeletedCount: deleted,
	}})
}

// DeleteStudent removes a single student and their applications
// @Summary Delete one student
// @Tags admin
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Malformed id"
// @Failure 404 {object} dto.ErrorResponse "No such student"
// @Router /admin/students/{id} [delete]
func (c *AdminController) DeleteStudent(ctx *gin.Context) {
	studentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || studentID <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid student id."))
		return
	}

	if err := c.adminService.DeleteStudent(ctx.Request.Context(), studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("studentID", studentID).Msg("Student deleted")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Student deleted."}})
}
