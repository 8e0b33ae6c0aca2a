// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tnpcell/portal/internal/app/models/dto"
	"github.com/tnpcell/portal/internal/app/services"
	"github.com/tnpcell/portal/internal/middleware"
)

// StudentController handles student-facing operations
type StudentController struct {
	studentService *services.StudentService
	authMiddleware *middleware.AuthMiddleware
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, authMiddleware *middleware.AuthMiddleware, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		authMiddleware: authMiddleware,
		logger:         logger,
	}
}

// Register handles student self-registration
// @Summary Register a new student
// @Description Creates a student record. Roll numbers on the allow-list are approved immediately; everyone else waits for admin approval.
// @Tags student
// @Accept json
// @Produce json
// @Param request body dto.RegisterStudentRequest true "Student registration information"
// @Success 201 {object} dto.APIResponse{data=dto.RegisterResponse} "Registered and approved"
// @Success 202 {object} dto.APIResponse{data=dto.RegisterResponse} "Registered, pending approval"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid fields"
// @Failure 409 {object} dto.ErrorResponse "Email or roll number already registered"
// @Router /student/register [post]
func (c *StudentController) Register(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.studentService.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("rollNumber", req.RollNumber).Msg("Registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.RegisterResponse{
		Email:      student.Email,
		RollNumber: student.RollNumber,
		Status:     student.Status,
	}

	// 201 for the auto-approved path, 202 for pending: the client must
	// branch on the status code.
	if student.Approved() {
		resp.Message = "Registered and approved, you can now login."
		ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
		return
	}

	resp.Message = "Registered. Your account is pending approval by the placement cell."
	ctx.JSON(http.StatusAccepted, dto.APIResponse{Data: resp})
}

// Login handles student login
// @Summary Student login
// @Description Authenticates a student and sets the session cookie. Pending students are rejected with 403.
// @Tags student
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Registration pending approval"
// @Router /student/login [post]
func (c *StudentController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, token, err := c.studentService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Student login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.authMiddleware.SetSessionCookie(ctx, token)
	c.logger.Info().Str("rollNumber", student.RollNumber).Msg("Student logged in")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.LoginResponse{
		Message: "Logged in successfully.",
		Student: dto.NewStudentProfile(student),
	}})
}

// Logout clears the session cookie
// @Summary Student logout
// @Tags student
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /student/logout [post]
func (c *StudentController) Logout(ctx *gin.Context) {
	c.authMiddleware.ClearSessionCookie(ctx)
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Logged out."}})
}

// CancelRegistration deletes a still-pending self-registration
// @Summary Cancel a pending registration
// @Description Permanently removes a pending student record, identified by email or roll number.
// @Tags student
// @Accept json
// @Produce json
// @Param request body dto.CancelRegistrationRequest true "Email or roll number"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Registration cancelled"
// @Failure 403 {object} dto.ErrorResponse "Registration already approved"
// @Failure 404 {object} dto.ErrorResponse "No matching registration"
// @Router /student/cancel-registration [post]
func (c *StudentController) CancelRegistration(ctx *gin.Context) {
	var req dto.CancelRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.studentService.CancelRegistration(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{
		Message: "Your registration has been cancelled.",
	}})
}

// GetProfile returns the logged-in student's profile
// @Summary Get own profile
// @Tags student
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfile}
// @Failure 401 {object} dto.ErrorResponse
// @Router /student/profile [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	studentID, ok := sessionUserID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetProfile(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewStudentProfile(student)})
}

// UpdateProfile updates the logged-in student's profile fields
// @Summary Update own profile
// @Tags student
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfile}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /student/profile [put]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	studentID, ok := sessionUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.studentService.UpdateProfile(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewStudentProfile(student)})
}

// ChangePassword replaces the logged-in student's password
// @Summary Change own password
// @Tags student
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Wrong current password or weak new password"
// @Failure 401 {object} dto.ErrorResponse
// @Router /student/password [put]
func (c *StudentController) ChangePassword(ctx *gin.Context) {
	studentID, ok := sessionUserID(ctx)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.studentService.ChangePassword(ctx.Request.Context(), studentID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{
		Message: "Password changed successfully.",
	}})
}

// sessionUserID pulls the authenticated subject id from the gin context,
// aborting with 401 if the auth middleware did not run.
func sessionUserID(ctx *gin.Context) (int64, bool) {
	value, exists := ctx.Get(middleware.CtxUserID)
	if !exists {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Please log in to continue.")))
		return 0, false
	}

	id, ok := value.(int64)
	if !ok || id <= 0 {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Something went wrong. Please try again later.")))
		return 0, false
	}

	return id, true
}
