package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tnpcell/portal/internal/app/controllers"
	"github.com/tnpcell/portal/internal/app/models"
	"github.com/tnpcell/portal/internal/app/models/dto"
	"github.com/tnpcell/portal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	adminController *controllers.AdminController,
	jobController *controllers.JobController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public student routes ---
	student := api.Group("/student")
	{
		student.POST("/register", studentController.Register)
		student.POST("/login", studentController.Login)
		student.POST("/logout", studentController.Logout)
		// Cancellation is unauthenticated: a pending student has no session yet.
		student.POST("/cancel-registration", studentController.CancelRegistration)
	}

	// --- Authenticated student routes ---
	studentProtected := api.Group("/student")
	studentProtected.Use(authMiddleware.SessionAuth(), authMiddleware.RoleRequired(models.RoleStudent))
	{
		studentProtected.GET("/profile", studentController.GetProfile)
		studentProtected.PUT("/profile", studentController.UpdateProfile)
		studentProtected.PUT("/password", studentController.ChangePassword)
		studentProtected.GET("/applications", jobController.MyApplications)
	}

	// --- Job routes (approved students only) ---
	jobs := api.Group("/jobs")
	jobs.Use(authMiddleware.SessionAuth(), authMiddleware.RoleRequired(models.RoleStudent))
	{
		jobs.GET("", jobController.ListJobs)
		jobs.POST("/:id/apply", jobController.Apply)
	}

	// --- Admin routes ---
	admin := api.Group("/admin")
	{
		admin.POST("/login", adminController.Login)
		admin.POST("/logout", adminController.Logout)

		adminProtected := admin.Group("")
		adminProtected.Use(authMiddleware.SessionAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
		{
			adminProtected.GET("/students/pending", adminController.ListPendingStudents)
			adminProtected.GET("/students", adminController.ListStudents)
			adminProtected.PUT("/students/approve", adminController.ApproveStudent)
			adminProtected.PUT("/students/bulk-approve", adminController.BulkApproveStudents)
			adminProtected.POST("/students/bulk-delete", adminController.BulkDeleteStudents)
			adminProtected.DELETE("/students/:id", adminController.DeleteStudent)

			adminProtected.POST("/jobs", jobController.CreateJob)
			adminProtected.GET("/jobs", jobController.ListJobs)
			adminProtected.DELETE("/jobs/:id", jobController.DeleteJob)
			adminProtected.GET("/jobs/:id/applicants", jobController.ListApplicants)
		}
	}

	// Health check endpoint (public)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
