package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/traineehub/internal/app/controllers"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/app/models/dto"
	"github.com/yigit/traineehub/internal/middleware"
)

// Controllers groups every HTTP controller the router mounts
type Controllers struct {
	Auth            *controllers.AuthController
	User            *controllers.UserController
	Dashboard       *controllers.DashboardController
	Trainee         *controllers.TraineeController
	Certificate     *controllers.CertificateController
	Skill           *controllers.SkillController
	Evaluation      *controllers.EvaluationController
	Interview       *controllers.InterviewController
	DevelopmentPlan *controllers.DevelopmentPlanController
	Notification    *controllers.NotificationController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.POST("/auth/login", ctrl.Auth.Login)

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}, ""))
	})

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	auth := authenticated.Group("/auth")
	{
		auth.GET("/profile", ctrl.Auth.GetProfile)
		auth.PUT("/profile", ctrl.Auth.UpdateProfile)
		auth.PUT("/change-password", ctrl.Auth.ChangePassword)
		auth.POST("/logout", ctrl.Auth.Logout)
		auth.POST("/register", authMiddleware.RoleRequired(models.RoleAdmin), ctrl.Auth.Register)
	}

	// Trainee records are visible to administrators and department staff; the
	// department restriction itself is applied per request from the caller's scope.
	staff := authenticated.Group("")
	staff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleDepartment))

	dashboard := staff.Group("/dashboard")
	{
		dashboard.GET("/stats", ctrl.Dashboard.GetStats)
		dashboard.GET("/alerts", ctrl.Dashboard.GetAlerts)
		dashboard.GET("/recent-activities", ctrl.Dashboard.GetRecentActivities)
		dashboard.GET("/overview", ctrl.Dashboard.GetOverview)
	}

	trainees := staff.Group("/trainees")
	{
		trainees.GET("", ctrl.Trainee.ListTrainees)
		trainees.GET("/export/csv", ctrl.Trainee.ExportCSV)
		trainees.POST("", ctrl.Trainee.CreateTrainee)
		trainees.GET("/:id", ctrl.Trainee.GetTrainee)
		trainees.PUT("/:id", ctrl.Trainee.UpdateTrainee)
		trainees.DELETE("/:id", ctrl.Trainee.DeleteTrainee)
		trainees.GET("/:id/health-records", ctrl.Trainee.ListHealthRecords)
		trainees.POST("/:id/health-records", ctrl.Trainee.CreateHealthRecord)
		trainees.GET("/:id/ojt-records", ctrl.Trainee.ListOJTRecords)
		trainees.POST("/:id/ojt-records", ctrl.Trainee.CreateOJTRecord)
	}

	certificates := staff.Group("/certificates")
	{
		certificates.GET("", ctrl.Certificate.ListCertificates)
		certificates.POST("", ctrl.Certificate.CreateCertificate)
		certificates.PUT("/:id", ctrl.Certificate.UpdateCertificate)
		certificates.DELETE("/:id", ctrl.Certificate.DeleteCertificate)
	}

	staff.GET("/skills", ctrl.Skill.ListSkills)

	evaluations := staff.Group("/evaluations")
	{
		evaluations.GET("", ctrl.Evaluation.ListEvaluations)
		evaluations.POST("", ctrl.Evaluation.CreateEvaluation)
		evaluations.PUT("/:id", ctrl.Evaluation.UpdateEvaluation)
	}

	interviews := staff.Group("/interviews")
	{
		interviews.GET("", ctrl.Interview.ListInterviews)
		interviews.POST("", ctrl.Interview.CreateInterview)
		interviews.PUT("/:id", ctrl.Interview.UpdateInterview)
	}

	plans := staff.Group("/development-plans")
	{
		plans.GET("", ctrl.DevelopmentPlan.ListPlans)
		plans.POST("", ctrl.DevelopmentPlan.CreatePlan)
		plans.PUT("/:id", ctrl.DevelopmentPlan.UpdatePlan)
	}

	notifications := staff.Group("/notifications")
	{
		notifications.GET("", ctrl.Notification.ListNotifications)
		notifications.PUT("/:id/read", ctrl.Notification.MarkAsRead)
		notifications.POST("/scan", authMiddleware.RoleRequired(models.RoleAdmin), ctrl.Notification.ScanAlerts)
	}

	// --- Admin-only routes ---
	users := authenticated.Group("/users")
	users.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		users.GET("", ctrl.User.ListUsers)
		users.PUT("/:id/status", ctrl.User.UpdateUserStatus)
	}
}
