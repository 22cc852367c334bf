package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/traineehub/internal/app/auth"
	appControllers "github.com/yigit/traineehub/internal/app/controllers"
	appMigrations "github.com/yigit/traineehub/internal/app/migrations"
	appRepos "github.com/yigit/traineehub/internal/app/repositories"
	appRoutes "github.com/yigit/traineehub/internal/app/routes"
	appServices "github.com/yigit/traineehub/internal/app/services"
	"github.com/yigit/traineehub/internal/config"
	"github.com/yigit/traineehub/internal/db"
	"github.com/yigit/traineehub/internal/jobs"
	appMiddleware "github.com/yigit/traineehub/internal/middleware"
	pkgAuth "github.com/yigit/traineehub/internal/pkg/auth"
	"github.com/yigit/traineehub/internal/pkg/helpers"
	"github.com/yigit/traineehub/internal/pkg/logger"
	"github.com/yigit/traineehub/internal/pkg/validation"
	"github.com/yigit/traineehub/internal/seed"
)

const serviceName = "traineehub"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	AuthService    *appServices.AuthService
	Dashboard      appServices.DashboardService
	Notifications  appServices.NotificationService
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware

	// JobRunner is nil when background jobs are disabled
	JobRunner *jobs.Runner
	Logger    zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  strings.ToLower(cfg.Logging.Format) == "text",
		Service: serviceName,
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(dbPool).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(ctx, dbPool, lgr); err != nil {
		// Missing seed data is recoverable by hand, so startup continues
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, jobs and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	if err := validation.RegisterWithGin(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(dbPool)
	repos := deps.Repos

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 168*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthzService = appAuth.NewAuthorizationService(repos.TraineeRepository)

	deps.AuthService = appServices.NewAuthService(repos.UserRepository, deps.JWTService, logger.WithComponent("auth"))
	userService := appServices.NewUserService(repos.UserRepository)
	deps.Dashboard = appServices.NewDashboardService(repos.DashboardRepository, appServices.NewDashboardSettings(cfg), time.Now)
	traineeService := appServices.NewTraineeService(repos, deps.AuthzService, cfg.Location())
	recordService := appServices.NewTraineeRecordService(repos.HealthRecordRepository, repos.OJTRecordRepository, deps.AuthzService)
	certificateService := appServices.NewCertificateService(repos.CertificateRepository, deps.AuthzService)
	skillService := appServices.NewSkillService(repos.SkillRepository)
	evaluationService := appServices.NewEvaluationService(repos.EvaluationRepository, repos.SkillRepository, deps.AuthzService)
	interviewService := appServices.NewInterviewService(repos.InterviewRepository, deps.AuthzService)
	planService := appServices.NewDevelopmentPlanService(repos.DevelopmentPlanRepository, deps.AuthzService)
	deps.Notifications = appServices.NewNotificationService(repos.NotificationRepository, deps.Dashboard, logger.WithComponent("notifications"))

	// A nil *jobs.Runner must not reach the controller as a non-nil interface
	var scanQueue appControllers.AlertScanQueue
	if cfg.Jobs.Enabled {
		runner, err := jobs.NewRunner(cfg, deps.Notifications, logger.WithComponent("jobs"))
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to initialize background jobs")
			return nil, fmt.Errorf("failed to initialize background jobs: %w", err)
		}
		deps.JobRunner = runner
		scanQueue = runner
	} else {
		lgr.Info().Msg("Background jobs disabled, alert scans run inline")
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, repos.UserRepository)

	deps.Controllers = appRoutes.Controllers{
		Auth:            appControllers.NewAuthController(deps.AuthService, logger.WithComponent("auth")),
		User:            appControllers.NewUserController(userService),
		Dashboard:       appControllers.NewDashboardController(deps.Dashboard, cfg.Alerts.RecentActivitiesLimit),
		Trainee:         appControllers.NewTraineeController(traineeService, recordService),
		Certificate:     appControllers.NewCertificateController(certificateService),
		Skill:           appControllers.NewSkillController(skillService),
		Evaluation:      appControllers.NewEvaluationController(evaluationService),
		Interview:       appControllers.NewInterviewController(interviewService),
		DevelopmentPlan: appControllers.NewDevelopmentPlanController(planService),
		Notification:    appControllers.NewNotificationController(deps.Notifications, scanQueue),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(logger.WithComponent("http")),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
