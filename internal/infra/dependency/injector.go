// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/goalguard/backend/config"
	"github.com/goalguard/backend/internal/application/usecase/auth"
	"github.com/goalguard/backend/internal/application/usecase/draw"
	"github.com/goalguard/backend/internal/application/usecase/goal"
	"github.com/goalguard/backend/internal/application/usecase/task"
	"github.com/goalguard/backend/internal/application/usecase/user"
	"github.com/goalguard/backend/internal/infra/server/router"
	"github.com/goalguard/backend/internal/integration/adapters"
	"github.com/goalguard/backend/internal/integration/email"
	"github.com/goalguard/backend/internal/integration/email/templates"
	"github.com/goalguard/backend/internal/integration/entrypoint/controller"
	"github.com/goalguard/backend/internal/integration/entrypoint/middleware"
	"github.com/goalguard/backend/internal/integration/persistence"
	"github.com/goalguard/backend/internal/integration/scheduler"
)

// Injector holds all application dependencies.
type Injector struct {
	Config        *config.Config
	DB            *gorm.DB
	Redis         *redis.Client
	Router        *router.Router
	EmailWorker   *email.Worker
	DrawScheduler *scheduler.Scheduler
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, logger *slog.Logger) (*Injector, error) {
	// Create redis client
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}
	if cfg.Redis.Password != "" {
		redisOpts.Password = cfg.Redis.Password
	}
	redisClient := redis.NewClient(redisOpts)

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	taskRepo := persistence.NewTaskRepository(db)
	completionRepo := persistence.NewCompletionRepository(db)
	drawRepo := persistence.NewDrawRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	clock := adapters.NewSystemClock()
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	idempotencyStore := adapters.NewRedisIdempotencyStore(redisClient)
	gateway := adapters.NewModulrGateway(
		cfg.Gateway.BaseURL,
		cfg.Gateway.APIKey,
		cfg.Gateway.APISecret,
		idempotencyStore,
		logger,
	)
	notifier := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	// Create email worker
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	emailSender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	emailWorker := email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, gateway, notifier, clock, logger)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Create user use cases
	getProfileUseCase := user.NewGetProfileUseCase(userRepo)
	updateTierUseCase := user.NewUpdateTierUseCase(userRepo)

	// Create goal use cases
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, userRepo, gateway, clock, logger)
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo, clock)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo, clock)
	contributeUseCase := goal.NewContributeUseCase(goalRepo, userRepo, gateway, notifier, clock, logger)
	withdrawUseCase := goal.NewWithdrawUseCase(goalRepo, userRepo, gateway, clock)
	creditPrizeUseCase := goal.NewCreditPrizeUseCase(userRepo, transactionRepo, gateway, clock)
	listTransactionsUseCase := goal.NewListTransactionsUseCase(goalRepo, transactionRepo)

	// Create task use cases
	createTaskUseCase := task.NewCreateTaskUseCase(taskRepo)
	listTasksUseCase := task.NewListTasksUseCase(taskRepo, completionRepo, clock)
	listUserTasksUseCase := task.NewListUserTasksUseCase(completionRepo)
	startTaskUseCase := task.NewStartTaskUseCase(taskRepo, completionRepo, clock)
	submitTaskUseCase := task.NewSubmitTaskUseCase(taskRepo, completionRepo, clock)
	reviewTaskUseCase := task.NewReviewTaskUseCase(completionRepo, userRepo, clock)

	// Create draw use cases
	eligibilityUseCase := draw.NewEligibilityUseCase(completionRepo)
	createDrawUseCase := draw.NewCreateDrawUseCase(drawRepo)
	listDrawsUseCase := draw.NewListDrawsUseCase(drawRepo, clock)
	getEntriesUseCase := draw.NewGetEntriesUseCase(drawRepo, eligibilityUseCase)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	executeDrawUseCase := draw.NewExecuteDrawUseCase(
		drawRepo,
		userRepo,
		eligibilityUseCase,
		creditPrizeUseCase,
		notifier,
		clock,
		rng,
		cfg.Gateway.PoolAccountID,
		logger,
	)
	runDueDrawsUseCase := draw.NewRunDueDrawsUseCase(drawRepo, executeDrawUseCase, clock, logger)

	// Create draw scheduler
	drawScheduler := scheduler.NewScheduler(runDueDrawsUseCase, scheduler.Config{
		TickInterval: cfg.Draws.TickInterval,
	})

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	userController := controller.NewUserController(
		getProfileUseCase,
		updateTierUseCase,
	)

	goalController := controller.NewGoalController(
		createGoalUseCase,
		listGoalsUseCase,
		getGoalUseCase,
		contributeUseCase,
		withdrawUseCase,
		listTransactionsUseCase,
	)

	taskController := controller.NewTaskController(
		createTaskUseCase,
		listTasksUseCase,
		listUserTasksUseCase,
		startTaskUseCase,
		submitTaskUseCase,
		reviewTaskUseCase,
	)

	drawController := controller.NewDrawController(
		createDrawUseCase,
		listDrawsUseCase,
		getEntriesUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		userController,
		goalController,
		taskController,
		drawController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:        cfg,
		DB:            db,
		Redis:         redisClient,
		Router:        r,
		EmailWorker:   emailWorker,
		DrawScheduler: drawScheduler,
	}, nil
}
