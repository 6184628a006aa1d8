// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/splitledger/backend/config"
	"github.com/splitledger/backend/internal/application/usecase/auth"
	"github.com/splitledger/backend/internal/application/usecase/balance"
	"github.com/splitledger/backend/internal/application/usecase/group"
	"github.com/splitledger/backend/internal/application/usecase/settlement"
	"github.com/splitledger/backend/internal/application/usecase/split"
	"github.com/splitledger/backend/internal/infra/server/router"
	"github.com/splitledger/backend/internal/integration/adapters"
	"github.com/splitledger/backend/internal/integration/entrypoint/controller"
	"github.com/splitledger/backend/internal/integration/entrypoint/middleware"
	"github.com/splitledger/backend/internal/integration/lock"
	"github.com/splitledger/backend/internal/integration/notification"
	"github.com/splitledger/backend/internal/integration/notification/templates"
	"github.com/splitledger/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config             *config.Config
	DB                 *gorm.DB
	Router             *router.Router
	NotificationWorker *notification.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	groupRepo := persistence.NewGroupRepository(db)
	splitRepo := persistence.NewSplitRepository(db)
	settlementRepo := persistence.NewSettlementRepository(db)
	notificationQueueRepo := persistence.NewNotificationQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	splitLocker := lock.NewRedisSplitLocker(redisClient)
	notificationService := notification.NewService(notificationQueueRepo)

	// Create notification delivery pipeline
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	sender := notification.NewResendClient(
		cfg.Notification.ResendAPIKey,
		cfg.Notification.FromName,
		cfg.Notification.FromEmail,
	)
	worker := notification.NewWorker(notificationQueueRepo, sender, renderer, notification.WorkerConfig{
		PollInterval: cfg.Notification.PollInterval,
		BatchSize:    cfg.Notification.BatchSize,
	})

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Create group use cases
	createGroupUseCase := group.NewCreateGroupUseCase(groupRepo, userRepo)
	listGroupsUseCase := group.NewListGroupsUseCase(groupRepo)
	getGroupUseCase := group.NewGetGroupUseCase(groupRepo)
	updateGroupUseCase := group.NewUpdateGroupUseCase(groupRepo, userRepo)
	deleteGroupUseCase := group.NewDeleteGroupUseCase(groupRepo)

	// Create split use cases
	createSplitUseCase := split.NewCreateSplitUseCase(splitRepo, groupRepo, notificationService)
	replaceSplitUseCase := split.NewReplaceSplitUseCase(splitRepo, groupRepo, splitLocker, notificationService)
	deleteSplitUseCase := split.NewDeleteSplitUseCase(splitRepo)
	listGroupSplitsUseCase := split.NewListGroupSplitsUseCase(splitRepo, groupRepo)

	// Create settlement use cases
	recordSettlementUseCase := settlement.NewRecordSettlementUseCase(
		settlementRepo,
		splitRepo,
		userRepo,
		splitLocker,
		notificationService,
	)
	listSettlementsUseCase := settlement.NewListSettlementsUseCase(settlementRepo)
	listCandidatesUseCase := settlement.NewListCandidatesUseCase(splitRepo, settlementRepo)

	// Create balance use cases
	getBalanceUseCase := balance.NewGetBalanceUseCase(splitRepo, settlementRepo)

	// Create controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		},
	)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	groupController := controller.NewGroupController(
		createGroupUseCase,
		listGroupsUseCase,
		getGroupUseCase,
		updateGroupUseCase,
		deleteGroupUseCase,
	)

	splitController := controller.NewSplitController(
		createSplitUseCase,
		replaceSplitUseCase,
		deleteSplitUseCase,
		listGroupSplitsUseCase,
	)

	settlementController := controller.NewSettlementController(
		recordSettlementUseCase,
		listSettlementsUseCase,
		listCandidatesUseCase,
	)

	balanceController := controller.NewBalanceController(getBalanceUseCase)

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
		groupController,
		splitController,
		settlementController,
		balanceController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:             cfg,
		DB:                 db,
		Router:             r,
		NotificationWorker: worker,
	}, nil
}
