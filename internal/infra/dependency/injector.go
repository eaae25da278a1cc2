// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/personal-ledger/backend/config"
	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/application/usecase/analytics"
	"github.com/personal-ledger/backend/internal/application/usecase/auth"
	"github.com/personal-ledger/backend/internal/application/usecase/backup"
	"github.com/personal-ledger/backend/internal/application/usecase/bankalias"
	"github.com/personal-ledger/backend/internal/application/usecase/category"
	"github.com/personal-ledger/backend/internal/application/usecase/setting"
	"github.com/personal-ledger/backend/internal/application/usecase/sms"
	"github.com/personal-ledger/backend/internal/application/usecase/transaction"
	"github.com/personal-ledger/backend/internal/infra/cache"
	infradb "github.com/personal-ledger/backend/internal/infra/db"
	"github.com/personal-ledger/backend/internal/infra/server/router"
	"github.com/personal-ledger/backend/internal/integration/adapters"
	"github.com/personal-ledger/backend/internal/integration/email"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/middleware"
	"github.com/personal-ledger/backend/internal/integration/persistence"
)

// emailRetentionDays is how long sent and failed outbox rows are kept.
const emailRetentionDays = 30

// Injector holds all application dependencies.
type Injector struct {
	Config     *config.Config
	DB         *gorm.DB
	Router     *router.Router
	EmailQueue adapter.EmailQueueRepository

	// Housekeep drops stale auth tokens, old outbox rows and expired rate limit windows.
	Housekeep func(ctx context.Context) error
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case ingestion is serialised in-process only.
// now may be nil to use the wall clock.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, now func() time.Time) *Injector {
	if err := dto.SetDisplayTimezone(cfg.Ledger.DisplayTimezone); err != nil {
		slog.Warn("Unknown display timezone, using UTC",
			"timezone", cfg.Ledger.DisplayTimezone,
			"error", err,
		)
	}

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	settingRepo := persistence.NewSettingRepository(db)
	analyticsRepo := persistence.NewAnalyticsRepository(db)
	aliasRepo := persistence.NewBankAliasRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry, tokenRepo, now)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo, now)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL, now)

	var locker adapter.IngestLocker
	var redisProbe controller.Probe
	if redisClient != nil {
		locker = adapters.NewRedisIngestLocker(redisClient, cfg.Redis.IngestLockTTL)
		redisProbe = cache.Probe(redisClient)
	} else {
		locker = adapters.NewMemoryIngestLocker()
	}

	// Create category use cases
	seedCategoriesUseCase := category.NewSeedDefaultCategoriesUseCase(categoryRepo)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo, settingRepo)
	getCategoryUseCase := category.NewGetCategoryUseCase(categoryRepo, settingRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Create auth use cases
	var seeder auth.CategorySeeder
	if cfg.Ledger.SeedDefaultCategories {
		seeder = seedCategoriesUseCase
	}
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, seeder)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService)
	changePasswordUseCase := auth.NewChangePasswordUseCase(userRepo, passwordService, tokenService)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, tokenService)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Create setting use cases
	getSettingsUseCase := setting.NewGetSettingsUseCase(settingRepo, transactionRepo)
	upsertSettingsUseCase := setting.NewUpsertSettingsUseCase(settingRepo, locker)
	updateSettingUseCase := setting.NewUpdateSettingUseCase(settingRepo)
	deleteSettingUseCase := setting.NewDeleteSettingUseCase(settingRepo)

	// Create alias use cases
	addAliasUseCase := bankalias.NewAddAliasUseCase(aliasRepo)
	listAliasesUseCase := bankalias.NewListAliasesUseCase(aliasRepo)
	deleteAliasUseCase := bankalias.NewDeleteAliasUseCase(aliasRepo)

	// Create ingestion, analytics and backup use cases
	parseSMSUseCase := sms.NewParseSMSUseCase(aliasRepo, categoryRepo, transactionRepo, settingRepo, userRepo, emailService, locker)
	generateAnalyticsUseCase := analytics.NewGenerateAnalyticsUseCase(transactionRepo, analyticsRepo, now)
	listAnalyticsUseCase := analytics.NewListAnalyticsUseCase(analyticsRepo)
	deleteAnalyticsUseCase := analytics.NewDeleteAnalyticsUseCase(analyticsRepo)
	exportUseCase := backup.NewExportTransactionsUseCase(transactionRepo)
	importUseCase := backup.NewImportTransactionsUseCase(transactionRepo, categoryRepo, locker)

	// Create controllers
	healthController := controller.NewHealthController(now, infradb.Probe(db), redisProbe)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		forgotPasswordUseCase,
		resetPasswordUseCase,
	)

	userController := controller.NewUserController(
		changePasswordUseCase,
		deleteAccountUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		getCategoryUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		getTransactionUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)

	settingController := controller.NewSettingController(
		getSettingsUseCase,
		upsertSettingsUseCase,
		updateSettingUseCase,
		deleteSettingUseCase,
	)

	bankAliasController := controller.NewBankAliasController(addAliasUseCase, listAliasesUseCase, deleteAliasUseCase)
	smsController := controller.NewSMSController(parseSMSUseCase)
	analyticsController := controller.NewAnalyticsController(generateAnalyticsUseCase, listAnalyticsUseCase, deleteAnalyticsUseCase)
	backupController := controller.NewBackupController(exportUseCase, importUseCase)

	// Create middleware
	var rateCounter middleware.WindowCounter
	memoryCounter := middleware.NewMemoryCounter()
	if redisClient != nil {
		rateCounter = middleware.NewRedisCounter(redisClient, "ledger:ratelimit:")
	} else {
		rateCounter = memoryCounter
	}
	loginLimit := 5
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginLimit = 1000
	}
	loginRateLimiter := middleware.NewRateLimiter("login", loginLimit, time.Minute, rateCounter)
	smsRateLimiter := middleware.NewRateLimiter("sms", cfg.Ledger.SMSRateLimit, cfg.Ledger.SMSRateWindow, rateCounter).PerUser()
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		userController,
		categoryController,
		transactionController,
		settingController,
		bankAliasController,
		smsController,
		analyticsController,
		backupController,
		loginRateLimiter,
		smsRateLimiter,
		authMiddleware,
	)

	clock := now
	if clock == nil {
		clock = time.Now
	}
	housekeep := func(ctx context.Context) error {
		memoryCounter.Cleanup()

		removed, err := tokenRepo.PurgeStale(ctx, clock().UTC())
		if err != nil {
			return fmt.Errorf("failed to purge stale tokens: %w", err)
		}
		if removed > 0 {
			slog.Info("Purged stale auth tokens", "count", removed)
		}

		removed, err = emailQueueRepo.PurgeFinished(ctx, clock().UTC().AddDate(0, 0, -emailRetentionDays))
		if err != nil {
			return fmt.Errorf("failed to purge email outbox: %w", err)
		}
		if removed > 0 {
			slog.Info("Purged finished email jobs", "count", removed)
		}
		return nil
	}

	return &Injector{
		Config:     cfg,
		DB:         db,
		Router:     r,
		EmailQueue: emailQueueRepo,
		Housekeep:  housekeep,
	}
}
