package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hera_backend/database"
	_ "hera_backend/docs"
	"hera_backend/internal/algorithms"
	"hera_backend/internal/auth"
	"hera_backend/internal/banking"
	"hera_backend/internal/config"
	"hera_backend/internal/email"
	"hera_backend/internal/handlers"
	"hera_backend/internal/jobs"
	"hera_backend/internal/logger"
	"hera_backend/internal/middleware"
	"hera_backend/internal/repositories"
	"hera_backend/internal/routes"
	"hera_backend/internal/services"
	"hera_backend/internal/validator"
	"hera_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

// Dependencies are the connected backends the HTTP layer is assembled from.
type Dependencies struct {
	DB               *gorm.DB
	ReviewRepo       repositories.ReviewRepository
	VerificationRepo repositories.VerificationRepository
	Jobs             jobs.Store
	Runner           workers.AnalysisRunner
	Resolver         services.ExternalResolver // nil means local resolution only
	Mailer           email.Provider
	Tokens           *auth.TokenManager
	Nessie           services.NessieAPI
	Plaid            services.PlaidAPI
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Configure(logger.Options{Env: cfg.Server.Env, Level: cfg.Log.Level, File: cfg.Log.File})
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, cleanup, err := Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize backends", "error", err)
	}
	defer cleanup()

	sweeper := workers.NewVerificationSweeper(deps.VerificationRepo, cfg.Reviews.SweepInterval.Duration)
	sweeper.Start(ctx)

	ginRouter := SetupRouter(cfg, deps)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("Server startup error", "error", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

// Connect opens every configured backend. The returned cleanup closes them
// in reverse order and is safe to call when err is nil.
func Connect(ctx context.Context, cfg *config.Config) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*Dependencies, func(), error) {
		cleanup()
		return nil, func() {}, err
	}

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := database.AutoMigrate(gormDB); err != nil {
		return fail(fmt.Errorf("migrate: %w", err))
	}
	logger.Info("Database connected")

	deps := &Dependencies{DB: gormDB}

	switch cfg.Reviews.Backend {
	case "mongo":
		client, mdb, err := database.ConnectMongo(ctx, cfg.Reviews.MongoURI, cfg.Reviews.MongoDatabase)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		})
		if err := repositories.EnsureMongoIndexes(ctx, mdb); err != nil {
			return fail(fmt.Errorf("mongo indexes: %w", err))
		}
		deps.ReviewRepo = repositories.NewMongoReviewRepository(mdb)
		deps.VerificationRepo = repositories.NewMongoVerificationRepository(mdb)
		logger.Info("Review store connected", "backend", "mongo", "database", cfg.Reviews.MongoDatabase)
	default:
		deps.ReviewRepo = repositories.NewReviewRepository(gormDB)
		deps.VerificationRepo = repositories.NewVerificationRepository(gormDB)
	}

	if err := database.SeedCompanyDomains(ctx, deps.VerificationRepo, cfg.Reviews.CompanyDomains); err != nil {
		return fail(fmt.Errorf("seed company domains: %w", err))
	}

	switch cfg.Jobs.Backend {
	case "redis":
		client, err := database.ConnectRedis(ctx, cfg.Jobs.RedisURL)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { _ = client.Close() })
		deps.Jobs = jobs.NewRedisStore(client, cfg.Jobs.TTL.Duration)
		logger.Info("Job store connected", "backend", "redis")
	default:
		deps.Jobs = jobs.NewMemoryStore(cfg.Jobs.TTL.Duration)
	}

	switch cfg.Analysis.Runner {
	case "nats":
		conn, err := database.ConnectNATS(cfg.Analysis.NATSURL)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, conn.Close)
		runner, err := workers.NewNATSRunner(conn, cfg.Analysis.NATSSubject, cfg.Analysis.NATSStatusSubject, deps.Jobs)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { _ = runner.Close() })
		deps.Runner = runner
		logger.Info("Analysis runner ready", "runner", "nats", "subject", cfg.Analysis.NATSSubject)
	default:
		deps.Runner = workers.NewExecRunner(cfg.Analysis.Command, cfg.Analysis.WorkDir, cfg.Analysis.Timeout.Duration, deps.Jobs)
	}

	if len(cfg.Analysis.ResolveCommand) > 0 {
		deps.Resolver = workers.NewCommandResolver(cfg.Analysis.ResolveCommand, cfg.Analysis.WorkDir, cfg.Analysis.ResolveTimeout.Duration)
	}

	mailer, err := email.NewProvider(cfg.Email)
	if err != nil {
		return fail(fmt.Errorf("email provider: %w", err))
	}
	deps.Mailer = mailer

	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL.Duration)
	if err != nil {
		return fail(err)
	}
	deps.Tokens = tokens

	deps.Nessie = banking.NewNessieClient(cfg.Nessie)
	deps.Plaid = banking.NewPlaidClient(cfg.Plaid)

	return deps, cleanup, nil
}

func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	serviceContainer := initializeServices(cfg, deps)
	appHandlers := initializeHandlers(serviceContainer, deps.Tokens)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeServices(cfg *config.Config, deps *Dependencies) *services.ServiceContainer {
	analysisRepo := repositories.NewAnalysisRepository(deps.DB)
	communityRepo := repositories.NewCommunityRepository(deps.DB)
	resolver := algorithms.DefaultMerchantResolver()

	companyService := services.NewCompanyService(analysisRepo, deps.Jobs, deps.Runner)

	return &services.ServiceContainer{
		CompanyService:      companyService,
		PortfolioService:    services.NewPortfolioService(analysisRepo),
		BankingService:      services.NewBankingService(deps.Nessie),
		ProfileService:      services.NewProfileService(deps.Nessie, analysisRepo, companyService, resolver),
		PlaidService:        services.NewPlaidService(deps.Plaid),
		VerificationService: services.NewVerificationService(deps.VerificationRepo, deps.Tokens, deps.Mailer, cfg.Reviews, cfg.Demo.Enabled),
		ReviewService:       services.NewReviewService(deps.ReviewRepo, cfg.Reviews),
		CommunityService:    services.NewCommunityService(communityRepo),
		ResolveService:      services.NewResolveService(deps.Resolver, resolver, analysisRepo),
	}
}

func initializeHandlers(svc *services.ServiceContainer, tokens *auth.TokenManager) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		HealthHandler:    handlers.NewHealthHandler(),
		CompanyHandler:   handlers.NewCompanyHandler(baseHandler, svc.CompanyService),
		PortfolioHandler: handlers.NewPortfolioHandler(baseHandler, svc.PortfolioService),
		NessieHandler:    handlers.NewNessieHandler(baseHandler, svc.BankingService, svc.ProfileService),
		PlaidHandler:     handlers.NewPlaidHandler(baseHandler, svc.PlaidService),
		ReviewHandler:    handlers.NewReviewHandler(baseHandler, svc.VerificationService, svc.ReviewService, tokens),
		CommunityHandler: handlers.NewCommunityHandler(baseHandler, svc.CommunityService),
		ResolveHandler:   handlers.NewResolveHandler(baseHandler, svc.ResolveService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	return router
}
