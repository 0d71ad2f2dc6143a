package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"saaskit/docs"
	"saaskit/internal/auth"
	"saaskit/internal/cache"
	"saaskit/internal/cms"
	"saaskit/internal/config"
	"saaskit/internal/db"
	"saaskit/internal/gate"
	"saaskit/internal/handler"
	"saaskit/internal/logger"
	"saaskit/internal/model"
	"saaskit/internal/observability"
	"saaskit/internal/repository"
	"saaskit/internal/router"
	"saaskit/internal/service"
)

// @title SaaS Kit API
// @version 1.0
// @description Session, preference and profile API of the SaaS Kit web application.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	bootLog := logger.Default()
	if err := config.LoadDotEnv(); err != nil {
		bootLog.Fatal("load .env", zap.Error(err))
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		bootLog.Fatal("invalid configuration", zap.Error(err))
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, OutputPath: cfg.LogOutput})
	if err != nil {
		bootLog.Fatal("logger init", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	sentryEnabled, err := observability.InitSentry(observability.SentryConfig{
		DSN:              cfg.SentryDSN,
		Environment:      cfg.Env,
		TracesSampleRate: cfg.SentryTracesSampleRate,
	})
	if err != nil {
		log.Fatal("sentry init", zap.Error(err))
	}
	defer observability.Flush(2 * time.Second)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(&model.UserPreferences{}); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Warn("redis unreachable, caching and session revocation degrade to no-ops", zap.Error(err))
	}

	rules := gate.DefaultRules()
	if cfg.RoutesFile != "" {
		if rules, err = gate.LoadRules(cfg.RoutesFile); err != nil {
			log.Fatal("routes file", zap.Error(err))
		}
	}
	routeGate, err := gate.New(rules)
	if err != nil {
		log.Fatal("routes", zap.Error(err))
	}

	// Identity provider
	var (
		verifier       auth.Verifier
		directory      auth.Directory = auth.ClaimsDirectory{}
		issuer         auth.SessionIssuer
		remote         auth.RemoteRevoker
		forgetter      auth.UserForgetter
		publishableKey string
	)
	switch cfg.AuthProvider {
	case config.AuthProviderClerk:
		clerkCfg := auth.NewClerkConfig(cfg.ClerkSecretKey)
		clerkDirectory := auth.NewClerkDirectory(clerkCfg, cacheClient, cfg.UserSnapshotTTL)
		verifier = auth.NewClerkVerifier(clerkCfg, append([]string{cfg.PublicURL}, cfg.CORSAllowedOrigins...)...)
		directory = clerkDirectory
		forgetter = clerkDirectory
		remote = auth.NewClerkSessions(clerkCfg)
		publishableKey = cfg.ClerkPublishableKey
	default:
		jwtService := auth.NewJWTService(cfg.SessionSecret)
		verifier = jwtService
		issuer = jwtService
		log.Warn("local auth provider enabled; sessions are issued without a password")
	}
	sessionStore := auth.NewSessionStore(cacheClient)

	// Services
	cmsClient := cms.NewClient(cms.Config{BaseURL: cfg.StrapiURL, Token: cfg.StrapiToken, Timeout: cfg.StrapiTimeout})
	profileService := service.NewProfileService(cmsClient, cacheClient, cfg.ProfileTTL)
	preferencesService := service.NewPreferencesService(repository.NewPreferencesRepository(gormDB))
	authService := service.NewAuthService(service.AuthServiceConfig{
		Issuer:    issuer,
		Sessions:  sessionStore,
		Remote:    remote,
		Forgetter: forgetter,
	})

	// Handlers
	secure := cfg.IsProduction()
	profileHandler := handler.NewProfileHandler(profileService, log)
	preferencesHandler := handler.NewPreferencesHandler(preferencesService, secure, log)
	authHandler := handler.NewAuthHandler(authService, secure, log)
	pageHandler := handler.NewPageHandler(handler.PageHandlerConfig{
		Profiles:       profileService,
		Preferences:    preferencesHandler,
		Auth:           authHandler,
		PublishableKey: publishableKey,
		Logger:         log,
	})

	pipeline := router.Pipeline(router.PipelineConfig{
		Logger:       log,
		Sentry:       sentryEnabled,
		Verifier:     verifier,
		Sessions:     sessionStore,
		Directory:    directory,
		Preferences:  preferencesService,
		Gate:         routeGate,
		DetectLocale: cfg.LocaleDetection,
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.Register(e, router.Handlers{
		Profile:     profileHandler,
		Preferences: preferencesHandler,
		Auth:        authHandler,
		Pages:       pageHandler,
		DevSignIn:   issuer != nil,
	}, pipeline...)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	srv := &http.Server{
		Addr: ":" + cfg.ServerPort,
		Handler: cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
			AllowedHeaders:   []string{echo.HeaderAuthorization, echo.HeaderContentType},
			ExposedHeaders:   []string{echo.HeaderXRequestID},
			AllowCredentials: true,
		}).Handler(e),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("auth_provider", cfg.AuthProvider),
			zap.String("swagger", cfg.PublicURL+"/swagger/index.html"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
