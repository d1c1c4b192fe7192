// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/AccelByte/extend-word-puzzle/internal/bootstrap"
	"github.com/AccelByte/extend-word-puzzle/internal/config"
	"github.com/AccelByte/extend-word-puzzle/internal/server"
	"github.com/AccelByte/extend-word-puzzle/pkg/api"
	"github.com/AccelByte/extend-word-puzzle/pkg/dictionary"
	"github.com/AccelByte/extend-word-puzzle/pkg/gameconfig"
	"github.com/AccelByte/extend-word-puzzle/pkg/letters"
	"github.com/AccelByte/extend-word-puzzle/pkg/mission"
	"github.com/AccelByte/extend-word-puzzle/pkg/notifier"
	"github.com/AccelByte/extend-word-puzzle/pkg/progression"
	"github.com/AccelByte/extend-word-puzzle/pkg/puzzle"
	"github.com/AccelByte/extend-word-puzzle/pkg/store"
	"github.com/cenkalti/backoff/v4"

	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/factory"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/iam"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/platform"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/social"
	sdkAuth "github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/utils/auth"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	notifierBuiltin "github.com/AccelByte/extend-word-puzzle/pkg/notifier/builtin"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	grpcServer        *server.GRPCServer
	httpServer        *server.HTTPServer
	metricsServer     *server.MetricsServer
	kv                store.KV
	shutdownTelemetry func(context.Context) error

	manager    *puzzle.Manager
	controller *progression.Controller
	dispatcher *notifier.Dispatcher
	handler    http.Handler
	stopTicker context.CancelFunc

	// AccelByte SDK repositories (shared across all services)
	configRepo *sdkAuth.ConfigRepositoryImpl
	tokenRepo  *sdkAuth.TokenRepositoryImpl
}

// New creates and initializes a new application instance.
//
// ============================================================
// DEVELOPER: Application initialization order
// ============================================================
// Components are initialized in dependency order:
// 1. Telemetry (OpenTelemetry tracing)
// 2. Storage backend (redis, sqlite or memory)
// 3. Game configuration (YAML)
// 4. AccelByte SDK (only when AB_ENABLED)
// 5. Game components (traits, notifiers, puzzles, controller)
// 6. Servers (HTTP API, gRPC health, metrics)
//
// If you add new external dependencies, initialize them in
// step 4 before bootstrapping the game components.
// ============================================================
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	// ============================================================
	// Step 1: Setup telemetry
	// ============================================================
	shutdownTelemetry, err := server.SetupTelemetry(ctx, server.TelemetryConfig{
		ServiceName:    cfg.ServiceName,
		Environment:    cfg.Environment,
		ZipkinEndpoint: cfg.OtelZipkinEndpoint,
		Enabled:        cfg.OtelEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup telemetry: %w", err)
	}
	app.shutdownTelemetry = shutdownTelemetry

	// ============================================================
	// Step 2: Initialize storage
	// ============================================================
	if err := app.initStore(ctx); err != nil {
		return nil, fmt.Errorf("failed to init %s store: %w", cfg.StoreBackend, err)
	}

	// ============================================================
	// Step 3: Load game configuration
	// ============================================================
	gameConfig, err := gameconfig.LoadConfig(cfg.GameConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config from %s: %w", cfg.GameConfigPath, err)
	}
	logrus.Infof("loaded game configuration from %s", cfg.GameConfigPath)

	// ============================================================
	// Step 4: Initialize external services
	// ============================================================
	deps := &notifierBuiltin.Dependencies{
		HTTPClient:     &http.Client{Timeout: notifier.DefaultCallTimeout},
		RewardsBaseURL: cfg.RewardsBaseURL,
		RewardsAPIKey:  cfg.RewardsAPIKey,
	}
	if cfg.ABEnabled {
		if err := app.initAccelByteSDKAuth(); err != nil {
			return nil, fmt.Errorf("failed to init AccelByte SDK: %w", err)
		}
		deps.StatIncrementer = app.initStatIncrementer()
		deps.ItemGranter = app.initItemGranter()
	} else {
		logrus.Warn("[TEST MODE] AccelByte platform disabled, stats and items will not be granted")
	}

	// ============================================================
	// Step 5: Bootstrap game components
	// ============================================================
	// Notifier Dispatcher → Puzzle Manager → Trait Evaluator → Controller → API
	// ============================================================
	loc := cfg.Location()

	dispatcher, notifierRegistry, err := bootstrap.InitNotifierDispatcher(gameConfig, deps)
	if err != nil {
		return nil, fmt.Errorf("failed to init notifiers: %w", err)
	}
	app.dispatcher = dispatcher

	app.manager = puzzle.NewManager(letters.NewGenerator(), dictionary.Bundled(), puzzle.Config{
		Location:   loc,
		RareChance: cfg.PuzzleRareChance,
		OnRelease:  progression.ReleaseHook(dispatcher),
	})

	evaluator, traitRegistry, err := bootstrap.InitTraitEvaluator(gameConfig, app.manager.Now, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to init traits: %w", err)
	}

	if err := gameconfig.ValidateWiring(traitRegistry, notifierRegistry, gameConfig); err != nil {
		return nil, fmt.Errorf("game wiring validation failed: %w", err)
	}
	logrus.Info("game wiring validation passed")

	board := mission.NewBoard(gameConfig.Missions.Definitions()...)
	app.controller = progression.NewController(app.manager, store.New(app.kv), evaluator, dispatcher, board)

	healthChecker := store.NewHealthChecker(app.kv)
	app.handler = api.NewHandler(app.controller, app.manager, healthChecker, api.Options{
		JWTSecret: cfg.JWTSecret,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	}).Routes()

	if cfg.JWTSecret == "" {
		logrus.Warn("[TEST MODE] JWT_SECRET not set, player routes are unauthenticated")
	}

	// ============================================================
	// Step 6: Setup servers
	// ============================================================
	app.httpServer = server.NewHTTPServer(cfg.HTTPPort, app.handler)
	if err := app.httpServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup http server: %w", err)
	}

	app.grpcServer = server.NewGRPCServer(cfg.GRPCPort, healthChecker)
	if err := app.grpcServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// Handler returns the game API router.
func (a *App) Handler() http.Handler {
	return a.handler
}

// initStore opens the configured storage backend.
func (a *App) initStore(ctx context.Context) error {
	switch a.cfg.StoreBackend {
	case config.StoreBackendRedis:
		client, err := a.initRedis(ctx)
		if err != nil {
			return err
		}
		a.kv = store.NewRedisKV(client, store.RedisKVConfig{})

	case config.StoreBackendSQLite:
		if dir := filepath.Dir(a.cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		kv, err := store.OpenSQLite(a.cfg.SQLitePath)
		if err != nil {
			return err
		}
		a.kv = kv
		logrus.Infof("sqlite store opened at %s", a.cfg.SQLitePath)

	default:
		logrus.Warn("[TEST MODE] using in-memory store, player data is lost on restart")
		a.kv = store.NewMemoryKV()
	}

	return nil
}

// initRedis initializes the Redis client.
func (a *App) initRedis(ctx context.Context) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         a.cfg.RedisHost + ":" + a.cfg.RedisPort,
		Password:     a.cfg.RedisPassword,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(a.cfg.RedisRetryDelayMs) * time.Millisecond
	maxRetries := backoff.WithContext(backoff.WithMaxRetries(b, uint64(a.cfg.RedisMaxRetries)), ctx)

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		maxRetries,
	)

	if err != nil {
		_ = client.Close()
		return nil, err
	}

	logrus.Info("Redis client initialized")
	return client, nil
}

// initAccelByteSDKAuth initializes the AccelByte SDK auth by performing client login.
//
// ============================================================
// DEVELOPER: AccelByte Client Auth configuration
// ============================================================
// The Client Auth is configured via environment variables:
// - AB_BASE_URL: AccelByte platform base URL
// - AB_CLIENT_ID: OAuth2 client ID
// - AB_CLIENT_SECRET: OAuth2 client secret
// - AB_NAMESPACE: Game namespace
//
// The SDK uses automatic token refresh (RefreshRate: 0.8 = 80% of TTL).
//
// IMPORTANT: The configRepo and tokenRepo are stored in the App struct
// and must be reused by all AccelByte services to share authentication.
// ============================================================
func (a *App) initAccelByteSDKAuth() error {
	a.configRepo = sdkAuth.DefaultConfigRepositoryImpl()
	a.tokenRepo = sdkAuth.DefaultTokenRepositoryImpl()
	refreshRepo := &sdkAuth.RefreshTokenImpl{AutoRefresh: true, RefreshRate: 0.8}

	oauthService := iam.OAuth20Service{
		Client:                 factory.NewIamClient(a.configRepo),
		ConfigRepository:       a.configRepo,
		TokenRepository:        a.tokenRepo,
		RefreshTokenRepository: refreshRepo,
	}

	clientID := a.configRepo.GetClientId()
	clientSecret := a.configRepo.GetClientSecret()

	if err := oauthService.LoginClient(&clientID, &clientSecret); err != nil {
		return fmt.Errorf("unable to login using clientId and clientSecret: %w", err)
	}

	logrus.Info("AccelByte SDK initialized and authenticated")
	return nil
}

// initStatIncrementer creates the statistic client used for completion and XP stats.
//
// IMPORTANT: Reuses a.configRepo and a.tokenRepo to share the authenticated
// session from initAccelByteSDKAuth(). Do NOT create new repository instances.
func (a *App) initStatIncrementer() notifierBuiltin.StatIncrementer {
	statisticService := &social.UserStatisticService{
		Client:           factory.NewSocialClient(a.configRepo),
		ConfigRepository: a.configRepo,
		TokenRepository:  a.tokenRepo,
	}

	return notifierBuiltin.NewSDKStatIncrementer(statisticService, a.cfg.ABNamespace)
}

// initItemGranter creates the fulfillment client used for trait reward items.
//
// IMPORTANT: Reuses a.configRepo and a.tokenRepo to share the authenticated
// session from initAccelByteSDKAuth(). Do NOT create new repository instances.
func (a *App) initItemGranter() notifierBuiltin.ItemGranter {
	fulfillmentService := &platform.FulfillmentService{
		Client:           factory.NewPlatformClient(a.configRepo),
		ConfigRepository: a.configRepo,
		TokenRepository:  a.tokenRepo,
	}

	return notifierBuiltin.NewSDKItemGranter(fulfillmentService, a.cfg.ABNamespace)
}
