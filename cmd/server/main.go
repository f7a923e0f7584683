package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	convapp "github.com/omnicrm/backend/internal/application/conversation"
	crmapp "github.com/omnicrm/backend/internal/application/crm"
	"github.com/omnicrm/backend/internal/domain/conversation"
	"github.com/omnicrm/backend/internal/infrastructure/cache"
	"github.com/omnicrm/backend/internal/infrastructure/config"
	"github.com/omnicrm/backend/internal/infrastructure/event"
	"github.com/omnicrm/backend/internal/infrastructure/logger"
	"github.com/omnicrm/backend/internal/infrastructure/messaging"
	"github.com/omnicrm/backend/internal/infrastructure/persistence"
	"github.com/omnicrm/backend/internal/interfaces/http/handler"
	"github.com/omnicrm/backend/internal/interfaces/http/middleware"
	"github.com/omnicrm/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.FromLogConfig(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting omnicrm backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version))

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()

	// Repositories
	contactRepo := persistence.NewGormContactRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Event bus with cross-context handlers
	eventBus := event.NewInMemoryEventBus(log)
	promotionHandler := crmapp.NewContactPromotionHandler(contactRepo, log)
	eventBus.Subscribe(promotionHandler, promotionHandler.EventTypes()...)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("error stopping event bus", zap.Error(err))
		}
	}()

	// Idempotency store: redis if configured, in-memory otherwise
	idempotencyStore, err := cache.NewIdempotencyStore(cfg.Redis, log)
	if err != nil {
		log.Fatal("failed to initialize idempotency store", zap.Error(err))
	}

	// Outbound channel senders
	var senders []conversation.ReplySender
	if cfg.WhatsApp.Enabled {
		whatsapp, err := messaging.NewWhatsAppSender(messaging.WhatsAppConfig{
			APIBaseURL:    cfg.WhatsApp.APIBaseURL,
			PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
			AccessToken:   cfg.WhatsApp.AccessToken,
			Timeout:       cfg.WhatsApp.Timeout,
		}, log)
		if err != nil {
			log.Fatal("failed to initialize whatsapp sender", zap.Error(err))
		}
		senders = append(senders, whatsapp)
	}
	if cfg.Messenger.Enabled {
		messenger, err := messaging.NewMessengerSender(messaging.MessengerConfig{
			APIBaseURL:      cfg.Messenger.APIBaseURL,
			PageAccessToken: cfg.Messenger.PageAccessToken,
			Timeout:         cfg.Messenger.Timeout,
		}, log)
		if err != nil {
			log.Fatal("failed to initialize messenger sender", zap.Error(err))
		}
		senders = append(senders, messenger)
	}
	if len(senders) == 0 {
		log.Warn("no channel senders enabled, replies will not be delivered")
	}

	// Conversation services
	defaultOwnerID := uuid.Nil
	if cfg.Conversation.DefaultOwnerID != "" {
		defaultOwnerID, err = uuid.Parse(cfg.Conversation.DefaultOwnerID)
		if err != nil {
			log.Fatal("invalid conversation.default_owner_id", zap.Error(err))
		}
	}

	resolver := convapp.NewIdentityResolver(contactRepo, eventBus, defaultOwnerID, log)
	dispatcher := convapp.NewIntentDispatcher(log,
		convapp.NewPresentProductsHandler(productRepo, cfg.Conversation.ProductListLimit),
		convapp.NewCreateContactHandler(contactRepo, eventBus, log),
		convapp.NewCreateOrderHandler(productRepo, orderRepo, eventBus, log),
	)
	orchestrator := convapp.NewOrchestrator(resolver, dispatcher, senders, idempotencyStore,
		convapp.OrchestratorConfig{
			MessageTimeout:   cfg.Conversation.MessageTimeout,
			IdempotencyTTL:   cfg.Conversation.IdempotencyTTL,
			ApologizeOnError: cfg.Conversation.ApologizeOnError,
		}, log)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("failed to set trusted proxies", zap.Error(err))
		}
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	router.NewRouter(engine).
		Register(handler.NewSystemHandler(db, cfg.App.Name, version, log)).
		Register(handler.NewWebhookHandler(orchestrator, cfg.Webhook.VerifyToken, log)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited gracefully")
}
