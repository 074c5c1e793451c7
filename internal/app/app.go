package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	emailadapter "github.com/ferreteria-nea/cart-widget/internal/adapter/email"
	fileadapter "github.com/ferreteria-nea/cart-widget/internal/adapter/file"
	mongoadapter "github.com/ferreteria-nea/cart-widget/internal/adapter/mongo"
	natsadapter "github.com/ferreteria-nea/cart-widget/internal/adapter/nats"
	redisadapter "github.com/ferreteria-nea/cart-widget/internal/adapter/redis"
	"github.com/ferreteria-nea/cart-widget/internal/app/config"
	"github.com/ferreteria-nea/cart-widget/internal/platform/logger"
	"github.com/ferreteria-nea/cart-widget/internal/port/events"
	httpport "github.com/ferreteria-nea/cart-widget/internal/port/http"
	"github.com/ferreteria-nea/cart-widget/internal/repository"
	"github.com/ferreteria-nea/cart-widget/internal/service"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	cfg         *config.Config
	log         logger.Logger
	server      *httpport.Server
	carts       service.CartService
	subscriber  *natsadapter.Subscriber
	natsConn    *nats.Conn
	redisClient *redis.Client
	mongoClient *mongo.Client
}

// viewLogListener is the in-process view surface: it mirrors every badge /
// total refresh into the log, including the cold-start sync.
type viewLogListener struct {
	log logger.Logger
}

func (l viewLogListener) SyncView(state service.ViewState) {
	l.log.Debugf("View synchronized: badge=%d, total=%.2f, rows=%d", state.Badge, state.Total, len(state.Rows))
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	appLogger, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Infof("Configuration loaded: Env=%s, Store=%s, HTTP Port=%s", cfg.Env, cfg.Store.Backend, cfg.HTTPServer.Port)

	application := &App{
		cfg: cfg,
		log: appLogger,
	}

	store, err := application.buildStore(ctx)
	if err != nil {
		return nil, err
	}
	appLogger.Infof("Cart store initialized (backend: %s, slot: %s)", cfg.Store.Backend, cfg.Store.Slot)

	views := service.NewViewService()
	carts := service.NewCartService(store, views, appLogger)
	carts.RegisterListener(viewLogListener{log: appLogger})
	application.carts = carts

	var sender service.SummarySender
	if cfg.SMTP.Host != "" && cfg.SMTP.ShopEmail != "" {
		sender, err = emailadapter.NewSMTPSender(cfg.SMTP, appLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SMTP sender: %w", err)
		}
		appLogger.Infof("SMTP order copies enabled, shop address: %s", cfg.SMTP.ShopEmail)
	}
	orders := service.NewOrderService(cfg.Messaging, sender, cfg.SMTP.ShopEmail, appLogger)

	dispatcher := events.NewDispatcher(carts, orders, appLogger)

	handler := httpport.NewCartHandler(dispatcher, appLogger)
	application.server = httpport.NewServer(appLogger, cfg.HTTPServer, cfg.Env, handler)
	appLogger.Info("HTTP server instance created")

	if cfg.NATS.URL != "" {
		conn, err := natsadapter.NewConnection(cfg.NATS)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize NATS connection: %w", err)
		}
		subscriber, err := natsadapter.NewSubscriber(conn, dispatcher, cfg.NATS.SubjectPrefix, appLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize NATS event source: %w", err)
		}
		application.natsConn = conn
		application.subscriber = subscriber
		appLogger.Info("NATS event source initialized")
	}

	return application, nil
}

func (a *App) buildStore(ctx context.Context) (repository.CartStore, error) {
	switch a.cfg.Store.Backend {
	case "file":
		return fileadapter.NewCartStore(a.cfg.Store.FilePath), nil
	case "redis":
		client, err := redisadapter.NewClient(ctx, a.cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
		}
		a.redisClient = client
		return redisadapter.NewCartStore(client, a.cfg.Store.Slot, a.cfg.Store.TTL), nil
	case "mongo":
		client, err := mongoadapter.NewClient(ctx, a.cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
		}
		a.mongoClient = client
		return mongoadapter.NewCartStore(client, a.cfg.MongoDB.Database, a.cfg.MongoDB.Collection, a.cfg.Store.Slot), nil
	default:
		return nil, fmt.Errorf("unknown cart store backend: %q", a.cfg.Store.Backend)
	}
}

func (a *App) Run() {
	a.log.Info("Starting application components...")

	// Cold-start sync so the badge is right before any event arrives.
	a.carts.SyncViews(context.Background())

	if a.subscriber != nil {
		if err := a.subscriber.Start(); err != nil {
			a.log.Fatalf("Failed to start NATS event source: %v", err)
		}
	}

	go func() {
		if err := a.server.Start(); err != nil {
			a.log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Infof("Received shutdown signal: %v. Shutting down application...", receivedSignal)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful+5*time.Second)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server graceful shutdown: %v", err)
	} else {
		a.log.Info("HTTP server stopped successfully")
	}

	if a.subscriber != nil {
		a.subscriber.Stop()
	}
	if a.natsConn != nil {
		a.natsConn.Close()
		a.log.Info("NATS connection closed")
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Errorf("Error closing Redis client: %v", err)
		} else {
			a.log.Info("Redis client closed successfully")
		}
	}

	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
			a.log.Errorf("Error disconnecting from MongoDB: %v", err)
		} else {
			a.log.Info("MongoDB connection closed successfully")
		}
	}

	a.log.Info("Application shut down successfully")
}
