package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	logger_adapter "catalog-service/internal/adapters/logger"
	postgres_adapter "catalog-service/internal/adapters/postgres"
	rabbitmq_adapter "catalog-service/internal/adapters/rabbitmq"
	"catalog-service/internal/adapters/rest"
	"catalog-service/internal/adapters/source_client"
	"catalog-service/internal/configs"
	"catalog-service/internal/core/listing"
	"catalog-service/internal/core/port"
	"catalog-service/internal/core/usecase"
	fluentlogger "catalog-service/pkg/fluent_logger"
	"catalog-service/pkg/postgres"
	"catalog-service/pkg/rabbitmq/rabbitmq_common"
	"catalog-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	apiServer *rest.Server

	rabbitConn      *rabbitmq_common.ConnectionManager
	rabbitPublisher *rabbitmq_producer.Publisher

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- loggers ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   appConfig.StdoutLogger.IsJSON,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	app := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	// --- PostgreSQL (favorites, and the catalog itself when SOURCE_KIND=postgres) ---
	if appConfig.Database.URL != "" {
		app.dbPool, err = postgres.NewClient(context.Background(), postgres.Config{
			DatabaseURL: appConfig.Database.URL,
			MaxConns:    appConfig.Database.MaxConns,
		})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			app.close()
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		if err := postgres_adapter.EnsureSchema(context.Background(), app.dbPool); err != nil {
			appLogger.Error("Failed to prepare database schema", err, nil)
			app.close()
			return nil, err
		}
		appLogger.Info("Connected to PostgreSQL", nil)
	} else {
		appLogger.Warn("DATABASE_URL is not set, favorites are disabled", nil)
	}

	// --- property source ---
	var source port.PropertySourcePort
	switch appConfig.Source.Kind {
	case configs.SourceKindPostgres:
		source, err = postgres_adapter.NewPostgresPropertySource(app.dbPool)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("failed to create postgres property source: %w", err)
		}
	default:
		source = source_client.NewPropertySourceAPIClient(appConfig.Source.URL, appConfig.Source.Timeout)
	}
	appLogger.Info("Property source configured", port.Fields{"kind": appConfig.Source.Kind})

	// --- favorite events ---
	var favoriteEvents port.FavoriteEventsPort
	if appConfig.RabbitMQ.Enabled {
		favoriteEvents, err = app.initFavoriteEvents(baseLogger)
		if err != nil {
			// events are optional, the service keeps running without them
			appLogger.Error("Favorite events are disabled", err, nil)
			favoriteEvents = nil
		}
	}

	// --- use cases ---
	presenter := listing.NewPresenter(listing.PresenterOptions{
		RouteStyle:       appConfig.Presentation.RouteStyle,
		PlaceholderImage: appConfig.Presentation.PlaceholderImage,
		Language:         appConfig.Presentation.Language,
		Currency:         appConfig.Presentation.Currency,
	})
	pipeline := listing.NewPipeline(presenter)

	catalogHandler := rest.NewCatalogHandler(
		usecase.NewFindPropertiesUseCase(source, pipeline),
		usecase.NewGetPropertyDetailsUseCase(source, presenter),
		usecase.NewGetFilterOptionsUseCase(source),
		appConfig.Presentation.DefaultPerPage,
	)

	var favoritesHandler *rest.FavoritesHandler
	if app.dbPool != nil {
		favoritesRepo, err := postgres_adapter.NewPostgresFavoritesRepository(app.dbPool)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("failed to create favorites repository: %w", err)
		}
		favoritesHandler = rest.NewFavoritesHandler(
			usecase.NewAddToFavoritesUseCase(favoritesRepo, favoriteEvents),
			usecase.NewRemoveFromFavoritesUseCase(favoritesRepo, favoriteEvents),
			usecase.NewGetUserFavoritesUseCase(favoritesRepo, source, presenter),
			usecase.NewGetUserFavoriteIDsUseCase(favoritesRepo),
		)
	}

	app.apiServer = rest.NewServer(appConfig.Rest, catalogHandler, favoritesHandler, baseLogger)
	appLogger.Info("REST API server configured", nil)

	return app, nil
}

func (a *App) initFavoriteEvents(baseLogger port.LoggerPort) (port.FavoriteEventsPort, error) {
	rabbitLogger := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))

	conn, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, rabbitLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	publisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		ExchangeName:             a.config.RabbitMQ.Exchange,
		ExchangeType:             "topic",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitLogger,
	}, conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create RabbitMQ publisher: %w", err)
	}

	adapter, err := rabbitmq_adapter.NewFavoriteEventsAdapter(publisher)
	if err != nil {
		publisher.Close()
		conn.Close()
		return nil, err
	}

	a.rabbitConn = conn
	a.rabbitPublisher = publisher
	return adapter, nil
}

// Run serves HTTP until SIGINT/SIGTERM or a server error.
func (a *App) Run() error {
	defer a.close()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- a.apiServer.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		if err != nil {
			a.logger.Error("Server failed, shutting down", err, nil)
			runErr = err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.apiServer.Stop(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		a.logger.Error("Error during API server shutdown", err, nil)
	}

	return runErr
}

func (a *App) close() {
	if a.rabbitPublisher != nil {
		if err := a.rabbitPublisher.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ publisher", err, nil)
		}
	}
	if a.rabbitConn != nil {
		if err := a.rabbitConn.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed", nil)
	}

	a.logger.Info("Application shut down", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent may already be unreachable
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
