package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"supplier-hub/internal/integrations"
	"supplier-hub/internal/integrations/mock"
	"supplier-hub/internal/listeners"
	"supplier-hub/internal/repositories"
	"supplier-hub/internal/repositories/memory"
	"supplier-hub/internal/routes"
	"supplier-hub/internal/services"
	"supplier-hub/pkg/config"
	"supplier-hub/pkg/database/postgresql"
	"supplier-hub/pkg/eventbus"
	apperrors "supplier-hub/pkg/errors"
	"supplier-hub/pkg/filestorage"
	"supplier-hub/pkg/kafka"
	applogger "supplier-hub/pkg/logger"
	"supplier-hub/pkg/metrics"
	"supplier-hub/pkg/utils"
	"supplier-hub/pkg/validation"
)

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(os.Getenv("LOG_FILE"))
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Echo и middleware
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"http://localhost:5173"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		ExposeHeaders: []string{"Content-Disposition"},
	}))

	// 2. Файлы
	absPath, err := filepath.Abs(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal("не удалось получить абсолютный путь к uploads", zap.Error(err))
	}
	fileStorage, err := filestorage.NewLocalFileStorage(absPath)
	if err != nil {
		logger.Fatal("не удалось создать файловое хранилище", zap.Error(err))
	}
	e.Static(filestorage.URLPrefix, absPath)

	// 3. Удаленные коллекции
	repos := buildRepositories(ctx, cfg, logger)

	// 4. Блокировки записей в процессе изменения
	guard := buildGuard(ctx, cfg, logger)

	// 5. События и Kafka
	bus := eventbus.New(logger)
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.New(kafka.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic, ClientID: "supplier-hub"})
		if err != nil {
			logger.Fatal("не удалось создать Kafka-клиент", zap.Error(err))
		}
		defer producer.Close()
		listeners.NewChangeFeedListener(producer, logger).Register(bus)
	}

	// 6. Интеграция с таблицами
	sheets := integrations.NewRegistry()
	if err := sheets.Register(mock.NewProvider()); err != nil {
		logger.Fatal("не удалось зарегистрировать провайдера таблиц", zap.Error(err))
	}

	// 7. Стор
	appMetrics := metrics.New(cfg.Metrics.Namespace)
	store := services.NewStore(repos, logger,
		services.WithInFlightGuard(guard),
		services.WithObserver(appMetrics),
		services.WithPublisher(bus),
		services.WithSheets(sheets),
		services.WithFileStorage(fileStorage),
		services.WithGracePeriod(cfg.Store.NonConformityGracePeriod),
	)
	if err := store.LoadInitialData(ctx); err != nil {
		logger.Fatal("не удалось загрузить начальные данные", zap.Error(err))
	}

	// 8. Роуты
	routes.InitRouter(e, routes.Dependencies{
		Store:    store,
		Importer: services.NewSupplierImporter(store, logger),
		Metrics:  appMetrics,
		Config:   cfg,
		Logger:   logger,
	})

	// 9. Запуск и остановка
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("получен сигнал остановки")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("ошибка остановки сервера", zap.Error(err))
	}
	bus.Wait()
}

func buildRepositories(ctx context.Context, cfg *config.Config, logger *zap.Logger) services.StoreRepositories {
	if cfg.Store.Backend == "memory" {
		logger.Warn("используются коллекции в памяти, данные не сохраняются между запусками")
		mem := memory.New(time.Now)
		return services.StoreRepositories{
			Suppliers:       mem.Suppliers,
			Evaluations:     mem.Evaluations,
			NonConformities: mem.NonConformities,
			Documents:       mem.Documents,
		}
	}

	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	go func() {
		<-ctx.Done()
		dbConn.Close()
	}()

	if cfg.Postgres.MigrateOnStart {
		if err := postgresql.Migrate(ctx, dbConn, logger); err != nil {
			logger.Fatal("не удалось применить миграции", zap.Error(err))
		}
	}

	return services.StoreRepositories{
		Suppliers:       repositories.NewSupplierRepository(dbConn, logger),
		Evaluations:     repositories.NewEvaluationRepository(dbConn, logger),
		NonConformities: repositories.NewNonConformityRepository(dbConn, logger),
		Documents:       repositories.NewDocumentRepository(dbConn, logger),
	}
}

func buildGuard(ctx context.Context, cfg *config.Config, logger *zap.Logger) services.InFlightGuard {
	switch cfg.Store.InFlightGuard {
	case "redis":
		if cfg.Redis.Address == "" {
			logger.Fatal("STORE_INFLIGHT_GUARD=redis требует REDIS_ADDRESS")
		}
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
		}
		return services.NewRedisGuard(repositories.NewRedisLockRepository(redisClient), cfg.Redis.LockTTL, logger)
	case "memory":
		guard := services.NewMemoryGuard(cfg.Redis.LockTTL)
		go guard.Cleanup(ctx, time.Minute)
		return guard
	}
	return nil
}
