package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"grocery/internal/cache"
	"grocery/internal/config"
	"grocery/internal/events"
	"grocery/internal/handler"
	"grocery/internal/logger"
	"grocery/internal/metrics"
	"grocery/internal/repository"
	"grocery/internal/service"
	"grocery/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL драйвер
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LogLevel)
	defer log.Sync()

	// Секрет подписи токенов поставляется только извне
	if cfg.JWTSecret == "" {
		log.Fatal("переменная окружения JWT_SECRET не задана")
	}

	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		log.Fatal("не удалось подключиться к базе данных", zap.Error(err))
	}
	defer db.Close()

	runMigrations(db, log)

	// Кэш каталога включается только при заданном REDIS_ADDR
	var itemsCache *cache.ItemsCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		itemsCache = cache.NewItemsCache(redisClient)
		log.Info("кэш каталога включен", zap.String("addr", cfg.RedisAddr))
	}

	// Публикация событий включается только при заданном RABBITMQ_URL
	var publisher *events.Publisher
	if cfg.RabbitMQURL != "" {
		publisher, err = events.NewPublisher(cfg.RabbitMQURL, log)
		if err != nil {
			log.Fatal("не удалось подключиться к RabbitMQ", zap.Error(err))
		}
		defer publisher.Close()
	}

	// Инициализируем репозитории
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	// Инициализируем сервисы
	tokens := token.NewManager(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, tokens)
	itemService := service.NewItemService(itemRepo, itemsCache, log)
	bookingService := service.NewBookingService(bookingRepo, itemsCache, publisher, log)

	// Создаем Handler и регистрируем маршруты
	h := handler.NewHandler(authService, itemService, bookingService, tokens, log)
	router := gin.New()
	router.Use(gin.Recovery(), handler.RequestID(), handler.AccessLog(log), metrics.Middleware)
	h.RegisterRoutes(router)

	// Health-check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router,
	}

	// Запускаем HTTP-сервер и ждем сигнала завершения
	go func() {
		log.Info("сервер запущен", zap.String("port", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ошибка запуска сервера", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("получен сигнал завершения, останавливаем сервер")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("ошибка при остановке сервера", zap.Error(err))
	}
}

// runMigrations применяет все файлы migrations/*.sql, каждый в своей транзакции.
func runMigrations(db *sqlx.DB, log *zap.Logger) {
	files, err := filepath.Glob("migrations/*.sql")
	if err != nil {
		return
	}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Error("не удалось прочитать файл миграции", zap.String("file", file), zap.Error(err))
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			log.Error("ошибка при инициации транзакции миграции", zap.Error(err))
			continue
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			log.Error("миграция завершилась ошибкой", zap.String("file", file), zap.Error(err))
			continue
		}
		if err := tx.Commit(); err != nil {
			log.Error("не удалось зафиксировать миграцию", zap.String("file", file), zap.Error(err))
			continue
		}
		log.Info("миграция применена", zap.String("file", file))
	}
}
