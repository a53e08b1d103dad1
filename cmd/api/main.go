package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/rewardquiz-api/internal/config"
	"github.com/yourusername/rewardquiz-api/internal/handler"
	"github.com/yourusername/rewardquiz-api/internal/middleware"
	pgRepo "github.com/yourusername/rewardquiz-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/rewardquiz-api/internal/repository/redis"
	"github.com/yourusername/rewardquiz-api/internal/service"
	"github.com/yourusername/rewardquiz-api/pkg/auth"
	"github.com/yourusername/rewardquiz-api/pkg/database"
	"github.com/yourusername/rewardquiz-api/pkg/sms"
)

// Список разрешенных origin (синхронизирован с CheckOrigin в WSHandler)
var allowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
}

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	settingsRepo := pgRepo.NewSettingsRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Выбираем способ доставки SMS-кодов
	var smsSender sms.Sender
	switch cfg.SMS.Provider {
	case "gateway":
		smsSender, err = sms.NewGatewaySender(cfg.SMS.GatewayURL, cfg.SMS.APIKey)
		if err != nil {
			log.Printf("Failed to initialize SMS gateway: %v", err)
			os.Exit(1)
		}
	default:
		log.Println("SMS: провайдер не настроен, коды выводятся в лог")
		smsSender = &sms.LogSender{}
	}

	// Инициализируем сервисы
	authService, err := service.NewAuthService(
		userRepo,
		cacheRepo,
		smsSender,
		jwtService,
		time.Duration(cfg.Auth.CodeTTLSec)*time.Second,
		cfg.Auth.MaxAttempts,
		time.Duration(cfg.Auth.ResendCooldownSec)*time.Second,
	)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}

	questionService := service.NewQuestionService(questionRepo, cacheRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	userService := service.NewUserService(userRepo)
	playService := service.NewPlayService(userRepo, questionRepo, settingsRepo, questionService, nil)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	questionHandler := handler.NewQuestionHandler(questionService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	userHandler := handler.NewUserHandler(userService)
	playHandler := handler.NewPlayHandler(playService)
	wsHandler := handler.NewWSHandler(playService, jwtService, allowedOrigins)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		// Production: не доверять прокси-заголовкам
		// Если используете load balancer, замените nil на []string{"IP_БАЛАНСИРОВЩИКА"}
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Статические файлы для админ-панели
	router.StaticFS("/admin", http.Dir("./static/admin"))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		authGroup.Use(rateLimiter.Limit(middleware.DefaultAuthRateLimitConfig()))
		{
			authGroup.POST("/request-code",
				rateLimiter.Limit(middleware.CodeRequestRateLimitConfig()),
				authHandler.RequestCode)
			authGroup.POST("/verify-code", authHandler.ConfirmCode)
		}

		// Пользователи
		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/me", userHandler.GetMe)
		}

		// Игровой цикл
		play := api.Group("/play")
		play.Use(authMiddleware.RequireAuth())
		play.Use(rateLimiter.LimitByIP(middleware.PlayRateLimitConfig()))
		{
			play.GET("/next", playHandler.NextQuestion)
			play.POST("/answer", playHandler.SubmitAnswer)
		}

		// Управление вопросами (только администраторы)
		questions := api.Group("/questions")
		questions.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			questions.GET("", questionHandler.ListQuestions)
			questions.POST("", questionHandler.CreateQuestion)
			questions.GET("/export", questionHandler.ExportQuestions)
			questions.GET("/:id", questionHandler.GetQuestion)
			questions.PUT("/:id", questionHandler.UpdateQuestion)
			questions.DELETE("/:id", questionHandler.DeleteQuestion)
		}

		// Глобальные настройки
		settings := api.Group("/settings")
		settings.Use(authMiddleware.RequireAuth())
		{
			settings.GET("", settingsHandler.GetSettings)
			settings.PUT("", authMiddleware.AdminOnly(), settingsHandler.UpdateSettings)
		}
	}

	// WebSocket стрим обратного отсчёта
	router.GET("/ws/cooldown", wsHandler.HandleCooldown)

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown с таймаутом
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited")
}
