package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/recipe-helper/internal/bot"
	"github.com/vladimiradmaev/recipe-helper/internal/bot/handlers"
	"github.com/vladimiradmaev/recipe-helper/internal/bot/state"
	"github.com/vladimiradmaev/recipe-helper/internal/config"
	"github.com/vladimiradmaev/recipe-helper/internal/database"
	"github.com/vladimiradmaev/recipe-helper/internal/domain"
	"github.com/vladimiradmaev/recipe-helper/internal/logger"
	"github.com/vladimiradmaev/recipe-helper/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	defer logger.Close()
	logger.Info("Starting Recipe Helper Bot")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	// Initialize services
	userService := services.NewUserService(db)
	recipeService := services.NewRecipeService(db)
	shoppingListService := services.NewShoppingListService(db, recipeService, domain.SystemClock)
	catalogService := services.NewCatalogService(db)

	deps := handlers.Dependencies{
		UserService:     userService,
		ShoppingListSvc: shoppingListService,
		RecipeSvc:       recipeService,
		CatalogSvc:      catalogService,
	}
	if cfg.AIEnabled() {
		aiService, err := services.NewAIService(ctx, cfg.GeminiAPIKey, cfg.OpenAIAPIKey)
		if err != nil {
			logger.Fatal("Failed to initialize AI service", "error", err)
		}
		defer aiService.Close()
		deps.Parser = aiService
	}
	logger.Info("Services initialized", "ai_parsing", deps.Parser != nil)

	stateManager, closeState := newStateManager(cfg)
	defer closeState()

	telegramBot, err := bot.NewBot(cfg.TelegramToken, deps, stateManager)
	if err != nil {
		logger.Fatal("Failed to create bot", "error", err)
	}

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped with error", "error", err)
	}
}

func newStateManager(cfg *config.Config) (state.StateManager, func()) {
	if cfg.StateBackend != config.StateBackendRedis {
		logger.Info("Using in-memory state storage")
		return state.NewManager(), func() {}
	}

	redisManager, err := state.NewRedisManager(cfg.Redis.Addr(), cfg.Redis.Password)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err, "addr", cfg.Redis.Addr())
	}
	logger.Info("Using Redis state storage", "addr", cfg.Redis.Addr())
	return redisManager, func() {
		if err := redisManager.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		}
	}
}
