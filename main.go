package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bonnavitta/chatbot-vendas/database"
	"github.com/bonnavitta/chatbot-vendas/internal/auth"
	"github.com/bonnavitta/chatbot-vendas/internal/bot"
	"github.com/bonnavitta/chatbot-vendas/internal/config"
	"github.com/bonnavitta/chatbot-vendas/internal/flow"
	"github.com/bonnavitta/chatbot-vendas/internal/handlers"
	"github.com/bonnavitta/chatbot-vendas/internal/reports"
	"github.com/bonnavitta/chatbot-vendas/internal/routes"
	"github.com/bonnavitta/chatbot-vendas/internal/services"
	"github.com/bonnavitta/chatbot-vendas/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️  Arquivo .env não encontrado, usando só o ambiente")
	}

	cfg := config.Load()

	logger, err := novoLogger(cfg)
	if err != nil {
		fmt.Println("erro ao criar logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("fuso horário inválido, usando UTC", zap.String("timezone", cfg.Timezone))
		loc = time.UTC
	}

	// O banco é sempre necessário: as consultas de vendas rodam em
	// procedures. USE_MEMORY_STORE só troca a persistência das sessões.
	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("erro ao conectar ao banco", zap.Error(err))
	}

	var store storage.Store
	if cfg.UseMemoryStore {
		logger.Warn("usando sessões em memória, não recomendado em produção")
		store = storage.NewMemoryStore()
	} else {
		if err := db.AutoMigrate(&storage.SessaoRegistro{}); err != nil {
			logger.Fatal("erro ao migrar tabela de sessões", zap.Error(err))
		}
		store = storage.NewDatabaseStore(db)
	}

	authSvc := auth.NewService(cfg.JWTSecret, cfg.JWTExpiration, logger)
	engine := flow.NewEngine(authSvc, loc, logger)
	gateway := reports.NewGateway(db, logger)
	renderer := reports.NewRenderer(cfg.ChartsEnabled, cfg.ChartWidth, cfg.ChartHeight, logger)
	controller := bot.NewController(store, engine, gateway, renderer, logger)

	h := routes.Handlers{
		Auth:    handlers.NewAuthHandler(authSvc, logger),
		Bot:     handlers.NewBotHandler(controller, logger),
		Reports: handlers.NewReportsHandler(gateway, logger),
	}

	var telegramSvc *services.TelegramService
	if cfg.TelegramEnabled && cfg.TelegramBotToken != "" {
		telegramSvc = services.NewTelegramService(cfg.TelegramBotToken, logger)
		h.Telegram = handlers.NewTelegramHandler(controller, telegramSvc, cfg.TelegramWebhookSecret, logger)
		if cfg.TelegramWebhookURL != "" {
			go registrarWebhookTelegram(telegramSvc, cfg, logger)
		}
	}

	if cfg.WhatsAppEnabled {
		sender, err := novoWhatsAppSender(cfg, logger)
		if err != nil {
			logger.Fatal("erro ao configurar o provedor de whatsapp", zap.Error(err))
		}
		h.WhatsApp = handlers.NewWhatsAppHandler(controller, sender, cfg.WhatsAppVerifyToken, logger)
	}

	h.Health = handlers.NewHealthHandler("1.0.0", db, h.Telegram != nil, h.WhatsApp != nil)

	pararLimpeza := iniciarLimpezaDeSessoes(store, cfg, logger)

	app := fiber.New(fiber.Config{
		AppName: "Chatbot Vendas BonnaVitta v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	routes.SetupRoutes(app, authSvc, h)

	sinais := make(chan os.Signal, 1)
	signal.Notify(sinais, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sinais
		logger.Info("encerrando o servidor")
		close(pararLimpeza)
		if telegramSvc != nil && cfg.TelegramWebhookURL != "" {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telegramSvc.RemoverWebhook(ctx); err != nil {
				logger.Warn("erro ao remover webhook do telegram", zap.Error(err))
			}
		}
		_ = app.Shutdown()
	}()

	logger.Info("servidor iniciando",
		zap.Int("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.Bool("telegram", h.Telegram != nil),
		zap.Bool("whatsapp", h.WhatsApp != nil),
		zap.Bool("graficos", cfg.ChartsEnabled),
	)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Fatal("erro no servidor", zap.Error(err))
	}
}

func novoLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	if nivel, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(nivel)
	}
	return zcfg.Build()
}

func novoWhatsAppSender(cfg *config.Config, logger *zap.Logger) (services.WhatsAppSender, error) {
	switch cfg.WhatsAppProvider {
	case "twilio":
		return services.NewTwilioWhatsAppService(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom, logger)
	case "meta":
		if cfg.WhatsAppPhoneNumberID == "" || cfg.WhatsAppAccessToken == "" {
			return nil, fmt.Errorf("credenciais da cloud api ausentes no ambiente")
		}
		return services.NewMetaWhatsAppService(cfg.WhatsAppPhoneNumberID, cfg.WhatsAppAccessToken, logger), nil
	}
	return nil, fmt.Errorf("provedor de whatsapp desconhecido: %q", cfg.WhatsAppProvider)
}

func registrarWebhookTelegram(telegramSvc *services.TelegramService, cfg *config.Config, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := telegramSvc.DefinirWebhook(ctx, cfg.TelegramWebhookURL, cfg.TelegramWebhookSecret); err != nil {
		logger.Error("erro ao registrar webhook do telegram", zap.Error(err))
	}
}

// iniciarLimpezaDeSessoes reseta periodicamente sessões sem atividade além
// do timeout, devolvendo-as ao gate de login.
func iniciarLimpezaDeSessoes(store storage.Store, cfg *config.Config, logger *zap.Logger) chan struct{} {
	parar := make(chan struct{})

	go func() {
		ticker := time.NewTicker(cfg.SessionCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				limite := time.Now().Add(-cfg.SessionTimeout)
				resetadas, err := store.ResetarOciosas(limite)
				if err != nil {
					logger.Error("erro na limpeza de sessões", zap.Error(err))
					continue
				}
				if resetadas > 0 {
					logger.Info("sessões ociosas resetadas", zap.Int("quantidade", resetadas))
				}
			case <-parar:
				return
			}
		}
	}()

	return parar
}
