package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"

	"github.com/botdesk/botdesk-backend/internal/core/auth"
	"github.com/botdesk/botdesk-backend/internal/core/billing"
	"github.com/botdesk/botdesk-backend/internal/core/cache"
	"github.com/botdesk/botdesk-backend/internal/core/email"
	"github.com/botdesk/botdesk-backend/internal/core/upload"
	"github.com/botdesk/botdesk-backend/internal/handlers"
	"github.com/botdesk/botdesk-backend/internal/middleware"
	"github.com/botdesk/botdesk-backend/internal/repositories"
	"github.com/botdesk/botdesk-backend/internal/services"
	"github.com/botdesk/botdesk-backend/internal/shared/config"
	"github.com/botdesk/botdesk-backend/internal/shared/database"
	"github.com/botdesk/botdesk-backend/internal/shared/utils"

	_ "github.com/botdesk/botdesk-backend/cmd/api/docs"
)

// @title BotDesk API
// @version 1.0
// @description Multi-tenant chatbot SaaS: admin dashboard, super-admin registry and the public widget surface
// @contact.name API Support
// @contact.email support@botdesk.io
// @license.name MIT
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	log.Printf("🚀 Starting botdesk-api on port %s", cfg.Port)

	// Init database
	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	// Init repositories (use GORM instance)
	chatbotRepo := repositories.NewChatbotRepo(db.GORM)
	qaRepo := repositories.NewQARepo(db.GORM)
	visitorRepo := repositories.NewVisitorRepo(db.GORM)
	conversationRepo := repositories.NewConversationRepo(db.GORM)
	renewalRepo := repositories.NewRenewalRepo(db.GORM)

	// Init auth
	authService := auth.NewService(db.GORM, cfg.JWTSecret)

	// Init upload provider
	var uploadProvider upload.Provider
	switch cfg.UploadProvider {
	case "cloudinary":
		provider, err := upload.NewCloudinaryProvider(cfg.CloudinaryURL)
		if err != nil {
			log.Fatalf("Failed to initialize Cloudinary: %v", err)
		}
		uploadProvider = provider
	default:
		provider, err := upload.NewLocalProvider(cfg.UploadDir, cfg.UploadBaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize local upload storage: %v", err)
		}
		uploadProvider = provider
	}
	uploadService := upload.NewService(uploadProvider)
	log.Printf("📁 Using upload provider: %s", uploadService.GetProviderName())

	// Init email service (multi-provider support)
	var emailProvider email.Provider
	switch cfg.EmailProvider {
	case "resend":
		emailProvider = email.NewResendProvider(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailFromName)
	case "brevo":
		emailProvider = email.NewBrevoProvider(cfg.BrevoAPIKey, cfg.EmailFrom, cfg.EmailFromName)
	default:
		if cfg.BrevoAPIKey != "" {
			emailProvider = email.NewBrevoProvider(cfg.BrevoAPIKey, cfg.EmailFrom, cfg.EmailFromName)
		} else if cfg.ResendAPIKey != "" {
			emailProvider = email.NewResendProvider(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailFromName)
		}
	}
	emailService := email.NewService(emailProvider)
	if emailProvider != nil {
		log.Printf("📧 Using Email provider: %s", emailService.GetProviderName())
	} else {
		log.Printf("⚠️  Email service not configured, lead notifications disabled")
	}

	// Widget display payloads are cached per slug and invalidated on edit.
	displayCache := cache.New(5 * time.Minute)

	// Init services
	chatbotService := services.NewChatbotService(chatbotRepo, displayCache, uploadService)
	qaService := services.NewQAService(qaRepo, chatbotRepo, displayCache)
	visitorService := services.NewVisitorService(visitorRepo, chatbotRepo)
	chatService := services.NewChatService(
		chatbotRepo, qaRepo, visitorRepo, conversationRepo,
		displayCache, emailService, services.NewOwnerLookup(authService.Repo()),
	)
	billingService := billing.NewService(renewalRepo, authService.Repo())

	// Daily sweep keeps stored subscription statuses consistent.
	sweeper := services.NewSubscriptionSweeper(authService.Repo())
	if err := sweeper.Start(); err != nil {
		log.Fatalf("Failed to start subscription sweeper: %v", err)
	}
	defer sweeper.Stop()

	// Init handlers
	authHandler := auth.NewHandler(authService)
	chatHandler := handlers.NewChatHandler(chatService)
	chatbotHandler := handlers.NewChatbotHandler(chatbotService, cfg.PublicBaseURL)
	qaHandler := handlers.NewQAHandler(qaService)
	visitorHandler := handlers.NewVisitorHandler(visitorService)
	adminHandler := handlers.NewAdminHandler(authService.Repo(), billingService)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName:   "BotDesk API",
		BodyLimit: 10 * 1024 * 1024,
	})

	// Middleware
	app.Use(cors.New())
	app.Use(middleware.HTTPMetrics())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Local logo storage
	if cfg.UploadProvider == "local" {
		app.Static("/uploads", cfg.UploadDir)
	}

	// Auth routes
	authenticated := auth.AuthMiddleware(authService)
	app.Post("/auth/login", authHandler.Login)
	app.Post("/auth/refresh", authHandler.RefreshToken)
	app.Post("/auth/register", authenticated, auth.RequireRole(auth.RoleSuperAdmin), authHandler.Register)
	app.Post("/auth/logout", authenticated, authHandler.Logout)
	app.Get("/auth/me", authenticated, authHandler.Me)

	// Renewal stays reachable for lapsed accounts; that is the whole point.
	app.Post("/auth/admin/renew", authenticated, adminHandler.Renew)
	app.Get("/admin/renewals", authenticated, adminHandler.RenewalHistory)
	app.Get("/admin/renewals/:id/invoice", authenticated, adminHandler.Invoice)

	// Super-admin registry
	app.Get("/admin/users", authenticated, auth.RequireRole(auth.RoleSuperAdmin), adminHandler.ListUsers)
	app.Delete("/admin/delete-users/:id", authenticated, auth.RequireRole(auth.RoleSuperAdmin), adminHandler.DeleteUser)

	// Dashboard routes (active subscription required)
	subscribed := auth.RequireActiveSubscription(authService)
	app.Get("/user/chatbots", authenticated, subscribed, chatbotHandler.List)
	app.Post("/user/chatbots", authenticated, subscribed, chatbotHandler.Create)
	app.Patch("/chatbot/:id", authenticated, subscribed, chatbotHandler.Update)
	app.Get("/chatbot/:id/qr", authenticated, subscribed, chatbotHandler.QRCode)

	app.Post("/user/qa", authenticated, subscribed, qaHandler.Create)
	app.Put("/user/qa/:id", authenticated, subscribed, qaHandler.Update)
	app.Delete("/user/qa/:id", authenticated, subscribed, qaHandler.Delete)
	app.Get("/user/get-all-qa/:chatbotId", authenticated, subscribed, qaHandler.ListByChatbot)

	app.Get("/chat/:slug/visitorslist", authenticated, subscribed, visitorHandler.List)
	app.Put("/chat/:slug/visitor/:id/status", authenticated, subscribed, visitorHandler.UpdateStatus)
	app.Get("/chat/:slug/visitors/export", authenticated, subscribed, visitorHandler.Export)
	app.Get("/chat/:slug/conversations", authenticated, subscribed, chatHandler.Transcript)

	// Public widget routes (widget token + per-IP rate limit)
	widgetAuth := handlers.WidgetAuth(chatService)
	chatLimit := middleware.ChatRateLimit(cfg.ChatRateRPM)
	app.Get("/chat/:slug/display", chatLimit, widgetAuth, chatHandler.Display)
	app.Post("/chat/:slug/message", chatLimit, widgetAuth, chatHandler.Message)
	app.Post("/chat/:slug/query", chatLimit, widgetAuth, chatHandler.Query)
	app.Post("/chat/:slug/log", chatLimit, widgetAuth, chatHandler.LogSelection)

	// Prometheus listener on its own port
	middleware.StartMetricsServer(cfg.MetricsPort)

	log.Printf("✅ botdesk-api running at :%s", cfg.Port)
	log.Printf("📄 Swagger UI: http://localhost:%s/swagger/", cfg.Port)
	log.Printf("📊 Metrics: http://localhost:%s/metrics", cfg.MetricsPort)
	log.Fatal(app.Listen(":" + cfg.Port))
}
