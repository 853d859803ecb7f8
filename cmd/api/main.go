package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-sales-crm/internal/config"
	"go-sales-crm/internal/events"
	"go-sales-crm/internal/handler"
	"go-sales-crm/internal/pricing"
	"go-sales-crm/internal/repository"
	"go-sales-crm/internal/service"
	"go-sales-crm/internal/ws"
	"go-sales-crm/pkg/database"
	"go-sales-crm/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	for _, name := range cfg.InsecureDefaults() {
		log.Printf("Warning: %s not set, using the built-in default", name)
	}

	// 2. Setup Database
	db := database.ConnectDB(cfg.DatabaseURL)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// 3. Setup WebSocket Hub and event sinks
	wsHub := ws.NewHub()
	go wsHub.Run()

	publishers := events.Multi{events.NewHubPublisher(wsHub)}
	var kafkaPub *events.KafkaPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, 256)
		kafkaPub.Start()
		publishers = append(publishers, kafkaPub)
		log.Printf("Publishing events to kafka topic %s", cfg.KafkaTopic)
	}

	// 4. Dependency Injection (Wiring Layers)
	normalizer := pricing.NewNormalizer(cfg.ConversionRate, cfg.DomesticCategory)
	tokens := jwt.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)

	userRepo := repository.NewUserRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	productRepo := repository.NewProductRepo(db)
	interviewRepo := repository.NewInterviewRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	locationRepo := repository.NewLocationRepo(db)

	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	customerService := service.NewCustomerService(customerRepo, normalizer, publishers)
	productService := service.NewProductService(productRepo, normalizer)
	interviewService := service.NewInterviewService(interviewRepo, customerRepo, productRepo, saleRepo, publishers)
	saleService := service.NewSaleService(saleRepo, productRepo, interviewRepo, normalizer, publishers)
	dashService := service.NewDashboardService(customerRepo, interviewRepo, saleRepo, normalizer)
	locationService := service.NewLocationService(locationRepo)

	// 5. Seed default admin user and categories
	if created, err := userService.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword, "Administrator"); err != nil {
		log.Printf("Warning: Failed to seed admin user: %v", err)
	} else if created {
		log.Printf("✅ Admin user created: %s", cfg.AdminEmail)
	}
	if err := productRepo.SeedCategories(cfg.Categories); err != nil {
		log.Printf("Warning: Failed to seed categories: %v", err)
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Sales CRM v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	handler.RegisterRoutes(app, handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Customer:  handler.NewCustomerHandler(customerService),
		Product:   handler.NewProductHandler(productService),
		Interview: handler.NewInterviewHandler(interviewService),
		Sale:      handler.NewSaleHandler(saleService),
		Dashboard: handler.NewDashboardHandler(dashService),
		Location:  handler.NewLocationHandler(locationService),
	}, authService)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "ws_clients": wsHub.ClientCount()})
	})

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		select {
		case wsHub.Register <- c:
		case <-wsHub.Done():
			return
		}
		defer func() {
			select {
			case wsHub.Unregister <- c:
			case <-wsHub.Done():
			}
		}()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	wsHub.Stop()
	if kafkaPub != nil {
		kafkaPub.Close()
	}

	log.Println("Server exited")
}
