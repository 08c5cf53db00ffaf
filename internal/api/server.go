package api

import (
	"os"

	"github.com/PitchPoint/nda_service/config"
	"github.com/PitchPoint/nda_service/infra/queue"
	"github.com/PitchPoint/nda_service/internal/api/rest/handlers"
	"github.com/PitchPoint/nda_service/internal/helper"
	"github.com/PitchPoint/nda_service/internal/observability"
	"github.com/PitchPoint/nda_service/internal/repository"
	"github.com/PitchPoint/nda_service/internal/services"
	"github.com/PitchPoint/nda_service/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	zlog := logger.New(os.Getenv("ENV"))
	defer func() { _ = zlog.Sync() }()

	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		zlog.Fatal("database connection error", zap.Error(err))
	}
	zlog.Info("database connected")

	// ---------- MIGRATION (guarded by advisory lock) ----------
	if err := migrate(db); err != nil {
		zlog.Fatal("migration error", zap.Error(err))
	}
	zlog.Info("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	metrics := observability.New("nda_service")
	auth := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	pitchRepo := repository.NewPitchRepository(db)
	requestRepo := repository.NewNDARequestRepository(db)
	ndaRepo := repository.NewSignedNDARepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ---------- Services ----------
	ndaSvc := services.NewNDAService(
		pitchRepo,
		requestRepo,
		ndaRepo,
		auditRepo,
		kafkaProducer,
		metrics,
		zlog,
		services.ExpiryPolicy{
			BasicDays:    cfg.BasicExpiryDays,
			EnhancedDays: cfg.EnhancedExpiryDays,
		},
	)
	accessSvc := services.NewAccessService(
		pitchRepo,
		requestRepo,
		ndaRepo,
		metrics,
		zlog,
		services.DefaultProjectionPolicy(),
	)

	// ---------- Handlers ----------
	ndaHandler := handlers.NewNDAHandler(ndaSvc, accessSvc, auth)
	ndaHandler.SetupRoutes(app)
	pitchHandler := handlers.NewPitchHandler(accessSvc, auth)
	pitchHandler.SetupRoutes(app)

	// ---------- Health & metrics ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// ---------- Listen ----------
	addr := cfg.ServerPort
	zlog.Info("listening", zap.String("addr", addr))
	zlog.Fatal("server stopped", zap.Error(app.Listen(addr)))
}
