package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/ledgerbank/ledgerbank/internal/account"
	"github.com/ledgerbank/ledgerbank/internal/config"
	"github.com/ledgerbank/ledgerbank/internal/events"
	"github.com/ledgerbank/ledgerbank/internal/ledger"
	"github.com/ledgerbank/ledgerbank/internal/middleware"
	"github.com/ledgerbank/ledgerbank/internal/transfer"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg       config.Config
	Ledger    *ledger.Ledger
	Cache     *redis.Client
	Publisher events.Publisher
	Logger    *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	publisher := d.Publisher
	if publisher == nil {
		publisher = events.NewLogPublisher(d.Logger)
	}

	accountSvc := account.NewService(d.Ledger, publisher)
	transferSvc := transfer.NewService(d.Ledger, publisher)

	api := app.Group("/api/v1")
	RegisterAccountRoutes(api, account.NewHandler(accountSvc))
	RegisterTransferRoutes(api, transfer.NewHandler(transferSvc))

	return nil
}
