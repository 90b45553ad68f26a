package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/wavepay/wavepay/internal/config"
	"github.com/wavepay/wavepay/internal/country"
	"github.com/wavepay/wavepay/internal/custid"
	"github.com/wavepay/wavepay/internal/fx"
	"github.com/wavepay/wavepay/internal/ledger"
	"github.com/wavepay/wavepay/internal/middleware"
	"github.com/wavepay/wavepay/internal/notify"
	"github.com/wavepay/wavepay/internal/otp"
	"github.com/wavepay/wavepay/internal/payaddr"
	"github.com/wavepay/wavepay/internal/user"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	if d.Cfg.IsDev() {
		// Plain text access log for local work; structured audit log elsewhere.
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	} else {
		app.Use(middleware.Audit(d.Logger))
	}
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers
	var allocRepo custid.Repository
	if d.DB != nil {
		allocRepo = custid.NewPostgresRepository(d.DB, d.Cfg.CustIDPrefix)
	} else {
		allocRepo = custid.NewMemoryRepository(d.Cfg.CustIDPrefix)
	}
	allocSvc := custid.NewService(allocRepo)

	var userRepo user.Repository
	if d.DB != nil {
		userRepo = user.NewPostgresRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
	}
	userSvc := user.NewService(userRepo)

	var txnRepo ledger.Repository
	if d.DB != nil {
		txnRepo = ledger.NewPostgresRepository(d.DB)
	} else {
		txnRepo = ledger.NewMemoryRepository()
	}
	ledgerSvc := ledger.NewService(txnRepo)

	var countryRepo country.Repository
	if d.DB != nil {
		countryRepo = country.NewPostgresRepository(d.DB)
	} else {
		countryRepo = country.NewMemoryRepository(devCountryRows()...)
	}
	countryClient := country.NewRESTClient(d.Cfg.CountryAPIURL, d.Cfg.ExternalTimeout)
	countrySvc := country.NewService(countryRepo, countryClient, d.Cache, d.Logger)

	notifier := notify.NewLoggerNotifier(d.Logger)
	rateClient := fx.NewRESTClient(d.Cfg.ExchangeAPIURL, d.Cfg.ExternalTimeout)
	transferSvc := fx.NewService(userSvc, ledgerSvc, rateClient, notifier)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterCustIDRoutes(api, custid.NewHandler(allocSvc))
	RegisterUserRoutes(api, user.NewHandler(userSvc), d.Cache)
	RegisterTransactionRoutes(api, ledger.NewHandler(ledgerSvc))
	RegisterCountryRoutes(api, country.NewHandler(countrySvc))
	RegisterPaymentAddressRoutes(api, payaddr.NewHandler(userSvc))
	RegisterTransferRoutes(api, fx.NewHandler(transferSvc))

	if d.Cache != nil {
		otpSvc := otp.NewService(d.Cache, notifier, d.Cfg.OTPTTL)
		RegisterOTPRoutes(api, otp.NewHandler(otpSvc, userSvc), d.Cache)
	}

	return nil
}

// devCountryRows seeds the in-memory reference table so the lookup endpoint
// works without a database.
func devCountryRows() []country.CountryCode {
	return []country.CountryCode{
		{CallingCode: "1", CountryCode: "US", Country: "United States"},
		{CallingCode: "44", CountryCode: "GB", Country: "United Kingdom"},
		{CallingCode: "91", CountryCode: "IN", Country: "India"},
		{CallingCode: "242", CountryCode: "CG", Country: "Congo"},
	}
}
