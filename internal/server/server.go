// Package server assembles the Fiber application: middleware, static media
// and the /api route tree.
package server

import (
	"errors"
	"time"

	"petshop/internal/handlers"
	"petshop/internal/middleware"
	"petshop/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// Options tune the HTTP surface.
type Options struct {
	CORSOrigins    string
	MediaDir       string
	MediaBaseURL   string
	AuthRateLimit  int
	AuthRateWindow time.Duration
	BodyLimit      int
	AccessLog      bool
}

// Services are the business services the routes delegate to.
type Services struct {
	Auth    *services.AuthService
	Product *services.ProductService
	Catalog *services.CatalogService
	Cart    *services.CartService
	Order   *services.OrderService
	User    *services.UserService
	Blog    *services.BlogService
	Contact *services.ContactService
	Media   *services.MediaService
	Audit   *services.AuditService
}

func (o *Options) setDefaults() {
	if o.CORSOrigins == "" {
		o.CORSOrigins = "*"
	}
	if o.MediaBaseURL == "" {
		o.MediaBaseURL = "/media"
	}
	if o.AuthRateLimit <= 0 {
		o.AuthRateLimit = 10
	}
	if o.AuthRateWindow <= 0 {
		o.AuthRateWindow = time.Minute
	}
	if o.BodyLimit <= 0 {
		o.BodyLimit = 20 << 20
	}
}

// New builds the application with every route mounted under /api.
func New(opts Options, svc Services, logger *zap.SugaredLogger) *fiber.App {
	opts.setDefaults()

	app := fiber.New(fiber.Config{
		AppName:      "petshop",
		BodyLimit:    opts.BodyLimit,
		ErrorHandler: errorHandler(logger),
	})

	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(fiberlogger.New())
	}
	app.Use(recover.New())
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PATCH,PUT,DELETE,OPTIONS",
	}))

	if opts.MediaDir != "" {
		app.Static(opts.MediaBaseURL, opts.MediaDir, fiber.Static{Browse: false})
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	auth := middleware.AuthRequired(svc.Auth, logger)
	authLimit := limiter.New(limiter.Config{
		Max:        opts.AuthRateLimit,
		Expiration: opts.AuthRateWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|auth"
		},
		LimitReached: func(c *fiber.Ctx) error {
			logger.Warnw("Auth rate limit reached", "ip", c.IP(), "path", c.Path())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many attempts, please try again later",
			})
		},
	})

	api := app.Group("/api")
	handlers.NewAuthHandler(svc.Auth, logger).RegisterRoutes(api, auth, authLimit)
	handlers.NewProductHandler(svc.Product, svc.Catalog, logger).RegisterRoutes(api, auth)
	handlers.NewCartHandler(svc.Cart, logger).RegisterRoutes(api, auth)
	handlers.NewOrderHandler(svc.Order, logger).RegisterRoutes(api, auth)
	handlers.NewUserHandler(svc.User, logger).RegisterRoutes(api, auth)
	handlers.NewContentHandler(svc.Blog, svc.Contact, logger).RegisterRoutes(api, auth)
	handlers.NewMediaHandler(svc.Media, logger).RegisterRoutes(api, auth)
	handlers.NewAuditHandler(svc.Audit, logger).RegisterRoutes(api, auth)

	return app
}

// errorHandler renders errors that escaped a handler, such as unknown routes
// or recovered panics, in the API's JSON shape.
func errorHandler(logger *zap.SugaredLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code == fiber.StatusInternalServerError {
			logger.Errorw("Unhandled request error", "path", c.Path(), "method", c.Method(), "error", err)
			return c.Status(code).JSON(fiber.Map{"message": "Internal server error"})
		}
		return c.Status(code).JSON(fiber.Map{"message": err.Error()})
	}
}
