package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"faceswapadmin/internal/config"
	"faceswapadmin/internal/http/handlers"
	applog "faceswapadmin/internal/log"
	"faceswapadmin/internal/remote"
	"faceswapadmin/internal/repos"
	"faceswapadmin/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.SessionDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	authSvc := &services.AuthService{Sessions: repos.NewSessionRepo(db), Verifier: services.NewVerifier(cfg)}
	workspaces := services.NewWorkspaces()
	api := remote.New(cfg.APIBaseURL, cfg.APITimeout)
	log.Printf("[remote] api -> %s (timeout %s)", api.BaseURL(), cfg.APITimeout)

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and show a friendly message
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard; uploads plus form overhead
	app.Server().MaxRequestBodySize = cfg.MaxUploadBytes + 1<<20

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.AttachSession(authSvc))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(cfg, api, authSvc, workspaces)

	// Auth routes (login throttled)
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// Console
	guard := handlers.RequireAdmin(authSvc)
	app.Get("/", guard, deps.CategoryHandler.Page)
	app.Post("/categories", guard, deps.CategoryHandler.Create)
	app.Post("/categories/move", guard, deps.CategoryHandler.Move)
	app.Post("/categories/:id/rename", guard, deps.CategoryHandler.Rename)
	app.Post("/categories/:id/delete", guard, deps.CategoryHandler.Delete)

	app.Get("/images", guard, deps.ImageHandler.Page)
	app.Post("/images", guard, deps.ImageHandler.Upload)
	app.Post("/images/move", guard, deps.ImageHandler.Move)
	app.Post("/images/:id/delete", guard, deps.ImageHandler.Delete)
	app.Post("/images/:id/premium", guard, deps.ImageHandler.Premium)

	app.Get("/notification", guard, deps.MessageHandler.Page)
	app.Post("/notification", guard, deps.MessageHandler.Send)
	app.Post("/notification/:id/delete", guard, deps.MessageHandler.Delete)

	app.Get("/dashboard", guard, deps.DashboardHandler.Dashboard)

	// 404
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port, "api": api.BaseURL()})
	log.Fatal(app.Listen(":" + cfg.Port))
}
