package handlers

import (
	applog "faceswapadmin/internal/log"
	"faceswapadmin/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin lets authenticated sessions through and sends everyone else
// to the login page.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		s, err := auth.Current(sid)
		if err != nil {
			return err
		}
		if !s.Authenticated() {
			applog.Security(c, "access.denied", map[string]any{"sid": sid})
			return c.Redirect("/login")
		}
		_ = auth.Sessions.Touch(sid)
		c.Locals("session", s)
		return c.Next()
	}
}

// AttachSession exposes a logged-in session to templates on public pages.
func AttachSession(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if s, err := auth.Current(sid); err == nil && s.Authenticated() {
				c.Locals("session", s)
			}
		}
		return c.Next()
	}
}
