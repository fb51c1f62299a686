package handlers

import (
	"errors"
	"time"

	"faceswapadmin/internal/log"
	"faceswapadmin/internal/services"
	"faceswapadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth       *services.AuthService
	Workspaces *services.Workspaces
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

// GET /login
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	raw := c.FormValue("username")
	pass := c.FormValue("password")

	user, ok := validate.Username(raw)
	fields := map[string]any{"username": raw}
	if !ok {
		// still goes through Login so the session ends up unauthenticated
		user = ""
		fields["reason"] = "bad_format"
	}
	_, err := h.Auth.Login(sid, user, pass)
	if errors.Is(err, services.ErrBadCreds) {
		log.Security(c, "auth.login.fail", fields)
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
			"Err":       "Invalid username or password",
			"Username":  raw,
			"CSRFToken": c.Cookies("csrf_"),
		})
	}
	if err != nil {
		log.Error(c, "auth.login.error", err, fields)
		return c.Status(fiber.StatusInternalServerError).Render("login", fiber.Map{
			"Err":       "Login is unavailable right now. Please try again.",
			"CSRFToken": c.Cookies("csrf_"),
		})
	}

	log.Audit(c, "auth.login.success", map[string]any{"username": user})
	return c.Redirect("/")
}

// POST /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	h.Workspaces.Drop(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/login")
}
