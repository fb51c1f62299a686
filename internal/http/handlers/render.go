package handlers

import (
	"faceswapadmin/internal/domain"
	"faceswapadmin/internal/services"

	"github.com/gofiber/fiber/v2"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if s, ok := c.Locals("session").(domain.Session); ok {
		data["Session"] = s
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	data["CSRFToken"] = tok
	return c.Render(tmpl, data)
}

// workspace returns the view state of the caller's session.
func workspace(c *fiber.Ctx, reg *services.Workspaces) *services.Workspace {
	return reg.For(c.Cookies("sid"))
}
