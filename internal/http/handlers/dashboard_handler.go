package handlers

import (
	"strings"

	applog "faceswapadmin/internal/log"
	"faceswapadmin/internal/services"
	"faceswapadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Reports    *services.ReportService
	Workspaces *services.Workspaces
}

// GET /dashboard?page=N&rows=R
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	ws := workspace(c, h.Workspaces)
	ws.Enter(services.ViewDashboard)

	page, _ := validate.Index(c.Query("page"))
	rows := validate.RowsPerPage(c.Query("rows"))
	d, err := h.Reports.Load(page, rows)
	if err != nil {
		applog.Error(c, "dashboard.load", err, map[string]any{"unavailable": d.Unavailable})
	}

	data := fiber.Map{"Flash": ws.TakeFlash(), "D": d, "RowOptions": []int{5, 10, 25}}
	if len(d.Unavailable) > 0 {
		data["Flash"] = &services.Flash{
			Kind: "error",
			Text: "Some reports could not be loaded: " + strings.Join(d.Unavailable, ", ") + ".",
		}
	}
	return render(c, "dashboard", data)
}
