package remote

import (
	"github.com/gofiber/fiber/v2"

	"faceswapadmin/internal/domain"
)

// Report periods served under /reports/{period}.
const (
	Daily   = "daily"
	Weekly  = "weekly"
	Monthly = "monthly"
)

func (c *Client) Report(period string) (domain.Report, error) {
	return fetchOne[domain.Report](c, "reports."+period, fiber.Get(c.url("/reports/%s", period)))
}

func (c *Client) AllActivities() ([]domain.Activity, error) {
	return fetchList[domain.Activity](c, "reports.all_activities", fiber.Get(c.url("/reports/all_activities")))
}

func (c *Client) TotalUsers() (int64, error) {
	t, err := fetchOne[domain.UserTotal](c, "reports.total_users", fiber.Get(c.url("/reports/total_users")))
	return t.TotalUsers, err
}
