package remote

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"faceswapadmin/internal/domain"
)

// ListPromotionalMessages fetches one 1-based page. Page sizing is up to the
// backend.
func (c *Client) ListPromotionalMessages(page int) ([]domain.PromotionalMessage, error) {
	if page < 1 {
		page = 1
	}
	return fetchList[domain.PromotionalMessage](c, "messages.list", fiber.Get(c.url("/promotional_messages?page=%d", page)))
}

// SendNotification creates and dispatches a message in one call.
func (c *Client) SendNotification(n domain.Notification) (domain.PromotionalMessage, error) {
	const op = "messages.send"
	fields := [][2]string{
		{"message_title", strings.TrimSpace(n.Title)},
		{"message_body", strings.TrimSpace(n.Body)},
		{"topic_name", strings.TrimSpace(n.Topic)},
	}
	for _, f := range fields {
		if f[1] == "" {
			return domain.PromotionalMessage{}, c.fail(op, domain.Invalid(f[0], "is required"))
		}
	}

	var file *fiber.FormFile
	if len(n.Image) > 0 {
		var err error
		if file, err = imageFile(n.ImageName, n.Image); err != nil {
			return domain.PromotionalMessage{}, c.fail(op, err)
		}
	}

	a := fiber.Post(c.url("/send_notification_to_topic"))
	if file != nil {
		a.FileData(file)
	}
	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	for _, f := range fields {
		args.Set(f[0], f[1])
	}
	a.MultipartForm(args)
	return fetchOne[domain.PromotionalMessage](c, op, a)
}

func (c *Client) DeletePromotionalMessage(id int64) error {
	return c.send("messages.delete", fiber.Delete(c.url("/promotional_messages/%d", id)))
}
