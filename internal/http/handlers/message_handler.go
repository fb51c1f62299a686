package handlers

import (
	"strconv"

	"faceswapadmin/internal/domain"
	"faceswapadmin/internal/remote"
	"faceswapadmin/internal/services"
	"faceswapadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type MessageHandler struct {
	Notify         *services.NotificationService
	Workspaces     *services.Workspaces
	API            *remote.Client
	MaxUploadBytes int
}

type messageRow struct {
	Message  domain.PromotionalMessage
	ImageSrc string
	SentAt   string
}

// messageForm holds what the operator typed so a failed send can show it
// again.
type messageForm struct {
	Title string
	Body  string
	Topic string
}

func messagesURL(page int) string {
	return "/notification?page=" + strconv.Itoa(page)
}

func (h *MessageHandler) page(c *fiber.Ctx, ws *services.Workspace, page int, form messageForm, flash *services.Flash) fiber.Map {
	p, err := h.Notify.Page(page)
	if err != nil {
		outcome(c, ws, "messages.list", err, "", map[string]any{"page": page})
		loadErr := ws.TakeFlash()
		if flash == nil {
			flash = loadErr
		}
	}
	rows := make([]messageRow, 0, len(p.Items))
	for _, m := range p.Items {
		r := messageRow{Message: m, SentAt: "not sent"}
		if m.ImageURL != nil {
			r.ImageSrc = h.API.ResolveURL(*m.ImageURL)
		}
		if m.SentAt != nil {
			r.SentAt = *m.SentAt
		}
		rows = append(rows, r)
	}
	return fiber.Map{"Flash": flash, "Rows": rows, "Pager": p, "Form": form}
}

// GET /notification?page=N
func (h *MessageHandler) Page(c *fiber.Ctx) error {
	ws := workspace(c, h.Workspaces)
	ws.Enter(services.ViewNotifications)
	flash := ws.TakeFlash()
	return render(c, "notifications", h.page(c, ws, validate.Page(c.Query("page")), messageForm{}, flash))
}

// POST /notification
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	ws := workspace(c, h.Workspaces)
	page := validate.Page(c.FormValue("page"))
	n := domain.Notification{
		Title: c.FormValue("message_title"),
		Body:  c.FormValue("message_body"),
		Topic: c.FormValue("topic_name"),
	}
	name, payload, err := formImage(c, "image", h.MaxUploadBytes)
	if err == nil {
		n.ImageName, n.Image = name, payload
		var sent domain.Notification
		_, sent, err = h.Notify.Send(n)
		n.Topic = sent.Topic
	}
	fields := map[string]any{"topic": n.Topic, "with_image": len(payload) > 0}
	outcome(c, ws, "messages.send", err, "Notification sent to topic \""+n.Topic+"\".", fields)
	if err != nil {
		form := messageForm{Title: n.Title, Body: n.Body, Topic: n.Topic}
		data := h.page(c, ws, page, form, ws.TakeFlash())
		status := fiber.StatusBadGateway
		if domain.IsValidation(err) {
			status = fiber.StatusUnprocessableEntity
		}
		c.Status(status)
		return render(c, "notifications", data)
	}
	return c.Redirect(messagesURL(page))
}

// POST /notification/:id/delete
func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	ws := workspace(c, h.Workspaces)
	page := validate.Page(c.FormValue("page"))
	id, ok := validate.ID(c.Params("id"))
	var err error
	if !ok {
		err = domain.Invalid("id", "unknown message")
	} else {
		err = h.Notify.Delete(id)
	}
	outcome(c, ws, "messages.delete", err, "Message deleted.", map[string]any{"message_id": id})
	return c.Redirect(messagesURL(page))
}
