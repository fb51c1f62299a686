package handlers

import (
	"errors"
	"fmt"

	"faceswapadmin/internal/domain"
	applog "faceswapadmin/internal/log"
	"faceswapadmin/internal/services"

	"github.com/gofiber/fiber/v2"
)

// userMessage turns an error into text an operator can act on. Internals
// such as response bodies never reach the page.
func userMessage(err error) string {
	var (
		v *domain.ValidationError
		r *domain.RemoteError
		s *domain.SchemaError
	)
	switch {
	case errors.As(err, &v):
		return v.Reason
	case errors.As(err, &r):
		switch {
		case r.Status == 0:
			return "The content server could not be reached. Check the connection and try again."
		case r.NotFound():
			return "That item no longer exists. The list has been reloaded."
		case r.Status >= 500:
			return fmt.Sprintf("The content server failed (status %d). Try again shortly.", r.Status)
		default:
			return fmt.Sprintf("The content server rejected the request (status %d).", r.Status)
		}
	case errors.As(err, &s):
		return "The content server sent an unexpected response. Reload the page and try again."
	}
	return "Something went wrong. Please try again."
}

// outcome logs the result of a mutation and leaves a flash message for the
// page the caller redirects to.
func outcome(c *fiber.Ctx, ws *services.Workspace, action string, err error, success string, fields map[string]any) {
	if err != nil {
		applog.Error(c, action+".fail", err, fields)
		var r *domain.RemoteError
		if errors.As(err, &r) && r.NotFound() {
			// the held sequence is stale
			ws.Discard()
		}
		ws.Flash("error", userMessage(err))
		return
	}
	applog.Audit(c, action, fields)
	ws.Flash("success", success)
}
