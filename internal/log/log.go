package log

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"faceswapadmin/internal/domain"
)

type entry struct {
	TS       string         `json:"ts"`
	Level    string         `json:"level"`
	ReqID    string         `json:"req_id,omitempty"`
	IP       string         `json:"ip,omitempty"`
	Method   string         `json:"method,omitempty"`
	Path     string         `json:"path,omitempty"`
	User     string         `json:"user,omitempty"`
	Action   string         `json:"action,omitempty"`
	Status   int            `json:"status,omitempty"`
	Upstream int            `json:"upstream_status,omitempty"`
	Err      string         `json:"err,omitempty"`
	ErrKind  string         `json:"err_kind,omitempty"`
	Fields   map[string]any `json:"fields,omitempty"`
}

func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := entry{TS: time.Now().UTC().Format(time.RFC3339), Level: level, Action: action, Fields: fields}
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e.ReqID = rid
		}
		if s, ok := c.Locals("session").(domain.Session); ok {
			e.User = s.User
		}
	}
	if err != nil {
		e.Err = err.Error()
		e.ErrKind = kind(err)
		var re *domain.RemoteError
		if errors.As(err, &re) {
			e.Upstream = re.Status
		}
	}
	b, _ := json.Marshal(e)
	log.Println(string(b))
}

func kind(err error) string {
	switch {
	case domain.IsValidation(err):
		return "validation"
	case domain.IsSchema(err):
		return "schema"
	case domain.IsRemote(err):
		return "remote"
	}
	return ""
}

func Info(c *fiber.Ctx, action string, fields map[string]any) { write("info", c, action, nil, fields) }

// Audit records a console mutation that reached the backend.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write("audit", c, action, nil, fields)
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write("warn", c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", c, action, err, fields)
}
