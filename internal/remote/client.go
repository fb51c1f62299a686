// Package remote is the typed client for the content backend API.
//
// Each exported operation performs exactly one HTTP exchange. Failures are
// logged and returned as *domain.ValidationError, *domain.RemoteError or
// *domain.SchemaError. There is no caching and no retry.
package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"faceswapadmin/internal/domain"
	applog "faceswapadmin/internal/log"
)

type Client struct {
	base    string
	timeout time.Duration
	check   *validator.Validate
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		check:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (c *Client) BaseURL() string { return c.base }

func (c *Client) url(format string, args ...any) string {
	return c.base + fmt.Sprintf(format, args...)
}

// exchange sends the prepared request and returns the body of a 2xx answer.
func (c *Client) exchange(op string, a *fiber.Agent) ([]byte, error) {
	if c.timeout > 0 {
		a.Timeout(c.timeout)
	}
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return nil, c.fail(op, &domain.RemoteError{Op: op, Err: err})
	}
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return nil, c.fail(op, &domain.RemoteError{Op: op, Status: 0, Err: errors.Join(errs...)})
	}
	if code < 200 || code > 299 {
		return nil, c.fail(op, &domain.RemoteError{Op: op, Status: code, Body: snippet(body)})
	}
	return body, nil
}

func (c *Client) fail(op string, err error) error {
	applog.Error(nil, "remote."+op+".fail", err, nil)
	return err
}

func (c *Client) send(op string, a *fiber.Agent) error {
	_, err := c.exchange(op, a)
	return err
}

func fetchOne[T any](c *Client, op string, a *fiber.Agent) (T, error) {
	var out T
	body, err := c.exchange(op, a)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, c.fail(op, &domain.SchemaError{Op: op, Err: err})
	}
	if err := c.check.Struct(out); err != nil {
		return out, c.fail(op, &domain.SchemaError{Op: op, Err: err})
	}
	return out, nil
}

func fetchList[T any](c *Client, op string, a *fiber.Agent) ([]T, error) {
	body, err := c.exchange(op, a)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, c.fail(op, &domain.SchemaError{Op: op, Err: err})
	}
	for i := range out {
		if err := c.check.Struct(out[i]); err != nil {
			return nil, c.fail(op, &domain.SchemaError{Op: op, Err: fmt.Errorf("item %d: %w", i, err)})
		}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

type swapBody struct {
	ID1 int64 `json:"id1"`
	ID2 int64 `json:"id2"`
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
