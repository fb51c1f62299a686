package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"faceswapadmin/internal/config"
	"faceswapadmin/internal/http/handlers"
	applog "faceswapadmin/internal/log"
	"faceswapadmin/internal/remote"
	"faceswapadmin/internal/remote/remotetest"
	"faceswapadmin/internal/repos"
	"faceswapadmin/internal/services"
)

// smallest valid PNG header is enough for content sniffing
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func testConfig() config.Config {
	return config.Config{
		SessionDSN:     ":memory:",
		APITimeout:     5 * time.Second,
		AdminUser:      "admin",
		AdminPassword:  "admin",
		TopicSlug:      true,
		MaxUploadBytes: 1 << 20,
	}
}

// console is the full app wired against an in-memory backend.
type console struct {
	app   *fiber.App
	be    *remotetest.Backend
	repo  *repos.SessionRepo
	token string
	sid   string
}

func friendlyErrors(c *fiber.Ctx, err error) error {
	applog.Error(c, "server.error", err, nil)
	if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
		"Message": "Something went wrong. Please try again.",
	}); rerr != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
	}
	return nil
}

func newConsole(t *testing.T, cfg config.Config) *console {
	t.Helper()
	be := remotetest.New(t)
	cfg.APIBaseURL = be.URL
	db, err := repos.OpenDB(cfg.SessionDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	sessions := repos.NewSessionRepo(db)
	authSvc := &services.AuthService{Sessions: sessions, Verifier: services.NewVerifier(cfg)}
	api := remote.New(cfg.APIBaseURL, cfg.APITimeout)
	deps := handlers.NewDeps(cfg, api, authSvc, services.NewWorkspaces())

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: friendlyErrors})
	app.Server().MaxRequestBodySize = cfg.MaxUploadBytes + 1<<20
	app.Use(requestid.New())
	app.Use(handlers.AttachSession(authSvc))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))

	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{Max: 100, Expiration: time.Minute}), deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)

	guard := handlers.RequireAdmin(authSvc)
	app.Get("/", guard, deps.CategoryHandler.Page)
	app.Post("/categories", guard, deps.CategoryHandler.Create)
	app.Post("/categories/move", guard, deps.CategoryHandler.Move)
	app.Post("/categories/:id/rename", guard, deps.CategoryHandler.Rename)
	app.Post("/categories/:id/delete", guard, deps.CategoryHandler.Delete)
	app.Get("/images", guard, deps.ImageHandler.Page)
	app.Post("/images", guard, deps.ImageHandler.Upload)
	app.Post("/images/move", guard, deps.ImageHandler.Move)
	app.Post("/images/:id/delete", guard, deps.ImageHandler.Delete)
	app.Post("/images/:id/premium", guard, deps.ImageHandler.Premium)
	app.Get("/notification", guard, deps.MessageHandler.Page)
	app.Post("/notification", guard, deps.MessageHandler.Send)
	app.Post("/notification/:id/delete", guard, deps.MessageHandler.Delete)
	app.Get("/dashboard", guard, deps.DashboardHandler.Dashboard)

	cs := &console{app: app, be: be, repo: sessions}
	resp, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	cs.token = cookieValue(resp, "csrf_")
	if cs.token == "" {
		t.Fatal("csrf token missing")
	}
	return cs
}

// loggedIn binds a session directly in the store, skipping the login form.
func loggedIn(t *testing.T) *console {
	t.Helper()
	cs := newConsole(t, testConfig())
	cs.sid = "sid-test"
	if err := cs.repo.Bind(cs.sid, "admin"); err != nil {
		t.Fatal(err)
	}
	return cs
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func (cs *console) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: cs.token})
	if cs.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: cs.sid})
	}
	resp, err := cs.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func (cs *console) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp := cs.do(t, httptest.NewRequest("GET", path, nil))
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func (cs *console) post(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", cs.token)
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return cs.do(t, req)
}

type upload struct {
	field string
	name  string
	data  []byte
}

func (cs *console) postMultipart(t *testing.T, path string, fields map[string]string, file *upload) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("csrf", cs.token)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	if file != nil {
		fw, err := w.CreateFormFile(file.field, file.name)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write(file.data)
	}
	_ = w.Close()
	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return cs.do(t, req)
}

func expectRedirect(t *testing.T, resp *http.Response, to string) {
	t.Helper()
	if resp.StatusCode != http.StatusFound {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected redirect, got %d body=%s", resp.StatusCode, body)
	}
	if loc := resp.Header.Get("Location"); loc != to {
		t.Fatalf("expected redirect to %q, got %q", to, loc)
	}
}

// inOrder reports whether each needle appears after the previous one.
func inOrder(body string, needles ...string) bool {
	at := 0
	for _, n := range needles {
		i := strings.Index(body[at:], n)
		if i < 0 {
			return false
		}
		at += i + len(n)
	}
	return true
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	User   string         `json:"user"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

// capture logs by temporarily replacing the standard logger output
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedWriter{w: &buf, mu: &mu})
	log.SetFlags(0) // remove timestamps to make JSON parseable
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
