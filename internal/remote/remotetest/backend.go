// Package remotetest runs an in-memory stand-in for the content backend.
package remotetest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"faceswapadmin/internal/domain"
)

// Call is one request the backend received.
type Call struct {
	Method string
	Path   string
	Query  string
	JSON   map[string]any
	Form   map[string]string
	Files  map[string][]byte
}

// Int reads a numeric JSON body field.
func (c Call) Int(key string) int64 {
	f, _ := c.JSON[key].(float64)
	return int64(f)
}

type Backend struct {
	*httptest.Server

	// PageSize for /promotional_messages.
	PageSize int

	mu         sync.Mutex
	calls      []Call
	nextID     int64
	categories []domain.Category
	images     map[int64][]domain.Image
	messages   []domain.PromotionalMessage
	reports    map[string]domain.Report
	activities []domain.Activity
	totalUsers int64
	canned     map[string]canned
}

type canned struct {
	status int
	body   string
}

func New(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		PageSize: 10,
		nextID:   100,
		images:   map[int64][]domain.Image{},
		reports:  map[string]domain.Report{},
		canned:   map[string]canned{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /categories", b.listCategories)
	mux.HandleFunc("POST /categories", b.createCategory)
	mux.HandleFunc("PUT /categories/{id}", b.renameCategory)
	mux.HandleFunc("DELETE /categories/{id}", b.deleteCategory)
	mux.HandleFunc("POST /categories/swap", b.swapCategories)
	mux.HandleFunc("GET /categories/{id}/images", b.listImages)
	mux.HandleFunc("POST /categories/{id}/images", b.uploadImage)
	mux.HandleFunc("POST /categories/{id}/images/swap", b.swapImages)
	mux.HandleFunc("DELETE /images/{id}", b.deleteImage)
	mux.HandleFunc("PUT /images/{id}/mark_premium", b.premium(true))
	mux.HandleFunc("PUT /images/{id}/remove_premium", b.premium(false))
	mux.HandleFunc("GET /promotional_messages", b.listMessages)
	mux.HandleFunc("DELETE /promotional_messages/{id}", b.deleteMessage)
	mux.HandleFunc("POST /send_notification_to_topic", b.sendNotification)
	mux.HandleFunc("GET /reports/{kind}", b.report)

	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		b.mu.Lock()
		cn, ok := b.canned[r.Method+" "+r.URL.Path]
		b.mu.Unlock()
		if ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(cn.status)
			_, _ = io.WriteString(w, cn.body)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.Close)
	return b
}

// Respond makes method+path answer with a fixed status and body.
func (b *Backend) Respond(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.canned[method+" "+path] = canned{status: status, body: body}
}

func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// CallsTo returns the recorded calls for method and path.
func (b *Backend) CallsTo(method, path string) []Call {
	var out []Call
	for _, c := range b.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
}

func (b *Backend) SeedCategories(cats ...domain.Category) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.categories = append(b.categories, cats...)
}

func (b *Backend) SeedImages(categoryID int64, imgs ...domain.Image) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.images[categoryID] = append(b.images[categoryID], imgs...)
}

func (b *Backend) SeedMessages(msgs ...domain.PromotionalMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, msgs...)
}

func (b *Backend) SeedReports(reports map[string]domain.Report, acts []domain.Activity, total int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for k, v := range reports {
		b.reports[k] = v
	}
	b.activities = append(b.activities, acts...)
	b.totalUsers = total
}

func (b *Backend) CategoryIDs() []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]int64, len(b.categories))
	for i, c := range b.categories {
		ids[i] = c.ID
	}
	return ids
}

func (b *Backend) ImageIDs(categoryID int64) []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]int64, len(b.images[categoryID]))
	for i, img := range b.images[categoryID] {
		ids[i] = img.ID
	}
	return ids
}

func (b *Backend) Image(id int64) (domain.Image, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, imgs := range b.images {
		for _, img := range imgs {
			if img.ID == id {
				return img, true
			}
		}
	}
	return domain.Image{}, false
}

func (b *Backend) record(r *http.Request) {
	c := Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
	ct := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "application/json"):
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &c.JSON)
		r.Body = io.NopCloser(strings.NewReader(string(raw)))
	case strings.HasPrefix(ct, "multipart/form-data"):
		if err := r.ParseMultipartForm(32 << 20); err == nil {
			c.Form = map[string]string{}
			for k, v := range r.MultipartForm.Value {
				c.Form[k] = v[0]
			}
			c.Files = map[string][]byte{}
			for k, fhs := range r.MultipartForm.File {
				f, err := fhs[0].Open()
				if err != nil {
					continue
				}
				c.Files[k], _ = io.ReadAll(f)
				_ = f.Close()
			}
		}
	}
	b.mu.Lock()
	b.calls = append(b.calls, c)
	b.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

func pathID(r *http.Request, name string) int64 {
	n, _ := strconv.ParseInt(r.PathValue(name), 10, 64)
	return n
}

func readSwap(r *http.Request) (int64, int64, bool) {
	var body struct {
		ID1 int64 `json:"id1"`
		ID2 int64 `json:"id2"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return 0, 0, false
	}
	return body.ID1, body.ID2, true
}

func (b *Backend) listCategories(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]domain.Category{}, b.categories...))
}

func (b *Backend) createCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Category == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category is required"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	c := domain.Category{ID: b.nextID, Name: body.Category}
	b.categories = append(b.categories, c)
	writeJSON(w, http.StatusCreated, c)
}

func (b *Backend) renameCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Category == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category is required"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := pathID(r, "id")
	for i := range b.categories {
		if b.categories[i].ID == id {
			b.categories[i].Name = body.Category
			writeJSON(w, http.StatusOK, b.categories[i])
			return
		}
	}
	notFound(w)
}

func (b *Backend) deleteCategory(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := pathID(r, "id")
	for i, c := range b.categories {
		if c.ID == id {
			b.categories = append(b.categories[:i], b.categories[i+1:]...)
			delete(b.images, id)
			writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
			return
		}
	}
	notFound(w)
}

func (b *Backend) swapCategories(w http.ResponseWriter, r *http.Request) {
	id1, id2, ok := readSwap(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad body"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i, j := -1, -1
	for k, c := range b.categories {
		switch c.ID {
		case id1:
			i = k
		case id2:
			j = k
		}
	}
	if i < 0 || j < 0 {
		notFound(w)
		return
	}
	b.categories[i], b.categories[j] = b.categories[j], b.categories[i]
	writeJSON(w, http.StatusOK, map[string]string{"message": "swapped"})
}

func (b *Backend) listImages(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]domain.Image{}, b.images[pathID(r, "id")]...))
}

func (b *Backend) uploadImage(w http.ResponseWriter, r *http.Request) {
	if r.MultipartForm == nil || len(r.MultipartForm.File["image"]) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "image is required"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	cat := pathID(r, "id")
	b.nextID++
	img := domain.Image{ID: b.nextID, URL: fmt.Sprintf("uploads/%d.png", b.nextID)}
	b.images[cat] = append(b.images[cat], img)
	writeJSON(w, http.StatusCreated, img)
}

func (b *Backend) swapImages(w http.ResponseWriter, r *http.Request) {
	id1, id2, ok := readSwap(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad body"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	imgs := b.images[pathID(r, "id")]
	i, j := -1, -1
	for k, img := range imgs {
		switch img.ID {
		case id1:
			i = k
		case id2:
			j = k
		}
	}
	if i < 0 || j < 0 {
		notFound(w)
		return
	}
	imgs[i], imgs[j] = imgs[j], imgs[i]
	writeJSON(w, http.StatusOK, map[string]string{"message": "swapped"})
}

func (b *Backend) deleteImage(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := pathID(r, "id")
	for cat, imgs := range b.images {
		for i, img := range imgs {
			if img.ID == id {
				b.images[cat] = append(imgs[:i], imgs[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
				return
			}
		}
	}
	notFound(w)
}

func (b *Backend) premium(on bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id := pathID(r, "id")
		for _, imgs := range b.images {
			for i := range imgs {
				if imgs[i].ID == id {
					imgs[i].Premium = on
					writeJSON(w, http.StatusOK, imgs[i])
					return
				}
			}
		}
		notFound(w)
	}
}

func (b *Backend) listMessages(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	start := (page - 1) * b.PageSize
	if start > len(b.messages) {
		start = len(b.messages)
	}
	end := min(start+b.PageSize, len(b.messages))
	writeJSON(w, http.StatusOK, append([]domain.PromotionalMessage{}, b.messages[start:end]...))
}

func (b *Backend) deleteMessage(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := pathID(r, "id")
	for i, m := range b.messages {
		if m.ID == id {
			b.messages = append(b.messages[:i], b.messages[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
			return
		}
	}
	notFound(w)
}

func (b *Backend) sendNotification(w http.ResponseWriter, r *http.Request) {
	if r.MultipartForm == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart form required"})
		return
	}
	get := func(k string) string {
		if v := r.MultipartForm.Value[k]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	title, body, topic := get("message_title"), get("message_body"), get("topic_name")
	if title == "" || body == "" || topic == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	sent := time.Now().UTC().Format(time.RFC3339)
	m := domain.PromotionalMessage{ID: b.nextID, Title: title, Body: body, Topic: topic, SentAt: &sent}
	if len(r.MultipartForm.File["image"]) > 0 {
		u := fmt.Sprintf("notifications/%d.png", b.nextID)
		m.ImageURL = &u
	}
	b.messages = append([]domain.PromotionalMessage{m}, b.messages...)
	writeJSON(w, http.StatusCreated, m)
}

func (b *Backend) report(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch kind := r.PathValue("kind"); kind {
	case "all_activities":
		writeJSON(w, http.StatusOK, append([]domain.Activity{}, b.activities...))
	case "total_users":
		writeJSON(w, http.StatusOK, domain.UserTotal{TotalUsers: b.totalUsers})
	default:
		rep, ok := b.reports[kind]
		if !ok {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, rep)
	}
}
