package services

import (
	"sync"

	"faceswapadmin/internal/domain"
	"faceswapadmin/internal/ordered"
)

type View string

const (
	ViewCategories    View = "categories"
	ViewImages        View = "images"
	ViewNotifications View = "notifications"
	ViewDashboard     View = "dashboard"
)

type Flash struct {
	Kind string // "success" or "error"
	Text string
}

// Workspace is one browser session's view state. It holds at most the
// collection controller of the view being displayed.
type Workspace struct {
	mu            sync.Mutex
	view          View
	categories    *ordered.Controller[domain.Category]
	images        *ordered.Controller[domain.Image]
	imageCategory int64
	flash         *Flash
}

// Enter switches the displayed view. Controllers of any other view are
// discarded.
func (w *Workspace) Enter(v View) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.view == v {
		return
	}
	w.view = v
	if v != ViewCategories {
		w.categories = nil
	}
	if v != ViewImages {
		w.images = nil
		w.imageCategory = 0
	}
}

// Discard drops every held controller so the next page load re-fetches.
func (w *Workspace) Discard() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.categories = nil
	w.images = nil
	w.imageCategory = 0
}

func (w *Workspace) Flash(kind, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.flash = &Flash{Kind: kind, Text: text}
}

// TakeFlash returns the pending message once.
func (w *Workspace) TakeFlash() *Flash {
	w.mu.Lock()
	defer w.mu.Unlock()
	f := w.flash
	w.flash = nil
	return f
}

type Workspaces struct {
	mu sync.Mutex
	m  map[string]*Workspace
}

func NewWorkspaces() *Workspaces {
	return &Workspaces{m: map[string]*Workspace{}}
}

func (r *Workspaces) For(sid string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.m[sid]
	if !ok {
		w = &Workspace{}
		r.m[sid] = w
	}
	return w
}

func (r *Workspaces) Drop(sid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, sid)
}
