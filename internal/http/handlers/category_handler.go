package handlers

import (
	"faceswapadmin/internal/domain"
	"faceswapadmin/internal/ordered"
	"faceswapadmin/internal/services"
	"faceswapadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog    *services.CatalogService
	Workspaces *services.Workspaces
}

// GET /
func (h *CategoryHandler) Page(c *fiber.Ctx) error {
	ws := workspace(c, h.Workspaces)
	data := fiber.Map{"Flash": ws.TakeFlash()}
	ctl, err := h.Catalog.Categories(ws)
	if err != nil {
		outcome(c, ws, "categories.load", err, "", nil)
		data["Flash"] = ws.TakeFlash()
	}
	if ctl != nil {
		data["Rows"] = ctl.Rows()
	}
	return render(c, "categories", data)
}

// POST /categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	ws := workspace(c, h.Workspaces)
	raw := c.FormValue("category")
	name, ok := validate.Name(raw)
	var err error
	if !ok {
		err = domain.Invalid("category", "enter a category name")
	} else {
		_, err = h.Catalog.CreateCategory(ws, name)
	}
	outcome(c, ws, "categories.create", err, "Category \""+name+"\" added.", map[string]any{"name": raw})
	return c.Redirect("/")
}

// POST /categories/:id/rename
func (h *CategoryHandler) Rename(c *fiber.Ctx) error {
	ws := workspace(c, h.Workspaces)
	id, okID := validate.ID(c.Params("id"))
	raw := c.FormValue("category")
	name, okName := validate.Name(raw)
	var err error
	switch {
	case !okID:
		err = domain.Invalid("id", "unknown category")
	case !okName:
		err = domain.Invalid("category", "enter a category name")
	default:
		_, err = h.Catalog.RenameCategory(ws, id, name)
	}
	outcome(c, ws, "categories.rename", err, "Category renamed.", map[string]any{"category_id": id, "name": raw})
	return c.Redirect("/")
}

// POST /categories/:id/delete
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	ws := workspace(c, h.Workspaces)
	id, ok := validate.ID(c.Params("id"))
	var err error
	if !ok {
		err = domain.Invalid("id", "unknown category")
	} else {
		err = h.Catalog.DeleteCategory(ws, id)
	}
	outcome(c, ws, "categories.delete", err, "Category deleted.", map[string]any{"category_id": id})
	return c.Redirect("/")
}

// POST /categories/move
func (h *CategoryHandler) Move(c *fiber.Ctx) error {
	ws := workspace(c, h.Workspaces)
	index, okIdx := validate.Index(c.FormValue("index"))
	dir, okDir := ordered.ParseDirection(c.FormValue("dir"))
	var err error
	if !okIdx || !okDir {
		err = domain.Invalid("move", "that move is not available")
	} else {
		err = h.Catalog.MoveCategory(ws, index, dir)
	}
	outcome(c, ws, "categories.move", err, "Category order updated.", map[string]any{"index": index, "dir": dir.String()})
	return c.Redirect("/")
}
