package handlers

import (
	"fmt"
	"io"
	"strconv"

	"faceswapadmin/internal/domain"
	"faceswapadmin/internal/ordered"
	"faceswapadmin/internal/remote"
	"faceswapadmin/internal/services"
	"faceswapadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ImageHandler struct {
	Catalog        *services.CatalogService
	Workspaces     *services.Workspaces
	API            *remote.Client
	MaxUploadBytes int
}

type imageRow struct {
	Index       int
	Image       domain.Image
	Src         string
	CanMoveUp   bool
	CanMoveDown bool
}

func imagesURL(categoryID int64) string {
	if categoryID <= 0 {
		return "/images"
	}
	return "/images?category=" + strconv.FormatInt(categoryID, 10)
}

// GET /images?category=N
func (h *ImageHandler) Page(c *fiber.Ctx) error {
	ws := workspace(c, h.Workspaces)
	data := fiber.Map{"Flash": ws.TakeFlash()}

	cats, err := h.Catalog.ListCategories()
	if err != nil {
		outcome(c, ws, "images.categories", err, "", nil)
		data["Flash"] = ws.TakeFlash()
	}
	data["Categories"] = cats

	catID, ok := validate.ID(c.Query("category"))
	if !ok {
		catID = h.Catalog.ImageCategory(ws)
	}
	if catID <= 0 && len(cats) > 0 {
		catID = cats[0].ID
	}
	data["CategoryID"] = catID
	if catID <= 0 {
		ws.Enter(services.ViewImages)
		return render(c, "images", data)
	}

	ctl, err := h.Catalog.Images(ws, catID)
	if err != nil {
		outcome(c, ws, "images.load", err, "", map[string]any{"category_id": catID})
		data["Flash"] = ws.TakeFlash()
	}
	if ctl != nil {
		var rows []imageRow
		for _, r := range ctl.Rows() {
			rows = append(rows, imageRow{
				Index:       r.Index,
				Image:       r.Item,
				Src:         h.API.ResolveURL(r.Item.URL),
				CanMoveUp:   r.CanMoveUp,
				CanMoveDown: r.CanMoveDown,
			})
		}
		data["Rows"] = rows
	}
	return render(c, "images", data)
}

// formImage reads an optional uploaded file. A missing file yields an empty
// payload, which the client rejects without contacting the backend.
func formImage(c *fiber.Ctx, field string, max int) (string, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil, nil
	}
	if max > 0 && fh.Size > int64(max) {
		return "", nil, domain.Invalid(field, fmt.Sprintf("image is larger than %d KiB", max>>10))
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, data, nil
}

// POST /images
func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	ws := workspace(c, h.Workspaces)
	catID, _ := validate.ID(c.FormValue("category"))
	name, payload, err := formImage(c, "image", h.MaxUploadBytes)
	if err == nil {
		_, err = h.Catalog.UploadImage(ws, catID, name, payload)
	}
	outcome(c, ws, "images.upload", err, "Image uploaded.", map[string]any{"category_id": catID, "file": name, "bytes": len(payload)})
	return c.Redirect(imagesURL(catID))
}

// POST /images/:id/delete
func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	ws := workspace(c, h.Workspaces)
	catID, _ := validate.ID(c.FormValue("category"))
	id, ok := validate.ID(c.Params("id"))
	var err error
	if !ok {
		err = domain.Invalid("id", "unknown image")
	} else {
		err = h.Catalog.DeleteImage(ws, catID, id)
	}
	outcome(c, ws, "images.delete", err, "Image deleted.", map[string]any{"category_id": catID, "image_id": id})
	return c.Redirect(imagesURL(catID))
}

// POST /images/:id/premium
func (h *ImageHandler) Premium(c *fiber.Ctx) error {
	ws := workspace(c, h.Workspaces)
	catID, _ := validate.ID(c.FormValue("category"))
	id, ok := validate.ID(c.Params("id"))
	premium := c.FormValue("premium") == "true"
	var err error
	if !ok {
		err = domain.Invalid("id", "unknown image")
	} else {
		err = h.Catalog.SetPremium(ws, catID, id, premium)
	}
	msg := "Image marked as premium."
	if !premium {
		msg = "Premium removed from image."
	}
	outcome(c, ws, "images.premium", err, msg, map[string]any{"category_id": catID, "image_id": id, "premium": premium})
	return c.Redirect(imagesURL(catID))
}

// POST /images/move
func (h *ImageHandler) Move(c *fiber.Ctx) error {
	ws := workspace(c, h.Workspaces)
	catID, _ := validate.ID(c.FormValue("category"))
	index, okIdx := validate.Index(c.FormValue("index"))
	dir, okDir := ordered.ParseDirection(c.FormValue("dir"))
	var err error
	if !okIdx || !okDir {
		err = domain.Invalid("move", "that move is not available")
	} else {
		err = h.Catalog.MoveImage(ws, catID, index, dir)
	}
	outcome(c, ws, "images.move", err, "Image order updated.", map[string]any{"category_id": catID, "index": index, "dir": dir.String()})
	return c.Redirect(imagesURL(catID))
}
