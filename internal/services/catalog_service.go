package services

import (
	"faceswapadmin/internal/domain"
	"faceswapadmin/internal/ordered"
	"faceswapadmin/internal/remote"
)

type categorySource struct{ api *remote.Client }

func (s categorySource) List() ([]domain.Category, error) { return s.api.ListCategories() }
func (s categorySource) Swap(a, b int64) error            { return s.api.SwapCategoryOrder(a, b) }
func (s categorySource) Delete(id int64) error            { return s.api.DeleteCategory(id) }

type imageSource struct {
	api        *remote.Client
	categoryID int64
}

func (s imageSource) List() ([]domain.Image, error) { return s.api.ListImages(s.categoryID) }
func (s imageSource) Swap(a, b int64) error         { return s.api.SwapImageOrder(s.categoryID, a, b) }
func (s imageSource) Delete(id int64) error         { return s.api.DeleteImage(id) }

// CatalogService drives categories (re-fetched after reorder) and one
// category's images (swapped locally after reorder).
type CatalogService struct {
	API *remote.Client
}

func NewCatalogService(api *remote.Client) *CatalogService {
	return &CatalogService{API: api}
}

func (s *CatalogService) categories(ws *Workspace) *ordered.Controller[domain.Category] {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.categories == nil {
		ws.categories = ordered.New[domain.Category]("categories", categorySource{s.API}, ordered.Refetch)
	}
	return ws.categories
}

// Categories enters the categories view and fetches the server order. The
// controller stays held so the indexes posted back from this page resolve
// against what was rendered.
func (s *CatalogService) Categories(ws *Workspace) (*ordered.Controller[domain.Category], error) {
	ws.Enter(ViewCategories)
	ctl := s.categories(ws)
	return ctl, ctl.Load()
}

// ListCategories is a plain read used by the image page's selector.
func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.API.ListCategories()
}

func (s *CatalogService) CreateCategory(ws *Workspace, name string) (domain.Category, error) {
	cat, err := s.API.CreateCategory(name)
	if err != nil {
		return cat, err
	}
	return cat, s.categories(ws).Refresh()
}

func (s *CatalogService) RenameCategory(ws *Workspace, id int64, name string) (domain.Category, error) {
	cat, err := s.API.RenameCategory(id, name)
	if err != nil {
		return cat, err
	}
	return cat, s.categories(ws).Refresh()
}

func (s *CatalogService) DeleteCategory(ws *Workspace, id int64) error {
	return s.categories(ws).Delete(id)
}

func (s *CatalogService) MoveCategory(ws *Workspace, index int, d ordered.Direction) error {
	return s.categories(ws).Move(index, d)
}

func (s *CatalogService) images(ws *Workspace, categoryID int64) *ordered.Controller[domain.Image] {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.images == nil || ws.imageCategory != categoryID {
		ws.images = ordered.New[domain.Image]("images", imageSource{api: s.API, categoryID: categoryID}, ordered.SwapInPlace)
		ws.imageCategory = categoryID
	}
	return ws.images
}

// Images enters the images view for one category and fetches its images.
// Switching category discards the previous category's sequence.
func (s *CatalogService) Images(ws *Workspace, categoryID int64) (*ordered.Controller[domain.Image], error) {
	if categoryID <= 0 {
		return nil, domain.Invalid("category", "select a category")
	}
	ws.Enter(ViewImages)
	ctl := s.images(ws, categoryID)
	return ctl, ctl.Load()
}

// ImageCategory is the category whose images are currently held, or 0.
func (s *CatalogService) ImageCategory(ws *Workspace) int64 {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.imageCategory
}

func (s *CatalogService) UploadImage(ws *Workspace, categoryID int64, filename string, payload []byte) (domain.Image, error) {
	img, err := s.API.UploadImage(categoryID, filename, payload)
	if err != nil {
		return img, err
	}
	return img, s.images(ws, categoryID).Refresh()
}

// heldImages returns the controller for categoryID, refusing requests aimed
// at a category other than the one on display.
func (s *CatalogService) heldImages(ws *Workspace, categoryID int64) (*ordered.Controller[domain.Image], error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.images == nil || ws.imageCategory != categoryID {
		return nil, domain.Invalid("category", "the image list changed, reload the page")
	}
	return ws.images, nil
}

func (s *CatalogService) DeleteImage(ws *Workspace, categoryID, id int64) error {
	ctl, err := s.heldImages(ws, categoryID)
	if err != nil {
		return err
	}
	return ctl.Delete(id)
}

func (s *CatalogService) MoveImage(ws *Workspace, categoryID int64, index int, d ordered.Direction) error {
	ctl, err := s.heldImages(ws, categoryID)
	if err != nil {
		return err
	}
	return ctl.Move(index, d)
}

// SetPremium calls mark_premium or remove_premium, then reloads the images.
func (s *CatalogService) SetPremium(ws *Workspace, categoryID, id int64, premium bool) error {
	if categoryID <= 0 {
		return domain.Invalid("category", "select a category")
	}
	var err error
	if premium {
		err = s.API.MarkImagePremium(id)
	} else {
		err = s.API.RemoveImagePremium(id)
	}
	if err != nil {
		return err
	}
	return s.images(ws, categoryID).Refresh()
}
