package remote

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"faceswapadmin/internal/domain"
)

func (c *Client) ListImages(categoryID int64) ([]domain.Image, error) {
	imgs, err := fetchList[domain.Image](c, "images.list", fiber.Get(c.url("/categories/%d/images", categoryID)))
	if err != nil {
		return nil, err
	}
	for i := range imgs {
		imgs[i].CategoryID = categoryID
	}
	return imgs, nil
}

// UploadImage posts payload as the multipart field "image".
func (c *Client) UploadImage(categoryID int64, filename string, payload []byte) (domain.Image, error) {
	const op = "images.upload"
	if len(payload) == 0 {
		return domain.Image{}, c.fail(op, domain.Invalid("image", "no image selected for uploading"))
	}
	if categoryID <= 0 {
		return domain.Image{}, c.fail(op, domain.Invalid("category", "select a category before uploading"))
	}
	file, err := imageFile(filename, payload)
	if err != nil {
		return domain.Image{}, c.fail(op, err)
	}
	a := fiber.Post(c.url("/categories/%d/images", categoryID)).FileData(file).MultipartForm(nil)
	img, err := fetchOne[domain.Image](c, op, a)
	if err != nil {
		return domain.Image{}, err
	}
	img.CategoryID = categoryID
	return img, nil
}

func (c *Client) DeleteImage(id int64) error {
	return c.send("images.delete", fiber.Delete(c.url("/images/%d", id)))
}

func (c *Client) SwapImageOrder(categoryID, id1, id2 int64) error {
	a := fiber.Post(c.url("/categories/%d/images/swap", categoryID)).JSON(swapBody{ID1: id1, ID2: id2})
	return c.send("images.swap", a)
}

func (c *Client) MarkImagePremium(id int64) error {
	return c.send("images.mark_premium", fiber.Put(c.url("/images/%d/mark_premium", id)))
}

func (c *Client) RemoveImagePremium(id int64) error {
	return c.send("images.remove_premium", fiber.Put(c.url("/images/%d/remove_premium", id)))
}

// imageFile sniffs the payload and refuses anything that is not image/*.
func imageFile(filename string, payload []byte) (*fiber.FormFile, error) {
	mt := mimetype.Detect(payload)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, domain.Invalid("image", "file is not an image ("+mt.String()+")")
	}
	if strings.TrimSpace(filename) == "" {
		filename = "upload" + mt.Extension()
	}
	return &fiber.FormFile{Fieldname: "image", Name: filename, Content: payload}, nil
}
