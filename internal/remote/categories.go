package remote

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"faceswapadmin/internal/domain"
)

type categoryBody struct {
	Category string `json:"category"`
}

func (c *Client) ListCategories() ([]domain.Category, error) {
	return fetchList[domain.Category](c, "categories.list", fiber.Get(c.url("/categories")))
}

func (c *Client) CreateCategory(name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, c.fail("categories.create", domain.Invalid("category", "name is required"))
	}
	a := fiber.Post(c.url("/categories")).JSON(categoryBody{Category: name})
	return fetchOne[domain.Category](c, "categories.create", a)
}

func (c *Client) RenameCategory(id int64, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, c.fail("categories.rename", domain.Invalid("category", "name is required"))
	}
	a := fiber.Put(c.url("/categories/%d", id)).JSON(categoryBody{Category: name})
	return fetchOne[domain.Category](c, "categories.rename", a)
}

func (c *Client) DeleteCategory(id int64) error {
	return c.send("categories.delete", fiber.Delete(c.url("/categories/%d", id)))
}

// SwapCategoryOrder sends the ids in the given order; the backend decides
// whether the pair is adjacent.
func (c *Client) SwapCategoryOrder(id1, id2 int64) error {
	a := fiber.Post(c.url("/categories/swap")).JSON(swapBody{ID1: id1, ID2: id2})
	return c.send("categories.swap", a)
}
