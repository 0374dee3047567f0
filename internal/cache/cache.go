package cache

import (
	"github.com/techstore/admin-manager/internal/dependency"
	"github.com/techstore/admin-manager/internal/entity"
)

// Cache holds dictionary data loaded once at startup.
type Cache struct {
	Category *CategoryCache
}

func NewCache(categories []entity.Category) (dependency.Cache, error) {
	cc, err := newCategoryCache(categories)
	if err != nil {
		return nil, err
	}
	return &Cache{Category: cc}, nil
}

func (c *Cache) GetCategoryById(id int) (*entity.Category, bool) {
	return c.Category.GetCategoryById(id)
}

func (c *Cache) GetCategoryByName(category entity.CategoryEnum) (entity.Category, bool) {
	return c.Category.GetCategoryByName(category)
}

func (c *Cache) GetAllCategories() []entity.Category {
	return c.Category.GetAllCategories()
}
