package cache

import (
	"fmt"
	"sync"

	"github.com/techstore/admin-manager/internal/entity"
)

type CategoryCache struct {
	NameCache map[entity.CategoryEnum]entity.Category
	Cache     map[int]entity.Category
	ordered   []entity.Category
	Mutex     sync.RWMutex
}

func newCategoryCache(categories []entity.Category) (*CategoryCache, error) {
	c := &CategoryCache{
		Cache:     make(map[int]entity.Category),
		NameCache: make(map[entity.CategoryEnum]entity.Category),
	}
	c.Mutex.Lock()
	defer c.Mutex.Unlock()

	for _, category := range categories {
		if !entity.ValidCategories[entity.CategoryEnum(category.Name)] {
			return nil, fmt.Errorf("invalid category name %q", category.Name)
		}
		c.Cache[category.ID] = category
		c.NameCache[entity.CategoryEnum(category.Name)] = category
		c.ordered = append(c.ordered, category)
	}

	if len(c.Cache) != len(entity.ValidCategories) {
		return nil, fmt.Errorf("not all categories are filled with an id")
	}

	return c, nil
}

func (c *CategoryCache) GetCategoryById(id int) (*entity.Category, bool) {
	c.Mutex.RLock()
	defer c.Mutex.RUnlock()

	category, found := c.Cache[id]
	return &category, found
}

func (c *CategoryCache) GetCategoryByName(category entity.CategoryEnum) (entity.Category, bool) {
	c.Mutex.RLock()
	defer c.Mutex.RUnlock()

	ct, found := c.NameCache[category]
	return ct, found
}

func (c *CategoryCache) GetAllCategories() []entity.Category {
	c.Mutex.RLock()
	defer c.Mutex.RUnlock()
	return c.ordered
}
