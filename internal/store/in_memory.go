package store

import (
	"context"
	"strings"
	"sync"

	ierrors "inventory-service/internal/errors"
)

// inMemoryProducts implements ProductStore using an in-memory map.
// Insertion order is preserved so scans behave like the database store.
type inMemoryProducts struct {
	mu       sync.RWMutex
	products map[int64]Product
	order    []int64
	nextID   int64
}

// NewInMemoryProductStore creates a new in-memory ProductStore.
func NewInMemoryProductStore() ProductStore {
	return &inMemoryProducts{
		products: make(map[int64]Product),
		nextID:   1,
	}
}

// FindByID retrieves a product by its ID.
func (s *inMemoryProducts) FindByID(_ context.Context, id int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ierrors.ErrProductNotFound
	}
	return &p, nil
}

// FindAll retrieves all products in insertion order.
func (s *inMemoryProducts) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.products[id])
	}
	return list, nil
}

// FindByName retrieves products whose name contains the given substring,
// case-insensitively, in insertion order.
func (s *inMemoryProducts) FindByName(_ context.Context, name string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(name)
	list := make([]Product, 0)
	for _, id := range s.order {
		p := s.products[id]
		if strings.Contains(strings.ToLower(p.Name), needle) {
			list = append(list, p)
		}
	}
	return list, nil
}

// Save upserts a product, assigning an identity on insert.
func (s *inMemoryProducts) Save(_ context.Context, p *Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *p
	if saved.ID == 0 {
		saved.ID = s.nextID
		s.nextID++
		s.order = append(s.order, saved.ID)
		s.products[saved.ID] = saved
		return &saved, nil
	}
	if _, exists := s.products[saved.ID]; !exists {
		return nil, ierrors.ErrProductNotFound
	}
	s.products[saved.ID] = saved
	return &saved, nil
}

// DeleteByID deletes a product by its ID.
func (s *inMemoryProducts) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return ierrors.ErrProductNotFound
	}
	delete(s.products, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// inMemoryCategories implements CategoryStore using an in-memory map.
type inMemoryCategories struct {
	mu         sync.RWMutex
	categories map[int64]Category
}

// NewInMemoryCategoryStore creates a new in-memory CategoryStore seeded
// with the given categories.
func NewInMemoryCategoryStore(categories ...Category) CategoryStore {
	m := make(map[int64]Category, len(categories))
	for _, c := range categories {
		m[c.ID] = c
	}
	return &inMemoryCategories{categories: m}
}

// FindByID retrieves a category by its ID.
func (s *inMemoryCategories) FindByID(_ context.Context, id int64) (*Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, ierrors.ErrCategoryNotFound
	}
	return &c, nil
}
