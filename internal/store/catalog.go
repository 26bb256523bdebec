package store

import (
	"regexp"
	"strings"
	"sync"

	"otakumart/internal/kvstore"
	"otakumart/internal/logger"
	"otakumart/internal/models"

	"github.com/google/uuid"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify lowercases a product name and collapses whitespace runs into
// hyphens. Slugs are computed once at creation and survive renames: they are
// the externally linkable identity of a shop detail page.
func Slugify(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
}

// ProductUpdate is a partial product patch. Nil fields are left untouched.
// The slug is deliberately not patchable.
type ProductUpdate struct {
	Name             *string
	Price            *float64
	Image            *string
	Category         *string
	Series           *string
	Description      *string
	Features         *[]string
	ModelPath        *string
	AdditionalImages *[]string
}

// CatalogStore holds the product list managed by the admin back-office.
type CatalogStore struct {
	kv       kvstore.Store
	mu       sync.RWMutex
	products []models.Product
}

// NewCatalogStore loads the persisted catalog, falling back to the built-in
// seed list when the products key is absent or unparseable.
func NewCatalogStore(kv kvstore.Store) (*CatalogStore, error) {
	s := &CatalogStore{kv: kv}

	found, err := load(kv, keyProducts, &s.products)
	if err != nil {
		return nil, err
	}
	if !found {
		s.products = seedProducts()
		if err := persist(kv, keyProducts, s.products); err != nil {
			return nil, err
		}
		logger.Info("Catalog seeded", "count", len(s.products))
	}

	return s, nil
}

// AddProduct assigns an id and a slug derived from the name, then appends.
func (s *CatalogStore) AddProduct(p models.Product) (models.Product, error) {
	if p.Price <= 0 {
		return models.Product{}, ErrInvalidPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = "product-" + uuid.New().String()
	p.Slug = Slugify(p.Name)
	s.products = append(s.products, p)

	if err := persist(s.kv, keyProducts, s.products); err != nil {
		s.products = s.products[:len(s.products)-1]
		return models.Product{}, err
	}
	return p, nil
}

// UpdateProduct applies a partial patch. Unknown ids are a silent no-op and
// the slug is never recomputed, even when the name changes.
func (s *CatalogStore) UpdateProduct(id string, patch ProductUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		p := &s.products[i]
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Image != nil {
			p.Image = *patch.Image
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.Series != nil {
			p.Series = *patch.Series
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Features != nil {
			p.Features = *patch.Features
		}
		if patch.ModelPath != nil {
			p.ModelPath = *patch.ModelPath
		}
		if patch.AdditionalImages != nil {
			p.AdditionalImages = *patch.AdditionalImages
		}
		return persist(s.kv, keyProducts, s.products)
	}

	return nil
}

// DeleteProduct removes a product. Unknown ids are a silent no-op.
func (s *CatalogStore) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return persist(s.kv, keyProducts, s.products)
		}
	}
	return nil
}

// Product looks a product up by id.
func (s *CatalogStore) Product(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// ProductBySlug looks a product up by its stable slug. When two products
// share a slug the earliest-created wins, matching insertion order.
func (s *CatalogStore) ProductBySlug(slug string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.Slug == slug {
			return p, true
		}
	}
	return models.Product{}, false
}

// Products returns the full catalog.
func (s *CatalogStore) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}
