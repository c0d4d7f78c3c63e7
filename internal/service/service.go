// Package service provides the implementation of inventory business logic.
// Every operation returns a fully populated response envelope plus an
// outcome classification; faults from the store or the codec are converted
// here and never escape to the transport as raw errors.
package service

import (
	"context"
	"errors"
	"log/slog"

	"inventory-service/internal/codec"
	ierrors "inventory-service/internal/errors"
	"inventory-service/internal/response"
	"inventory-service/internal/store"
)

// Operation-specific detail messages for internal failures. Fixed text; the
// original fault is logged, not exposed to the caller.
const (
	detailFetchByIDFailed   = "error fetching product by id"
	detailFetchByNameFailed = "error fetching products by name"
	detailFetchAllFailed    = "error fetching products"
	detailSaveFailed        = "error saving product"
	detailUpdateFailed      = "error updating product"
	detailDeleteFailed      = "error deleting product"
)

// ProductService defines the inventory operations.
type ProductService interface {
	// FetchByID looks up a single product, decompressing its image.
	FetchByID(ctx context.Context, id int64) (*response.Envelope, response.Outcome)

	// FetchByName returns the products whose name contains the given
	// substring, case-insensitively. An empty result set is reported as
	// not found, not as an empty success.
	FetchByName(ctx context.Context, name string) (*response.Envelope, response.Outcome)

	// FetchAll returns every stored product. An empty store is reported as
	// not found.
	FetchAll(ctx context.Context) (*response.Envelope, response.Outcome)

	// Save persists a new product under the given category. The incoming
	// image must already be compressed; the write path returns it as
	// stored, without decompressing.
	Save(ctx context.Context, product store.Product, categoryID int64) (*response.Envelope, response.Outcome)

	// Update overwrites the name, price, account, image and category of the
	// product with the given id. The id itself is preserved.
	Update(ctx context.Context, product store.Product, categoryID, id int64) (*response.Envelope, response.Outcome)

	// DeleteByID unconditionally requests deletion from the store.
	DeleteByID(ctx context.Context, id int64) (*response.Envelope, response.Outcome)
}

// Service implements ProductService on top of the product and category
// stores. It holds no state of its own; each call runs to completion on the
// calling goroutine.
type Service struct {
	products   store.ProductStore
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewService creates a new Service with explicit store references.
func NewService(products store.ProductStore, categories store.CategoryStore, logger *slog.Logger) *Service {
	return &Service{
		products:   products,
		categories: categories,
		logger:     logger.With("component", "service"),
	}
}

// FetchByID looks up a product by id and returns it with its image
// decompressed.
func (s *Service) FetchByID(ctx context.Context, id int64) (*response.Envelope, response.Outcome) {
	env := &response.Envelope{}

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ierrors.ErrProductNotFound) {
			env.SetMetadata(response.MessageError, response.CodeNotFound, "product not found")
			return env, response.NotFound
		}
		return s.internal(ctx, env, detailFetchByIDFailed, err)
	}

	image, err := codec.Decompress(p.Picture)
	if err != nil {
		return s.internal(ctx, env, detailFetchByIDFailed, err)
	}

	env.Products = []response.Product{toResponse(p, image)}
	env.SetMetadata(response.MessageOK, response.CodeOK, "product found")
	return env, response.OK
}

// FetchByName searches products by case-insensitive name substring.
func (s *Service) FetchByName(ctx context.Context, name string) (*response.Envelope, response.Outcome) {
	env := &response.Envelope{}

	list, err := s.products.FindByName(ctx, name)
	if err != nil {
		return s.internal(ctx, env, detailFetchByNameFailed, err)
	}
	return s.respondList(ctx, env, list, detailFetchByNameFailed)
}

// FetchAll returns every stored product.
func (s *Service) FetchAll(ctx context.Context) (*response.Envelope, response.Outcome) {
	env := &response.Envelope{}

	list, err := s.products.FindAll(ctx)
	if err != nil {
		return s.internal(ctx, env, detailFetchAllFailed, err)
	}
	return s.respondList(ctx, env, list, detailFetchAllFailed)
}

// Save attaches the category to the product and persists it. The image is
// stored and returned in compressed form.
func (s *Service) Save(ctx context.Context, product store.Product, categoryID int64) (*response.Envelope, response.Outcome) {
	env := &response.Envelope{}

	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, ierrors.ErrCategoryNotFound) {
			env.SetMetadata(response.MessageError, response.CodeRejected, "category not found")
			return env, response.NotFound
		}
		return s.internal(ctx, env, detailSaveFailed, err)
	}

	product.ID = 0
	product.CategoryID = category.ID
	saved, err := s.products.Save(ctx, &product)
	if err != nil {
		return s.internal(ctx, env, detailSaveFailed, err)
	}
	if saved.ID == 0 {
		env.SetMetadata(response.MessageError, response.CodeRejected, "product not saved")
		return env, response.Invalid
	}

	env.Products = []response.Product{toResponse(saved, saved.Picture)}
	env.SetMetadata(response.MessageOK, response.CodeOK, "product saved")
	return env, response.OK
}

// Update overwrites the stored product's fields with the incoming values,
// preserving its id.
func (s *Service) Update(ctx context.Context, product store.Product, categoryID, id int64) (*response.Envelope, response.Outcome) {
	env := &response.Envelope{}

	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, ierrors.ErrCategoryNotFound) {
			env.SetMetadata(response.MessageError, response.CodeRejected, "category not found")
			return env, response.NotFound
		}
		return s.internal(ctx, env, detailUpdateFailed, err)
	}

	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ierrors.ErrProductNotFound) {
			env.SetMetadata(response.MessageError, response.CodeNotFound, "product not found")
			return env, response.NotFound
		}
		return s.internal(ctx, env, detailUpdateFailed, err)
	}

	existing.Name = product.Name
	existing.Price = product.Price
	existing.Account = product.Account
	existing.Picture = product.Picture
	existing.CategoryID = category.ID

	updated, err := s.products.Save(ctx, existing)
	if err != nil {
		// The row vanished between lookup and save; the store refused the write.
		if errors.Is(err, ierrors.ErrProductNotFound) {
			env.SetMetadata(response.MessageError, response.CodeRejected, "product not updated")
			return env, response.Invalid
		}
		return s.internal(ctx, env, detailUpdateFailed, err)
	}

	env.Products = []response.Product{toResponse(updated, updated.Picture)}
	env.SetMetadata(response.MessageOK, response.CodeOK, "product updated")
	return env, response.OK
}

// DeleteByID requests deletion from the store. Any store failure, including
// deleting an id that does not exist, is reported as an internal failure.
func (s *Service) DeleteByID(ctx context.Context, id int64) (*response.Envelope, response.Outcome) {
	env := &response.Envelope{}

	if err := s.products.DeleteByID(ctx, id); err != nil {
		return s.internal(ctx, env, detailDeleteFailed, err)
	}

	env.SetMetadata(response.MessageOK, response.CodeOK, "product deleted")
	return env, response.OK
}

// respondList decompresses every matched image and wraps the result. An
// empty list is reported as not found.
func (s *Service) respondList(ctx context.Context, env *response.Envelope, list []store.Product, failDetail string) (*response.Envelope, response.Outcome) {
	if len(list) == 0 {
		env.SetMetadata(response.MessageError, response.CodeNotFound, "products not found")
		return env, response.NotFound
	}

	products := make([]response.Product, 0, len(list))
	for i := range list {
		image, err := codec.Decompress(list[i].Picture)
		if err != nil {
			return s.internal(ctx, env, failDetail, err)
		}
		products = append(products, toResponse(&list[i], image))
	}

	env.Products = products
	env.SetMetadata(response.MessageOK, response.CodeOK, "products found")
	return env, response.OK
}

// internal logs the original fault and fills the envelope with the fixed
// operation-specific detail.
func (s *Service) internal(ctx context.Context, env *response.Envelope, detail string, err error) (*response.Envelope, response.Outcome) {
	s.logger.ErrorContext(ctx, "operation failed", "detail", detail, "error", err)
	env.SetMetadata(response.MessageError, response.CodeInternal, detail)
	return env, response.Internal
}

// toResponse converts a stored product to its wire representation, with the
// image in whatever form the caller decided on.
func toResponse(p *store.Product, image []byte) response.Product {
	return response.Product{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Account:    p.Account,
		Image:      image,
		CategoryID: p.CategoryID,
	}
}
