// Package store provides interfaces for product and category storage
// operations.
package store

import "context"

// Product is a stored product row. Picture holds the compressed image
// payload; compression and decompression happen outside the store.
type Product struct {
	ID         int64
	Name       string
	Price      int64
	Account    int64
	Picture    []byte
	CategoryID int64
}

// Category is looked up for existence only; products reference exactly one.
type Category struct {
	ID          int64
	Name        string
	Description string
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different
// implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindAll returns all products in storage order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// FindByName returns the products whose name contains the given
	// substring, matched case-insensitively, in storage order.
	FindByName(ctx context.Context, name string) ([]Product, error)

	// Save upserts a product: a zero ID inserts a new row and assigns its
	// identity, a nonzero ID overwrites the existing row.
	// Returns ErrProductNotFound when updating an ID that does not exist.
	Save(ctx context.Context, p *Product) (*Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}

// CategoryStore is an interface for category lookups.
type CategoryStore interface {
	// FindByID retrieves a category by its unique identifier.
	// Returns ErrCategoryNotFound if no category exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Category, error)
}
