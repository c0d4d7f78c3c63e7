package store

import (
	"context"
	"errors"
	"fmt"

	ierrors "inventory-service/internal/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgProductStore implements ProductStore using PostgreSQL as the data store.
type PgProductStore struct {
	db *pgxpool.Pool
}

// NewPgProductStore creates a new ProductStore backed by a PostgreSQL
// connection pool.
func NewPgProductStore(db *pgxpool.Pool) *PgProductStore {
	return &PgProductStore{db: db}
}

const productColumns = `id, name, price, account, picture, category_id`

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *PgProductStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	row := s.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	var p Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Account, &p.Picture, &p.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ierrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return &p, nil
}

// FindAll retrieves all products in insertion order.
// It returns a slice of products, which may be empty if no products exist.
func (s *PgProductStore) FindAll(ctx context.Context) ([]Product, error) {
	rows, err := s.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// FindByName retrieves the products whose name contains the given substring,
// case-insensitively, in insertion order.
func (s *PgProductStore) FindByName(ctx context.Context, name string) ([]Product, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE name ILIKE '%' || $1 || '%' ORDER BY id`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by name: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Save upserts a product. A zero ID inserts a new row and assigns its
// identity; a nonzero ID overwrites the existing row.
// Returns ErrProductNotFound when updating an ID that does not exist.
func (s *PgProductStore) Save(ctx context.Context, p *Product) (*Product, error) {
	saved := *p
	if p.ID == 0 {
		err := s.db.QueryRow(ctx,
			`INSERT INTO products (name, price, account, picture, category_id)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			p.Name, p.Price, p.Account, p.Picture, p.CategoryID).Scan(&saved.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert product: %w", err)
		}
		return &saved, nil
	}

	tag, err := s.db.Exec(ctx,
		`UPDATE products SET name = $2, price = $3, account = $4, picture = $5, category_id = $6 WHERE id = $1`,
		p.ID, p.Name, p.Price, p.Account, p.Picture, p.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ierrors.ErrProductNotFound
	}
	return &saved, nil
}

// DeleteByID removes a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *PgProductStore) DeleteByID(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ierrors.ErrProductNotFound
	}
	return nil
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Account, &p.Picture, &p.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}
	return products, nil
}

// PgCategoryStore implements CategoryStore using PostgreSQL.
type PgCategoryStore struct {
	db *pgxpool.Pool
}

// NewPgCategoryStore creates a new CategoryStore backed by a PostgreSQL
// connection pool.
func NewPgCategoryStore(db *pgxpool.Pool) *PgCategoryStore {
	return &PgCategoryStore{db: db}
}

// FindByID retrieves a category by its unique identifier.
// Returns ErrCategoryNotFound if no category exists with the given ID.
func (s *PgCategoryStore) FindByID(ctx context.Context, id int64) (*Category, error) {
	row := s.db.QueryRow(ctx, `SELECT id, name, description FROM categories WHERE id = $1`, id)
	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ierrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}
	return &c, nil
}
