package store

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"inventory-service/db"
	ierrors "inventory-service/internal/errors"
	"inventory-service/pkg/bootstrap"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// skipIntegrationTests is the environment variable that can be set to skip
// the container-backed integration tests.
const skipIntegrationTests = "INVENTORY_SKIP_INTEGRATION_TESTS"

// PgStoreSuite is a test suite for the PostgreSQL store implementations.
type PgStoreSuite struct {
	suite.Suite
	pgContainer *postgres.PostgresContainer
	dbPool      *pgxpool.Pool
	products    ProductStore
	categories  CategoryStore
	logger      *slog.Logger
	ctx         context.Context
	categoryID  int64
}

// SetupSuite starts a PostgreSQL container and applies the schema migrations.
func (s *PgStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dbName := "inventory"
	dbUser := "user"
	dbPassword := "password"

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		// The ready log line appears twice: once during initdb, once for real.
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp"),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")

	s.dbPool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to create pgxpool")

	for i := range 10 {
		s.logger.Info("Pinging PostgreSQL database", "attempt", i+1)
		err = s.dbPool.Ping(s.ctx)
		if err == nil {
			break
		}
		time.Sleep(time.Second * 2)
	}
	require.NoError(s.T(), err, "Failed to connect to PostgreSQL after retries")

	err = bootstrap.MigrateUp(connStr, db.Migrations, "migrations")
	require.NoError(s.T(), err, "Failed to apply migrations")
	s.logger.Info("Migrations applied for integration tests")

	s.products = NewPgProductStore(s.dbPool)
	s.categories = NewPgCategoryStore(s.dbPool)
	s.logger.Info("Initialization complete for PgStoreSuite")
}

// TearDownSuite cleans up resources after all tests in the suite have run.
func (s *PgStoreSuite) TearDownSuite() {
	s.logger.Info("Tearing down suite...")
	if s.dbPool != nil {
		s.dbPool.Close()
		s.logger.Info("DB pool closed.")
	}
	if s.pgContainer != nil {
		s.logger.Info("Terminating PostgreSQL container...")
		err := s.pgContainer.Terminate(s.ctx)
		if err != nil {
			s.logger.Warn("failed to terminate PostgreSQL container", "error", err)
		} else {
			s.logger.Info("PostgreSQL container terminated.")
		}
	}
}

// SetupTest resets the tables and seeds one category for each test.
func (s *PgStoreSuite) SetupTest() {
	_, err := s.dbPool.Exec(s.ctx, "TRUNCATE TABLE products, categories RESTART IDENTITY CASCADE")
	require.NoError(s.T(), err, "Failed to truncate tables")

	err = s.dbPool.QueryRow(s.ctx,
		`INSERT INTO categories (name, description) VALUES ('tools', 'hand tools') RETURNING id`).
		Scan(&s.categoryID)
	require.NoError(s.T(), err, "Failed to seed category")
}

func (s *PgStoreSuite) saveProduct(name string, price, account int64, picture []byte) *Product {
	saved, err := s.products.Save(s.ctx, &Product{
		Name:       name,
		Price:      price,
		Account:    account,
		Picture:    picture,
		CategoryID: s.categoryID,
	})
	require.NoError(s.T(), err)
	require.NotZero(s.T(), saved.ID)
	return saved
}

func (s *PgStoreSuite) TestSaveAndFindByID() {
	saved := s.saveProduct("Widget", 100, 5, []byte{0x78, 0x9c, 0x03, 0x00})

	found, err := s.products.FindByID(s.ctx, saved.ID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), saved.ID, found.ID)
	assert.Equal(s.T(), "Widget", found.Name)
	assert.Equal(s.T(), int64(100), found.Price)
	assert.Equal(s.T(), int64(5), found.Account)
	assert.Equal(s.T(), []byte{0x78, 0x9c, 0x03, 0x00}, found.Picture)
	assert.Equal(s.T(), s.categoryID, found.CategoryID)
}

func (s *PgStoreSuite) TestFindByIDNotFound() {
	_, err := s.products.FindByID(s.ctx, 999)

	assert.ErrorIs(s.T(), err, ierrors.ErrProductNotFound)
}

func (s *PgStoreSuite) TestFindByNameIsCaseInsensitiveSubstring() {
	s.saveProduct("Widget", 1, 1, []byte{})
	s.saveProduct("WIDGET-2", 2, 2, []byte{})
	s.saveProduct("a widget here", 3, 3, []byte{})
	s.saveProduct("gadget", 4, 4, []byte{})

	found, err := s.products.FindByName(s.ctx, "widget")

	require.NoError(s.T(), err)
	require.Len(s.T(), found, 3)
	assert.Equal(s.T(), "Widget", found[0].Name)
	assert.Equal(s.T(), "WIDGET-2", found[1].Name)
	assert.Equal(s.T(), "a widget here", found[2].Name)
}

func (s *PgStoreSuite) TestFindAllEmpty() {
	found, err := s.products.FindAll(s.ctx)

	require.NoError(s.T(), err)
	assert.Empty(s.T(), found)
}

func (s *PgStoreSuite) TestSaveUpdatesExistingRow() {
	saved := s.saveProduct("Widget", 100, 5, []byte{1})

	saved.Name = "Widget v2"
	saved.Price = 250
	saved.Picture = []byte{2}
	updated, err := s.products.Save(s.ctx, saved)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), saved.ID, updated.ID)

	found, err := s.products.FindByID(s.ctx, saved.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Widget v2", found.Name)
	assert.Equal(s.T(), int64(250), found.Price)
	assert.Equal(s.T(), []byte{2}, found.Picture)
}

func (s *PgStoreSuite) TestSaveMissingIDReportsNotFound() {
	_, err := s.products.Save(s.ctx, &Product{ID: 999, Name: "ghost", Picture: []byte{}, CategoryID: s.categoryID})

	assert.ErrorIs(s.T(), err, ierrors.ErrProductNotFound)
}

func (s *PgStoreSuite) TestDeleteByID() {
	saved := s.saveProduct("Widget", 100, 5, []byte{})

	require.NoError(s.T(), s.products.DeleteByID(s.ctx, saved.ID))

	_, err := s.products.FindByID(s.ctx, saved.ID)
	assert.ErrorIs(s.T(), err, ierrors.ErrProductNotFound)
	assert.ErrorIs(s.T(), s.products.DeleteByID(s.ctx, saved.ID), ierrors.ErrProductNotFound)
}

func (s *PgStoreSuite) TestCategoryFindByID() {
	found, err := s.categories.FindByID(s.ctx, s.categoryID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "tools", found.Name)

	_, err = s.categories.FindByID(s.ctx, 999)
	assert.ErrorIs(s.T(), err, ierrors.ErrCategoryNotFound)
}

func TestPgStoreSuite(t *testing.T) {
	if os.Getenv(skipIntegrationTests) != "" {
		t.Skipf("Skipping integration tests: %s is set", skipIntegrationTests)
	}
	suite.Run(t, new(PgStoreSuite))
}
