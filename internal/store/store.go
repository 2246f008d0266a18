package store

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/account"
	"storefront/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Store reads seed data from a SQL database. It is only read at startup;
// runtime state never goes back to it.
type Store struct {
	db *sqlx.DB
}

// NewStore connects to the seed database. driver is "postgres" or "sqlite".
func NewStore(driver, databaseURL string) (*Store, error) {
	db, err := sqlx.Connect(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Store{db: db}, nil
}

// NewStoreFromDB wraps an open connection
func NewStoreFromDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetProducts retrieves all products
func (s *Store) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT id, name, price, description, stock FROM products ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}
	return products, nil
}

// GetAccounts retrieves all account seeds
func (s *Store) GetAccounts(ctx context.Context) ([]account.Seed, error) {
	var accounts []account.Seed
	err := s.db.SelectContext(ctx, &accounts,
		"SELECT id, username, password FROM accounts ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to select accounts: %w", err)
	}
	return accounts, nil
}
