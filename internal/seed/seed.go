package seed

import (
	"context"
	"fmt"
	"os"

	"storefront/config"
	"storefront/internal/account"
	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/store"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Data is the static initialization input of a system instance
type Data struct {
	Products []models.Product
	Accounts []account.Seed
}

// Default returns the built-in catalog and accounts
func Default() Data {
	return Data{
		Products: []models.Product{
			{
				ID:          1,
				Name:        "Smartphone",
				Price:       decimal.NewFromInt(5999),
				Description: "Latest smartphone, 6.7-inch display, 128GB storage, 5000mAh battery",
				Stock:       50,
			},
			{
				ID:          2,
				Name:        "Laptop",
				Price:       decimal.NewFromInt(8999),
				Description: "High-performance laptop, 16GB RAM, 512GB SSD, Intel i7 processor",
				Stock:       30,
			},
			{
				ID:          3,
				Name:        "Wireless Earbuds",
				Price:       decimal.NewFromInt(999),
				Description: "Active noise-cancelling earbuds, 24-hour battery life, water resistant",
				Stock:       100,
			},
			{
				ID:          4,
				Name:        "Smartwatch",
				Price:       decimal.NewFromInt(1599),
				Description: "Multi-function smartwatch, heart-rate monitor, GPS, water resistant to 50m",
				Stock:       75,
			},
			{
				ID:          5,
				Name:        "Tablet",
				Price:       decimal.NewFromInt(3299),
				Description: "10.9-inch tablet, 64GB storage, stylus support",
				Stock:       40,
			},
		},
		Accounts: []account.Seed{
			{ID: 1, Username: "user1", Password: "password1"},
			{ID: 2, Username: "user2", Password: "password2"},
			{ID: 3, Username: "user3", Password: "password3"},
		},
	}
}

// Validate rejects seeds the catalog or directory could not represent
func (d Data) Validate() error {
	if len(d.Products) == 0 {
		return fmt.Errorf("seed has no products")
	}
	if len(d.Accounts) == 0 {
		return fmt.Errorf("seed has no accounts")
	}

	productIDs := make(map[int64]struct{}, len(d.Products))
	for _, p := range d.Products {
		if _, dup := productIDs[p.ID]; dup {
			return fmt.Errorf("duplicate product id %d", p.ID)
		}
		productIDs[p.ID] = struct{}{}
		if p.Price.IsNegative() {
			return fmt.Errorf("product %d: negative price %s", p.ID, p.Price)
		}
		if p.Stock < 0 {
			return fmt.Errorf("product %d: negative stock %d", p.ID, p.Stock)
		}
	}

	usernames := make(map[string]struct{}, len(d.Accounts))
	for _, a := range d.Accounts {
		if a.Username == "" {
			return fmt.Errorf("account %d: empty username", a.ID)
		}
		if _, dup := usernames[a.Username]; dup {
			return fmt.Errorf("duplicate username %q", a.Username)
		}
		usernames[a.Username] = struct{}{}
		if len(a.Password) > account.MaxCredentialBytes {
			return fmt.Errorf("account %q: credential longer than %d bytes", a.Username, account.MaxCredentialBytes)
		}
	}
	return nil
}

type price decimal.Decimal

// UnmarshalYAML accepts both numeric and quoted prices
func (p *price) UnmarshalYAML(value *yaml.Node) error {
	d, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid price %q: %w", value.Line, value.Value, err)
	}
	*p = price(d)
	return nil
}

type fileProduct struct {
	ID          int64  `yaml:"id"`
	Name        string `yaml:"name"`
	Price       price  `yaml:"price"`
	Description string `yaml:"description"`
	Stock       int    `yaml:"stock"`
}

type file struct {
	Products []fileProduct `yaml:"products"`
	Accounts []account.Seed `yaml:"accounts"`
}

// Parse decodes a YAML seed document
func Parse(b []byte) (Data, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Data{}, fmt.Errorf("failed to parse seed: %w", err)
	}

	data := Data{
		Products: make([]models.Product, 0, len(f.Products)),
		Accounts: f.Accounts,
	}
	for _, p := range f.Products {
		data.Products = append(data.Products, models.Product{
			ID:          p.ID,
			Name:        p.Name,
			Price:       decimal.Decimal(p.Price),
			Description: p.Description,
			Stock:       p.Stock,
		})
	}

	if err := data.Validate(); err != nil {
		return Data{}, err
	}
	return data, nil
}

// LoadFile reads a YAML seed file
func LoadFile(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(b)
}

// FromStore reads products and accounts from a seed database
func FromStore(ctx context.Context, st *store.Store) (Data, error) {
	products, err := st.GetProducts(ctx)
	if err != nil {
		return Data{}, err
	}
	accounts, err := st.GetAccounts(ctx)
	if err != nil {
		return Data{}, err
	}

	data := Data{Products: products, Accounts: accounts}
	if err := data.Validate(); err != nil {
		return Data{}, err
	}
	return data, nil
}

// Load picks the seed source: a seed file, then a database, then the
// built-in defaults. It returns the data and a label naming the source.
func Load(ctx context.Context, cfg config.SeedConfig) (Data, string, error) {
	switch {
	case cfg.File != "":
		data, err := LoadFile(cfg.File)
		return data, "file", err
	case cfg.DatabaseURL != "":
		st, err := store.NewStore(cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			return Data{}, "database", err
		}
		defer st.Close()
		data, err := FromStore(ctx, st)
		return data, "database", err
	default:
		return Default(), "default", nil
	}
}

// Build creates the catalog and account directory of one system instance
func Build(data Data, opts account.Options) (*catalog.Catalog, *account.Directory, error) {
	cat, err := catalog.New(data.Products)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	dir, err := account.NewDirectory(data.Accounts, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build accounts: %w", err)
	}
	return cat, dir, nil
}
