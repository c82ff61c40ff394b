package sqlite

import (
	"context"
	"errors"
)

// Bootstrap status messages.
const (
	StatusSeeded  = "database initialized with sample data"
	StatusPresent = "database already initialized"
)

// schema declares the four sales tables. References are declarative
// here; enforcement depends on Config.ForeignKeys.
const schema = `
CREATE TABLE IF NOT EXISTS customers (
	customer_id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT UNIQUE,
	phone TEXT,
	address TEXT
);

CREATE TABLE IF NOT EXISTS products (
	product_id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	price REAL NOT NULL,
	stock_quantity INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS sales (
	sale_id INTEGER PRIMARY KEY,
	customer_id INTEGER,
	sale_date TEXT NOT NULL,
	total_amount REAL NOT NULL,
	FOREIGN KEY (customer_id) REFERENCES customers (customer_id)
);

CREATE TABLE IF NOT EXISTS sale_items (
	item_id INTEGER PRIMARY KEY,
	sale_id INTEGER,
	product_id INTEGER,
	quantity INTEGER NOT NULL,
	price_per_unit REAL NOT NULL,
	FOREIGN KEY (sale_id) REFERENCES sales (sale_id),
	FOREIGN KEY (product_id) REFERENCES products (product_id)
);
`

type seedCustomer struct {
	name, email, phone, address string
}

type seedProduct struct {
	name, description string
	price             float64
	stock             int
}

type seedSale struct {
	customerID int
	date       string
	total      float64
}

type seedSaleItem struct {
	saleID, productID, quantity int
	pricePerUnit                float64
}

// Representative sample data. Every sale item references a seeded sale
// and product. A sale's total_amount is supplied independently and is
// not required to equal the sum of its items.
var (
	seedCustomers = []seedCustomer{
		{"John Doe", "john@example.com", "555-1234", "123 Main St"},
		{"Jane Smith", "jane@example.com", "555-5678", "456 Oak Ave"},
		{"Bob Johnson", "bob@example.com", "555-9012", "789 Pine Rd"},
		{"Alice Brown", "alice@example.com", "555-3456", "321 Elm St"},
		{"Charlie Davis", "charlie@example.com", "555-7890", "654 Maple Dr"},
	}

	seedProducts = []seedProduct{
		{"Laptop", "High-performance laptop", 1200.00, 10},
		{"Smartphone", "Latest model smartphone", 800.00, 15},
		{"Tablet", "10-inch tablet", 300.00, 20},
		{"Headphones", "Noise-cancelling headphones", 150.00, 30},
		{"Monitor", "27-inch 4K monitor", 350.00, 8},
	}

	seedSales = []seedSale{
		{1, "2023-01-15", 1200.00},
		{2, "2023-01-20", 950.00},
		{3, "2023-02-05", 300.00},
		{4, "2023-02-10", 500.00},
		{5, "2023-03-01", 1550.00},
		{1, "2023-03-15", 150.00},
		{2, "2023-04-02", 350.00},
	}

	// price_per_unit records the price at time of sale and may differ
	// from the product's current price (discounted tablet and monitor).
	seedSaleItems = []seedSaleItem{
		{1, 1, 1, 1200.00},
		{2, 2, 1, 800.00},
		{2, 4, 1, 150.00},
		{3, 3, 1, 300.00},
		{4, 4, 2, 150.00},
		{4, 3, 1, 200.00},
		{5, 1, 1, 1200.00},
		{5, 4, 1, 150.00},
		{5, 5, 1, 200.00},
		{6, 4, 1, 150.00},
		{7, 5, 1, 350.00},
	}
)

// EnsureInitialized creates the sales schema if absent and seeds
// sample data when the customers table is empty. It is idempotent and
// safe to call on every process start. The customers row count is the
// sole seeding gate: a database with customers but empty sibling
// tables is left untouched. The returned status message reports which
// path was taken.
func (s *Store) EnsureInitialized(ctx context.Context) (string, error) {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return "", errors.Join(ErrMigrationFailed, err)
	}

	var customers int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers").Scan(&customers); err != nil {
		return "", errors.Join(ErrMigrationFailed, err)
	}
	if customers > 0 {
		return StatusPresent, nil
	}

	if err := s.seed(ctx); err != nil {
		return "", err
	}
	return StatusSeeded, nil
}

// seed inserts sample rows into all four tables in a single
// transaction, so a fresh database is populated all-or-nothing.
func (s *Store) seed(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Join(ErrSeedFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range seedCustomers {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO customers (name, email, phone, address) VALUES (?, ?, ?, ?)",
			c.name, c.email, c.phone, c.address); err != nil {
			return errors.Join(ErrSeedFailed, err)
		}
	}

	for _, p := range seedProducts {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO products (name, description, price, stock_quantity) VALUES (?, ?, ?, ?)",
			p.name, p.description, p.price, p.stock); err != nil {
			return errors.Join(ErrSeedFailed, err)
		}
	}

	for _, sl := range seedSales {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO sales (customer_id, sale_date, total_amount) VALUES (?, ?, ?)",
			sl.customerID, sl.date, sl.total); err != nil {
			return errors.Join(ErrSeedFailed, err)
		}
	}

	for _, it := range seedSaleItems {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO sale_items (sale_id, product_id, quantity, price_per_unit) VALUES (?, ?, ?, ?)",
			it.saleID, it.productID, it.quantity, it.pricePerUnit); err != nil {
			return errors.Join(ErrSeedFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Join(ErrSeedFailed, err)
	}
	return nil
}
