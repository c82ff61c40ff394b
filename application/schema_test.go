package application

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/sqlgate/infrastructure/storage/sqlite"
)

// setupEmptyGateway opens a gateway over a store that was never
// bootstrapped.
func setupEmptyGateway(t *testing.T) *Gateway {
	t.Helper()

	store, err := sqlite.Open(sqlite.DefaultConfig(),
		sqlite.WithPath(filepath.Join(t.TempDir(), "empty.db")))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return NewGateway(store)
}

func TestDescribeSchemaListsAllTables(t *testing.T) {
	gw := setupGateway(t)

	schema, err := gw.DescribeSchema(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, table := range []string{"customers", "products", "sales", "sale_items"} {
		if _, ok := schema[table]; !ok {
			t.Errorf("missing table %q", table)
		}
	}
	if len(schema) != 4 {
		t.Errorf("expected 4 tables, got %d", len(schema))
	}
}

func TestDescribeSchemaSalesColumns(t *testing.T) {
	gw := setupGateway(t)

	schema, err := gw.DescribeSchema(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sales, ok := schema["sales"]
	if !ok {
		t.Fatal("missing sales table")
	}

	// Declaration order.
	want := []Column{
		{Name: "sale_id", Type: "INTEGER", NotNull: false, PK: true},
		{Name: "customer_id", Type: "INTEGER", NotNull: false, PK: false},
		{Name: "sale_date", Type: "TEXT", NotNull: true, PK: false},
		{Name: "total_amount", Type: "REAL", NotNull: true, PK: false},
	}
	if len(sales) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(sales))
	}
	for i, w := range want {
		if sales[i] != w {
			t.Errorf("column %d: expected %+v, got %+v", i, w, sales[i])
		}
	}
}

func TestDescribeSchemaWithSamples(t *testing.T) {
	gw := setupGateway(t)

	info, err := gw.DescribeSchemaWithSamples(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(info.Schema) != 4 {
		t.Fatalf("expected 4 tables in schema, got %d", len(info.Schema))
	}

	for table, samples := range info.SampleData {
		if len(samples) == 0 {
			t.Errorf("%s: expected sample rows for seeded table", table)
		}
		if len(samples) > 3 {
			t.Errorf("%s: expected at most 3 sample rows, got %d", table, len(samples))
		}
	}

	customers, ok := info.SampleData["customers"]
	if !ok {
		t.Fatal("missing customers samples")
	}
	if name, _ := customers[0].Get("name"); name != "John Doe" {
		t.Errorf("unexpected first customer sample: %v", name)
	}
}

func TestSampleDataOmitsUnreadableTables(t *testing.T) {
	gw := setupGateway(t)

	// A table that disappears between enumeration and sampling must be
	// skipped without blanking out the rest.
	schema := Schema{
		"customers": nil,
		"ghost":     nil,
	}

	samples := gw.sampleData(context.Background(), schema)

	if _, ok := samples["ghost"]; ok {
		t.Error("expected missing table to be omitted from samples")
	}
	if rows, ok := samples["customers"]; !ok || len(rows) != 3 {
		t.Errorf("expected 3 customer samples, got %v", samples["customers"])
	}
}

func TestDescribeSchemaEmptyDatabase(t *testing.T) {
	// A store without the sales schema still introspects cleanly.
	gw := setupEmptyGateway(t)

	schema, err := gw.DescribeSchema(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(schema) != 0 {
		t.Errorf("expected empty schema, got %v", schema)
	}
}
