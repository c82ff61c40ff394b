package application

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/sqlgate/domain/record"
	"github.com/felixgeelhaar/sqlgate/infrastructure/logging"
)

// Column describes one table column in declaration order.
type Column struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	NotNull bool   `json:"notnull"`
	PK      bool   `json:"pk"`
}

// Schema maps table names to their column descriptors.
type Schema map[string][]Column

// SchemaInfo bundles the schema with sample rows per table.
type SchemaInfo struct {
	Schema     Schema                     `json:"schema"`
	SampleData map[string][]record.Record `json:"sample_data"`
}

// sampleRowLimit bounds sample-data retrieval per table.
const sampleRowLimit = 3

// DescribeSchema enumerates every user table and its columns in the
// engine's declaration order. The error return is for the tool layer
// to fold into a structured error value; it is never raised past the
// tool boundary.
func (g *Gateway) DescribeSchema(ctx context.Context) (Schema, error) {
	tables, err := g.listTables(ctx)
	if err != nil {
		g.metrics.RecordSchemaRequest(ctx, false)
		return nil, err
	}

	schema := make(Schema, len(tables))
	for _, table := range tables {
		columns, err := g.tableColumns(ctx, table)
		if err != nil {
			g.metrics.RecordSchemaRequest(ctx, false)
			return nil, err
		}
		schema[table] = columns
	}

	g.metrics.RecordSchemaRequest(ctx, true)
	return schema, nil
}

// DescribeSchemaWithSamples returns the schema plus up to three sample
// rows per table. A table whose sample read fails is omitted from the
// sample data rather than failing the whole call; the schema entry
// itself is kept. This partial degradation is deliberate so one bad
// table cannot blank out the response an agent plans its queries from.
func (g *Gateway) DescribeSchemaWithSamples(ctx context.Context) (SchemaInfo, error) {
	schema, err := g.DescribeSchema(ctx)
	if err != nil {
		return SchemaInfo{}, err
	}

	return SchemaInfo{Schema: schema, SampleData: g.sampleData(ctx, schema)}, nil
}

// sampleData fetches up to sampleRowLimit rows per table through the
// read path. Tables whose sample read fails (dropped between
// enumeration and sampling, for instance) are skipped.
func (g *Gateway) sampleData(ctx context.Context, schema Schema) map[string][]record.Record {
	samples := make(map[string][]record.Record, len(schema))
	for table := range schema {
		rows := g.Execute(ctx, "SELECT * FROM "+quoteIdentifier(table)+" LIMIT "+strconv.Itoa(sampleRowLimit))
		if len(rows) == 1 && rows[0].IsError() {
			logging.Debug().
				Add(logging.Table(table)).
				Msg("sample rows unavailable, omitting table")
			continue
		}
		samples[table] = rows
	}
	return samples
}

// listTables returns all user table names, excluding SQLite internals.
func (g *Gateway) listTables(ctx context.Context) ([]string, error) {
	rows, err := g.store.DB().QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// tableColumns reads PRAGMA table_info for one table.
func (g *Gateway) tableColumns(ctx context.Context, table string) ([]Column, error) {
	rows, err := g.store.DB().QueryContext(ctx, "PRAGMA table_info("+quoteIdentifier(table)+")")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var (
			cid     int
			col     Column
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		col.NotNull = notNull != 0
		col.PK = pk > 0
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

// quoteIdentifier wraps a table name in double quotes for SQLite.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
