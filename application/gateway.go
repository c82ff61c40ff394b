// Package application provides the query gateway, the data-access
// service invoked by agent-facing tools.
package application

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/sqlgate/domain/record"
	"github.com/felixgeelhaar/sqlgate/infrastructure/logging"
	"github.com/felixgeelhaar/sqlgate/infrastructure/resilience"
	"github.com/felixgeelhaar/sqlgate/infrastructure/storage/sqlite"
	"github.com/felixgeelhaar/sqlgate/infrastructure/telemetry"
)

// Statement classification.
const (
	kindRead  = "read"
	kindWrite = "write"
)

// Gateway executes caller-supplied SQL against the sales store and
// returns structured results. Store-engine failures never escape as
// errors: they come back as a one-element error record so an
// agent caller can read the failure and revise its next statement.
// The gateway holds no per-call state.
type Gateway struct {
	store   *sqlite.Store
	reads   *resilience.Executor[[]record.Record]
	writes  *resilience.Executor[int64]
	metrics *telemetry.Metrics
}

// Option configures the gateway.
type Option func(*Gateway, *resilience.Config)

// WithMetrics attaches a metrics provider.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(g *Gateway, _ *resilience.Config) {
		g.metrics = m
	}
}

// WithResilience overrides the busy-retry configuration.
func WithResilience(cfg resilience.Config) Option {
	return func(_ *Gateway, rc *resilience.Config) {
		maxConcurrent := rc.MaxConcurrent
		*rc = cfg
		rc.MaxConcurrent = maxConcurrent
	}
}

// NewGateway creates a gateway over an opened store. Writes are
// serialized through a single-slot bulkhead so the store file sees one
// active writer at a time; lock-contention errors from concurrent
// external processes are retried with bounded backoff.
func NewGateway(store *sqlite.Store, opts ...Option) *Gateway {
	g := &Gateway{store: store}

	rc := resilience.DefaultConfig()
	for _, opt := range opts {
		opt(g, &rc)
	}

	readCfg := rc
	readCfg.MaxConcurrent = 0
	g.reads = resilience.New[[]record.Record](readCfg, sqlite.IsBusy)

	writeCfg := rc
	writeCfg.MaxConcurrent = 1
	g.writes = resilience.New[int64](writeCfg, sqlite.IsBusy)

	return g
}

// Execute runs one SQL statement and returns its structured outcome.
//
// A statement whose first keyword is SELECT (case-insensitive, after
// trimming) takes the read path and yields one record per result row,
// in engine row order with no implicit ORDER BY. Every other statement
// takes the write path, commits immediately, and yields a single
// {"affected_rows": n} record. Any store-engine failure yields a
// single {"error": text} record instead of propagating.
//
// Each call runs on its own pooled connection, released before return
// on every path. Multi-statement transactions are not supported; each
// call is its own atomic unit.
func (g *Gateway) Execute(ctx context.Context, sqlText string) []record.Record {
	queryID := uuid.NewString()
	start := time.Now()

	trimmed := strings.TrimSpace(sqlText)
	if trimmed == "" {
		logging.Warn().
			Add(logging.QueryID(queryID)).
			Msg("rejected empty statement")
		g.record(ctx, kindRead, true, time.Since(start))
		return []record.Record{record.Error("empty SQL statement")}
	}

	if isRead(trimmed) {
		return g.executeRead(ctx, queryID, trimmed, start)
	}
	return g.executeWrite(ctx, queryID, trimmed, start)
}

// isRead classifies a statement by its leading keyword.
func isRead(trimmed string) bool {
	return strings.HasPrefix(strings.ToUpper(trimmed), "SELECT")
}

func (g *Gateway) executeRead(ctx context.Context, queryID, sqlText string, start time.Time) []record.Record {
	rows, err := g.reads.Execute(ctx, func(ctx context.Context) ([]record.Record, error) {
		return queryRecords(ctx, g.store.DB(), sqlText)
	})
	if err != nil {
		logging.Warn().
			Add(logging.QueryID(queryID)).
			Add(logging.Kind(kindRead)).
			Add(logging.ErrorField(err)).
			Msg("statement failed")
		g.record(ctx, kindRead, true, time.Since(start))
		return []record.Record{record.Error(err.Error())}
	}

	logging.Debug().
		Add(logging.QueryID(queryID)).
		Add(logging.Kind(kindRead)).
		Add(logging.Rows(len(rows))).
		Add(logging.Duration(time.Since(start))).
		Msg("statement executed")
	g.record(ctx, kindRead, false, time.Since(start))
	return rows
}

func (g *Gateway) executeWrite(ctx context.Context, queryID, sqlText string, start time.Time) []record.Record {
	affected, err := g.writes.Execute(ctx, func(ctx context.Context) (int64, error) {
		res, err := g.store.DB().ExecContext(ctx, sqlText)
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		return n, nil
	})
	if err != nil {
		logging.Warn().
			Add(logging.QueryID(queryID)).
			Add(logging.Kind(kindWrite)).
			Add(logging.ErrorField(err)).
			Msg("statement failed")
		g.record(ctx, kindWrite, true, time.Since(start))
		return []record.Record{record.Error(err.Error())}
	}

	logging.Debug().
		Add(logging.QueryID(queryID)).
		Add(logging.Kind(kindWrite)).
		Add(logging.AffectedRows(affected)).
		Add(logging.Duration(time.Since(start))).
		Msg("statement executed")
	g.record(ctx, kindWrite, false, time.Since(start))
	return []record.Record{record.AffectedRows(affected)}
}

// queryRecords materializes every result row into an ordered record.
// Column order follows the result metadata; a duplicate column name
// collapses to one entry with the last value winning.
func queryRecords(ctx context.Context, db *sql.DB, sqlText string) ([]record.Record, error) {
	rows, err := db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]record.Record, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		out = append(out, record.FromRow(columns, values))
	}
	return out, rows.Err()
}

func (g *Gateway) record(ctx context.Context, kind string, trapped bool, d time.Duration) {
	g.metrics.RecordStatement(ctx, kind, trapped, d)
}
