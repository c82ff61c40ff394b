// Package salesdata provides the agent-facing data access tools over
// the sales store.
package salesdata

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/felixgeelhaar/sqlgate/application"
	"github.com/felixgeelhaar/sqlgate/domain/pack"
	"github.com/felixgeelhaar/sqlgate/domain/record"
	"github.com/felixgeelhaar/sqlgate/domain/tool"
)

// New creates the salesdata pack over a gateway.
func New(gw *application.Gateway) (*pack.Pack, error) {
	if gw == nil {
		return nil, errors.New("gateway is required")
	}

	return pack.NewBuilder("salesdata").
		WithDescription("SQL execution and schema discovery over the sales database").
		WithVersion("1.0.0").
		AddTools(
			executeSQLTool(gw),
			schemaInfoTool(gw),
		).
		Build(), nil
}

// executeSQLInput is the input for the execute_sql tool.
type executeSQLInput struct {
	SQLQuery string `json:"sql_query"`
}

// executeSQLOutput is the output for the execute_sql tool. Results is
// either the materialized rows, a one-element affected-rows record, or
// a one-element error record; callers detect failure by the "error"
// key, never by a raised fault.
type executeSQLOutput struct {
	Query   string          `json:"query"`
	Results []record.Record `json:"results"`
}

func executeSQLTool(gw *application.Gateway) tool.Tool {
	return tool.NewBuilder("execute_sql").
		WithDescription("Execute a SQL query against the sales database and return structured results").
		Destructive().
		WithInputSchema(tool.ObjectSchema(map[string]json.RawMessage{
			"sql_query": json.RawMessage(`{"type":"string","description":"The SQL statement to execute"}`),
		}, []string{"sql_query"})).
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in executeSQLInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, errors.Join(tool.ErrInvalidInput, err)
			}

			out := executeSQLOutput{
				Query:   in.SQLQuery,
				Results: gw.Execute(ctx, in.SQLQuery),
			}

			data, err := json.Marshal(out)
			if err != nil {
				return tool.Result{}, err
			}
			return tool.NewResult(data), nil
		}).
		MustBuild()
}

func schemaInfoTool(gw *application.Gateway) tool.Tool {
	return tool.NewBuilder("get_schema_info").
		WithDescription("Get the sales database schema and sample rows to help with query construction").
		ReadOnly().
		Idempotent().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			info, err := gw.DescribeSchemaWithSamples(ctx)
			if err != nil {
				// Introspection failures are data for the agent, not
				// faults for the transport.
				data, merr := json.Marshal(map[string]string{record.ErrorKey: err.Error()})
				if merr != nil {
					return tool.Result{}, merr
				}
				return tool.NewResult(data), nil
			}

			data, err := json.Marshal(info)
			if err != nil {
				return tool.Result{}, err
			}
			return tool.NewResult(data), nil
		}).
		MustBuild()
}
