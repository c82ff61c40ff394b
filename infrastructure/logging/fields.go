package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Common field constructors for gateway logging.

// QueryID adds a query correlation id field.
func QueryID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("query_id", id)
	}
}

// Statement adds the SQL statement text.
func Statement(sql string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("statement", sql)
	}
}

// Kind adds the statement classification (read or write).
func Kind(kind string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("kind", kind)
	}
}

// Table adds a table name field.
func Table(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("table", name)
	}
}

// Rows adds a row count field.
func Rows(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("rows", n)
	}
}

// AffectedRows adds an affected row count field.
func AffectedRows(n int64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("affected_rows", n)
	}
}

// ToolName adds a tool name field.
func ToolName(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("tool", name)
	}
}

// Path adds a file path field.
func Path(path string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("path", path)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}
