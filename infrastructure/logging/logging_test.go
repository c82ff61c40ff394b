package logging

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// testLogger creates a logger that writes to a buffer for testing
func testLogger() (*bolt.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := bolt.NewJSONHandler(buf)
	logger := bolt.New(handler).SetLevel(bolt.TRACE)
	return logger, buf
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()

	if config.Level != "info" {
		t.Errorf("Level = %s, want info", config.Level)
	}
	if config.Format != "console" {
		t.Errorf("Format = %s, want console", config.Format)
	}
	if config.Output != os.Stderr {
		t.Errorf("Output = %v, want os.Stderr", config.Output)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bolt.Level
	}{
		{"trace", bolt.TRACE},
		{"debug", bolt.DEBUG},
		{"info", bolt.INFO},
		{"warn", bolt.WARN},
		{"error", bolt.ERROR},
		{"unknown", bolt.INFO}, // Default
		{"", bolt.INFO},        // Empty defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%s) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestQueryIDField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := QueryID("q-123")
	if field == nil {
		t.Fatal("QueryID() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"query_id":"q-123"`)) {
		t.Errorf("expected query_id field in output: %s", buf.String())
	}
}

func TestStatementField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()

	event := logger.Info()
	Statement("SELECT 1")(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"statement":"SELECT 1"`)) {
		t.Errorf("expected statement field in output: %s", buf.String())
	}
}

func TestKindField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()

	event := logger.Info()
	Kind("read")(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"kind":"read"`)) {
		t.Errorf("expected kind field in output: %s", buf.String())
	}
}

func TestTableField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()

	event := logger.Info()
	Table("customers")(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"table":"customers"`)) {
		t.Errorf("expected table field in output: %s", buf.String())
	}
}

func TestRowsField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()

	event := logger.Info()
	Rows(5)(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"rows":5`)) {
		t.Errorf("expected rows field in output: %s", buf.String())
	}
}

func TestAffectedRowsField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()

	event := logger.Info()
	AffectedRows(2)(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"affected_rows":2`)) {
		t.Errorf("expected affected_rows field in output: %s", buf.String())
	}
}

func TestDurationField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()

	event := logger.Info()
	Duration(1500 * time.Millisecond)(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"duration_ms":1500`)) {
		t.Errorf("expected duration_ms field in output: %s", buf.String())
	}
}

func TestErrorField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()

	event := logger.Info()
	ErrorField(errors.New("boom"))(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`boom`)) {
		t.Errorf("expected error in output: %s", buf.String())
	}
}

func TestErrorFieldNil(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()

	event := logger.Info()
	ErrorField(nil)(event).Msg("test")

	if bytes.Contains(buf.Bytes(), []byte(`"error"`)) {
		t.Errorf("nil error must not add a field: %s", buf.String())
	}
}

func TestLogEventChaining(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()

	le := &LogEvent{event: logger.Info()}
	le.Add(QueryID("q-1")).Add(Kind("write")).Msg("chained")

	out := buf.Bytes()
	if !bytes.Contains(out, []byte(`"query_id":"q-1"`)) || !bytes.Contains(out, []byte(`"kind":"write"`)) {
		t.Errorf("expected chained fields in output: %s", buf.String())
	}
}
