package tool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestBuilderBuildsTool(t *testing.T) {
	tl, err := NewBuilder("echo").
		WithDescription("Echo the input back").
		WithHandler(func(ctx context.Context, input json.RawMessage) (Result, error) {
			return NewResult(input), nil
		}).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tl.Name() != "echo" {
		t.Errorf("expected name 'echo', got %q", tl.Name())
	}
	if tl.Description() != "Echo the input back" {
		t.Errorf("unexpected description: %q", tl.Description())
	}

	result, err := tl.Execute(context.Background(), json.RawMessage(`{"x":1}`))
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if result.OutputString() != `{"x":1}` {
		t.Errorf("unexpected output: %s", result.OutputString())
	}
}

func TestBuilderEmptyName(t *testing.T) {
	_, err := NewBuilder("").Build()
	if !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestExecuteWithoutHandler(t *testing.T) {
	tl, err := NewBuilder("noop").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = tl.Execute(context.Background(), nil)
	if !errors.Is(err, ErrNoHandler) {
		t.Errorf("expected ErrNoHandler, got %v", err)
	}
}

func TestMustBuildPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for empty name")
		}
	}()
	NewBuilder("").MustBuild()
}

func TestAnnotationBuilders(t *testing.T) {
	tl := NewBuilder("probe").
		ReadOnly().
		Idempotent().
		Cacheable().
		WithTags("sql", "introspection").
		WithHandler(func(ctx context.Context, input json.RawMessage) (Result, error) {
			return Result{}, nil
		}).
		MustBuild()

	a := tl.Annotations()
	if !a.ReadOnly || !a.Idempotent || !a.Cacheable {
		t.Errorf("unexpected annotations: %+v", a)
	}
	if a.Destructive {
		t.Error("tool must not be destructive")
	}
	if len(a.Tags) != 2 {
		t.Errorf("expected 2 tags, got %v", a.Tags)
	}
}

func TestAnnotationsCanRetry(t *testing.T) {
	tests := []struct {
		name string
		a    Annotations
		want bool
	}{
		{"read-only", Annotations{ReadOnly: true}, true},
		{"idempotent", Annotations{Idempotent: true}, true},
		{"destructive", Annotations{Destructive: true}, false},
		{"default", DefaultAnnotations(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.CanRetry(); got != tt.want {
				t.Errorf("CanRetry() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnnotationsCanCache(t *testing.T) {
	a := Annotations{Cacheable: true}
	if a.CanCache() {
		t.Error("cacheable alone must not allow caching")
	}

	a.ReadOnly = true
	if !a.CanCache() {
		t.Error("cacheable read-only tool must allow caching")
	}
}
