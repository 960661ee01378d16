package otel

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestNewProviders_EmptyEndpoint(t *testing.T) {
	ctx := context.Background()
	providers, err := NewProviders(ctx, "", "test-service", false)
	if err != nil {
		t.Fatalf("NewProviders empty endpoint: %v", err)
	}
	if providers == nil {
		t.Fatal("providers should not be nil")
	}
	if providers.TracerProvider == nil {
		t.Error("TracerProvider should not be nil")
	}
	if providers.Shutdown == nil {
		t.Error("Shutdown should not be nil")
	}

	// Shutdown is a no-op for the disabled provider.
	if err := providers.Shutdown(ctx); err != nil {
		t.Errorf("shutdown should be no-op for empty endpoint, got error: %v", err)
	}
}

func TestNewProviders_WhitespaceEndpoint(t *testing.T) {
	ctx := context.Background()
	providers, err := NewProviders(ctx, "   ", "test-service", false)
	if err != nil {
		t.Fatalf("NewProviders whitespace endpoint: %v", err)
	}
	if providers == nil {
		t.Fatal("providers should not be nil")
	}
}

func TestNewProviders_InvalidURL(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name     string
		endpoint string
	}{
		{"invalid characters", "://invalid"},
		{"malformed URL", "http://[invalid"},
		{"missing host", "http://"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProviders(ctx, tc.endpoint, "test-service", false)
			if err == nil {
				t.Errorf("NewProviders(%q) should return error", tc.endpoint)
			}
		})
	}
}

func TestNewProviders_EndpointWithPath(t *testing.T) {
	ctx := context.Background()
	// Path is ignored; only host:port is used for the gRPC dial. Exporter
	// creation is lazy, so this succeeds without a collector running.
	providers, err := NewProviders(ctx, "http://localhost:4317/v1/traces", "test-service", false)
	if err != nil {
		t.Fatalf("NewProviders with path: %v", err)
	}
	_ = providers.Shutdown(ctx)
}

func TestNewProviders_EndpointWithoutProtocol(t *testing.T) {
	ctx := context.Background()
	providers, err := NewProviders(ctx, "localhost:4317", "test-service", false)
	if err != nil {
		t.Fatalf("NewProviders without protocol: %v", err)
	}
	_ = providers.Shutdown(ctx)
}

func TestSetGlobal(t *testing.T) {
	ctx := context.Background()
	providers, err := NewProviders(ctx, "", "test-service", false)
	if err != nil {
		t.Fatalf("NewProviders: %v", err)
	}

	oldTracerProvider := otel.GetTracerProvider()
	defer otel.SetTracerProvider(oldTracerProvider)

	providers.SetGlobal()

	if otel.GetTracerProvider() == oldTracerProvider {
		t.Error("TracerProvider should be updated")
	}
}

func TestSetGlobal_NilProvider(t *testing.T) {
	providers := &Providers{
		TracerProvider: nil,
		Shutdown:       func(context.Context) error { return nil },
	}

	oldTracerProvider := otel.GetTracerProvider()
	providers.SetGlobal()

	if otel.GetTracerProvider() != oldTracerProvider {
		t.Error("TracerProvider should not be updated when nil")
	}
}

func TestProviders_ShutdownTwice(t *testing.T) {
	ctx := context.Background()
	providers, err := NewProviders(ctx, "", "test-service", false)
	if err != nil {
		t.Fatalf("NewProviders: %v", err)
	}

	if err := providers.Shutdown(ctx); err != nil {
		t.Errorf("first shutdown: %v", err)
	}
	if err := providers.Shutdown(ctx); err != nil {
		t.Errorf("second shutdown: %v", err)
	}
}
